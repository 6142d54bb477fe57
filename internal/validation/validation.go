// Package validation binds request data into payload structs and turns
// validator failures into field-level API errors.
package validation
