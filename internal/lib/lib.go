// Package lib groups integrations that sit outside the request layers:
// background jobs on asynq and transactional email through Resend.
package lib
