package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/deppfellow/carcatalog/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var v = New()

type samplePayload struct {
	ID       string `param:"id" json:"-" validate:"required,uuid"`
	Name     string `json:"name" validate:"required,min=2"`
	Year     int    `json:"year" validate:"omitempty,min=1886"`
	Email    string `json:"email" validate:"omitempty,email"`
	FuelType string `json:"fuelType,omitempty" validate:"omitempty,oneof=petrol diesel"`
}

func (p *samplePayload) Validate() error {
	return v.Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "ids", Message: "must not contain duplicates"}}
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("2f1c6a7e-4b1d-4a43-9c36-7f0f7bb1f6a1")
	return c
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	return httpErr
}

func TestBindAndValidate_OK(t *testing.T) {
	p := &samplePayload{}
	require.NoError(t, BindAndValidate(newContext(`{"name":"Audi","year":1990}`), p))
	assert.Equal(t, "Audi", p.Name)
	assert.Equal(t, "2f1c6a7e-4b1d-4a43-9c36-7f0f7bb1f6a1", p.ID)
}

func TestBindAndValidate_BodyCannotOverridePathID(t *testing.T) {
	p := &samplePayload{}
	require.NoError(t, BindAndValidate(newContext(`{"id":"x","name":"Audi"}`), p))
	assert.Equal(t, "2f1c6a7e-4b1d-4a43-9c36-7f0f7bb1f6a1", p.ID)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	httpErr := asHTTPError(t, BindAndValidate(newContext(`{"name":`), &samplePayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	httpErr := asHTTPError(t, BindAndValidate(newContext(`{"name":"A","year":1500,"email":"nope"}`), &samplePayload{}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)

	got := map[string]string{}
	for _, fe := range httpErr.Errors {
		got[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be at least 2 characters", got["name"])
	assert.Equal(t, "must be at least 1886", got["year"])
	assert.Equal(t, "must be a valid email address", got["email"])
}

func TestBindAndValidate_CustomErrors(t *testing.T) {
	httpErr := asHTTPError(t, BindAndValidate(newContext(`{}`), &customPayload{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "ids", httpErr.Errors[0].Field)
	assert.Equal(t, "must not contain duplicates", httpErr.Errors[0].Error)
}

func TestBindAndValidate_FieldNamesFollowTags(t *testing.T) {
	httpErr := asHTTPError(t, BindAndValidate(newContext(`{"name":"Audi","fuelType":"steam"}`), &samplePayload{}))
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "fuelType", httpErr.Errors[0].Field)
	assert.Equal(t, "must be one of: petrol diesel", httpErr.Errors[0].Error)
}

func TestWireName(t *testing.T) {
	type sample struct {
		Body   string `json:"bodyType,omitempty"`
		Query  string `query:"minPrice"`
		Path   string `param:"id" json:"-"`
		Legacy string
	}

	typ := reflect.TypeOf(sample{})
	want := []string{"bodyType", "minPrice", "id", "Legacy"}
	for i, name := range want {
		assert.Equal(t, name, wireName(typ.Field(i)))
	}
}
