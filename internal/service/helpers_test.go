package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deppfellow/carcatalog/internal/errs"
)

func requireStatus(t *testing.T, err error, status int) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	require.Equal(t, status, httpErr.Status)
	return httpErr
}
