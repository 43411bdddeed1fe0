package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth_OK(t *testing.T) {
	ta := setupAPI(t, defaultOptions())
	ta.mock.ExpectPing()

	rec := ta.do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NoError(t, ta.mock.ExpectationsWereMet())
}

func TestHealth_DatabaseDown(t *testing.T) {
	ta := setupAPI(t, defaultOptions())
	ta.mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))

	rec := ta.do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"dial tcp: connection refused"}`, rec.Body.String())
}

func TestHealth_DatabaseDownHidden(t *testing.T) {
	opts := defaultOptions()
	opts.ExposeErrors = false
	ta := setupAPI(t, opts)
	ta.mock.ExpectPing().WillReturnError(errors.New("dial tcp: connection refused"))

	rec := ta.do(http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"Database unavailable"}`, rec.Body.String())
}
