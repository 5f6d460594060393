package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		status int
	}{
		{"missing credentials", ErrSearchMissingCredentials, http.StatusInternalServerError},
		{"synthesis parse", ErrSearchSynthesisParse, http.StatusInternalServerError},
		{"upstream failure", ErrSearchUpstream, http.StatusInternalServerError},
		{"invalid params", ErrInvalidParams, http.StatusBadRequest},
		{"empty query", ErrSearchEmptyQuery, http.StatusBadRequest},
		{"quota exceeded", ErrSearchQuotaExceeded, http.StatusForbidden},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"unknown code falls back to 500", 999999, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestWrapPreservesCode(t *testing.T) {
	inner := New(ErrSearchQuotaExceeded)
	wrapped := Wrap(inner, ErrInternalServer, "outer detail")

	assert.Equal(t, ErrSearchQuotaExceeded, wrapped.Code)
	assert.Equal(t, "outer detail", wrapped.Details)
	assert.True(t, Is(wrapped, ErrSearchQuotaExceeded))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternalServer))
}

func TestExtractCode(t *testing.T) {
	assert.Equal(t, ErrSearchUpstream, ExtractCode(New(ErrSearchUpstream)))
	assert.Equal(t, ErrInternalServer, ExtractCode(errors.New("plain")))
}

func TestGetDetails(t *testing.T) {
	assert.Equal(t, "field missing", GetDetails(New(ErrInvalidParams, "field missing")))

	wrapped := Wrap(errors.New("boom"), ErrSearchUpstream)
	assert.Equal(t, "boom", GetDetails(wrapped))
}

func TestErrorString(t *testing.T) {
	err := Wrapf(errors.New("timeout"), ErrSearchUpstream, "query_%d", 2)
	assert.Contains(t, err.Error(), "Upstream search request failed")
	assert.ErrorContains(t, err, "timeout")
}
