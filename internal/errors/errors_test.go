package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCodeOfWrappedAppError(t *testing.T) {
	base := SourceUnavailable("sheet tab Intake", stderrors.New("dial tcp: timeout"))
	wrapped := Wrap(base, "refresh failed")

	assert.Equal(t, CodeSourceUnavailable, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, base))
	assert.Contains(t, wrapped.Error(), "refresh failed")
	assert.Contains(t, wrapped.Error(), "dial tcp: timeout")
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Equal(t, CodeInternalError, GetCode(Wrap(stderrors.New("boom"), "ctx")))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("organization", nil), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", NotFound("organization", nil)), http.StatusNotFound},
		{"invalid input", InvalidInput("bad limit"), http.StatusBadRequest},
		{"source unavailable", SourceUnavailable("sheet", nil), http.StatusServiceUnavailable},
		{"database", DatabaseError("save tab", stderrors.New("locked")), http.StatusInternalServerError},
		{"plain", stderrors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeNotFound, stderrors.New("no rows"))
	assert.Equal(t, CodeNotFound, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}
