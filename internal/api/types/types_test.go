package types

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/statusgate/engine/pkg/errors"
)

func TestNewErrorBody(t *testing.T) {
	assert.Equal(t, map[string]any{"error": MsgInvalidJSON}, NewErrorBody(MsgInvalidJSON, nil))

	body := NewErrorBody(MsgSystemError, map[string]any{"detail": "boom", "error": "shadowed"})
	assert.Equal(t, map[string]any{"error": MsgSystemError, "detail": "boom"}, body)
}

func TestWriteErrorAppError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, appErr.New(appErr.CodeUnauthorized, MsgAuthRequired))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Authentication required"}`, rr.Body.String())
}

func TestWriteErrorWithMeta(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, appErr.New(appErr.CodeInternal, MsgSystemError).WithMeta("detail", "nil map"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"System error","detail":"nil map"}`, rr.Body.String())
}

func TestWriteErrorPlainError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("dial tcp: secret host"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"System error"}`, rr.Body.String())
}

func TestWriteJSONMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, MessageResponse{Message: "Status 201"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"message":"Status 201"}`, rr.Body.String())
}
