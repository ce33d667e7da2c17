package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError_StableCode(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondError(rec, 409, CodeInvalidTransition, "бронирование уже рассчитано")

	require.Equal(t, 409, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, CodeInvalidTransition, body.Code)
	assert.Equal(t, "бронирование уже рассчитано", body.Message)
}

func TestRespondJSON_NoPayload(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, 204, nil)

	require.Equal(t, 204, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON_UnknownFieldsRejected(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"attended": true, "extra": 1}`))

	var dst struct {
		Attended bool `json:"attended"`
	}
	err := DecodeJSON(req, &dst)
	require.Error(t, err)
}

func TestDecodeJSON_EmptyBodyIsEOF(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(""))

	var dst struct{}
	err := DecodeJSON(req, &dst)
	// Обработчики с опциональным телом матчатся на io.EOF
	require.True(t, errors.Is(err, io.EOF))
}

func TestDecodeJSON_ValidBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"reason": "клиент заболел"}`))

	var dst struct {
		Reason string `json:"reason"`
	}
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "клиент заболел", dst.Reason)
}
