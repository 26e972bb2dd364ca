package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorType
	}{
		{http.StatusBadRequest, ErrorTypeBadRequest},
		{http.StatusUnprocessableEntity, ErrorTypeValidation},
		{http.StatusUnauthorized, ErrorTypeUnauthorized},
		{http.StatusForbidden, ErrorTypeForbidden},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusConflict, ErrorTypeConflict},
		{http.StatusBadGateway, ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, "boom", nil)
			assert.Equal(t, tt.expected, err.Type)
			assert.Equal(t, tt.status, err.Code)
		})
	}
}

func TestFromStatus_EmptyMessageFallsBack(t *testing.T) {
	err := FromStatus(http.StatusInternalServerError, "  ", nil)
	assert.Equal(t, GenericMessage, err.Message)
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("update ticket: %w", FromStatus(http.StatusConflict, "Número de contrato já existe", nil))
	assert.Equal(t, "Número de contrato já existe", UserMessage(wrapped))
	assert.Equal(t, GenericMessage, UserMessage(fmt.Errorf("dial tcp: refused")))
}

func TestFieldMessage(t *testing.T) {
	err := FromStatus(http.StatusUnprocessableEntity, "invalid", []FieldError{
		{Field: "email", Message: "e-mail inválido"},
	})

	require.True(t, IsValidationError(err))
	assert.Equal(t, "e-mail inválido", err.FieldMessage("email"))
	assert.Empty(t, err.FieldMessage("password"))
}
