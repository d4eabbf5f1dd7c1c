package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, BadRequest("x").StatusCode())
	require.Equal(t, http.StatusNotFound, NotFound("x").StatusCode())
	require.Equal(t, http.StatusConflict, Conflict("x").StatusCode())
	require.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).StatusCode())
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)

	require.Equal(t, "Internal Server Error", err.Message)
	require.ErrorIs(t, err, cause)
}

func TestAs(t *testing.T) {
	err := Conflict("already exists")
	wrapped := fmt.Errorf("create author: %w", err)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	require.Equal(t, TypeConflict, appErr.Type)

	_, ok = As(errors.New("plain"))
	require.False(t, ok)
}
