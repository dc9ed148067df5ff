package utils

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusErrorMessageVerbatim(t *testing.T) {
	err := NewStatusError(http.StatusBadGateway, "upstream exploded")
	require.EqualError(t, err, "upstream exploded")
}

func TestStatusErrorClassifiers(t *testing.T) {
	require.True(t, IsAuthError(NewStatusError(http.StatusUnauthorized, "nope")))
	require.True(t, IsNotFoundError(NewStatusError(http.StatusNotFound, "gone")))
	require.True(t, IsForbiddenError(NewStatusError(http.StatusForbidden, "denied")))

	// Wrapped errors still classify.
	wrapped := fmt.Errorf("call failed: %w", NewStatusError(http.StatusUnauthorized, "nope"))
	require.True(t, IsAuthError(wrapped))

	require.False(t, IsAuthError(fmt.Errorf("plain")))
	require.False(t, IsNotFoundError(NewStatusError(http.StatusUnauthorized, "nope")))
}

func TestFieldErrors(t *testing.T) {
	errs := FieldErrors{}
	require.False(t, errs.HasErrors())

	errs.Add("email", "email is required")
	errs.Add("email", "invalid email format")
	require.True(t, errs.HasErrors())
	require.Equal(t, "invalid email format", errs["email"], "later messages win")
}

func TestAuthMessage(t *testing.T) {
	require.Equal(t, "Invalid email or password", AuthMessage("invalid-credentials"))
	require.Equal(t, "An account with this email already exists", AuthMessage("email-in-use"))
	require.Equal(t, "something else entirely", AuthMessage("something else entirely"))
}
