package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("ada@example.com"))
	require.Error(t, ValidateEmail(""))
	require.Error(t, ValidateEmail("not-an-email"))
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("secret1"))
	require.Error(t, ValidatePassword(""))
	require.Error(t, ValidatePassword("abc"))
}

func TestValidateRequired(t *testing.T) {
	require.NoError(t, ValidateRequired("x", "field"))
	require.EqualError(t, ValidateRequired("   ", "first name"), "first name is required")
}

func TestValidateMimeTypes(t *testing.T) {
	require.NoError(t, ValidateImageMime("image/png"))
	require.Error(t, ValidateImageMime("application/pdf"))
	require.Error(t, ValidateImageMime(""))

	require.NoError(t, ValidateAudioMime("audio/wav"))
	require.Error(t, ValidateAudioMime("image/png"))
}
