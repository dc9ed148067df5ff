package utils

import (
	"fmt"
	"net/mail"
	"strings"
)

// MinPasswordLength is the minimum password length accepted at registration.
const MinPasswordLength = 6

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidatePassword validates a password
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}

	return nil
}

// ValidateRequired validates that a string is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateImageMime validates an image MIME type for the analyze/edit
// endpoints, which only accept raster images.
func ValidateImageMime(mimeType string) error {
	if err := ValidateRequired(mimeType, "mime type"); err != nil {
		return err
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return fmt.Errorf("unsupported mime type %q (expected image/*)", mimeType)
	}
	return nil
}

// ValidateAudioMime validates an audio MIME type for transcription and
// voice chat.
func ValidateAudioMime(mimeType string) error {
	if err := ValidateRequired(mimeType, "mime type"); err != nil {
		return err
	}
	if !strings.HasPrefix(mimeType, "audio/") {
		return fmt.Errorf("unsupported mime type %q (expected audio/*)", mimeType)
	}
	return nil
}
