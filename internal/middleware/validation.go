package middleware

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxTargetIDLength = 128

// ValidateText validates draft text sent for improvement or translation.
func ValidateText(text string, maxLength int) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("text cannot be empty")
	}
	if !utf8.ValidString(text) {
		return errors.New("text must be valid UTF-8")
	}
	if maxLength > 0 && utf8.RuneCountInString(text) > maxLength {
		return fmt.Errorf("text exceeds maximum length of %d characters", maxLength)
	}
	return nil
}

// ValidateHTML validates a page snapshot.
func ValidateHTML(html string, maxBytes int64) error {
	if strings.TrimSpace(html) == "" {
		return errors.New("html cannot be empty")
	}
	if maxBytes > 0 && int64(len(html)) > maxBytes {
		return fmt.Errorf("html exceeds maximum size of %d bytes", maxBytes)
	}
	if !utf8.ValidString(html) {
		return errors.New("html must be valid UTF-8")
	}
	return nil
}

// ValidateTargetID validates the optional id of the compose box or message being edited.
func ValidateTargetID(id string) error {
	if id == "" {
		return nil
	}
	if len(id) > maxTargetIDLength {
		return errors.New("target ID exceeds maximum length")
	}
	for _, r := range id {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return errors.New("invalid target ID format")
		}
	}
	return nil
}
