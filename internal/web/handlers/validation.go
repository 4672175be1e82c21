package handlers

import (
	"fmt"
	"strings"
)

// ValidationError represents a rejected request field. It is detected before
// any session is acquired, so a validation failure never touches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// requiredField trims the value and rejects it when empty.
func requiredField(value, field string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", ValidationError{Field: field, Message: "is required"}
	}
	return trimmed, nil
}
