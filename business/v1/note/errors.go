package note

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound covers both missing notes and notes the caller cannot see.
// ErrStore wraps persistence failures, the detail is logged and must not reach the caller.
var (
	ErrNotFound         = errors.New("note not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidation       = errors.New("validation failed")
	ErrStore            = errors.New("store failure")
)

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors lists every field that failed, it matches ErrValidation with errors.Is
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Message
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, tag, message string) error {
	return ValidationErrors{{Field: field, Tag: tag, Message: message}}
}
