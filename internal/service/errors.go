package service

import (
	"errors"
	"fmt"
)

type validationErr struct {
	field   string
	message string
}

func (e *validationErr) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

// IsValidation reports whether err was caused by bad caller input.
func IsValidation(err error) bool {
	var ve *validationErr
	return errors.As(err, &ve)
}
