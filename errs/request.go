package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidField marks a request parameter that failed validation
var ErrInvalidField = errors.New("invalid field")

func NewInvalidFieldError(fieldName string, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidField,
		Details:    fmt.Sprintf("Invalid field %s: %s", fieldName, reason),
		Field:      fieldName,
	}
}

func IsInvalidFieldError(err error) bool {
	return errors.Is(err, ErrInvalidField)
}
