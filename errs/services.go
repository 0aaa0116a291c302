package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Configuration & Environment Errors
var (
	ErrConfigMissing = errors.New("configuration missing")
	ErrConfigInvalid = errors.New("configuration invalid")
)

func NewConfigMissingError(keys ...string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("missing required settings: %v", keys),
		Field:      "config",
	}
}

func NewConfigInvalidError(key, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigInvalid,
		Details:    fmt.Sprintf("%s: %s", key, reason),
		Field:      key,
	}
}

func IsConfigMissingError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}

func IsConfigInvalidError(err error) bool {
	return errors.Is(err, ErrConfigInvalid)
}
