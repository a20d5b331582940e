package client

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericErrorMessage is shown when no better description of a failure exists
const GenericErrorMessage = "Please try again later."

// ErrUnauthorized is matched by API errors caused by a missing, invalid or
// expired token
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non 2xx answer of the registry API
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("registry api error (%d)", e.Status)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
		return ErrUnauthorized
	}
	return e.Err
}

// ErrorMessage picks the most specific description of err: the message sent
// by the server, then the error text, then GenericErrorMessage
func ErrorMessage(err error) string {
	if err == nil {
		return GenericErrorMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}
