package drive

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// RequestError is any non-success response from the provider: auth expiry,
// not-found, rate limiting and permission denial are not distinguished
// further and are all surfaced identically.
type RequestError struct {
	Op         string
	Message    string
	StatusCode int
	err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RequestError) Unwrap() error { return e.err }

// wrapRequestError normalizes a provider error into a RequestError, lifting
// the status code and message out of googleapi errors when present.
func wrapRequestError(op string, err error) error {
	if err == nil {
		return nil
	}
	re := &RequestError{Op: op, Message: err.Error(), err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		re.StatusCode = gerr.Code
		if gerr.Message != "" {
			re.Message = gerr.Message
		}
	}
	return re
}
