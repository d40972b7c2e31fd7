package network

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrStatus is wrapped by every non-2xx response error.
	ErrStatus = errors.New("unexpected status")

	// ErrClosed is returned by a Session after Close.
	ErrClosed = errors.New("session closed")
)

type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	return ErrStatus
}
