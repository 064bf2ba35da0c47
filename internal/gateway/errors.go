package gateway

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is matched by every error the client returns, whether the
// request failed in transport, with a status >= 400 or while decoding.
var ErrRequestFailed = errors.New("gateway request failed")

var errMissingID = errors.New("item has no identity")

// RequestError describes a failed gateway request.
type RequestError struct {
	Op     string
	Method string
	Path   string
	Status int // 0 when no response was received
	Err    error
}

func (e *RequestError) Error() string {
	switch {
	case e.Status > 0 && e.Err != nil:
		return fmt.Sprintf("%s %s %s: status %d: %v", e.Op, e.Method, e.Path, e.Status, e.Err)
	case e.Status > 0:
		return fmt.Sprintf("%s %s %s: status %d", e.Op, e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Method, e.Path, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Is makes every RequestError match ErrRequestFailed.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}
