package api

import "fmt"

// Error is a non-success response from the service. Detail is the
// human-readable message from the response body when present, otherwise the
// caller's generic fallback for that operation.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return e.Detail
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.StatusCode)
}
