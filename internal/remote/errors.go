package remote

import (
	"errors"
	"fmt"
)

// HTTPError is returned for any non 2xx answer.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error, status: %d", e.Status)
}

func IsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
