package github

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-github/v57/github"
)

// RequestError is any non-success API response the client does not
// tolerate. It carries the HTTP status and the response body message.
type RequestError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API request failed: %s: status %d: %s", e.Op, e.StatusCode, e.Body)
}

// MalformedDataError means a response decoded badly. Seeing one usually
// means the upstream schema changed.
type MalformedDataError struct {
	Op  string
	Err error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("malformed data from %s (upstream schema may have changed): %v", e.Op, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

func classifyError(op string, resp *github.Response, err error) error {
	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		} else if apiErr.Response != nil {
			status = apiErr.Response.StatusCode
		}
		return &RequestError{Op: op, StatusCode: status, Body: apiErr.Message}
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var parseErr *time.ParseError
	if errors.As(err, &typeErr) || errors.As(err, &syntaxErr) || errors.As(err, &parseErr) {
		return &MalformedDataError{Op: op, Err: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}
