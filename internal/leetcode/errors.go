package leetcode

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidURL indicates the input is not a leetcode.com problem URL.
	ErrInvalidURL = errors.New("invalid LeetCode problem URL")
	// ErrNotFound indicates LeetCode has no problem with the requested slug.
	ErrNotFound = errors.New("problem not found on LeetCode")
)

// ErrRateLimit indicates LeetCode returned 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnavailable indicates LeetCode is down or unreachable.
type ErrUnavailable struct {
	StatusCode int
	Err        error
}

func (e *ErrUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LeetCode unavailable: %v", e.Err)
	}
	return fmt.Sprintf("LeetCode unavailable (status %d)", e.StatusCode)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the payload did not match the expected shape.
type ErrInvalidResponse struct {
	Body []byte
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LeetCode response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
