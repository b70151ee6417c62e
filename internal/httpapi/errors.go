package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TelmenBay/leetlog/internal/journal"
	"github.com/TelmenBay/leetlog/internal/leetcode"
)

// apiError is an error with its HTTP status and a stable machine code.
type apiError struct {
	Status int
	Code   string
	Err    error
}

func (e *apiError) Error() string { return e.Err.Error() }
func (e *apiError) Unwrap() error { return e.Err }

func badRequest(msg string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "bad_request", Err: errors.New(msg)}
}

var errUnauthorized = &apiError{
	Status: http.StatusUnauthorized,
	Code:   "unauthorized",
	Err:    errors.New("unauthorized"),
}

// classify maps service errors to their HTTP form.
func classify(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}

	var (
		rateLimit   *leetcode.ErrRateLimit
		unavailable *leetcode.ErrUnavailable
		invalid     *leetcode.ErrInvalidResponse
	)
	switch {
	case errors.Is(err, journal.ErrInvalidURL):
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_url", Err: errors.New("invalid LeetCode URL")}
	case errors.Is(err, journal.ErrDuplicate):
		return &apiError{Status: http.StatusBadRequest, Code: "duplicate", Err: journal.ErrDuplicate}
	case errors.Is(err, journal.ErrForbidden):
		return &apiError{Status: http.StatusForbidden, Code: "forbidden", Err: journal.ErrForbidden}
	case errors.Is(err, journal.ErrNotFound):
		return &apiError{Status: http.StatusNotFound, Code: "not_found", Err: journal.ErrNotFound}
	case errors.Is(err, leetcode.ErrNotFound):
		return &apiError{Status: http.StatusNotFound, Code: "problem_not_found", Err: leetcode.ErrNotFound}
	case errors.As(err, &rateLimit), errors.As(err, &unavailable), errors.As(err, &invalid):
		return &apiError{Status: http.StatusBadGateway, Code: "fetch_failed", Err: errors.New("failed to fetch problem data from LeetCode")}
	default:
		return &apiError{Status: http.StatusInternalServerError, Code: "internal", Err: errors.New("internal server error")}
	}
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// abortWithError writes the error envelope. The cause is kept on the
// context for the request logger.
func abortWithError(c *gin.Context, err error) {
	ae := classify(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(ae.Status, gin.H{"error": errorBody{Message: ae.Err.Error(), Code: ae.Code}})
}
