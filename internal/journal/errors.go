package journal

import (
	"errors"

	"github.com/TelmenBay/leetlog/internal/leetcode"
	"github.com/TelmenBay/leetlog/internal/store"
)

var (
	// ErrNotFound is returned when a user problem or log does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrDuplicate is returned when the problem is already on the user's list.
	ErrDuplicate = errors.New("problem already added to your list")
	// ErrInvalidURL is returned when the URL is not a LeetCode problem URL.
	ErrInvalidURL = leetcode.ErrInvalidURL
)

// translate maps storage sentinels onto service sentinels.
func translate(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrDuplicate):
		return ErrDuplicate
	default:
		return err
	}
}
