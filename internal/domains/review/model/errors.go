package model

import (
	"errors"
	"fmt"
	"time"

	"engagement-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeReviewNotFound = "REV001"
	ErrCodeRateLimited    = "REV002"
)

// Errors
var (
	ErrReviewNotFound = errors.New("review not found")
	ErrRateLimited    = errors.New("review cooldown active")
)

// Error constructors
func NewReviewNotFoundError() *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, ErrCodeReviewNotFound, "Review not found", ErrReviewNotFound)
}

// NewRateLimitedError reports the remaining cooldown rounded up to whole hours.
func NewRateLimitedError(remaining time.Duration) *apperror.Error {
	hours := int(remaining / time.Hour)
	if remaining%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}

	unit := "hours"
	if hours == 1 {
		unit = "hour"
	}

	err := apperror.Wrap(
		apperror.KindRateLimited,
		ErrCodeRateLimited,
		fmt.Sprintf("You can submit another review in %d %s", hours, unit),
		ErrRateLimited,
	)
	err.RetryAfter = remaining
	return err
}
