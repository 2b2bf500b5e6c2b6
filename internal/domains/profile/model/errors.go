package model

import (
	"errors"

	"engagement-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeProfileNotFound = "PRF001"
	ErrCodePostNotFound    = "PRF002"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrPostNotFound    = errors.New("post not found")
)

func NewProfileNotFoundError() *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, ErrCodeProfileNotFound, "Profile not found", ErrProfileNotFound)
}

func NewPostNotFoundError() *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, ErrCodePostNotFound, "Post not found", ErrPostNotFound)
}
