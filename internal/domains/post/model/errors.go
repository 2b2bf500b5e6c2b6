package model

import (
	"errors"

	"engagement-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeCommentNotFound = "PST001"
)

// Repository errors
var (
	// ErrLikeExists is returned when the (post, anonymous id) unique
	// constraint rejects an insert.
	ErrLikeExists      = errors.New("like already exists")
	ErrLikeNotFound    = errors.New("like not found")
	ErrCommentNotFound = errors.New("comment not found")
)

func NewCommentNotFoundError() *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, ErrCodeCommentNotFound, "Comment not found", ErrCommentNotFound)
}
