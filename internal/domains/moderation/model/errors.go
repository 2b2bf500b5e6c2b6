package model

import (
	"errors"

	"engagement-backend/internal/shared/apperror"
)

// Error codes
const (
	ErrCodeForbidden = "MOD001"
)

var ErrNotOwner = errors.New("caller does not own the profile")

func NewForbiddenError() *apperror.Error {
	return apperror.Wrap(apperror.KindForbidden, ErrCodeForbidden, "Only the profile owner can moderate this content", ErrNotOwner)
}
