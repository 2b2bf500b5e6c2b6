package utils

import (
	"math"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// NormalizePage clamps page/limit to the public pagination contract.
// page is capped so that (page-1)*limit never overflows; a page past the
// end simply comes back empty.
func NormalizePage(page, limit int) (int, int) {
	if limit < 1 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	if page < 1 {
		page = 1
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

// TotalPages rounds total/limit up.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
