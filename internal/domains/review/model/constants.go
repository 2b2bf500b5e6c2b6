package model

import (
	"strconv"
	"time"
)

const (
	// Abuse guard
	CooldownWindow = 24 * time.Hour

	// Content limits
	MaxReviewerNameLength = 100
	MaxCommentLength      = 2000
	MaxAvatarURLLength    = 500

	// Rating
	MinRating = 1
	MaxRating = 5
)

// PublicCacheKey is the cache key of one page of a profile's public listing.
func PublicCacheKey(profileID string, page, limit int) string {
	return "reviews:public:" + profileID + ":" + strconv.Itoa(page) + ":" + strconv.Itoa(limit)
}

// PublicCachePattern matches every cached page of a profile's public listing.
func PublicCachePattern(profileID string) string {
	return "reviews:public:" + profileID + ":*"
}
