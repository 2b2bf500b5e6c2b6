package model

const (
	MaxCommentLength       = 500
	MaxCommenterNameLength = 100
	MaxAvatarURLLength     = 500

	// Anonymous identity tokens are client generated; only the length is bounded.
	MaxAnonymousIDLength = 128
)
