package model

// SetPublishedRequest toggles a review's public visibility.
type SetPublishedRequest struct {
	IsPublished *bool `json:"is_published"`
}

// ListProfileReviewsRequest is the owner moderation queue query. A nil
// Published lists every review.
type ListProfileReviewsRequest struct {
	Published *bool `form:"published"`
	Page      int   `form:"page"`
	Limit     int   `form:"limit"`
}
