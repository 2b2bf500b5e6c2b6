package metrics

import "github.com/prometheus/client_golang/prometheus"

// Moderation action labels.
const (
	ActionPublish       = "publish"
	ActionUnpublish     = "unpublish"
	ActionDeleteReview  = "delete_review"
	ActionDeleteComment = "delete_comment"
)

// EngagementMetrics counts engine outcomes. Counts only; no per-visitor labels.
type EngagementMetrics struct {
	ReviewsSubmitted   prometheus.Counter
	ReviewsRateLimited prometheus.Counter
	LikesToggled       *prometheus.CounterVec
	LikeConflicts      prometheus.Counter
	CommentsAdded      prometheus.Counter
	ModerationActions  *prometheus.CounterVec
}

// NewEngagementMetrics creates and registers engine metrics on the given registry.
func NewEngagementMetrics(reg prometheus.Registerer) *EngagementMetrics {
	m := &EngagementMetrics{
		ReviewsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Total number of accepted review submissions.",
		}),
		ReviewsRateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_rate_limited_total",
			Help:      "Total number of review submissions rejected by the cooldown.",
		}),
		LikesToggled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "likes_toggled_total",
			Help:      "Total number of like toggles, by resulting state.",
		}, []string{"state"}),
		LikeConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "like_conflicts_total",
			Help:      "Total number of like inserts rejected by the unique constraint.",
		}),
		CommentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_added_total",
			Help:      "Total number of accepted post comments.",
		}),
		ModerationActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moderation_actions_total",
			Help:      "Total number of owner moderation actions, by action.",
		}, []string{"action"}),
	}

	reg.MustRegister(
		m.ReviewsSubmitted,
		m.ReviewsRateLimited,
		m.LikesToggled,
		m.LikeConflicts,
		m.CommentsAdded,
		m.ModerationActions,
	)
	return m
}

// NewNopEngagementMetrics returns collectors registered nowhere.
func NewNopEngagementMetrics() *EngagementMetrics {
	return NewEngagementMetrics(prometheus.NewRegistry())
}

func (m *EngagementMetrics) LikeState(liked bool) {
	state := "unliked"
	if liked {
		state = "liked"
	}
	m.LikesToggled.WithLabelValues(state).Inc()
}

func (m *EngagementMetrics) Moderation(action string) {
	m.ModerationActions.WithLabelValues(action).Inc()
}
