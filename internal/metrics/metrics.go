// Package metrics holds the Prometheus collectors of the engagement API.
// Collectors are registered on an explicit registry so tests can use their own.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "engagement"

// Metrics bundles every collector the API exposes.
type Metrics struct {
	HTTP       *HTTPMetrics
	Engagement *EngagementMetrics
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTP:       NewHTTPMetrics(reg),
		Engagement: NewEngagementMetrics(reg),
	}
}
