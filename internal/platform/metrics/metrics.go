// Package metrics holds the Prometheus instruments for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics aggregates the service counters. Construct with New and share one
// instance across services.
type Metrics struct {
	UsersCreated      prometheus.Counter
	FilmsCreated      prometheus.Counter
	LikesAdded        prometheus.Counter
	FriendshipsForged prometheus.Counter
}

// New creates and registers all counters on the given registerer. Tests pass
// a fresh prometheus.NewRegistry so suites never collide on registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UsersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "filmorate_users_created_total",
			Help: "Total number of users created.",
		}),
		FilmsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "filmorate_films_created_total",
			Help: "Total number of films created.",
		}),
		LikesAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "filmorate_likes_total",
			Help: "Total number of likes placed on films.",
		}),
		FriendshipsForged: factory.NewCounter(prometheus.CounterOpts{
			Name: "filmorate_friendships_total",
			Help: "Total number of friendship edges created.",
		}),
	}
}
