package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// CircuitBreakerService isolates the static data host. A misbehaving host
// trips the breaker and subsequent fetches fail fast; callers already treat
// failed fetches as "document not published", so an open breaker degrades
// rather than errors.
type CircuitBreakerService struct {
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewCircuitBreakerService(threshold int, timeout time.Duration, logger *logrus.Logger) *CircuitBreakerService {
	settings := gobreaker.Settings{
		Name:        "season-data-host",
		MaxRequests: uint32(threshold),
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"upstream":  name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &CircuitBreakerService{
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Execute wraps an upstream fetch with circuit breaker protection.
func (cb *CircuitBreakerService) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

// State returns the breaker's current state.
func (cb *CircuitBreakerService) State() gobreaker.State {
	return cb.breaker.State()
}

// Counts returns the breaker's current counts.
func (cb *CircuitBreakerService) Counts() gobreaker.Counts {
	return cb.breaker.Counts()
}
