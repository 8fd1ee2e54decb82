package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammar_stationary",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	promoValidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammar_stationary",
			Name:      "promo_validations_total",
			Help:      "Promo code validation attempts by outcome.",
		},
		[]string{"outcome"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ammar_stationary",
			Name:      "bookings_created_total",
			Help:      "Booking requests accepted.",
		},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ammar_stationary",
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions by target status.",
		},
		[]string{"to"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, promoValidations, bookingsCreated, bookingTransitions)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncPromoValidation records one validation attempt. Outcome is one of
// "applied", "rejected", "none".
func IncPromoValidation(outcome string) {
	promoValidations.WithLabelValues(outcome).Inc()
}

// IncBookingCreated records one accepted booking request.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingTransition records one status change.
func IncBookingTransition(to string) {
	bookingTransitions.WithLabelValues(to).Inc()
}
