package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the storefront's prometheus collectors.
type Metrics struct {
	PromoValidationsTotal *prometheus.CounterVec
	PromoRedemptionsTotal *prometheus.CounterVec
	PromoDiscountTotal    prometheus.Counter

	NearbyQueriesTotal *prometheus.CounterVec
	NearbyCandidates   *prometheus.HistogramVec
	NearbyResults      *prometheus.HistogramVec

	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PromoValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promo_validations_total",
				Help: "Promo code validations by outcome and rejection reason",
			},
			[]string{"result", "reason"},
		),
		PromoRedemptionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "promo_redemptions_total",
				Help: "Promo code redemptions by outcome",
			},
			[]string{"result"},
		),
		PromoDiscountTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "promo_discount_amount_total",
				Help: "Sum of discounts granted by redeemed promo codes",
			},
		),
		NearbyQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nearby_queries_total",
				Help: "Nearby store/product lookups",
			},
			[]string{"kind"},
		),
		NearbyCandidates: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nearby_candidates",
				Help:    "Entities evaluated by the geofilter per query",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"kind"},
		),
		NearbyResults: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nearby_results",
				Help:    "Entities within delivery range per query",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"kind"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (m *Metrics) ObservePromoValidation(success bool, reason string) {
	if m == nil {
		return
	}
	result := "accepted"
	if !success {
		result = "rejected"
	}
	m.PromoValidationsTotal.WithLabelValues(result, reason).Inc()
}

func (m *Metrics) ObservePromoRedemption(result string, discount float64) {
	if m == nil {
		return
	}
	m.PromoRedemptionsTotal.WithLabelValues(result).Inc()
	if discount > 0 {
		m.PromoDiscountTotal.Add(discount)
	}
}

func (m *Metrics) ObserveNearbyQuery(kind string, candidates, results int) {
	if m == nil {
		return
	}
	m.NearbyQueriesTotal.WithLabelValues(kind).Inc()
	m.NearbyCandidates.WithLabelValues(kind).Observe(float64(candidates))
	m.NearbyResults.WithLabelValues(kind).Observe(float64(results))
}
