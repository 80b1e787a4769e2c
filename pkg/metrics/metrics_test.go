package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePromoValidation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObservePromoValidation(true, "")
	m.ObservePromoValidation(false, "expired")
	m.ObservePromoValidation(false, "expired")

	if got := testutil.ToFloat64(m.PromoValidationsTotal.WithLabelValues("rejected", "expired")); got != 2 {
		t.Fatalf("rejected/expired = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.PromoValidationsTotal.WithLabelValues("accepted", "")); got != 1 {
		t.Fatalf("accepted = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObservePromoValidation(true, "")
	m.ObservePromoRedemption("ok", 10)
	m.ObserveNearbyQuery("stores", 3, 1)
}

func TestObservePromoRedemptionAccumulatesDiscount(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObservePromoRedemption("redeemed", 12.5)
	m.ObservePromoRedemption("redeemed", 7.5)
	m.ObservePromoRedemption("limit_reached", 0)

	if got := testutil.ToFloat64(m.PromoDiscountTotal); got != 20 {
		t.Fatalf("discount total = %v, want 20", got)
	}
}
