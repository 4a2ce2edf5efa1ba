package order

import (
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orders_transitions_total",
		Help: "Order status transitions attempted through lifecycle operations",
	},
	[]string{"from", "to", "result"},
)

func observeTransition(rule transition, err error) {
	from := make([]string, 0, len(rule.from))
	for _, s := range rule.from {
		from = append(from, s.String())
	}

	TransitionsTotal.WithLabelValues(strings.Join(from, "|"), rule.to.String(), transitionResult(err)).Inc()
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidTransition):
		return "rejected"
	case errors.Is(err, ErrOrderNotFound):
		return "not_found"
	default:
		return "error"
	}
}
