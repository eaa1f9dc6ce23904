// Package metrics exposes Prometheus counters for engine activity.
package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's counters.
type Metrics struct {
	// CommandsTotal counts engine commands by action and result status.
	CommandsTotal *prometheus.CounterVec

	// BattleOutcomes counts resolved battles by outcome.
	BattleOutcomes *prometheus.CounterVec
}

// New creates the counters on the default registerer.
func New(namespace string) *Metrics {
	return NewWithRegistry(namespace, prometheus.DefaultRegisterer)
}

// NewWithRegistry creates the counters on a custom registerer. Tests pass a
// fresh registry so parallel suites do not collide on metric names.
func NewWithRegistry(namespace string, registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		CommandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Engine commands processed, by action and status.",
		}, []string{"action", "status"}),
		BattleOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "battle_outcomes_total",
			Help:      "Resolved battles by outcome.",
		}, []string{"outcome"}),
	}
}

// RecordCommand increments the command counter.
func (m *Metrics) RecordCommand(action, status string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(action, status).Inc()
}

// RecordBattle increments the battle outcome counter.
func (m *Metrics) RecordBattle(outcome string) {
	if m == nil {
		return
	}
	m.BattleOutcomes.WithLabelValues(outcome).Inc()
}

// EchoHandler serves the Prometheus scrape endpoint.
func EchoHandler() echo.HandlerFunc {
	h := promhttp.Handler()
	return func(c echo.Context) error {
		h.ServeHTTP(c.Response().Writer, c.Request())
		return nil
	}
}
