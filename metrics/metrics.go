// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Flow label values.
const (
	FlowUse    = "use"
	FlowCreate = "create"
)

// OutcomeSuccess is the outcome label of a successful operation. Failures are
// labelled with their error kind.
const OutcomeSuccess = "success"

// Metrics holds the AgeKey collectors.
type Metrics struct {
	AuthorizationURLs *prometheus.CounterVec
	PARRequests       *prometheus.CounterVec
	PARLatency        prometheus.Histogram
	Callbacks         *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg registers
// with the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AuthorizationURLs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agekey_authorization_urls_total",
			Help: "Total authorization URLs built by flow",
		}, []string{"flow"}),

		PARRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agekey_par_requests_total",
			Help: "Total pushed authorization requests by outcome",
		}, []string{"outcome"}),

		PARLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "agekey_par_request_duration_seconds",
			Help:    "Duration of pushed authorization request round trips",
			Buckets: []float64{0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		Callbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agekey_callbacks_total",
			Help: "Total callbacks handled by flow and outcome",
		}, []string{"flow", "outcome"}),
	}
}

// IncAuthorizationURL records an authorization URL built for flow.
func (m *Metrics) IncAuthorizationURL(flow string) {
	if m != nil {
		m.AuthorizationURLs.WithLabelValues(flow).Inc()
	}
}

// ObservePAR records a pushed authorization request and its duration.
func (m *Metrics) ObservePAR(outcome string, d time.Duration) {
	if m != nil {
		m.PARRequests.WithLabelValues(outcome).Inc()
		m.PARLatency.Observe(d.Seconds())
	}
}

// IncCallback records a callback handled for flow.
func (m *Metrics) IncCallback(flow, outcome string) {
	if m != nil {
		m.Callbacks.WithLabelValues(flow, outcome).Inc()
	}
}
