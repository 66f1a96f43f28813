/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/walletauthz/internal/logfields"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

type promProvider struct {
	httpServer *http.Server
}

// NewPrometheusProvider creates new instance of Prometheus Metrics Provider.
func NewPrometheusProvider(httpServer *http.Server) metrics.Provider {
	return &promProvider{httpServer: httpServer}
}

// Create creates/initializes the prometheus metrics provider. It blocks while the metrics server runs.
func (pp *promProvider) Create() error {
	if pp.httpServer == nil {
		return nil
	}

	if err := pp.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start metrics HTTP server: %w", err)
	}

	return nil
}

// Metrics returns supported metrics.
func (pp *promProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// Destroy destroys the prometheus metrics provider.
func (pp *promProvider) Destroy() error {
	if pp.httpServer != nil {
		return pp.httpServer.Shutdown(context.Background())
	}

	return nil
}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the metrics for the authorization service.
type PromMetrics struct {
	verificationTime    prometheus.Histogram
	verificationOutcome *prometheus.CounterVec
	lookupAttempts      *prometheus.CounterVec
	resolutionEmitted   *prometheus.CounterVec
	requestAbandoned    prometheus.Counter
	pendingRequests     prometheus.Gauge
	controllerTime      *prometheus.HistogramVec
}

// NewMetrics creates instance of prometheus metrics.
func NewMetrics() metrics.Metrics {
	pm := &PromMetrics{
		verificationTime:    newVerificationTime(),
		verificationOutcome: newVerificationOutcome(),
		lookupAttempts:      newLookupAttempts(),
		resolutionEmitted:   newResolutionEmitted(),
		requestAbandoned: newCounter(metrics.Authorization, metrics.RequestAbandonedMetric,
			"The number of authorization requests abandoned without a user decision.", nil),
		pendingRequests: newGauge(metrics.Authorization, metrics.PendingRequestsMetric,
			"The number of authorization requests awaiting a user decision.", nil),
		controllerTime: newControllerTime(),
	}

	registerMetrics(pm)

	return pm
}

// VerificationTime records the time of one trust verification.
func (pm *PromMetrics) VerificationTime(value time.Duration) {
	pm.verificationTime.Observe(value.Seconds())

	logger.Debug("trust verification time", log.WithDuration(value))
}

// VerificationOutcome counts verification outcomes by kind.
func (pm *PromMetrics) VerificationOutcome(kind string) {
	pm.verificationOutcome.WithLabelValues(kind).Inc()
}

// EvidenceLookupAttempt counts lookup attempts by evidence source.
func (pm *PromMetrics) EvidenceLookupAttempt(source string) {
	pm.lookupAttempts.WithLabelValues(source).Inc()
}

// ResolutionEmitted counts emitted resolutions by kind.
func (pm *PromMetrics) ResolutionEmitted(kind string) {
	pm.resolutionEmitted.WithLabelValues(kind).Inc()
}

// RequestAbandoned counts abandoned requests.
func (pm *PromMetrics) RequestAbandoned() {
	pm.requestAbandoned.Inc()
}

// PendingRequests sets the number of pending requests.
func (pm *PromMetrics) PendingRequests(count int) {
	pm.pendingRequests.Set(float64(count))
}

// ControllerRequestTime records the time of a controller endpoint call.
func (pm *PromMetrics) ControllerRequestTime(operation string, value time.Duration) {
	pm.controllerTime.WithLabelValues(operation).Observe(value.Seconds())

	logger.Debug("controller endpoint time", logfields.WithOperation(operation), log.WithDuration(value))
}

func registerMetrics(pm *PromMetrics) {
	prometheus.MustRegister(
		pm.verificationTime, pm.verificationOutcome, pm.lookupAttempts, pm.resolutionEmitted,
		pm.requestAbandoned, pm.pendingRequests, pm.controllerTime,
	)
}

func newCounter(subsystem, name, help string, labels prometheus.Labels) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newCounterVec(subsystem, name, help string, labelNames ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labelNames)
}

func newGauge(subsystem, name, help string, labels prometheus.Labels) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newHistogram(subsystem, name, help string, labels prometheus.Labels) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newVerificationTime() prometheus.Histogram {
	return newHistogram(
		metrics.ClientTrust, metrics.VerificationTimeMetric,
		"The time (in seconds) it takes to verify a client identity.",
		nil,
	)
}

func newVerificationOutcome() *prometheus.CounterVec {
	return newCounterVec(
		metrics.ClientTrust, metrics.VerificationOutcomeMetric,
		"The number of trust verifications by outcome kind.",
		"kind",
	)
}

func newLookupAttempts() *prometheus.CounterVec {
	return newCounterVec(
		metrics.ClientTrust, metrics.EvidenceLookupAttemptsMetric,
		"The number of attestation evidence lookup attempts by source.",
		"source",
	)
}

func newResolutionEmitted() *prometheus.CounterVec {
	return newCounterVec(
		metrics.Authorization, metrics.ResolutionEmittedMetric,
		"The number of authorization resolutions emitted by kind.",
		"kind",
	)
}

func newControllerTime() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.Controller,
		Name:      metrics.ControllerRequestsMetric,
		Help:      "The time (in seconds) it takes to execute a controller endpoint call.",
	}, []string{"operation"})
}
