/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultPath is where the metrics listener exposes the collected metrics.
const DefaultPath = "/metrics"

// Handler serves the verification and resolution metrics in the Prometheus exposition format.
type Handler struct {
	path     string
	gatherer prometheus.Gatherer
}

// HandlerOpt configures Handler.
type HandlerOpt func(h *Handler)

// WithPath overrides DefaultPath.
func WithPath(path string) HandlerOpt {
	return func(h *Handler) {
		h.path = path
	}
}

// WithGatherer serves metrics of g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) HandlerOpt {
	return func(h *Handler) {
		h.gatherer = g
	}
}

// NewHandler returns Handler.
func NewHandler(opts ...HandlerOpt) *Handler {
	h := &Handler{
		path:     DefaultPath,
		gatherer: prometheus.DefaultGatherer,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Path returns the path the handler is served on.
func (h *Handler) Path() string {
	return h.path
}

// Register adds the handler to mux for GET requests only.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle(http.MethodGet+" "+h.path, h.Handler())
}

// Handler returns the http.Handler rendering the gathered metrics. OpenMetrics is enabled for exemplars.
func (h *Handler) Handler() http.Handler {
	return promhttp.HandlerFor(h.gatherer,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}
