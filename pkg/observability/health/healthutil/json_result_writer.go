/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"
)

type healthStatus struct {
	Status     health.AvailabilityStatus `json:"status"`
	Components map[string]component      `json:"components,omitempty"`
}

type component struct {
	Status              health.AvailabilityStatus `json:"status"`
	CheckedAt           *time.Time                `json:"checked_at,omitempty"`
	Error               string                    `json:"error,omitempty"`
	LastResponseTime    string                    `json:"last_response_time,omitempty"`
	AverageResponseTime string                    `json:"avg_response_time,omitempty"`
}

// JSONResultWriter renders the checker result. Each store check reports its failure text and, once it
// has run, its response times.
type JSONResultWriter struct {
	responseTimes *ResponseTimes
}

func NewJSONResultWriter(rt *ResponseTimes) *JSONResultWriter {
	return &JSONResultWriter{
		responseTimes: rt,
	}
}

func (rw *JSONResultWriter) Write(result *health.CheckerResult, status int, w http.ResponseWriter, _ *http.Request) error { //nolint:lll
	r := &healthStatus{Status: result.Status}

	if len(result.Details) > 0 {
		r.Components = make(map[string]component, len(result.Details))

		for name, cr := range result.Details {
			r.Components[name] = rw.component(name, cr)
		}
	}

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal health status: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(b)

	return err
}

func (rw *JSONResultWriter) component(name string, cr health.CheckResult) component {
	c := component{Status: cr.Status}

	if !cr.Timestamp.IsZero() {
		c.CheckedAt = &cr.Timestamp
	}

	if cr.Error != nil {
		c.Error = cr.Error.Error()
	}

	if t, ok := rw.responseTimes.Get(name); ok {
		c.LastResponseTime = t.LastResponseTime.String()
		c.AverageResponseTime = t.AverageResponseTime.String()
	}

	return c
}
