/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/trustbloc/walletauthz/pkg/observability/metrics"
)

// NoMetrics provides default no operation implementation for the NoMetrics interface.
type NoMetrics struct{}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	return &NoMetrics{}
}

func (n *NoMetrics) VerificationTime(_ time.Duration)                {}
func (n *NoMetrics) VerificationOutcome(_ string)                    {}
func (n *NoMetrics) EvidenceLookupAttempt(_ string)                  {}
func (n *NoMetrics) ResolutionEmitted(_ string)                      {}
func (n *NoMetrics) RequestAbandoned()                               {}
func (n *NoMetrics) PendingRequests(_ int)                           {}
func (n *NoMetrics) ControllerRequestTime(_ string, _ time.Duration) {}
