/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
)

// Logger used by different metrics provider.
var Logger = log.New("metrics-provider")

// Constants used by different metrics provider.
const (
	// Namespace Organization namespace.
	Namespace = "walletauthz"

	// ClientTrust trust resolver operations.
	ClientTrust                  = "clienttrust"
	VerificationTimeMetric       = "verification_seconds"
	VerificationOutcomeMetric    = "verification_outcome_total"
	EvidenceLookupAttemptsMetric = "evidence_lookup_attempts_total"

	// Authorization presenter and registry operations.
	Authorization           = "authorization"
	ResolutionEmittedMetric = "resolution_emitted_total"
	RequestAbandonedMetric  = "request_abandoned_total"
	PendingRequestsMetric   = "pending_requests"

	// Controller operations.
	Controller               = "controller"
	ControllerRequestsMetric = "request_seconds"
)

// Provider is an interface for metrics provider.
type Provider interface {
	// Create creates a metrics provider instance
	Create() error
	// Destroy destroys the metrics provider instance
	Destroy() error
	// Metrics providers metrics
	Metrics() Metrics
}

// Metrics is an interface for the metrics to be supported by the provider.
//
//nolint:interfacebloat
type Metrics interface {
	VerificationTime(value time.Duration)
	VerificationOutcome(kind string)
	EvidenceLookupAttempt(source string)
	ResolutionEmitted(kind string)
	RequestAbandoned()
	PendingRequests(count int)
	ControllerRequestTime(operation string, value time.Duration)
}
