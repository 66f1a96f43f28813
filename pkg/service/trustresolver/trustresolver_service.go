/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination trustresolver_service_mocks_test.go -package trustresolver_test -source=trustresolver_service.go -mock_names evidenceLookup=MockEvidenceLookup

package trustresolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/walletauthz/internal/logfields"
	"github.com/trustbloc/walletauthz/pkg/clienttrust"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics/noop"
)

var logger = log.New("trust-resolver")

const (
	DefaultMaxRetries    = 2
	DefaultRetryInterval = 250 * time.Millisecond
	DefaultTimeout       = 10 * time.Second
)

var errLookupPanicked = errors.New("evidence lookup panicked")

type evidenceLookup interface {
	Name() string
	Lookup(ctx context.Context, ref *clienttrust.IdentityReference) (*clienttrust.Evidence, error)
}

// Config defines configuration for Service.
type Config struct {
	EvidenceLookup evidenceLookup
	Metrics        metrics.Metrics
	// MaxRetries is the number of retries after the first failed attempt. Zero disables retries.
	MaxRetries    uint64
	RetryInterval time.Duration
	Timeout       time.Duration
}

// Service resolves the trust outcome of a dapp identity URI.
type Service struct {
	evidenceLookup evidenceLookup
	metrics        metrics.Metrics
	maxRetries     uint64
	retryInterval  time.Duration
	timeout        time.Duration
}

// NewService returns a new Service instance.
func NewService(config *Config) *Service {
	s := &Service{
		evidenceLookup: config.EvidenceLookup,
		metrics:        config.Metrics,
		maxRetries:     config.MaxRetries,
		retryInterval:  config.RetryInterval,
		timeout:        config.Timeout,
	}

	if s.metrics == nil {
		s.metrics = noop.GetMetrics()
	}

	if s.retryInterval <= 0 {
		s.retryInterval = DefaultRetryInterval
	}

	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}

	return s
}

// Verify resolves identityURI against published evidence and compares it with the caller identity reported
// by the platform. An absent identity URI is Unverified without any lookup.
func (s *Service) Verify(
	ctx context.Context,
	identityURI *string,
	caller *clienttrust.CallerIdentity,
) clienttrust.Outcome {
	st := time.Now()

	outcome := s.verify(ctx, identityURI, caller)

	s.metrics.VerificationTime(time.Since(st))
	s.metrics.VerificationOutcome(outcome.Kind.String())

	logger.Infoc(ctx, "Client trust resolved",
		logfields.WithIdentityURI(outcome.IdentityURI),
		logfields.WithOutcome(outcome.Kind.String()),
		logfields.WithReason(string(outcome.Reason)),
		logfields.WithSource(outcome.Source),
		log.WithDuration(time.Since(st)),
	)

	return outcome
}

func (s *Service) verify(
	ctx context.Context,
	identityURI *string,
	caller *clienttrust.CallerIdentity,
) clienttrust.Outcome {
	if clienttrust.IsAbsent(identityURI) {
		return clienttrust.Unverified()
	}

	ref, err := clienttrust.ParseIdentityReference(*identityURI)
	if err != nil {
		return clienttrust.VerificationFailed(*identityURI, clienttrust.ReasonMalformedIdentityURI, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	evidence, err := s.lookupWithRetry(ctx, ref)

	switch {
	case err == nil:
		return compare(ref, evidence, caller)
	case errors.Is(err, clienttrust.ErrEvidenceNotFound):
		return clienttrust.Warning(ref.Raw(), clienttrust.ReasonEvidenceNotFound, s.evidenceLookup.Name())
	case errors.Is(err, clienttrust.ErrEvidenceInvalid):
		o := clienttrust.Warning(ref.Raw(), clienttrust.ReasonInvalidEvidence, s.evidenceLookup.Name())
		o.Detail = err.Error()

		return o
	case errors.Is(err, errLookupPanicked):
		return clienttrust.VerificationFailed(ref.Raw(), clienttrust.ReasonInternalFault, err)
	default:
		return clienttrust.VerificationFailed(ref.Raw(), clienttrust.ReasonLookupFailed, err)
	}
}

func (s *Service) lookupWithRetry(
	ctx context.Context,
	ref *clienttrust.IdentityReference,
) (*clienttrust.Evidence, error) {
	var (
		evidence *clienttrust.Evidence
		attempt  int
	)

	err := backoff.RetryNotify(
		func() error {
			attempt++

			s.metrics.EvidenceLookupAttempt(s.evidenceLookup.Name())

			var err error

			evidence, err = s.lookup(ctx, ref)
			if err == nil {
				return nil
			}

			if errors.Is(err, clienttrust.ErrEvidenceNotFound) ||
				errors.Is(err, clienttrust.ErrEvidenceInvalid) ||
				errors.Is(err, errLookupPanicked) ||
				ctx.Err() != nil {
				return backoff.Permanent(err)
			}

			return err
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(s.retryInterval), s.maxRetries),
			ctx,
		),
		func(err error, wait time.Duration) {
			logger.Warnc(ctx, "Evidence lookup failed, retrying",
				logfields.WithIdentityURI(ref.Origin()),
				logfields.WithAttempt(attempt),
				log.WithDuration(wait),
				log.WithError(err),
			)
		},
	)
	if err != nil {
		return nil, err
	}

	return evidence, nil
}

func (s *Service) lookup(
	ctx context.Context,
	ref *clienttrust.IdentityReference,
) (evidence *clienttrust.Evidence, err error) {
	defer func() {
		if r := recover(); r != nil {
			evidence = nil
			err = fmt.Errorf("%w: %v", errLookupPanicked, r)
		}
	}()

	evidence, err = s.evidenceLookup.Lookup(ctx, ref)
	if err == nil && evidence == nil {
		return nil, clienttrust.ErrEvidenceNotFound
	}

	return evidence, err
}

// compare applies the comparison rules in order; the first failing rule decides the outcome.
func compare(
	ref *clienttrust.IdentityReference,
	evidence *clienttrust.Evidence,
	caller *clienttrust.CallerIdentity,
) clienttrust.Outcome {
	uri := ref.Raw()

	if !ref.SameOrigin(evidence.Subject) {
		return clienttrust.Warning(uri, clienttrust.ReasonSubjectMismatch, evidence.Source)
	}

	if len(evidence.Apps) == 0 {
		return clienttrust.Warning(uri, clienttrust.ReasonEvidenceNotFound, evidence.Source)
	}

	if !caller.Known() {
		return clienttrust.Warning(uri, clienttrust.ReasonCallerUnknown, evidence.Source)
	}

	statements := lo.Filter(evidence.Apps, func(app clienttrust.AppStatement, _ int) bool {
		return app.PackageName == caller.PackageName
	})
	if len(statements) == 0 {
		return clienttrust.Warning(uri, clienttrust.ReasonPackageMismatch, evidence.Source)
	}

	pinned := lo.Filter(statements, func(app clienttrust.AppStatement, _ int) bool {
		return len(lo.Compact(app.CertFingerprints)) > 0
	})

	if len(pinned) > 0 {
		matched := lo.ContainsBy(pinned, func(app clienttrust.AppStatement) bool {
			return clienttrust.FingerprintsOverlap(app.CertFingerprints, caller.CertFingerprints)
		})
		if !matched {
			return clienttrust.Warning(uri, clienttrust.ReasonCertificateMismatch, evidence.Source)
		}
	}

	if len(pinned) == 0 || evidence.Strength != clienttrust.StrengthStrong {
		return clienttrust.Warning(uri, clienttrust.ReasonWeakAttestation, evidence.Source)
	}

	return clienttrust.Verified(uri, evidence.Source)
}
