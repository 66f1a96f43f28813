/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination authorization_service_mocks_test.go -package authorization_test -source=authorization_service.go -mock_names trustResolver=MockTrustResolver,resolutionStore=MockResolutionStore

package authorization

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/walletauthz/internal/logfields"
	authorizationapi "github.com/trustbloc/walletauthz/pkg/authorization"
	"github.com/trustbloc/walletauthz/pkg/clienttrust"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics/noop"
	"github.com/trustbloc/walletauthz/pkg/wallet"
)

const (
	DefaultRequestTTL = 5 * time.Minute
)

var logger = log.New("authorization-service")

type walletContext interface {
	Current() *wallet.Wallet
}

type trustResolver interface {
	Verify(ctx context.Context, identityURI *string, caller *clienttrust.CallerIdentity) clienttrust.Outcome
}

type resolutionStore interface {
	Resolve(ctx context.Context, req *authorizationapi.Request, resolution *authorizationapi.Resolution) error
	Get(ctx context.Context, requestID string) (*authorizationapi.Resolution, error)
}

type renderer interface {
	Render(ctx context.Context, req *authorizationapi.Request, state clienttrust.VerificationState)
}

// Config defines configuration for Service.
type Config struct {
	WalletContext walletContext
	TrustResolver trustResolver
	Store         resolutionStore
	Renderer      renderer
	Policy        *authorizationapi.GrantPolicy
	Metrics       metrics.Metrics
	// RequestTTL bounds how long an unresolved request waits for a decision. The entry is kept for
	// another RequestTTL afterwards so late decisions report the request as closed.
	RequestTTL time.Duration
}

type entry struct {
	presenter *authorizationapi.Presenter
	timer     *time.Timer
	expired   bool
}

// Service keeps one presenter per live authorization request.
type Service struct {
	walletContext walletContext
	trustResolver trustResolver
	store         resolutionStore
	renderer      renderer
	policy        *authorizationapi.GrantPolicy
	metrics       metrics.Metrics
	requestTTL    time.Duration

	mu      sync.Mutex
	entries map[string]*entry
}

// NewService creates Service.
func NewService(config *Config) *Service {
	s := &Service{
		walletContext: config.WalletContext,
		trustResolver: config.TrustResolver,
		store:         config.Store,
		renderer:      config.Renderer,
		policy:        config.Policy,
		metrics:       config.Metrics,
		requestTTL:    config.RequestTTL,
		entries:       map[string]*entry{},
	}

	if s.policy == nil {
		s.policy = authorizationapi.DefaultGrantPolicy()
	}

	if s.metrics == nil {
		s.metrics = noop.GetMetrics()
	}

	if s.requestTTL <= 0 {
		s.requestTTL = DefaultRequestTTL
	}

	if s.renderer == nil {
		s.renderer = NewLogRenderer()
	}

	return s
}

// Begin registers req, starts its verification and returns the presenter. A correlation handle is assigned
// when req has none.
func (s *Service) Begin(ctx context.Context, req *authorizationapi.Request) (*authorizationapi.Presenter, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	if req.ReceivedAt.IsZero() {
		req.ReceivedAt = time.Now().UTC()
	}

	if !s.policy.AllowsChain(req.Chain) {
		return nil, fmt.Errorf("%w: %s", ErrChainNotAllowed, req.Chain)
	}

	presenter, err := authorizationapi.NewPresenter(req, &authorizationapi.Config{
		WalletContext: s.walletContext,
		TrustResolver: s.trustResolver,
		Emitter:       s.store,
		Renderer:      s.renderer,
		Policy:        s.policy,
		Metrics:       s.metrics,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()

	if _, ok := s.entries[req.ID]; ok {
		s.mu.Unlock()

		return nil, ErrDuplicateRequest
	}

	e := &entry{presenter: presenter}
	e.timer = time.AfterFunc(s.requestTTL, func() { s.expire(req.ID, e) })
	s.entries[req.ID] = e

	s.reportPending()
	s.mu.Unlock()

	logger.Infoc(ctx, "Authorization request received",
		logfields.WithRequestID(req.ID),
		logfields.WithChain(req.Chain),
	)
	logger.Debugc(ctx, "Authorization request details", logfields.WithEvent(req))

	presenter.Start(ctx)

	return presenter, nil
}

// Get returns the presenter of request id.
func (s *Service) Get(id string) (*authorizationapi.Presenter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, ErrRequestNotFound
	}

	return e.presenter, nil
}

// Approve emits a grant for request id.
func (s *Service) Approve(ctx context.Context, id string) (*authorizationapi.Resolution, error) {
	presenter, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	defer s.updatePending()

	return presenter.Approve(ctx)
}

// Decline emits a decline for request id.
func (s *Service) Decline(ctx context.Context, id string) (*authorizationapi.Resolution, error) {
	presenter, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	defer s.updatePending()

	return presenter.Decline(ctx)
}

// Abandon tears request id down without emitting a resolution. Abandoning a resolved request has no effect.
func (s *Service) Abandon(ctx context.Context, id string) error {
	presenter, err := s.Get(id)
	if err != nil {
		return err
	}

	s.close(ctx, id, presenter)
	s.updatePending()

	return nil
}

// Resolution returns the resolution emitted for request id, as recorded in the store.
func (s *Service) Resolution(ctx context.Context, id string) (*authorizationapi.Resolution, error) {
	return s.store.Get(ctx, id)
}

// Close abandons every live request. Used on shutdown.
func (s *Service) Close() {
	s.mu.Lock()
	entries := s.entries
	s.entries = map[string]*entry{}
	s.mu.Unlock()

	for id, e := range entries {
		e.timer.Stop()
		s.close(context.Background(), id, e.presenter)
	}

	s.metrics.PendingRequests(0)
}

func (s *Service) close(ctx context.Context, id string, presenter *authorizationapi.Presenter) {
	if isDone(presenter) {
		return
	}

	presenter.Close()

	if _, resolved := presenter.Resolution(); resolved {
		return
	}

	s.metrics.RequestAbandoned()

	logger.Infoc(ctx, "Authorization request abandoned", logfields.WithRequestID(id))
}

// expire closes a request that outlived its TTL, then purges it one TTL later.
func (s *Service) expire(id string, e *entry) {
	s.mu.Lock()

	if s.entries[id] != e {
		s.mu.Unlock()

		return
	}

	if e.expired {
		delete(s.entries, id)
		s.reportPending()
		s.mu.Unlock()

		logger.Debug("Authorization request purged", logfields.WithRequestID(id))

		return
	}

	e.expired = true
	e.timer = time.AfterFunc(s.requestTTL, func() { s.expire(id, e) })
	s.mu.Unlock()

	s.close(context.Background(), id, e.presenter)
	s.updatePending()
}

func (s *Service) updatePending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reportPending()
}

// reportPending must be called with mu held.
func (s *Service) reportPending() {
	pending := 0

	for _, e := range s.entries {
		if !isDone(e.presenter) {
			pending++
		}
	}

	s.metrics.PendingRequests(pending)
}

func isDone(presenter *authorizationapi.Presenter) bool {
	select {
	case <-presenter.Done():
		return true
	default:
		return false
	}
}
