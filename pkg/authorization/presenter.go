/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination presenter_mocks_test.go -package authorization_test -source=presenter.go -mock_names trustResolver=MockTrustResolver,emitter=MockEmitter,renderer=MockRenderer

package authorization

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/walletauthz/internal/logfields"
	"github.com/trustbloc/walletauthz/pkg/clienttrust"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics/noop"
	"github.com/trustbloc/walletauthz/pkg/wallet"
)

var logger = log.New("authorization-presenter")

var (
	// ErrNoWallet is a precondition fault: a request cannot be presented without a current wallet.
	ErrNoWallet = errors.New("no wallet available")
	// ErrAlreadyResolved is returned once a resolution has been emitted for the request.
	ErrAlreadyResolved = errors.New("authorization request already resolved")
	// ErrPresenterClosed is returned after the presenter was torn down without a resolution.
	ErrPresenterClosed = errors.New("authorization presenter closed")
	// ErrApprovalBlocked is returned by Approve when the grant policy requires a verified caller.
	ErrApprovalBlocked = errors.New("approval blocked by policy: caller is not verified")
)

type walletContext interface {
	Current() *wallet.Wallet
}

type trustResolver interface {
	Verify(ctx context.Context, identityURI *string, caller *clienttrust.CallerIdentity) clienttrust.Outcome
}

type emitter interface {
	Resolve(ctx context.Context, req *Request, resolution *Resolution) error
}

// renderer must not call back into the presenter.
type renderer interface {
	Render(ctx context.Context, req *Request, state clienttrust.VerificationState)
}

// Config defines configuration for Presenter.
type Config struct {
	WalletContext walletContext
	TrustResolver trustResolver
	Emitter       emitter
	Renderer      renderer
	Policy        *GrantPolicy
	Metrics       metrics.Metrics
}

// Presenter binds one authorization request to its verification and gates the approve and decline actions.
// At most one resolution is emitted per presenter.
type Presenter struct {
	request  *Request
	wallet   *wallet.Wallet
	resolver trustResolver
	emitter  emitter
	renderer renderer
	policy   *GrantPolicy
	metrics  metrics.Metrics

	verification *clienttrust.Verification

	startOnce sync.Once
	stopOnce  sync.Once
	stopped   chan struct{}
	cancel    context.CancelFunc

	mu         sync.Mutex
	consumed   bool
	closed     bool
	resolution *Resolution
}

// NewPresenter returns a presenter for req. It fails with ErrNoWallet when no wallet is selected; nothing is
// rendered in that case.
func NewPresenter(req *Request, config *Config) (*Presenter, error) {
	if req == nil {
		return nil, errors.New("nil authorization request")
	}

	var current *wallet.Wallet

	if config.WalletContext != nil {
		current = config.WalletContext.Current()
	}

	if current == nil {
		return nil, ErrNoWallet
	}

	if config.TrustResolver == nil {
		return nil, errors.New("trust resolver is required")
	}

	if config.Emitter == nil {
		return nil, errors.New("resolution emitter is required")
	}

	p := &Presenter{
		request:      req,
		wallet:       current,
		resolver:     config.TrustResolver,
		emitter:      config.Emitter,
		renderer:     config.Renderer,
		policy:       config.Policy,
		metrics:      config.Metrics,
		verification: clienttrust.NewVerification(req.IdentityURI()),
		stopped:      make(chan struct{}),
		cancel:       func() {},
	}

	if p.policy == nil {
		p.policy = DefaultGrantPolicy()
	}

	if p.metrics == nil {
		p.metrics = noop.GetMetrics()
	}

	return p, nil
}

// Request returns the presented request.
func (p *Presenter) Request() *Request {
	return p.request
}

// State returns the current verification state.
func (p *Presenter) State() clienttrust.VerificationState {
	return p.verification.State()
}

// Resolution returns the emitted resolution, if any.
func (p *Presenter) Resolution() (*Resolution, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.resolution, p.resolution != nil
}

// Done is closed once the presenter is retired or closed.
func (p *Presenter) Done() <-chan struct{} {
	return p.stopped
}

// Start renders the InProgress state and launches the trust verification. Only the first call has an effect.
// The verification runs detached from ctx cancellation and ends when the presenter is retired or closed.
func (p *Presenter) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.mu.Lock()

		if p.closed || p.consumed {
			p.mu.Unlock()

			return
		}

		runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		p.cancel = cancel

		p.render(ctx, p.verification.State())
		p.mu.Unlock()

		go p.resolve(runCtx)
	})
}

func (p *Presenter) resolve(ctx context.Context) {
	outcome := p.resolver.Verify(ctx, p.request.AppIdentity.URI, p.request.Caller)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.consumed {
		logger.Debugc(ctx, "Discarding verification outcome of a retired request",
			logfields.WithRequestID(p.request.ID),
			logfields.WithOutcome(outcome.String()),
		)

		return
	}

	if !p.verification.Resolve(outcome) {
		return
	}

	p.render(ctx, p.verification.State())
}

func (p *Presenter) render(ctx context.Context, state clienttrust.VerificationState) {
	logger.Debugc(ctx, "Render verification state",
		logfields.WithRequestID(p.request.ID),
		logfields.WithState(state.String()),
	)

	if p.renderer != nil {
		p.renderer.Render(ctx, p.request, state)
	}
}

// Wait blocks until the verification resolves, the presenter stops, or ctx ends, and returns the state
// observed at that point.
func (p *Presenter) Wait(ctx context.Context) (clienttrust.VerificationState, error) {
	select {
	case <-p.verification.Done():
	case <-p.stopped:
	case <-ctx.Done():
		return p.State(), ctx.Err()
	}

	return p.State(), nil
}

// Approve emits a grant for the current wallet. It is available whatever the verification state unless the
// policy requires a verified caller.
func (p *Presenter) Approve(ctx context.Context) (*Resolution, error) {
	return p.emit(ctx, ResolutionGrant)
}

// Decline emits a decline carrying FailReasonUserDeclined. It is available in every verification state.
func (p *Presenter) Decline(ctx context.Context) (*Resolution, error) {
	return p.emit(ctx, ResolutionDecline)
}

func (p *Presenter) emit(ctx context.Context, kind ResolutionKind) (*Resolution, error) {
	// The verification must have started before any decision is emitted.
	p.Start(ctx)

	resolution, err := p.consume(kind)
	if err != nil {
		return nil, err
	}

	defer p.stop()

	// Runs unlocked; the guard is already consumed.
	if err = p.emitter.Resolve(ctx, p.request, resolution); err != nil {
		logger.Errorc(ctx, "Failed to emit authorization resolution",
			logfields.WithRequestID(p.request.ID),
			logfields.WithResolutionKind(string(kind)),
			log.WithError(err),
		)

		return nil, fmt.Errorf("emit %s: %w", kind, err)
	}

	p.mu.Lock()
	p.resolution = resolution
	p.mu.Unlock()

	p.metrics.ResolutionEmitted(string(kind))

	logger.Infoc(ctx, "Authorization request resolved",
		logfields.WithRequestID(p.request.ID),
		logfields.WithResolutionKind(string(kind)),
		logfields.WithState(resolution.Verification.String()),
	)

	return resolution, nil
}

// consume takes the one-shot guard and builds the resolution of kind.
func (p *Presenter) consume(kind ResolutionKind) (*Resolution, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.consumed {
		return nil, ErrAlreadyResolved
	}

	if p.closed {
		return nil, ErrPresenterClosed
	}

	state := p.verification.State()

	if kind == ResolutionGrant && p.policy.RequireVerified && !isVerified(state) {
		return nil, ErrApprovalBlocked
	}

	p.consumed = true
	p.cancel()

	resolution := &Resolution{
		RequestID:    p.request.ID,
		Kind:         kind,
		Verification: state,
		ResolvedAt:   time.Now().UTC(),
	}

	if kind == ResolutionGrant {
		resolution.Grant = p.policy.Grant(p.wallet)
	} else {
		resolution.FailReason = FailReasonUserDeclined
	}

	return resolution, nil
}

// Close tears the presenter down. A pending verification is cancelled and its result discarded; no
// resolution is emitted. Close is idempotent.
func (p *Presenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.closed = true
	p.cancel()
	p.stop()
}

func (p *Presenter) stop() {
	p.stopOnce.Do(func() {
		close(p.stopped)
	})
}

func isVerified(state clienttrust.VerificationState) bool {
	outcome, ok := state.Outcome()

	return ok && outcome.Kind == clienttrust.KindVerified
}
