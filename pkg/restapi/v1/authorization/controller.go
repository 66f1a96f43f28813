/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination controller_mocks_test.go -package authorization_test -source=controller.go -mock_names authorizationService=MockAuthorizationService

package authorization

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/walletauthz/internal/logfields"
	authorizationapi "github.com/trustbloc/walletauthz/pkg/authorization"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics/noop"
	"github.com/trustbloc/walletauthz/pkg/restapi/resterr"
	authorizationerr "github.com/trustbloc/walletauthz/pkg/restapi/resterr/authorization"
	"github.com/trustbloc/walletauthz/pkg/restapi/v1/util"
	authorizationsvc "github.com/trustbloc/walletauthz/pkg/service/authorization"
)

var logger = log.New("restapi-authorization")

const (
	DefaultWaitTimeout = 30 * time.Second

	idParam   = "id"
	waitQuery = "wait"
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type authorizationService interface {
	Begin(ctx context.Context, req *authorizationapi.Request) (*authorizationapi.Presenter, error)
	Get(id string) (*authorizationapi.Presenter, error)
	Approve(ctx context.Context, id string) (*authorizationapi.Resolution, error)
	Decline(ctx context.Context, id string) (*authorizationapi.Resolution, error)
	Abandon(ctx context.Context, id string) error
	Resolution(ctx context.Context, id string) (*authorizationapi.Resolution, error)
}

// Config holds configuration options for Controller.
type Config struct {
	AuthorizationService authorizationService
	Metrics              metrics.Metrics
	Tracer               trace.Tracer
	// WaitTimeout bounds GET ?wait=true long polls.
	WaitTimeout time.Duration
}

// Controller for the wallet authorization API.
type Controller struct {
	svc         authorizationService
	metrics     metrics.Metrics
	tracer      trace.Tracer
	waitTimeout time.Duration
}

// NewController creates a new Controller instance and registers its routes under /v1/authorizations.
func NewController(router router, config *Config) *Controller {
	c := &Controller{
		svc:         config.AuthorizationService,
		metrics:     config.Metrics,
		tracer:      config.Tracer,
		waitTimeout: config.WaitTimeout,
	}

	if c.metrics == nil {
		c.metrics = noop.GetMetrics()
	}

	if c.waitTimeout <= 0 {
		c.waitTimeout = DefaultWaitTimeout
	}

	router.POST("/v1/authorizations", c.PostAuthorization)
	router.GET("/v1/authorizations/:id", c.GetAuthorization)
	router.POST("/v1/authorizations/:id/approve", c.ApproveAuthorization)
	router.POST("/v1/authorizations/:id/decline", c.DeclineAuthorization)
	router.DELETE("/v1/authorizations/:id", c.DeleteAuthorization)
	router.GET("/v1/authorizations/:id/resolution", c.GetResolution)

	return c
}

// PostAuthorization begins a handshake.
// POST /v1/authorizations.
func (c *Controller) PostAuthorization(e echo.Context) error {
	defer c.recordTime("PostAuthorization", time.Now())

	ctx, span := c.tracer.Start(e.Request().Context(), "PostAuthorization")
	defer span.End()

	var body BeginAuthorizationRequest

	if err := util.ReadBody(e, &body); err != nil {
		return authorizationerr.NewInvalidRequestError(err).WithIncorrectValue("requestBody")
	}

	if err := util.ValidateChain(body.Chain); err != nil {
		return authorizationerr.NewInvalidRequestError(err).WithIncorrectValue("chain")
	}

	req := &authorizationapi.Request{
		ID:          body.ID,
		AppIdentity: body.AppIdentity,
		Chain:       body.Chain,
		Caller:      body.Caller,
	}

	presenter, err := c.svc.Begin(ctx, req)
	if err != nil {
		return mapError("Begin", body.ID, err)
	}

	return util.WriteOutputWithCode(http.StatusCreated, e)(toResponse(presenter), nil)
}

// GetAuthorization returns the request and its verification state. With ?wait=true the call blocks until the
// verification resolves, the request is closed, or the wait timeout elapses.
// GET /v1/authorizations/:id.
func (c *Controller) GetAuthorization(e echo.Context) error {
	defer c.recordTime("GetAuthorization", time.Now())

	id := e.Param(idParam)

	presenter, err := c.svc.Get(id)
	if err != nil {
		return mapError("Get", id, err)
	}

	if wait := e.QueryParam(waitQuery); wait != "" {
		doWait, parseErr := strconv.ParseBool(wait)
		if parseErr != nil {
			return authorizationerr.NewInvalidRequestError(parseErr).WithIncorrectValue(waitQuery)
		}

		if doWait {
			ctx, cancel := context.WithTimeout(e.Request().Context(), c.waitTimeout)
			defer cancel()

			if _, err = presenter.Wait(ctx); err != nil {
				logger.Debugc(ctx, "Long poll ended before verification resolved",
					logfields.WithRequestID(id), log.WithError(err))
			}
		}
	}

	return util.WriteOutput(e)(toResponse(presenter), nil)
}

// ApproveAuthorization emits a grant.
// POST /v1/authorizations/:id/approve.
func (c *Controller) ApproveAuthorization(e echo.Context) error {
	defer c.recordTime("ApproveAuthorization", time.Now())

	ctx, span := c.tracer.Start(e.Request().Context(), "ApproveAuthorization")
	defer span.End()

	id := e.Param(idParam)

	resolution, err := c.svc.Approve(ctx, id)
	if err != nil {
		return mapError("Approve", id, err)
	}

	return util.WriteOutput(e)(resolution, nil)
}

// DeclineAuthorization emits a decline.
// POST /v1/authorizations/:id/decline.
func (c *Controller) DeclineAuthorization(e echo.Context) error {
	defer c.recordTime("DeclineAuthorization", time.Now())

	ctx, span := c.tracer.Start(e.Request().Context(), "DeclineAuthorization")
	defer span.End()

	id := e.Param(idParam)

	resolution, err := c.svc.Decline(ctx, id)
	if err != nil {
		return mapError("Decline", id, err)
	}

	return util.WriteOutput(e)(resolution, nil)
}

// DeleteAuthorization abandons the request without a resolution.
// DELETE /v1/authorizations/:id.
func (c *Controller) DeleteAuthorization(e echo.Context) error {
	defer c.recordTime("DeleteAuthorization", time.Now())

	id := e.Param(idParam)

	if err := c.svc.Abandon(e.Request().Context(), id); err != nil {
		return mapError("Abandon", id, err)
	}

	return e.NoContent(http.StatusNoContent)
}

// GetResolution returns the resolution collected by the dapp side.
// GET /v1/authorizations/:id/resolution.
func (c *Controller) GetResolution(e echo.Context) error {
	defer c.recordTime("GetResolution", time.Now())

	id := e.Param(idParam)

	resolution, err := c.svc.Resolution(e.Request().Context(), id)
	if err != nil {
		return mapError("Resolution", id, err)
	}

	return util.WriteOutput(e)(resolution, nil)
}

func (c *Controller) recordTime(operation string, start time.Time) {
	c.metrics.ControllerRequestTime(operation, time.Since(start))
}

func toResponse(presenter *authorizationapi.Presenter) *AuthorizationResponse {
	req := presenter.Request()

	resp := &AuthorizationResponse{
		ID:           req.ID,
		AppIdentity:  req.AppIdentity,
		Chain:        req.Chain,
		ReceivedAt:   req.ReceivedAt,
		Status:       StatusPending,
		Verification: presenter.State(),
	}

	if resolution, ok := presenter.Resolution(); ok {
		resp.Status = StatusResolved
		resp.Resolution = resolution

		return resp
	}

	select {
	case <-presenter.Done():
		resp.Status = StatusClosed
	default:
	}

	return resp
}

func mapError(operation, id string, err error) error {
	var e *authorizationerr.Error

	switch {
	case errors.Is(err, authorizationsvc.ErrRequestNotFound):
		e = authorizationerr.NewNotFoundError(err)
	case errors.Is(err, authorizationsvc.ErrDuplicateRequest):
		e = authorizationerr.NewAlreadyExistsError(err)
	case errors.Is(err, authorizationsvc.ErrChainNotAllowed):
		e = authorizationerr.NewChainNotAllowedError(err)
	case errors.Is(err, authorizationapi.ErrNoWallet):
		e = authorizationerr.NewWalletNotReadyError(err).WithComponent(resterr.WalletComponent)
	case errors.Is(err, authorizationapi.ErrAlreadyResolved):
		e = authorizationerr.NewAlreadyResolvedError(err)
	case errors.Is(err, authorizationapi.ErrPresenterClosed):
		e = authorizationerr.NewRequestClosedError(err)
	case errors.Is(err, authorizationapi.ErrApprovalBlocked):
		e = authorizationerr.NewApprovalBlockedError(err)
	case errors.Is(err, authorizationapi.ErrDataNotFound):
		e = authorizationerr.NewNotResolvedError(err).WithComponent(resterr.AuthorizationStoreComponent)
	default:
		e = authorizationerr.NewSystemError(err)
	}

	if e.ErrorComponent == "" {
		e = e.WithComponent(resterr.AuthorizationSvcComponent)
	}

	e = e.WithOperation(operation)

	if id != "" {
		e = e.WithIncorrectValue(id)
	}

	return e
}
