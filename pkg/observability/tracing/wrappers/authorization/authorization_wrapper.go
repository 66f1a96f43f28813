/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package authorization . Service

package authorization

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	authorizationapi "github.com/trustbloc/walletauthz/pkg/authorization"
	"github.com/trustbloc/walletauthz/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/walletauthz/pkg/service/authorization"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements authorization.ServiceInterface

type Service authorization.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) Begin(
	ctx context.Context,
	req *authorizationapi.Request,
) (*authorizationapi.Presenter, error) {
	ctx, span := w.tracer.Start(ctx, "authorization.Begin")
	defer span.End()

	span.SetAttributes(attributeutil.JSON("request", req,
		attributeutil.WithRedacted("caller.sha256_cert_fingerprints")))

	presenter, err := w.svc.Begin(ctx, req)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("request_id", req.ID))

	return presenter, nil
}

func (w *Wrapper) Get(id string) (*authorizationapi.Presenter, error) {
	return w.svc.Get(id)
}

func (w *Wrapper) Approve(ctx context.Context, id string) (*authorizationapi.Resolution, error) {
	ctx, span := w.tracer.Start(ctx, "authorization.Approve")
	defer span.End()

	span.SetAttributes(attribute.String("request_id", id))

	res, err := w.svc.Approve(ctx, id)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attributeutil.JSON("verification", res.Verification))

	return res, nil
}

func (w *Wrapper) Decline(ctx context.Context, id string) (*authorizationapi.Resolution, error) {
	ctx, span := w.tracer.Start(ctx, "authorization.Decline")
	defer span.End()

	span.SetAttributes(attribute.String("request_id", id))

	res, err := w.svc.Decline(ctx, id)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attributeutil.JSON("verification", res.Verification))

	return res, nil
}

func (w *Wrapper) Abandon(ctx context.Context, id string) error {
	ctx, span := w.tracer.Start(ctx, "authorization.Abandon")
	defer span.End()

	span.SetAttributes(attribute.String("request_id", id))

	return w.svc.Abandon(ctx, id)
}

func (w *Wrapper) Resolution(ctx context.Context, id string) (*authorizationapi.Resolution, error) {
	ctx, span := w.tracer.Start(ctx, "authorization.Resolution")
	defer span.End()

	span.SetAttributes(attribute.String("request_id", id))

	return w.svc.Resolution(ctx, id)
}
