/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package trustresolver . Service

package trustresolver

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/walletauthz/pkg/clienttrust"
	"github.com/trustbloc/walletauthz/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/walletauthz/pkg/service/trustresolver"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements trustresolver.ServiceInterface

type Service trustresolver.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) Verify(
	ctx context.Context,
	identityURI *string,
	caller *clienttrust.CallerIdentity,
) clienttrust.Outcome {
	ctx, span := w.tracer.Start(ctx, "trustresolver.Verify")
	defer span.End()

	if identityURI != nil {
		span.SetAttributes(attribute.String("identity_uri", *identityURI))
	}

	span.SetAttributes(attributeutil.JSON("caller", caller,
		attributeutil.WithRedacted("sha256_cert_fingerprints")))

	outcome := w.svc.Verify(ctx, identityURI, caller)

	span.SetAttributes(
		attribute.String("outcome", outcome.Kind.String()),
		attribute.String("reason", string(outcome.Reason)),
		attribute.String("source", outcome.Source),
	)

	if outcome.Kind == clienttrust.KindVerificationFailed {
		span.SetStatus(codes.Error, string(outcome.Reason))
	}

	return outcome
}
