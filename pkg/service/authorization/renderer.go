/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authorization

import (
	"context"

	"go.uber.org/zap"

	"github.com/trustbloc/walletauthz/internal/logfields"
	authorizationapi "github.com/trustbloc/walletauthz/pkg/authorization"
	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

// LogRenderer reports verification states in the service log. Headless deployments have no screen; the
// REST API exposes the same states to the wallet front end.
type LogRenderer struct{}

// NewLogRenderer returns LogRenderer.
func NewLogRenderer() *LogRenderer {
	return &LogRenderer{}
}

// Render logs state for req.
func (r *LogRenderer) Render(ctx context.Context, req *authorizationapi.Request, state clienttrust.VerificationState) {
	fields := []zap.Field{
		logfields.WithRequestID(req.ID),
		logfields.WithState(state.String()),
	}

	if outcome, ok := state.Outcome(); ok && outcome.Reason != clienttrust.ReasonNone {
		fields = append(fields, logfields.WithReason(string(outcome.Reason)))
	}

	logger.Infoc(ctx, "Authorization request verification state", fields...)
}
