/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authorization

import (
	"context"
	"errors"

	authorizationapi "github.com/trustbloc/walletauthz/pkg/authorization"
)

var (
	// ErrRequestNotFound is returned for an unknown or purged correlation handle.
	ErrRequestNotFound = errors.New("authorization request not found")
	// ErrDuplicateRequest is returned by Begin when the correlation handle is already in use.
	ErrDuplicateRequest = errors.New("authorization request already exists")
	// ErrChainNotAllowed is returned by Begin when the grant policy restricts chains and the requested chain is
	// not one of them.
	ErrChainNotAllowed = errors.New("chain is not permitted")
)

// ServiceInterface drives authorization requests by correlation handle.
type ServiceInterface interface {
	Begin(ctx context.Context, req *authorizationapi.Request) (*authorizationapi.Presenter, error)
	Get(id string) (*authorizationapi.Presenter, error)
	Approve(ctx context.Context, id string) (*authorizationapi.Resolution, error)
	Decline(ctx context.Context, id string) (*authorizationapi.Resolution, error)
	Abandon(ctx context.Context, id string) error
	Resolution(ctx context.Context, id string) (*authorizationapi.Resolution, error)
}
