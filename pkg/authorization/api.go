/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authorization

import (
	"context"
	"errors"
)

// ErrDataNotFound is returned by resolution stores when nothing was emitted for a request.
var ErrDataNotFound = errors.New("data not found")

// ResolutionStore records the single resolution of each request where the calling dapp can collect it.
// Resolve returns ErrAlreadyResolved when a resolution exists for the request.
type ResolutionStore interface {
	Resolve(ctx context.Context, req *Request, resolution *Resolution) error
	Get(ctx context.Context, requestID string) (*Resolution, error)
}
