/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package trustresolver

import (
	"context"

	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

// ServiceInterface defines an interface for the trust resolver. The task of the service is to decide whether the
// identity URI claimed by a dapp is backed by published attestation evidence for the calling application.
// Verify never returns an error: every failure is expressed as an Outcome.
type ServiceInterface interface {
	Verify(ctx context.Context, identityURI *string, caller *clienttrust.CallerIdentity) clienttrust.Outcome
}
