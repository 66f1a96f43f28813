/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attestation

import (
	"context"

	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

// ServiceInterface defines an interface for an attestation evidence source. Lookup returns
// clienttrust.ErrEvidenceNotFound when nothing is published, clienttrust.ErrEvidenceInvalid when the published
// evidence cannot be trusted, and any other error for transient failures.
type ServiceInterface interface {
	Name() string
	Lookup(ctx context.Context, ref *clienttrust.IdentityReference) (*clienttrust.Evidence, error)
}
