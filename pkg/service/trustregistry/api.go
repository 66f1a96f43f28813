/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package trustregistry

import (
	"context"

	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

// ServiceInterface defines an interface for the trust registry client. The registry vouches for the applications
// allowed to act on behalf of an identity origin by returning a signed attestation.
type ServiceInterface interface {
	Name() string
	Lookup(ctx context.Context, ref *clienttrust.IdentityReference) (*clienttrust.Evidence, error)
}
