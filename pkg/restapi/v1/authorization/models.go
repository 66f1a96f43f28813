/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authorization

import (
	"time"

	authorizationapi "github.com/trustbloc/walletauthz/pkg/authorization"
	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

// Request status values reported by AuthorizationResponse.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusClosed   = "closed"
)

// BeginAuthorizationRequest is the body of POST /v1/authorizations. Caller is filled in by the wallet front end
// from the platform, never by the dapp.
type BeginAuthorizationRequest struct {
	ID          string                       `json:"id,omitempty"`
	AppIdentity authorizationapi.AppIdentity `json:"app_identity"`
	Chain       string                       `json:"chain,omitempty"`
	Caller      *clienttrust.CallerIdentity  `json:"caller,omitempty"`
}

// AuthorizationResponse is the wallet view of one authorization request.
type AuthorizationResponse struct {
	ID           string                        `json:"id"`
	AppIdentity  authorizationapi.AppIdentity  `json:"app_identity"`
	Chain        string                        `json:"chain,omitempty"`
	ReceivedAt   time.Time                     `json:"received_at"`
	Status       string                        `json:"status"`
	Verification clienttrust.VerificationState `json:"verification"`
	Resolution   *authorizationapi.Resolution  `json:"resolution,omitempty"`
}
