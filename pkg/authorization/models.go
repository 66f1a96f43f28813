/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authorization

import (
	"time"

	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

// AppIdentity is the identity metadata a dapp presents with its request.
type AppIdentity struct {
	Name string `json:"name,omitempty"`
	// URI is the identity reference asserted by the dapp; nil when the dapp supplied none.
	URI  *string `json:"uri,omitempty"`
	Icon string  `json:"icon,omitempty"`
}

// Request is one authorization handshake attempt.
type Request struct {
	// ID is the correlation handle used to route the single resolution back to the dapp.
	ID          string      `json:"id"`
	AppIdentity AppIdentity `json:"app_identity"`
	// Chain is the network selector requested by the dapp, e.g. solana:devnet.
	Chain string `json:"chain,omitempty"`
	// Caller is the runtime identity of the calling application as reported by the platform.
	Caller     *clienttrust.CallerIdentity `json:"caller,omitempty"`
	ReceivedAt time.Time                   `json:"received_at"`
}

// IdentityURI returns the asserted identity reference or an empty string.
func (r *Request) IdentityURI() string {
	if r.AppIdentity.URI == nil {
		return ""
	}

	return *r.AppIdentity.URI
}

// Account is an account exposed to the dapp by a grant.
type Account struct {
	// PublicKey is the base58 encoded wallet public key.
	PublicKey string   `json:"public_key"`
	Label     string   `json:"label,omitempty"`
	Icon      string   `json:"icon,omitempty"`
	Chains    []string `json:"chains"`
	Features  []string `json:"features,omitempty"`
}

// Grant is the approve response.
type Grant struct {
	Accounts           []Account `json:"accounts"`
	AuthorizationScope []byte    `json:"authorization_scope"`
}

// FailReason is the reason code carried by a decline.
type FailReason string

const FailReasonUserDeclined FailReason = "USER_DECLINED"

// ResolutionKind tells a grant from a decline.
type ResolutionKind string

const (
	ResolutionGrant   ResolutionKind = "grant"
	ResolutionDecline ResolutionKind = "decline"
)

// Resolution is the single terminal response of a request.
type Resolution struct {
	RequestID  string         `json:"request_id"`
	Kind       ResolutionKind `json:"kind"`
	Grant      *Grant         `json:"grant,omitempty"`
	FailReason FailReason     `json:"fail_reason,omitempty"`
	// Verification is the trust state shown to the user when the decision was taken.
	Verification clienttrust.VerificationState `json:"verification"`
	ResolvedAt   time.Time                     `json:"resolved_at"`
}
