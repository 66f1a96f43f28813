/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package authorization

import (
	"github.com/samber/lo"

	"github.com/trustbloc/walletauthz/pkg/wallet"
)

// GrantPolicy is the externally supplied account and scope selection used for grants.
type GrantPolicy struct {
	AccountLabel       string
	AccountIcon        string
	Chains             []string
	Features           []string
	AuthorizationScope []byte
	// RequireVerified blocks Approve unless the verification resolved as Verified. Decline is never blocked.
	RequireVerified bool
	// RestrictChains rejects requests for a chain outside Chains. Off by default: the requested chain is
	// shown to the user and the grant always carries Chains.
	RestrictChains bool
}

// DefaultGrantPolicy returns the permissive policy granting the current wallet on the Solana test networks.
func DefaultGrantPolicy() *GrantPolicy {
	return &GrantPolicy{
		AccountLabel:       "Wallet",
		AccountIcon:        "data:text/plain;base64",
		Chains:             []string{"solana:devnet", "solana:testnet"},
		Features:           []string{"solana:signTransactions"},
		AuthorizationScope: []byte("app"),
	}
}

// Grant builds the grant exposing w.
func (p *GrantPolicy) Grant(w *wallet.Wallet) *Grant {
	return &Grant{
		Accounts: []Account{
			{
				PublicKey: w.Address(),
				Label:     p.AccountLabel,
				Icon:      p.AccountIcon,
				Chains:    append([]string(nil), p.Chains...),
				Features:  append([]string(nil), p.Features...),
			},
		},
		AuthorizationScope: append([]byte(nil), p.AuthorizationScope...),
	}
}

// AllowsChain reports whether a request for chain may be presented. Every chain is allowed unless
// RestrictChains is set; an empty selector is always allowed.
func (p *GrantPolicy) AllowsChain(chain string) bool {
	return !p.RestrictChains || chain == "" || lo.Contains(p.Chains, chain)
}
