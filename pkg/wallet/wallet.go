/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package wallet

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mr-tron/base58"
)

// PublicKeySize is the size of an ed25519 wallet public key.
const PublicKeySize = 32

var ErrInvalidPublicKey = errors.New("invalid wallet public key")

// Wallet is the public identity of the user's wallet.
type Wallet struct {
	publicKey []byte
}

// New returns a Wallet for publicKey.
func New(publicKey []byte) (*Wallet, error) {
	if len(publicKey) != PublicKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPublicKey, PublicKeySize, len(publicKey))
	}

	return &Wallet{publicKey: append([]byte(nil), publicKey...)}, nil
}

// FromBase58 decodes a base58 encoded public key into a Wallet.
func FromBase58(encoded string) (*Wallet, error) {
	publicKey, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}

	return New(publicKey)
}

// PublicKey returns a copy of the raw public key.
func (w *Wallet) PublicKey() []byte {
	return append([]byte(nil), w.publicKey...)
}

// Address returns the base58 encoded public key.
func (w *Wallet) Address() string {
	return base58.Encode(w.publicKey)
}

func (w *Wallet) String() string {
	return w.Address()
}

// Context holds the wallet currently selected by the user. It is passed explicitly to its consumers.
type Context struct {
	mu      sync.RWMutex
	current *Wallet
}

// NewContext returns a Context with current selected; current may be nil.
func NewContext(current *Wallet) *Context {
	return &Context{current: current}
}

// Current returns the selected wallet or nil when none is selected.
func (c *Context) Current() *Wallet {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

// Select replaces the selected wallet.
func (c *Context) Select(w *Wallet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = w
}
