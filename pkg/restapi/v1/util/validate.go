/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package util

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	maxChainLength = 64
)

// ValidateChain checks a chain selector of the form <namespace>:<reference>, e.g. solana:devnet.
// An empty selector is valid.
func ValidateChain(chain string) error {
	if chain == "" {
		return nil
	}

	if len(chain) > maxChainLength {
		return fmt.Errorf("chain selector longer than %d characters", maxChainLength)
	}

	namespace, reference, ok := strings.Cut(chain, ":")
	if !ok || namespace == "" || reference == "" {
		return fmt.Errorf("chain %q: <namespace>:<reference> expected", chain)
	}

	if !lo.EveryBy([]rune(namespace), isChainRune) || !lo.EveryBy([]rune(reference), isChainRune) {
		return fmt.Errorf("chain %q: unexpected character", chain)
	}

	return nil
}

func isChainRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_'
}
