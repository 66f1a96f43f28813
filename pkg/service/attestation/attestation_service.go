/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination attestation_service_mocks_test.go -package attestation_test -source=api.go -mock_names ServiceInterface=MockEvidenceSource

package attestation

import (
	"context"
	"errors"
	"strings"

	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/walletauthz/internal/logfields"
	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

var logger = log.New("attestation-chain")

// Chain consults evidence sources in order. A source reporting ErrEvidenceNotFound passes the lookup on to the
// next one; any other result, including an error, ends the lookup.
type Chain struct {
	sources []ServiceInterface
}

// NewChain returns a Chain over sources.
func NewChain(sources ...ServiceInterface) *Chain {
	return &Chain{sources: sources}
}

// Name joins the names of the chained sources.
func (c *Chain) Name() string {
	return strings.Join(lo.Map(c.sources, func(s ServiceInterface, _ int) string { return s.Name() }), "+")
}

// Lookup returns the evidence of the first source that has any.
func (c *Chain) Lookup(ctx context.Context, ref *clienttrust.IdentityReference) (*clienttrust.Evidence, error) {
	for _, source := range c.sources {
		evidence, err := source.Lookup(ctx, ref)
		if errors.Is(err, clienttrust.ErrEvidenceNotFound) {
			logger.Debugc(ctx, "No evidence published, trying next source",
				logfields.WithSource(source.Name()),
				logfields.WithIdentityURI(ref.Origin()),
			)

			continue
		}

		return evidence, err
	}

	return nil, clienttrust.ErrEvidenceNotFound
}
