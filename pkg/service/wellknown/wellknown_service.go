/*
Copyright Avast Software. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination wellknown_service_mocks_test.go -package wellknown_test -source=wellknown_service.go -mock_names httpClient=MockHTTPClient

package wellknown

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/walletauthz/internal/logfields"
	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

const (
	// SourceName identifies evidence produced from a Digital Asset Links document.
	SourceName = "assetlinks"
	// AssetLinksPath is the well-known location of the Digital Asset Links document.
	AssetLinksPath = "/.well-known/assetlinks.json"

	namespaceAndroidApp = "android_app"
	maxDocumentSize     = 1 << 20
)

// DefaultRelations are the relations that bind an origin to an application.
var DefaultRelations = []string{ //nolint:gochecknoglobals
	"delegate_permission/common.handle_all_urls",
	"delegate_permission/common.get_login_creds",
}

var logger = log.New("wellknown-assetlinks")

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NoRedirect is an http.Client CheckRedirect policy that hands a redirect back to the caller instead of
// following it. Asset links are only trusted when served by the identity origin itself.
func NoRedirect(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
}

// Statement is one Digital Asset Links statement.
type Statement struct {
	Relation []string `json:"relation"`
	Target   Target   `json:"target"`
}

// Target is the subject of a statement.
type Target struct {
	Namespace        string   `json:"namespace"`
	Site             string   `json:"site,omitempty"`
	PackageName      string   `json:"package_name,omitempty"`
	CertFingerprints []string `json:"sha256_cert_fingerprints,omitempty"`
}

// Config defines configuration for Service.
type Config struct {
	HTTPClient httpClient
	// Relations narrows the statements that count as evidence. DefaultRelations when empty.
	Relations []string
}

// Service fetches the asset links published at an identity origin.
type Service struct {
	client    httpClient
	relations []string
}

// NewService returns a new Service instance.
func NewService(config *Config) *Service {
	relations := config.Relations
	if len(relations) == 0 {
		relations = DefaultRelations
	}

	return &Service{
		client:    config.HTTPClient,
		relations: relations,
	}
}

// Name returns the evidence source name.
func (s *Service) Name() string {
	return SourceName
}

// Lookup fetches the asset links document of ref's origin and converts matching statements into evidence.
func (s *Service) Lookup(ctx context.Context, ref *clienttrust.IdentityReference) (*clienttrust.Evidence, error) {
	statements, err := s.GetStatements(ctx, ref.Origin()+AssetLinksPath)
	if err != nil {
		return nil, err
	}

	apps := lo.FilterMap(statements, func(st Statement, _ int) (clienttrust.AppStatement, bool) {
		if st.Target.Namespace != namespaceAndroidApp || st.Target.PackageName == "" {
			return clienttrust.AppStatement{}, false
		}

		if len(lo.Intersect(st.Relation, s.relations)) == 0 {
			return clienttrust.AppStatement{}, false
		}

		return clienttrust.AppStatement{
			PackageName:      st.Target.PackageName,
			CertFingerprints: st.Target.CertFingerprints,
		}, true
	})

	strength := clienttrust.StrengthStrong

	if len(apps) == 0 || lo.SomeBy(apps, func(app clienttrust.AppStatement) bool {
		return len(lo.Compact(app.CertFingerprints)) == 0
	}) {
		strength = clienttrust.StrengthWeak
	}

	logger.Debugc(ctx, "Asset links fetched",
		logfields.WithIdentityURI(ref.Origin()),
		logfields.WithAdditionalMessage(fmt.Sprintf("%d of %d statements kept", len(apps), len(statements))),
	)

	return &clienttrust.Evidence{
		Source:   SourceName,
		Subject:  ref.Origin(),
		Strength: strength,
		Apps:     apps,
	}, nil
}

// GetStatements fetches and decodes the asset links document at url.
func (s *Service) GetStatements(ctx context.Context, url string) ([]Statement, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		if resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, clienttrust.ErrEvidenceNotFound
	}

	if resp.StatusCode >= http.StatusMultipleChoices && resp.StatusCode < http.StatusBadRequest {
		return nil, fmt.Errorf("asset links redirect not followed: status code %v", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("got unexpected status code: %v", resp.StatusCode)
	}

	if resp.Body == nil {
		return nil, fmt.Errorf("%w: empty asset links document", clienttrust.ErrEvidenceInvalid)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read asset links: %w", err)
	}

	if len(body) > maxDocumentSize {
		return nil, fmt.Errorf("%w: asset links document exceeds %d bytes", clienttrust.ErrEvidenceInvalid,
			maxDocumentSize)
	}

	var statements []Statement

	if err = json.Unmarshal(body, &statements); err != nil {
		return nil, fmt.Errorf("%w: decode asset links: %w", clienttrust.ErrEvidenceInvalid, err)
	}

	return statements, nil
}
