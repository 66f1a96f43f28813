/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination trustregistry_service_mocks_test.go -package trustregistry_test -source=trustregistry_service.go -mock_names httpClient=MockHTTPClient

package trustregistry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/walletauthz/internal/logfields"
	"github.com/trustbloc/walletauthz/pkg/clienttrust"
)

// SourceName identifies evidence produced by the trust registry.
const SourceName = "trustregistry"

var logger = log.New("trust-registry")

var errUnknownKey = errors.New("no registry key verifies the attestation")

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config defines configuration for Service.
type Config struct {
	URL        string
	HTTPClient httpClient
	// KeySet holds the registry signing keys.
	KeySet *jose.JSONWebKeySet
	// Now overrides the clock used for the expiry check.
	Now func() time.Time
}

// Service looks up signed application attestations in a trust registry.
type Service struct {
	url        string
	httpClient httpClient
	keySet     *jose.JSONWebKeySet
	now        func() time.Time
}

// NewService returns a new Service instance.
func NewService(config *Config) *Service {
	s := &Service{
		url:        config.URL,
		httpClient: config.HTTPClient,
		keySet:     config.KeySet,
		now:        config.Now,
	}

	if s.keySet == nil {
		s.keySet = &jose.JSONWebKeySet{}
	}

	if s.now == nil {
		s.now = time.Now
	}

	return s
}

// ParseKeySet decodes a JSON Web Key Set.
func ParseKeySet(data []byte) (*jose.JSONWebKeySet, error) {
	var keySet jose.JSONWebKeySet

	if err := json.Unmarshal(data, &keySet); err != nil {
		return nil, fmt.Errorf("decode key set: %w", err)
	}

	if len(keySet.Keys) == 0 {
		return nil, errors.New("key set is empty")
	}

	return &keySet, nil
}

// Name returns the evidence source name.
func (s *Service) Name() string {
	return SourceName
}

// Lookup requests the attestation for ref from the registry and verifies its signature.
func (s *Service) Lookup(ctx context.Context, ref *clienttrust.IdentityReference) (*clienttrust.Evidence, error) {
	payload, err := json.Marshal(&AttestationRequest{IdentityURI: ref.Origin()})
	if err != nil {
		return nil, fmt.Errorf("encode attestation request: %w", err)
	}

	resp, err := s.doRequest(ctx, payload)
	if err != nil {
		return nil, err
	}

	claims, err := s.verifyAttestation(resp.Attestation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", clienttrust.ErrEvidenceInvalid, err)
	}

	if claims.ExpiresAt != 0 && s.now().After(time.Unix(claims.ExpiresAt, 0)) {
		return nil, fmt.Errorf("%w: attestation expired", clienttrust.ErrEvidenceInvalid)
	}

	evidence := &clienttrust.Evidence{
		Source:   SourceName,
		Subject:  claims.Subject,
		Strength: clienttrust.StrengthWeak,
	}

	if claims.Level == LevelStrong {
		evidence.Strength = clienttrust.StrengthStrong
	}

	if claims.PackageName != "" {
		evidence.Apps = []clienttrust.AppStatement{
			{
				PackageName:      claims.PackageName,
				CertFingerprints: claims.CertFingerprints,
			},
		}
	}

	logger.Debugc(ctx, "Registry attestation verified",
		logfields.WithIdentityURI(ref.Origin()),
		logfields.WithPackageName(claims.PackageName),
	)

	return evidence, nil
}

func (s *Service) doRequest(ctx context.Context, payload []byte) (*AttestationResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Add("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, clienttrust.ErrEvidenceNotFound
	}

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status code: %d, msg: %s", resp.StatusCode, string(b))
	}

	var result AttestationResponse

	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", clienttrust.ErrEvidenceInvalid, err)
	}

	return &result, nil
}

func (s *Service) verifyAttestation(attestation string) (*AttestationClaims, error) {
	jws, err := jose.ParseSigned(attestation)
	if err != nil {
		return nil, fmt.Errorf("parse attestation: %w", err)
	}

	if len(jws.Signatures) != 1 {
		return nil, fmt.Errorf("expected one signature, got %d", len(jws.Signatures))
	}

	candidates := s.keySet.Keys

	if kid := jws.Signatures[0].Header.KeyID; kid != "" {
		candidates = s.keySet.Key(kid)
	}

	for _, key := range candidates {
		payload, verifyErr := jws.Verify(key)
		if verifyErr != nil {
			continue
		}

		var claims AttestationClaims

		if err = json.Unmarshal(payload, &claims); err != nil {
			return nil, fmt.Errorf("decode attestation claims: %w", err)
		}

		return &claims, nil
	}

	return nil, errUnknownKey
}
