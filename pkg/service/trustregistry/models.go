/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package trustregistry

// AttestationRequest is a request payload for the trust registry.
type AttestationRequest struct {
	IdentityURI string `json:"identity_uri"`
}

// AttestationResponse is a response from the trust registry.
type AttestationResponse struct {
	// Attestation is a compact JWS signed by one of the registry keys.
	Attestation string `json:"attestation"`
}

// AttestationClaims is the payload of the registry attestation.
type AttestationClaims struct {
	Subject          string   `json:"sub"`
	PackageName      string   `json:"package_name,omitempty"`
	CertFingerprints []string `json:"sha256_cert_fingerprints,omitempty"`
	Level            string   `json:"level,omitempty"`
	ExpiresAt        int64    `json:"exp,omitempty"`
}

// LevelStrong is the attestation level that grades evidence as strong; every other level is weak.
const LevelStrong = "strong"
