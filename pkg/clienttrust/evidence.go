/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package clienttrust

import (
	"errors"
	"strings"

	"github.com/samber/lo"
)

var (
	// ErrEvidenceNotFound means the lookup completed and nothing is published for the identity.
	ErrEvidenceNotFound = errors.New("attestation evidence not found")
	// ErrEvidenceInvalid means evidence was obtained but cannot be trusted as published
	// (bad signature, expired, undecodable).
	ErrEvidenceInvalid = errors.New("attestation evidence invalid")
)

// Strength grades how firmly evidence binds an identity to an application.
type Strength string

const (
	StrengthStrong Strength = "strong"
	StrengthWeak   Strength = "weak"
)

// AppStatement is one application the evidence vouches for.
type AppStatement struct {
	PackageName      string   `json:"package_name"`
	CertFingerprints []string `json:"sha256_cert_fingerprints,omitempty"`
}

// Evidence is attestation material published for an identity origin.
type Evidence struct {
	Source   string         `json:"source"`
	Subject  string         `json:"subject"`
	Strength Strength       `json:"strength"`
	Apps     []AppStatement `json:"apps,omitempty"`
}

// CallerIdentity is the runtime identity of the calling application as reported by the platform.
type CallerIdentity struct {
	PackageName      string   `json:"package_name"`
	CertFingerprints []string `json:"sha256_cert_fingerprints,omitempty"`
}

// Known reports whether the platform supplied anything to compare against.
func (c *CallerIdentity) Known() bool {
	return c != nil && c.PackageName != ""
}

// NormalizeFingerprint canonicalizes a SHA-256 certificate fingerprint so that "ab:cd" and "ABCD" compare equal.
func NormalizeFingerprint(fp string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(fp), ":", ""))
}

// FingerprintsOverlap reports whether a and b share at least one fingerprint.
func FingerprintsOverlap(a, b []string) bool {
	na := lo.Map(a, func(fp string, _ int) string { return NormalizeFingerprint(fp) })
	nb := lo.Map(b, func(fp string, _ int) string { return NormalizeFingerprint(fp) })

	return len(lo.Intersect(lo.Compact(na), lo.Compact(nb))) > 0
}
