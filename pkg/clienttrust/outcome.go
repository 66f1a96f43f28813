/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package clienttrust

import (
	"fmt"
	"strings"
)

// Kind is the final trust judgment of a verification.
type Kind int

const (
	// KindUnverified means no identity URI was supplied, so trust could not be assessed.
	KindUnverified Kind = iota
	// KindVerified means the evidence confirms the identity URI and the calling application.
	KindVerified
	// KindWarning means evidence was inconsistent, weak, or missing for a well-formed identity URI.
	KindWarning
	// KindVerificationFailed means the verification itself could not complete.
	KindVerificationFailed
)

func (k Kind) String() string {
	switch k {
	case KindUnverified:
		return "unverified"
	case KindVerified:
		return "verified"
	case KindWarning:
		return "warning"
	case KindVerificationFailed:
		return "verification_failed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the textual form produced by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "unverified":
		return KindUnverified, nil
	case "verified":
		return KindVerified, nil
	case "warning":
		return KindWarning, nil
	case "verification_failed":
		return KindVerificationFailed, nil
	default:
		return 0, fmt.Errorf("unknown outcome kind: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// Reason qualifies Warning and VerificationFailed outcomes.
type Reason string

const (
	ReasonNone                 Reason = ""
	ReasonMalformedIdentityURI Reason = "malformed_identity_uri"
	ReasonLookupFailed         Reason = "lookup_failed"
	ReasonInternalFault        Reason = "internal_fault"
	ReasonEvidenceNotFound     Reason = "evidence_not_found"
	ReasonInvalidEvidence      Reason = "invalid_evidence"
	ReasonSubjectMismatch      Reason = "subject_mismatch"
	ReasonCallerUnknown        Reason = "caller_unknown"
	ReasonPackageMismatch      Reason = "package_mismatch"
	ReasonCertificateMismatch  Reason = "certificate_mismatch"
	ReasonWeakAttestation      Reason = "weak_attestation"
)

// Outcome is the result of one trust verification. Exactly one Kind is set; Reason is empty for
// Unverified and Verified.
type Outcome struct {
	Kind        Kind   `json:"kind"`
	IdentityURI string `json:"identity_uri,omitempty"`
	Reason      Reason `json:"reason,omitempty"`
	Source      string `json:"source,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// Unverified returns the outcome for a request without an identity URI.
func Unverified() Outcome {
	return Outcome{Kind: KindUnverified}
}

// Verified returns a positive outcome backed by evidence from source.
func Verified(identityURI, source string) Outcome {
	return Outcome{Kind: KindVerified, IdentityURI: identityURI, Source: source}
}

// Warning returns an outcome for evidence that exists but does not fully vouch for the caller.
func Warning(identityURI string, reason Reason, source string) Outcome {
	return Outcome{Kind: KindWarning, IdentityURI: identityURI, Reason: reason, Source: source}
}

// VerificationFailed returns an outcome for a verification that could not complete.
func VerificationFailed(identityURI string, reason Reason, err error) Outcome {
	o := Outcome{Kind: KindVerificationFailed, IdentityURI: identityURI, Reason: reason}

	if err != nil {
		o.Detail = err.Error()
	}

	return o
}

func (o Outcome) String() string {
	if o.Reason == ReasonNone {
		return o.Kind.String()
	}

	return o.Kind.String() + "(" + string(o.Reason) + ")"
}
