/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package clienttrust

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ErrMalformedIdentityURI is returned when a caller-supplied identity URI cannot be used as a locator.
var ErrMalformedIdentityURI = errors.New("malformed identity uri")

const schemeHTTPS = "https"

// IdentityReference is a parsed and normalized identity URI supplied by a calling dapp.
type IdentityReference struct {
	raw    string
	origin string
	host   string
}

// ParseIdentityReference parses raw into an IdentityReference. Only absolute https URIs with a host and
// without user info are accepted. Path, query and fragment are not part of the identity.
func ParseIdentityReference(raw string) (*IdentityReference, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedIdentityURI, err)
	}

	if !u.IsAbs() || !strings.EqualFold(u.Scheme, schemeHTTPS) {
		return nil, fmt.Errorf("%w: absolute https uri expected", ErrMalformedIdentityURI)
	}

	if u.User != nil {
		return nil, fmt.Errorf("%w: user info is not allowed", ErrMalformedIdentityURI)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrMalformedIdentityURI)
	}

	hostPort := host
	if port := u.Port(); port != "" && port != "443" {
		hostPort = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		hostPort = "[" + host + "]"
	}

	return &IdentityReference{
		raw:    raw,
		origin: schemeHTTPS + "://" + hostPort,
		host:   host,
	}, nil
}

// Raw returns the identity URI exactly as supplied.
func (r *IdentityReference) Raw() string {
	return r.raw
}

// Origin returns the normalized origin, e.g. https://good.app or https://good.app:8443.
func (r *IdentityReference) Origin() string {
	return r.origin
}

// Host returns the lower-cased host name without port.
func (r *IdentityReference) Host() string {
	return r.host
}

// String implements fmt.Stringer.
func (r *IdentityReference) String() string {
	return r.origin
}

// SameOrigin reports whether other normalizes to the same origin as r.
func (r *IdentityReference) SameOrigin(other string) bool {
	o, err := ParseIdentityReference(other)
	if err != nil {
		return false
	}

	return o.origin == r.origin
}

// IsAbsent reports whether an optional identity URI carries nothing to check.
func IsAbsent(identityURI *string) bool {
	return identityURI == nil || strings.TrimSpace(*identityURI) == ""
}
