/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package clienttrust

import (
	"context"
	"encoding/json"
	"sync"
)

// Status is the lifecycle phase of a verification.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// VerificationState is the value observed by a presenter while a verification runs: either
// InProgress carrying the identity URI being checked, or Resolved carrying the final Outcome.
type VerificationState struct {
	status      Status
	identityURI string
	outcome     Outcome
}

// InProgress returns the state of a verification that has started but not completed.
func InProgress(identityURI string) VerificationState {
	return VerificationState{status: StatusInProgress, identityURI: identityURI}
}

// Resolved returns the terminal state carrying outcome.
func Resolved(outcome Outcome) VerificationState {
	return VerificationState{status: StatusResolved, identityURI: outcome.IdentityURI, outcome: outcome}
}

// Status returns the lifecycle phase.
func (s VerificationState) Status() Status {
	return s.status
}

// IdentityURI returns the identity URI under verification; empty when none was supplied.
func (s VerificationState) IdentityURI() string {
	return s.identityURI
}

// IsResolved reports whether the state is terminal.
func (s VerificationState) IsResolved() bool {
	return s.status == StatusResolved
}

// Outcome returns the outcome of a resolved state; ok is false while in progress.
func (s VerificationState) Outcome() (Outcome, bool) {
	if s.status != StatusResolved {
		return Outcome{}, false
	}

	return s.outcome, true
}

func (s VerificationState) String() string {
	if s.status == StatusResolved {
		return string(s.status) + ":" + s.outcome.String()
	}

	return string(s.status)
}

type verificationStateJSON struct {
	Status      Status   `json:"status"`
	IdentityURI string   `json:"identity_uri,omitempty"`
	Outcome     *Outcome `json:"outcome,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s VerificationState) MarshalJSON() ([]byte, error) {
	v := verificationStateJSON{Status: s.status, IdentityURI: s.identityURI}

	if s.status == StatusResolved {
		o := s.outcome
		v.Outcome = &o
	}

	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *VerificationState) UnmarshalJSON(b []byte) error {
	var v verificationStateJSON

	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	if v.Status == StatusResolved && v.Outcome != nil {
		*s = Resolved(*v.Outcome)

		return nil
	}

	*s = InProgress(v.IdentityURI)

	return nil
}

// Verification is the state machine of a single verification attempt. It starts InProgress and moves
// to Resolved at most once; Done is closed on that transition.
type Verification struct {
	mu    sync.RWMutex
	state VerificationState
	done  chan struct{}
}

// NewVerification returns a fresh state machine in the InProgress state. A new instance is required for
// every authorization request, even when the identity URI repeats.
func NewVerification(identityURI string) *Verification {
	return &Verification{
		state: InProgress(identityURI),
		done:  make(chan struct{}),
	}
}

// State returns the current state.
func (v *Verification) State() VerificationState {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.state
}

// Resolve moves the machine to Resolved(outcome). It returns false, leaving the state untouched, when the
// machine has already resolved.
func (v *Verification) Resolve(outcome Outcome) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state.IsResolved() {
		return false
	}

	if outcome.IdentityURI == "" {
		outcome.IdentityURI = v.state.identityURI
	}

	v.state = Resolved(outcome)
	close(v.done)

	return true
}

// Done returns a channel closed once the verification resolves.
func (v *Verification) Done() <-chan struct{} {
	return v.done
}

// Wait blocks until the verification resolves or ctx ends.
func (v *Verification) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-v.done:
		o, _ := v.State().Outcome()

		return o, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
