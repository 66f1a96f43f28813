/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolutionstore

import (
	"context"
	"sync"
	"time"

	"github.com/trustbloc/walletauthz/pkg/authorization"
)

type entry struct {
	resolution *authorization.Resolution
	expireAt   time.Time
}

// Store keeps resolutions in memory. It serves single-instance deployments and tests.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// New creates Store. Entries expire after ttl; zero keeps them forever.
func New(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]*entry{},
	}
}

// Resolve stores resolution under the request's correlation handle.
func (s *Store) Resolve(_ context.Context, req *authorization.Request, resolution *authorization.Resolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()

	if _, ok := s.entries[req.ID]; ok {
		return authorization.ErrAlreadyResolved
	}

	e := &entry{resolution: resolution}
	if s.ttl > 0 {
		e.expireAt = s.now().Add(s.ttl)
	}

	s.entries[req.ID] = e

	return nil
}

// Get returns the resolution stored for requestID.
func (s *Store) Get(_ context.Context, requestID string) (*authorization.Resolution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()

	e, ok := s.entries[requestID]
	if !ok {
		return nil, authorization.ErrDataNotFound
	}

	return e.resolution, nil
}

func (s *Store) evictExpired() {
	now := s.now()

	for id, e := range s.entries {
		if !e.expireAt.IsZero() && now.After(e.expireAt) {
			delete(s.entries, id)
		}
	}
}
