/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolutionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trustbloc/walletauthz/pkg/authorization"
)

const (
	keyPrefix = "resolution"
)

// Store stores authorization resolutions in redis. SETNX makes the first resolution of a request final.
type Store struct {
	redisClient redisClient
	ttl         time.Duration
}

// New creates Store.
func New(redisClient redisClient, ttl time.Duration) *Store {
	return &Store{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// Resolve stores resolution under the request's correlation handle.
func (s *Store) Resolve(ctx context.Context, req *authorization.Request, resolution *authorization.Resolution) error {
	b, err := json.Marshal(resolution)
	if err != nil {
		return fmt.Errorf("encode resolution: %w", err)
	}

	ok, err := s.redisClient.API().SetNX(ctx, s.redisClient.Key(keyPrefix, req.ID), string(b), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis store resolution: %w", err)
	}

	if !ok {
		return authorization.ErrAlreadyResolved
	}

	return nil
}

// Get returns the resolution stored for requestID.
func (s *Store) Get(ctx context.Context, requestID string) (*authorization.Resolution, error) {
	b, err := s.redisClient.API().Get(ctx, s.redisClient.Key(keyPrefix, requestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, authorization.ErrDataNotFound
		}

		return nil, fmt.Errorf("redis get resolution: %w", err)
	}

	var resolution authorization.Resolution

	if err = json.Unmarshal(b, &resolution); err != nil {
		return nil, fmt.Errorf("decode resolution: %w", err)
	}

	return &resolution, nil
}
