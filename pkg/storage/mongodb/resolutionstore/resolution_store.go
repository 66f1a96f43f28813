/*
Copyright Gen Digital Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolutionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trustbloc/walletauthz/pkg/authorization"
	"github.com/trustbloc/walletauthz/pkg/storage/mongodb"
)

const (
	collectionName = "walletauthz_resolution"
	expireAtField  = "expireAt"
)

type collection interface {
	InsertOne(ctx context.Context, document interface{},
		opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

type resolutionDocument struct {
	ID         string                 `bson:"_id"`
	Resolution map[string]interface{} `bson:"resolution"`
	ExpireAt   time.Time              `bson:"expireAt"`
}

// Store stores authorization resolutions in mongo. The request id is the document key, so a second
// resolution of the same request fails on the unique index.
type Store struct {
	collection collection
	timeout    time.Duration
	ttl        time.Duration
	now        func() time.Time
}

// New creates Store and ensures the ttl index.
func New(mongoClient *mongodb.Client, ttl time.Duration) (*Store, error) {
	if err := mongoClient.EnsureIndexes(collectionName, mongodb.ExpiryIndex(expireAtField)); err != nil {
		return nil, err
	}

	return newStore(mongoClient.Database().Collection(collectionName), mongoClient.Timeout(), ttl), nil
}

func newStore(coll collection, timeout, ttl time.Duration) *Store {
	return &Store{
		collection: coll,
		timeout:    timeout,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Resolve stores resolution under the request's correlation handle.
func (s *Store) Resolve(ctx context.Context, req *authorization.Request, resolution *authorization.Resolution) error {
	mapped, err := mongodb.ToDocument(resolution)
	if err != nil {
		return fmt.Errorf("encode resolution: %w", err)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc := &resolutionDocument{
		ID:         req.ID,
		Resolution: mapped,
		ExpireAt:   s.now().UTC().Add(s.ttl),
	}

	if _, err = s.collection.InsertOne(ctxWithTimeout, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return authorization.ErrAlreadyResolved
		}

		return fmt.Errorf("insert resolution: %w", err)
	}

	return nil
}

// Get returns the resolution stored for requestID.
func (s *Store) Get(ctx context.Context, requestID string) (*authorization.Resolution, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc := &resolutionDocument{}

	if err := s.collection.FindOne(ctxWithTimeout, bson.M{"_id": requestID}).Decode(doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, authorization.ErrDataNotFound
		}

		return nil, fmt.Errorf("find resolution: %w", err)
	}

	// the ttl monitor runs once a minute, expired documents may still be returned
	if doc.ExpireAt.Before(s.now().UTC()) {
		return nil, authorization.ErrDataNotFound
	}

	resolution := &authorization.Resolution{}

	if err := mongodb.FromDocument(doc.Resolution, resolution); err != nil {
		return nil, fmt.Errorf("decode resolution: %w", err)
	}

	return resolution, nil
}
