/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodb

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ToDocument converts v into a document keyed by its json field names, so stored payloads read the same
// as the REST ones.
func ToDocument(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var doc map[string]interface{}

	if err = json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("document is not an object: %w", err)
	}

	return doc, nil
}

// FromDocument decodes a document produced by ToDocument into out.
func FromDocument(doc map[string]interface{}, out interface{}) error {
	if doc == nil {
		return fmt.Errorf("empty document")
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	return json.Unmarshal(b, out)
}

// ExpiryIndex returns an index that removes a document once the time in field has passed.
func ExpiryIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    map[string]interface{}{field: 1},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
}
