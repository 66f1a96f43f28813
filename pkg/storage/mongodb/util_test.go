/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/walletauthz/pkg/storage/mongodb"
)

type resolutionFixture struct {
	RequestID string   `json:"request_id"`
	Kind      string   `json:"kind"`
	Chains    []string `json:"chains,omitempty"`
}

func TestToDocument(t *testing.T) {
	t.Run("json field names", func(t *testing.T) {
		doc, err := mongodb.ToDocument(&resolutionFixture{
			RequestID: "req-1",
			Kind:      "grant",
			Chains:    []string{"solana:devnet"},
		})
		require.NoError(t, err)
		require.Equal(t, "req-1", doc["request_id"])
		require.Equal(t, "grant", doc["kind"])
		require.Equal(t, []interface{}{"solana:devnet"}, doc["chains"])
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := mongodb.ToDocument("grant")
		require.ErrorContains(t, err, "document is not an object")
	})

	t.Run("unsupported value", func(t *testing.T) {
		_, err := mongodb.ToDocument(make(chan int))
		require.ErrorContains(t, err, "marshal document")
	})
}

func TestFromDocument(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		in := &resolutionFixture{RequestID: "req-1", Kind: "decline"}

		doc, err := mongodb.ToDocument(in)
		require.NoError(t, err)

		out := &resolutionFixture{}
		require.NoError(t, mongodb.FromDocument(doc, out))
		require.Equal(t, in, out)
	})

	t.Run("nil document", func(t *testing.T) {
		require.ErrorContains(t, mongodb.FromDocument(nil, &resolutionFixture{}), "empty document")
	})

	t.Run("non pointer target", func(t *testing.T) {
		require.Error(t, mongodb.FromDocument(map[string]interface{}{"kind": "grant"}, resolutionFixture{}))
	})
}

func TestExpiryIndex(t *testing.T) {
	index := mongodb.ExpiryIndex("expireAt")

	require.Equal(t, map[string]interface{}{"expireAt": 1}, index.Keys)
	require.NotNil(t, index.Options.ExpireAfterSeconds)
	require.EqualValues(t, 0, *index.Options.ExpireAfterSeconds)
}
