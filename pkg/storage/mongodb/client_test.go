/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mongodb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	nooptracer "go.opentelemetry.io/otel/trace/noop"

	"github.com/trustbloc/walletauthz/pkg/storage/mongodb"
)

const (
	mongoDBConnString = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200"
	testDatabaseName  = "test_db"
	testTimeout       = 5 * time.Second
)

func TestClient(t *testing.T) {
	client, err := mongodb.New(mongoDBConnString, testDatabaseName,
		mongodb.WithTimeout(testTimeout),
		mongodb.WithReadPref(readpref.PrimaryPreferred()),
		mongodb.WithTraceProvider(nooptracer.NewTracerProvider()),
		mongodb.WithAppName("walletauthz-test"),
	)
	require.NoError(t, err)
	require.NotNil(t, client)

	require.Equal(t, testDatabaseName, client.Database().Name())
	require.Equal(t, testTimeout, client.Timeout())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.Error(t, client.Ping(ctx))

	require.NoError(t, client.EnsureIndexes("resolutions"))
	require.ErrorContains(t, client.EnsureIndexes("resolutions", mongodb.ExpiryIndex("expireAt")),
		"create indexes on resolutions")

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())
}

func TestClientInvalidConnString(t *testing.T) {
	client, err := mongodb.New("not-a-mongo-uri", testDatabaseName)

	require.Nil(t, client)
	require.ErrorContains(t, err, "failed to connect to MongoDB")
}
