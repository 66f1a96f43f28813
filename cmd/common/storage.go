/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"crypto/tls"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/walletauthz/internal/logfields"
	authorizationapi "github.com/trustbloc/walletauthz/pkg/authorization"
	mongohealthcheck "github.com/trustbloc/walletauthz/pkg/observability/health/mongo"
	redishealthcheck "github.com/trustbloc/walletauthz/pkg/observability/health/redis"
	memresolutionstore "github.com/trustbloc/walletauthz/pkg/storage/mem/resolutionstore"
	"github.com/trustbloc/walletauthz/pkg/storage/mongodb"
	mongoresolutionstore "github.com/trustbloc/walletauthz/pkg/storage/mongodb/resolutionstore"
	"github.com/trustbloc/walletauthz/pkg/storage/redis"
	redisresolutionstore "github.com/trustbloc/walletauthz/pkg/storage/redis/resolutionstore"
)

const (
	// DatabaseURLFlagName is the database url.
	DatabaseURLFlagName = "database-url"
	// DatabaseURLFlagUsage describes the usage.
	DatabaseURLFlagUsage = "Resolution store URL with credentials if required." +
		" Format must be <driver>:[//]<driver-specific-dsn>." +
		" Examples: 'mem://', 'redis://redis-1:6379,redis-2:6379', 'mongodb://mongodb.example.com:27017'." +
		" Supported drivers are [mem, redis, rediss, mongodb, mongodb+srv]; rediss connects over TLS. Defaults to mem." +
		" Alternatively, this can be set with the following environment variable: " + DatabaseURLEnvKey
	// DatabaseURLEnvKey is the database url.
	DatabaseURLEnvKey = "DATABASE_URL"

	// DatabaseNameFlagName is the MongoDB database name and the redis key prefix.
	DatabaseNameFlagName = "database-name"
	// DatabaseNameFlagUsage describes the usage.
	DatabaseNameFlagUsage = "MongoDB database holding the resolution collection, or the key prefix of resolutions " +
		"stored in redis. Defaults to " + DatabaseNameDefault +
		". Alternatively, this can be set with the following environment variable: " + DatabaseNameEnvKey
	// DatabaseNameEnvKey is the MongoDB database name.
	DatabaseNameEnvKey = "DATABASE_NAME"

	// DatabaseTimeoutFlagName is the database timeout.
	DatabaseTimeoutFlagName = "database-timeout"
	// DatabaseTimeoutFlagUsage describes the usage.
	DatabaseTimeoutFlagUsage = "Total time in seconds to wait until the datasource is available before giving up." +
		" Default: 30 seconds." +
		" Alternatively, this can be set with the following environment variable: " + DatabaseTimeoutEnvKey
	// DatabaseTimeoutEnvKey is the database timeout.
	DatabaseTimeoutEnvKey = "DATABASE_TIMEOUT"

	// RedisMasterNameFlagName selects a sentinel-backed redis client.
	RedisMasterNameFlagName = "redis-master-name"
	// RedisMasterNameEnvKey is the redis master name.
	RedisMasterNameEnvKey = "REDIS_MASTER_NAME"
	// RedisMasterNameFlagUsage describes the usage.
	RedisMasterNameFlagUsage = "Redis sentinel master name (optional). " +
		"Alternatively, this can be set with the following environment variable: " + RedisMasterNameEnvKey

	// RedisPasswordFlagName is the redis password.
	RedisPasswordFlagName = "redis-password" //nolint: gosec
	// RedisPasswordEnvKey is the redis password.
	RedisPasswordEnvKey = "REDIS_PASSWORD" //nolint: gosec
	// RedisPasswordFlagUsage describes the usage.
	RedisPasswordFlagUsage = "Redis password (optional). " +
		"Alternatively, this can be set with the following environment variable: " + RedisPasswordEnvKey

	// DatabaseTimeoutDefault is the default storage timeout.
	DatabaseTimeoutDefault = 30
	// DatabaseNameDefault is the default MongoDB database.
	DatabaseNameDefault = "walletauthz"

	memDriver      = "mem"
	redisDriver    = "redis"
	redisTLSDriver = "rediss"
	mongoDBDriver  = "mongodb"
	mongoSRVDriver = "mongodb+srv"

	healthCheckTimeout = 5 * time.Second
	mongoAppName       = "walletauthz"
)

// DBParameters holds resolution store configuration.
type DBParameters struct {
	URL             string
	Name            string
	Timeout         uint64
	RedisMasterName string
	RedisPassword   string
}

// Store is an initialized resolution store together with the health checks of its backend.
type Store struct {
	Type            string
	ResolutionStore authorizationapi.ResolutionStore
	Checks          []health.Check

	closer func() error
}

// Close releases the backend connection.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer()
}

// Flags registers common command flags.
func Flags(cmd *cobra.Command) {
	cmd.Flags().StringP(DatabaseURLFlagName, "", "", DatabaseURLFlagUsage)
	cmd.Flags().StringP(DatabaseNameFlagName, "", "", DatabaseNameFlagUsage)
	cmd.Flags().StringP(DatabaseTimeoutFlagName, "", "", DatabaseTimeoutFlagUsage)
	cmd.Flags().StringP(RedisMasterNameFlagName, "", "", RedisMasterNameFlagUsage)
	cmd.Flags().StringP(RedisPasswordFlagName, "", "", RedisPasswordFlagUsage)
}

// DBParams fetches the DB parameters configured for this command.
func DBParams(cmd *cobra.Command) (*DBParameters, error) {
	var err error

	params := &DBParameters{
		URL:             cmdutils.GetUserSetOptionalVarFromString(cmd, DatabaseURLFlagName, DatabaseURLEnvKey),
		Name:            cmdutils.GetUserSetOptionalVarFromString(cmd, DatabaseNameFlagName, DatabaseNameEnvKey),
		RedisMasterName: cmdutils.GetUserSetOptionalVarFromString(cmd, RedisMasterNameFlagName, RedisMasterNameEnvKey),
		RedisPassword:   cmdutils.GetUserSetOptionalVarFromString(cmd, RedisPasswordFlagName, RedisPasswordEnvKey),
	}

	if params.URL == "" {
		params.URL = memDriver + "://"
	}

	if params.Name == "" {
		params.Name = DatabaseNameDefault
	}

	timeout := cmdutils.GetUserSetOptionalVarFromString(cmd, DatabaseTimeoutFlagName, DatabaseTimeoutEnvKey)
	if timeout == "" {
		timeout = strconv.Itoa(DatabaseTimeoutDefault)
	}

	params.Timeout, err = strconv.ParseUint(timeout, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dbTimeout %s: %w", timeout, err)
	}

	return params, nil
}

// InitStore opens the resolution store selected by params.URL. Resolutions are kept for ttl; zero keeps them
// until the process exits for the mem driver and forever for the others.
func InitStore(
	params *DBParameters,
	ttl time.Duration,
	traceProvider trace.TracerProvider,
	logger *log.Log,
) (*Store, error) {
	driver, dsn, err := parseURL(params.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", params.URL, err)
	}

	logger.Info("Initializing resolution store", logfields.WithStoreType(driver))

	switch driver {
	case memDriver:
		return &Store{
			Type:            memDriver,
			ResolutionStore: memresolutionstore.New(ttl),
		}, nil
	case redisDriver, redisTLSDriver:
		return initRedisStore(params, dsn, driver == redisTLSDriver, ttl, traceProvider, logger)
	case mongoDBDriver, mongoSRVDriver:
		return initMongoDBStore(params, ttl, traceProvider, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}

func initRedisStore(
	params *DBParameters,
	dsn string,
	useTLS bool,
	ttl time.Duration,
	traceProvider trace.TracerProvider,
	logger *log.Log,
) (*Store, error) {
	opts := []redis.ClientOpt{
		redis.WithMasterName(params.RedisMasterName),
		redis.WithPassword(params.RedisPassword),
		redis.WithKeyPrefix(params.Name),
	}

	if useTLS {
		opts = append(opts, redis.WithTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12}))
	}

	if traceProvider != nil {
		opts = append(opts, redis.WithTraceProvider(traceProvider))
	}

	var client *redis.Client

	err := retry(
		func() error {
			var openErr error
			client, openErr = redis.New(strings.Split(dsn, ","), opts...)
			return openErr
		},
		params.Timeout,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis resolution store: %w", err)
	}

	return &Store{
		Type:            redisDriver,
		ResolutionStore: redisresolutionstore.New(client, ttl),
		Checks: []health.Check{
			{
				Name:    "redis",
				Timeout: healthCheckTimeout,
				Check:   redishealthcheck.New(client),
			},
		},
		closer: client.Close,
	}, nil
}

func initMongoDBStore(
	params *DBParameters,
	ttl time.Duration,
	traceProvider trace.TracerProvider,
	logger *log.Log,
) (*Store, error) {
	opts := []mongodb.ClientOpt{
		mongodb.WithAppName(mongoAppName),
	}

	if traceProvider != nil {
		opts = append(opts, mongodb.WithTraceProvider(traceProvider))
	}

	client, err := mongodb.New(params.URL, params.Name, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init mongodb client: %w", err)
	}

	var store *mongoresolutionstore.Store

	err = retry(
		func() error {
			ctx, cancel := client.ContextWithTimeout()
			defer cancel()

			if pingErr := client.Ping(ctx); pingErr != nil {
				return pingErr
			}

			var openErr error
			store, openErr = mongoresolutionstore.New(client, ttl)
			return openErr
		},
		params.Timeout,
		logger,
	)
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to init mongodb resolution store: %w", err)
	}

	return &Store{
		Type:            mongoDBDriver,
		ResolutionStore: store,
		Checks: []health.Check{
			{
				Name:    "mongodb",
				Timeout: healthCheckTimeout,
				Check:   mongohealthcheck.New(client),
			},
		},
		closer: client.Close,
	}, nil
}

func parseURL(u string) (string, string, error) {
	const urlParts = 2

	parsed := strings.SplitN(u, ":", urlParts)

	if len(parsed) != urlParts || parsed[0] == "" {
		return "", "", fmt.Errorf("invalid dbURL %s", u)
	}

	driver := parsed[0]

	if driver == mongoDBDriver || driver == mongoSRVDriver {
		// The MongoDB driver needs the full connection string.
		return driver, u, nil
	}

	dsn := strings.TrimPrefix(parsed[1], "//")

	return driver, dsn, nil
}

func retry(task func() error, numRetries uint64, logger *log.Log) error {
	const sleep = 1 * time.Second

	return backoff.RetryNotify(
		task,
		backoff.WithMaxRetries(backoff.NewConstantBackOff(sleep), numRetries),
		func(retryErr error, t time.Duration) {
			logger.Warn("Failed to connect to storage, will sleep before trying again.",
				logfields.WithSleep(t), log.WithError(retryErr))
		},
	)
}
