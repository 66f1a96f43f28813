/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	tlsutils "github.com/trustbloc/cmdutil-go/pkg/utils/tls"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/walletauthz/cmd/common"
	authorizationapi "github.com/trustbloc/walletauthz/pkg/authorization"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics"
	"github.com/trustbloc/walletauthz/pkg/observability/metrics/noop"
	promprovider "github.com/trustbloc/walletauthz/pkg/observability/metrics/prometheus"
	"github.com/trustbloc/walletauthz/pkg/observability/tracing"
	authorizationwrapper "github.com/trustbloc/walletauthz/pkg/observability/tracing/wrappers/authorization"
	trustresolverwrapper "github.com/trustbloc/walletauthz/pkg/observability/tracing/wrappers/trustresolver"
	resterrhandlers "github.com/trustbloc/walletauthz/pkg/restapi/handlers"
	"github.com/trustbloc/walletauthz/pkg/restapi/v1/authorization"
	"github.com/trustbloc/walletauthz/pkg/restapi/v1/healthcheck"
	"github.com/trustbloc/walletauthz/pkg/restapi/v1/version"
	"github.com/trustbloc/walletauthz/pkg/service/attestation"
	authorizationsvc "github.com/trustbloc/walletauthz/pkg/service/authorization"
	"github.com/trustbloc/walletauthz/pkg/service/trustregistry"
	"github.com/trustbloc/walletauthz/pkg/service/trustresolver"
	"github.com/trustbloc/walletauthz/pkg/service/wellknown"
	"github.com/trustbloc/walletauthz/pkg/wallet"
)

var logger = log.New("authz-rest")

const (
	defaultHTTPTimeout = 20 * time.Second
	readHeaderTimeout  = 10 * time.Second
)

type server interface {
	ListenAndServe(host, certFile, keyFile string, handler http.Handler) error
}

// HTTPServer represents an actual HTTP server implementation.
type HTTPServer struct{}

// ListenAndServe starts the server using the standard Go HTTP server implementation. TLS is served when both
// certFile and keyFile are set.
func (s *HTTPServer) ListenAndServe(host, certFile, keyFile string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              host,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if certFile != "" && keyFile != "" {
		return srv.ListenAndServeTLS(certFile, keyFile)
	}

	return srv.ListenAndServe()
}

type startOpts struct {
	version       string
	serverVersion string
}

// StartOpts configures the start command.
type StartOpts func(opts *startOpts)

// WithVersion sets the build version reported by /version.
func WithVersion(version string) StartOpts {
	return func(opts *startOpts) {
		opts.version = version
	}
}

// WithServerVersion sets the server version reported by /version/system.
func WithServerVersion(version string) StartOpts {
	return func(opts *startOpts) {
		opts.serverVersion = version
	}
}

// GetStartCmd returns the Cobra start command.
func GetStartCmd(srv server, opts ...StartOpts) *cobra.Command {
	startCmd := createStartCmd(srv, opts...)

	createFlags(startCmd)

	return startCmd
}

func createStartCmd(srv server, opts ...StartOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start authz-rest",
		Long:  "Start the wallet authorization REST service",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getStartupParameters(cmd)
			if err != nil {
				return fmt.Errorf("failed to get startup parameters: %w", err)
			}

			common.SetLogLevels(logger, params.logLevel)

			o := &startOpts{}

			for _, opt := range opts {
				opt(o)
			}

			shutdown, tracerProvider, tracer, err := tracing.Initialize(params.tracingParams.exporter,
				params.tracingParams.serviceName)
			if err != nil {
				return fmt.Errorf("initialize tracing: %w", err)
			}

			defer shutdown()

			e, cleanup, err := buildEchoHandler(params, tracerProvider, tracer, o)
			if err != nil {
				return err
			}

			defer cleanup()

			logger.Info("Starting authz-rest server", log.WithURL(params.hostURL))

			return srv.ListenAndServe(params.hostURL, params.tlsParameters.serveCertPath,
				params.tlsParameters.serveKeyPath, e)
		},
	}
}

// nolint: funlen
func buildEchoHandler(
	params *startupParameters,
	tracerProvider trace.TracerProvider,
	tracer trace.Tracer,
	opts *startOpts,
) (*echo.Echo, func(), error) {
	var closers []func()

	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	tracingEnabled := params.tracingParams.exporter != tracing.None

	m, destroyMetrics := createMetrics(params)
	closers = append(closers, destroyMetrics)

	rootCAs, err := tlsutils.GetCertPool(params.tlsParameters.systemCertPool, params.tlsParameters.caCerts)
	if err != nil {
		cleanup()

		return nil, nil, fmt.Errorf("get cert pool: %w", err)
	}

	httpClient := &http.Client{
		Timeout:       defaultHTTPTimeout,
		CheckRedirect: wellknown.NoRedirect,
		Transport: otelhttp.NewTransport(
			&http.Transport{
				TLSClientConfig: &tls.Config{RootCAs: rootCAs, MinVersion: tls.VersionTLS12},
			},
			otelhttp.WithTracerProvider(tracerProvider),
		),
	}

	evidenceLookup, err := createEvidenceLookup(params.resolverParameters, httpClient)
	if err != nil {
		cleanup()

		return nil, nil, err
	}

	var trustResolver trustresolver.ServiceInterface = trustresolver.NewService(&trustresolver.Config{
		EvidenceLookup: evidenceLookup,
		Metrics:        m,
		MaxRetries:     maxRetries(params.resolverParameters),
		RetryInterval:  params.resolverParameters.retryInterval,
		Timeout:        params.resolverParameters.timeout,
	})

	if tracingEnabled {
		trustResolver = trustresolverwrapper.Wrap(trustResolver, tracer)
	}

	walletContext, err := createWalletContext(params.walletParameters)
	if err != nil {
		cleanup()

		return nil, nil, err
	}

	var storeTracerProvider trace.TracerProvider

	if tracingEnabled {
		storeTracerProvider = tracerProvider
	}

	store, err := common.InitStore(params.dbParameters, params.resolutionTTL, storeTracerProvider, logger)
	if err != nil {
		cleanup()

		return nil, nil, err
	}

	closers = append(closers, func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("Failed to close resolution store", log.WithError(closeErr))
		}
	})

	authorizationService := authorizationsvc.NewService(&authorizationsvc.Config{
		WalletContext: walletContext,
		TrustResolver: trustResolver,
		Store:         store.ResolutionStore,
		Policy:        createGrantPolicy(params.walletParameters),
		Metrics:       m,
		RequestTTL:    params.requestTTL,
	})

	closers = append(closers, authorizationService.Close)

	var svc authorizationsvc.ServiceInterface = authorizationService

	if tracingEnabled {
		svc = authorizationwrapper.Wrap(svc, tracer)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = resterrhandlers.HTTPErrorHandler(tracer)

	e.Use(echomw.Recover())

	if tracingEnabled {
		e.Use(otelecho.Middleware(params.tracingParams.serviceName, otelecho.WithTracerProvider(tracerProvider)))
	}

	ready := newReadinessController(e)

	healthcheck.NewController(e, &healthcheck.Config{Checks: store.Checks})

	version.NewController(e, version.Config{
		Version:            opts.version,
		ServerVersion:      opts.serverVersion,
		AttestationSources: params.resolverParameters.sources,
	})

	authorization.NewController(e, &authorization.Config{
		AuthorizationService: svc,
		Metrics:              m,
		Tracer:               tracer,
		WaitTimeout:          params.waitTimeout,
	})

	ready.Ready(true)

	closers = append(closers, func() { ready.Ready(false) })

	return e, cleanup, nil
}

func createMetrics(params *startupParameters) (metrics.Metrics, func()) {
	if params.metricsProviderName != prometheusMetricsProvider {
		return noop.GetMetrics(), func() {}
	}

	mux := http.NewServeMux()
	promprovider.NewHandler().Register(mux)

	provider := promprovider.NewPrometheusProvider(&http.Server{
		Addr:              params.prometheusMetricsProviderParams.url,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	})

	go func() {
		if err := provider.Create(); err != nil {
			logger.Error("Failed to start metrics provider", log.WithError(err))
		}
	}()

	return provider.Metrics(), func() {
		if err := provider.Destroy(); err != nil {
			logger.Warn("Failed to stop metrics provider", log.WithError(err))
		}
	}
}

func createEvidenceLookup(params *resolverParameters, httpClient *http.Client) (*attestation.Chain, error) {
	var sources []attestation.ServiceInterface

	for _, source := range params.sources {
		switch source {
		case wellknown.SourceName:
			sources = append(sources, wellknown.NewService(&wellknown.Config{
				HTTPClient: httpClient,
				Relations:  params.assetLinksRelations,
			}))
		case trustregistry.SourceName:
			jwks, err := os.ReadFile(params.trustRegistryJWKS)
			if err != nil {
				return nil, fmt.Errorf("read trust registry jwks: %w", err)
			}

			keySet, err := trustregistry.ParseKeySet(jwks)
			if err != nil {
				return nil, err
			}

			sources = append(sources, trustregistry.NewService(&trustregistry.Config{
				URL:        params.trustRegistryURL,
				HTTPClient: httpClient,
				KeySet:     keySet,
			}))
		default:
			return nil, fmt.Errorf("unsupported attestation source: %s", source)
		}
	}

	return attestation.NewChain(sources...), nil
}

func maxRetries(params *resolverParameters) uint64 {
	if params.maxRetries == nil {
		return trustresolver.DefaultMaxRetries
	}

	return *params.maxRetries
}

func createWalletContext(params *walletParameters) (*wallet.Context, error) {
	if params.publicKey == "" {
		logger.Warn("No wallet public key configured; authorization requests will be rejected")

		return wallet.NewContext(nil), nil
	}

	w, err := wallet.FromBase58(params.publicKey)
	if err != nil {
		return nil, fmt.Errorf("parse wallet public key: %w", err)
	}

	return wallet.NewContext(w), nil
}

func createGrantPolicy(params *walletParameters) *authorizationapi.GrantPolicy {
	policy := authorizationapi.DefaultGrantPolicy()

	if params.accountLabel != "" {
		policy.AccountLabel = params.accountLabel
	}

	if params.accountIcon != "" {
		policy.AccountIcon = params.accountIcon
	}

	if len(params.chains) > 0 {
		policy.Chains = params.chains
	}

	if len(params.features) > 0 {
		policy.Features = params.features
	}

	if params.authorizationScope != "" {
		policy.AuthorizationScope = []byte(params.authorizationScope)
	}

	policy.RequireVerified = params.requireVerified
	policy.RestrictChains = params.restrictChains

	return policy
}
