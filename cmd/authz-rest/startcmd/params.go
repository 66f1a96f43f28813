/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"

	"github.com/trustbloc/walletauthz/cmd/common"
	"github.com/trustbloc/walletauthz/pkg/observability/tracing"
	"github.com/trustbloc/walletauthz/pkg/service/trustregistry"
	"github.com/trustbloc/walletauthz/pkg/service/wellknown"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "URL to run the authz-rest instance on. Format: HostName:Port. " +
		commonEnvVarUsageText + hostURLEnvKey
	hostURLEnvKey = "AUTHZ_REST_HOST_URL"

	tlsSystemCertPoolFlagName  = "tls-systemcertpool"
	tlsSystemCertPoolFlagUsage = "Use system certificate pool for evidence lookups." +
		" Possible values [true] [false]. Defaults to false if not set. " + commonEnvVarUsageText + tlsSystemCertPoolEnvKey
	tlsSystemCertPoolEnvKey = "AUTHZ_REST_TLS_SYSTEMCERTPOOL"

	tlsCACertsFlagName  = "tls-cacerts"
	tlsCACertsFlagUsage = "Comma-Separated list of ca certs path." + commonEnvVarUsageText + tlsCACertsEnvKey
	tlsCACertsEnvKey    = "AUTHZ_REST_TLS_CACERTS"

	tlsCertificateFlagName  = "tls-certificate"
	tlsCertificateFlagUsage = "TLS certificate for authz-rest server. " + commonEnvVarUsageText + tlsCertificateEnvKey
	tlsCertificateEnvKey    = "AUTHZ_REST_TLS_CERTIFICATE"

	tlsKeyFlagName  = "tls-key"
	tlsKeyFlagUsage = "TLS key for authz-rest server. " + commonEnvVarUsageText + tlsKeyEnvKey
	tlsKeyEnvKey    = "AUTHZ_REST_TLS_KEY"

	walletPublicKeyFlagName  = "wallet-public-key"
	walletPublicKeyFlagUsage = "Base58 encoded public key of the wallet granted on approval. Requests are " +
		"rejected with wallet_not_ready when not set. " + commonEnvVarUsageText + walletPublicKeyEnvKey
	walletPublicKeyEnvKey = "AUTHZ_REST_WALLET_PUBLIC_KEY"

	accountLabelFlagName  = "account-label"
	accountLabelFlagUsage = "Label of the granted account. " + commonEnvVarUsageText + accountLabelEnvKey
	accountLabelEnvKey    = "AUTHZ_REST_ACCOUNT_LABEL"

	accountIconFlagName  = "account-icon"
	accountIconFlagUsage = "Icon of the granted account. " + commonEnvVarUsageText + accountIconEnvKey
	accountIconEnvKey    = "AUTHZ_REST_ACCOUNT_ICON"

	chainsFlagName  = "chains"
	chainsFlagUsage = "Comma-Separated list of chains the wallet grants. Defaults to solana:devnet,solana:testnet. " +
		commonEnvVarUsageText + chainsEnvKey
	chainsEnvKey = "AUTHZ_REST_CHAINS"

	featuresFlagName  = "features"
	featuresFlagUsage = "Comma-Separated list of features exposed by the granted account. " +
		commonEnvVarUsageText + featuresEnvKey
	featuresEnvKey = "AUTHZ_REST_FEATURES"

	authorizationScopeFlagName  = "authorization-scope"
	authorizationScopeFlagUsage = "Opaque authorization scope returned with every grant. " +
		commonEnvVarUsageText + authorizationScopeEnvKey
	authorizationScopeEnvKey = "AUTHZ_REST_AUTHORIZATION_SCOPE"

	requireVerifiedFlagName  = "require-verified"
	requireVerifiedFlagUsage = "Block approval unless the caller is verified. Possible values [true] [false]. " +
		"Defaults to false. " + commonEnvVarUsageText + requireVerifiedEnvKey
	requireVerifiedEnvKey = "AUTHZ_REST_REQUIRE_VERIFIED"

	restrictChainsFlagName  = "restrict-chains"
	restrictChainsFlagUsage = "Reject requests for a chain outside the granted chains. Possible values [true] [false]. " +
		"Defaults to false. " + commonEnvVarUsageText + restrictChainsEnvKey
	restrictChainsEnvKey = "AUTHZ_REST_RESTRICT_CHAINS"

	attestationSourcesFlagName  = "attestation-sources"
	attestationSourcesFlagUsage = "Ordered, comma-separated list of evidence sources. Supported: " +
		wellknown.SourceName + ", " + trustregistry.SourceName + ". Defaults to " + wellknown.SourceName + ". " +
		commonEnvVarUsageText + attestationSourcesEnvKey
	attestationSourcesEnvKey = "AUTHZ_REST_ATTESTATION_SOURCES"

	trustRegistryURLFlagName  = "trust-registry-url"
	trustRegistryURLFlagUsage = "Trust registry attestation endpoint. Required when the " + trustregistry.SourceName +
		" source is enabled. " + commonEnvVarUsageText + trustRegistryURLEnvKey
	trustRegistryURLEnvKey = "AUTHZ_REST_TRUST_REGISTRY_URL"

	trustRegistryJWKSFlagName  = "trust-registry-jwks-file"
	trustRegistryJWKSFlagUsage = "Path to the JSON Web Key Set verifying trust registry attestations. Required when " +
		"the " + trustregistry.SourceName + " source is enabled. " +
		commonEnvVarUsageText + trustRegistryJWKSEnvKey
	trustRegistryJWKSEnvKey = "AUTHZ_REST_TRUST_REGISTRY_JWKS_FILE"

	assetLinksRelationsFlagName  = "asset-links-relations"
	assetLinksRelationsFlagUsage = "Comma-Separated list of asset link relations accepted as evidence. " +
		commonEnvVarUsageText + assetLinksRelationsEnvKey
	assetLinksRelationsEnvKey = "AUTHZ_REST_ASSET_LINKS_RELATIONS"

	resolverMaxRetriesFlagName  = "resolver-max-retries"
	resolverMaxRetriesFlagUsage = "Retries of a failed evidence lookup. Defaults to 2. " +
		commonEnvVarUsageText + resolverMaxRetriesEnvKey
	resolverMaxRetriesEnvKey = "AUTHZ_REST_RESOLVER_MAX_RETRIES"

	resolverRetryIntervalFlagName  = "resolver-retry-interval"
	resolverRetryIntervalFlagUsage = "Interval between evidence lookup retries. Defaults to 250ms. " +
		commonEnvVarUsageText + resolverRetryIntervalEnvKey
	resolverRetryIntervalEnvKey = "AUTHZ_REST_RESOLVER_RETRY_INTERVAL"

	resolverTimeoutFlagName  = "resolver-timeout"
	resolverTimeoutFlagUsage = "Upper bound of one trust resolution. Defaults to 10s. " +
		commonEnvVarUsageText + resolverTimeoutEnvKey
	resolverTimeoutEnvKey = "AUTHZ_REST_RESOLVER_TIMEOUT"

	requestTTLFlagName  = "request-ttl"
	requestTTLFlagUsage = "Lifetime of an unresolved authorization request. Defaults to 5m. " +
		commonEnvVarUsageText + requestTTLEnvKey
	requestTTLEnvKey = "AUTHZ_REST_REQUEST_TTL"

	resolutionTTLFlagName  = "resolution-ttl"
	resolutionTTLFlagUsage = "How long an emitted resolution can be collected. Defaults to 1h. " +
		commonEnvVarUsageText + resolutionTTLEnvKey
	resolutionTTLEnvKey = "AUTHZ_REST_RESOLUTION_TTL"

	waitTimeoutFlagName  = "wait-timeout"
	waitTimeoutFlagUsage = "Upper bound of a long poll for the verification state. Defaults to 30s. " +
		commonEnvVarUsageText + waitTimeoutEnvKey
	waitTimeoutEnvKey = "AUTHZ_REST_WAIT_TIMEOUT"

	metricsProviderFlagName         = "metrics-provider-name"
	metricsProviderEnvKey           = "AUTHZ_METRICS_PROVIDER_NAME"
	allowedMetricsProviderFlagUsage = "The metrics provider name (for example: 'prometheus' etc.). " +
		commonEnvVarUsageText + metricsProviderEnvKey

	promHttpUrlFlagName             = "prom-http-url"
	promHttpUrlEnvKey               = "AUTHZ_PROM_HTTP_URL"
	allowedPromHttpUrlFlagNameUsage = "URL that exposes the prometheus metrics endpoint. Format: HostName:Port. " +
		commonEnvVarUsageText + promHttpUrlEnvKey

	tracingExporterFlagName  = "tracing-exporter"
	tracingExporterEnvKey    = "AUTHZ_TRACING_EXPORTER"
	tracingExporterFlagUsage = "Span exporter type (STDOUT, OTLP_HTTP). Tracing is disabled when not set. " +
		commonEnvVarUsageText + tracingExporterEnvKey

	tracingServiceNameFlagName  = "tracing-service-name"
	tracingServiceNameEnvKey    = "AUTHZ_TRACING_SERVICE_NAME"
	tracingServiceNameFlagUsage = "Name of the tracing service. Defaults to " + defaultTracingServiceName + ". " +
		commonEnvVarUsageText + tracingServiceNameEnvKey

	defaultTracingServiceName = "authz-rest"
	defaultResolutionTTL      = time.Hour

	prometheusMetricsProvider = "prometheus"
)

type startupParameters struct {
	hostURL                         string
	logLevel                        string
	tlsParameters                   *tlsParameters
	dbParameters                    *common.DBParameters
	walletParameters                *walletParameters
	resolverParameters              *resolverParameters
	requestTTL                      time.Duration
	resolutionTTL                   time.Duration
	waitTimeout                     time.Duration
	metricsProviderName             string
	prometheusMetricsProviderParams *prometheusMetricsProviderParams
	tracingParams                   *tracingParams
}

type tlsParameters struct {
	systemCertPool bool
	caCerts        []string
	serveCertPath  string
	serveKeyPath   string
}

type walletParameters struct {
	publicKey          string
	accountLabel       string
	accountIcon        string
	chains             []string
	features           []string
	authorizationScope string
	requireVerified    bool
	restrictChains     bool
}

type resolverParameters struct {
	sources             []string
	trustRegistryURL    string
	trustRegistryJWKS   string
	assetLinksRelations []string
	maxRetries          *uint64
	retryInterval       time.Duration
	timeout             time.Duration
}

type prometheusMetricsProviderParams struct {
	url string
}

type tracingParams struct {
	exporter    tracing.SpanExporterType
	serviceName string
}

func getStartupParameters(cmd *cobra.Command) (*startupParameters, error) {
	hostURL, err := cmdutils.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	metricsProviderName := cmdutils.GetUserSetOptionalVarFromString(cmd, metricsProviderFlagName,
		metricsProviderEnvKey)

	var promParams *prometheusMetricsProviderParams

	switch metricsProviderName {
	case "":
	case prometheusMetricsProvider:
		promParams, err = getPrometheusMetricsProviderParams(cmd)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported metrics provider: %s", metricsProviderName)
	}

	tlsParams, err := getTLS(cmd)
	if err != nil {
		return nil, err
	}

	dbParams, err := common.DBParams(cmd)
	if err != nil {
		return nil, err
	}

	walletParams, err := getWalletParameters(cmd)
	if err != nil {
		return nil, err
	}

	resolverParams, err := getResolverParameters(cmd)
	if err != nil {
		return nil, err
	}

	requestTTL, err := getDuration(cmd, requestTTLFlagName, requestTTLEnvKey, 0)
	if err != nil {
		return nil, err
	}

	resolutionTTL, err := getDuration(cmd, resolutionTTLFlagName, resolutionTTLEnvKey, defaultResolutionTTL)
	if err != nil {
		return nil, err
	}

	waitTimeout, err := getDuration(cmd, waitTimeoutFlagName, waitTimeoutEnvKey, 0)
	if err != nil {
		return nil, err
	}

	tracingParams, err := getTracingParams(cmd)
	if err != nil {
		return nil, err
	}

	logLevel := cmdutils.GetUserSetOptionalVarFromString(cmd, common.LogLevelFlagName, common.LogLevelEnvKey)

	return &startupParameters{
		hostURL:                         hostURL,
		logLevel:                        logLevel,
		tlsParameters:                   tlsParams,
		dbParameters:                    dbParams,
		walletParameters:                walletParams,
		resolverParameters:              resolverParams,
		requestTTL:                      requestTTL,
		resolutionTTL:                   resolutionTTL,
		waitTimeout:                     waitTimeout,
		metricsProviderName:             metricsProviderName,
		prometheusMetricsProviderParams: promParams,
		tracingParams:                   tracingParams,
	}, nil
}

func getPrometheusMetricsProviderParams(cmd *cobra.Command) (*prometheusMetricsProviderParams, error) {
	promMetricsURL, err := cmdutils.GetUserSetVarFromString(cmd, promHttpUrlFlagName, promHttpUrlEnvKey, false)
	if err != nil {
		return nil, err
	}

	return &prometheusMetricsProviderParams{url: promMetricsURL}, nil
}

func getTLS(cmd *cobra.Command) (*tlsParameters, error) {
	systemCertPool, err := getBool(cmd, tlsSystemCertPoolFlagName, tlsSystemCertPoolEnvKey)
	if err != nil {
		return nil, err
	}

	return &tlsParameters{
		systemCertPool: systemCertPool,
		caCerts:        cmdutils.GetUserSetOptionalVarFromArrayString(cmd, tlsCACertsFlagName, tlsCACertsEnvKey),
		serveCertPath:  cmdutils.GetUserSetOptionalVarFromString(cmd, tlsCertificateFlagName, tlsCertificateEnvKey),
		serveKeyPath:   cmdutils.GetUserSetOptionalVarFromString(cmd, tlsKeyFlagName, tlsKeyEnvKey),
	}, nil
}

func getWalletParameters(cmd *cobra.Command) (*walletParameters, error) {
	requireVerified, err := getBool(cmd, requireVerifiedFlagName, requireVerifiedEnvKey)
	if err != nil {
		return nil, err
	}

	restrictChains, err := getBool(cmd, restrictChainsFlagName, restrictChainsEnvKey)
	if err != nil {
		return nil, err
	}

	return &walletParameters{
		publicKey:    cmdutils.GetUserSetOptionalVarFromString(cmd, walletPublicKeyFlagName, walletPublicKeyEnvKey),
		accountLabel: cmdutils.GetUserSetOptionalVarFromString(cmd, accountLabelFlagName, accountLabelEnvKey),
		accountIcon:  cmdutils.GetUserSetOptionalVarFromString(cmd, accountIconFlagName, accountIconEnvKey),
		chains:       cmdutils.GetUserSetOptionalCSVVar(cmd, chainsFlagName, chainsEnvKey),
		features:     cmdutils.GetUserSetOptionalCSVVar(cmd, featuresFlagName, featuresEnvKey),
		authorizationScope: cmdutils.GetUserSetOptionalVarFromString(cmd, authorizationScopeFlagName,
			authorizationScopeEnvKey),
		requireVerified: requireVerified,
		restrictChains:  restrictChains,
	}, nil
}

func getResolverParameters(cmd *cobra.Command) (*resolverParameters, error) {
	params := &resolverParameters{
		sources: cmdutils.GetUserSetOptionalCSVVar(cmd, attestationSourcesFlagName, attestationSourcesEnvKey),
		trustRegistryURL: cmdutils.GetUserSetOptionalVarFromString(cmd, trustRegistryURLFlagName,
			trustRegistryURLEnvKey),
		trustRegistryJWKS: cmdutils.GetUserSetOptionalVarFromString(cmd, trustRegistryJWKSFlagName,
			trustRegistryJWKSEnvKey),
		assetLinksRelations: cmdutils.GetUserSetOptionalCSVVar(cmd, assetLinksRelationsFlagName,
			assetLinksRelationsEnvKey),
	}

	if len(params.sources) == 0 {
		params.sources = []string{wellknown.SourceName}
	}

	for _, source := range params.sources {
		switch source {
		case wellknown.SourceName:
		case trustregistry.SourceName:
			if params.trustRegistryURL == "" || params.trustRegistryJWKS == "" {
				return nil, fmt.Errorf("%s and %s are required by the %s attestation source",
					trustRegistryURLFlagName, trustRegistryJWKSFlagName, trustregistry.SourceName)
			}
		default:
			return nil, fmt.Errorf("unsupported attestation source: %s", source)
		}
	}

	maxRetries := cmdutils.GetUserSetOptionalVarFromString(cmd, resolverMaxRetriesFlagName, resolverMaxRetriesEnvKey)
	if maxRetries != "" {
		retries, err := strconv.ParseUint(maxRetries, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value [%s] for %s: %w", maxRetries, resolverMaxRetriesFlagName, err)
		}

		params.maxRetries = &retries
	}

	var err error

	params.retryInterval, err = getDuration(cmd, resolverRetryIntervalFlagName, resolverRetryIntervalEnvKey, 0)
	if err != nil {
		return nil, err
	}

	params.timeout, err = getDuration(cmd, resolverTimeoutFlagName, resolverTimeoutEnvKey, 0)
	if err != nil {
		return nil, err
	}

	return params, nil
}

func getTracingParams(cmd *cobra.Command) (*tracingParams, error) {
	exporter := tracing.SpanExporterType(
		cmdutils.GetUserSetOptionalVarFromString(cmd, tracingExporterFlagName, tracingExporterEnvKey))

	if !tracing.IsExportedSupported(exporter) {
		return nil, fmt.Errorf("unsupported tracing exporter: %s", exporter)
	}

	serviceName := cmdutils.GetUserSetOptionalVarFromString(cmd, tracingServiceNameFlagName, tracingServiceNameEnvKey)
	if serviceName == "" {
		serviceName = defaultTracingServiceName
	}

	return &tracingParams{
		exporter:    exporter,
		serviceName: serviceName,
	}, nil
}

func getBool(cmd *cobra.Command, flagName, envKey string) (bool, error) {
	value := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if value == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value [%s] for %s: %w", value, flagName, err)
	}

	return b, nil
}

func getDuration(cmd *cobra.Command, flagName, envKey string,
	defaultDuration time.Duration) (time.Duration, error) {
	timeoutStr := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)

	if timeoutStr == "" {
		return defaultDuration, nil
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return -1, fmt.Errorf("invalid value [%s]: %w", timeoutStr, err)
	}

	return timeout, nil
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "", common.LogLevelPrefixFlagUsage)
	startCmd.Flags().StringP(tlsSystemCertPoolFlagName, "", "", tlsSystemCertPoolFlagUsage)
	startCmd.Flags().StringSliceP(tlsCACertsFlagName, "", []string{}, tlsCACertsFlagUsage)
	startCmd.Flags().StringP(tlsCertificateFlagName, "", "", tlsCertificateFlagUsage)
	startCmd.Flags().StringP(tlsKeyFlagName, "", "", tlsKeyFlagUsage)

	startCmd.Flags().String(walletPublicKeyFlagName, "", walletPublicKeyFlagUsage)
	startCmd.Flags().String(accountLabelFlagName, "", accountLabelFlagUsage)
	startCmd.Flags().String(accountIconFlagName, "", accountIconFlagUsage)
	startCmd.Flags().StringSlice(chainsFlagName, []string{}, chainsFlagUsage)
	startCmd.Flags().StringSlice(featuresFlagName, []string{}, featuresFlagUsage)
	startCmd.Flags().String(authorizationScopeFlagName, "", authorizationScopeFlagUsage)
	startCmd.Flags().String(requireVerifiedFlagName, "", requireVerifiedFlagUsage)
	startCmd.Flags().String(restrictChainsFlagName, "", restrictChainsFlagUsage)

	startCmd.Flags().StringSlice(attestationSourcesFlagName, []string{}, attestationSourcesFlagUsage)
	startCmd.Flags().String(trustRegistryURLFlagName, "", trustRegistryURLFlagUsage)
	startCmd.Flags().String(trustRegistryJWKSFlagName, "", trustRegistryJWKSFlagUsage)
	startCmd.Flags().StringSlice(assetLinksRelationsFlagName, []string{}, assetLinksRelationsFlagUsage)
	startCmd.Flags().String(resolverMaxRetriesFlagName, "", resolverMaxRetriesFlagUsage)
	startCmd.Flags().String(resolverRetryIntervalFlagName, "", resolverRetryIntervalFlagUsage)
	startCmd.Flags().String(resolverTimeoutFlagName, "", resolverTimeoutFlagUsage)

	startCmd.Flags().String(requestTTLFlagName, "", requestTTLFlagUsage)
	startCmd.Flags().String(resolutionTTLFlagName, "", resolutionTTLFlagUsage)
	startCmd.Flags().String(waitTimeoutFlagName, "", waitTimeoutFlagUsage)

	startCmd.Flags().StringP(metricsProviderFlagName, "", "", allowedMetricsProviderFlagUsage)
	startCmd.Flags().StringP(promHttpUrlFlagName, "", "", allowedPromHttpUrlFlagNameUsage)

	startCmd.Flags().StringP(tracingExporterFlagName, "", "", tracingExporterFlagUsage)
	startCmd.Flags().StringP(tracingServiceNameFlagName, "", "", tracingServiceNameFlagUsage)

	common.Flags(startCmd)
}
