/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	jsonld "github.com/piprate/json-gold/ld"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/credgraph/credgraph-go/pkg/common/log"
	"github.com/credgraph/credgraph-go/pkg/controller"
	credgraphjsonld "github.com/credgraph/credgraph-go/pkg/doc/jsonld"
	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
	ldsvc "github.com/credgraph/credgraph-go/pkg/ld"
	"github.com/credgraph/credgraph-go/pkg/storage/mem"
	ldstore "github.com/credgraph/credgraph-go/pkg/store/ld"
)

const (
	// api host flag.
	agentHostFlagName      = "api-host"
	agentHostEnvKey        = "CREDGRAPH_API_HOST"
	agentHostFlagShorthand = "a"
	agentHostFlagUsage     = "Host Name:Port." +
		" Alternatively, this can be set with the following environment variable: " + agentHostEnvKey

	// api token flag.
	agentTokenFlagName      = "api-token"
	agentTokenEnvKey        = "CREDGRAPH_API_TOKEN" // nolint:gosec
	agentTokenFlagShorthand = "t"
	agentTokenFlagUsage     = "Check for bearer token in the authorization header (optional)." +
		" Alternatively, this can be set with the following environment variable: " + agentTokenEnvKey

	// log level.
	agentLogLevelFlagName  = "log-level"
	agentLogLevelEnvKey    = "CREDGRAPH_LOG_LEVEL"
	agentLogLevelFlagUsage = "Log level." +
		" Possible values [INFO] [DEBUG] [ERROR] [WARNING] [CRITICAL] . Defaults to INFO if not set." +
		" Alternatively, this can be set with the following environment variable: " + agentLogLevelEnvKey

	agentTLSCertFileFlagName      = "tls-cert-file"
	agentTLSCertFileEnvKey        = "TLS_CERT_FILE"
	agentTLSCertFileFlagShorthand = "c"
	agentTLSCertFileFlagUsage     = "tls certificate file." +
		" Alternatively, this can be set with the following environment variable: " + agentTLSCertFileEnvKey

	agentTLSKeyFileFlagName      = "tls-key-file"
	agentTLSKeyFileEnvKey        = "TLS_KEY_FILE"
	agentTLSKeyFileFlagShorthand = "k"
	agentTLSKeyFileFlagUsage     = "tls key file." +
		" Alternatively, this can be set with the following environment variable: " + agentTLSKeyFileEnvKey

	// max payload size flag.
	agentMaxPayloadSizeFlagName  = "max-payload-size"
	agentMaxPayloadSizeEnvKey    = "CREDGRAPH_MAX_PAYLOAD_SIZE"
	agentMaxPayloadSizeFlagUsage = "Maximum size in bytes of documents accepted for parsing." +
		" Defaults to " + maxPayloadSizeDefault + " bytes if not set. Set to 'unlimited' to disable the guard." +
		" Alternatively, this can be set with the following environment variable: " + agentMaxPayloadSizeEnvKey

	// remote context provider flag.
	agentContextProviderFlagName  = "context-provider-url"
	agentContextProviderEnvKey    = "CREDGRAPH_CONTEXT_PROVIDER_URL"
	agentContextProviderFlagUsage = "Remote context provider URL to get JSON-LD contexts from." +
		" This flag can be repeated, allowing setting up multiple context providers." +
		" Alternatively, this can be set with the following environment variable (in CSV format): " +
		agentContextProviderEnvKey

	maxPayloadSizeDefault   = "10485760"
	maxPayloadSizeUnlimited = "unlimited"
)

var (
	errMissingHost = errors.New("host not provided")
	logger         = log.New("credgraph/rest")
)

type agentParameters struct {
	server                  server
	host, token             string
	tlsCertFile, tlsKeyFile string
	maxPayloadSize          string
	contextProviderURLs     []string
}

type server interface {
	ListenAndServe(host string, router http.Handler, certFile, keyFile string) error
}

// HTTPServer represents an actual server implementation.
type HTTPServer struct{}

// ListenAndServe starts the server using the standard Go HTTP server implementation.
func (s *HTTPServer) ListenAndServe(host string, router http.Handler, certFile, keyFile string) error {
	if certFile != "" && keyFile != "" {
		return http.ListenAndServeTLS(host, certFile, keyFile, router)
	}

	return http.ListenAndServe(host, router)
}

// Cmd returns the Cobra start command.
func Cmd(server server) (*cobra.Command, error) {
	startCmd := createStartCMD(server)

	createFlags(startCmd)

	return startCmd, nil
}

func createStartCMD(server server) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the server",
		Long:  `Start the credential graph controller API server`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logLevel, err := getUserSetVar(cmd, agentLogLevelFlagName, agentLogLevelEnvKey, true)
			if err != nil {
				return err
			}

			if err := setLogLevel(logLevel); err != nil {
				return err
			}

			host, err := getUserSetVar(cmd, agentHostFlagName, agentHostEnvKey, false)
			if err != nil {
				return err
			}

			token, err := getUserSetVar(cmd, agentTokenFlagName, agentTokenEnvKey, true)
			if err != nil {
				return err
			}

			tlsCertFile, err := getUserSetVar(cmd, agentTLSCertFileFlagName, agentTLSCertFileEnvKey, true)
			if err != nil {
				return err
			}

			tlsKeyFile, err := getUserSetVar(cmd, agentTLSKeyFileFlagName, agentTLSKeyFileEnvKey, true)
			if err != nil {
				return err
			}

			maxPayloadSize, err := getUserSetVar(cmd, agentMaxPayloadSizeFlagName, agentMaxPayloadSizeEnvKey, true)
			if err != nil {
				return err
			}

			contextProviderURLs, err := getUserSetVars(cmd, agentContextProviderFlagName,
				agentContextProviderEnvKey, true)
			if err != nil {
				return err
			}

			parameters := &agentParameters{
				server:              server,
				host:                host,
				token:               token,
				tlsCertFile:         tlsCertFile,
				tlsKeyFile:          tlsKeyFile,
				maxPayloadSize:      maxPayloadSize,
				contextProviderURLs: contextProviderURLs,
			}

			return startServer(parameters)
		},
	}
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(agentHostFlagName, agentHostFlagShorthand, "", agentHostFlagUsage)
	startCmd.Flags().StringP(agentTokenFlagName, agentTokenFlagShorthand, "", agentTokenFlagUsage)
	startCmd.Flags().StringP(agentLogLevelFlagName, "", "", agentLogLevelFlagUsage)
	startCmd.Flags().StringP(agentTLSCertFileFlagName, agentTLSCertFileFlagShorthand, "", agentTLSCertFileFlagUsage)
	startCmd.Flags().StringP(agentTLSKeyFileFlagName, agentTLSKeyFileFlagShorthand, "", agentTLSKeyFileFlagUsage)
	startCmd.Flags().StringP(agentMaxPayloadSizeFlagName, "", "", agentMaxPayloadSizeFlagUsage)
	startCmd.Flags().StringSliceP(agentContextProviderFlagName, "", []string{}, agentContextProviderFlagUsage)
}

func getUserSetVar(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

func getUserSetVars(cmd *cobra.Command, flagName, envKey string, isOptional bool) ([]string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetStringSlice(flagName)
		if err != nil {
			return nil, fmt.Errorf(flagName+" flag not found: %s", err)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	var values []string

	if isSet {
		values = strings.Split(value, ",")
	}

	if isOptional || isSet {
		return values, nil
	}

	return nil, fmt.Errorf(" %s not set. "+
		"It must be set via either command line or environment variable", flagName)
}

func setLogLevel(logLevel string) error {
	if logLevel != "" {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("failed to parse log level '%s' : %w", logLevel, err)
		}

		log.SetLevel("", level)

		logger.Infof("logger level set to %s", logLevel)
	}

	return nil
}

func setMaxPayloadSize(value string) error {
	if value == "" {
		return nil
	}

	if value == maxPayloadSizeUnlimited {
		rdf.DisableMaxPayloadSize()

		return nil
	}

	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse max payload size '%s' : %w", value, err)
	}

	return rdf.SetMaxPayloadSize(size)
}

func validateAuthorizationBearerToken(w http.ResponseWriter, r *http.Request, token string) bool {
	actHdr := r.Header.Get("Authorization")
	expHdr := "Bearer " + token

	if subtle.ConstantTimeCompare([]byte(actHdr), []byte(expHdr)) != 1 {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorised.\n")) // nolint:gosec,errcheck

		return false
	}

	return true
}

func authorizationMiddleware(token string) mux.MiddlewareFunc {
	middleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validateAuthorizationBearerToken(w, r, token) {
				next.ServeHTTP(w, r)
			}
		})
	}

	return middleware
}

// ctxProvider carries the stores and loader the controller APIs depend on.
type ctxProvider struct {
	contextStore        ldstore.ContextStore
	remoteProviderStore ldstore.RemoteProviderStore
	documentLoader      jsonld.DocumentLoader
}

func (p *ctxProvider) JSONLDContextStore() ldstore.ContextStore {
	return p.contextStore
}

func (p *ctxProvider) JSONLDRemoteProviderStore() ldstore.RemoteProviderStore {
	return p.remoteProviderStore
}

func (p *ctxProvider) JSONLDDocumentLoader() jsonld.DocumentLoader {
	return p.documentLoader
}

func startServer(parameters *agentParameters) error {
	if parameters.host == "" {
		return errMissingHost
	}

	if err := setMaxPayloadSize(parameters.maxPayloadSize); err != nil {
		return err
	}

	ctx, svc, err := createServices(parameters)
	if err != nil {
		return err
	}

	handlers := controller.GetRESTHandlers(ctx, svc)

	router := mux.NewRouter()

	if parameters.token != "" {
		router.Use(authorizationMiddleware(parameters.token))
	}

	for _, handler := range handlers {
		router.HandleFunc(handler.Path(), handler.Handle()).Methods(handler.Method())
	}

	logger.Infof("Starting credgraph rest server on host [%s]", parameters.host)

	handler := cors.New(
		cors.Options{
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodHead},
			AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		},
	).Handler(router)

	err = parameters.server.ListenAndServe(parameters.host, handler, parameters.tlsCertFile, parameters.tlsKeyFile)
	if err != nil {
		return fmt.Errorf("failed to start credgraph rest server on host [%s], cause:  %w", parameters.host, err)
	}

	return nil
}

func createServices(parameters *agentParameters) (*ctxProvider, ldsvc.Service, error) {
	storageProvider := mem.NewProvider()

	contextStore, err := ldstore.NewContextStore(storageProvider)
	if err != nil {
		return nil, nil, fmt.Errorf("create context store: %w", err)
	}

	remoteProviderStore, err := ldstore.NewRemoteProviderStore(storageProvider)
	if err != nil {
		return nil, nil, fmt.Errorf("create remote provider store: %w", err)
	}

	ctx := &ctxProvider{
		contextStore:        contextStore,
		remoteProviderStore: remoteProviderStore,
	}

	documentLoader, err := credgraphjsonld.NewDocumentLoader(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("create document loader: %w", err)
	}

	ctx.documentLoader = documentLoader

	svc := ldsvc.New(ctx)

	for _, endpoint := range parameters.contextProviderURLs {
		if _, err := svc.AddRemoteProvider(endpoint); err != nil {
			return nil, nil, fmt.Errorf("add remote context provider %s: %w", endpoint, err)
		}
	}

	return ctx, svc, nil
}
