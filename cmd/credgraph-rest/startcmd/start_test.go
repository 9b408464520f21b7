/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

type mockServer struct{}

func (s *mockServer) ListenAndServe(host string, router http.Handler, certFile, keyFile string) error {
	return nil
}

func TestStartCmdContents(t *testing.T) {
	startCmd, err := Cmd(&mockServer{})
	require.NoError(t, err)

	require.Equal(t, "start", startCmd.Use)
	require.Equal(t, "Start the server", startCmd.Short)
	require.Equal(t, "Start the credential graph controller API server", startCmd.Long)

	checkFlagPropertiesCorrect(t, startCmd, agentHostFlagName, agentHostFlagShorthand, agentHostFlagUsage)
	checkFlagPropertiesCorrect(t, startCmd, agentTokenFlagName, agentTokenFlagShorthand, agentTokenFlagUsage)
	checkFlagPropertiesCorrect(t, startCmd, agentLogLevelFlagName, "", agentLogLevelFlagUsage)
}

func TestStartCmdWithBlankHostArg(t *testing.T) {
	startCmd, err := Cmd(&mockServer{})
	require.NoError(t, err)

	startCmd.SetArgs([]string{"--" + agentHostFlagName, ""})

	err = startCmd.Execute()

	require.Equal(t, errMissingHost, err)
}

func TestStartCmdWithMissingHostArg(t *testing.T) {
	startCmd, err := Cmd(&mockServer{})
	require.NoError(t, err)

	startCmd.SetArgs([]string{})

	err = startCmd.Execute()

	require.Error(t, err)
	require.Contains(t, err.Error(),
		"Neither api-host (command line flag) nor CREDGRAPH_API_HOST (environment variable) have been set.")
}

func TestStartCmdValidArgs(t *testing.T) {
	startCmd, err := Cmd(&mockServer{})
	require.NoError(t, err)

	startCmd.SetArgs([]string{
		"--" + agentHostFlagName, "localhost:8080",
		"--" + agentTokenFlagName, "ABCToken",
		"--" + agentLogLevelFlagName, "DEBUG",
	})

	err = startCmd.Execute()

	require.NoError(t, err)
}

func TestStartCmdWithEnvVariables(t *testing.T) {
	t.Setenv(agentHostEnvKey, "localhost:8080")
	t.Setenv(agentLogLevelEnvKey, "INFO")

	startCmd, err := Cmd(&mockServer{})
	require.NoError(t, err)

	startCmd.SetArgs([]string{})

	err = startCmd.Execute()

	require.NoError(t, err)
}

func TestStartCmdWithInvalidLogLevel(t *testing.T) {
	startCmd, err := Cmd(&mockServer{})
	require.NoError(t, err)

	startCmd.SetArgs([]string{
		"--" + agentHostFlagName, "localhost:8080",
		"--" + agentLogLevelFlagName, "INVALID",
	})

	err = startCmd.Execute()

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse log level")
}

func TestStartCmdMaxPayloadSize(t *testing.T) {
	t.Run("Invalid value", func(t *testing.T) {
		startCmd, err := Cmd(&mockServer{})
		require.NoError(t, err)

		startCmd.SetArgs([]string{
			"--" + agentHostFlagName, "localhost:8080",
			"--" + agentMaxPayloadSizeFlagName, "not a number",
		})

		err = startCmd.Execute()

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse max payload size")
	})

	t.Run("Valid value", func(t *testing.T) {
		defer func() {
			require.NoError(t, rdf.SetMaxPayloadSize(rdf.DefaultMaxPayloadSize))
		}()

		startCmd, err := Cmd(&mockServer{})
		require.NoError(t, err)

		startCmd.SetArgs([]string{
			"--" + agentHostFlagName, "localhost:8080",
			"--" + agentMaxPayloadSizeFlagName, "1024",
		})

		err = startCmd.Execute()

		require.NoError(t, err)
	})

	t.Run("Unlimited", func(t *testing.T) {
		defer func() {
			require.NoError(t, rdf.SetMaxPayloadSize(rdf.DefaultMaxPayloadSize))
		}()

		startCmd, err := Cmd(&mockServer{})
		require.NoError(t, err)

		startCmd.SetArgs([]string{
			"--" + agentHostFlagName, "localhost:8080",
			"--" + agentMaxPayloadSizeFlagName, maxPayloadSizeUnlimited,
		})

		err = startCmd.Execute()

		require.NoError(t, err)
	})
}

func TestStartCmdWithUnreachableContextProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	startCmd, err := Cmd(&mockServer{})
	require.NoError(t, err)

	startCmd.SetArgs([]string{
		"--" + agentHostFlagName, "localhost:8080",
		"--" + agentContextProviderFlagName, srv.URL,
	})

	err = startCmd.Execute()

	require.Error(t, err)
	require.Contains(t, err.Error(), "add remote context provider")
}

func TestAuthorizationMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := authorizationMiddleware("secret")(next)

	t.Run("Valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ld/remote-providers", nil)
		req.Header.Set("Authorization", "Bearer secret")

		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ld/remote-providers", nil)
		req.Header.Set("Authorization", "Bearer wrong")

		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ld/remote-providers", nil)

		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestHTTPServer_ListenAndServe(t *testing.T) {
	err := (&HTTPServer{}).ListenAndServe("wronghost", nil, "", "")

	require.Error(t, err)
	require.Contains(t, err.Error(), "address wronghost")
}

func checkFlagPropertiesCorrect(t *testing.T, cmd *cobra.Command, flagName, flagShorthand, flagUsage string) {
	t.Helper()

	flag := cmd.Flag(flagName)

	require.NotNil(t, flag)
	require.Equal(t, flagName, flag.Name)
	require.Equal(t, flagShorthand, flag.Shorthand)
	require.Equal(t, flagUsage, flag.Usage)

	require.Empty(t, flag.Value.String())

	flagAnnotations := flag.Annotations
	require.Nil(t, flagAnnotations)
}
