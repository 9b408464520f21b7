/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsonld_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/credgraph/credgraph-go/pkg/doc/jsonld"
	"github.com/credgraph/credgraph-go/pkg/internal/ldtestutil"
)

const (
	credentialsContextURL = "https://www.w3.org/2018/credentials/v1"
	ed25519ContextURL     = "https://w3id.org/security/suites/ed25519-2020/v1"
)

func newResolver(t *testing.T) *jsonld.ContextResolver {
	t.Helper()

	loader, err := ldtestutil.DocumentLoader()
	require.NoError(t, err)

	return jsonld.NewContextResolver(loader)
}

func TestContextResolver_Resolve(t *testing.T) {
	t.Run("Resolve preloaded context by URL", func(t *testing.T) {
		resolver := newResolver(t)

		context, err := resolver.Resolve(credentialsContextURL)
		require.NoError(t, err)

		require.Equal(t, "https://www.w3.org/2018/credentials#VerifiableCredential",
			context.Expand("VerifiableCredential"))
		require.Equal(t, "VerifiableCredential",
			context.Compact("https://www.w3.org/2018/credentials#VerifiableCredential"))
	})

	t.Run("Inline mappings and arrays", func(t *testing.T) {
		resolver := newResolver(t)

		context, err := resolver.Resolve([]interface{}{
			credentialsContextURL,
			map[string]interface{}{
				"name": "https://schema.org/name",
				"ex":   "https://example.org/vocab#",
			},
		})
		require.NoError(t, err)

		require.Equal(t, "https://schema.org/name", context.Expand("name"))
		require.Equal(t, "name", context.Compact("https://schema.org/name"))
		require.Equal(t, "https://example.org/vocab#age", context.Expand("ex:age"))
		require.Equal(t, "ex:age", context.Compact("https://example.org/vocab#age"))
	})

	t.Run("Later context overrides earlier for the same term", func(t *testing.T) {
		resolver := newResolver(t)

		context, err := resolver.Resolve([]interface{}{
			map[string]interface{}{"name": "https://schema.org/name"},
			map[string]interface{}{"name": "https://example.org/vocab#name"},
		})
		require.NoError(t, err)

		require.Equal(t, "https://example.org/vocab#name", context.Expand("name"))
	})

	t.Run("Unknown context reference", func(t *testing.T) {
		resolver := newResolver(t)

		_, err := resolver.Resolve("https://example.org/unknown/v1")
		require.ErrorIs(t, err, jsonld.ErrContextNotFound)
	})

	t.Run("Unexpected reference type", func(t *testing.T) {
		resolver := newResolver(t)

		_, err := resolver.Resolve([]interface{}{42})
		require.ErrorIs(t, err, jsonld.ErrInvalidContext)
	})
}

func TestContextResolver_Memoization(t *testing.T) {
	t.Run("Deep-equal inputs share one normalized context", func(t *testing.T) {
		resolver := newResolver(t)

		first, err := resolver.Resolve([]interface{}{
			credentialsContextURL,
			map[string]interface{}{"name": "https://schema.org/name"},
		})
		require.NoError(t, err)

		second, err := resolver.Resolve([]interface{}{
			credentialsContextURL,
			map[string]interface{}{"name": "https://schema.org/name"},
		})
		require.NoError(t, err)

		require.Same(t, first, second)
	})

	t.Run("Empty base is equivalent to no base", func(t *testing.T) {
		resolver := newResolver(t)

		first, err := resolver.Resolve(credentialsContextURL)
		require.NoError(t, err)

		second, err := resolver.Resolve(credentialsContextURL, jsonld.WithBase(""))
		require.NoError(t, err)

		require.Same(t, first, second)
	})

	t.Run("Differing base IRIs resolve separately", func(t *testing.T) {
		resolver := newResolver(t)

		first, err := resolver.Resolve(credentialsContextURL, jsonld.WithBase("https://a.example.org/"))
		require.NoError(t, err)

		second, err := resolver.Resolve(credentialsContextURL, jsonld.WithBase("https://b.example.org/"))
		require.NoError(t, err)

		require.NotSame(t, first, second)
		require.Equal(t, "https://a.example.org/", first.Base())
		require.Equal(t, "https://b.example.org/", second.Base())
	})
}

func TestNormalizedContext_Scoped(t *testing.T) {
	resolver := newResolver(t)

	context, err := resolver.Resolve([]interface{}{credentialsContextURL, ed25519ContextURL})
	require.NoError(t, err)

	t.Run("Scoped context of a suite type defines its terms", func(t *testing.T) {
		scoped := context.Scoped("https://w3id.org/security#Ed25519Signature2020")

		require.Equal(t, "created", scoped.Compact("http://purl.org/dc/terms/created"))
		require.Equal(t, "proofPurpose", scoped.Compact("https://w3id.org/security#proofPurpose"))

		// the receiver itself stays untouched
		require.NotEqual(t, "created", context.Compact("http://purl.org/dc/terms/created"))
	})

	t.Run("IRI without a scoped context returns the receiver", func(t *testing.T) {
		require.Same(t, context, context.Scoped("https://example.org/vocab#nothing"))
	})
}
