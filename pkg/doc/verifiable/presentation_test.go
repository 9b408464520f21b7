/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

func TestParsePresentation(t *testing.T) {
	loader := testDocumentLoader(t)

	t.Run("Parse valid presentation", func(t *testing.T) {
		vp, err := ParsePresentation([]byte(validPresentation), WithDocumentLoader(loader))
		require.NoError(t, err)

		require.Equal(t, "urn:uuid:3978344f-8596-4c3a-a978-8fcaba3903c5", vp.ID())
		require.Contains(t, vp.Types(), "VerifiablePresentation")
		require.True(t, IsPresentation(vp.Graph(), vp.Root()))

		holder, err := vp.Holder()
		require.NoError(t, err)
		require.Equal(t, "https://example.edu/holder/1", holder)

		ids, err := vp.CredentialIDs()
		require.NoError(t, err)
		require.Equal(t, []string{"http://example.edu/credentials/1872"}, ids)
	})

	t.Run("Linked credential is graph-backed", func(t *testing.T) {
		vp, err := ParsePresentation([]byte(validPresentation), WithDocumentLoader(loader))
		require.NoError(t, err)

		vc, err := vp.Credential("http://example.edu/credentials/1872")
		require.NoError(t, err)
		require.True(t, IsCredential(vp.Graph(), vc.Root()))

		issuer, err := vc.IssuerID()
		require.NoError(t, err)
		require.Equal(t, "https://example.edu/issuers/565049", issuer)

		_, err = vp.Credential("http://example.edu/credentials/none")
		require.Error(t, err)
		require.Contains(t, err.Error(), "links no credential")
	})

	t.Run("Presentation without credentials is valid", func(t *testing.T) {
		data := modifyDocument(t, validPresentation, func(m map[string]interface{}) {
			delete(m, "verifiableCredential")
		})

		vp, err := ParsePresentation(data, WithDocumentLoader(loader))
		require.NoError(t, err)
		require.True(t, IsPresentation(vp.Graph(), vp.Root()))
	})

	t.Run("Non-URL holder fails schema validation", func(t *testing.T) {
		data := modifyDocument(t, validPresentation, func(m map[string]interface{}) {
			m["holder"] = "not a valid url"
		})

		_, err := ParsePresentation(data, WithDocumentLoader(loader))
		require.Error(t, err)
		require.Contains(t, err.Error(), "verifiable presentation is not valid")
	})

	t.Run("Non-URL holder leaves no statement in the graph", func(t *testing.T) {
		data := modifyDocument(t, validPresentation, func(m map[string]interface{}) {
			m["holder"] = "not a valid url"
		})

		vp, err := ParsePresentation(data, WithDocumentLoader(loader), WithDisabledJSONSchemaValidation())
		require.NoError(t, err)
		require.Empty(t, vp.Match(vp.Root(), rdf.IRI{Value: holderIRI}, nil))

		holder, err := vp.Holder()
		require.NoError(t, err)
		require.Empty(t, holder)
	})

	t.Run("Invalid linked credential fails the whole presentation", func(t *testing.T) {
		data := modifyDocument(t, validPresentation, func(m map[string]interface{}) {
			vc := m["verifiableCredential"].([]interface{})[0].(map[string]interface{})
			delete(vc, "proof")
		})

		_, err := ParsePresentation(data, WithDocumentLoader(loader), WithDisabledJSONSchemaValidation())
		require.Error(t, err)
		require.Contains(t, err.Error(), "linked credential")
	})

	t.Run("Multiple holder statements are invalid", func(t *testing.T) {
		vp, err := ParsePresentation([]byte(validPresentation), WithDocumentLoader(loader))
		require.NoError(t, err)

		extra := rdf.Quad{
			Subject:   vp.Root(),
			Predicate: rdf.IRI{Value: holderIRI},
			Object:    rdf.IRI{Value: "https://example.edu/holder/2"},
		}

		graph := rdf.NewGraph(append(vp.Graph().Quads(), extra)...)
		require.False(t, IsPresentation(graph, vp.Root()))
	})
}

func TestPresentationReconstruct(t *testing.T) {
	loader := testDocumentLoader(t)

	vp, err := ParsePresentation([]byte(validPresentation), WithDocumentLoader(loader))
	require.NoError(t, err)

	reconstructed, err := vp.Reconstruct()
	require.NoError(t, err)

	var source map[string]interface{}

	require.NoError(t, json.Unmarshal([]byte(validPresentation), &source))
	require.Equal(t, source["@context"], reconstructed["@context"])

	require.Equal(t, "urn:uuid:3978344f-8596-4c3a-a978-8fcaba3903c5", reconstructed["id"])
	require.Equal(t, "https://example.edu/holder/1", reconstructed["holder"])

	credentials, ok := reconstructed["verifiableCredential"].([]interface{})
	require.True(t, ok)
	require.Len(t, credentials, 1)

	vc, ok := credentials[0].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "http://example.edu/credentials/1872", vc["id"])
	require.Equal(t, "https://example.edu/issuers/565049", vc["issuer"])
}

func TestPresentationReconstructRoundTrip(t *testing.T) {
	loader := testDocumentLoader(t)

	vp, err := ParsePresentation([]byte(validPresentation), WithDocumentLoader(loader))
	require.NoError(t, err)

	reconstructed, err := vp.Reconstruct()
	require.NoError(t, err)

	data, err := json.Marshal(reconstructed)
	require.NoError(t, err)

	reparsed, err := ParsePresentation(data, WithDocumentLoader(loader))
	require.NoError(t, err)
	require.Equal(t, vp.ID(), reparsed.ID())

	ids, err := reparsed.CredentialIDs()
	require.NoError(t, err)
	require.Equal(t, []string{"http://example.edu/credentials/1872"}, ids)
}
