/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rdf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
	"github.com/credgraph/credgraph-go/pkg/internal/ldtestutil"
)

//nolint:lll
const credentialDoc = `{
  "@context": [
    "https://www.w3.org/2018/credentials/v1",
    "https://w3id.org/security/suites/ed25519-2020/v1",
    {
      "name": "https://schema.org/name",
      "degree": "https://example.org/examples#degree",
      "BachelorDegree": "https://example.org/examples#BachelorDegree"
    }
  ],
  "id": "http://example.edu/credentials/1872",
  "type": "VerifiableCredential",
  "issuer": "https://example.edu/issuers/565049",
  "issuanceDate": "2010-01-01T19:23:24Z",
  "credentialSubject": {
    "id": "did:example:ebfeb1f712ebc6f1c276e12ec21",
    "degree": {
      "type": "BachelorDegree",
      "name": "Bachelor of Science and Arts"
    }
  },
  "proof": {
    "type": "Ed25519Signature2020",
    "created": "2020-01-01T19:23:24Z",
    "verificationMethod": "https://example.edu/issuers/565049#key-1",
    "proofPurpose": "assertionMethod",
    "proofValue": "z58DAdFfa9SkqZMVPxAQpic7ndSayn1PzZs6ZjWp1CktyGesjuTSwRdoWhAfGFCF5bppETSTojQCrfFPP2oumHKtz"
  }
}`

func TestParse(t *testing.T) {
	loader, err := ldtestutil.DocumentLoader()
	require.NoError(t, err)

	t.Run("Valid credential document", func(t *testing.T) {
		graph, err := rdf.Parse([]byte(credentialDoc), rdf.WithDocumentLoader(loader))
		require.NoError(t, err)
		require.Positive(t, graph.Size())

		root := rdf.IRI{Value: "http://example.edu/credentials/1872"}

		typeQuads := graph.Match(root, rdf.IRI{Value: rdf.RDFType}, nil)
		require.Len(t, typeQuads, 1)

		issuerQuads := graph.Match(root,
			rdf.IRI{Value: "https://www.w3.org/2018/credentials#issuer"}, nil)
		require.Len(t, issuerQuads, 1)
		require.Equal(t, rdf.IRI{Value: "https://example.edu/issuers/565049"}, issuerQuads[0].Object)

		dateQuads := graph.Match(root,
			rdf.IRI{Value: "https://www.w3.org/2018/credentials#issuanceDate"}, nil)
		require.Len(t, dateQuads, 1)

		date, ok := dateQuads[0].Object.(rdf.Literal)
		require.True(t, ok)
		require.Equal(t, rdf.XSDDateTime, date.Datatype)
		require.Equal(t, "2010-01-01T19:23:24Z", date.Value)
	})

	t.Run("Proof statements are isolated in a named graph", func(t *testing.T) {
		graph, err := rdf.Parse([]byte(credentialDoc), rdf.WithDocumentLoader(loader))
		require.NoError(t, err)

		names := graph.GraphNames()
		require.Len(t, names, 1)

		proofQuads := graph.MatchGraph(names[0], nil, rdf.IRI{}, nil)
		require.NotEmpty(t, proofQuads)

		valueQuads := graph.MatchGraph(names[0], nil,
			rdf.IRI{Value: "https://w3id.org/security#proofValue"}, nil)
		require.Len(t, valueQuads, 1)
		require.Equal(t, rdf.TermLiteral, valueQuads[0].Object.Kind())

		// nothing proof-related leaks into the default graph
		require.Empty(t, graph.Match(nil, rdf.IRI{Value: "https://w3id.org/security#proofValue"}, nil))
	})

	t.Run("Empty payload", func(t *testing.T) {
		_, err := rdf.Parse(nil, rdf.WithDocumentLoader(loader))
		require.Error(t, err)
		require.Contains(t, err.Error(), "no content to parse")

		_, err = rdf.Parse([]byte("{}"), rdf.WithDocumentLoader(loader))
		require.Error(t, err)
	})

	t.Run("Missing @context", func(t *testing.T) {
		_, err := rdf.Parse([]byte(`{"id": "https://example.org/a"}`), rdf.WithDocumentLoader(loader))
		require.Error(t, err)
		require.Contains(t, err.Error(), "@context")
	})

	t.Run("Malformed JSON names the cause", func(t *testing.T) {
		_, err := rdf.Parse([]byte(`{"@context": `), rdf.WithDocumentLoader(loader))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unmarshal JSON-LD document")
	})

	t.Run("Unknown context is rejected when remote fetch is disabled", func(t *testing.T) {
		doc := `{"@context": "https://example.org/unknown/v1", "id": "https://example.org/a"}`

		_, err := rdf.Parse([]byte(doc), rdf.WithDocumentLoader(loader))
		require.Error(t, err)
	})

	t.Run("Oversized payload is rejected before conversion", func(t *testing.T) {
		require.NoError(t, rdf.SetMaxPayloadSize(16))

		defer func() {
			require.NoError(t, rdf.SetMaxPayloadSize(rdf.DefaultMaxPayloadSize))
		}()

		_, err := rdf.Parse([]byte(credentialDoc), rdf.WithDocumentLoader(loader))
		require.Error(t, err)
		require.Contains(t, err.Error(), "not safe to parse")
	})

	t.Run("Blank node labels are stable within one parse", func(t *testing.T) {
		doc := `{
		  "@context": {"knows": {"@id": "https://example.org/vocab#knows"}, "name": "https://schema.org/name"},
		  "knows": {"name": "anonymous"}
		}`

		graph, err := rdf.Parse([]byte(doc), rdf.WithDocumentLoader(loader))
		require.NoError(t, err)

		knowsQuads := graph.Match(nil, rdf.IRI{Value: "https://example.org/vocab#knows"}, nil)
		require.Len(t, knowsQuads, 1)

		blank, ok := knowsQuads[0].Object.(rdf.BlankNode)
		require.True(t, ok)

		nameQuads := graph.Match(blank, rdf.IRI{Value: "https://schema.org/name"}, nil)
		require.Len(t, nameQuads, 1)
	})
}
