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

func TestGraphDocumentImmutability(t *testing.T) {
	loader := testDocumentLoader(t)

	vc, err := ParseCredential([]byte(validCredential), WithDocumentLoader(loader))
	require.NoError(t, err)

	q := rdf.Quad{
		Subject:   vc.Root(),
		Predicate: rdf.IRI{Value: "https://example.org/vocab#extra"},
		Object:    rdf.Literal{Value: "value"},
	}

	require.ErrorIs(t, vc.Add(q), ErrImmutable)
	require.ErrorIs(t, vc.Delete(q), ErrImmutable)
	require.False(t, vc.Has(q))
}

func TestGraphDocumentMarshalJSON(t *testing.T) {
	loader := testDocumentLoader(t)

	vc, err := ParseCredential([]byte(validCredential), WithDocumentLoader(loader))
	require.NoError(t, err)

	b, err := json.Marshal(vc.GraphDocument)
	require.NoError(t, err)

	var m map[string]interface{}

	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, "http://example.edu/credentials/1872", m["id"])
	require.Contains(t, m, "type")

	// the traversal surface stays out of the serialized form
	require.NotContains(t, m, "graph")
	require.Len(t, m, 2)
}

func TestGraphDocumentTraversal(t *testing.T) {
	loader := testDocumentLoader(t)

	vc, err := ParseCredential([]byte(validCredential), WithDocumentLoader(loader))
	require.NoError(t, err)

	require.Positive(t, vc.Size())

	issuerQuads := vc.Match(vc.Root(), rdf.IRI{Value: issuerIRI}, nil)
	require.Len(t, issuerQuads, 1)
	require.True(t, vc.Has(issuerQuads[0]))

	names := vc.GraphNames()
	require.Len(t, names, 1)
	require.NotEmpty(t, vc.MatchGraph(names[0], nil, rdf.IRI{}, nil))
}
