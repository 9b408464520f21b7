/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rdf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTerms(t *testing.T) {
	t.Run("Kinds", func(t *testing.T) {
		require.Equal(t, TermIRI, IRI{Value: "https://example.org/a"}.Kind())
		require.Equal(t, TermBlankNode, BlankNode{ID: "b0"}.Kind())
		require.Equal(t, TermLiteral, Literal{Value: "v"}.Kind())
	})

	t.Run("String forms", func(t *testing.T) {
		require.Equal(t, "https://example.org/a", IRI{Value: "https://example.org/a"}.String())
		require.Equal(t, "_:b0", BlankNode{ID: "b0"}.String())
		require.Equal(t, `"v"`, Literal{Value: "v"}.String())
		require.Equal(t, `"v"@en`, Literal{Value: "v", Language: "en"}.String())
		require.Equal(t, `"1"^^<`+XSDInteger+`>`, Literal{Value: "1", Datatype: XSDInteger}.String())
	})
}

func TestGraph(t *testing.T) {
	s := IRI{Value: "https://example.org/s"}
	p := IRI{Value: "https://example.org/p"}
	p2 := IRI{Value: "https://example.org/p2"}
	o := IRI{Value: "https://example.org/o"}

	q1 := Quad{Subject: s, Predicate: p, Object: o}
	q2 := Quad{Subject: s, Predicate: p2, Object: Literal{Value: "v"}}
	q3 := Quad{Subject: s, Predicate: p, Object: o, Graph: "https://example.org/g"}

	t.Run("Duplicates collapse", func(t *testing.T) {
		g := NewGraph(q1, q2, q1, q1)

		require.Equal(t, 2, g.Size())
		require.Equal(t, []Quad{q1, q2}, g.Quads())
	})

	t.Run("Has", func(t *testing.T) {
		g := NewGraph(q1)

		require.True(t, g.Has(q1))
		require.False(t, g.Has(q2))
	})

	t.Run("Match patterns", func(t *testing.T) {
		g := NewGraph(q1, q2, q3)

		require.Len(t, g.Match(nil, IRI{}, nil), 2)
		require.Len(t, g.Match(s, p, nil), 1)
		require.Len(t, g.Match(s, p, o), 1)
		require.Empty(t, g.Match(o, IRI{}, nil))
		require.Len(t, g.MatchGraph("https://example.org/g", nil, IRI{}, nil), 1)
	})

	t.Run("Graph names are sorted and exclude the default graph", func(t *testing.T) {
		g := NewGraph(
			q1,
			Quad{Subject: s, Predicate: p, Object: o, Graph: "_:b1"},
			Quad{Subject: s, Predicate: p, Object: o, Graph: "_:b0"},
		)

		require.Equal(t, []string{"_:b0", "_:b1"}, g.GraphNames())
	})
}
