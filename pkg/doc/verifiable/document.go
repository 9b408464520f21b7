/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"encoding/json"

	"github.com/credgraph/credgraph-go/pkg/doc/jsonld"
	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

// GraphDocument is an immutable view over a parsed statement graph that also
// exposes the original document's top-level fields. The graph traversal
// surface is read-only: Add and Delete always fail with ErrImmutable.
type GraphDocument struct {
	id         string
	types      []string
	graph      *rdf.Graph
	context    *jsonld.NormalizedContext
	rawContext interface{}
}

// NewGraphDocument wraps a parsed graph with its root id, compacted type
// names, the resolved context of the source document and the document's own
// raw @context value.
func NewGraphDocument(id string, types []string, graph *rdf.Graph,
	context *jsonld.NormalizedContext, rawContext interface{}) *GraphDocument {
	t := make([]string, len(types))
	copy(t, types)

	return &GraphDocument{id: id, types: t, graph: graph, context: context, rawContext: rawContext}
}

// ID returns the root subject id of the document.
func (d *GraphDocument) ID() string {
	return d.id
}

// Types returns the compacted type names of the root subject.
func (d *GraphDocument) Types() []string {
	types := make([]string, len(d.types))
	copy(types, d.types)

	return types
}

// Graph returns the underlying statement graph.
func (d *GraphDocument) Graph() *rdf.Graph {
	return d.graph
}

// Context returns the resolved context of the source document.
func (d *GraphDocument) Context() *jsonld.NormalizedContext {
	return d.context
}

// RawContext returns the @context value of the source document as it was
// unmarshaled: a URL string, an inline mapping, or an array of those. It is
// nil for documents constructed without one.
func (d *GraphDocument) RawContext() interface{} {
	return d.rawContext
}

// Size returns the number of statements in the underlying graph.
func (d *GraphDocument) Size() int {
	return d.graph.Size()
}

// Has reports whether the underlying graph contains the given statement.
func (d *GraphDocument) Has(q rdf.Quad) bool {
	return d.graph.Has(q)
}

// Match returns default-graph statements matching the pattern.
func (d *GraphDocument) Match(subject rdf.Term, predicate rdf.IRI, object rdf.Term) []rdf.Quad {
	return d.graph.Match(subject, predicate, object)
}

// MatchGraph returns statements of the labeled sub-graph matching the pattern.
func (d *GraphDocument) MatchGraph(label string, subject rdf.Term, predicate rdf.IRI, object rdf.Term) []rdf.Quad {
	return d.graph.MatchGraph(label, subject, predicate, object)
}

// GraphNames returns the labels of all named sub-graphs.
func (d *GraphDocument) GraphNames() []string {
	return d.graph.GraphNames()
}

// Add always fails: a graph-backed document cannot be modified.
func (d *GraphDocument) Add(rdf.Quad) error {
	return ErrImmutable
}

// Delete always fails: a graph-backed document cannot be modified.
func (d *GraphDocument) Delete(rdf.Quad) error {
	return ErrImmutable
}

// MarshalJSON serializes the declared plain fields of the document. The
// graph traversal surface is not part of the serialized form.
func (d *GraphDocument) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		ID    string   `json:"id,omitempty"`
		Types []string `json:"type,omitempty"`
	}{ID: d.id, Types: d.types})
}
