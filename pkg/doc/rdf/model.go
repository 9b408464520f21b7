/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rdf

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Well-known IRIs used across statement processing.
const (
	// RDFType is the rdf:type predicate IRI.
	RDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	// XSDString is the xsd:string datatype IRI.
	XSDString = "http://www.w3.org/2001/XMLSchema#string"

	// XSDBoolean is the xsd:boolean datatype IRI.
	XSDBoolean = "http://www.w3.org/2001/XMLSchema#boolean"

	// XSDInteger is the xsd:integer datatype IRI.
	XSDInteger = "http://www.w3.org/2001/XMLSchema#integer"

	// XSDInt is the xsd:int datatype IRI.
	XSDInt = "http://www.w3.org/2001/XMLSchema#int"

	// XSDLong is the xsd:long datatype IRI.
	XSDLong = "http://www.w3.org/2001/XMLSchema#long"

	// XSDDouble is the xsd:double datatype IRI.
	XSDDouble = "http://www.w3.org/2001/XMLSchema#double"

	// XSDFloat is the xsd:float datatype IRI.
	XSDFloat = "http://www.w3.org/2001/XMLSchema#float"

	// XSDDecimal is the xsd:decimal datatype IRI.
	XSDDecimal = "http://www.w3.org/2001/XMLSchema#decimal"

	// XSDDateTime is the xsd:dateTime datatype IRI.
	XSDDateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
)

// TermKind identifies the kind of an RDF term.
type TermKind uint8

const (
	// TermIRI represents an IRI term.
	TermIRI TermKind = iota
	// TermBlankNode represents a blank node term.
	TermBlankNode
	// TermLiteral represents a literal term.
	TermLiteral
)

// Term is a value that can appear in a statement. The set of kinds is closed:
// IRI, BlankNode and Literal are the only implementations.
type Term interface {
	Kind() TermKind
	String() string
}

// IRI is an Internationalized Resource Identifier term.
type IRI struct {
	// Value is the IRI string value.
	Value string
}

// Kind returns TermIRI.
func (i IRI) Kind() TermKind { return TermIRI }

// String returns the IRI value.
func (i IRI) String() string { return i.Value }

// BlankNode is an anonymous node with a parse-scoped identifier.
type BlankNode struct {
	// ID is the blank node identifier without the "_:" prefix.
	ID string
}

// Kind returns TermBlankNode.
func (b BlankNode) Kind() TermKind { return TermBlankNode }

// String returns the blank node identifier prefixed with "_:".
func (b BlankNode) String() string { return "_:" + b.ID }

// Literal is a typed scalar value term.
type Literal struct {
	// Value is the lexical form of the literal.
	Value string
	// Datatype is the datatype IRI, if any.
	Datatype string
	// Language is the language tag, if any.
	Language string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns an N-Quads-style representation of the literal.
func (l Literal) String() string {
	if l.Language != "" {
		return fmt.Sprintf("%q@%s", l.Value, l.Language)
	}

	if l.Datatype != "" && l.Datatype != XSDString {
		return fmt.Sprintf("%q^^<%s>", l.Value, l.Datatype)
	}

	return fmt.Sprintf("%q", l.Value)
}

// DefaultGraph is the label of the default graph.
const DefaultGraph = ""

// Quad is a single subject-predicate-object statement scoped to a graph.
// An empty Graph label names the default graph; any other value is the label
// of a named sub-graph (an IRI or a "_:"-prefixed blank node label).
type Quad struct {
	Subject   Term
	Predicate IRI
	Object    Term
	Graph     string
}

// String returns an N-Quads-style representation of the quad.
func (q Quad) String() string {
	if q.Graph == DefaultGraph {
		return fmt.Sprintf("%s <%s> %s .", q.Subject, q.Predicate.Value, q.Object)
	}

	return fmt.Sprintf("%s <%s> %s %s .", q.Subject, q.Predicate.Value, q.Object, q.Graph)
}

// Graph is a set of statements. It is sealed at construction: there is no
// mutation API, and all accessors return copies.
type Graph struct {
	quads []Quad
	index map[Quad]struct{}
}

// NewGraph builds a graph from the given quads. Duplicate quads collapse;
// the first occurrence keeps its position.
func NewGraph(quads ...Quad) *Graph {
	g := &Graph{index: make(map[Quad]struct{}, len(quads))}

	for _, q := range quads {
		if _, ok := g.index[q]; ok {
			continue
		}

		g.index[q] = struct{}{}
		g.quads = append(g.quads, q)
	}

	return g
}

// Size returns the number of distinct statements in the graph.
func (g *Graph) Size() int {
	return len(g.quads)
}

// Has reports whether the graph contains the given statement.
func (g *Graph) Has(q Quad) bool {
	_, ok := g.index[q]

	return ok
}

// Quads returns all statements in insertion order.
func (g *Graph) Quads() []Quad {
	quads := make([]Quad, len(g.quads))
	copy(quads, g.quads)

	return quads
}

// Match returns the default-graph statements matching the given pattern.
// A nil subject or object matches any term; a zero-value predicate matches
// any predicate.
func (g *Graph) Match(subject Term, predicate IRI, object Term) []Quad {
	return g.MatchGraph(DefaultGraph, subject, predicate, object)
}

// MatchGraph returns the statements in the graph with the given label
// matching the pattern, in insertion order.
func (g *Graph) MatchGraph(label string, subject Term, predicate IRI, object Term) []Quad {
	var matched []Quad

	for _, q := range g.quads {
		if q.Graph != label {
			continue
		}

		if subject != nil && q.Subject != subject {
			continue
		}

		if predicate.Value != "" && q.Predicate != predicate {
			continue
		}

		if object != nil && q.Object != object {
			continue
		}

		matched = append(matched, q)
	}

	return matched
}

// GraphNames returns the sorted labels of all named sub-graphs. The default
// graph is not included.
func (g *Graph) GraphNames() []string {
	seen := make(map[string]struct{})

	var names []string

	for _, q := range g.quads {
		if q.Graph == DefaultGraph {
			continue
		}

		if _, ok := seen[q.Graph]; ok {
			continue
		}

		seen[q.Graph] = struct{}{}
		names = append(names, q.Graph)
	}

	slices.Sort(names)

	return names
}
