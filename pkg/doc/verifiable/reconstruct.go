/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"fmt"
	"strconv"

	"github.com/credgraph/credgraph-go/pkg/doc/jsonld"
	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

// Reconstruct rebuilds a nested object from the default-graph statements
// rooted at the given subject. Predicate IRIs are compacted to terms via the
// context, literal objects are converted to native values by datatype, and
// blank-node objects recurse into their own outgoing statements.
func Reconstruct(g *rdf.Graph, root rdf.Term, context *jsonld.NormalizedContext) (map[string]interface{}, error) {
	return ReconstructGraph(g, rdf.DefaultGraph, root, context)
}

// ReconstructGraph is Reconstruct over the sub-graph with the given label.
// It is used to materialize proof nodes, which live in a named proof graph.
func ReconstructGraph(g *rdf.Graph, label string, root rdf.Term,
	context *jsonld.NormalizedContext) (map[string]interface{}, error) {
	return reconstructNode(g, label, root, context, make(map[string]bool))
}

// reconstructNode walks the outgoing statements of subject. The visited set
// holds the blank node ids already expanded anywhere in this reconstruction:
// meeting one of them again (a cycle or a diamond) emits an empty placeholder
// object instead of recursing, so reconstruction always terminates.
func reconstructNode(g *rdf.Graph, label string, subject rdf.Term,
	context *jsonld.NormalizedContext, visited map[string]bool) (map[string]interface{}, error) {
	if b, ok := subject.(rdf.BlankNode); ok {
		visited[b.ID] = true
	}

	var (
		order  []string
		groups = make(map[string][]rdf.Term)
	)

	for _, q := range g.MatchGraph(label, subject, rdf.IRI{}, nil) {
		p := q.Predicate.Value
		if _, ok := groups[p]; !ok {
			order = append(order, p)
		}

		groups[p] = append(groups[p], q.Object)
	}

	result := make(map[string]interface{}, len(order))

	for _, predicate := range order {
		values := make([]interface{}, 0, len(groups[predicate]))

		// values of a term with a scoped sub-context compact under it
		valueContext := context
		if context != nil {
			valueContext = context.Scoped(predicate)
		}

		for _, object := range groups[predicate] {
			value, err := reconstructValue(g, label, object, valueContext, visited)
			if err != nil {
				return nil, fmt.Errorf("value of <%s>: %w", predicate, err)
			}

			values = append(values, value)
		}

		key := compactPredicate(predicate, context)

		if len(values) == 1 {
			// a lone empty placeholder carries no information
			if m, ok := values[0].(map[string]interface{}); ok && len(m) == 0 {
				continue
			}

			result[key] = values[0]

			continue
		}

		result[key] = values
	}

	return result, nil
}

func reconstructValue(g *rdf.Graph, label string, object rdf.Term,
	context *jsonld.NormalizedContext, visited map[string]bool) (interface{}, error) {
	switch o := object.(type) {
	case rdf.IRI:
		return compactIRI(o.Value, context), nil
	case rdf.Literal:
		return convertLiteral(o), nil
	case rdf.BlankNode:
		if visited[o.ID] {
			return map[string]interface{}{}, nil
		}

		return reconstructNode(g, label, o, context, visited)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedTermKind, object)
	}
}

func compactPredicate(predicate string, context *jsonld.NormalizedContext) string {
	if predicate == rdf.RDFType {
		return "type"
	}

	return compactIRI(predicate, context)
}

func compactIRI(iri string, context *jsonld.NormalizedContext) string {
	if context == nil {
		return iri
	}

	return context.Compact(iri)
}

// convertLiteral maps a literal to a native value by its declared datatype.
// A value that does not parse under its datatype, or carries an unrecognized
// datatype, stays a string.
func convertLiteral(l rdf.Literal) interface{} {
	switch l.Datatype {
	case rdf.XSDBoolean:
		if b, err := strconv.ParseBool(l.Value); err == nil {
			return b
		}
	case rdf.XSDInteger, rdf.XSDInt, rdf.XSDLong:
		if i, err := strconv.ParseInt(l.Value, 10, 64); err == nil {
			return i
		}
	case rdf.XSDDouble, rdf.XSDFloat, rdf.XSDDecimal:
		if f, err := strconv.ParseFloat(l.Value, 64); err == nil {
			return f
		}
	}

	return l.Value
}
