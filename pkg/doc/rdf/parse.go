/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rdf

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/credgraph/credgraph-go/pkg/doc/jsonld"
)

const defaultGraphName = "@default"

// Parse converts a JSON-LD payload into a graph of statements. The payload
// must be a JSON object carrying an @context key. Blank node labels are
// stable within a single call but carry no meaning across calls.
func Parse(payload []byte, opts ...ParseOpt) (*Graph, error) {
	if len(payload) == 0 {
		return nil, errors.New("no content to parse")
	}

	if max, enabled := MaxPayloadSize(); enabled && int64(len(payload)) > max {
		return nil, fmt.Errorf("body of %d bytes is not safe to parse: max payload size is %d bytes",
			len(payload), max)
	}

	var doc map[string]interface{}

	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal JSON-LD document: %w", err)
	}

	return ParseJSON(doc, opts...)
}

// ParseJSON converts an already-decoded JSON-LD document into a graph of
// statements.
func ParseJSON(doc map[string]interface{}, opts ...ParseOpt) (*Graph, error) {
	if len(doc) == 0 {
		return nil, errors.New("no content to parse")
	}

	if _, ok := doc["@context"]; !ok {
		return nil, errors.New("document has no @context")
	}

	options := &parseOpts{}

	for i := range opts {
		opts[i](options)
	}

	if len(options.externalContexts) > 0 {
		doc = copyDocument(doc)
		doc["@context"] = appendContexts(doc["@context"], options.externalContexts...)
	}

	ldOptions := ld.NewJsonLdOptions(options.base)
	ldOptions.ProcessingMode = ld.JsonLd_1_1
	ldOptions.ProduceGeneralizedRdf = true
	ldOptions.DocumentLoader = documentLoader(options)

	raw, err := ld.NewJsonLdProcessor().ToRDF(doc, ldOptions)
	if err != nil {
		return nil, fmt.Errorf("convert JSON-LD document to RDF: %w", err)
	}

	dataset, ok := raw.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("convert JSON-LD document to RDF: unexpected result of type %T", raw)
	}

	return graphFromDataset(dataset)
}

func documentLoader(options *parseOpts) ld.DocumentLoader {
	loader := options.documentLoader
	if loader == nil {
		loader = ld.NewDefaultDocumentLoader(http.DefaultClient)
	} else if options.remoteContextFetch {
		loader = jsonld.NewRemoteFallbackLoader(loader)
	}

	return loader
}

func copyDocument(doc map[string]interface{}) map[string]interface{} {
	c := make(map[string]interface{}, len(doc))

	for k, v := range doc {
		c[k] = v
	}

	return c
}

func appendContexts(context interface{}, extraContexts ...interface{}) []interface{} {
	var contexts []interface{}

	switch c := context.(type) {
	case []interface{}:
		contexts = append(contexts, c...)
	default:
		contexts = append(contexts, c)
	}

	contexts = append(contexts, extraContexts...)

	return contexts
}

func graphFromDataset(dataset *ld.RDFDataset) (*Graph, error) {
	var quads []Quad

	graphNames := make([]string, 0, len(dataset.Graphs))

	for name := range dataset.Graphs {
		graphNames = append(graphNames, name)
	}

	// sorted for stable statement order across parses of the same document
	sort.Strings(graphNames)

	for _, name := range graphNames {
		label := name
		if label == defaultGraphName {
			label = DefaultGraph
		}

		for _, q := range dataset.Graphs[name] {
			quad, err := quadFromLD(q, label)
			if err != nil {
				return nil, err
			}

			quads = append(quads, quad)
		}
	}

	return NewGraph(quads...), nil
}

func quadFromLD(q *ld.Quad, label string) (Quad, error) {
	subject, err := termFromNode(q.Subject)
	if err != nil {
		return Quad{}, fmt.Errorf("quad subject: %w", err)
	}

	predicate, err := termFromNode(q.Predicate)
	if err != nil {
		return Quad{}, fmt.Errorf("quad predicate: %w", err)
	}

	predicateIRI, ok := predicate.(IRI)
	if !ok {
		return Quad{}, fmt.Errorf("quad predicate %q is not an IRI", predicate)
	}

	object, err := termFromNode(q.Object)
	if err != nil {
		return Quad{}, fmt.Errorf("quad object: %w", err)
	}

	return Quad{Subject: subject, Predicate: predicateIRI, Object: object, Graph: label}, nil
}

func termFromNode(node ld.Node) (Term, error) {
	switch v := node.(type) {
	case *ld.IRI:
		return IRI{Value: v.Value}, nil
	case *ld.BlankNode:
		return BlankNode{ID: strings.TrimPrefix(v.Attribute, "_:")}, nil
	case *ld.Literal:
		return Literal{Value: v.Value, Datatype: v.Datatype, Language: v.Language}, nil
	default:
		return nil, fmt.Errorf("unexpected term of type %T", node)
	}
}

// ParseOpt configures a single parse call.
type ParseOpt func(opts *parseOpts)

type parseOpts struct {
	base               string
	externalContexts   []interface{}
	documentLoader     ld.DocumentLoader
	remoteContextFetch bool
}

// WithBase sets the base IRI against which relative IRIs in the document
// are resolved.
func WithBase(base string) ParseOpt {
	return func(opts *parseOpts) {
		opts.base = base
	}
}

// WithExternalContext appends context references (URLs or inline mappings)
// to the document's own @context before conversion.
func WithExternalContext(contexts ...interface{}) ParseOpt {
	return func(opts *parseOpts) {
		opts.externalContexts = contexts
	}
}

// WithDocumentLoader sets the loader used to resolve context documents
// referenced by the parsed document.
func WithDocumentLoader(loader ld.DocumentLoader) ParseOpt {
	return func(opts *parseOpts) {
		opts.documentLoader = loader
	}
}

// WithRemoteContextFetch allows contexts missing from the document loader to
// be fetched from their remote URLs for the duration of this call.
func WithRemoteContextFetch() ParseOpt {
	return func(opts *parseOpts) {
		opts.remoteContextFetch = true
	}
}
