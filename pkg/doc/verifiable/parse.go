/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/piprate/json-gold/ld"

	"github.com/credgraph/credgraph-go/pkg/doc/jsonld"
	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

// ParseOpt configures credential and presentation parsing.
type ParseOpt func(opts *parseOpts)

type parseOpts struct {
	baseIRI                 string
	externalContexts        []interface{}
	documentLoader          ld.DocumentLoader
	remoteContextFetch      bool
	disableSchemaValidation bool
}

// WithBaseIRI sets the base IRI against which relative IRIs in the parsed
// document are resolved.
func WithBaseIRI(base string) ParseOpt {
	return func(opts *parseOpts) {
		opts.baseIRI = base
	}
}

// WithExternalContext appends context references to the document's own
// @context before graph conversion.
func WithExternalContext(contexts ...interface{}) ParseOpt {
	return func(opts *parseOpts) {
		opts.externalContexts = contexts
	}
}

// WithDocumentLoader sets the loader used to resolve JSON-LD context
// documents referenced by the parsed document.
func WithDocumentLoader(loader ld.DocumentLoader) ParseOpt {
	return func(opts *parseOpts) {
		opts.documentLoader = loader
	}
}

// WithRemoteContextFetch allows contexts unknown to the document loader to
// be fetched from their remote URLs for the duration of this parse.
func WithRemoteContextFetch() ParseOpt {
	return func(opts *parseOpts) {
		opts.remoteContextFetch = true
	}
}

// WithDisabledJSONSchemaValidation skips the JSON Schema pre-validation of
// the document serialization.
func WithDisabledJSONSchemaValidation() ParseOpt {
	return func(opts *parseOpts) {
		opts.disableSchemaValidation = true
	}
}

func (o *parseOpts) loader() ld.DocumentLoader {
	if o.documentLoader == nil {
		return ld.NewDefaultDocumentLoader(http.DefaultClient)
	}

	if o.remoteContextFetch {
		return jsonld.NewRemoteFallbackLoader(o.documentLoader)
	}

	return o.documentLoader
}

func (o *parseOpts) graphParseOpts() []rdf.ParseOpt {
	parseOpts := []rdf.ParseOpt{rdf.WithBase(o.baseIRI)}

	if len(o.externalContexts) > 0 {
		parseOpts = append(parseOpts, rdf.WithExternalContext(o.externalContexts...))
	}

	if o.documentLoader != nil {
		parseOpts = append(parseOpts, rdf.WithDocumentLoader(o.documentLoader))
	}

	if o.remoteContextFetch {
		parseOpts = append(parseOpts, rdf.WithRemoteContextFetch())
	}

	return parseOpts
}

// Resolvers are shared per loader configuration so memoized contexts
// survive across parses.
// nolint:gochecknoglobals
var (
	resolversMu sync.Mutex
	resolvers   = make(map[resolverKey]*jsonld.ContextResolver)
)

type resolverKey struct {
	loader ld.DocumentLoader
	remote bool
}

func (o *parseOpts) resolver() *jsonld.ContextResolver {
	key := resolverKey{loader: o.documentLoader, remote: o.remoteContextFetch}

	resolversMu.Lock()
	defer resolversMu.Unlock()

	if r, ok := resolvers[key]; ok {
		return r
	}

	r := jsonld.NewContextResolver(o.loader())
	resolvers[key] = r

	return r
}

// parsedGraph is the outcome of the shared parsing pipeline.
type parsedGraph struct {
	graph      *rdf.Graph
	context    *jsonld.NormalizedContext
	rawContext interface{}
	root       rdf.Term
}

// parseLinkedDocument runs the shared part of credential and presentation
// parsing: graph conversion, context resolution and root subject location.
func parseLinkedDocument(data []byte, typeIRI string, options *parseOpts) (*parsedGraph, error) {
	graph, err := rdf.Parse(data, options.graphParseOpts()...)
	if err != nil {
		return nil, fmt.Errorf("parse document into graph: %w", err)
	}

	var doc map[string]interface{}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	contexts := appendRefs(doc["@context"], options.externalContexts)

	context, err := options.resolver().Resolve(contexts, jsonld.WithBase(options.baseIRI))
	if err != nil {
		return nil, fmt.Errorf("resolve document context: %w", err)
	}

	root, err := locateRoot(graph, typeIRI)
	if err != nil {
		return nil, err
	}

	logger.Debugf("parsed document rooted at %s into %d statements", root, graph.Size())

	return &parsedGraph{graph: graph, context: context, rawContext: doc["@context"], root: root}, nil
}

func appendRefs(context interface{}, extra []interface{}) []interface{} {
	var refs []interface{}

	switch c := context.(type) {
	case []interface{}:
		refs = append(refs, c...)
	case nil:
	default:
		refs = append(refs, c)
	}

	return append(refs, extra...)
}

// locateRoot finds the single subject declared with the given rdf:type in
// the default graph.
func locateRoot(graph *rdf.Graph, typeIRI string) (rdf.Term, error) {
	quads := graph.Match(nil, rdf.IRI{Value: rdf.RDFType}, rdf.IRI{Value: typeIRI})

	subjects := make(map[rdf.Term]struct{})

	var root rdf.Term

	for _, q := range quads {
		if _, ok := subjects[q.Subject]; !ok {
			subjects[q.Subject] = struct{}{}
			root = q.Subject
		}
	}

	if len(subjects) != 1 {
		return nil, fmt.Errorf("locate root subject typed <%s>: expected exactly one result, found %d",
			typeIRI, len(subjects))
	}

	return root, nil
}

// rootTypes returns the compacted type names of the root subject.
func rootTypes(graph *rdf.Graph, root rdf.Term, context *jsonld.NormalizedContext) []string {
	var types []string

	for _, q := range graph.Match(root, rdf.IRI{Value: rdf.RDFType}, nil) {
		if iri, ok := q.Object.(rdf.IRI); ok {
			types = append(types, compactIRI(iri.Value, context))
		}
	}

	return types
}
