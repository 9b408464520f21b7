/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsonld

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bluele/gcache"
	"github.com/piprate/json-gold/ld"

	"github.com/credgraph/credgraph-go/pkg/common/log"
)

// ErrInvalidContext is returned when a context document cannot be parsed into term definitions.
var ErrInvalidContext = errors.New("invalid context document")

var logger = log.New("credgraph/doc/jsonld")

// ContextResolver resolves JSON-LD context references into normalized contexts.
//
// Context documents referenced by URL are fetched through the underlying document loader,
// so the loader's allow-list applies: a URL that is neither preloaded nor fetchable
// fails with ErrContextNotFound.
//
// Resolution results are memoized for the lifetime of the resolver. The cache key is
// a canonical serialization of the reference list plus resolution options, so two
// deep-equal inputs share a single NormalizedContext instance.
type ContextResolver struct {
	loader ld.DocumentLoader
	cache  gcache.Cache
}

// NewContextResolver returns a new ContextResolver instance backed by the given document loader.
func NewContextResolver(loader ld.DocumentLoader) *ContextResolver {
	return &ContextResolver{
		loader: loader,
		cache:  gcache.New(0).Build(),
	}
}

// Resolve merges context references (URLs, inline mappings or nested arrays of those)
// into a single NormalizedContext. Later references override earlier ones for the same term.
func (r *ContextResolver) Resolve(contexts interface{}, opts ...ResolveOpt) (*NormalizedContext, error) {
	options := &resolveOpts{}

	for i := range opts {
		opts[i](options)
	}

	refs := flattenContextRefs(contexts)

	key, err := memoKey(refs, options.base)
	if err != nil {
		return nil, fmt.Errorf("marshal context refs: %w", err)
	}

	if cached, err := r.cache.Get(key); err == nil {
		return cached.(*NormalizedContext), nil
	}

	nc := newNormalizedContext(options.base)

	for _, ref := range refs {
		if err := r.applyContextRef(nc, ref, make(map[string]bool)); err != nil {
			return nil, err
		}
	}

	nc.buildInverse()

	if err := r.cache.Set(key, nc); err != nil {
		logger.Warnf("Failed to cache normalized context: %s", err)
	}

	return nc, nil
}

func (r *ContextResolver) applyContextRef(nc *NormalizedContext, ref interface{}, resolving map[string]bool) error {
	switch v := ref.(type) {
	case string:
		if resolving[v] {
			return fmt.Errorf("%w: circular reference to %q", ErrInvalidContext, v)
		}

		resolving[v] = true
		defer delete(resolving, v)

		rd, err := r.loader.LoadDocument(v)
		if err != nil {
			return fmt.Errorf("resolve context %q: %w", v, err)
		}

		ctx, err := extractContextValue(rd.Document)
		if err != nil {
			return fmt.Errorf("parse context %q: %w", v, err)
		}

		for _, nested := range flattenContextRefs(ctx) {
			if err := r.applyContextRef(nc, nested, resolving); err != nil {
				return err
			}
		}

		return nil
	case map[string]interface{}:
		return nc.applyInlineContext(v)
	default:
		return fmt.Errorf("%w: unexpected context reference of type %T", ErrInvalidContext, ref)
	}
}

// ResolveOpt configures context resolution.
type ResolveOpt func(opts *resolveOpts)

type resolveOpts struct {
	base string
}

// WithBase sets the base IRI of the resolved context. An empty base is
// equivalent to not setting one at all.
func WithBase(base string) ResolveOpt {
	return func(opts *resolveOpts) {
		opts.base = base
	}
}

// TermDefinition is a single term mapping in a normalized context.
type TermDefinition struct {
	// Term is the short name used in compacted documents.
	Term string
	// IRI is the expanded identifier the term maps to (a keyword for aliases like "id").
	IRI string
	// Type is the expected value type: "@id" for IRI-valued terms or a datatype IRI.
	Type string
	// Context is the raw scoped context applied when the term's subtree is processed.
	Context interface{}
}

// NormalizedContext is a merged, resolved set of term definitions capable of
// compacting an IRI to a short term and expanding a term back to an IRI.
type NormalizedContext struct {
	base    string
	vocab   string
	terms   []TermDefinition
	index   map[string]int
	inverse map[string]string
}

func newNormalizedContext(base string) *NormalizedContext {
	return &NormalizedContext{
		base:  base,
		index: make(map[string]int),
	}
}

// Base returns the base IRI of the context.
func (nc *NormalizedContext) Base() string {
	return nc.base
}

// Vocab returns the default vocabulary IRI of the context.
func (nc *NormalizedContext) Vocab() string {
	return nc.vocab
}

// Definitions returns all term definitions in the order they were defined.
func (nc *NormalizedContext) Definitions() []TermDefinition {
	defs := make([]TermDefinition, len(nc.terms))
	copy(defs, nc.terms)

	return defs
}

// Term returns the definition of the given term.
func (nc *NormalizedContext) Term(term string) (TermDefinition, bool) {
	return nc.lookup(term)
}

// Compact maps an IRI to the shortest form the context can express: a defined term,
// a vocabulary-relative name, a prefix form, or the IRI itself if nothing matches.
func (nc *NormalizedContext) Compact(iri string) string {
	if term, ok := nc.inverse[iri]; ok {
		return term
	}

	if nc.vocab != "" && strings.HasPrefix(iri, nc.vocab) && len(iri) > len(nc.vocab) {
		return iri[len(nc.vocab):]
	}

	var (
		curie   string
		longest int
	)

	for _, def := range nc.terms {
		if def.IRI == "" || strings.HasPrefix(def.IRI, "@") {
			continue
		}

		if len(def.IRI) > longest && len(def.IRI) < len(iri) && strings.HasPrefix(iri, def.IRI) {
			curie = def.Term + ":" + iri[len(def.IRI):]
			longest = len(def.IRI)
		}
	}

	if curie != "" {
		return curie
	}

	return iri
}

// Expand maps a term (or a prefix form) to its IRI. It returns an empty string
// when the context defines no mapping for the term.
func (nc *NormalizedContext) Expand(term string) string {
	if def, ok := nc.lookup(term); ok {
		return def.IRI
	}

	if idx := strings.Index(term, ":"); idx > 0 {
		prefix, suffix := term[:idx], term[idx+1:]

		if !strings.HasPrefix(suffix, "//") {
			if def, ok := nc.lookup(prefix); ok && def.IRI != "" {
				return def.IRI + suffix
			}
		}

		return term // an IRI already
	}

	if nc.vocab != "" {
		return nc.vocab + term
	}

	return ""
}

// Scoped returns the context extended with the scoped sub-context of the
// term the given IRI compacts to. When the IRI maps to no term, or the term
// carries no scoped context, the receiver itself is returned. Only inline
// scoped contexts participate; scoped context references by URL are ignored.
func (nc *NormalizedContext) Scoped(iri string) *NormalizedContext {
	term, ok := nc.inverse[iri]
	if !ok {
		return nc
	}

	def, ok := nc.lookup(term)
	if !ok || def.Context == nil {
		return nc
	}

	scoped := nc.clone()

	for _, nested := range flattenContextRefs(def.Context) {
		m, ok := nested.(map[string]interface{})
		if !ok {
			continue
		}

		if err := scoped.applyInlineContext(m); err != nil {
			logger.Warnf("Failed to apply scoped context of term %q: %s", term, err)

			return nc
		}
	}

	scoped.buildInverse()

	return scoped
}

func (nc *NormalizedContext) clone() *NormalizedContext {
	c := &NormalizedContext{
		base:  nc.base,
		vocab: nc.vocab,
		terms: make([]TermDefinition, len(nc.terms)),
		index: make(map[string]int, len(nc.index)),
	}

	copy(c.terms, nc.terms)

	for term, i := range nc.index {
		c.index[term] = i
	}

	return c
}

func (nc *NormalizedContext) applyInlineContext(m map[string]interface{}) error {
	if v, ok := m["@vocab"]; ok {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: @vocab is not a string", ErrInvalidContext)
		}

		nc.vocab = s
	}

	if v, ok := m["@base"]; ok {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: @base is not a string", ErrInvalidContext)
		}

		nc.base = s
	}

	terms := make([]string, 0, len(m))

	for term := range m {
		if strings.HasPrefix(term, "@") {
			continue
		}

		terms = append(terms, term)
	}

	sort.Strings(terms)

	for _, term := range terms {
		if m[term] == nil {
			nc.remove(term)

			continue
		}

		def, err := nc.parseTermDefinition(term, m[term], m)
		if err != nil {
			return err
		}

		nc.define(def)
	}

	return nil
}

func (nc *NormalizedContext) parseTermDefinition(term string, raw interface{},
	local map[string]interface{}) (TermDefinition, error) {
	defining := map[string]bool{term: true}

	switch v := raw.(type) {
	case string:
		return TermDefinition{Term: term, IRI: nc.expandIRI(v, local, defining)}, nil
	case map[string]interface{}:
		def := TermDefinition{Term: term}

		if id, ok := v["@id"]; ok {
			s, ok := id.(string)
			if !ok {
				return TermDefinition{}, fmt.Errorf("%w: term %q has a non-string @id", ErrInvalidContext, term)
			}

			def.IRI = nc.expandIRI(s, local, defining)
		} else if nc.vocab != "" {
			def.IRI = nc.vocab + term
		}

		if t, ok := v["@type"].(string); ok {
			if strings.HasPrefix(t, "@") {
				def.Type = t
			} else {
				def.Type = nc.expandIRI(t, local, defining)
			}
		}

		if sc, ok := v["@context"]; ok {
			def.Context = sc
		}

		return def, nil
	default:
		return TermDefinition{}, fmt.Errorf("%w: unexpected definition of term %q", ErrInvalidContext, term)
	}
}

// expandIRI resolves a possibly-prefixed value against terms defined so far and
// terms from the same context object (local), guarding against definition cycles.
func (nc *NormalizedContext) expandIRI(value string, local map[string]interface{}, defining map[string]bool) string {
	if value == "" || strings.HasPrefix(value, "@") {
		return value
	}

	if idx := strings.Index(value, ":"); idx > 0 {
		prefix, suffix := value[:idx], value[idx+1:]

		if strings.HasPrefix(suffix, "//") {
			return value
		}

		if prefixIRI := nc.resolvePrefix(prefix, local, defining); prefixIRI != "" {
			return prefixIRI + suffix
		}

		return value
	}

	if nc.vocab != "" {
		return nc.vocab + value
	}

	return value
}

func (nc *NormalizedContext) resolvePrefix(prefix string, local map[string]interface{}, defining map[string]bool) string {
	if def, ok := nc.lookup(prefix); ok && !strings.HasPrefix(def.IRI, "@") {
		return def.IRI
	}

	raw, ok := local[prefix]
	if !ok || defining[prefix] {
		return ""
	}

	defining[prefix] = true
	defer delete(defining, prefix)

	switch v := raw.(type) {
	case string:
		return nc.expandIRI(v, local, defining)
	case map[string]interface{}:
		if id, ok := v["@id"].(string); ok {
			return nc.expandIRI(id, local, defining)
		}
	}

	return ""
}

func (nc *NormalizedContext) define(def TermDefinition) {
	if i, ok := nc.index[def.Term]; ok {
		nc.terms[i] = def

		return
	}

	nc.index[def.Term] = len(nc.terms)
	nc.terms = append(nc.terms, def)
}

func (nc *NormalizedContext) remove(term string) {
	i, ok := nc.index[term]
	if !ok {
		return
	}

	nc.terms = append(nc.terms[:i], nc.terms[i+1:]...)

	delete(nc.index, term)

	for t, j := range nc.index {
		if j > i {
			nc.index[t] = j - 1
		}
	}
}

func (nc *NormalizedContext) lookup(term string) (TermDefinition, bool) {
	if i, ok := nc.index[term]; ok {
		return nc.terms[i], true
	}

	return TermDefinition{}, false
}

// buildInverse indexes term definitions by IRI. The first term defined for an IRI wins.
func (nc *NormalizedContext) buildInverse() {
	nc.inverse = make(map[string]string, len(nc.terms))

	for _, def := range nc.terms {
		if def.IRI == "" || strings.HasPrefix(def.IRI, "@") {
			continue
		}

		if _, ok := nc.inverse[def.IRI]; !ok {
			nc.inverse[def.IRI] = def.Term
		}
	}
}

func extractContextValue(document interface{}) (interface{}, error) {
	m, ok := document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: document is not a JSON object", ErrInvalidContext)
	}

	ctx, ok := m["@context"]
	if !ok {
		return nil, fmt.Errorf("%w: missing @context", ErrInvalidContext)
	}

	return ctx, nil
}

func flattenContextRefs(contexts interface{}) []interface{} {
	switch v := contexts.(type) {
	case nil:
		return nil
	case []interface{}:
		var refs []interface{}

		for _, item := range v {
			refs = append(refs, flattenContextRefs(item)...)
		}

		return refs
	default:
		return []interface{}{v}
	}
}

// memoKey builds a canonical cache key for the reference list and base IRI.
// JSON object keys are serialized in sorted order, so deep-equal inputs
// produce identical keys regardless of map iteration order.
func memoKey(refs []interface{}, base string) (string, error) {
	b, err := json.Marshal(refs)
	if err != nil {
		return "", err
	}

	return base + "|" + string(b), nil
}
