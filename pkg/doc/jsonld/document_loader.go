/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsonld

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/piprate/json-gold/ld"

	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext"
	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext/embed"
	ldstore "github.com/credgraph/credgraph-go/pkg/store/ld"
	"github.com/credgraph/credgraph-go/spi/storage"
)

// ErrContextNotFound is returned when JSON-LD context document is not found in the underlying storage.
var ErrContextNotFound = errors.New("context document not found")

// provider contains dependencies for the JSON-LD document loader.
type provider interface {
	JSONLDContextStore() ldstore.ContextStore
}

// DocumentLoader is an implementation of ld.DocumentLoader backed by storage.
type DocumentLoader struct {
	store                ldstore.ContextStore
	remoteDocumentLoader ld.DocumentLoader
}

// NewDocumentLoader returns a new DocumentLoader instance.
//
// Embedded contexts (ldcontext/embed) are always preloaded into the underlying storage.
// Additional contexts can be set using WithExtraContexts() option.
//
// By default, missing contexts are not fetched from the remote URL. Use WithRemoteDocumentLoader() option
// to specify a custom loader that can resolve context documents from the network.
func NewDocumentLoader(ctx provider, opts ...DocumentLoaderOpts) (*DocumentLoader, error) {
	options := &documentLoaderOpts{}

	for i := range opts {
		opts[i](options)
	}

	contextStore := ctx.JSONLDContextStore()

	contexts := append(embed.Contexts, options.extraContexts...)

	if err := contextStore.Import(contexts); err != nil {
		return nil, fmt.Errorf("import contexts: %w", err)
	}

	return &DocumentLoader{
		store:                contextStore,
		remoteDocumentLoader: options.remoteDocumentLoader,
	}, nil
}

// LoadDocument resolves JSON-LD context document by document URL (u) either from storage or from remote URL.
// If document is not found in the storage and remote document loader is not specified, ErrContextNotFound is returned.
func (l *DocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	rd, err := l.store.Get(u)
	if err != nil {
		if !errors.Is(err, storage.ErrDataNotFound) {
			return nil, fmt.Errorf("get context from store: %w", err)
		}

		if l.remoteDocumentLoader == nil { // fetching from the remote URL is disabled
			return nil, ErrContextNotFound
		}

		return l.loadDocumentFromURL(u)
	}

	return rd, nil
}

func (l *DocumentLoader) loadDocumentFromURL(u string) (*ld.RemoteDocument, error) {
	rd, err := l.remoteDocumentLoader.LoadDocument(u)
	if err != nil {
		return nil, fmt.Errorf("load remote context document: %w", err)
	}

	if err := l.store.Put(u, rd); err != nil {
		return nil, fmt.Errorf("save remote document: %w", err)
	}

	return rd, nil
}

// NewRemoteFallbackLoader wraps a loader so that context documents it does
// not know about are fetched from their remote URLs. It backs the per-call
// opt-in into remote context fetching: the wrapped loader's allow-list stays
// authoritative for everything it already holds.
func NewRemoteFallbackLoader(loader ld.DocumentLoader) ld.DocumentLoader {
	return &remoteFallbackLoader{
		primary:  loader,
		fallback: ld.NewDefaultDocumentLoader(http.DefaultClient),
	}
}

type remoteFallbackLoader struct {
	primary  ld.DocumentLoader
	fallback ld.DocumentLoader
}

func (l *remoteFallbackLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	rd, err := l.primary.LoadDocument(u)
	if err == nil {
		return rd, nil
	}

	if errors.Is(err, ErrContextNotFound) {
		return l.fallback.LoadDocument(u)
	}

	return nil, err
}

type documentLoaderOpts struct {
	remoteDocumentLoader ld.DocumentLoader
	extraContexts        []ldcontext.Document
}

// DocumentLoaderOpts configures DocumentLoader during creation.
type DocumentLoaderOpts func(opts *documentLoaderOpts)

// WithExtraContexts sets the extra contexts (in addition to embedded) for preloading into the underlying storage.
func WithExtraContexts(contexts ...ldcontext.Document) DocumentLoaderOpts {
	return func(opts *documentLoaderOpts) {
		opts.extraContexts = contexts
	}
}

// WithRemoteDocumentLoader specifies loader for fetching JSON-LD context documents from remote URLs.
// Documents are fetched with this loader only if they are not found in the underlying storage.
func WithRemoteDocumentLoader(loader ld.DocumentLoader) DocumentLoaderOpts {
	return func(opts *documentLoaderOpts) {
		opts.remoteDocumentLoader = loader
	}
}
