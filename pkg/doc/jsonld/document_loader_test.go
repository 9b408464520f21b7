/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsonld_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/piprate/json-gold/ld"
	"github.com/stretchr/testify/require"

	"github.com/credgraph/credgraph-go/pkg/doc/jsonld"
	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext"
	mockstorage "github.com/credgraph/credgraph-go/pkg/mock/storage"
	ldstore "github.com/credgraph/credgraph-go/pkg/store/ld"
	"github.com/credgraph/credgraph-go/pkg/storage/mem"
)

const sampleContextURL = "https://example.org/contexts/sample/v1"

//nolint:lll
const sampleContextContent = `{"@context": {"name": "https://schema.org/name"}}`

func TestNewDocumentLoader(t *testing.T) {
	t.Run("Embedded contexts are preloaded", func(t *testing.T) {
		loader := createLoader(t)

		rd, err := loader.LoadDocument("https://www.w3.org/2018/credentials/v1")
		require.NoError(t, err)
		require.NotNil(t, rd.Document)
	})

	t.Run("Extra contexts are preloaded", func(t *testing.T) {
		loader := createLoader(t, jsonld.WithExtraContexts(ldcontext.Document{
			URL:     sampleContextURL,
			Content: json.RawMessage(sampleContextContent),
		}))

		rd, err := loader.LoadDocument(sampleContextURL)
		require.NoError(t, err)
		require.NotNil(t, rd.Document)
	})

	t.Run("Import failure", func(t *testing.T) {
		storageProvider := mockstorage.NewMockStoreProvider()
		storageProvider.Store.ErrBatch = errors.New("batch error")

		contextStore, err := ldstore.NewContextStore(storageProvider)
		require.NoError(t, err)

		_, err = jsonld.NewDocumentLoader(&storeProvider{contextStore: contextStore})
		require.Error(t, err)
		require.Contains(t, err.Error(), "import contexts")
	})
}

func TestDocumentLoader_LoadDocument(t *testing.T) {
	t.Run("Unknown context with remote fetch disabled", func(t *testing.T) {
		loader := createLoader(t)

		_, err := loader.LoadDocument(sampleContextURL)
		require.ErrorIs(t, err, jsonld.ErrContextNotFound)
	})

	t.Run("Unknown context fetched once when remote loader set", func(t *testing.T) {
		remote := &countingRemoteLoader{document: sampleContextContent}

		loader := createLoader(t, jsonld.WithRemoteDocumentLoader(remote))

		rd, err := loader.LoadDocument(sampleContextURL)
		require.NoError(t, err)
		require.NotNil(t, rd.Document)
		require.Equal(t, 1, remote.calls)

		// second load is served from storage
		_, err = loader.LoadDocument(sampleContextURL)
		require.NoError(t, err)
		require.Equal(t, 1, remote.calls)
	})

	t.Run("Remote loader failure", func(t *testing.T) {
		remote := &countingRemoteLoader{err: errors.New("fetch error")}

		loader := createLoader(t, jsonld.WithRemoteDocumentLoader(remote))

		_, err := loader.LoadDocument(sampleContextURL)
		require.Error(t, err)
		require.Contains(t, err.Error(), "load remote context document")
	})

	t.Run("Storage failure", func(t *testing.T) {
		storageProvider := mockstorage.NewMockStoreProvider()

		contextStore, err := ldstore.NewContextStore(storageProvider)
		require.NoError(t, err)

		loader, err := jsonld.NewDocumentLoader(&storeProvider{contextStore: contextStore})
		require.NoError(t, err)

		storageProvider.Store.ErrGet = errors.New("get error")

		_, err = loader.LoadDocument("https://www.w3.org/2018/credentials/v1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "get context from store")
	})
}

func createLoader(t *testing.T, opts ...jsonld.DocumentLoaderOpts) *jsonld.DocumentLoader {
	t.Helper()

	contextStore, err := ldstore.NewContextStore(mem.NewProvider())
	require.NoError(t, err)

	loader, err := jsonld.NewDocumentLoader(&storeProvider{contextStore: contextStore}, opts...)
	require.NoError(t, err)

	return loader
}

type storeProvider struct {
	contextStore ldstore.ContextStore
}

func (p *storeProvider) JSONLDContextStore() ldstore.ContextStore {
	return p.contextStore
}

type countingRemoteLoader struct {
	document string
	err      error
	calls    int
}

func (l *countingRemoteLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	l.calls++

	if l.err != nil {
		return nil, l.err
	}

	var doc interface{}

	if err := json.Unmarshal([]byte(l.document), &doc); err != nil {
		return nil, err
	}

	return &ld.RemoteDocument{DocumentURL: u, Document: doc}, nil
}
