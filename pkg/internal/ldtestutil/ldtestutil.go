/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ldtestutil

import (
	"github.com/credgraph/credgraph-go/pkg/doc/jsonld"
	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext"
	ldstore "github.com/credgraph/credgraph-go/pkg/store/ld"
	"github.com/credgraph/credgraph-go/pkg/storage/mem"
)

// DocumentLoader returns a JSON-LD document loader backed by in-memory
// storage, preloaded with the embedded contexts and the provided extra
// contexts.
func DocumentLoader(extraContexts ...ldcontext.Document) (*jsonld.DocumentLoader, error) {
	contextStore, err := ldstore.NewContextStore(mem.NewProvider())
	if err != nil {
		return nil, err
	}

	return jsonld.NewDocumentLoader(&provider{contextStore: contextStore},
		jsonld.WithExtraContexts(extraContexts...))
}

type provider struct {
	contextStore ldstore.ContextStore
}

func (p *provider) JSONLDContextStore() ldstore.ContextStore {
	return p.contextStore
}

// Contexts returns sample JSON-LD context documents for tests.
func Contexts() []ldcontext.Document {
	return []ldcontext.Document{
		{
			URL: "https://example.com/sample-context.jsonld",
			Content: []byte(`{
  "@context": {
    "name": "http://schema.org/name",
    "homepage": {"@id": "http://schema.org/url", "@type": "@id"}
  }
}`),
		},
	}
}
