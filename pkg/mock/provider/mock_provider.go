/*
Copyright SecureKey Technologies Inc. All Rights Reserved.
SPDX-License-Identifier: Apache-2.0
*/

package provider

import (
	jsonld "github.com/piprate/json-gold/ld"

	"github.com/credgraph/credgraph-go/pkg/store/ld"
	"github.com/credgraph/credgraph-go/spi/storage"
)

// Provider mocks the dependency provider used for service initialization.
type Provider struct {
	StorageProviderValue     storage.Provider
	ContextStoreValue        ld.ContextStore
	RemoteProviderStoreValue ld.RemoteProviderStore
	DocumentLoaderValue      jsonld.DocumentLoader
}

// StorageProvider returns the storage provider.
func (p *Provider) StorageProvider() storage.Provider {
	return p.StorageProviderValue
}

// JSONLDContextStore returns JSON-LD context store.
func (p *Provider) JSONLDContextStore() ld.ContextStore {
	return p.ContextStoreValue
}

// JSONLDRemoteProviderStore returns remote JSON-LD context provider store.
func (p *Provider) JSONLDRemoteProviderStore() ld.RemoteProviderStore {
	return p.RemoteProviderStoreValue
}

// JSONLDDocumentLoader returns JSON-LD document loader.
func (p *Provider) JSONLDDocumentLoader() jsonld.DocumentLoader {
	return p.DocumentLoaderValue
}
