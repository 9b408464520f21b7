/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ld

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	jsonld "github.com/piprate/json-gold/ld"

	"github.com/credgraph/credgraph-go/pkg/common/log"
	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext"
	"github.com/credgraph/credgraph-go/spi/storage"
)

const (
	// ContextStoreName is a JSON-LD context store name.
	ContextStoreName = "ldcontexts"

	// ContextRecordTag is a tag associated with every record in the store.
	ContextRecordTag = "record"
)

var logger = log.New("credgraph/store/ld")

// ContextStore represents a repository for JSON-LD context operations.
type ContextStore interface {
	Get(u string) (*jsonld.RemoteDocument, error)
	Put(u string, rd *jsonld.RemoteDocument) error
	Import(documents []ldcontext.Document) error
	Delete(documents []ldcontext.Document) error
}

// ContextStoreImpl is a default implementation of JSON-LD context repository.
type ContextStoreImpl struct {
	store storage.Store
}

// NewContextStore returns a new instance of ContextStoreImpl.
func NewContextStore(storageProvider storage.Provider) (*ContextStoreImpl, error) {
	store, err := storageProvider.OpenStore(ContextStoreName)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	err = storageProvider.SetStoreConfig(ContextStoreName, storage.StoreConfiguration{TagNames: []string{ContextRecordTag}})
	if err != nil {
		return nil, fmt.Errorf("set store config: %w", err)
	}

	return &ContextStoreImpl{store: store}, nil
}

// Get returns JSON-LD remote document from DB by context URL.
func (s *ContextStoreImpl) Get(u string) (*jsonld.RemoteDocument, error) {
	b, err := s.store.Get(u)
	if err != nil {
		return nil, fmt.Errorf("get context from store: %w", err)
	}

	var rd jsonld.RemoteDocument

	if err := json.Unmarshal(b, &rd); err != nil {
		return nil, fmt.Errorf("unmarshal context document: %w", err)
	}

	return &rd, nil
}

// Put saves JSON-LD remote document into DB.
func (s *ContextStoreImpl) Put(u string, rd *jsonld.RemoteDocument) error {
	b, err := json.Marshal(rd)
	if err != nil {
		return fmt.Errorf("marshal remote document: %w", err)
	}

	if err := s.store.Put(u, b, storage.Tag{Name: ContextRecordTag}); err != nil {
		return fmt.Errorf("put remote document: %w", err)
	}

	return nil
}

// Import imports JSON-LD contexts into DB. Contexts that have not changed since
// the previous import are skipped.
func (s *ContextStoreImpl) Import(documents []ldcontext.Document) error {
	hashes, err := s.computeContextHashes()
	if err != nil {
		return fmt.Errorf("compute context hashes: %w", err)
	}

	var ops []storage.Operation

	for _, d := range documents {
		document, err := jsonld.DocumentFromReader(bytes.NewReader(d.Content))
		if err != nil {
			return fmt.Errorf("document from reader: %w", err)
		}

		rd := jsonld.RemoteDocument{
			DocumentURL: d.DocumentURL,
			Document:    document,
		}

		b, err := json.Marshal(rd)
		if err != nil {
			return fmt.Errorf("marshal remote document: %w", err)
		}

		hash := computeHash(b)

		if h, ok := hashes[d.URL]; ok && h == hash {
			continue
		}

		ops = append(ops, storage.Operation{
			Key:   d.URL,
			Value: b,
			Tags:  []storage.Tag{{Name: ContextRecordTag, Value: hash}},
		})
	}

	if len(ops) == 0 {
		return nil
	}

	if err := s.store.Batch(ops); err != nil {
		return fmt.Errorf("store batch of contexts: %w", err)
	}

	return nil
}

// Delete deletes context documents in the underlying storage.
func (s *ContextStoreImpl) Delete(documents []ldcontext.Document) error {
	for _, d := range documents {
		if err := s.store.Delete(d.URL); err != nil {
			return fmt.Errorf("delete context document: %w", err)
		}
	}

	return nil
}

func (s *ContextStoreImpl) computeContextHashes() (map[string]string, error) {
	iterator, err := s.store.Query(ContextRecordTag)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	defer storage.Close(iterator, logger)

	hashes := make(map[string]string)

	for {
		hasNext, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("next entry: %w", err)
		}

		if !hasNext {
			break
		}

		key, err := iterator.Key()
		if err != nil {
			return nil, fmt.Errorf("get key: %w", err)
		}

		tags, err := iterator.Tags()
		if err != nil {
			return nil, fmt.Errorf("get tags: %w", err)
		}

		for _, tag := range tags {
			if tag.Name == ContextRecordTag {
				hashes[key] = tag.Value

				break
			}
		}
	}

	return hashes, nil
}

func computeHash(b []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(b))
}
