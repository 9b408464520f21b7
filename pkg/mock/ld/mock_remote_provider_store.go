/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ld

import (
	"fmt"

	"github.com/google/uuid"

	mockstorage "github.com/credgraph/credgraph-go/pkg/mock/storage"
	ldstore "github.com/credgraph/credgraph-go/pkg/store/ld"
	"github.com/credgraph/credgraph-go/spi/storage"
)

// MockRemoteProviderStore is a mock remote JSON-LD context provider store.
type MockRemoteProviderStore struct {
	Store     *mockstorage.MockStore
	ErrGet    error
	ErrGetAll error
	ErrSave   error
	ErrDelete error
}

// NewMockRemoteProviderStore returns a new instance of MockRemoteProviderStore.
func NewMockRemoteProviderStore() *MockRemoteProviderStore {
	return &MockRemoteProviderStore{
		Store: &mockstorage.MockStore{
			Store: make(map[string]mockstorage.DBEntry),
		},
	}
}

// Get returns a remote provider record from the underlying storage.
func (m *MockRemoteProviderStore) Get(id string) (*ldstore.RemoteProviderRecord, error) {
	if m.ErrGet != nil {
		return nil, m.ErrGet
	}

	endpoint, err := m.Store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get remote provider from store: %w", err)
	}

	return &ldstore.RemoteProviderRecord{
		ID:       id,
		Endpoint: string(endpoint),
	}, nil
}

// GetAll returns all remote provider records from the underlying storage.
func (m *MockRemoteProviderStore) GetAll() ([]ldstore.RemoteProviderRecord, error) {
	if m.ErrGetAll != nil {
		return nil, m.ErrGetAll
	}

	var records []ldstore.RemoteProviderRecord

	for id, entry := range m.Store.Store {
		records = append(records, ldstore.RemoteProviderRecord{
			ID:       id,
			Endpoint: string(entry.Value),
		})
	}

	return records, nil
}

// Save creates a new remote provider record and saves it into the underlying storage.
// If the record with the given endpoint already exists it is returned to the caller.
func (m *MockRemoteProviderStore) Save(endpoint string) (*ldstore.RemoteProviderRecord, error) {
	if m.ErrSave != nil {
		return nil, m.ErrSave
	}

	for id, entry := range m.Store.Store {
		if string(entry.Value) == endpoint {
			return &ldstore.RemoteProviderRecord{
				ID:       id,
				Endpoint: endpoint,
			}, nil
		}
	}

	id := uuid.New().String()

	if err := m.Store.Put(id, []byte(endpoint), storage.Tag{Name: ldstore.RemoteProviderRecordTag}); err != nil {
		return nil, fmt.Errorf("save new remote provider record: %w", err)
	}

	return &ldstore.RemoteProviderRecord{
		ID:       id,
		Endpoint: endpoint,
	}, nil
}

// Delete deletes a remote provider record in the underlying storage.
func (m *MockRemoteProviderStore) Delete(id string) error {
	if m.ErrDelete != nil {
		return m.ErrDelete
	}

	if err := m.Store.Delete(id); err != nil {
		return fmt.Errorf("delete remote provider record: %w", err)
	}

	return nil
}
