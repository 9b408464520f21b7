/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ld

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/credgraph/credgraph-go/spi/storage"
)

const (
	// RemoteProviderStoreName is a remote provider store name.
	RemoteProviderStoreName = "remoteproviders"

	// RemoteProviderRecordTag is a tag associated with every record in the store.
	RemoteProviderRecordTag = "record"
)

const (
	saveRecordRetries    = 3
	saveRecordRetryDelay = 200 * time.Millisecond
)

// RemoteProviderRecord is a record in store with remote provider info.
type RemoteProviderRecord struct {
	ID       string `json:"id"`
	Endpoint string `json:"endpoint"`
}

// RemoteProviderStore represents a repository for remote context provider operations.
type RemoteProviderStore interface {
	Get(id string) (*RemoteProviderRecord, error)
	GetAll() ([]RemoteProviderRecord, error)
	Save(endpoint string) (*RemoteProviderRecord, error)
	Delete(id string) error
}

// RemoteProviderStoreImpl is a default implementation of remote provider repository.
type RemoteProviderStoreImpl struct {
	store               storage.Store
	debugDisableBackoff bool
}

// NewRemoteProviderStore returns a new instance of RemoteProviderStoreImpl.
func NewRemoteProviderStore(storageProvider storage.Provider) (*RemoteProviderStoreImpl, error) {
	store, err := storageProvider.OpenStore(RemoteProviderStoreName)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	err = storageProvider.SetStoreConfig(RemoteProviderStoreName,
		storage.StoreConfiguration{TagNames: []string{RemoteProviderRecordTag}})
	if err != nil {
		return nil, fmt.Errorf("set store config: %w", err)
	}

	return &RemoteProviderStoreImpl{store: store}, nil
}

// Get returns a remote provider record from the underlying storage.
func (s *RemoteProviderStoreImpl) Get(id string) (*RemoteProviderRecord, error) {
	endpoint, err := s.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get remote provider from store: %w", err)
	}

	return &RemoteProviderRecord{
		ID:       id,
		Endpoint: string(endpoint),
	}, nil
}

// GetAll returns all remote provider records from the underlying storage.
func (s *RemoteProviderStoreImpl) GetAll() ([]RemoteProviderRecord, error) {
	iterator, err := s.store.Query(RemoteProviderRecordTag)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	defer storage.Close(iterator, logger)

	var records []RemoteProviderRecord

	for {
		hasNext, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("next entry: %w", err)
		}

		if !hasNext {
			break
		}

		id, err := iterator.Key()
		if err != nil {
			return nil, fmt.Errorf("get key: %w", err)
		}

		endpoint, err := iterator.Value()
		if err != nil {
			return nil, fmt.Errorf("get value: %w", err)
		}

		records = append(records, RemoteProviderRecord{
			ID:       id,
			Endpoint: string(endpoint),
		})
	}

	return records, nil
}

// Save creates a new remote provider record and saves it into the underlying storage.
// If the record with the given endpoint already exists it is returned to the caller.
func (s *RemoteProviderStoreImpl) Save(endpoint string) (*RemoteProviderRecord, error) {
	var record *RemoteProviderRecord

	save := func() error {
		r, err := s.findByEndpoint(endpoint)
		if err != nil {
			return err
		}

		if r != nil {
			record = r

			return nil
		}

		id := uuid.New().String()

		if err := s.store.Put(id, []byte(endpoint), storage.Tag{Name: RemoteProviderRecordTag}); err != nil {
			return fmt.Errorf("save new remote provider record: %w", err)
		}

		record = &RemoteProviderRecord{
			ID:       id,
			Endpoint: endpoint,
		}

		return nil
	}

	if err := backoff.Retry(save, s.newBackOff()); err != nil {
		return nil, err
	}

	return record, nil
}

// Delete deletes a remote provider record in the underlying storage.
func (s *RemoteProviderStoreImpl) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("delete remote provider record: %w", err)
	}

	return nil
}

func (s *RemoteProviderStoreImpl) findByEndpoint(endpoint string) (*RemoteProviderRecord, error) {
	iterator, err := s.store.Query(RemoteProviderRecordTag)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}

	defer storage.Close(iterator, logger)

	for {
		hasNext, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("next entry: %w", err)
		}

		if !hasNext {
			break
		}

		id, err := iterator.Key()
		if err != nil {
			return nil, fmt.Errorf("get key: %w", err)
		}

		b, err := iterator.Value()
		if err != nil {
			return nil, fmt.Errorf("get value: %w", err)
		}

		if string(b) == endpoint {
			return &RemoteProviderRecord{
				ID:       id,
				Endpoint: endpoint,
			}, nil
		}
	}

	return nil, nil
}

func (s *RemoteProviderStoreImpl) newBackOff() backoff.BackOff {
	if s.debugDisableBackoff {
		return &backoff.StopBackOff{}
	}

	return backoff.WithMaxRetries(backoff.NewConstantBackOff(saveRecordRetryDelay), saveRecordRetries)
}
