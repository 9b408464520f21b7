/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ld manages the JSON-LD context collection behind the document
// loader: directly supplied context documents and contexts mirrored from
// remote context providers.
package ld

import (
	"fmt"

	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext"
	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext/remote"
	"github.com/credgraph/credgraph-go/pkg/store/ld"
)

// provider contains dependencies for the JSON-LD service.
type provider interface {
	JSONLDContextStore() ld.ContextStore
	JSONLDRemoteProviderStore() ld.RemoteProviderStore
}

// Service manages JSON-LD contexts and remote context providers.
type Service interface {
	AddContexts(documents []ldcontext.Document) error
	AddRemoteProvider(providerEndpoint string, opts ...remote.ProviderOpt) (string, error)
	RefreshRemoteProvider(providerID string, opts ...remote.ProviderOpt) error
	DeleteRemoteProvider(providerID string, opts ...remote.ProviderOpt) error
	GetAllRemoteProviders() ([]ld.RemoteProviderRecord, error)
	RefreshAllRemoteProviders(opts ...remote.ProviderOpt) error
}

// DefaultService keeps the context store in sync with supplied documents and
// registered remote providers.
type DefaultService struct {
	contextStore        ld.ContextStore
	remoteProviderStore ld.RemoteProviderStore
}

// New returns a new default JSON-LD service instance.
func New(ctx provider) *DefaultService {
	return &DefaultService{
		contextStore:        ctx.JSONLDContextStore(),
		remoteProviderStore: ctx.JSONLDRemoteProviderStore(),
	}
}

// AddContexts stores the supplied JSON-LD context documents.
func (s *DefaultService) AddContexts(documents []ldcontext.Document) error {
	if err := s.contextStore.Import(documents); err != nil {
		return fmt.Errorf("add contexts: %w", err)
	}

	return nil
}

// AddRemoteProvider registers a remote context provider and stores the
// contexts it currently serves. It returns the ID of the new provider record.
func (s *DefaultService) AddRemoteProvider(providerEndpoint string, opts ...remote.ProviderOpt) (string, error) {
	contexts, err := fetchContexts(providerEndpoint, opts)
	if err != nil {
		return "", err
	}

	record, err := s.remoteProviderStore.Save(providerEndpoint)
	if err != nil {
		return "", fmt.Errorf("save remote provider: %w", err)
	}

	if err := s.contextStore.Import(contexts); err != nil {
		return "", fmt.Errorf("import contexts: %w", err)
	}

	return record.ID, nil
}

// RefreshRemoteProvider re-pulls the contexts served by the identified
// provider into the context store.
func (s *DefaultService) RefreshRemoteProvider(providerID string, opts ...remote.ProviderOpt) error {
	record, err := s.remoteProviderStore.Get(providerID)
	if err != nil {
		return fmt.Errorf("get remote provider from store: %w", err)
	}

	contexts, err := fetchContexts(record.Endpoint, opts)
	if err != nil {
		return err
	}

	if err := s.contextStore.Import(contexts); err != nil {
		return fmt.Errorf("import contexts: %w", err)
	}

	return nil
}

// DeleteRemoteProvider removes the identified provider record together with
// the contexts it serves.
func (s *DefaultService) DeleteRemoteProvider(providerID string, opts ...remote.ProviderOpt) error {
	record, err := s.remoteProviderStore.Get(providerID)
	if err != nil {
		return fmt.Errorf("get remote provider from store: %w", err)
	}

	contexts, err := fetchContexts(record.Endpoint, opts)
	if err != nil {
		return err
	}

	if err := s.contextStore.Delete(contexts); err != nil {
		return fmt.Errorf("delete contexts: %w", err)
	}

	if err := s.remoteProviderStore.Delete(record.ID); err != nil {
		return fmt.Errorf("delete remote provider record: %w", err)
	}

	return nil
}

// GetAllRemoteProviders returns all registered remote provider records.
func (s *DefaultService) GetAllRemoteProviders() ([]ld.RemoteProviderRecord, error) {
	records, err := s.remoteProviderStore.GetAll()
	if err != nil {
		return nil, fmt.Errorf("get remote provider records: %w", err)
	}

	return records, nil
}

// RefreshAllRemoteProviders re-pulls contexts from every registered provider.
// The first provider failure aborts the refresh.
func (s *DefaultService) RefreshAllRemoteProviders(opts ...remote.ProviderOpt) error {
	records, err := s.remoteProviderStore.GetAll()
	if err != nil {
		return fmt.Errorf("get remote provider records: %w", err)
	}

	for _, record := range records {
		contexts, err := fetchContexts(record.Endpoint, opts)
		if err != nil {
			return err
		}

		if err := s.contextStore.Import(contexts); err != nil {
			return fmt.Errorf("import contexts: %w", err)
		}
	}

	return nil
}

func fetchContexts(endpoint string, opts []remote.ProviderOpt) ([]ldcontext.Document, error) {
	contexts, err := remote.NewProvider(endpoint, opts...).Contexts()
	if err != nil {
		return nil, fmt.Errorf("get contexts from remote provider: %w", err)
	}

	return contexts, nil
}
