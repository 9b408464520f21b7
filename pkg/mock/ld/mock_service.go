/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ld

import (
	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext"
	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext/remote"
	ldstore "github.com/credgraph/credgraph-go/pkg/store/ld"
)

// MockService is a mock JSON-LD service.
type MockService struct {
	ProviderID                   string
	RemoteProviderRecords        []ldstore.RemoteProviderRecord
	ErrAddContexts               error
	ErrAddRemoteProvider         error
	ErrRefreshRemoteProvider     error
	ErrDeleteRemoteProvider      error
	ErrGetAllRemoteProviders     error
	ErrRefreshAllRemoteProviders error
}

// AddContexts adds JSON-LD contexts to the underlying storage.
func (s *MockService) AddContexts(documents []ldcontext.Document) error {
	if s.ErrAddContexts != nil {
		return s.ErrAddContexts
	}

	return nil
}

// AddRemoteProvider adds remote provider and JSON-LD contexts from that provider.
func (s *MockService) AddRemoteProvider(providerEndpoint string, opts ...remote.ProviderOpt) (string, error) {
	if s.ErrAddRemoteProvider != nil {
		return "", s.ErrAddRemoteProvider
	}

	return s.ProviderID, nil
}

// RefreshRemoteProvider updates contexts from the remote provider.
func (s *MockService) RefreshRemoteProvider(providerID string, opts ...remote.ProviderOpt) error {
	if s.ErrRefreshRemoteProvider != nil {
		return s.ErrRefreshRemoteProvider
	}

	return nil
}

// DeleteRemoteProvider deletes remote provider and contexts from that provider.
func (s *MockService) DeleteRemoteProvider(providerID string, opts ...remote.ProviderOpt) error {
	if s.ErrDeleteRemoteProvider != nil {
		return s.ErrDeleteRemoteProvider
	}

	return nil
}

// GetAllRemoteProviders gets all remote providers.
func (s *MockService) GetAllRemoteProviders() ([]ldstore.RemoteProviderRecord, error) {
	if s.ErrGetAllRemoteProviders != nil {
		return nil, s.ErrGetAllRemoteProviders
	}

	return s.RemoteProviderRecords, nil
}

// RefreshAllRemoteProviders updates contexts from all remote providers.
func (s *MockService) RefreshAllRemoteProviders(opts ...remote.ProviderOpt) error {
	if s.ErrRefreshAllRemoteProviders != nil {
		return s.ErrRefreshAllRemoteProviders
	}

	return nil
}
