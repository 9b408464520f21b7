/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ld contains the context administration command: it manages the
// JSON-LD contexts available to the document loader, both directly supplied
// documents and documents pulled from remote context providers.
package ld

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/credgraph/credgraph-go/pkg/common/log"
	"github.com/credgraph/credgraph-go/pkg/controller/command"
	"github.com/credgraph/credgraph-go/pkg/controller/internal/cmdutil"
	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext/remote"
	"github.com/credgraph/credgraph-go/pkg/internal/logutil"
	"github.com/credgraph/credgraph-go/pkg/ld"
)

// Error codes of the context administration command.
const (
	// InvalidRequestErrorCode is returned when a request body cannot be decoded.
	InvalidRequestErrorCode = command.Code(iota + command.LD)

	// AddContextsErrorCode is returned when supplied context documents cannot be stored.
	AddContextsErrorCode

	// AddRemoteProviderErrorCode is returned when a remote provider cannot be registered.
	AddRemoteProviderErrorCode

	// RefreshRemoteProviderErrorCode is returned when contexts cannot be re-pulled from one provider.
	RefreshRemoteProviderErrorCode

	// DeleteRemoteProviderErrorCode is returned when a provider or its contexts cannot be removed.
	DeleteRemoteProviderErrorCode

	// GetAllRemoteProvidersErrorCode is returned when the provider records cannot be listed.
	GetAllRemoteProvidersErrorCode

	// RefreshAllRemoteProvidersErrorCode is returned when contexts cannot be re-pulled from every provider.
	RefreshAllRemoteProvidersErrorCode
)

// Command methods of the context administration command.
const (
	CommandName = "ld"

	AddContextsCommandMethod               = "AddContexts"
	AddRemoteProviderCommandMethod         = "AddRemoteProvider"
	RefreshRemoteProviderCommandMethod     = "RefreshRemoteProvider"
	DeleteRemoteProviderCommandMethod      = "DeleteRemoteProvider"
	GetAllRemoteProvidersCommandMethod     = "GetAllRemoteProviders"
	RefreshAllRemoteProvidersCommandMethod = "RefreshAllRemoteProviders"
)

var logger = log.New("credgraph/command/ld")

// HTTPClient performs the outbound requests to remote context providers.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the context administration command.
type Option func(cmd *Command)

// WithHTTPClient sets the client used to reach remote context providers.
func WithHTTPClient(client HTTPClient) Option {
	return func(cmd *Command) {
		cmd.httpClient = client
	}
}

// Command exposes context administration operations over the ld.Service.
type Command struct {
	service    ld.Service
	httpClient HTTPClient
}

// New returns a new context administration command over the given service.
func New(svc ld.Service, opts ...Option) *Command {
	cmd := &Command{
		service:    svc,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(cmd)
	}

	return cmd
}

// GetHandlers returns the command handlers of all context administration operations.
func (c *Command) GetHandlers() []command.Handler {
	return []command.Handler{
		cmdutil.NewCommandHandler(CommandName, AddContextsCommandMethod, c.AddContexts),
		cmdutil.NewCommandHandler(CommandName, AddRemoteProviderCommandMethod, c.AddRemoteProvider),
		cmdutil.NewCommandHandler(CommandName, RefreshRemoteProviderCommandMethod, c.RefreshRemoteProvider),
		cmdutil.NewCommandHandler(CommandName, DeleteRemoteProviderCommandMethod, c.DeleteRemoteProvider),
		cmdutil.NewCommandHandler(CommandName, GetAllRemoteProvidersCommandMethod, c.GetAllRemoteProviders),
		cmdutil.NewCommandHandler(CommandName, RefreshAllRemoteProvidersCommandMethod, c.RefreshAllRemoteProviders),
	}
}

// AddContexts stores the supplied JSON-LD context documents.
func (c *Command) AddContexts(w io.Writer, r io.Reader) command.Error {
	var req AddContextsRequest

	if cmdErr := decodeRequest(r, &req, AddContextsCommandMethod); cmdErr != nil {
		return cmdErr
	}

	if err := c.service.AddContexts(req.Documents); err != nil {
		return commandError(AddContextsCommandMethod, AddContextsErrorCode, fmt.Errorf("add contexts: %w", err))
	}

	return c.done(w, AddContextsCommandMethod, nil)
}

// AddRemoteProvider registers a remote context provider and pulls its contexts.
func (c *Command) AddRemoteProvider(w io.Writer, r io.Reader) command.Error {
	var req AddRemoteProviderRequest

	if cmdErr := decodeRequest(r, &req, AddRemoteProviderCommandMethod); cmdErr != nil {
		return cmdErr
	}

	providerID, err := c.service.AddRemoteProvider(req.Endpoint, c.remoteOpts()...)
	if err != nil {
		return commandError(AddRemoteProviderCommandMethod, AddRemoteProviderErrorCode,
			fmt.Errorf("add remote provider: %w", err))
	}

	return c.done(w, AddRemoteProviderCommandMethod, &ProviderID{ID: providerID})
}

// RefreshRemoteProvider re-pulls contexts from the identified provider.
func (c *Command) RefreshRemoteProvider(w io.Writer, r io.Reader) command.Error {
	var req ProviderID

	if cmdErr := decodeRequest(r, &req, RefreshRemoteProviderCommandMethod); cmdErr != nil {
		return cmdErr
	}

	if err := c.service.RefreshRemoteProvider(req.ID, c.remoteOpts()...); err != nil {
		return commandError(RefreshRemoteProviderCommandMethod, RefreshRemoteProviderErrorCode,
			fmt.Errorf("refresh remote provider: %w", err))
	}

	return c.done(w, RefreshRemoteProviderCommandMethod, nil)
}

// DeleteRemoteProvider removes the identified provider together with its contexts.
func (c *Command) DeleteRemoteProvider(w io.Writer, r io.Reader) command.Error {
	var req ProviderID

	if cmdErr := decodeRequest(r, &req, DeleteRemoteProviderCommandMethod); cmdErr != nil {
		return cmdErr
	}

	if err := c.service.DeleteRemoteProvider(req.ID, c.remoteOpts()...); err != nil {
		return commandError(DeleteRemoteProviderCommandMethod, DeleteRemoteProviderErrorCode,
			fmt.Errorf("delete remote provider: %w", err))
	}

	return c.done(w, DeleteRemoteProviderCommandMethod, nil)
}

// GetAllRemoteProviders lists the registered remote provider records.
func (c *Command) GetAllRemoteProviders(w io.Writer, _ io.Reader) command.Error {
	records, err := c.service.GetAllRemoteProviders()
	if err != nil {
		return commandError(GetAllRemoteProvidersCommandMethod, GetAllRemoteProvidersErrorCode,
			fmt.Errorf("get remote providers: %w", err))
	}

	return c.done(w, GetAllRemoteProvidersCommandMethod, &GetAllRemoteProvidersResponse{Providers: records})
}

// RefreshAllRemoteProviders re-pulls contexts from every registered provider.
func (c *Command) RefreshAllRemoteProviders(w io.Writer, _ io.Reader) command.Error {
	if err := c.service.RefreshAllRemoteProviders(c.remoteOpts()...); err != nil {
		return commandError(RefreshAllRemoteProvidersCommandMethod, RefreshAllRemoteProvidersErrorCode,
			fmt.Errorf("refresh remote providers: %w", err))
	}

	return c.done(w, RefreshAllRemoteProvidersCommandMethod, nil)
}

func (c *Command) remoteOpts() []remote.ProviderOpt {
	return []remote.ProviderOpt{remote.WithHTTPClient(c.httpClient)}
}

func (c *Command) done(w io.Writer, action string, response interface{}) command.Error {
	command.WriteNillableResponse(w, response, logger)

	logutil.LogDebug(logger, CommandName, action, "success")

	return nil
}

func decodeRequest(r io.Reader, req interface{}, action string) command.Error {
	if err := json.NewDecoder(r).Decode(req); err != nil {
		return commandError(action, InvalidRequestErrorCode, fmt.Errorf("decode request: %w", err))
	}

	return nil
}

func commandError(action string, errorCode command.Code, err error) command.Error {
	logutil.LogInfo(logger, CommandName, action, err.Error())

	return command.NewValidationError(errorCode, err)
}
