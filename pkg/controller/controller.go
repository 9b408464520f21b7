/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package controller

import (
	"net/http"

	jsonld "github.com/piprate/json-gold/ld"

	"github.com/credgraph/credgraph-go/pkg/controller/command"
	ldcmd "github.com/credgraph/credgraph-go/pkg/controller/command/ld"
	verifiablecmd "github.com/credgraph/credgraph-go/pkg/controller/command/verifiable"
	"github.com/credgraph/credgraph-go/pkg/controller/rest"
	ldrest "github.com/credgraph/credgraph-go/pkg/controller/rest/ld"
	verifiablerest "github.com/credgraph/credgraph-go/pkg/controller/rest/verifiable"
	"github.com/credgraph/credgraph-go/pkg/ld"
)

// provider contains dependencies for the controller APIs.
type provider interface {
	JSONLDDocumentLoader() jsonld.DocumentLoader
}

type allOpts struct {
	httpClient ldcmd.HTTPClient
}

// Opt represents a controller option.
type Opt func(opts *allOpts)

// WithHTTPClient is an option for setting up a custom HTTP client used by the
// context administration commands.
func WithHTTPClient(client ldcmd.HTTPClient) Opt {
	return func(opts *allOpts) {
		opts.httpClient = client
	}
}

// GetRESTHandlers returns all REST handlers provided by controller.
func GetRESTHandlers(ctx provider, svc ld.Service, opts ...Opt) []rest.Handler {
	restAPIOpts := &allOpts{httpClient: http.DefaultClient}

	for _, opt := range opts {
		opt(restAPIOpts)
	}

	var handlers []rest.Handler

	handlers = append(handlers, ldrest.New(svc, ldrest.WithHTTPClient(restAPIOpts.httpClient)).GetRESTHandlers()...)
	handlers = append(handlers, verifiablerest.New(ctx).GetRESTHandlers()...)

	return handlers
}

// GetCommandHandlers returns all command handlers provided by controller.
func GetCommandHandlers(ctx provider, svc ld.Service, opts ...Opt) []command.Handler {
	cmdOpts := &allOpts{httpClient: http.DefaultClient}

	for _, opt := range opts {
		opt(cmdOpts)
	}

	var handlers []command.Handler

	handlers = append(handlers, ldcmd.New(svc, ldcmd.WithHTTPClient(cmdOpts.httpClient)).GetHandlers()...)
	handlers = append(handlers, verifiablecmd.New(ctx).GetHandlers()...)

	return handlers
}
