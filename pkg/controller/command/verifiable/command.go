/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"encoding/json"
	"fmt"
	"io"

	jsonld "github.com/piprate/json-gold/ld"

	"github.com/credgraph/credgraph-go/pkg/common/log"
	"github.com/credgraph/credgraph-go/pkg/controller/command"
	"github.com/credgraph/credgraph-go/pkg/controller/internal/cmdutil"
	"github.com/credgraph/credgraph-go/pkg/doc/verifiable"
	"github.com/credgraph/credgraph-go/pkg/internal/logutil"
)

var logger = log.New("credgraph/command/verifiable")

// Error codes.
const (
	// InvalidRequestErrorCode is typically a code for invalid requests.
	InvalidRequestErrorCode = command.Code(iota + command.VC)

	// ValidateCredentialErrorCode for validate credential error.
	ValidateCredentialErrorCode

	// ValidatePresentationErrorCode for validate presentation error.
	ValidatePresentationErrorCode

	// ReconstructCredentialErrorCode for reconstruct credential error.
	ReconstructCredentialErrorCode
)

const (
	// CommandName is a base command name for verifiable document operations.
	CommandName = "verifiable"

	// ValidateCredentialCommandMethod is a command method for validating a credential.
	ValidateCredentialCommandMethod = "ValidateCredential"

	// ValidatePresentationCommandMethod is a command method for validating a presentation.
	ValidatePresentationCommandMethod = "ValidatePresentation"

	// ReconstructCredentialCommandMethod is a command method for reconstructing a credential
	// from its statement graph.
	ReconstructCredentialCommandMethod = "ReconstructCredential"
)

// provider contains dependencies for the verifiable command.
type provider interface {
	JSONLDDocumentLoader() jsonld.DocumentLoader
}

// Command contains command operations for verifiable documents.
type Command struct {
	documentLoader jsonld.DocumentLoader
}

// New returns a new verifiable documents command instance.
func New(p provider) *Command {
	return &Command{documentLoader: p.JSONLDDocumentLoader()}
}

// GetHandlers returns list of all commands supported by this controller command.
func (c *Command) GetHandlers() []command.Handler {
	return []command.Handler{
		cmdutil.NewCommandHandler(CommandName, ValidateCredentialCommandMethod, c.ValidateCredential),
		cmdutil.NewCommandHandler(CommandName, ValidatePresentationCommandMethod, c.ValidatePresentation),
		cmdutil.NewCommandHandler(CommandName, ReconstructCredentialCommandMethod, c.ReconstructCredential),
	}
}

// ValidateCredential parses the given credential document and checks its statement graph shape.
func (c *Command) ValidateCredential(w io.Writer, r io.Reader) command.Error {
	var req Document

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return commandError(ValidateCredentialCommandMethod, InvalidRequestErrorCode,
			fmt.Errorf("decode request: %w", err))
	}

	vc, err := verifiable.ParseCredential(req.Document, c.parseOpts(&req)...)
	if err != nil {
		return commandError(ValidateCredentialCommandMethod, ValidateCredentialErrorCode,
			fmt.Errorf("parse credential: %w", err))
	}

	command.WriteNillableResponse(w, &ValidateCredentialResponse{ID: vc.ID(), Types: vc.Types()}, logger)

	logutil.LogDebug(logger, CommandName, ValidateCredentialCommandMethod, "success")

	return nil
}

// ValidatePresentation parses the given presentation document and checks its statement
// graph shape, including every linked credential.
func (c *Command) ValidatePresentation(w io.Writer, r io.Reader) command.Error {
	var req Document

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return commandError(ValidatePresentationCommandMethod, InvalidRequestErrorCode,
			fmt.Errorf("decode request: %w", err))
	}

	vp, err := verifiable.ParsePresentation(req.Document, c.parseOpts(&req)...)
	if err != nil {
		return commandError(ValidatePresentationCommandMethod, ValidatePresentationErrorCode,
			fmt.Errorf("parse presentation: %w", err))
	}

	credentialIDs, err := vp.CredentialIDs()
	if err != nil {
		return commandError(ValidatePresentationCommandMethod, ValidatePresentationErrorCode,
			fmt.Errorf("get credential ids: %w", err))
	}

	command.WriteNillableResponse(w, &ValidatePresentationResponse{
		ID:            vp.ID(),
		CredentialIDs: credentialIDs,
	}, logger)

	logutil.LogDebug(logger, CommandName, ValidatePresentationCommandMethod, "success")

	return nil
}

// ReconstructCredential parses the given credential document and rebuilds a JSON object
// from its statement graph.
func (c *Command) ReconstructCredential(w io.Writer, r io.Reader) command.Error {
	var req Document

	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return commandError(ReconstructCredentialCommandMethod, InvalidRequestErrorCode,
			fmt.Errorf("decode request: %w", err))
	}

	vc, err := verifiable.ParseCredential(req.Document, c.parseOpts(&req)...)
	if err != nil {
		return commandError(ReconstructCredentialCommandMethod, ReconstructCredentialErrorCode,
			fmt.Errorf("parse credential: %w", err))
	}

	reconstructed, err := vc.Reconstruct()
	if err != nil {
		return commandError(ReconstructCredentialCommandMethod, ReconstructCredentialErrorCode,
			fmt.Errorf("reconstruct credential: %w", err))
	}

	command.WriteNillableResponse(w, reconstructed, logger)

	logutil.LogDebug(logger, CommandName, ReconstructCredentialCommandMethod, "success")

	return nil
}

func (c *Command) parseOpts(req *Document) []verifiable.ParseOpt {
	var opts []verifiable.ParseOpt

	if c.documentLoader != nil {
		opts = append(opts, verifiable.WithDocumentLoader(c.documentLoader))
	}

	if req.AllowRemoteContexts {
		opts = append(opts, verifiable.WithRemoteContextFetch())
	}

	return opts
}

func commandError(action string, errorCode command.Code, err error) command.Error {
	logutil.LogInfo(logger, CommandName, action, err.Error())

	return command.NewValidationError(errorCode, err)
}
