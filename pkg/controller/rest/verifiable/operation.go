/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"net/http"

	jsonld "github.com/piprate/json-gold/ld"

	vccmd "github.com/credgraph/credgraph-go/pkg/controller/command/verifiable"
	"github.com/credgraph/credgraph-go/pkg/controller/internal/cmdutil"
	"github.com/credgraph/credgraph-go/pkg/controller/rest"
)

// constants for the verifiable document operations.
const (
	OperationID               = "/verifiable"
	ValidateCredentialPath    = OperationID + "/credential/validate"
	ValidatePresentationPath  = OperationID + "/presentation/validate"
	ReconstructCredentialPath = OperationID + "/credential/reconstruct"
)

// provider contains dependencies for the verifiable REST controller.
type provider interface {
	JSONLDDocumentLoader() jsonld.DocumentLoader
}

// Operation contains REST operations provided by the verifiable documents API.
type Operation struct {
	handlers []rest.Handler
	command  *vccmd.Command
}

// New returns a new instance of the verifiable documents REST controller.
func New(p provider) *Operation {
	op := &Operation{command: vccmd.New(p)}
	op.registerHandlers()

	return op
}

func (o *Operation) registerHandlers() {
	o.handlers = []rest.Handler{
		cmdutil.NewHTTPHandler(ValidateCredentialPath, http.MethodPost, o.ValidateCredential),
		cmdutil.NewHTTPHandler(ValidatePresentationPath, http.MethodPost, o.ValidatePresentation),
		cmdutil.NewHTTPHandler(ReconstructCredentialPath, http.MethodPost, o.ReconstructCredential),
	}
}

// GetRESTHandlers gets all controller API handlers available for this service.
func (o *Operation) GetRESTHandlers() []rest.Handler {
	return o.handlers
}

// ValidateCredential swagger:route POST /verifiable/credential/validate verifiable validateCredentialReq
//
// Validates the statement graph shape of a verifiable credential.
//
// Responses:
//    default: genericError
//    200: validateCredentialResp
func (o *Operation) ValidateCredential(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.ValidateCredential, rw, req.Body)
}

// ValidatePresentation swagger:route POST /verifiable/presentation/validate verifiable validatePresentationReq
//
// Validates the statement graph shape of a verifiable presentation.
//
// Responses:
//    default: genericError
//    200: validatePresentationResp
func (o *Operation) ValidatePresentation(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.ValidatePresentation, rw, req.Body)
}

// ReconstructCredential swagger:route POST /verifiable/credential/reconstruct verifiable reconstructCredentialReq
//
// Rebuilds a JSON object from the statement graph of a verifiable credential.
//
// Responses:
//    default: genericError
func (o *Operation) ReconstructCredential(rw http.ResponseWriter, req *http.Request) {
	rest.Execute(o.command.ReconstructCredential, rw, req.Body)
}
