/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"github.com/credgraph/credgraph-go/pkg/controller/command/verifiable"
)

// validateCredentialReq model for validating a verifiable credential.
//
// swagger:parameters validateCredentialReq
type validateCredentialReq struct { //nolint: unused,deadcode
	// in: body
	Body verifiable.Document
}

// validateCredentialResp model for the validate credential response.
//
// swagger:response validateCredentialResp
type validateCredentialResp struct { //nolint: unused,deadcode
	// in: body
	Body verifiable.ValidateCredentialResponse
}

// validatePresentationReq model for validating a verifiable presentation.
//
// swagger:parameters validatePresentationReq
type validatePresentationReq struct { //nolint: unused,deadcode
	// in: body
	Body verifiable.Document
}

// validatePresentationResp model for the validate presentation response.
//
// swagger:response validatePresentationResp
type validatePresentationResp struct { //nolint: unused,deadcode
	// in: body
	Body verifiable.ValidatePresentationResponse
}

// reconstructCredentialReq model for reconstructing a verifiable credential.
//
// swagger:parameters reconstructCredentialReq
type reconstructCredentialReq struct { //nolint: unused,deadcode
	// in: body
	Body verifiable.Document
}
