/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import "encoding/json"

// Document is a request model carrying a verifiable document to process.
type Document struct {
	// Document is a raw JSON-LD credential or presentation.
	Document json.RawMessage `json:"document"`

	// AllowRemoteContexts permits fetching contexts missing from the local cache.
	AllowRemoteContexts bool `json:"allowRemoteContexts,omitempty"`
}

// ValidateCredentialResponse is a response model for the validate credential command.
type ValidateCredentialResponse struct {
	ID    string   `json:"id"`
	Types []string `json:"type"`
}

// ValidatePresentationResponse is a response model for the validate presentation command.
type ValidatePresentationResponse struct {
	ID            string   `json:"id"`
	CredentialIDs []string `json:"credentialIds"`
}
