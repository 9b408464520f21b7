/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import "encoding/json"

type issueRequest struct {
	Credential map[string]interface{} `json:"credential"`
}

type statusRequest struct {
	CredentialID string `json:"credentialId"`
	Reason       string `json:"reason,omitempty"`
}

type deriveRequest struct {
	Credential json.RawMessage `json:"verifiableCredential"`
	Frame      json.RawMessage `json:"frame"`
}

type verifyRequest struct {
	Credential json.RawMessage `json:"verifiableCredential"`
}

// VerifyResult is the outcome reported by the remote verifier.
type VerifyResult struct {
	Checks   []string `json:"checks,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Configuration is the well-known credential service configuration document.
type Configuration struct {
	ID             string `json:"id,omitempty"`
	IssueEndpoint  string `json:"issueEndpoint,omitempty"`
	QueryEndpoint  string `json:"queryEndpoint,omitempty"`
	VerifyEndpoint string `json:"verifyEndpoint,omitempty"`
}
