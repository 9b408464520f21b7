/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package verifiable implements the linked-data model of W3C Verifiable
// Credentials and Verifiable Presentations: parsing JSON-LD documents into
// statement graphs, validating the structural shape of credentials and
// presentations against those graphs, and reconstructing nested objects
// from subgraphs for callers that still want plain JSON.
package verifiable

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/credgraph/credgraph-go/pkg/common/log"
	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

// Vocabulary IRIs of the credential and security namespaces.
const (
	credNamespace = "https://www.w3.org/2018/credentials#"
	secNamespace  = "https://w3id.org/security#"

	// VerifiableCredentialType is the IRI of the VerifiableCredential type.
	VerifiableCredentialType = credNamespace + "VerifiableCredential"

	// VerifiablePresentationType is the IRI of the VerifiablePresentation type.
	VerifiablePresentationType = credNamespace + "VerifiablePresentation"

	issuerIRI               = credNamespace + "issuer"
	issuanceDateIRI         = credNamespace + "issuanceDate"
	expirationDateIRI       = credNamespace + "expirationDate"
	credentialSubjectIRI    = credNamespace + "credentialSubject"
	verifiableCredentialIRI = credNamespace + "verifiableCredential"
	holderIRI               = credNamespace + "holder"

	proofIRI              = secNamespace + "proof"
	proofPurposeIRI       = secNamespace + "proofPurpose"
	verificationMethodIRI = secNamespace + "verificationMethod"
	proofValueIRI         = secNamespace + "proofValue"

	createdIRI = "http://purl.org/dc/terms/created"
)

var logger = log.New("credgraph/doc/verifiable")

// ErrImmutable is returned on any attempt to mutate a graph-backed document.
var ErrImmutable = errors.New("graph-backed document is immutable")

// ErrUnexpectedTermKind is returned when reconstruction encounters a term
// that is neither an IRI, a blank node, nor a literal.
var ErrUnexpectedTermKind = errors.New("unexpected term kind")

// oneObject returns the object of the single statement with the given
// subject and predicate in the scope of the labeled graph. Zero or more
// than one matching statement is an error naming the count found.
func oneObject(g *rdf.Graph, label string, subject rdf.Term, predicate string) (rdf.Term, error) {
	quads := g.MatchGraph(label, subject, rdf.IRI{Value: predicate}, nil)

	if len(quads) != 1 {
		return nil, fmt.Errorf("lookup of <%s>: expected exactly one result, found %d", predicate, len(quads))
	}

	return quads[0].Object, nil
}

// oneIRI is oneObject restricted to IRI objects.
func oneIRI(g *rdf.Graph, label string, subject rdf.Term, predicate string) (rdf.IRI, error) {
	object, err := oneObject(g, label, subject, predicate)
	if err != nil {
		return rdf.IRI{}, err
	}

	iri, ok := object.(rdf.IRI)
	if !ok {
		return rdf.IRI{}, fmt.Errorf("value of <%s> is %s, expected an IRI", predicate, object)
	}

	return iri, nil
}

// oneDateTime is oneObject restricted to xsd:dateTime literals whose lexical
// value parses as a calendar date/time.
func oneDateTime(g *rdf.Graph, label string, subject rdf.Term, predicate string) (time.Time, error) {
	object, err := oneObject(g, label, subject, predicate)
	if err != nil {
		return time.Time{}, err
	}

	return parseDateTime(predicate, object)
}

func parseDateTime(predicate string, object rdf.Term) (time.Time, error) {
	literal, ok := object.(rdf.Literal)
	if !ok {
		return time.Time{}, fmt.Errorf("value of <%s> is %s, expected an xsd:dateTime literal", predicate, object)
	}

	if literal.Datatype != rdf.XSDDateTime {
		return time.Time{}, fmt.Errorf("value of <%s> has datatype <%s>, expected xsd:dateTime",
			predicate, literal.Datatype)
	}

	t, err := time.Parse(time.RFC3339, literal.Value)
	if err != nil {
		return time.Time{}, fmt.Errorf("value of <%s> is not a valid date: %w", predicate, err)
	}

	return t, nil
}

// DecodeReconstructed decodes a reconstructed nested object into out, which
// must be a pointer to a struct. Field names follow json tags; scalar values
// are converted weakly, so int64 graph literals fit int fields.
func DecodeReconstructed(m map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(m); err != nil {
		return fmt.Errorf("decode reconstructed object: %w", err)
	}

	return nil
}
