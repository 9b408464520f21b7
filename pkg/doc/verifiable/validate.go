/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"fmt"
	"net/url"

	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

// IsCredential reports whether the subgraph rooted at subject has the
// structural shape of a verifiable credential. It is a pure predicate: it
// never mutates, never fetches and never fails for any graph+subject pair.
func IsCredential(g *rdf.Graph, subject rdf.Term) bool {
	return validateCredentialShape(g, subject) == nil
}

// IsPresentation reports whether the subgraph rooted at subject has the
// structural shape of a verifiable presentation.
func IsPresentation(g *rdf.Graph, subject rdf.Term) bool {
	return validatePresentationShape(g, subject) == nil
}

// validateCredentialShape checks the credential shape invariants in order.
// All checks are conjunctive: the first missing piece fails the whole shape.
func validateCredentialShape(g *rdf.Graph, subject rdf.Term) error {
	if subject == nil {
		return fmt.Errorf("credential subject term is nil")
	}

	if _, ok := subject.(rdf.IRI); !ok {
		return fmt.Errorf("credential root %s is not an IRI", subject)
	}

	proofRef, err := oneObject(g, rdf.DefaultGraph, subject, proofIRI)
	if err != nil {
		return fmt.Errorf("credential proof: %w", err)
	}

	if _, ok := proofRef.(rdf.Literal); ok {
		return fmt.Errorf("credential proof reference %s is a literal, expected a graph reference", proofRef)
	}

	if err := validateProofGraph(g, proofRef.String()); err != nil {
		return fmt.Errorf("credential proof graph %s: %w", proofRef, err)
	}

	if _, err := oneIRI(g, rdf.DefaultGraph, subject, issuerIRI); err != nil {
		return fmt.Errorf("credential issuer: %w", err)
	}

	if _, err := oneDateTime(g, rdf.DefaultGraph, subject, issuanceDateIRI); err != nil {
		return fmt.Errorf("credential issuance date: %w", err)
	}

	if err := validateOptionalDate(g, subject, expirationDateIRI); err != nil {
		return fmt.Errorf("credential expiration date: %w", err)
	}

	if _, err := oneIRI(g, rdf.DefaultGraph, subject, credentialSubjectIRI); err != nil {
		return fmt.Errorf("credential subject: %w", err)
	}

	typeQuads := g.Match(subject, rdf.IRI{Value: rdf.RDFType}, rdf.IRI{Value: VerifiableCredentialType})
	if len(typeQuads) == 0 {
		return fmt.Errorf("credential type: no rdf:type statement naming %s", VerifiableCredentialType)
	}

	return nil
}

// validateProofGraph checks that the labeled sub-graph contains exactly one
// proof node carrying the required proof properties.
func validateProofGraph(g *rdf.Graph, label string) error {
	proofNode, err := proofGraphNode(g, label)
	if err != nil {
		return err
	}

	if _, err := oneDateTime(g, label, proofNode, createdIRI); err != nil {
		return fmt.Errorf("proof created: %w", err)
	}

	proofValue, err := oneObject(g, label, proofNode, proofValueIRI)
	if err != nil {
		return fmt.Errorf("proof value: %w", err)
	}

	if _, ok := proofValue.(rdf.Literal); !ok {
		return fmt.Errorf("proof value %s is not a literal", proofValue)
	}

	if _, err := oneIRI(g, label, proofNode, proofPurposeIRI); err != nil {
		return fmt.Errorf("proof purpose: %w", err)
	}

	if _, err := oneIRI(g, label, proofNode, verificationMethodIRI); err != nil {
		return fmt.Errorf("proof verification method: %w", err)
	}

	typeQuads := g.MatchGraph(label, proofNode, rdf.IRI{Value: rdf.RDFType}, nil)
	if len(typeQuads) == 0 {
		return fmt.Errorf("proof node has no rdf:type statement")
	}

	return nil
}

// validatePresentationShape checks the presentation shape invariants.
//
// The rdf:type requirement is satisfied by any type statement for the
// presentation subject, not only by the VerifiablePresentation type. This
// reproduces the behavior of the historical validator; the parse entrypoint
// still locates the root by the VerifiablePresentation type, so documents
// going through ParsePresentation always carry it.
func validatePresentationShape(g *rdf.Graph, subject rdf.Term) error {
	if subject == nil {
		return fmt.Errorf("presentation subject term is nil")
	}

	if _, ok := subject.(rdf.Literal); ok {
		return fmt.Errorf("presentation root %s is a literal, expected an IRI or a blank node", subject)
	}

	typeQuads := g.Match(subject, rdf.IRI{Value: rdf.RDFType}, nil)
	if len(typeQuads) == 0 {
		return fmt.Errorf("presentation type: no rdf:type statement for %s", subject)
	}

	if err := validateHolder(g, subject); err != nil {
		return err
	}

	for _, q := range g.Match(subject, rdf.IRI{Value: verifiableCredentialIRI}, nil) {
		credential, ok := q.Object.(rdf.IRI)
		if !ok {
			return fmt.Errorf("linked credential %s is not an IRI", q.Object)
		}

		if err := validateCredentialShape(g, credential); err != nil {
			return fmt.Errorf("linked credential %s: %w", credential.Value, err)
		}
	}

	return nil
}

func validateHolder(g *rdf.Graph, subject rdf.Term) error {
	holderQuads := g.Match(subject, rdf.IRI{Value: holderIRI}, nil)
	if len(holderQuads) == 0 {
		return nil
	}

	if len(holderQuads) > 1 {
		return fmt.Errorf("presentation holder: expected exactly one result, found %d", len(holderQuads))
	}

	holder, ok := holderQuads[0].Object.(rdf.IRI)
	if !ok {
		return fmt.Errorf("presentation holder %s is not an IRI", holderQuads[0].Object)
	}

	if _, err := url.ParseRequestURI(holder.Value); err != nil {
		return fmt.Errorf("presentation holder %q is not a valid URL: %w", holder.Value, err)
	}

	return nil
}

func validateOptionalDate(g *rdf.Graph, subject rdf.Term, predicate string) error {
	quads := g.Match(subject, rdf.IRI{Value: predicate}, nil)
	if len(quads) == 0 {
		return nil
	}

	if len(quads) > 1 {
		return fmt.Errorf("lookup of <%s>: expected exactly one result, found %d", predicate, len(quads))
	}

	_, err := parseDateTime(predicate, quads[0].Object)

	return err
}
