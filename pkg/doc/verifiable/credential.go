/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"fmt"
	"time"

	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

// Credential is a verifiable credential backed by a statement graph.
type Credential struct {
	*GraphDocument

	root rdf.Term
}

// ParseCredential parses a JSON-LD credential document into a graph-backed
// Credential. The document serialization is checked against the base
// credential JSON Schema (unless disabled), the graph is checked against the
// credential shape, and the root subject is located by its
// VerifiableCredential type.
func ParseCredential(data []byte, opts ...ParseOpt) (*Credential, error) {
	options := &parseOpts{}

	for i := range opts {
		opts[i](options)
	}

	if !options.disableSchemaValidation {
		if err := validateJSONSchema(data, baseCredentialSchemaLoader, "verifiable credential"); err != nil {
			return nil, err
		}
	}

	parsed, err := parseLinkedDocument(data, VerifiableCredentialType, options)
	if err != nil {
		return nil, err
	}

	if err := validateCredentialShape(parsed.graph, parsed.root); err != nil {
		return nil, fmt.Errorf("credential shape: %w", err)
	}

	rootIRI := parsed.root.(rdf.IRI) // shape validation guarantees an IRI root

	return &Credential{
		GraphDocument: NewGraphDocument(rootIRI.Value, rootTypes(parsed.graph, parsed.root, parsed.context),
			parsed.graph, parsed.context, parsed.rawContext),
		root: parsed.root,
	}, nil
}

// Root returns the root subject term of the credential.
func (vc *Credential) Root() rdf.Term {
	return vc.root
}

// IssuerID returns the issuer IRI. It is strict: zero or multiple issuer
// statements are an error naming the count found.
func (vc *Credential) IssuerID() (string, error) {
	issuer, err := oneIRI(vc.Graph(), rdf.DefaultGraph, vc.root, issuerIRI)
	if err != nil {
		return "", err
	}

	return issuer.Value, nil
}

// IssuanceDate returns the issuance date of the credential.
func (vc *Credential) IssuanceDate() (time.Time, error) {
	return oneDateTime(vc.Graph(), rdf.DefaultGraph, vc.root, issuanceDateIRI)
}

// ExpirationDate returns the expiration date of the credential, or nil when
// none is set.
func (vc *Credential) ExpirationDate() (*time.Time, error) {
	quads := vc.Match(vc.root, rdf.IRI{Value: expirationDateIRI}, nil)
	if len(quads) == 0 {
		return nil, nil
	}

	if len(quads) > 1 {
		return nil, fmt.Errorf("lookup of <%s>: expected exactly one result, found %d",
			expirationDateIRI, len(quads))
	}

	t, err := parseDateTime(expirationDateIRI, quads[0].Object)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// SubjectID returns the credential subject IRI.
func (vc *Credential) SubjectID() (string, error) {
	subject, err := oneIRI(vc.Graph(), rdf.DefaultGraph, vc.root, credentialSubjectIRI)
	if err != nil {
		return "", err
	}

	return subject.Value, nil
}

// Proof reconstructs the proof node from the credential's proof sub-graph.
func (vc *Credential) Proof() (map[string]interface{}, error) {
	proofRef, err := oneObject(vc.Graph(), rdf.DefaultGraph, vc.root, proofIRI)
	if err != nil {
		return nil, fmt.Errorf("credential proof: %w", err)
	}

	label := proofRef.String()

	proofNode, err := proofGraphNode(vc.Graph(), label)
	if err != nil {
		return nil, fmt.Errorf("credential proof graph %s: %w", label, err)
	}

	// suite terms (created, proofPurpose, ...) are scoped to the proof type
	context := vc.Context()

	if typeQuads := vc.MatchGraph(label, proofNode, rdf.IRI{Value: rdf.RDFType}, nil); len(typeQuads) > 0 {
		if typeIRI, ok := typeQuads[0].Object.(rdf.IRI); ok && context != nil {
			context = context.Scoped(typeIRI.Value)
		}
	}

	return ReconstructGraph(vc.Graph(), label, proofNode, context)
}

// Reconstruct materializes the legacy nested-JSON shape of the credential:
// the source @context and the top-level fields from the strict accessors
// merged with the recursively reconstructed credential subject and the
// reconstructed proof. The result parses back through ParseCredential.
func (vc *Credential) Reconstruct() (map[string]interface{}, error) {
	issuer, err := vc.IssuerID()
	if err != nil {
		return nil, err
	}

	issuanceDate, err := vc.IssuanceDate()
	if err != nil {
		return nil, err
	}

	subjectID, err := vc.SubjectID()
	if err != nil {
		return nil, err
	}

	subject, err := Reconstruct(vc.Graph(), rdf.IRI{Value: subjectID}, vc.Context())
	if err != nil {
		return nil, fmt.Errorf("reconstruct credential subject: %w", err)
	}

	subject["id"] = subjectID

	proof, err := vc.Proof()
	if err != nil {
		return nil, err
	}

	result := map[string]interface{}{
		"id":                vc.ID(),
		"type":              vc.Types(),
		"issuer":            issuer,
		"issuanceDate":      issuanceDate.Format(time.RFC3339),
		"credentialSubject": subject,
		"proof":             proof,
	}

	if rawContext := vc.RawContext(); rawContext != nil {
		result["@context"] = rawContext
	}

	expirationDate, err := vc.ExpirationDate()
	if err != nil {
		return nil, err
	}

	if expirationDate != nil {
		result["expirationDate"] = expirationDate.Format(time.RFC3339)
	}

	return result, nil
}

// proofGraphNode returns the single proof node of the labeled proof graph.
func proofGraphNode(g *rdf.Graph, label string) (rdf.Term, error) {
	quads := g.MatchGraph(label, nil, rdf.IRI{}, nil)
	if len(quads) == 0 {
		return nil, fmt.Errorf("no proof statements found")
	}

	subjects := make(map[rdf.Term]struct{})

	var node rdf.Term

	for _, q := range quads {
		if _, ok := subjects[q.Subject]; !ok {
			subjects[q.Subject] = struct{}{}
			node = q.Subject
		}
	}

	if len(subjects) != 1 {
		return nil, fmt.Errorf("expected exactly one proof node, found %d", len(subjects))
	}

	return node, nil
}
