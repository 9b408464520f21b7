/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifiable

import (
	"fmt"

	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
)

// Presentation is a verifiable presentation backed by a statement graph.
type Presentation struct {
	*GraphDocument

	root rdf.Term
}

// ParsePresentation parses a JSON-LD presentation document into a
// graph-backed Presentation. The document serialization is checked against
// the base presentation JSON Schema (unless disabled), the graph is checked
// against the presentation shape, and the root subject is located by its
// VerifiablePresentation type.
func ParsePresentation(data []byte, opts ...ParseOpt) (*Presentation, error) {
	options := &parseOpts{}

	for i := range opts {
		opts[i](options)
	}

	if !options.disableSchemaValidation {
		if err := validateJSONSchema(data, basePresentationSchemaLoader, "verifiable presentation"); err != nil {
			return nil, err
		}
	}

	parsed, err := parseLinkedDocument(data, VerifiablePresentationType, options)
	if err != nil {
		return nil, err
	}

	if err := validatePresentationShape(parsed.graph, parsed.root); err != nil {
		return nil, fmt.Errorf("presentation shape: %w", err)
	}

	var id string
	if iri, ok := parsed.root.(rdf.IRI); ok {
		id = iri.Value
	}

	return &Presentation{
		GraphDocument: NewGraphDocument(id, rootTypes(parsed.graph, parsed.root, parsed.context),
			parsed.graph, parsed.context, parsed.rawContext),
		root: parsed.root,
	}, nil
}

// Root returns the root subject term of the presentation. It is a blank
// node for presentations without an id.
func (vp *Presentation) Root() rdf.Term {
	return vp.root
}

// Holder returns the holder IRI, or an empty string when the presentation
// declares no holder. Multiple holder statements are an error naming the
// count found.
func (vp *Presentation) Holder() (string, error) {
	quads := vp.Match(vp.root, rdf.IRI{Value: holderIRI}, nil)
	if len(quads) == 0 {
		return "", nil
	}

	if len(quads) > 1 {
		return "", fmt.Errorf("lookup of <%s>: expected exactly one result, found %d", holderIRI, len(quads))
	}

	holder, ok := quads[0].Object.(rdf.IRI)
	if !ok {
		return "", fmt.Errorf("presentation holder %s is not an IRI", quads[0].Object)
	}

	return holder.Value, nil
}

// CredentialIDs returns the IRIs of all credentials linked from the
// presentation, in statement order.
func (vp *Presentation) CredentialIDs() ([]string, error) {
	var ids []string

	for _, q := range vp.Match(vp.root, rdf.IRI{Value: verifiableCredentialIRI}, nil) {
		iri, ok := q.Object.(rdf.IRI)
		if !ok {
			return nil, fmt.Errorf("linked credential %s is not an IRI", q.Object)
		}

		ids = append(ids, iri.Value)
	}

	return ids, nil
}

// Credential returns the linked credential with the given id as a
// graph-backed Credential over the presentation's graph.
func (vp *Presentation) Credential(id string) (*Credential, error) {
	root := rdf.IRI{Value: id}

	links := vp.Match(vp.root, rdf.IRI{Value: verifiableCredentialIRI}, root)
	if len(links) == 0 {
		return nil, fmt.Errorf("presentation links no credential %q", id)
	}

	if err := validateCredentialShape(vp.Graph(), root); err != nil {
		return nil, fmt.Errorf("credential shape: %w", err)
	}

	return &Credential{
		GraphDocument: NewGraphDocument(id, rootTypes(vp.Graph(), root, vp.Context()),
			vp.Graph(), vp.Context(), vp.RawContext()),
		root: root,
	}, nil
}

// Reconstruct materializes the legacy nested-JSON shape of the
// presentation: the source @context plus id, type and holder from the
// strict accessors plus every linked credential reconstructed in order.
// The result parses back through ParsePresentation.
func (vp *Presentation) Reconstruct() (map[string]interface{}, error) {
	result := map[string]interface{}{
		"type": vp.Types(),
	}

	if rawContext := vp.RawContext(); rawContext != nil {
		result["@context"] = rawContext
	}

	if vp.ID() != "" {
		result["id"] = vp.ID()
	}

	holder, err := vp.Holder()
	if err != nil {
		return nil, err
	}

	if holder != "" {
		result["holder"] = holder
	}

	ids, err := vp.CredentialIDs()
	if err != nil {
		return nil, err
	}

	credentials := make([]interface{}, 0, len(ids))

	for _, id := range ids {
		vc, err := vp.Credential(id)
		if err != nil {
			return nil, err
		}

		reconstructed, err := vc.Reconstruct()
		if err != nil {
			return nil, fmt.Errorf("reconstruct credential %q: %w", id, err)
		}

		credentials = append(credentials, reconstructed)
	}

	if len(credentials) > 0 {
		result["verifiableCredential"] = credentials
	}

	return result, nil
}
