/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package credgraph provides a linked-data credential model for W3C
// Verifiable Credentials and Presentations: JSON-LD documents are parsed
// into graphs of subject-predicate-object statements, validated against
// the structural shape a credential or presentation must have, and
// reconstructed back into nested objects on demand.
//
// Packages for end developer usage
//
// pkg/doc/verifiable: Parse entrypoints, graph-backed documents, shape
// validators and the reconstruction engine.
// Reference: https://pkg.go.dev/github.com/credgraph/credgraph-go/pkg/doc/verifiable
//
// pkg/doc/jsonld: The security-restricted JSON-LD context loader and the
// memoizing context resolver.
// Reference: https://pkg.go.dev/github.com/credgraph/credgraph-go/pkg/doc/jsonld
//
// pkg/doc/rdf: The statement/graph model and the JSON-LD graph parser.
// Reference: https://pkg.go.dev/github.com/credgraph/credgraph-go/pkg/doc/rdf
//
// pkg/client/credential: Client for remote credential services (issue,
// status, derive, query, verify) built on the core pipeline.
// Reference: https://pkg.go.dev/github.com/credgraph/credgraph-go/pkg/client/credential
//
// Basic workflow
//
//	1) Create a document loader backed by a storage provider (the bundled
//	   contexts are preloaded; remote fetching is opt-in).
//	2) Parse a credential or presentation with pkg/doc/verifiable.
//	3) Validate the graph shape with IsCredential / IsPresentation.
//	4) Reconstruct nested objects from the graph where plain JSON is needed.
package credgraph
