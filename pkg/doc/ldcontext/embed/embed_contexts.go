/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package embed

import (
	_ "embed" //nolint:gci // required for go:embed

	"github.com/credgraph/credgraph-go/pkg/doc/ldcontext"
)

// nolint:gochecknoglobals // required for go:embed
var (
	//go:embed third_party/w3.org/credentials_v1.jsonld
	w3orgCredentials []byte
	//go:embed third_party/w3c-ccg.github.io/security_v1.jsonld
	securityV1 []byte
	//go:embed third_party/w3c-ccg.github.io/security_v2.jsonld
	securityV2 []byte
	//go:embed third_party/digitalbazaar.github.io/ed25519-signature-2020-v1.jsonld
	ed255192020 []byte
)

// Contexts contains JSON-LD contexts embedded into a Go binary.
// These cover the core credential vocabulary and known signature-suite vocabularies,
// so credentials and presentations can be processed without fetching anything remotely.
var Contexts = []ldcontext.Document{ //nolint:gochecknoglobals
	{
		URL:         "https://www.w3.org/2018/credentials/v1",
		DocumentURL: "https://www.w3.org/2018/credentials/v1",
		Content:     w3orgCredentials,
	},
	{
		URL:         "https://w3id.org/security/v1",
		DocumentURL: "https://w3c-ccg.github.io/security-vocab/contexts/security-v1.jsonld",
		Content:     securityV1,
	},
	{
		URL:         "https://w3id.org/security/v2",
		DocumentURL: "https://w3c-ccg.github.io/security-vocab/contexts/security-v2.jsonld",
		Content:     securityV2,
	},
	{
		URL:         "https://w3id.org/security/suites/ed25519-2020/v1",
		DocumentURL: "https://digitalbazaar.github.io/ed25519-signature-2020-context/contexts/ed25519-signature-2020-v1.jsonld", //nolint: lll
		Content:     ed255192020,
	},
}
