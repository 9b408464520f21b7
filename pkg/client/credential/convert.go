/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/credgraph/credgraph-go/pkg/doc/verifiable"
)

// convertChunkSize bounds how many credentials are reconstructed at once.
const convertChunkSize = 100

// ReconstructPresentationCredentials rebuilds JSON objects for every
// credential linked from the presentation. Credentials are processed in
// sequential chunks, each chunk fanned out concurrently; the first failure
// aborts the chunk and no further chunks are started.
func ReconstructPresentationCredentials(ctx context.Context,
	vp *verifiable.Presentation) ([]map[string]interface{}, error) {
	ids, err := vp.CredentialIDs()
	if err != nil {
		return nil, errors.Wrap(err, "get credential ids")
	}

	out := make([]map[string]interface{}, len(ids))

	for start := 0; start < len(ids); start += convertChunkSize {
		end := start + convertChunkSize
		if end > len(ids) {
			end = len(ids)
		}

		g, _ := errgroup.WithContext(ctx)

		for i := start; i < end; i++ {
			i := i

			g.Go(func() error {
				vc, err := vp.Credential(ids[i])
				if err != nil {
					return err
				}

				reconstructed, err := vc.Reconstruct()
				if err != nil {
					return err
				}

				out[i] = reconstructed

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, errors.Wrap(err, "reconstruct credentials")
		}
	}

	return out, nil
}
