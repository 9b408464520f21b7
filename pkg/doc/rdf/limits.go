/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rdf

import (
	"fmt"
	"sync"
)

// DefaultMaxPayloadSize is the payload size limit applied until the process
// is configured otherwise.
const DefaultMaxPayloadSize = int64(10 * 1024 * 1024)

var payloadLimit = struct {
	sync.RWMutex
	max     int64
	enabled bool
}{max: DefaultMaxPayloadSize, enabled: true}

// SetMaxPayloadSize sets the process-wide maximum payload size in bytes.
// Non-positive values are rejected.
func SetMaxPayloadSize(n int64) error {
	if n <= 0 {
		return fmt.Errorf("max payload size must be a positive integer, got %d", n)
	}

	payloadLimit.Lock()
	defer payloadLimit.Unlock()

	payloadLimit.max = n
	payloadLimit.enabled = true

	return nil
}

// DisableMaxPayloadSize removes the payload size limit.
func DisableMaxPayloadSize() {
	payloadLimit.Lock()
	defer payloadLimit.Unlock()

	payloadLimit.enabled = false
}

// MaxPayloadSize returns the configured maximum payload size and whether
// the limit is enabled.
func MaxPayloadSize() (int64, bool) {
	payloadLimit.RLock()
	defer payloadLimit.RUnlock()

	return payloadLimit.max, payloadLimit.enabled
}

// CheckContentLength checks a transport-level declared body length against
// the configured maximum before the body is read. A negative declared length
// means the transport did not declare one; while a maximum is configured such
// a body is not safe to parse.
func CheckContentLength(declared int64) error {
	max, enabled := MaxPayloadSize()
	if !enabled {
		return nil
	}

	if declared < 0 {
		return fmt.Errorf("body with undeclared length is not safe to parse: max payload size is %d bytes", max)
	}

	if declared > max {
		return fmt.Errorf("body of %d bytes is not safe to parse: max payload size is %d bytes", declared, max)
	}

	return nil
}
