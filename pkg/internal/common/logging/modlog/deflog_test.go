/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package modlog

import (
	"testing"

	"github.com/credgraph/credgraph-go/pkg/internal/common/logging/metadata"
	"github.com/credgraph/credgraph-go/spi/log"
)

func TestDefLog(t *testing.T) {
	const module = "sample-module"

	defLog := NewDefLog(module)

	logger := NewModLog(defLog, module)
	SwitchLogOutputToBuffer(logger)
	VerifyDefaultLogging(t, logger, module, metadata.SetLevel)
}

func TestDefLogWithoutCallerInfo(t *testing.T) {
	const module = "sample-module-no-info"

	defLog := NewDefLog(module)

	logger := NewModLog(defLog, module)
	SwitchLogOutputToBuffer(logger)

	// disable caller info and test
	metadata.HideCallerInfo(module, log.INFO)
	logger.Infof(msgFormat, msgArg1, msgArg2)
	matchDefLogOutput(t, module, log.INFO, log.INFO, false)
}
