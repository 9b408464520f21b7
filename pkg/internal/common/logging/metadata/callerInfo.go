/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"github.com/credgraph/credgraph-go/spi/log"
)

func newCallerInfo() *callerInfo {
	return &callerInfo{
		showcaller: map[callerInfoKey]bool{
			{defaultModuleName, log.CRITICAL}: true,
			{defaultModuleName, log.ERROR}:    true,
			{defaultModuleName, log.WARNING}:  true,
			{defaultModuleName, log.INFO}:     true,
			{defaultModuleName, log.DEBUG}:    true,
		},
	}
}

type callerInfoKey struct {
	module string
	level  log.Level
}

// callerInfo maintains module based caller info settings.
type callerInfo struct {
	showcaller map[callerInfoKey]bool
}

// ShowCallerInfo enables caller info for given module and level.
func (l *callerInfo) ShowCallerInfo(module string, level log.Level) {
	l.showcaller[callerInfoKey{module, level}] = true
}

// HideCallerInfo disables caller info for given module and level.
func (l *callerInfo) HideCallerInfo(module string, level log.Level) {
	l.showcaller[callerInfoKey{module, level}] = false
}

// IsCallerInfoEnabled returns true if caller info is enabled for given module and level.
func (l *callerInfo) IsCallerInfoEnabled(module string, level log.Level) bool {
	show, exists := l.showcaller[callerInfoKey{module, level}]
	if !exists {
		// no configuration exists for given module, fall back to defaults
		return l.showcaller[callerInfoKey{defaultModuleName, level}]
	}

	return show
}
