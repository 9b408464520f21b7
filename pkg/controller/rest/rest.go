/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/credgraph/credgraph-go/pkg/common/log"
	"github.com/credgraph/credgraph-go/pkg/controller/command"
)

var logger = log.New("credgraph/controller/rest")

// Handler http handler for each controller API endpoint.
type Handler interface {
	Path() string
	Method() string
	Handle() http.HandlerFunc
}

// genericErrorBody is the REST error response body.
type genericErrorBody struct {
	Code    command.Code `json:"code"`
	Message string       `json:"message"`
}

// Execute executes given command with args provided and writes the command
// error, if any, as a REST error response.
func Execute(exec command.Exec, rw http.ResponseWriter, req io.Reader) {
	err := exec(rw, req)
	if err != nil {
		SendError(rw, err)
	}
}

// SendError sends the command error as a REST error response. Command
// validation errors map to bad request status, execution errors to
// internal server error status.
func SendError(rw http.ResponseWriter, err command.Error) {
	switch err.Type() {
	case command.ValidationError:
		SendHTTPStatusError(rw, http.StatusBadRequest, err.Code(), err)
	default:
		SendHTTPStatusError(rw, http.StatusInternalServerError, err.Code(), err)
	}
}

// SendHTTPStatusError sends given HTTP status code to response with error body.
func SendHTTPStatusError(rw http.ResponseWriter, httpStatus int, code command.Code, err error) {
	rw.WriteHeader(httpStatus)

	e := json.NewEncoder(rw).Encode(genericErrorBody{
		Code:    code,
		Message: err.Error(),
	})
	if e != nil {
		logger.Errorf("Unable to send error response, %s", e)
	}
}
