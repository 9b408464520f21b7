/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package credential provides a client for remote credential services.
//
// The client speaks the HTTP issue/status/derive/query/verify verbs and
// discovers service endpoints through the well-known configuration
// document. Response bodies run through the payload size guard before
// being read.
package credential

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/credgraph/credgraph-go/pkg/common/log"
	"github.com/credgraph/credgraph-go/pkg/doc/rdf"
	"github.com/credgraph/credgraph-go/pkg/doc/verifiable"
)

var logger = log.New("credgraph/client/credential")

const (
	issuePath     = "/credentials/issue"
	statusPath    = "/credentials/status"
	derivePath    = "/credentials/derive"
	queryPath     = "/credentials/query"
	verifyPath    = "/credentials/verify"
	wellKnownPath = "/.well-known/vc-configuration.json"

	defaultTimeout = time.Minute
)

// httpClient represents an HTTP client.
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a remote credential service client.
type Client struct {
	endpoint      string
	httpClient    httpClient
	token         string
	retries       uint64
	retryInterval time.Duration
	timeout       time.Duration
	parseOpts     []verifiable.ParseOpt
}

// New returns a new credential service client for the given endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, errors.Wrap(err, "invalid endpoint")
	}

	c := &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		timeout:  defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	return c, nil
}

// Option configures the credential service client.
type Option func(c *Client)

// WithHTTPClient option is for custom http client.
func WithHTTPClient(client httpClient) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithToken option adds an authorization bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout option sets the timeout of the default http client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetry option retries failed requests with a constant backoff.
func WithRetry(retries uint64, interval time.Duration) Option {
	return func(c *Client) {
		c.retries = retries
		c.retryInterval = interval
	}
}

// WithParseOptions option passes parse options to the credential parser
// applied to service responses.
func WithParseOptions(opts ...verifiable.ParseOpt) Option {
	return func(c *Client) {
		c.parseOpts = opts
	}
}

// Issue sends the credential to the service for issuance and parses the result.
// A credential without an id gets a generated urn:uuid one.
func (c *Client) Issue(credential []byte) (*verifiable.Credential, error) {
	var doc map[string]interface{}

	if err := json.Unmarshal(credential, &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshal credential")
	}

	if id, ok := doc["id"].(string); !ok || id == "" {
		doc["id"] = "urn:uuid:" + uuid.New().String()
	}

	body, err := json.Marshal(issueRequest{Credential: doc})
	if err != nil {
		return nil, errors.Wrap(err, "marshal issue request")
	}

	respBytes, err := c.send(http.MethodPost, c.endpoint+issuePath, body)
	if err != nil {
		return nil, errors.Wrap(err, "issue credential")
	}

	return verifiable.ParseCredential(respBytes, c.parseOpts...)
}

// RevokeStatus asks the service to revoke the status of the given credential.
func (c *Client) RevokeStatus(credentialID, reason string) error {
	body, err := json.Marshal(statusRequest{CredentialID: credentialID, Reason: reason})
	if err != nil {
		return errors.Wrap(err, "marshal status request")
	}

	if _, err := c.send(http.MethodPost, c.endpoint+statusPath, body); err != nil {
		return errors.Wrap(err, "revoke status")
	}

	return nil
}

// Derive asks the service for a derived credential built from the given
// credential and reconstruction frame.
func (c *Client) Derive(credential, frame []byte) (*verifiable.Credential, error) {
	body, err := json.Marshal(deriveRequest{Credential: credential, Frame: frame})
	if err != nil {
		return nil, errors.Wrap(err, "marshal derive request")
	}

	respBytes, err := c.send(http.MethodPost, c.endpoint+derivePath, body)
	if err != nil {
		return nil, errors.Wrap(err, "derive credential")
	}

	return verifiable.ParseCredential(respBytes, c.parseOpts...)
}

// Query sends the raw query to the service and returns the matching documents.
func (c *Client) Query(query []byte) ([]json.RawMessage, error) {
	respBytes, err := c.send(http.MethodPost, c.endpoint+queryPath, query)
	if err != nil {
		return nil, errors.Wrap(err, "query credentials")
	}

	var results []json.RawMessage

	if err := json.Unmarshal(respBytes, &results); err != nil {
		return nil, errors.Wrap(err, "unmarshal query results")
	}

	return results, nil
}

// VerifyCredential sends the credential to the service's verifier and
// returns the reported checks.
func (c *Client) VerifyCredential(credential []byte) (*VerifyResult, error) {
	body, err := json.Marshal(verifyRequest{Credential: credential})
	if err != nil {
		return nil, errors.Wrap(err, "marshal verify request")
	}

	respBytes, err := c.send(http.MethodPost, c.endpoint+verifyPath, body)
	if err != nil {
		return nil, errors.Wrap(err, "verify credential")
	}

	var result VerifyResult

	if err := json.Unmarshal(respBytes, &result); err != nil {
		return nil, errors.Wrap(err, "unmarshal verify result")
	}

	return &result, nil
}

// Discover fetches the well-known credential service configuration for the domain.
func (c *Client) Discover(domain string) (*Configuration, error) {
	if _, err := url.ParseRequestURI(domain); err != nil {
		return nil, errors.Wrap(err, "invalid domain")
	}

	respBytes, err := c.send(http.MethodGet, strings.TrimSuffix(domain, "/")+wellKnownPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetch configuration")
	}

	var config Configuration

	if err := json.Unmarshal(respBytes, &config); err != nil {
		return nil, errors.Wrap(err, "unmarshal configuration")
	}

	return &config, nil
}

// SelectResults filters query results with a JSON path expression. Results
// the path does not apply to are skipped.
func SelectResults(results []json.RawMessage, jsonPath string) ([]interface{}, error) {
	builder := gval.Full(jsonpath.PlaceholderExtension())

	eval, err := builder.NewEvaluable(jsonPath)
	if err != nil {
		return nil, errors.Wrap(err, "build json path")
	}

	var selected []interface{}

	for _, result := range results {
		doc := interface{}(nil)

		if err := json.Unmarshal(result, &doc); err != nil {
			return nil, errors.Wrap(err, "unmarshal result")
		}

		value, err := eval(context.Background(), doc)
		if err != nil {
			if strings.Contains(err.Error(), "unknown key") {
				continue
			}

			return nil, errors.Wrap(err, "evaluate json path")
		}

		selected = append(selected, value)
	}

	return selected, nil
}

func (c *Client) send(method, endpoint string, body []byte) ([]byte, error) {
	if c.retries == 0 {
		return c.doRequest(method, endpoint, body)
	}

	var respBytes []byte

	err := backoff.Retry(func() error {
		var err error

		respBytes, err = c.doRequest(method, endpoint, body)

		return err
	}, backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), c.retries))

	return respBytes, err
}

func (c *Client) doRequest(method, endpoint string, body []byte) ([]byte, error) {
	var reqBody io.Reader

	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, endpoint, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "new HTTP request")
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "httpClient.Do")
	}

	defer closeResponseBody(resp.Body)

	if err := rdf.CheckContentLength(resp.ContentLength); err != nil {
		return nil, err
	}

	respBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("endpoint %s returned status '%d' and message '%s'",
			endpoint, resp.StatusCode, respBytes)
	}

	return respBytes, nil
}

func closeResponseBody(respBody io.Closer) {
	if err := respBody.Close(); err != nil {
		logger.Warnf("failed to close response body: %v", err)
	}
}
