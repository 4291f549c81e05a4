// Package httpclient defines the HTTP transport contract the ADEPT core
// consumes (§6 of the spec) and a net/http-backed implementation of it.
// Tests substitute a fake or an httptest.Server-backed client, mirroring the
// teacher's NewFetcherFromClient testability pattern.
package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Method is an HTTP method the protocol uses. Only GET and POST appear
// anywhere in the ADEPT wire protocol.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// Content is the optional request body of a POST.
type Content struct {
	ContentType string
	Body        []byte
}

// Request is a single HTTP operation as the core sees it: method, URL,
// user agent, and an optional body. Implementations must not rewrite
// headers, retry, or follow non-standard redirects.
type Request struct {
	Method    Method
	URL       string
	UserAgent string
	Content   *Content
}

// Response is the raw result of a Request: status code, content type, and
// body bytes. Higher layers (internal/adept) are responsible for validating
// status/content-type and parsing the body.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// HttpClient is the transport capability the core depends on. Standard
// HTTPS only; no SAM/onion/other overlay transport is in scope.
type HttpClient interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// Client is the production HttpClient, backed by a plain *http.Client.
type Client struct {
	hc *http.Client
}

// New returns a Client with a conservative per-request timeout, matching the
// discipline of the teacher's transportFromGarlic (a bounded deadline on
// every request rather than relying on the caller to set one).
func New() *Client {
	return &Client{hc: &http.Client{Timeout: 30 * time.Second}}
}

// NewFromHTTPClient wraps an existing *http.Client. Used by tests to point
// at an httptest.Server.
func NewFromHTTPClient(hc *http.Client) *Client {
	return &Client{hc: hc}
}

func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	var body io.Reader
	if req.Content != nil {
		body = bytes.NewReader(req.Content.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.URL, body)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: build request: %w", err)
	}
	httpReq.Header.Set("User-Agent", req.UserAgent)
	if req.Content != nil {
		httpReq.Header.Set("Content-Type", req.Content.ContentType)
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: %s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("httpclient: read body %s %s: %w", req.Method, req.URL, err)
	}

	return Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
