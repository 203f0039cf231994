package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Pipeline sends JSON requests to the directory API and attaches the
// session's bearer token when one is present. Every call is a single
// attempt; there is no retry and no per-call timeout override.
type Pipeline struct {
	baseURL string
	apiKey  string
	session *session.Session
	http    *http.Client
	newID   func() string
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

// WithHTTPClient replaces the underlying client. Its transport is still
// wrapped for tracing.
func WithHTTPClient(c *http.Client) PipelineOption {
	return func(p *Pipeline) { p.http = c }
}

// WithAPIKey sends a static x-api-key header on every request.
func WithAPIKey(key string) PipelineOption {
	return func(p *Pipeline) { p.apiKey = key }
}

// NewPipeline builds a pipeline for baseURL bound to sess.
func NewPipeline(baseURL string, sess *session.Session, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		http:    &http.Client{},
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}

	base := p.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *p.http
	wrapped.Transport = otelhttp.NewTransport(base)
	p.http = &wrapped
	return p
}

// Session returns the session the pipeline reads its token from.
func (p *Pipeline) Session() *session.Session {
	return p.session
}

type errorBody struct {
	Error string `json:"error"`
}

// Do sends body (JSON-encoded when non-nil) and decodes a 2xx response into
// out when out is non-nil and the body is not empty.
func (p *Pipeline) Do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("%w: build %s %s: %v", ErrRequestFailed, method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.apiKey != "" {
		req.Header.Set(common.APIKeyHeader, p.apiKey)
	}
	requestID := p.newID()
	req.Header.Set(common.RequestIDHeader, requestID)
	if token, ok := p.session.Get().Get(); ok {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read %s %s: %w", ErrRequestFailed, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, RequestID: requestID}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			se.Message = eb.Error
		}
		return se
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", ErrRequestFailed, method, path, err)
	}
	return nil
}
