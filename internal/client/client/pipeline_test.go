package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	header http.Header
	method string
	path   string
}

func captureServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.header = r.Header.Clone()
		c.method = r.Method
		c.path = r.URL.RequestURI()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func TestPipeline_BearerOnlyWithToken(t *testing.T) {
	ctx := context.Background()
	srv, c := captureServer(t, http.StatusOK, `{}`)
	sess := session.New(ctx, nil)
	p := NewPipeline(srv.URL+"/", sess)

	require.NoError(t, p.Do(ctx, http.MethodGet, "/users", nil, nil))
	assert.Empty(t, c.header.Get(common.AuthorizationHeader))
	assert.Equal(t, "/users", c.path)

	sess.Set(ctx, "QpwL5tke4Pnpja7X4")
	require.NoError(t, p.Do(ctx, http.MethodGet, "/users", nil, nil))
	assert.Equal(t, "Bearer QpwL5tke4Pnpja7X4", c.header.Get(common.AuthorizationHeader))

	sess.Clear(ctx)
	require.NoError(t, p.Do(ctx, http.MethodGet, "/users", nil, nil))
	assert.Empty(t, c.header.Get(common.AuthorizationHeader))
}

func TestPipeline_Headers(t *testing.T) {
	ctx := context.Background()
	srv, c := captureServer(t, http.StatusOK, `{}`)
	p := NewPipeline(srv.URL, session.New(ctx, nil), WithAPIKey("reqres-free-v1"))
	p.newID = func() string { return "rid-1" }

	require.NoError(t, p.Do(ctx, http.MethodPost, "/login", map[string]string{"a": "b"}, nil))
	assert.Equal(t, "reqres-free-v1", c.header.Get(common.APIKeyHeader))
	assert.Equal(t, "rid-1", c.header.Get(common.RequestIDHeader))
	assert.Equal(t, "application/json", c.header.Get("Content-Type"))
	assert.Equal(t, http.MethodPost, c.method)
}

func TestPipeline_StatusError(t *testing.T) {
	ctx := context.Background()
	srv, _ := captureServer(t, http.StatusBadRequest, `{"error":"user not found"}`)
	p := NewPipeline(srv.URL, session.New(ctx, nil))
	p.newID = func() string { return "rid-2" }

	err := p.Do(ctx, http.MethodGet, "/users/1", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "user not found", se.Message)
	assert.Equal(t, "rid-2", se.RequestID)
	assert.Contains(t, se.Error(), "status 400: user not found")
}

func TestPipeline_StatusErrorWithoutBody(t *testing.T) {
	ctx := context.Background()
	srv, _ := captureServer(t, http.StatusNotFound, ``)
	p := NewPipeline(srv.URL, session.New(ctx, nil))

	err := p.Do(ctx, http.MethodGet, "/users/23", nil, nil)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Equal(t, "GET /users/23: status 404", err.Error())
}

func TestPipeline_TransportError(t *testing.T) {
	ctx := context.Background()
	srv, _ := captureServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	err := NewPipeline(url, session.New(ctx, nil)).Do(ctx, http.MethodGet, "/users", nil, nil)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.Zero(t, StatusCode(err))
}

func TestPipeline_DecodeFailure(t *testing.T) {
	ctx := context.Background()
	srv, _ := captureServer(t, http.StatusOK, `not json`)

	var out map[string]any
	err := NewPipeline(srv.URL, session.New(ctx, nil)).Do(ctx, http.MethodGet, "/users", nil, &out)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestPipeline_NoContentIsFine(t *testing.T) {
	ctx := context.Background()
	srv, _ := captureServer(t, http.StatusNoContent, ``)

	var out map[string]any
	assert.NoError(t, NewPipeline(srv.URL, session.New(ctx, nil)).Do(ctx, http.MethodDelete, "/users/2", nil, &out))
	assert.Nil(t, out)
}
