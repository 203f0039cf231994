// Package session holds the console's single session token and the gate
// that decides whether protected commands may run.
//
// A Session is an explicit value: it is created once, passed to the request
// pipeline and the services, and never read from global state. Durability
// is delegated to a Storage; persistence failures never fail the caller,
// the in-memory value stays authoritative for the process lifetime.
package session

import (
	"context"
	"sync"

	"github.com/samber/mo"
)

// Storage persists at most one token under a fixed key. Load reports
// ok=false when nothing is stored.
type Storage interface {
	Load(ctx context.Context) (token string, ok bool, err error)
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// Session is safe for concurrent use.
type Session struct {
	mu         sync.RWMutex
	token      mo.Option[string]
	storage    Storage
	storageErr error
}

// New returns a session restored from storage. A nil storage gives a
// memory-only session; a failing Load gives an empty one.
func New(ctx context.Context, storage Storage) *Session {
	s := &Session{token: mo.None[string](), storage: storage}
	if storage == nil {
		return s
	}
	token, ok, err := storage.Load(ctx)
	switch {
	case err != nil:
		s.storageErr = err
	case ok && token != "":
		s.token = mo.Some(token)
	}
	return s
}

// Set replaces the current token. An empty token clears the session.
func (s *Session) Set(ctx context.Context, token string) {
	if token == "" {
		s.Clear(ctx)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = mo.Some(token)
	if s.storage != nil {
		s.storageErr = s.storage.Save(ctx, token)
	}
}

// Get returns the current token or None.
func (s *Session) Get() mo.Option[string] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear forgets the token.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = mo.None[string]()
	if s.storage != nil {
		s.storageErr = s.storage.Remove(ctx)
	}
}

// IsAuthenticated is the session gate: a present token is enough. The token
// is not validated, an expired one still passes and only fails on the next
// remote call.
func (s *Session) IsAuthenticated() bool {
	return s.Get().IsPresent()
}

// LastStorageError returns the error of the most recent storage operation,
// or nil. It is informational only.
func (s *Session) LastStorageError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storageErr
}
