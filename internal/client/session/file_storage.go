package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// FileStorage keeps the token in a single file next to a lock file, so two
// console processes never interleave writes.
type FileStorage struct {
	path string
	lock *flock.Flock
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path, lock: flock.New(path + ".lock")}
}

func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) withLock(ctx context.Context, exclusive bool, fn func() error) error {
	var (
		locked bool
		err    error
	)
	if exclusive {
		locked, err = s.lock.TryLockContext(ctx, 50*time.Millisecond)
	} else {
		locked, err = s.lock.TryRLockContext(ctx, 50*time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", s.path, err)
	}
	if !locked {
		return fmt.Errorf("failed to lock %s", s.path)
	}
	defer s.lock.Unlock()
	return fn()
}

func (s *FileStorage) Load(ctx context.Context) (token string, ok bool, err error) {
	if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	err = s.withLock(ctx, false, func() error {
		b, err := os.ReadFile(s.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = strings.TrimSpace(string(b))
		ok = token != ""
		return nil
	})
	return token, ok, err
}

// Save replaces the file atomically via rename.
func (s *FileStorage) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	return s.withLock(ctx, true, func() error {
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
			return fmt.Errorf("failed to write token: %w", err)
		}
		if err := os.Rename(tmp, s.path); err != nil {
			return fmt.Errorf("failed to replace token: %w", err)
		}
		return nil
	})
}

func (s *FileStorage) Remove(ctx context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return s.withLock(ctx, true, func() error {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove token: %w", err)
		}
		return nil
	})
}
