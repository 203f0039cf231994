package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, closeFn, err := openStorage(ctx, &config.Config{StorageKind: config.StorageMemory})
		require.NoError(t, err)
		assert.Nil(t, s)
		assert.NoError(t, closeFn())
	})

	t.Run("file", func(t *testing.T) {
		cfg := &config.Config{StorageKind: config.StorageFile, DataDir: t.TempDir() + "/nested"}
		s, closeFn, err := openStorage(ctx, cfg)
		require.NoError(t, err)
		fs, ok := s.(*session.FileStorage)
		require.True(t, ok)
		assert.Equal(t, cfg.TokenFilePath(), fs.Path())
		assert.NoError(t, closeFn())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{StorageKind: config.StorageSQLite, DataDir: t.TempDir()}
		s, closeFn, err := openStorage(ctx, cfg)
		require.NoError(t, err)
		_, ok := s.(*session.SQLiteStorage)
		require.True(t, ok)

		require.NoError(t, s.Save(ctx, "tok"))
		token, found, err := s.Load(ctx)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "tok", token)
		assert.NoError(t, closeFn())
	})
}
