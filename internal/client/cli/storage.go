package cli

import (
	"context"

	"github.com/dmitrijs2005/userdesk/internal/client/config"
	"github.com/dmitrijs2005/userdesk/internal/client/localdb"
	"github.com/dmitrijs2005/userdesk/internal/client/session"
	"github.com/dmitrijs2005/userdesk/internal/filex"
)

func noClose() error { return nil }

// openStorage picks the token store for c.StorageKind. Memory means no
// storage at all: the session lives only as long as the process.
func openStorage(ctx context.Context, c *config.Config) (session.Storage, func() error, error) {
	switch c.StorageKind {
	case config.StorageMemory:
		return nil, noClose, nil
	case config.StorageFile:
		if _, err := filex.EnsureDir(c.DataDir); err != nil {
			return nil, nil, err
		}
		return session.NewFileStorage(c.TokenFilePath()), noClose, nil
	default:
		if _, err := filex.EnsureDir(c.DataDir); err != nil {
			return nil, nil, err
		}
		db, err := localdb.InitDatabase(ctx, c.TokenDBPath())
		if err != nil {
			return nil, nil, err
		}
		return session.NewSQLiteStorage(db), db.Close, nil
	}
}
