package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/userdesk/internal/common"
	"github.com/dmitrijs2005/userdesk/internal/dbx"
)

// SQLiteStorage keeps the token in the local metadata table.
type SQLiteStorage struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db, now: time.Now}
}

func (s *SQLiteStorage) Load(ctx context.Context) (string, bool, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenKey)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

// Save writes the token and its timestamp in one transaction.
func (s *SQLiteStorage) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenSavedAtKey, []byte(s.now().UTC().Format(time.RFC3339)))
	})
}

func (s *SQLiteStorage) Remove(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, common.TokenKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.TokenSavedAtKey)
	})
}

// SavedAt returns when the current token was stored, if known.
func (s *SQLiteStorage) SavedAt(ctx context.Context) (time.Time, bool) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.TokenSavedAtKey)
	if err != nil || v == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
