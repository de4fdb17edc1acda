package cache

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite is the durable layer; summaries survive restarts of the process.
// An expires_at of zero means the row never expires.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// embedded migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db, now: time.Now}, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLite) Name() string {
	return "sqlite"
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Get(ctx context.Context, key string) (entity.DatasetSummary, bool, error) {
	var (
		payload   []byte
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, expires_at FROM dataset_summary_cache WHERE cache_key = ?`, key,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.DatasetSummary{}, false, nil
	}
	if err != nil {
		return entity.DatasetSummary{}, false, err
	}

	if expiresAt != 0 && s.now().UnixMilli() >= expiresAt {
		return entity.DatasetSummary{}, false, nil
	}

	summary, err := decode(payload)
	if err != nil {
		return entity.DatasetSummary{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return summary, true, nil
}

func (s *SQLite) Put(ctx context.Context, key string, summary entity.DatasetSummary, ttl time.Duration) error {
	payload, err := encode(summary)
	if err != nil {
		return err
	}

	var expiresAt int64
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixMilli()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dataset_summary_cache (cache_key, payload, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			payload = excluded.payload,
			expires_at = excluded.expires_at`,
		key, payload, expiresAt,
	)
	return err
}

func (s *SQLite) Prune(ctx context.Context, now time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM dataset_summary_cache WHERE expires_at != 0 AND expires_at <= ?`, now.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	return int(n), err
}
