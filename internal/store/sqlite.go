package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/lipsanen/tmemo/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DefaultFile is the cache database name used when none is configured.
const DefaultFile = ".tmemocache.db"

// SQLiteCache implements Cache using SQLite.
type SQLiteCache struct {
	db      *sqlx.DB
	entropy *rand.Rand
}

// fileRow mirrors a source_files row.
type fileRow struct {
	ID             string `db:"id"`
	Path           string `db:"path"`
	ModTime        int64  `db:"mod_time"`
	ParsingVersion int    `db:"parsing_version"`
	CardCount      int    `db:"card_count"`
	Cards          string `db:"cards"`
	UpdatedAt      string `db:"updated_at"`
}

// NewSQLiteCache opens or creates a SQLite cache at the given path.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteCache{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteCache) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// slogGooseLogger forwards goose output to slog. Fatalf does not exit.
type slogGooseLogger struct{}

func (slogGooseLogger) Printf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...))
}

func (slogGooseLogger) Fatalf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...))
}

// goose keeps its settings in package state.
var gooseMu sync.Mutex

func (s *SQLiteCache) migrate() error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(slogGooseLogger{})
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(s.db.DB, "migrations")
}

func (s *SQLiteCache) Get(ctx context.Context, path string) (*Entry, error) {
	var row fileRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, path, mod_time, parsing_version, card_count, cards, updated_at
		 FROM source_files WHERE path = ?`, path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}

	e := row.entry()
	if err := json.Unmarshal([]byte(row.Cards), &e.Cards); err != nil {
		return nil, fmt.Errorf("decode cards for %s: %w", path, err)
	}
	return &e, nil
}

func (s *SQLiteCache) Put(ctx context.Context, e Entry) error {
	cards := e.Cards
	if cards == nil {
		cards = []model.Card{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode cards: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO source_files (id, path, mod_time, parsing_version, card_count, cards, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   mod_time = excluded.mod_time,
		   parsing_version = excluded.parsing_version,
		   card_count = excluded.card_count,
		   cards = excluded.cards,
		   updated_at = excluded.updated_at`,
		s.newID(), e.Path, e.ModTime.UnixNano(), e.ParsingVersion, len(cards), string(data), now)
	if err != nil {
		return fmt.Errorf("put %s: %w", e.Path, err)
	}
	return nil
}

func (s *SQLiteCache) List(ctx context.Context) ([]Entry, error) {
	var rows []fileRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, path, mod_time, parsing_version, card_count, '' AS cards, updated_at
		 FROM source_files ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.entry())
	}
	return out, nil
}

func (s *SQLiteCache) Prune(ctx context.Context, keep []string) (int, error) {
	var res sql.Result
	var err error
	if len(keep) == 0 {
		res, err = s.db.ExecContext(ctx, `DELETE FROM source_files`)
	} else {
		query, args, inErr := sqlx.In(`DELETE FROM source_files WHERE path NOT IN (?)`, keep)
		if inErr != nil {
			return 0, inErr
		}
		res, err = s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	}
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (s *SQLiteCache) Close() error {
	return s.db.Close()
}

func (r fileRow) entry() Entry {
	e := Entry{
		Path:           r.Path,
		ModTime:        time.Unix(0, r.ModTime),
		ParsingVersion: r.ParsingVersion,
	}
	if t, err := time.Parse(time.RFC3339, r.UpdatedAt); err == nil {
		e.UpdatedAt = t
	}
	return e
}
