package store

import (
	"context"
	"os"
)

// Stats holds cache statistics.
type Stats struct {
	DBPath      string `json:"db_path"`
	DBSizeBytes int64  `json:"db_size_bytes"`
	Files       int    `json:"files"`
	Cards       int    `json:"cards"`
	Stale       int    `json:"stale"`
}

// Stats returns cache statistics. Entries parsed by a parser version other
// than parsingVersion count as stale.
func (s *SQLiteCache) Stats(ctx context.Context, dbPath string, parsingVersion int) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	var row struct {
		Files int `db:"files"`
		Cards int `db:"cards"`
		Stale int `db:"stale"`
	}
	err := s.db.GetContext(ctx, &row, `
		SELECT COUNT(*) AS files,
		       COALESCE(SUM(card_count), 0) AS cards,
		       COALESCE(SUM(CASE WHEN parsing_version != ? THEN 1 ELSE 0 END), 0) AS stale
		FROM source_files`, parsingVersion)
	if err != nil {
		return st, err
	}
	st.Files, st.Cards, st.Stale = row.Files, row.Cards, row.Stale
	return st, nil
}
