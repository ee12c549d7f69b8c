package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studychef/internal/modules/kitchen/domain"
	"studychef/internal/platform/id"

	_ "modernc.org/sqlite"
)

const historySchemaVersion = 1

// SQLiteHistoryStore appends every published event to an events ledger and
// answers per-day focus queries from it. Days are bucketed in location.
type SQLiteHistoryStore struct {
	db       *sql.DB
	idGen    id.Generator
	location *time.Location
}

func NewSQLiteHistoryStore(dbPath string, idGen id.Generator, location *time.Location) (*SQLiteHistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if location == nil {
		location = time.UTC
	}
	store := &SQLiteHistoryStore{db: db, idGen: idGen, location: location}
	if err := store.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) ensureSchema(ctx context.Context) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	const ddl = `
CREATE TABLE IF NOT EXISTS events (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  occurred_at TEXT NOT NULL,
  day TEXT NOT NULL,
  minutes INTEGER NOT NULL DEFAULT 0,
  payload_json TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_kind_day ON events(kind, day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", historySchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteHistoryStore) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event.Kind(), err)
	}
	minutes := 0
	if done, ok := event.(domain.FocusCompleted); ok {
		minutes = done.Minutes
	}
	at := event.At()
	const stmt = `
INSERT INTO events (id, kind, occurred_at, day, minutes, payload_json)
VALUES (?, ?, ?, ?, ?, ?);
`
	_, err = s.db.ExecContext(ctx, stmt,
		s.idGen.New(),
		string(event.Kind()),
		at.UTC().Format(time.RFC3339Nano),
		domain.DateOf(at.In(s.location)).String(),
		minutes,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) DailyFocus(ctx context.Context, from, to domain.Date) ([]domain.DayStat, error) {
	const query = `
SELECT day, SUM(minutes), COUNT(*)
FROM events
WHERE kind = ? AND day >= ? AND day <= ?
GROUP BY day
ORDER BY day;
`
	rows, err := s.db.QueryContext(ctx, query, string(domain.EventFocusCompleted), from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("query daily focus: %w", err)
	}
	defer rows.Close()

	var out []domain.DayStat
	for rows.Next() {
		var day string
		var stat domain.DayStat
		if err := rows.Scan(&day, &stat.FocusMinutes, &stat.Sessions); err != nil {
			return nil, fmt.Errorf("scan daily focus: %w", err)
		}
		date, err := domain.ParseDate(day)
		if err != nil {
			return nil, err
		}
		stat.Date = date
		out = append(out, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily focus: %w", err)
	}
	return out, nil
}
