// Package history persists chat transcripts locally so a conversation
// survives across CLI invocations. The remote service never sees these
// rows; they are a client-side convenience.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/lhvu/memctl/internal/reason"
)

// Store is a SQLite-backed transcript log.
type Store struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// NewStore opens or creates the transcript database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Monotonic entropy keeps IDs ordered even within one millisecond,
	// so ORDER BY id is insertion order.
	s := &Store{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id         TEXT PRIMARY KEY,
		role       TEXT NOT NULL,
		text       TEXT NOT NULL,
		mode       TEXT,
		memories   INTEGER NOT NULL DEFAULT 0,
		tokens     INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		external   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_created ON turns(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one turn and returns it with its assigned ID.
func (s *Store) Append(ctx context.Context, turn reason.Turn) (reason.Turn, error) {
	turn.ID = s.newID()
	if turn.At.IsZero() {
		turn.At = time.Now().UTC()
	}

	external := 0
	if turn.External {
		external = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (id, role, text, mode, memories, tokens, latency_ms, external, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		turn.ID, turn.Role, turn.Text, turn.Mode, turn.Memories, turn.Tokens,
		turn.LatencyMs, external, turn.At.UTC().Format(time.RFC3339))
	if err != nil {
		return reason.Turn{}, fmt.Errorf("insert turn: %w", err)
	}
	return turn, nil
}

// Recent returns the last limit turns in chronological order.
func (s *Store) Recent(ctx context.Context, limit int) ([]reason.Turn, error) {
	if limit <= 0 {
		limit = 20
	}

	// ULIDs sort by time, so id DESC is newest-first.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, role, text, mode, memories, tokens, latency_ms, external, created_at
		 FROM turns ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []reason.Turn
	for rows.Next() {
		var t reason.Turn
		var mode sql.NullString
		var external int
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Role, &t.Text, &mode, &t.Memories, &t.Tokens,
			&t.LatencyMs, &external, &createdAt); err != nil {
			return nil, err
		}
		if mode.Valid {
			t.Mode = mode.String
		}
		t.External = external != 0
		t.At, _ = time.Parse(time.RFC3339, createdAt)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse newest-first into chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// Clear drops the whole transcript.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM turns`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
