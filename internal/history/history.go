// Package history keeps a sqlite log of handled conversation turns.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Turn is one fully processed user turn.
type Turn struct {
	ID               int64     `json:"id"`
	TraceID          string    `json:"trace_id"`
	Channel          string    `json:"channel"`
	Input            string    `json:"input"`
	Output           string    `json:"output"`
	Tools            string    `json:"tools"` // comma-joined tool names, empty when none
	DurationMS       int64     `json:"duration_ms"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	CreatedAt        time.Time `json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	trace_id TEXT NOT NULL,
	channel TEXT NOT NULL,
	input TEXT NOT NULL,
	output TEXT NOT NULL,
	tools TEXT NOT NULL DEFAULT '',
	duration_ms INTEGER NOT NULL DEFAULT 0,
	prompt_tokens INTEGER NOT NULL DEFAULT 0,
	completion_tokens INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_turns_created_at ON turns(created_at);
`

// Log is the interaction log.
type Log struct {
	db *sql.DB
}

// Open opens (and if needed creates) the log at path. Pass ":memory:"
// for an ephemeral log.
func Open(path string) (*Log, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record inserts one turn.
func (l *Log) Record(t *Turn) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	res, err := l.db.Exec(
		`INSERT INTO turns (trace_id, channel, input, output, tools, duration_ms, prompt_tokens, completion_tokens, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TraceID, t.Channel, t.Input, t.Output, t.Tools,
		t.DurationMS, t.PromptTokens, t.CompletionTokens,
		t.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record turn: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	return nil
}

// Recent returns the latest n turns, newest first.
func (l *Log) Recent(n int) ([]Turn, error) {
	rows, err := l.db.Query(
		`SELECT id, trace_id, channel, input, output, tools, duration_ms, prompt_tokens, completion_tokens, created_at
		 FROM turns ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var created string
		if err := rows.Scan(&t.ID, &t.TraceID, &t.Channel, &t.Input, &t.Output, &t.Tools,
			&t.DurationMS, &t.PromptTokens, &t.CompletionTokens, &created); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// CountToday returns how many turns were handled since local midnight.
func (l *Log) CountToday() (int, error) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM turns WHERE created_at >= ?`,
		midnight.UTC().Format(time.RFC3339Nano),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count turns: %w", err)
	}
	return count, nil
}

// ToolNames joins tool names for storage in a Turn.
func ToolNames(names []string) string {
	return strings.Join(names, ",")
}
