package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dowserhq/dowser/pkg/models"
)

// HistoryEntry is one recorded research session.
type HistoryEntry struct {
	ID           string
	Query        string
	Synthesis    string
	Iterations   int
	InputTokens  int64
	OutputTokens int64
	StartedAt    time.Time
}

// SaveResult records a completed research session with its token usage.
func (db *DB) SaveResult(state *models.ResearchState, inputTokens, outputTokens int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO sessions (id, query, synthesis, iterations, input_tokens, output_tokens, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, state.ID, state.OriginalQuery, state.FinalSynthesis, len(state.Iterations),
		inputTokens, outputTokens, state.StartedAt.UTC())
	if err != nil {
		return fmt.Errorf("save session %s: %w", state.ID, err)
	}
	return nil
}

// ListRecent returns up to limit sessions, most recent first.
func (db *DB) ListRecent(limit int) ([]HistoryEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.Query(`
		SELECT id, query, synthesis, iterations, input_tokens, output_tokens, started_at
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Synthesis, &e.Iterations,
			&e.InputTokens, &e.OutputTokens, &e.StartedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one session by ID. The boolean is false when no row matches.
func (db *DB) Get(id string) (HistoryEntry, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var e HistoryEntry
	err := db.conn.QueryRow(`
		SELECT id, query, synthesis, iterations, input_tokens, output_tokens, started_at
		FROM sessions WHERE id = ?
	`, id).Scan(&e.ID, &e.Query, &e.Synthesis, &e.Iterations,
		&e.InputTokens, &e.OutputTokens, &e.StartedAt)
	if err == sql.ErrNoRows {
		return HistoryEntry{}, false, nil
	}
	if err != nil {
		return HistoryEntry{}, false, fmt.Errorf("get session %s: %w", id, err)
	}
	return e, true, nil
}

// PurgeOlderThan deletes sessions started before the cutoff and returns the
// number removed.
func (db *DB) PurgeOlderThan(cutoff time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.Exec(`DELETE FROM sessions WHERE started_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return res.RowsAffected()
}
