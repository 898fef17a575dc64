package storage

import (
	"fmt"
	"time"
)

// Paste represents one finished typing job's metrics. No clipboard content
// appears here, only counts and timings.
type Paste struct {
	ID         int64
	Timestamp  time.Time
	JobID      int64
	Speed      string
	CharCount  int
	TypedCount int
	ChunkCount int
	DurationMs int64
	Outcome    string
}

// SavePaste saves a finished job's metrics to the database
func (db *DB) SavePaste(p *Paste) error {
	query := `
		INSERT INTO pastes (
			job_id, speed, char_count, typed_count, chunk_count,
			duration_ms, outcome
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.conn.Exec(query,
		p.JobID, p.Speed, p.CharCount, p.TypedCount, p.ChunkCount,
		p.DurationMs, p.Outcome,
	)
	if err != nil {
		return fmt.Errorf("failed to save paste: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	p.ID = id
	return nil
}

// GetPastes retrieves recorded jobs with pagination, newest first
func (db *DB) GetPastes(limit, offset int) ([]Paste, error) {
	query := `
		SELECT
			id, timestamp, job_id, speed, char_count, typed_count,
			chunk_count, duration_ms, outcome
		FROM pastes
		ORDER BY timestamp DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.conn.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query pastes: %w", err)
	}
	defer rows.Close()

	var pastes []Paste
	for rows.Next() {
		var p Paste
		err := rows.Scan(
			&p.ID, &p.Timestamp, &p.JobID, &p.Speed, &p.CharCount,
			&p.TypedCount, &p.ChunkCount, &p.DurationMs, &p.Outcome,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan paste: %w", err)
		}
		pastes = append(pastes, p)
	}

	return pastes, rows.Err()
}

// GetPasteCount returns the total number of recorded jobs
func (db *DB) GetPasteCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM pastes").Scan(&count)
	return count, err
}
