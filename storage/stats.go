package storage

import (
	"fmt"
)

// OverallStats represents aggregate metrics across recorded jobs
type OverallStats struct {
	TotalJobs      int
	TotalTyped     int64
	CompletedCount int
	CancelledCount int
	FailedCount    int
	AvgDurationMs  float64
	AvgCharsPerJob float64
}

// GetOverallStats retrieves aggregate metrics for the last N days
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*) as total_jobs,
			COALESCE(SUM(typed_count), 0) as total_typed,
			SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END) as completed_count,
			SUM(CASE WHEN outcome = 'cancelled' THEN 1 ELSE 0 END) as cancelled_count,
			SUM(CASE WHEN outcome = 'failed' THEN 1 ELSE 0 END) as failed_count,
			COALESCE(AVG(duration_ms), 0) as avg_duration_ms,
			COALESCE(AVG(char_count), 0) as avg_chars_per_job
		FROM pastes
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var stats OverallStats
	err := db.conn.QueryRow(query, days).Scan(
		&stats.TotalJobs,
		&stats.TotalTyped,
		&stats.CompletedCount,
		&stats.CancelledCount,
		&stats.FailedCount,
		&stats.AvgDurationMs,
		&stats.AvgCharsPerJob,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}

	return &stats, nil
}
