package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/starfall/internal/core"
)

// RoundRecord is a persisted round summary.
type RoundRecord struct {
	ID        int64
	SessionID string // Empty for local play
	core.RoundSummary
	CreatedAt time.Time
}

// SaveRound records a finished round. Saving the same round ID twice is a
// no-op, so platforms may call it on every frame the round is over.
func (s *Store) SaveRound(sessionID string, sum core.RoundSummary) error {
	if sum.ID == "" {
		return errors.New("storage: round summary has no ID")
	}
	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (round_id, game_id, session_id, number, score, end_reason, hazards, batches, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(round_id) DO NOTHING`,
		sum.ID,
		sum.Game,
		sessionID,
		sum.Number,
		sum.Score,
		sum.Reason,
		sum.Hazards,
		sum.Batches,
		sum.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save round: %w", err)
	}
	return nil
}

// RoundByID retrieves a round by its round ID. Returns nil if absent.
func (s *Store) RoundByID(roundID string) (*RoundRecord, error) {
	row := s.db.QueryRow(roundSelect+` WHERE round_id = ?`, roundID)
	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return r, nil
}

// RecentRounds retrieves the most recent rounds for a game.
func (s *Store) RecentRounds(gameID string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		roundSelect+` WHERE game_id = ? ORDER BY id DESC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// RoundStats aggregates round history by end reason.
type RoundStats struct {
	Rounds   int
	TimeUps  int
	Hazards  int // Rounds lost to a hazard
	Batches  int // Star batches cleared across all rounds
	PlayTime time.Duration
}

// GetRoundStats summarizes every round recorded for a game.
func (s *Store) GetRoundStats(gameID string) (*RoundStats, error) {
	var st RoundStats
	var ms int64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN end_reason = 'time_up' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN end_reason = 'hazard' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(batches), 0),
		        COALESCE(SUM(duration_ms), 0)
		 FROM rounds WHERE game_id = ?`,
		gameID,
	).Scan(&st.Rounds, &st.TimeUps, &st.Hazards, &st.Batches, &ms)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get round stats: %w", err)
	}
	st.PlayTime = time.Duration(ms) * time.Millisecond
	return &st, nil
}

const roundSelect = `SELECT id, round_id, game_id, session_id, number, score,
	end_reason, hazards, batches, duration_ms, created_at FROM rounds`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(sc scanner) (*RoundRecord, error) {
	var r RoundRecord
	var ms int64
	var createdAt any
	if err := sc.Scan(
		&r.ID,
		&r.RoundSummary.ID,
		&r.Game,
		&r.SessionID,
		&r.Number,
		&r.Score,
		&r.Reason,
		&r.RoundSummary.Hazards,
		&r.Batches,
		&ms,
		&createdAt,
	); err != nil {
		return nil, err
	}
	r.Duration = time.Duration(ms) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}
