package metrics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// EpisodeRecord is one finished training or evaluation game.
type EpisodeRecord struct {
	ID           string
	RunID        string
	Episode      int
	StartTime    time.Time
	EndTime      time.Time
	Winner       string
	Turns        int
	Epsilon      float64
	TableSize    int
	Decisions    int
	Explorations int
	TotalReward  float64
}

// Store keeps episode records in a sqlite database.
type Store struct {
	db *sql.DB
}

const createEpisodesSQL = `
CREATE TABLE IF NOT EXISTS episodes (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	episode INTEGER NOT NULL,
	started_at DATETIME,
	ended_at DATETIME,
	winner TEXT,
	turns INTEGER,
	epsilon REAL,
	table_size INTEGER,
	decisions INTEGER,
	explorations INTEGER,
	total_reward REAL
);`

const createEpisodesIndexSQL = `CREATE INDEX IF NOT EXISTS episodes_run ON episodes (run_id, episode);`

// OpenStore opens the database at path, creating it and its directory if needed.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	for _, stmt := range []string{createEpisodesSQL, createEpisodesIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create episodes table: %w", err)
		}
	}

	log.Debug().Str("path", path).Msg("episode store opened")
	return &Store{db: db}, nil
}

func (s *Store) SaveEpisode(r EpisodeRecord) error {
	_, err := s.db.Exec(`
	INSERT INTO episodes (id, run_id, episode, started_at, ended_at, winner, turns, epsilon, table_size, decisions, explorations, total_reward)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.RunID, r.Episode, r.StartTime.UTC(), r.EndTime.UTC(), r.Winner, r.Turns,
		r.Epsilon, r.TableSize, r.Decisions, r.Explorations, r.TotalReward,
	)
	if err != nil {
		return fmt.Errorf("failed to save episode %d: %w", r.Episode, err)
	}
	return nil
}

// Episodes returns the episodes of a run in episode order.
func (s *Store) Episodes(runID string) ([]EpisodeRecord, error) {
	rows, err := s.db.Query(`
	SELECT id, run_id, episode, started_at, ended_at, winner, turns, epsilon, table_size, decisions, explorations, total_reward
	FROM episodes WHERE run_id = ? ORDER BY episode`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query episodes: %w", err)
	}
	defer rows.Close()

	var records []EpisodeRecord
	for rows.Next() {
		var r EpisodeRecord
		err := rows.Scan(&r.ID, &r.RunID, &r.Episode, &r.StartTime, &r.EndTime, &r.Winner, &r.Turns,
			&r.Epsilon, &r.TableSize, &r.Decisions, &r.Explorations, &r.TotalReward)
		if err != nil {
			return nil, fmt.Errorf("failed to scan episode: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read episodes: %w", err)
	}
	return records, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
