package agent

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"territory/game"

	"github.com/rs/zerolog/log"
)

// Key identifies one (board, action) pair of the value table.
type Key struct {
	State  game.Snapshot
	Action game.Action
}

// QTable maps (board, action) pairs to value estimates. Unseen pairs are 0.
type QTable struct {
	values map[Key]float64
}

func NewQTable() *QTable {
	return &QTable{values: make(map[Key]float64)}
}

func (q *QTable) Value(state game.Snapshot, action game.Action) float64 {
	return q.values[Key{State: state, Action: action}]
}

func (q *QTable) Set(state game.Snapshot, action game.Action, value float64) {
	q.values[Key{State: state, Action: action}] = value
}

// Best returns the highest value among actions in state, or 0 without actions.
func (q *QTable) Best(state game.Snapshot, actions []game.Action) float64 {
	if len(actions) == 0 {
		return 0
	}
	best := q.Value(state, actions[0])
	for _, a := range actions[1:] {
		if v := q.Value(state, a); v > best {
			best = v
		}
	}
	return best
}

func (q *QTable) Len() int {
	return len(q.values)
}

// Save writes the table to path as one gob blob, creating the directory.
func (q *QTable) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create q-table directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create q-table file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(q.values); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode q-table: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close q-table file: %w", err)
	}
	log.Info().Str("path", path).Int("entries", q.Len()).Msg("q-table saved")
	return nil
}

// LoadQTable reads a table written by Save.
func LoadQTable(path string) (*QTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open q-table: %w", err)
	}
	defer f.Close()

	values := make(map[Key]float64)
	if err := gob.NewDecoder(f).Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to decode q-table: %w", err)
	}
	log.Info().Str("path", path).Int("entries", len(values)).Msg("q-table loaded")
	return &QTable{values: values}, nil
}

// LoadOrEmpty loads the table at path, falling back to an empty one.
func LoadOrEmpty(path string) *QTable {
	q, err := LoadQTable(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("starting with an empty q-table")
		return NewQTable()
	}
	return q
}
