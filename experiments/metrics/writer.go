package metrics

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DataFile is the name of the analysis log inside its directory.
const DataFile = "game_data.csv"

var dataHeader = []string{
	"game_state", "action", "outcome", "board_evaluation", "reward", "winner",
	"episode", "turn", "q_value", "q_value_change", "exploration", "current_turn",
	"agent", "run_id", "game_id",
}

// CSVRecorder appends one row per decision to an analysis log. The log is
// write-only; nothing in the module reads it back.
type CSVRecorder struct {
	file   *os.File
	writer *csv.Writer
	runID  string
	gameID string
}

// NewCSVRecorder opens (or creates) dir/game_data.csv for appending. The
// header is written only when the file is new.
func NewCSVRecorder(dir, runID string) (*CSVRecorder, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, DataFile)
	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, os.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open analysis log: %w", err)
	}

	w := &CSVRecorder{file: f, writer: csv.NewWriter(f), runID: runID}
	if isNew {
		if err := w.write(dataHeader); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write analysis log header: %w", err)
		}
	}
	return w, nil
}

// Path returns the file being written.
func (w *CSVRecorder) Path() string {
	return w.file.Name()
}

func (w *CSVRecorder) Record(record DecisionRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = w.runID
	}
	w.gameID = record.GameID

	row := []string{
		record.State,
		record.Action,
		record.Outcome,
		strconv.Itoa(record.Evaluation),
		strconv.FormatFloat(record.Reward, 'f', -1, 64),
		record.Winner,
		strconv.Itoa(record.Episode),
		strconv.Itoa(record.Turn),
		strconv.FormatFloat(record.QValue, 'f', -1, 64),
		strconv.FormatFloat(record.QValueChange, 'f', -1, 64),
		strconv.FormatBool(record.Exploration),
		record.CurrentTurn,
		record.Agent,
		runID,
		record.GameID,
	}
	if err := w.write(row); err != nil {
		return fmt.Errorf("failed to write decision row: %w", err)
	}
	return nil
}

// EndGame writes the end-of-game marker row.
func (w *CSVRecorder) EndGame(episode int) error {
	row := make([]string, len(dataHeader))
	row[0], row[1], row[2] = "---", "End of Game", "---"
	row[6] = strconv.Itoa(episode)
	row[13] = w.runID
	row[14] = w.gameID
	if err := w.write(row); err != nil {
		return fmt.Errorf("failed to write end of game row: %w", err)
	}
	return nil
}

func (w *CSVRecorder) write(row []string) error {
	if err := w.writer.Write(row); err != nil {
		return err
	}
	w.writer.Flush()
	return w.writer.Error()
}

func (w *CSVRecorder) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to flush analysis log: %w", err)
	}
	return w.file.Close()
}

// GameRecordsFile is written by WriteGameRecords.
const GameRecordsFile = "game_records.csv"

type GameRecord struct {
	ID    int
	White string // agent name
	Black string
	GameMetric
}

// WriteGameRecords writes one row per finished match game to
// dir/game_records.csv, replacing any previous file.
func WriteGameRecords(dir string, records []GameRecord) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(dir, GameRecordsFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"id", "white", "black", "starting_color", "winner", "turns", "start_time", "end_time", "duration"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			record.White,
			record.Black,
			record.StartingColor,
			record.Winner,
			strconv.Itoa(record.Turns),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	return nil
}
