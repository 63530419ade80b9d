package metrics

import (
	"sync"
	"time"
)

// DecisionRecord is one agent decision: the board before it, what was done
// and what it earned.
type DecisionRecord struct {
	RunID        string
	GameID       string
	Episode      int
	Turn         int // steady-state turns completed in this game
	Agent        string
	State        string // board snapshot before the action
	Action       string
	Outcome      string
	Evaluation   int // evaluator score after the action
	Reward       float64
	Winner       string
	QValue       float64
	QValueChange float64
	Exploration  bool
	CurrentTurn  string // turn marker after the action
}

type GameMetric struct {
	StartingColor string
	Winner        string
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	Turns         int
}

// Summary aggregates the decisions recorded for one game.
type Summary struct {
	Decisions    int
	Explorations int
	TotalReward  float64
}

// Recorder receives decisions as they happen and a marker when a game ends.
type Recorder interface {
	Record(record DecisionRecord) error
	EndGame(episode int) error
}

// Collector keeps a running Summary of the current game and the summaries
// of every finished one.
type Collector struct {
	mu       sync.Mutex
	current  Summary
	finished []Summary
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Record(record DecisionRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.Decisions++
	if record.Exploration {
		c.current.Explorations++
	}
	c.current.TotalReward += record.Reward
	return nil
}

func (c *Collector) EndGame(int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.finished = append(c.finished, c.current)
	c.current = Summary{}
	return nil
}

// Last returns the summary of the most recently finished game.
func (c *Collector) Last() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.finished) == 0 {
		return Summary{}
	}
	return c.finished[len(c.finished)-1]
}

// Summaries returns one Summary per finished game, oldest first.
func (c *Collector) Summaries() []Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Summary(nil), c.finished...)
}

type multiRecorder []Recorder

// Multi fans every call out to all recorders, returning the first error.
func Multi(recorders ...Recorder) Recorder {
	return multiRecorder(recorders)
}

func (m multiRecorder) Record(record DecisionRecord) error {
	var first error
	for _, r := range m {
		if err := r.Record(record); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m multiRecorder) EndGame(episode int) error {
	var first error
	for _, r := range m {
		if err := r.EndGame(episode); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type dummyRecorder struct{}

func NewDummyRecorder() Recorder {
	return &dummyRecorder{}
}

func (r *dummyRecorder) Record(DecisionRecord) error { return nil }
func (r *dummyRecorder) EndGame(int) error           { return nil }
