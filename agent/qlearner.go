package agent

import (
	"fmt"
	"math"

	"territory/experiments/metrics"
	"territory/game"
	"territory/meta"
	"territory/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Decision outcomes.
const (
	OutcomeApplied = "applied"
	OutcomeKingHit = "king_hit"
	OutcomeWin     = "win"
	OutcomeDraw    = "draw"
)

// Decision reports one action taken by a QLearner.
type Decision struct {
	Action       game.Action
	Outcome      string
	Heuristic    bool
	Exploration  bool
	Reward       float64
	QValue       float64
	QValueChange float64
}

type Option func(a *QLearner)

func WithAlpha(alpha float64) Option {
	return func(a *QLearner) {
		if alpha > 0 && alpha <= 1 {
			a.alpha = alpha
		}
	}
}

func WithGamma(gamma float64) Option {
	return func(a *QLearner) {
		if gamma >= 0 && gamma <= 1 {
			a.gamma = gamma
		}
	}
}

func WithEpsilon(epsilon float64) Option {
	return func(a *QLearner) {
		if epsilon >= 0 && epsilon <= 1 {
			a.epsilon = epsilon
		}
	}
}

func WithEpsilonDecay(decay float64) Option {
	return func(a *QLearner) {
		if decay > 0 && decay <= 1 {
			a.epsilonDecay = decay
		}
	}
}

func WithMinEpsilon(floor float64) Option {
	return func(a *QLearner) {
		if floor >= 0 && floor <= 1 {
			a.minEpsilon = floor
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(a *QLearner) {
		if rng != nil {
			a.rng = rng
		}
	}
}

func WithRecorder(recorder metrics.Recorder) Option {
	return func(a *QLearner) {
		if recorder != nil {
			a.recorder = recorder
		}
	}
}

// WithLearning switches value updates on or off.
func WithLearning(learning bool) Option {
	return func(a *QLearner) {
		a.learning = learning
	}
}

// WithRunID stamps recorded decisions with a training run id.
func WithRunID(runID string) Option {
	return func(a *QLearner) {
		a.runID = runID
	}
}

// QLearner is a tabular Q-learning agent. Several learners may share one
// table, as in self-play training.
type QLearner struct {
	name         string
	table        *QTable
	alpha        float64
	gamma        float64
	epsilon      float64
	epsilonDecay float64
	minEpsilon   float64
	learning     bool
	rng          *rand.Rand
	recorder     metrics.Recorder
	runID        string
	episode      int
	gameID       string
}

// NewQLearner returns a learning agent. The table is required.
func NewQLearner(name string, table *QTable, options ...Option) *QLearner {
	if table == nil {
		panic("Must provide a q-table")
	}
	a := &QLearner{ // Default values
		name:         name,
		table:        table,
		alpha:        meta.ALPHA,
		gamma:        meta.GAMMA,
		epsilon:      meta.EPSILON,
		epsilonDecay: meta.EPSILON_DECAY,
		minEpsilon:   meta.MIN_EPSILON,
		learning:     true,
		recorder:     metrics.NewDummyRecorder(),
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = newRand()
	}
	return a
}

// NewEvaluationAgent returns a greedy agent that never explores or learns.
func NewEvaluationAgent(name string, table *QTable, options ...Option) *QLearner {
	options = append(options, WithEpsilon(0), WithLearning(false))
	return NewQLearner(name, table, options...)
}

func (a *QLearner) Name() string     { return a.name }
func (a *QLearner) Epsilon() float64 { return a.epsilon }
func (a *QLearner) Table() *QTable   { return a.table }
func (a *QLearner) Learning() bool   { return a.learning }

// BeginEpisode sets the counters stamped on recorded decisions.
func (a *QLearner) BeginEpisode(episode int, gameID string) {
	a.episode = episode
	a.gameID = gameID
}

// EndEpisode decays epsilon toward its floor.
func (a *QLearner) EndEpisode() {
	a.epsilon = math.Max(a.minEpsilon, a.epsilon*a.epsilonDecay)
}

func (a *QLearner) TakeTurn(g *game.Game) error {
	return playTurn(g, a.rng, func(g *game.Game) error {
		_, err := a.Decide(g)
		return err
	})
}

// Decide takes one action for the active color. Without any legal action
// the game is declared a draw.
func (a *QLearner) Decide(g *game.Game) (Decision, error) {
	if g.GameOver() {
		return Decision{}, game.ErrGameOver
	}
	if g.InitialPhase() {
		return Decision{}, fmt.Errorf("%w: initial placement in progress", game.ErrWrongPhase)
	}
	color := g.ActiveColor()
	state := g.Snapshot()
	actions := g.LegalActions()
	if len(actions) == 0 {
		g.DeclareDraw()
		d := Decision{Outcome: OutcomeDraw}
		a.record(g, state, d)
		return d, nil
	}

	d := a.choose(g, state, actions)
	before := g.Score()
	kingHit := g.HitsKing(d.Action)
	if err := g.Apply(d.Action); err != nil {
		return Decision{}, fmt.Errorf("agent %s chose %s: %w", a.name, d.Action, err)
	}

	won := g.GameOver() && g.Winner() == color
	d.Reward = Reward(before, g.Score(), kingHit, won)
	switch {
	case won:
		d.Outcome = OutcomeWin
	case kingHit:
		d.Outcome = OutcomeKingHit
	default:
		d.Outcome = OutcomeApplied
	}

	if a.learning {
		d.QValueChange = a.update(state, d.Action, d.Reward, g.Snapshot(), g.LegalActions())
	}
	d.QValue = a.table.Value(state, d.Action)
	a.record(g, state, d)
	return d, nil
}

// choose applies the heuristics, then epsilon-greedy over the table.
func (a *QLearner) choose(g *game.Game, state game.Snapshot, actions []game.Action) Decision {
	if shot, ok := kingShot(g, actions); ok {
		return Decision{Action: shot, Heuristic: true}
	}
	if upgrade, ok := threatUpgrade(g, actions); ok {
		return Decision{Action: upgrade, Heuristic: true}
	}
	if a.rng.Float64() < a.epsilon {
		return Decision{Action: actions[a.rng.Intn(len(actions))], Exploration: true}
	}
	best := utils.MaxIndices(actions, func(action game.Action) float64 {
		return a.table.Value(state, action)
	})
	return Decision{Action: actions[best[a.rng.Intn(len(best))]]}
}

// update moves the value of (state, action) toward the one-step target and
// returns the size of the change.
func (a *QLearner) update(state game.Snapshot, action game.Action, reward float64, next game.Snapshot, nextActions []game.Action) float64 {
	current := a.table.Value(state, action)
	target := reward + a.gamma*a.table.Best(next, nextActions)
	updated := current + a.alpha*(target-current)
	a.table.Set(state, action, updated)
	return math.Abs(updated - current)
}

func (a *QLearner) record(g *game.Game, state game.Snapshot, d Decision) {
	record := metrics.DecisionRecord{
		RunID:        a.runID,
		GameID:       a.gameID,
		Episode:      a.episode,
		Turn:         g.TurnsPlayed(),
		Agent:        a.name,
		State:        state.String(),
		Action:       d.Action.String(),
		Outcome:      d.Outcome,
		Evaluation:   g.Score(),
		Reward:       d.Reward,
		QValue:       d.QValue,
		QValueChange: d.QValueChange,
		Exploration:  d.Exploration,
		CurrentTurn:  g.Turn().String(),
	}
	if d.Outcome == OutcomeDraw {
		record.Action = "none"
	}
	if g.GameOver() && g.Winner() != game.NoColor {
		record.Winner = g.Winner().String()
	}
	if err := a.recorder.Record(record); err != nil {
		log.Warn().Err(err).Str("agent", a.name).Msg("failed to record decision")
	}
}

// Reward scores one applied action: a win and a King hit pay fixed amounts,
// anything else the size of the evaluation swing it caused. The win
// overrides the King hit bonus.
func Reward(before, after int, kingHit, won bool) float64 {
	switch {
	case won:
		return meta.WIN_REWARD
	case kingHit:
		return meta.KING_HIT_REWARD
	}
	return math.Abs(float64(after - before))
}
