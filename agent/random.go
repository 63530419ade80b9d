package agent

import (
	"fmt"

	"territory/game"

	"golang.org/x/exp/rand"
)

// RandomAgent shoots the enemy King when it can and otherwise plays a
// uniformly random legal action. It is the baseline for evaluation matches.
type RandomAgent struct {
	name string
	rng  *rand.Rand
}

// NewRandomAgent returns a baseline agent; a nil rng seeds one from the clock.
func NewRandomAgent(name string, rng *rand.Rand) *RandomAgent {
	if rng == nil {
		rng = newRand()
	}
	return &RandomAgent{name: name, rng: rng}
}

func (a *RandomAgent) Name() string { return a.name }

func (a *RandomAgent) TakeTurn(g *game.Game) error {
	return playTurn(g, a.rng, a.decide)
}

func (a *RandomAgent) decide(g *game.Game) error {
	actions := g.LegalActions()
	if len(actions) == 0 {
		g.DeclareDraw()
		return nil
	}
	action, ok := kingShot(g, actions)
	if !ok {
		action = actions[a.rng.Intn(len(actions))]
	}
	if err := g.Apply(action); err != nil {
		return fmt.Errorf("agent %s chose %s: %w", a.name, action, err)
	}
	return nil
}
