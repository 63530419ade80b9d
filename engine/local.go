package engine

import (
	"territory/agent"
	"territory/game"
	"territory/meta"
)

type Option func(e *Engine)

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.MaxTurns = turns
		}
	}
}

// WithGame plays on an existing game instead of a fresh one.
func WithGame(g *game.Game) Option {
	return func(e *Engine) {
		if g != nil {
			e.Game = g
		}
	}
}

// LocalEngine pits white against black in one process.
func LocalEngine(white, black agent.Agent, options ...Option) *Engine {
	if white == nil || black == nil {
		panic("need an agent for each color")
	}
	e := &Engine{
		Game:     game.NewGame(),
		Agents:   [2]agent.Agent{game.White: white, game.Black: black},
		MaxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}
