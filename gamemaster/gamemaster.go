package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"territory/agent"
	"territory/game"

	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrNotYourTurn    = errors.New("waiting for the opponent")
)

// Command names accepted by Session.Do.
const (
	PlaceInitial      = "place-initial"
	InitiatePlacement = "initiate-placement"
	PlacePawn         = "place-pawn"
	InitiateUpgrade   = "initiate-upgrade"
	SelectPawn        = "select-pawn"
	InitiateFiring    = "initiate-firing"
	SelectTurret      = "select-turret"
	SelectTarget      = "select-target"
	BuyAction         = "buy-action"
	CancelAction      = "cancel-action"
	PassTurn          = "pass-turn"
	ResetGame         = "reset-game"
)

// Command is one input from the human player. Pos is read by the square
// selecting commands and Kind by initiate-upgrade.
type Command struct {
	Name string   `json:"name"`
	Pos  game.Pos `json:"pos"`
	Kind string   `json:"kind,omitempty"`
}

// Session is a game between a human and an agent. The agent moves
// synchronously whenever its color is to act, so a caller always gets the
// game back on the human's turn (or over).
type Session struct {
	mu       sync.Mutex
	game     *game.Game
	human    game.Color
	opponent agent.Agent
}

// NewSession starts a game for human against opponent. If the opponent
// opens, it has already placed its pieces when NewSession returns.
func NewSession(human game.Color, opponent agent.Agent) (*Session, error) {
	if opponent == nil {
		panic("Must provide an opponent")
	}
	if human != game.White && human != game.Black {
		return nil, fmt.Errorf("invalid human color %s", human)
	}
	s := &Session{game: game.NewGame(), human: human, opponent: opponent}
	log.Info().Msgf("starting session: human plays %s against %s", human, opponent.Name())
	return s, s.AutoPlace()
}

func (s *Session) Human() game.Color { return s.human }

// View returns the current state of the game.
func (s *Session) View() game.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.View()
}

// Scores returns the games won per color in this session.
func (s *Session) Scores() map[game.Color]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Scores()
}

// AutoPlace lets the opponent act until the human is to move or the game
// is over.
func (s *Session) AutoPlace() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opponentMoves()
}

func (s *Session) opponentMoves() error {
	for !s.game.GameOver() && s.game.ActiveColor() != s.human {
		if err := s.opponent.TakeTurn(s.game); err != nil {
			return fmt.Errorf("opponent %s: %w", s.opponent.Name(), err)
		}
		log.Debug().Str("turn", s.game.Turn().String()).Msg("opponent moved")
	}
	return nil
}

// Do applies cmd for the human and returns the resulting view. Rule
// rejections come back unchanged from the game, so callers can match them
// with errors.Is.
func (s *Session) Do(cmd Command) (game.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmd.Name == ResetGame {
		s.game.Reset()
		log.Info().Msg("session reset")
		err := s.opponentMoves()
		return s.game.View(), err
	}
	if !s.game.GameOver() && s.game.ActiveColor() != s.human {
		return s.game.View(), ErrNotYourTurn
	}

	if err := s.apply(cmd); err != nil {
		return s.game.View(), err
	}
	if s.game.GameOver() {
		log.Info().Msgf("session game over, winner: %s", s.game.Winner())
	}
	err := s.opponentMoves()
	return s.game.View(), err
}

func (s *Session) apply(cmd Command) error {
	g := s.game
	switch cmd.Name {
	case PlaceInitial:
		return g.PlaceInitial(cmd.Pos)
	case InitiatePlacement:
		return g.InitiatePlacement()
	case PlacePawn:
		return g.PlacePawn(cmd.Pos)
	case InitiateUpgrade:
		kind, err := game.ParseKind(cmd.Kind)
		if err != nil {
			return err
		}
		return g.InitiateUpgrade(kind)
	case SelectPawn:
		return g.SelectPawnToUpgrade(cmd.Pos)
	case InitiateFiring:
		return g.InitiateFiring()
	case SelectTurret:
		return g.SelectTurret(cmd.Pos)
	case SelectTarget:
		return g.SelectTarget(cmd.Pos)
	case BuyAction:
		return g.BuyAction()
	case CancelAction:
		g.CancelAction()
		return nil
	case PassTurn:
		return g.PassTurn()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
}
