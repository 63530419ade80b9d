package game

import (
	"fmt"
	"slices"
	"territory/utils"

	"github.com/rs/zerolog/log"
)

// Action economy constants.
const (
	ActionCost         = 3 // action points per bought action
	BlackOpeningPoints = 1 // first-move compensation for Black
)

// Game is the rule engine. It owns every mutation of its board; callers
// read state through the accessors and change it through the protocol
// methods below, each of which either commits fully or returns an error
// and leaves the game untouched.
type Game struct {
	board   *Board
	turn    Turn
	actions [2]int
	points  [2]int
	mode    Mode
	over    bool
	winner  Color
	scores  [2]int
	plies   int // steady-state turns completed
}

// NewGame returns a game waiting for White's King.
func NewGame() *Game {
	return &Game{
		board:   NewBoard(),
		turn:    InitialKingWhite,
		actions: [2]int{1, 1},
		mode:    Idle{},
		winner:  NoColor,
	}
}

// NewGameFrom starts a steady-state game on a prepared board with color to
// move, as if the opening had just finished. Used for puzzles and tests.
func NewGameFrom(board *Board, color Color) *Game {
	g := NewGame()
	g.board = board.Copy()
	g.turn = turnOf(color)
	g.points = [2]int{White: 0, Black: BlackOpeningPoints}
	return g
}

// Reset starts a fresh game, keeping the score tally.
func (g *Game) Reset() {
	scores := g.scores
	*g = *NewGame()
	g.scores = scores
	log.Debug().Msg("game reset")
}

// Clone returns an independent deep copy.
func (g *Game) Clone() *Game {
	c := *g
	c.board = g.board.Copy()
	if f, ok := g.mode.(Firing); ok {
		c.mode = f.clone()
	}
	return &c
}

func (f Firing) clone() Firing {
	c := Firing{Targets: slices.Clone(f.Targets)}
	if f.Turret != nil {
		t := *f.Turret
		c.Turret = &t
	}
	return c
}

// Board returns a copy of the board; the engine's own board is never exposed.
func (g *Game) Board() *Board { return g.board.Copy() }

// Snapshot returns the current board image.
func (g *Game) Snapshot() Snapshot { return g.board.Snapshot() }

// Score evaluates the current board.
func (g *Game) Score() int { return Evaluate(g.board) }

func (g *Game) Turn() Turn               { return g.turn }
func (g *Game) ActiveColor() Color       { return g.turn.Color() }
func (g *Game) InitialPhase() bool       { return g.turn.IsInitial() }
func (g *Game) GameOver() bool           { return g.over }
func (g *Game) Winner() Color            { return g.winner }
func (g *Game) Actions(c Color) int      { return g.actions[c] }
func (g *Game) ActionPoints(c Color) int { return g.points[c] }
func (g *Game) TurnsPlayed() int         { return g.plies }

// Mode returns the current interaction mode.
func (g *Game) Mode() Mode {
	if f, ok := g.mode.(Firing); ok {
		return f.clone()
	}
	return g.mode
}

// Scores returns the number of games won per color since construction.
func (g *Game) Scores() map[Color]int {
	return map[Color]int{White: g.scores[White], Black: g.scores[Black]}
}

func (g *Game) reject(err error) error {
	log.Debug().
		Str("turn", g.turn.String()).
		Str("mode", g.mode.Name()).
		Err(err).
		Msg("action rejected")
	return err
}

// checkSteady guards every steady-state call.
func (g *Game) checkSteady() error {
	if g.over {
		return g.reject(ErrGameOver)
	}
	if g.turn.IsInitial() {
		return g.reject(fmt.Errorf("%w: initial placement in progress", ErrWrongPhase))
	}
	return nil
}

// checkInitiate guards the transitions out of Idle.
func (g *Game) checkInitiate() error {
	if err := g.checkSteady(); err != nil {
		return err
	}
	if _, idle := g.mode.(Idle); !idle {
		return g.reject(fmt.Errorf("%w: %s in progress", ErrWrongMode, g.mode.Name()))
	}
	if g.actions[g.ActiveColor()] <= 0 {
		return g.reject(ErrNoActions)
	}
	return nil
}

// PlaceInitial places the King or Farm of the current initial sub-state.
// Neither may go on the four center squares; the Farm must also touch its
// King. After Black's Farm the steady state begins with White to move.
func (g *Game) PlaceInitial(pos Pos) error {
	if g.over {
		return g.reject(ErrGameOver)
	}
	if !g.turn.IsInitial() {
		return g.reject(fmt.Errorf("%w: initial placement is finished", ErrWrongPhase))
	}
	color, kind := g.turn.Color(), g.turn.InitialKind()
	if g.board.IsInitialExclusionZone(pos) {
		return g.reject(fmt.Errorf("%w: %s cannot be placed in the center at %s", ErrIllegalPlacement, kind, pos))
	}
	if kind == Farm && !g.board.IsAdjacentToKing(pos, color) {
		return g.reject(fmt.Errorf("%w: farm at %s is not next to the king", ErrIllegalPlacement, pos))
	}
	if !g.board.Place(pos, kind, color) {
		return g.reject(fmt.Errorf("%w: %s is off the board or occupied", ErrIllegalPlacement, pos))
	}
	log.Debug().Str("color", color.String()).Str("kind", kind.String()).Stringer("pos", pos).Msg("initial piece placed")
	g.advanceInitial()
	return nil
}

func (g *Game) advanceInitial() {
	if g.turn != InitialFarmBlack {
		g.turn++
		return
	}
	g.turn = WhiteTurn
	g.actions = [2]int{1, 1}
	g.points = [2]int{White: 0, Black: BlackOpeningPoints}
}

// InitiatePlacement enters pawn placing mode.
func (g *Game) InitiatePlacement() error {
	if err := g.checkInitiate(); err != nil {
		return err
	}
	g.mode = PlacingPawn{}
	return nil
}

// PlacePawn places a pawn on an empty square next to a friendly piece. A
// rejected square keeps the game in placing mode.
func (g *Game) PlacePawn(pos Pos) error {
	if err := g.checkSteady(); err != nil {
		return err
	}
	if _, ok := g.mode.(PlacingPawn); !ok {
		return g.reject(fmt.Errorf("%w: not placing a pawn", ErrWrongMode))
	}
	color := g.ActiveColor()
	if !g.board.IsAdjacentToFriendly(pos, color) {
		return g.reject(fmt.Errorf("%w: %s is not connected to your pieces", ErrIllegalPlacement, pos))
	}
	if !g.board.Place(pos, Pawn, color) {
		return g.reject(fmt.Errorf("%w: %s is off the board or occupied", ErrIllegalPlacement, pos))
	}
	g.commit()
	return nil
}

// InitiateUpgrade enters upgrade mode for kind (Farm, Turret or Shield).
func (g *Game) InitiateUpgrade(kind PieceKind) error {
	if !kind.IsUpgrade() {
		return g.reject(fmt.Errorf("%w: pawns cannot become %s", ErrInvalidKind, kind))
	}
	if err := g.checkInitiate(); err != nil {
		return err
	}
	if !g.board.HasPieceOfKind(g.ActiveColor(), Pawn) {
		return g.reject(ErrNoPawn)
	}
	g.mode = Upgrading{Kind: kind}
	return nil
}

// SelectPawnToUpgrade replaces one of the active player's pawns in place.
func (g *Game) SelectPawnToUpgrade(pos Pos) error {
	if err := g.checkSteady(); err != nil {
		return err
	}
	up, ok := g.mode.(Upgrading)
	if !ok {
		return g.reject(fmt.Errorf("%w: not upgrading", ErrWrongMode))
	}
	color := g.ActiveColor()
	if p, occupied := g.board.Get(pos); !occupied || p.Kind != Pawn || p.Color != color {
		return g.reject(fmt.Errorf("%w: %s is not your pawn", ErrInvalidSelection, pos))
	}
	g.board.replace(pos, Piece{Color: color, Kind: up.Kind})
	g.commit()
	return nil
}

// InitiateFiring enters firing mode.
func (g *Game) InitiateFiring() error {
	if err := g.checkInitiate(); err != nil {
		return err
	}
	if !g.board.HasPieceOfKind(g.ActiveColor(), Turret) {
		return g.reject(ErrNoTurret)
	}
	g.mode = Firing{}
	return nil
}

// SelectTurret picks the firing turret and computes its targets afresh. A
// turret without targets is rejected and firing mode stays open.
func (g *Game) SelectTurret(pos Pos) error {
	if err := g.checkSteady(); err != nil {
		return err
	}
	if _, ok := g.mode.(Firing); !ok {
		return g.reject(fmt.Errorf("%w: not firing", ErrWrongMode))
	}
	color := g.ActiveColor()
	if p, occupied := g.board.Get(pos); !occupied || p.Kind != Turret || p.Color != color {
		return g.reject(fmt.Errorf("%w: %s is not your turret", ErrInvalidSelection, pos))
	}
	targets := ValidTargets(g.board, pos, color)
	if len(targets) == 0 {
		return g.reject(fmt.Errorf("%w: turret at %s has no targets", ErrInvalidTarget, pos))
	}
	turret := pos
	g.mode = Firing{Turret: &turret, Targets: targets}
	return nil
}

// SelectTarget fires the selected turret at one of its targets. A Shield
// becomes a Pawn, a King ends the game, anything else is removed; then the
// defending color loses every piece cut off from its King.
func (g *Game) SelectTarget(pos Pos) error {
	if err := g.checkSteady(); err != nil {
		return err
	}
	f, ok := g.mode.(Firing)
	if !ok || f.Turret == nil {
		return g.reject(fmt.Errorf("%w: no turret selected", ErrWrongMode))
	}
	if utils.FindIndex(f.Targets, pos) < 0 {
		return g.reject(fmt.Errorf("%w: %s is not in range of %s", ErrInvalidTarget, pos, *f.Turret))
	}
	target, _ := g.board.Get(pos)
	attacker := g.ActiveColor()

	switch target.Kind {
	case Shield:
		g.board.replace(pos, Piece{Color: target.Color, Kind: Pawn})
	case King:
		g.commit()
		g.finish(attacker)
		log.Debug().Str("winner", attacker.String()).Stringer("pos", pos).Msg("king hit")
		return nil
	default:
		g.board.remove(pos)
	}
	g.commit()

	if removed := SweepIsolated(g.board, target.Color); len(removed) > 0 {
		log.Debug().Str("color", target.Color.String()).Int("count", len(removed)).Msg("isolated pieces lost")
	}
	return nil
}

// commit spends one action and returns to Idle.
func (g *Game) commit() {
	g.actions[g.ActiveColor()]--
	g.mode = Idle{}
}

func (g *Game) finish(winner Color) {
	g.over = true
	g.winner = winner
	g.mode = Idle{}
	if winner != NoColor {
		g.scores[winner]++
	}
}

// BuyAction converts ActionCost action points into one action.
func (g *Game) BuyAction() error {
	if err := g.checkSteady(); err != nil {
		return err
	}
	color := g.ActiveColor()
	if g.points[color] < ActionCost {
		return g.reject(fmt.Errorf("%w: %d of %d", ErrInsufficientPoints, g.points[color], ActionCost))
	}
	g.points[color] -= ActionCost
	g.actions[color]++
	return nil
}

// CancelAction leaves any transient mode without spending an action.
func (g *Game) CancelAction() {
	g.mode = Idle{}
}

// PassTurn ends the active player's turn: farm income is credited and the
// other color starts with exactly one action.
func (g *Game) PassTurn() error {
	if err := g.checkSteady(); err != nil {
		return err
	}
	color := g.ActiveColor()
	g.points[color] += g.board.CountPieceOfKind(color, Farm)
	g.turn = turnOf(color.Opponent())
	g.actions[color.Opponent()] = 1
	g.mode = Idle{}
	g.plies++
	return nil
}

// DeclareDraw ends the game without a winner.
func (g *Game) DeclareDraw() {
	if g.over {
		return
	}
	g.finish(NoColor)
	log.Debug().Msg("game drawn")
}

// Apply runs the whole initiate-and-select protocol for one action. On
// failure the game is returned to Idle with nothing spent.
func (g *Game) Apply(a Action) error {
	var err error
	switch a.Type {
	case PlacePawnAction:
		if err = g.InitiatePlacement(); err != nil {
			return err
		}
		err = g.PlacePawn(a.To)
	case UpgradeAction:
		if err = g.InitiateUpgrade(a.Kind); err != nil {
			return err
		}
		err = g.SelectPawnToUpgrade(a.From)
	case FireAction:
		if err = g.InitiateFiring(); err != nil {
			return err
		}
		if err = g.SelectTurret(a.From); err == nil {
			err = g.SelectTarget(a.To)
		}
	default:
		return g.reject(fmt.Errorf("%w: unknown action type %d", ErrInvalidSelection, a.Type))
	}
	if err != nil {
		g.CancelAction()
	}
	return err
}
