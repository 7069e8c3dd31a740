// Package world is the in-memory game state that filters run against: the terrain map, the teams,
// the units on the board and the variable store.
package world

import (
	"strconv"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/formula"
	"github.com/gruntwork-io/unitfilter/internal/game"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/scripting"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/internal/variables"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

// Option configures a Board.
type Option func(*Board)

// WithTypes sets the unit type registry.
func WithTypes(types *unit.Types) Option {
	return func(board *Board) {
		board.types = types
	}
}

// WithVariables sets the variable store. A nil store leaves the board without game data, which
// disables `find_in` checks.
func WithVariables(vars *variables.Memory) Option {
	return func(board *Board) {
		board.vars = vars
	}
}

// WithFormulas sets the formula evaluator.
func WithFormulas(evaluator formula.Evaluator) Option {
	return func(board *Board) {
		board.formulas = evaluator
	}
}

// WithScripting sets the filter callback kernel.
func WithScripting(kernel scripting.Kernel) Option {
	return func(board *Board) {
		board.kernel = kernel
	}
}

// Board holds the game state. Units keep the order they were added in.
type Board struct {
	logger   log.Logger
	gameMap  *Map
	types    *unit.Types
	vars     *variables.Memory
	formulas formula.Evaluator
	kernel   scripting.Kernel
	index    map[hex.Location]*unit.Unit
	units    []*unit.Unit
	teams    []*Team
}

// NewBoard returns a board with the given map and teams, one per side in side order. Teams
// without an explicit enemy list become enemies of every team they share no team name with.
func NewBoard(l log.Logger, gameMap *Map, teams []*Team, opts ...Option) *Board {
	board := &Board{
		logger:   l,
		gameMap:  gameMap,
		teams:    teams,
		types:    unit.NewTypes(),
		vars:     variables.NewMemory(),
		formulas: formula.NewHCLEvaluator(l),
		index:    map[hex.Location]*unit.Unit{},
	}

	for _, opt := range opts {
		opt(board)
	}

	for i, team := range teams {
		team.Number = i + 1
	}

	for _, team := range teams {
		if team.enemiesSet {
			continue
		}

		team.Enemies = nil

		for _, other := range teams {
			if team.isEnemyByName(other) {
				team.Enemies = append(team.Enemies, other.Number)
			}
		}
	}

	return board
}

// AddUnit places u on the board, or on the recall list if its location is not valid.
func (board *Board) AddUnit(u *unit.Unit) error {
	if u.Side < 1 || u.Side > len(board.teams) {
		return errors.New(UnitError{ID: u.ID, Msg: "side " + strconv.Itoa(u.Side) + " does not exist"})
	}

	if u.Location.Valid() {
		if !board.gameMap.OnBoard(u.Location) {
			return errors.New(UnitError{ID: u.ID, Msg: "location " + u.Location.String() + " is off the map"})
		}

		if other, ok := board.index[u.Location]; ok {
			return errors.New(UnitError{ID: u.ID, Msg: "location " + u.Location.String() + " is taken by " + other.ID})
		}

		board.index[u.Location] = u
	}

	board.units = append(board.units, u)

	return nil
}

// Unit returns the unit with the given id.
func (board *Board) Unit(id string) (*unit.Unit, bool) {
	for _, u := range board.units {
		if u.ID == id {
			return u, true
		}
	}

	return nil, false
}

// Variables returns the variable store, nil when the board has none.
func (board *Board) Variables() *variables.Memory {
	return board.vars
}

// Board returns the board as the filter world.
func (board *Board) Board() game.Board {
	return board
}

// GameData returns the variable store, or nil when the board has none.
func (board *Board) GameData() variables.Store {
	if board.vars == nil {
		return nil
	}

	return board.vars
}

// Formulas returns the formula evaluator.
func (board *Board) Formulas() formula.Evaluator {
	return board.formulas
}

// Scripting returns the filter callback kernel, or nil.
func (board *Board) Scripting() scripting.Kernel {
	return board.kernel
}

// ScopeUnit stores the unit at loc, with one-based x and y, as the variable name until the
// returned function is called. Without a unit at loc the variable is left alone.
func (board *Board) ScopeUnit(name string, loc hex.Location) func() {
	u, ok := board.index[loc]
	if !ok || board.vars == nil {
		board.logger.Debugf("Failed to auto-store $%s at %s", name, loc)
		return func() {}
	}

	cfg := config.New()
	u.Write(cfg)
	cfg.Set("x", strconv.Itoa(loc.X+1)).Set("y", strconv.Itoa(loc.Y+1))

	return board.vars.Scope(name, cfg)
}

// Units implements game.Board.
func (board *Board) Units() game.Units {
	return unitList{board: board}
}

// Map implements game.Board.
func (board *Board) Map() game.Map {
	return board.gameMap
}

// Team implements game.Board.
func (board *Board) Team(side int) (game.Team, bool) {
	if side < 1 || side > len(board.teams) {
		return nil, false
	}

	return board.teams[side-1], true
}

// NumSides implements game.Board.
func (board *Board) NumSides() int {
	return len(board.teams)
}

// Types implements game.Board.
func (board *Board) Types() *unit.Types {
	return board.types
}

// Concealed implements game.Board. A unit is concealed on terrain it hides in.
func (board *Board) Concealed(u *unit.Unit, loc hex.Location) bool {
	return u.HidesIn(board.gameMap.Terrain(loc))
}

type unitList struct {
	board *Board
}

func (list unitList) All() []*unit.Unit {
	return list.board.units
}

func (list unitList) OnMap() []*unit.Unit {
	placed := make([]*unit.Unit, 0, len(list.board.index))

	for _, u := range list.board.units {
		if u.Location.Valid() {
			placed = append(placed, u)
		}
	}

	return placed
}

func (list unitList) Find(loc hex.Location) (*unit.Unit, bool) {
	u, ok := list.board.index[loc]

	return u, ok
}
