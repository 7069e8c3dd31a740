// Package game declares the read-only views of the board that filters query.
package game

import (
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/unit"
)

// Board is the world a filter runs against.
type Board interface {
	// Units returns the units on the board.
	Units() Units

	// Map returns the terrain map.
	Map() Map

	// Team returns the team playing side, one-based.
	Team(side int) (Team, bool)

	// NumSides returns the number of sides.
	NumSides() int

	// Types returns the unit type registry.
	Types() *unit.Types

	// Concealed reports whether u is invisible to enemies at loc.
	Concealed(u *unit.Unit, loc hex.Location) bool
}

// Units is the collection of units on the board.
type Units interface {
	// All returns every unit in board order, recall lists included.
	All() []*unit.Unit

	// OnMap returns the units placed on the map, in board order.
	OnMap() []*unit.Unit

	// Find returns the unit at loc.
	Find(loc hex.Location) (*unit.Unit, bool)
}

// Map is the terrain grid.
type Map interface {
	OnBoard(loc hex.Location) bool
	Terrain(loc hex.Location) string
	Width() int
	Height() int
}

// Team is one side of the game.
type Team interface {
	Side() int
	Name() string
	Controller() string
	Fogged(loc hex.Location) bool
	IsEnemy(side int) bool
}
