package unitfilter

import (
	"github.com/gruntwork-io/unitfilter/internal/formula"
	"github.com/gruntwork-io/unitfilter/internal/game"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/scripting"
	"github.com/gruntwork-io/unitfilter/internal/variables"
)

// ThisUnit is the variable the unit under test is bound to while a filter evaluates it.
const ThisUnit = "this_unit"

// Context is the world a filter is compiled against. It must outlive every filter compiled
// with it.
type Context interface {
	// Board returns the units, map and teams.
	Board() game.Board

	// GameData returns the variable store read by `find_in`, or nil if there is none.
	GameData() variables.Store

	// Formulas returns the evaluator for `formula`, or nil if there is none.
	Formulas() formula.Evaluator

	// Scripting returns the kernel running `lua_function` callbacks, or nil if there is none.
	Scripting() scripting.Kernel

	// ScopeUnit binds the unit at loc to the variable name and returns the function restoring
	// the previous value.
	ScopeUnit(name string, loc hex.Location) func()
}
