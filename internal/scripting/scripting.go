// Package scripting provides the named filter callbacks referenced by `lua_function`.
package scripting

import (
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/gruntwork-io/unitfilter/internal/formula"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

// Kernel runs a named filter callback against a unit.
type Kernel interface {
	RunFilter(name string, u *unit.Unit) bool
}

// FilterFunc is a registered callback.
type FilterFunc func(u *unit.Unit) bool

// Registry is a Kernel holding callbacks by name. It is safe for concurrent use.
type Registry struct {
	logger log.Logger
	funcs  *xsync.MapOf[string, FilterFunc]
}

// NewRegistry returns an empty registry.
func NewRegistry(l log.Logger) *Registry {
	return &Registry{
		logger: l,
		funcs:  xsync.NewMapOf[string, FilterFunc](),
	}
}

// Register adds or replaces the callback name.
func (registry *Registry) Register(name string, fn FilterFunc) {
	registry.funcs.Store(name, fn)
}

// RegisterFormula registers a callback that evaluates a formula at the unit's own location.
func (registry *Registry) RegisterFormula(name, expr string, evaluator formula.Evaluator) {
	registry.Register(name, func(u *unit.Unit) bool {
		return evaluator.MatchesFilter(expr, u.Location, u)
	})
}

// Len returns the number of registered callbacks.
func (registry *Registry) Len() int {
	return registry.funcs.Size()
}

// RunFilter implements Kernel. An unknown name is logged and reads as false.
func (registry *Registry) RunFilter(name string, u *unit.Unit) bool {
	fn, ok := registry.funcs.Load(name)
	if !ok {
		registry.logger.WithField(log.FieldKeyUnit, u.ID).Warnf("Filter function %q is not registered", name)
		return false
	}

	return fn(u)
}
