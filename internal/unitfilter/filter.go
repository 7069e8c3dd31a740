package unitfilter

import (
	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

// impl is implemented by the null filter and the basic filter.
type impl interface {
	matches(u *unit.Unit, loc hex.Location) bool
	allMatchesOnMap() []*unit.Unit
	firstMatchOnMap() *unit.Unit
}

// Filter is a compiled unit filter.
type Filter struct {
	impl impl
}

// New compiles cfg against fc. A nil cfg gives the null filter. The only construction error is
// a MultipleChildrenError, from cfg or any nested filter.
func New(l log.Logger, cfg *config.Config, fc Context) (*Filter, error) {
	if cfg == nil {
		return &Filter{impl: &nullFilter{fc: fc}}, nil
	}

	basic, err := compile(l, cfg, fc)
	if err != nil {
		return nil, err
	}

	return &Filter{impl: basic}, nil
}

// IsNull reports whether f is the null filter.
func (f *Filter) IsNull() bool {
	_, ok := f.impl.(*nullFilter)

	return ok
}

// Matches reports whether u matches when standing at loc. The location does not have to be the
// unit's own, which lets callers ask whether a unit would match somewhere else. An invalid
// location stands for a unit on a recall list.
func (f *Filter) Matches(u *unit.Unit, loc hex.Location) bool {
	return f.impl.matches(u, loc)
}

// MatchesUnit reports whether u matches at its own location.
func (f *Filter) MatchesUnit(u *unit.Unit) bool {
	return f.impl.matches(u, u.Location)
}

// AllMatchesOnMap returns every unit placed on the map that matches at its own location, in
// board order. Units on recall lists are left out, Matches with hex.Null checks those. The units
// are borrowed from the board.
func (f *Filter) AllMatchesOnMap() []*unit.Unit {
	return f.impl.allMatchesOnMap()
}

// FirstMatchOnMap returns the first unit placed on the map, in board order, that matches at its
// own location, or nil.
func (f *Filter) FirstMatchOnMap() *unit.Unit {
	return f.impl.firstMatchOnMap()
}

type nullFilter struct {
	fc Context
}

func (filter *nullFilter) matches(*unit.Unit, hex.Location) bool {
	return true
}

func (filter *nullFilter) allMatchesOnMap() []*unit.Unit {
	return filter.fc.Board().Units().OnMap()
}

func (filter *nullFilter) firstMatchOnMap() *unit.Unit {
	all := filter.fc.Board().Units().OnMap()
	if len(all) == 0 {
		return nil
	}

	return all[0]
}
