// Package sidefilter selects sides of the game from a filter description.
//
// Supported keys:
//
//	side        one-based ranges, `1-3,5`
//	team_name   list of team names
//	controller  list of controllers, such as `human,ai`
//	[enemy_of]  the side is an enemy of every side the nested filter selects
//	[allied_with] the side is allied with every other side the nested filter selects
//	[and] [or] [not] combined in document order
//
// An empty filter selects every side.
package sidefilter

import (
	"slices"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/game"
	"github.com/gruntwork-io/unitfilter/pkg/log"
	"github.com/gruntwork-io/unitfilter/util"
)

type combinator int

const (
	combineAnd combinator = iota
	combineOr
	combineNot
)

type condition struct {
	filter *Filter
	kind   combinator
}

// Filter is a compiled side filter.
type Filter struct {
	board       game.Board
	enemyOf     *Filter
	alliedWith  *Filter
	sides       util.Ranges
	teamNames   []string
	controllers []string
	conditions  []condition
	hasSide     bool
}

// New compiles cfg against board. A nil cfg selects every side.
func New(l log.Logger, cfg *config.Config, board game.Board) *Filter {
	filter := &Filter{board: board}

	if side := cfg.Get("side"); !side.Empty() {
		filter.hasSide = true
		filter.sides = util.ParseRanges(side.String())
	}

	filter.teamNames = util.SplitList(cfg.Get("team_name").String())
	filter.controllers = util.SplitList(cfg.Get("controller").String())

	for _, child := range cfg.Children() {
		switch child.Key {
		case "and":
			filter.conditions = append(filter.conditions, condition{kind: combineAnd, filter: New(l, child.Cfg, board)})
		case "or":
			filter.conditions = append(filter.conditions, condition{kind: combineOr, filter: New(l, child.Cfg, board)})
		case "not":
			filter.conditions = append(filter.conditions, condition{kind: combineNot, filter: New(l, child.Cfg, board)})
		case "enemy_of":
			if filter.enemyOf == nil {
				filter.enemyOf = New(l, child.Cfg, board)
			}
		case "allied_with":
			if filter.alliedWith == nil {
				filter.alliedWith = New(l, child.Cfg, board)
			}
		default:
			l.WithField(log.FieldKeyTag, child.Key).Debugf("Ignoring child [%s] of a side filter", child.Key)
		}
	}

	return filter
}

// Match reports whether the one-based side matches.
func (filter *Filter) Match(side int) bool {
	result := filter.matchLocal(side)

	for _, cond := range filter.conditions {
		childResult := cond.filter.Match(side)

		switch cond.kind {
		case combineAnd:
			result = result && childResult
		case combineOr:
			result = result || childResult
		case combineNot:
			result = result && !childResult
		}
	}

	return result
}

// Sides returns every one-based side that matches, in increasing order.
func (filter *Filter) Sides() []int {
	var sides []int

	for side := 1; side <= filter.board.NumSides(); side++ {
		if filter.Match(side) {
			sides = append(sides, side)
		}
	}

	return sides
}

func (filter *Filter) matchLocal(side int) bool {
	team, ok := filter.board.Team(side)
	if !ok {
		return false
	}

	if filter.hasSide && !util.InRanges(side, filter.sides) {
		return false
	}

	if len(filter.teamNames) > 0 && !anyIn(util.SplitList(team.Name()), filter.teamNames) {
		return false
	}

	if len(filter.controllers) > 0 && !slices.Contains(filter.controllers, team.Controller()) {
		return false
	}

	if filter.enemyOf != nil {
		others := filter.enemyOf.Sides()
		if len(others) == 0 {
			return false
		}

		for _, other := range others {
			otherTeam, ok := filter.board.Team(other)
			if !ok || !otherTeam.IsEnemy(side) {
				return false
			}
		}
	}

	if filter.alliedWith != nil {
		others := filter.alliedWith.Sides()
		if len(others) == 0 {
			return false
		}

		for _, other := range others {
			if other == side {
				return false
			}

			otherTeam, ok := filter.board.Team(other)
			if !ok || otherTeam.IsEnemy(side) {
				return false
			}
		}
	}

	return true
}

func anyIn(values, list []string) bool {
	for _, val := range values {
		if slices.Contains(list, val) {
			return true
		}
	}

	return false
}
