// Package terrainfilter matches map locations against a filter description.
//
// Supported keys:
//
//	x, y        one-based coordinate ranges, zipped pairwise when comma separated
//	terrain     list of terrain code patterns, `G*,Hh^F*`
//	[filter_adjacent_location] adjacent: directions, count: ranges (default 1-6)
//	[and] [or] [not] combined in document order
//
// An empty filter matches every location on the map.
package terrainfilter

import (
	"github.com/gobwas/glob"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/game"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/pkg/log"
	"github.com/gruntwork-io/unitfilter/util"
)

// DefaultAdjacentCount is the count range of a [filter_adjacent_location] without `count`.
const DefaultAdjacentCount = "1-6"

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

type adjacent struct {
	filter *Filter
	dirs   []hex.Direction
	counts util.Ranges
}

// Filter is a compiled location filter.
type Filter struct {
	board      game.Board
	x          string
	y          string
	terrains   []glob.Glob
	adjacent   []adjacent
	conditions []condition
}

// New compiles cfg against board. A nil cfg matches every location on the map.
func New(l log.Logger, cfg *config.Config, board game.Board) *Filter {
	filter := &Filter{
		board: board,
		x:     cfg.Get("x").String(),
		y:     cfg.Get("y").String(),
	}

	for _, pattern := range util.SplitList(cfg.Get("terrain").String()) {
		g, err := glob.Compile(pattern)
		if err != nil {
			l.WithError(err).Debugf("Terrain pattern %q is not a valid glob, matching it literally", pattern)
			g = glob.MustCompile(glob.QuoteMeta(pattern))
		}

		filter.terrains = append(filter.terrains, g)
	}

	for _, child := range cfg.Children() {
		switch child.Key {
		case "and":
			filter.conditions = append(filter.conditions, condition{kind: combineAnd, filter: New(l, child.Cfg, board)})
		case "or":
			filter.conditions = append(filter.conditions, condition{kind: combineOr, filter: New(l, child.Cfg, board)})
		case "not":
			filter.conditions = append(filter.conditions, condition{kind: combineNot, filter: New(l, child.Cfg, board)})
		case "filter_adjacent_location":
			adj := adjacent{
				filter: New(l, child.Cfg, board),
				dirs:   hex.AllDirections(),
				counts: util.ParseRanges(DefaultAdjacentCount),
			}

			if dirs := child.Cfg.Get("adjacent"); !dirs.Blank() {
				adj.dirs = hex.ParseDirections(dirs.String())
			}

			if count := child.Cfg.Get("count"); !count.Blank() {
				adj.counts = util.ParseRanges(count.String())
			}

			filter.adjacent = append(filter.adjacent, adj)
		default:
			l.WithField(log.FieldKeyTag, child.Key).Debugf("Ignoring child [%s] of a location filter", child.Key)
		}
	}

	return filter
}

// Match reports whether loc matches.
func (filter *Filter) Match(loc hex.Location) bool {
	result := filter.matchLocal(loc)

	for _, cond := range filter.conditions {
		childResult := cond.filter.Match(loc)

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

// Locations returns every location on the map that matches, column by column.
func (filter *Filter) Locations() []hex.Location {
	gameMap := filter.board.Map()

	var locs []hex.Location

	for x := 0; x < gameMap.Width(); x++ {
		for y := 0; y < gameMap.Height(); y++ {
			if loc := (hex.Location{X: x, Y: y}); filter.Match(loc) {
				locs = append(locs, loc)
			}
		}
	}

	return locs
}

func (filter *Filter) matchLocal(loc hex.Location) bool {
	gameMap := filter.board.Map()

	if !gameMap.OnBoard(loc) {
		return false
	}

	if (filter.x != "" || filter.y != "") && !loc.MatchesRange(filter.x, filter.y) {
		return false
	}

	if len(filter.terrains) > 0 {
		terrain := gameMap.Terrain(loc)
		found := false

		for _, g := range filter.terrains {
			if g.Match(terrain) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	for _, adj := range filter.adjacent {
		count := 0

		for _, dir := range adj.dirs {
			if adj.filter.Match(loc.Neighbour(dir)) {
				count++
			}
		}

		if !util.InRanges(count, adj.counts) {
			return false
		}
	}

	return true
}
