// Package hex models positions on a hex map with vertical columns, where odd columns are shifted
// half a hex down.
//
// Locations are zero-based. Coordinates written in filters and scenario files are one-based, so
// `x=1,y=1` is Location{X: 0, Y: 0}.
package hex

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/unitfilter/util"
)

// Location is a zero-based map position.
type Location struct {
	X int
	Y int
}

// Null is the location of units that are not on the map, such as units on a recall list.
var Null = Location{X: -1000, Y: -1000}

// FromOneBased converts one-based scenario coordinates.
func FromOneBased(x, y int) Location {
	return Location{X: x - 1, Y: y - 1}
}

// Valid reports whether the location could be on a map. It says nothing about the map bounds.
func (loc Location) Valid() bool {
	return loc.X >= 0 && loc.Y >= 0
}

// String renders the one-based coordinates.
func (loc Location) String() string {
	if !loc.Valid() {
		return "(none)"
	}

	return fmt.Sprintf("(%d,%d)", loc.X+1, loc.Y+1)
}

// MatchesRange reports whether the location matches one-based x and y range lists. With commas
// the lists are zipped pairwise, the shorter one padded with empty items, and any pair may match.
// An empty side of a pair matches every coordinate.
func (loc Location) MatchesRange(xloc, yloc string) bool {
	if strings.Contains(xloc, ",") || strings.Contains(yloc, ",") {
		xlocs := strings.Split(xloc, ",")
		ylocs := strings.Split(yloc, ",")

		for len(xlocs) < len(ylocs) {
			xlocs = append(xlocs, "")
		}

		for len(ylocs) < len(xlocs) {
			ylocs = append(ylocs, "")
		}

		for i := range xlocs {
			if loc.MatchesRange(xlocs[i], ylocs[i]) {
				return true
			}
		}

		return false
	}

	return matchesCoordinate(loc.X, xloc) && matchesCoordinate(loc.Y, yloc)
}

func matchesCoordinate(val int, str string) bool {
	if strings.TrimSpace(str) == "" {
		return true
	}

	r := util.ParseRange(str)

	return util.Range{Min: r.Min - 1, Max: r.Max - 1}.Contains(val)
}
