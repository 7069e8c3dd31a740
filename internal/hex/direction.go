package hex

import (
	"strings"

	"github.com/gruntwork-io/unitfilter/util"
)

// Direction is one of the six hex neighbours, clockwise from north.
type Direction int

const (
	North Direction = iota
	NorthEast
	SouthEast
	South
	SouthWest
	NorthWest

	NumDirections = 6
)

var directionNames = [NumDirections]string{"n", "ne", "se", "s", "sw", "nw"}

// AllDirections returns the six directions in clockwise order.
func AllDirections() []Direction {
	return []Direction{North, NorthEast, SouthEast, South, SouthWest, NorthWest}
}

func (dir Direction) String() string {
	if dir < 0 || dir >= NumDirections {
		return ""
	}

	return directionNames[dir]
}

// Opposite returns the direction pointing the other way.
func (dir Direction) Opposite() Direction {
	return (dir + NumDirections/2) % NumDirections
}

// ParseDirection parses `n`, `ne`, `se`, `s`, `sw` or `nw`. A leading `-` selects the opposite
// direction. The second result is false for anything else.
func ParseDirection(str string) (Direction, bool) {
	str = strings.TrimSpace(str)

	opposite := strings.HasPrefix(str, "-")
	str = strings.TrimPrefix(str, "-")

	for i, name := range directionNames {
		if name == str {
			dir := Direction(i)
			if opposite {
				dir = dir.Opposite()
			}

			return dir, true
		}
	}

	return 0, false
}

// ParseDirections parses a comma separated direction list, skipping unknown items.
func ParseDirections(str string) []Direction {
	items := util.SplitList(str)
	dirs := make([]Direction, 0, len(items))

	for _, item := range items {
		if dir, ok := ParseDirection(item); ok {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// AdjacentTiles returns the neighbours of loc indexed by Direction. Even (zero-based) columns sit
// half a hex higher than odd ones.
func AdjacentTiles(loc Location) [NumDirections]Location {
	even := loc.X%2 == 0

	up, down := 0, 1
	if even {
		up, down = 1, 0
	}

	return [NumDirections]Location{
		North:     {X: loc.X, Y: loc.Y - 1},
		NorthEast: {X: loc.X + 1, Y: loc.Y - up},
		SouthEast: {X: loc.X + 1, Y: loc.Y + down},
		South:     {X: loc.X, Y: loc.Y + 1},
		SouthWest: {X: loc.X - 1, Y: loc.Y + down},
		NorthWest: {X: loc.X - 1, Y: loc.Y - up},
	}
}

// Neighbour returns the tile next to loc in direction dir.
func (loc Location) Neighbour(dir Direction) Location {
	return AdjacentTiles(loc)[dir]
}
