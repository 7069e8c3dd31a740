package world

import (
	"strings"

	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/hex"
)

// Map is a rectangular terrain grid.
type Map struct {
	terrain []string
	width   int
	height  int
}

// NewMap returns a width by height map filled with one terrain code.
func NewMap(width, height int, fill string) *Map {
	terrain := make([]string, width*height)
	for i := range terrain {
		terrain[i] = fill
	}

	return &Map{terrain: terrain, width: width, height: height}
}

// ParseMap reads one row per line with comma separated terrain codes, `Gg, Gg^Fp, Hh`. Blank
// lines are skipped and every row must have the same width.
func ParseMap(data string) (*Map, error) {
	var rows [][]string

	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		cells := strings.Split(line, ",")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}

		if len(rows) > 0 && len(cells) != len(rows[0]) {
			return nil, errors.Errorf("map row %d has %d columns, expected %d", len(rows)+1, len(cells), len(rows[0]))
		}

		rows = append(rows, cells)
	}

	if len(rows) == 0 {
		return nil, errors.New("map is empty")
	}

	gameMap := &Map{width: len(rows[0]), height: len(rows)}
	gameMap.terrain = make([]string, gameMap.width*gameMap.height)

	for y, row := range rows {
		for x, code := range row {
			gameMap.terrain[y*gameMap.width+x] = code
		}
	}

	return gameMap, nil
}

// Width returns the number of columns.
func (gameMap *Map) Width() int { return gameMap.width }

// Height returns the number of rows.
func (gameMap *Map) Height() int { return gameMap.height }

// OnBoard reports whether loc lies within the map.
func (gameMap *Map) OnBoard(loc hex.Location) bool {
	return loc.X >= 0 && loc.Y >= 0 && loc.X < gameMap.width && loc.Y < gameMap.height
}

// Terrain returns the terrain code at loc, "" off the map.
func (gameMap *Map) Terrain(loc hex.Location) string {
	if !gameMap.OnBoard(loc) {
		return ""
	}

	return gameMap.terrain[loc.Y*gameMap.width+loc.X]
}

// SetTerrain changes the terrain at loc. Locations off the map are ignored.
func (gameMap *Map) SetTerrain(loc hex.Location, code string) {
	if gameMap.OnBoard(loc) {
		gameMap.terrain[loc.Y*gameMap.width+loc.X] = code
	}
}
