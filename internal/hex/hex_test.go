package hex_test

import (
	"testing"

	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/stretchr/testify/assert"
)

func TestLocationValid(t *testing.T) {
	t.Parallel()

	assert.True(t, hex.Location{}.Valid())
	assert.False(t, hex.Null.Valid())
	assert.Equal(t, "(3,4)", hex.FromOneBased(3, 4).String())
	assert.Equal(t, "(none)", hex.Null.String())
}

func TestMatchesRange(t *testing.T) {
	t.Parallel()

	loc := hex.FromOneBased(5, 7)

	testCases := []struct {
		x, y     string
		expected bool
	}{
		{"5", "7", true},
		{"4", "7", false},
		{"1-10", "", true},
		{"", "7-9", true},
		{"", "8-9", false},
		{"1,5", "1,7", true},
		{"1,5", "1,8", false},
		{"1,4", "7", false},
		{"1,5", "2", true},
		{"1,5", "", true},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, loc.MatchesRange(testCase.x, testCase.y), "x=%q y=%q", testCase.x, testCase.y)
	}
}

func TestParseDirections(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []hex.Direction{hex.North, hex.SouthEast}, hex.ParseDirections("n, se"))
	assert.Equal(t, []hex.Direction{hex.South}, hex.ParseDirections("-n"))
	assert.Equal(t, []hex.Direction{hex.NorthWest}, hex.ParseDirections("up,nw"))
	assert.Empty(t, hex.ParseDirections(""))
	assert.Len(t, hex.AllDirections(), hex.NumDirections)
}

func TestAdjacentTiles(t *testing.T) {
	t.Parallel()

	even := hex.AdjacentTiles(hex.Location{X: 2, Y: 2})
	assert.Equal(t, hex.Location{X: 2, Y: 1}, even[hex.North])
	assert.Equal(t, hex.Location{X: 3, Y: 1}, even[hex.NorthEast])
	assert.Equal(t, hex.Location{X: 3, Y: 2}, even[hex.SouthEast])
	assert.Equal(t, hex.Location{X: 2, Y: 3}, even[hex.South])
	assert.Equal(t, hex.Location{X: 1, Y: 2}, even[hex.SouthWest])
	assert.Equal(t, hex.Location{X: 1, Y: 1}, even[hex.NorthWest])

	odd := hex.AdjacentTiles(hex.Location{X: 3, Y: 2})
	assert.Equal(t, hex.Location{X: 4, Y: 2}, odd[hex.NorthEast])
	assert.Equal(t, hex.Location{X: 4, Y: 3}, odd[hex.SouthEast])
	assert.Equal(t, hex.Location{X: 2, Y: 3}, odd[hex.SouthWest])
	assert.Equal(t, hex.Location{X: 2, Y: 2}, odd[hex.NorthWest])

	for _, dir := range hex.AllDirections() {
		start := hex.Location{X: 4, Y: 4}
		assert.Equal(t, start, start.Neighbour(dir).Neighbour(dir.Opposite()), "direction %s", dir)
	}
}
