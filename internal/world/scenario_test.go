package world_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/internal/world"
	"github.com/gruntwork-io/unitfilter/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const crossing = `
name: The Crossing
map: |
  Gg, Gg, Hh
  Gg, Ww, Gg
sides:
  - team_name: north
    controller: human
  - team_name: south
    controller: ai
    fog: true
    clear:
      - x: 1-2
        y: 1-2
types:
  - id: Spearman
    race: human
    level: 1
    recall_cost: 14
    attacks:
      - id: spear
        range: melee
        damage: 7
        strikes: 3
    defense:
      Gg: 60
  - id: Elvish Fighter
    race: elf
    level: 1
units:
  - id: Konrad
    type: Spearman
    side: 1
    x: 1
    y: 1
    canrecruit: true
    level: 2
    variables:
      mood: calm
  - type: Spearman
    side: 1
    x: recall
    y: recall
  - id: Kalenz
    type: Elvish Fighter
    side: 2
    x: 3
    y: 1
    status:
      guardian: true
variables:
  heroes:
    - id: Konrad
  turn: 3
scripts:
  is_leader: unit.canrecruit
`

func TestParseScenario(t *testing.T) {
	t.Parallel()

	scenario, err := world.ParseScenario(log.Discard(), "crossing.yaml", []byte(crossing))
	require.NoError(t, err)

	assert.Equal(t, "The Crossing", scenario.Name)
	assert.Equal(t, "crossing.yaml", scenario.Path)

	board := scenario.Board
	assert.Equal(t, 2, board.NumSides())
	assert.Equal(t, "Ww", board.Map().Terrain(hex.FromOneBased(2, 2)))
	require.Len(t, board.Units().All(), 3)

	konrad, ok := board.Unit("Konrad")
	require.True(t, ok)
	assert.Equal(t, hex.FromOneBased(1, 1), konrad.Location)
	assert.Equal(t, 2, konrad.Level, "explicit values win over the type")
	assert.Equal(t, 14, konrad.RecallCost)
	assert.Equal(t, "human", konrad.Race)
	assert.True(t, konrad.CanRecruit)
	assert.True(t, konrad.HasAttack("spear"))
	assert.Equal(t, 60, konrad.DefenseModifier("Gg"))
	assert.Equal(t, "calm", konrad.UnitVariables().Get("mood").String())

	recalled := board.Units().All()[1]
	assert.False(t, recalled.Location.Valid())
	assert.Equal(t, 1, recalled.Level)

	_, err = uuid.Parse(recalled.ID)
	require.NoError(t, err, "units without an id get a generated one")

	kalenz, ok := board.Unit("Kalenz")
	require.True(t, ok)
	assert.True(t, kalenz.HasState(unit.StateGuardian))
	assert.Equal(t, "elf", kalenz.Race)

	north, ok := board.Team(1)
	require.True(t, ok)
	assert.True(t, north.IsEnemy(2))
	assert.Equal(t, "human", north.Controller())

	south, ok := board.Team(2)
	require.True(t, ok)
	assert.True(t, south.Fogged(hex.FromOneBased(3, 1)))
	assert.False(t, south.Fogged(hex.FromOneBased(2, 2)))

	heroes, err := board.Variables().Get("heroes")
	require.NoError(t, err)
	require.Len(t, heroes.AsArray(), 1)
	assert.Equal(t, "Konrad", heroes.AsArray()[0].Get("id").String())

	turn, err := board.Variables().Get("turn")
	require.NoError(t, err)
	assert.Equal(t, 3, turn.Scalar().ToInt(0))

	require.NotNil(t, board.Scripting())
	assert.True(t, board.Scripting().RunFilter("is_leader", konrad))
	assert.False(t, board.Scripting().RunFilter("is_leader", kalenz))
}

func TestLoadScenarioFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	plain := filepath.Join(dir, "crossing.yaml")
	require.NoError(t, os.WriteFile(plain, []byte(crossing), 0o644))

	compressed := filepath.Join(dir, "crossing.yaml"+config.CompressedExt)
	require.NoError(t, config.CompressFile(compressed, []byte(crossing)))

	for _, path := range []string{plain, compressed} {
		scenario, err := world.LoadScenario(context.Background(), log.Discard(), path)
		require.NoError(t, err, path)
		assert.Len(t, scenario.Board.Units().All(), 3, path)
		assert.Equal(t, path, scenario.Path)
	}

	_, err := world.LoadScenario(context.Background(), log.Discard(), filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestParseScenarioSchemaErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
	}{
		{"missing sides", "map: Gg\n"},
		{"unknown key", "map: Gg\nsides: [{}]\ncolour: red\n"},
		{"no sides", "map: Gg\nsides: []\n"},
		{"bad controller", "map: Gg\nsides:\n  - controller: robot\n"},
		{"side is not a number", "map: Gg\nsides: [{}]\nunits:\n  - type: Spearman\n    side: one\n"},
		{"bad coordinate", "map: Gg\nsides: [{}]\nunits:\n  - type: Spearman\n    side: 1\n    x: 0\n    y: 1\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := world.ParseScenario(log.Discard(), "bad.yaml", []byte(tc.src))
			require.Error(t, err)

			var schemaErr world.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, "bad.yaml", schemaErr.Path)
		})
	}
}

func TestParseScenarioReportsEveryUnitError(t *testing.T) {
	t.Parallel()

	src := `
map: Gg, Gg
sides:
  - team_name: north
types:
  - id: Spearman
units:
  - id: ghost
    type: Ghost
    side: 1
  - id: lost
    type: Spearman
    side: 3
  - id: first
    type: Spearman
    side: 1
    x: 1
    y: 1
  - id: second
    type: Spearman
    side: 1
    x: 1
    y: 1
`

	_, err := world.ParseScenario(log.Discard(), "units.yaml", []byte(src))
	require.Error(t, err)

	errs := errors.UnwrapMultiErrors(err)
	require.Len(t, errs, 3)

	ids := []string{}

	for _, err := range errs {
		var unitErr world.UnitError
		require.True(t, errors.As(err, &unitErr), err.Error())

		ids = append(ids, unitErr.ID)
	}

	assert.Equal(t, []string{"ghost", "lost", "second"}, ids)
	assert.Contains(t, err.Error(), "units.yaml")
	assert.Contains(t, err.Error(), `unknown unit type "Ghost"`)
}

func TestParseScenarioRejectsMalformedDocuments(t *testing.T) {
	t.Parallel()

	_, err := world.ParseScenario(log.Discard(), "broken.yaml", []byte("map: [Gg\n"))
	require.Error(t, err)

	var decodeErr config.DecodeError
	require.True(t, errors.As(err, &decodeErr))

	_, err = world.ParseScenario(log.Discard(), "ragged.yaml", []byte("map: \"Gg, Gg\\nGg\"\nsides: [{}]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ragged.yaml")
}
