package unitfilter_test

import (
	"bytes"
	"testing"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/formula"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/scripting"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/internal/unitfilter"
	"github.com/gruntwork-io/unitfilter/internal/world"
	"github.com/gruntwork-io/unitfilter/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullFilter(t *testing.T) {
	t.Parallel()

	board := newBoard(t)

	filter, err := unitfilter.New(log.Discard(), nil, board)
	require.NoError(t, err)
	assert.True(t, filter.IsNull())

	for _, u := range board.Units().All() {
		assert.True(t, filter.MatchesUnit(u))
		assert.True(t, filter.Matches(u, hex.Null))
	}

	assert.Equal(t, []string{"Konrad", "spear1", "bowman", "bat"}, unitIDs(filter.AllMatchesOnMap()))
	assert.Equal(t, "Konrad", filter.FirstMatchOnMap().ID)

	empty := world.NewBoard(log.Discard(), world.NewMap(2, 2, "Gg"), []*world.Team{world.NewTeam(1, "north", "human")})

	filter, err = unitfilter.New(log.Discard(), nil, empty)
	require.NoError(t, err)
	assert.Empty(t, filter.AllMatchesOnMap())
	assert.Nil(t, filter.FirstMatchOnMap())

	require.NoError(t, empty.AddUnit(&unit.Unit{ID: "recalled", Side: 1, Location: hex.Null}))
	assert.Empty(t, filter.AllMatchesOnMap())
	assert.Nil(t, filter.FirstMatchOnMap())
}

func TestRecallListUnits(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		filter   string
		expected bool
	}{
		{"recall coordinates", "x: recall\ny: recall", true},
		{"map coordinates", "x: 3", false},
		{"side", "side: 1", true},
		{"filter_wml recall coordinates", "filter_wml:\n  x: recall", true},
		{"not on the recall list", "not:\n  x: recall\n  y: recall", false},
		{"fogged for every viewer", "filter_vision:\n  side: 2\n  visible: no", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			board := newBoard(t)
			filter := compileFilter(t, board, tc.filter)

			recalled, ok := board.Unit("recalled")
			require.True(t, ok)

			assert.Equal(t, tc.expected, filter.Matches(recalled, hex.Null))
			assert.Equal(t, tc.expected, filter.MatchesUnit(recalled))
			assert.NotContains(t, unitIDs(filter.AllMatchesOnMap()), "recalled")
		})
	}
}

func TestEmptyFilterMatchesEveryUnit(t *testing.T) {
	t.Parallel()

	board := newBoard(t)
	filter := compileFilter(t, board, "{}")

	assert.False(t, filter.IsNull())
	assert.Equal(t, []string{"Konrad", "spear1", "bowman", "bat"}, unitIDs(filter.AllMatchesOnMap()))
}

func TestLocalAttributes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		filter   string
		expected []string
	}{
		{"type", "type: Spearman", []string{"spear1"}},
		{"type list", "type: Spearman, Bowman", []string{"spear1", "bowman"}},
		{"id list", "id: Konrad,bowman", []string{"Konrad", "bowman"}},
		{"speaker", "speaker: Konrad", []string{"Konrad"}},
		{"name", "name: Konrad", []string{"Konrad"}},
		{"x and y ranges", "x: 3\ny: 2-3", []string{"Konrad", "spear1"}},
		{"x only", "x: 3", []string{"Konrad", "spear1"}},
		{"recall list is not on the map", "x: recall\ny: recall", []string{}},
		{"empty coordinates", "x: \"\"\ny: \"\"", []string{}},
		{"x with empty y", "x: 3\ny: \"\"", []string{"Konrad", "spear1"}},
		{"empty x alone", "x: \"\"", []string{}},
		{"side number", "side: 2", []string{"bowman", "bat"}},
		{"side list", "side: \"1,2\"", []string{"Konrad", "spear1", "bowman", "bat"}},
		{"race", "race: undead", []string{"bat"}},
		{"gender", "gender: female", []string{"bowman"}},
		{"canrecruit yes", "canrecruit: yes", []string{"Konrad"}},
		{"canrecruit no", "canrecruit: no", []string{"spear1", "bowman", "bat"}},
		{"level", "level: 2", []string{"Konrad"}},
		{"has_weapon", "has_weapon: sword", []string{"Konrad"}},
		{"role", "role: guard", []string{"spear1"}},
		{"ai_special guardian", "ai_special: guardian", []string{"spear1"}},
		{"ai_special other", "ai_special: none", []string{"Konrad", "bowman", "bat"}},
		{"ability list", "ability: skirmisher,leadership", []string{"Konrad"}},
		{"variation", "variation: bat", []string{"bat"}},
		{"has_variation on base type", "has_variation: mounted", []string{"bat"}},
		{"defense at terrain", "defense: 50", []string{"Konrad"}},
		{"movement cost at terrain", "movement_cost: 1", []string{"spear1"}},
		{"default movement cost", "movement_cost: 99", []string{"Konrad", "bowman", "bat"}},
		{"recall_cost", "recall_cost: 20", []string{"spear1"}},
		{"all attributes must hold", "type: Spearman\nx: 3", []string{"spear1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			board := newBoard(t)
			filter := compileFilter(t, board, tc.filter)

			assert.Equal(t, tc.expected, unitIDs(filter.AllMatchesOnMap()))
		})
	}
}

func TestConditionalChildren(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		filter   string
		expected []string
	}{
		{
			name:     "not",
			filter:   "not:\n  side: 2",
			expected: []string{"Konrad", "spear1"},
		},
		{
			// ((Bowman && side 1) || Konrad), not Bowman && (side 1 || Konrad).
			name:     "left fold",
			filter:   "type: Bowman\nand:\n  side: 1\nor:\n  id: Konrad",
			expected: []string{"Konrad"},
		},
		{
			name:     "not then or",
			filter:   "side: 1\nnot:\n  type: Spearman\nor:\n  type: Bowman",
			expected: []string{"Konrad", "bowman"},
		},
		{
			name:     "or widens an unmatched local filter",
			filter:   "id: nobody\nor:\n  race: undead",
			expected: []string{"bat"},
		},
		{
			name:     "nested conditions",
			filter:   "and:\n  side: 1\n  not:\n    x: recall\n    y: recall",
			expected: []string{"Konrad", "spear1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			board := newBoard(t)
			filter := compileFilter(t, board, tc.filter)

			assert.Equal(t, tc.expected, unitIDs(filter.AllMatchesOnMap()))
		})
	}
}

func TestEveryConditionIsEvaluated(t *testing.T) {
	t.Parallel()

	calls := 0
	kernel := scripting.NewRegistry(log.Discard())
	kernel.Register("count", func(*unit.Unit) bool {
		calls++
		return true
	})

	board := newBoard(t, world.WithScripting(kernel))
	filter := compileFilter(t, board, "or:\n  lua_function: count\nand:\n  lua_function: count")

	konrad, ok := board.Unit("Konrad")
	require.True(t, ok)

	assert.True(t, filter.MatchesUnit(konrad))
	assert.Equal(t, 2, calls)
}

func TestSubFilters(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		filter   string
		expected []string
	}{
		{"filter_location terrain", "filter_location:\n  terrain: Hh", []string{"Konrad"}},
		{"filter_location coordinates", "filter_location:\n  x: 1-3", []string{"Konrad", "spear1"}},
		{"filter_side team name", "filter_side:\n  team_name: south", []string{"bowman", "bat"}},
		{"filter_side enemy_of", "filter_side:\n  enemy_of:\n    side: 1", []string{"bowman", "bat"}},
		{"filter_vision fog", "filter_vision:\n  side: 2\n  visible: no", []string{"bowman", "bat"}},
		{"filter_vision visible", "filter_vision:\n  side: 2", []string{"Konrad", "spear1"}},
		{"filter_vision concealment", "filter_vision:\n  side: 1", []string{"Konrad", "spear1", "bowman"}},
		{"filter_vision without viewers", "filter_vision:\n  side: 7", []string{}},
		{"filter_adjacent default count", "filter_adjacent: {}", []string{"Konrad", "spear1", "bowman"}},
		{"filter_adjacent direction", "filter_adjacent:\n  adjacent: n\n  count: 1", []string{"Konrad"}},
		{"filter_adjacent opposite direction", "filter_adjacent:\n  adjacent: -s", []string{"Konrad"}},
		{"filter_adjacent is_enemy", "filter_adjacent:\n  is_enemy: yes", []string{"Konrad", "bowman"}},
		{"filter_adjacent allies", "filter_adjacent:\n  is_enemy: no", []string{"Konrad", "spear1"}},
		{"filter_adjacent zero count", "filter_adjacent:\n  type: Spearman\n  count: 0", []string{"spear1", "bowman", "bat"}},
		{"two filter_adjacent", "filter_adjacent:\n  side: 1\nfilter_adjacent:\n  side: 2", []string{"Konrad"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			board := newBoard(t)
			filter := compileFilter(t, board, tc.filter)

			assert.Equal(t, tc.expected, unitIDs(filter.AllMatchesOnMap()))
		})
	}
}

func TestVisionFollowsConcealmentChanges(t *testing.T) {
	t.Parallel()

	board := newBoard(t)
	filter := compileFilter(t, board, "filter_vision:\n  side: 1")

	bat, ok := board.Unit("bat")
	require.True(t, ok)

	assert.False(t, filter.MatchesUnit(bat))

	bat.Hides = []string{"Hh"}
	assert.True(t, filter.MatchesUnit(bat))
	assert.False(t, filter.Matches(bat, hex.FromOneBased(3, 3)))

	bat.Hides = []string{"Gg"}
	assert.False(t, filter.MatchesUnit(bat))
}

func TestFilterWML(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		filter   string
		expected []string
	}{
		{"variables only", "filter_wml:\n  variables:\n    mood: calm", []string{"Konrad"}},
		{"attributes and attack", "filter_wml:\n  canrecruit: yes\n  attack:\n    id: sword", []string{"Konrad"}},
		{"status", "filter_wml:\n  status:\n    guardian: yes", []string{"spear1"}},
		{"recall coordinates", "filter_wml:\n  x: recall", []string{}},
		{"not child", "filter_wml:\n  not:\n    race: human", []string{"bat"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			board := newBoard(t)
			filter := compileFilter(t, board, tc.filter)

			assert.Equal(t, tc.expected, unitIDs(filter.AllMatchesOnMap()))
		})
	}
}

func TestFilterKeepsItsOwnCopyOfTheDescription(t *testing.T) {
	t.Parallel()

	board := newBoard(t)
	cfg := parseFilter(t, "filter_wml:\n  variables:\n    mood: calm")

	filter, err := unitfilter.New(log.Discard(), cfg, board)
	require.NoError(t, err)

	cfg.Child("filter_wml").Child("variables").Set("mood", "angry")

	assert.Equal(t, []string{"Konrad"}, unitIDs(filter.AllMatchesOnMap()))
}

func TestFindIn(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		filter   string
		expected []string
	}{
		{"array of records", "find_in: heroes", []string{"Konrad", "bat"}},
		{"indexed record", "find_in: heroes[1]", []string{"bat"}},
		{"missing variable", "find_in: villains", []string{}},
		{"scalar variable", "find_in: turn", []string{}},
		{"invalid name", "find_in: \"heroes[\"", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			board := newBoard(t)
			require.NoError(t, board.Variables().SetArray("heroes", []*config.Config{
				config.New().Set("id", "Konrad"),
				config.New().Set("id", "bat"),
			}))
			require.NoError(t, board.Variables().Set("turn", "3"))

			filter := compileFilter(t, board, tc.filter)

			assert.Equal(t, tc.expected, unitIDs(filter.AllMatchesOnMap()))
		})
	}
}

func TestFindInWithoutGameData(t *testing.T) {
	t.Parallel()

	board := newBoard(t, world.WithVariables(nil))
	filter := compileFilter(t, board, "find_in: heroes")

	assert.Len(t, filter.AllMatchesOnMap(), 4)
}

func TestThisUnitIsScopedToTheEvaluation(t *testing.T) {
	t.Parallel()

	board := newBoard(t)
	require.NoError(t, board.Variables().SetArray(unitfilter.ThisUnit, []*config.Config{config.New().Set("id", "outer")}))

	filter := compileFilter(t, board, "find_in: this_unit")

	assert.Equal(t, []string{"Konrad", "spear1", "bowman", "bat"}, unitIDs(filter.AllMatchesOnMap()))

	// A recall list unit is not bound, so the outer value is seen.
	recalled, ok := board.Unit("recalled")
	require.True(t, ok)
	assert.False(t, filter.MatchesUnit(recalled))

	val, err := board.Variables().Get(unitfilter.ThisUnit)
	require.NoError(t, err)

	records := val.AsArray()
	require.Len(t, records, 1)
	assert.Equal(t, "outer", records[0].Get("id").String())
}

// scopeRecorder tracks how deeply ThisUnit bindings nest.
type scopeRecorder struct {
	unitfilter.Context

	depth    int
	maxDepth int
	binds    int
}

func (rec *scopeRecorder) ScopeUnit(name string, loc hex.Location) func() {
	rec.binds++
	rec.depth++
	rec.maxDepth = max(rec.maxDepth, rec.depth)

	release := rec.Context.ScopeUnit(name, loc)

	return func() {
		release()
		rec.depth--
	}
}

func TestThisUnitIsReleasedBeforeConditionalChildren(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		filter string
		binds  int
	}{
		{
			name:   "and",
			filter: "side: 1\nand:\n  find_in: this_unit",
			binds:  2,
		},
		{
			name:   "nested not",
			filter: "side: 1\nand:\n  race: human\n  not:\n    type: Bowman",
			binds:  3,
		},
		{
			name:   "or after not",
			filter: "id: nobody\nnot:\n  side: 2\nor:\n  find_in: this_unit",
			binds:  3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			board := newBoard(t)
			rec := &scopeRecorder{Context: board}

			filter, err := unitfilter.New(log.Discard(), parseFilter(t, tc.filter), rec)
			require.NoError(t, err)

			konrad, ok := board.Unit("Konrad")
			require.True(t, ok)

			filter.MatchesUnit(konrad)

			assert.Equal(t, tc.binds, rec.binds)
			assert.Equal(t, 1, rec.maxDepth)
			assert.Zero(t, rec.depth)
		})
	}
}

func TestThisUnitIsBoundToTheUnitAtTheLocation(t *testing.T) {
	t.Parallel()

	board := newBoard(t)
	filter := compileFilter(t, board, "find_in: this_unit")

	spear, ok := board.Unit("spear1")
	require.True(t, ok)

	konrad, ok := board.Unit("Konrad")
	require.True(t, ok)

	assert.True(t, filter.MatchesUnit(spear))
	assert.False(t, filter.Matches(spear, konrad.Location))
}

func TestMatchesAtAnotherLocation(t *testing.T) {
	t.Parallel()

	board := newBoard(t)
	filter := compileFilter(t, board, "x: 1\ny: 1")

	spear, ok := board.Unit("spear1")
	require.True(t, ok)

	assert.False(t, filter.MatchesUnit(spear))
	assert.True(t, filter.Matches(spear, hex.FromOneBased(1, 1)))
}

func TestFirstMatchOnMap(t *testing.T) {
	t.Parallel()

	board := newBoard(t)

	first := compileFilter(t, board, "side: 2").FirstMatchOnMap()
	require.NotNil(t, first)
	assert.Equal(t, "bowman", first.ID)

	assert.Nil(t, compileFilter(t, board, "type: Ghost").FirstMatchOnMap())
}

func TestFormula(t *testing.T) {
	t.Parallel()

	board := newBoard(t)

	assert.Equal(t, []string{"Konrad"}, unitIDs(compileFilter(t, board, "formula: unit.level >= 2").AllMatchesOnMap()))
	assert.Equal(t, []string{"bowman"}, unitIDs(compileFilter(t, board, "formula: loc.x == 4").AllMatchesOnMap()))
	assert.Equal(t, []string{}, unitIDs(compileFilter(t, board, "formula: unit.level +").AllMatchesOnMap()))
}

func TestFormulaWithCustomEvaluator(t *testing.T) {
	t.Parallel()

	board := newBoard(t, world.WithFormulas(formula.Static{"leader": true}))

	assert.Len(t, compileFilter(t, board, "formula: leader").AllMatchesOnMap(), 5)
	assert.Empty(t, compileFilter(t, board, "formula: follower").AllMatchesOnMap())
}

func TestFormulaWithoutEvaluator(t *testing.T) {
	t.Parallel()

	board := newBoard(t, world.WithFormulas(nil))

	assert.Len(t, compileFilter(t, board, "formula: unit.level >= 2").AllMatchesOnMap(), 5)
}

func TestLuaFunction(t *testing.T) {
	t.Parallel()

	kernel := scripting.NewRegistry(log.Discard())
	kernel.Register("is_leader", func(u *unit.Unit) bool { return u.CanRecruit })

	board := newBoard(t, world.WithScripting(kernel))

	assert.Equal(t, []string{"Konrad"}, unitIDs(compileFilter(t, board, "lua_function: is_leader").AllMatchesOnMap()))
	assert.Empty(t, compileFilter(t, board, "lua_function: unknown").AllMatchesOnMap())

	// Without a kernel the check is skipped.
	assert.Len(t, compileFilter(t, newBoard(t), "lua_function: is_leader").AllMatchesOnMap(), 5)
}

func TestMultipleChildrenError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		filter string
		tag    string
	}{
		{"filter_location", "filter_location:\n  x: 1\nfilter_location:\n  x: 2", unitfilter.TagFilterLocation},
		{"filter_side", "filter_side:\n  side: 1\nfilter_side:\n  side: 2", unitfilter.TagFilterSide},
		{"nested in and", "and:\n  filter_side:\n    side: 1\n  filter_side:\n    side: 2", unitfilter.TagFilterSide},
		{"nested in filter_adjacent", "filter_adjacent:\n  filter_location:\n    x: 1\n  filter_location:\n    x: 2", unitfilter.TagFilterLocation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := unitfilter.New(log.Discard(), parseFilter(t, tc.filter), newBoard(t))
			require.Error(t, err)

			var multiple unitfilter.MultipleChildrenError
			require.True(t, errors.As(err, &multiple))
			assert.Equal(t, tc.tag, multiple.Tag)
		})
	}
}

func TestUnknownChildIsIgnored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := log.New(log.WithOutput(&buf), log.WithLevel(log.DebugLevel))
	board := newBoard(t)

	filter, err := unitfilter.New(l, parseFilter(t, "side: 1\nfilter_bogus:\n  side: 2"), board)
	require.NoError(t, err)

	assert.Equal(t, []string{"Konrad", "spear1"}, unitIDs(filter.AllMatchesOnMap()))
	assert.Contains(t, buf.String(), "filter_bogus")
}
