package unitfilter_test

import (
	"testing"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/internal/unitfilter"
	"github.com/gruntwork-io/unitfilter/internal/world"
	"github.com/gruntwork-io/unitfilter/pkg/log"
	"github.com/stretchr/testify/require"
)

// newBoard returns a 6x6 grassland board with a hill at (3,3):
//
//	Konrad  side 1  (3,3)  leader on the hill
//	spear1  side 1  (3,2)  north of Konrad, guardian
//	bowman  side 2  (4,3)  south east of Konrad
//	bat     side 2  (6,6)  Walking Corpse bat variation, hides on grass
//	recalled side 1        on the recall list
//
// Sides 1 and 2 are enemies. Side 2 has fog everywhere but columns 1 to 3.
func newBoard(t *testing.T, opts ...world.Option) *world.Board {
	t.Helper()

	gameMap := world.NewMap(6, 6, "Gg")
	gameMap.SetTerrain(hex.FromOneBased(3, 3), "Hh")

	teams := []*world.Team{
		world.NewTeam(1, "north", "human"),
		world.NewTeam(2, "south", "ai").WithFog(world.Area{X: "1-3", Y: "1-6"}),
	}

	types := unit.NewTypes(
		&unit.Type{ID: "Commander", Race: "human"},
		&unit.Type{ID: "Spearman", Race: "human"},
		&unit.Type{ID: "Bowman", Race: "human"},
		&unit.Type{ID: "Walking Corpse", Race: "undead", Variations: []string{"bat", "mounted"}},
		&unit.Type{ID: "Walking Corpse:bat", BaseID: "Walking Corpse", Race: "undead"},
	)

	board := world.NewBoard(log.Discard(), gameMap, teams, append([]world.Option{world.WithTypes(types)}, opts...)...)

	units := []*unit.Unit{
		{
			ID:         "Konrad",
			Name:       "Konrad",
			TypeID:     "Commander",
			Race:       "human",
			Side:       1,
			Level:      2,
			CanRecruit: true,
			Location:   hex.FromOneBased(3, 3),
			Abilities:  []string{"leadership"},
			Attacks:    []unit.Attack{{ID: "sword", Range: "melee", Damage: 7, Strikes: 4}},
			Defense:    map[string]int{"Hh": 50, "Gg": 60},
			Variables:  config.New().Set("mood", "calm"),
		},
		{
			ID:         "spear1",
			TypeID:     "Spearman",
			Race:       "human",
			Side:       1,
			Level:      1,
			Role:       "guard",
			RecallCost: 20,
			Location:   hex.FromOneBased(3, 2),
			Attacks:    []unit.Attack{{ID: "spear", Range: "melee"}},
			Movement:   map[string]int{"Gg": 1},
			States:     map[unit.State]bool{unit.StateGuardian: true},
		},
		{
			ID:       "bowman",
			TypeID:   "Bowman",
			Race:     "human",
			Gender:   unit.Female,
			Side:     2,
			Level:    1,
			Location: hex.FromOneBased(4, 3),
			Attacks:  []unit.Attack{{ID: "bow", Range: "ranged"}},
		},
		{
			ID:        "bat",
			TypeID:    "Walking Corpse:bat",
			Variation: "bat",
			Race:      "undead",
			Side:      2,
			Location:  hex.FromOneBased(6, 6),
			Hides:     []string{"Gg"},
		},
		{
			ID:       "recalled",
			TypeID:   "Spearman",
			Race:     "human",
			Side:     1,
			Level:    1,
			Location: hex.Null,
		},
	}

	for _, u := range units {
		require.NoError(t, board.AddUnit(u))
	}

	return board
}

func parseFilter(t *testing.T, src string) *config.Config {
	t.Helper()

	cfg, err := config.DecodeYAML("filter.yaml", []byte(src))
	require.NoError(t, err)

	return cfg
}

func compileFilter(t *testing.T, board *world.Board, src string) *unitfilter.Filter {
	t.Helper()

	filter, err := unitfilter.New(log.Discard(), parseFilter(t, src), board)
	require.NoError(t, err)

	return filter
}

func unitIDs(units []*unit.Unit) []string {
	ids := []string{}
	for _, u := range units {
		ids = append(ids, u.ID)
	}

	return ids
}
