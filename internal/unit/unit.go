// Package unit holds the units placed on a board and the type registry they refer to.
package unit

import (
	"slices"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/hex"
)

// Values used when a unit has no entry for a terrain.
const (
	DefaultDefense      = 100
	DefaultMovementCost = 99
)

// Gender of a unit.
type Gender int

const (
	Male Gender = iota
	Female
)

// ParseGender reads `male` or `female`. Anything else reads as Male.
func ParseGender(str string) Gender {
	if strings.TrimSpace(str) == "female" {
		return Female
	}

	return Male
}

func (gender Gender) String() string {
	if gender == Female {
		return "female"
	}

	return "male"
}

// State is a named boolean status of a unit.
type State string

const (
	StateGuardian  State = "guardian"
	StateSlowed    State = "slowed"
	StatePoisoned  State = "poisoned"
	StatePetrified State = "petrified"
)

// Attack is one of the weapons of a unit.
type Attack struct {
	ID      string `mapstructure:"id"`
	Range   string `mapstructure:"range"`
	Type    string `mapstructure:"type"`
	Damage  int    `mapstructure:"damage"`
	Strikes int    `mapstructure:"strikes"`
}

// Unit is an entity placed on the board. Units are owned by the board and handed out as
// borrowed pointers.
type Unit struct {
	Variables  *config.Config
	States     map[State]bool
	Defense    map[string]int
	Movement   map[string]int
	ID         string
	Name       string
	TypeID     string
	Variation  string
	Race       string
	Role       string
	Abilities  []string
	Attacks    []Attack
	Hides      []string
	Location   hex.Location
	Side       int
	Level      int
	RecallCost int
	Gender     Gender
	CanRecruit bool
}

// hidesGlobs holds the compiled Hides patterns of every unit, keyed by pattern.
var hidesGlobs = xsync.NewMapOf[string, glob.Glob]()

// HasAbility reports whether the unit has the ability id.
func (u *Unit) HasAbility(id string) bool {
	return slices.Contains(u.Abilities, id)
}

// HasAttack reports whether the unit has an attack with the given id.
func (u *Unit) HasAttack(id string) bool {
	for _, attack := range u.Attacks {
		if attack.ID == id {
			return true
		}
	}

	return false
}

// HasState reports whether the state is set on the unit.
func (u *Unit) HasState(state State) bool {
	return u.States[state]
}

// SetState sets or clears a state.
func (u *Unit) SetState(state State, on bool) {
	if u.States == nil {
		u.States = map[State]bool{}
	}

	u.States[state] = on
}

// DefenseModifier returns the chance to be hit on terrain, DefaultDefense if unknown.
func (u *Unit) DefenseModifier(terrain string) int {
	if val, ok := u.Defense[terrain]; ok {
		return val
	}

	return DefaultDefense
}

// MovementCost returns the cost of entering terrain, DefaultMovementCost if unknown.
func (u *Unit) MovementCost(terrain string) int {
	if val, ok := u.Movement[terrain]; ok {
		return val
	}

	return DefaultMovementCost
}

// HidesIn reports whether the unit conceals itself on terrain. Hides holds glob patterns, a
// pattern that does not compile matches literally.
func (u *Unit) HidesIn(terrain string) bool {
	for _, pattern := range u.Hides {
		g, _ := hidesGlobs.LoadOrCompute(pattern, func() glob.Glob {
			g, err := glob.Compile(pattern)
			if err != nil {
				return glob.MustCompile(glob.QuoteMeta(pattern))
			}

			return g
		})

		if g.Match(terrain) {
			return true
		}
	}

	return false
}

// UnitVariables returns the variables of the unit, never nil.
func (u *Unit) UnitVariables() *config.Config {
	if u.Variables == nil {
		u.Variables = config.New()
	}

	return u.Variables
}

// Write serializes the unit into cfg.
func (u *Unit) Write(cfg *config.Config) {
	cfg.Set("id", u.ID).
		Set("name", u.Name).
		Set("type", u.TypeID).
		Set("variation", u.Variation).
		Set("race", u.Race).
		Set("gender", u.Gender.String()).
		Set("side", strconv.Itoa(u.Side)).
		Set("role", u.Role).
		Set("level", strconv.Itoa(u.Level)).
		Set("recall_cost", strconv.Itoa(u.RecallCost)).
		Set("canrecruit", boolString(u.CanRecruit)).
		Set("abilities", strings.Join(u.Abilities, config.ListSeparator))

	if u.Location.Valid() {
		cfg.Set("x", strconv.Itoa(u.Location.X+1)).Set("y", strconv.Itoa(u.Location.Y+1))
	} else {
		cfg.Set("x", "recall").Set("y", "recall")
	}

	for _, attack := range u.Attacks {
		cfg.AddChild("attack").
			Set("id", attack.ID).
			Set("range", attack.Range).
			Set("type", attack.Type).
			Set("damage", strconv.Itoa(attack.Damage)).
			Set("strikes", strconv.Itoa(attack.Strikes))
	}

	status := cfg.AddChild("status")

	for state, on := range u.States {
		if on {
			status.Set(string(state), "yes")
		}
	}

	cfg.AppendChild("variables", u.UnitVariables().Clone())
}

func boolString(val bool) string {
	if val {
		return "yes"
	}

	return "no"
}
