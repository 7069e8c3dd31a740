package world

import (
	"context"
	_ "embed"
	"strconv"
	"sync"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/formula"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/scripting"
	"github.com/gruntwork-io/unitfilter/internal/telemetry"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/internal/variables"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

// RecallCoordinate places a unit on the recall list instead of the map.
const RecallCoordinate = "recall"

//go:embed scenario.schema.json
var scenarioSchemaSource string

var scenarioSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("scenario.schema.json", scenarioSchemaSource)
})

// Scenario is a loaded scenario document.
type Scenario struct {
	Board *Board
	Name  string
	Path  string
}

type scenarioDoc struct {
	Variables map[string]any    `mapstructure:"variables"`
	Scripts   map[string]string `mapstructure:"scripts"`
	Name      string            `mapstructure:"name"`
	Map       string            `mapstructure:"map"`
	Sides     []sideDoc         `mapstructure:"sides"`
	Types     []*unit.Type      `mapstructure:"types"`
	Units     []map[string]any  `mapstructure:"units"`
}

type sideDoc struct {
	TeamName   string `mapstructure:"team_name"`
	Controller string `mapstructure:"controller"`
	Enemies    []int  `mapstructure:"enemies"`
	Clear      []Area `mapstructure:"clear"`
	Fog        bool   `mapstructure:"fog"`
}

type unitDoc struct {
	Variables  map[string]any  `mapstructure:"variables"`
	Status     map[string]bool `mapstructure:"status"`
	Defense    map[string]int  `mapstructure:"defense"`
	Movement   map[string]int  `mapstructure:"movement_costs"`
	ID         string          `mapstructure:"id"`
	Name       string          `mapstructure:"name"`
	Type       string          `mapstructure:"type"`
	Variation  string          `mapstructure:"variation"`
	Race       string          `mapstructure:"race"`
	Gender     string          `mapstructure:"gender"`
	Role       string          `mapstructure:"role"`
	X          string          `mapstructure:"x"`
	Y          string          `mapstructure:"y"`
	Abilities  []string        `mapstructure:"abilities"`
	Hides      []string        `mapstructure:"hides"`
	Attacks    []unit.Attack   `mapstructure:"attacks"`
	Side       int             `mapstructure:"side"`
	Level      int             `mapstructure:"level"`
	RecallCost int             `mapstructure:"recall_cost"`
	CanRecruit bool            `mapstructure:"canrecruit"`
}

// LoadScenario reads the scenario at path, a YAML or JSON document optionally compressed as .zst.
// Every unit problem is reported, collected into one error.
func LoadScenario(ctx context.Context, l log.Logger, path string, opts ...Option) (*Scenario, error) {
	var scenario *Scenario

	err := telemetry.TelemeterFromContext(ctx).Collect(ctx, "scenario_load", map[string]any{"scenario.path": path}, func(_ context.Context) error {
		src, err := config.ReadSource(path)
		if err != nil {
			return err
		}

		scenario, err = ParseScenario(l, path, src, opts...)

		return err
	})

	return scenario, err
}

// ValidateScenario checks a decoded scenario document against the scenario schema.
func ValidateScenario(path string, doc any) error {
	schema, err := scenarioSchema()
	if err != nil {
		return errors.New(err)
	}

	if err := schema.Validate(doc); err != nil {
		return errors.New(SchemaError{Path: path, Cause: err})
	}

	return nil
}

// ParseScenario builds a scenario from document source. Options are applied after the ones the
// document implies, so they take precedence.
func ParseScenario(l log.Logger, path string, src []byte, opts ...Option) (*Scenario, error) {
	var raw any

	if err := yaml.Unmarshal(src, &raw); err != nil {
		return nil, errors.New(config.DecodeError{Filename: path, Msg: err.Error()})
	}

	if err := ValidateScenario(path, raw); err != nil {
		return nil, err
	}

	var doc scenarioDoc

	if err := decode(raw, &doc); err != nil {
		return nil, errors.New(config.DecodeError{Filename: path, Msg: err.Error()})
	}

	gameMap, err := ParseMap(doc.Map)
	if err != nil {
		return nil, errors.WithPrefix(err, "scenario %s", path)
	}

	teams := make([]*Team, 0, len(doc.Sides))

	for i, side := range doc.Sides {
		team := NewTeam(i+1, side.TeamName, side.Controller)
		if side.TeamName == "" {
			team.TeamName = strconv.Itoa(i + 1)
		}

		if side.Enemies != nil {
			team.WithEnemies(side.Enemies...)
		}

		if side.Fog {
			team.WithFog(side.Clear...)
		}

		teams = append(teams, team)
	}

	evaluator := formula.NewHCLEvaluator(l)
	boardOpts := []Option{
		WithTypes(unit.NewTypes(doc.Types...)),
		WithVariables(variables.NewMemoryFrom(config.FromMap(doc.Variables))),
		WithFormulas(evaluator),
	}

	if len(doc.Scripts) > 0 {
		registry := scripting.NewRegistry(l)
		for name, expr := range doc.Scripts {
			registry.RegisterFormula(name, expr, evaluator)
		}

		boardOpts = append(boardOpts, WithScripting(registry))
	}

	board := NewBoard(l, gameMap, teams, append(boardOpts, opts...)...)

	errs := &errors.MultiError{}

	for i, data := range doc.Units {
		u, err := buildUnit(board.Types(), data)
		if err != nil {
			errs = errs.Append(errors.New(UnitError{Index: i, ID: u.ID, Msg: err.Error()}))
			continue
		}

		if err := board.AddUnit(u); err != nil {
			errs = errs.Append(err)
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, errors.WithPrefix(err, "scenario %s", path)
	}

	l.WithField(log.FieldKeyScenario, path).Debugf("Loaded %d units on a %dx%d map", len(board.units), gameMap.Width(), gameMap.Height())

	return &Scenario{Board: board, Name: doc.Name, Path: path}, nil
}

// buildUnit decodes a unit record, filling what it leaves out from its type. The returned unit
// is never nil, so its id can be reported with an error.
func buildUnit(types *unit.Types, data map[string]any) (*unit.Unit, error) {
	var doc unitDoc

	if err := decode(data, &doc); err != nil {
		return &unit.Unit{}, err
	}

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	typ, ok := types.Find(doc.Type)
	if !ok {
		return &unit.Unit{ID: doc.ID}, errors.Errorf("unknown unit type %q", doc.Type)
	}

	defaults := unitDoc{
		Race:       typ.Race,
		Level:      typ.Level,
		RecallCost: typ.RecallCost,
		Abilities:  typ.Abilities,
		Attacks:    typ.Attacks,
		Hides:      typ.Hides,
		Defense:    typ.Defense,
		Movement:   typ.Movement,
	}

	if err := mergo.Merge(&doc, defaults); err != nil {
		return &unit.Unit{ID: doc.ID}, errors.New(err)
	}

	loc, err := location(doc.X, doc.Y)
	if err != nil {
		return &unit.Unit{ID: doc.ID}, err
	}

	u := &unit.Unit{
		ID:         doc.ID,
		Name:       doc.Name,
		TypeID:     doc.Type,
		Variation:  doc.Variation,
		Race:       doc.Race,
		Gender:     unit.ParseGender(doc.Gender),
		Side:       doc.Side,
		Role:       doc.Role,
		Level:      doc.Level,
		RecallCost: doc.RecallCost,
		CanRecruit: doc.CanRecruit,
		Location:   loc,
		Abilities:  doc.Abilities,
		Attacks:    doc.Attacks,
		Hides:      doc.Hides,
		Defense:    doc.Defense,
		Movement:   doc.Movement,
		Variables:  config.FromMap(doc.Variables),
	}

	for state, on := range doc.Status {
		u.SetState(unit.State(state), on)
	}

	return u, nil
}

// location reads one-based coordinates. Both missing or both `recall` put the unit on the recall
// list.
func location(x, y string) (hex.Location, error) {
	if (x == "" && y == "") || (x == RecallCoordinate && y == RecallCoordinate) {
		return hex.Null, nil
	}

	xNum, xErr := strconv.Atoi(x)
	yNum, yErr := strconv.Atoi(y)

	if xErr != nil || yErr != nil {
		return hex.Null, errors.Errorf("bad location x=%q y=%q", x, y)
	}

	return hex.FromOneBased(xNum, yNum), nil
}

func decode(input, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return errors.New(err)
	}

	return decoder.Decode(input)
}
