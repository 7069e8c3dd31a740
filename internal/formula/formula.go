// Package formula evaluates the `formula` predicates of unit filters.
//
// Formulas are HCL expressions evaluated against two variables, `unit` and `loc`:
//
//	unit.level >= 2 && contains(unit.abilities, "leadership")
//	loc.x == 5 || unit.variables.mood == "angry"
//
// A formula matches when it evaluates to true. Parse and evaluation errors are logged and read as
// false.
package formula

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/pkg/log"
)

// Evaluator decides formula predicates for a unit at a location.
type Evaluator interface {
	MatchesFilter(formula string, loc hex.Location, u *unit.Unit) bool
}

// EvaluationError is logged when a formula cannot be decided.
type EvaluationError struct {
	Formula string
	Msg     string
}

func (err EvaluationError) Error() string {
	return "formula " + err.Formula + ": " + err.Msg
}

type parsed struct {
	expr hclsyntax.Expression
	err  error
}

// HCLEvaluator evaluates formulas as HCL expressions. Each distinct formula is parsed once.
type HCLEvaluator struct {
	logger    log.Logger
	parsed    *xsync.MapOf[string, parsed]
	functions map[string]function.Function
}

// NewHCLEvaluator returns an evaluator that logs failures to l.
func NewHCLEvaluator(l log.Logger) *HCLEvaluator {
	return &HCLEvaluator{
		logger: l,
		parsed: xsync.NewMapOf[string, parsed](),
		functions: map[string]function.Function{
			"contains": stdlib.ContainsFunc,
			"length":   stdlib.LengthFunc,
			"lower":    stdlib.LowerFunc,
			"upper":    stdlib.UpperFunc,
			"min":      stdlib.MinFunc,
			"max":      stdlib.MaxFunc,
			"abs":      stdlib.AbsoluteFunc,
		},
	}
}

// MatchesFilter implements Evaluator.
func (evaluator *HCLEvaluator) MatchesFilter(formula string, loc hex.Location, u *unit.Unit) bool {
	ok, err := evaluator.Evaluate(formula, loc, u)
	if err != nil {
		evaluator.logger.WithField(log.FieldKeyUnit, u.ID).Warnf("%v", err)
		return false
	}

	return ok
}

// Evaluate returns the boolean result of formula, or an error if it does not parse or does not
// produce a boolean.
func (evaluator *HCLEvaluator) Evaluate(formula string, loc hex.Location, u *unit.Unit) (bool, error) {
	expr, err := evaluator.parse(formula)
	if err != nil {
		return false, err
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"unit": UnitValue(u),
			"loc":  LocationValue(loc),
		},
		Functions: evaluator.functions,
	}

	val, diags := expr.Value(ctx)
	if diags.HasErrors() {
		return false, errors.New(EvaluationError{Formula: formula, Msg: diags.Error()})
	}

	if val.IsNull() || !val.IsKnown() {
		return false, errors.New(EvaluationError{Formula: formula, Msg: "result is null"})
	}

	val, err = convert.Convert(val, cty.Bool)
	if err != nil {
		return false, errors.New(EvaluationError{Formula: formula, Msg: "result is not a bool: " + err.Error()})
	}

	return val.True(), nil
}

func (evaluator *HCLEvaluator) parse(formula string) (hclsyntax.Expression, error) {
	if cached, ok := evaluator.parsed.Load(formula); ok {
		return cached.expr, cached.err
	}

	expr, diags := hclsyntax.ParseExpression([]byte(formula), "formula", hcl.InitialPos)

	result := parsed{expr: expr}
	if diags.HasErrors() {
		result.err = errors.New(EvaluationError{Formula: formula, Msg: diags.Error()})
	}

	evaluator.parsed.Store(formula, result)

	return result.expr, result.err
}

// UnitValue exposes the filterable attributes of u to formulas.
func UnitValue(u *unit.Unit) cty.Value {
	abilities := cty.ListValEmpty(cty.String)
	if len(u.Abilities) > 0 {
		vals := make([]cty.Value, 0, len(u.Abilities))
		for _, ability := range u.Abilities {
			vals = append(vals, cty.StringVal(ability))
		}

		abilities = cty.ListVal(vals)
	}

	attacks := cty.ListValEmpty(cty.String)
	if len(u.Attacks) > 0 {
		vals := make([]cty.Value, 0, len(u.Attacks))
		for _, attack := range u.Attacks {
			vals = append(vals, cty.StringVal(attack.ID))
		}

		attacks = cty.ListVal(vals)
	}

	vars := cty.MapValEmpty(cty.String)
	if attrs := u.UnitVariables().Attributes(); len(attrs) > 0 {
		vals := make(map[string]cty.Value, len(attrs))
		for _, attr := range attrs {
			vals[attr.Key] = cty.StringVal(attr.Value)
		}

		vars = cty.MapVal(vals)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"id":          cty.StringVal(u.ID),
		"name":        cty.StringVal(u.Name),
		"type":        cty.StringVal(u.TypeID),
		"variation":   cty.StringVal(u.Variation),
		"race":        cty.StringVal(u.Race),
		"gender":      cty.StringVal(u.Gender.String()),
		"role":        cty.StringVal(u.Role),
		"side":        cty.NumberIntVal(int64(u.Side)),
		"level":       cty.NumberIntVal(int64(u.Level)),
		"recall_cost": cty.NumberIntVal(int64(u.RecallCost)),
		"canrecruit":  cty.BoolVal(u.CanRecruit),
		"guardian":    cty.BoolVal(u.HasState(unit.StateGuardian)),
		"abilities":   abilities,
		"attacks":     attacks,
		"variables":   vars,
	})
}

// LocationValue exposes loc with one-based coordinates. Off map locations read as 0,0.
func LocationValue(loc hex.Location) cty.Value {
	x, y := 0, 0
	if loc.Valid() {
		x, y = loc.X+1, loc.Y+1
	}

	return cty.ObjectVal(map[string]cty.Value{
		"x": cty.NumberIntVal(int64(x)),
		"y": cty.NumberIntVal(int64(y)),
	})
}

// Static is an Evaluator that answers from a fixed table keyed by trimmed formula, false for
// formulas it does not know.
type Static map[string]bool

// MatchesFilter implements Evaluator.
func (table Static) MatchesFilter(formula string, _ hex.Location, _ *unit.Unit) bool {
	return table[strings.TrimSpace(formula)]
}
