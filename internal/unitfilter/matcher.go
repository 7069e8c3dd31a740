package unitfilter

import (
	"strconv"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/unit"
	"github.com/gruntwork-io/unitfilter/util"
)

// recallCoordinate as both x and y selects units that are not on the map.
const recallCoordinate = "recall"

func (filter *basicFilter) matches(u *unit.Unit, loc hex.Location) bool {
	// An invalid location is a recall list unit, which the caller has already bound.
	release := func() {}
	if loc.Valid() {
		release = filter.fc.ScopeUnit(ThisUnit, loc)
	}

	// The binding covers the local predicates only. Each child binds again on its own.
	result := filter.matchesLocal(u, loc)
	release()

	for _, cond := range filter.conditions {
		childResult := cond.filter.Matches(u, loc)

		switch cond.kind {
		case childAnd:
			result = result && childResult
		case childOr:
			result = result || childResult
		case childNot:
			result = result && !childResult
		}
	}

	return result
}

func (filter *basicFilter) allMatchesOnMap() []*unit.Unit {
	var matched []*unit.Unit

	for _, u := range filter.fc.Board().Units().OnMap() {
		if filter.matches(u, u.Location) {
			matched = append(matched, u)
		}
	}

	return matched
}

func (filter *basicFilter) firstMatchOnMap() *unit.Unit {
	for _, u := range filter.fc.Board().Units().OnMap() {
		if filter.matches(u, u.Location) {
			return u
		}
	}

	return nil
}

// matchesLocal checks every attribute and sub-filter except the conditional children, stopping
// at the first one that fails.
func (filter *basicFilter) matchesLocal(u *unit.Unit, loc hex.Location) bool {
	board := filter.fc.Board()

	if !filter.name.Blank() && filter.name.String() != u.Name {
		return false
	}

	if !filter.ids.Empty() && !filter.ids.Contains(u.ID) {
		return false
	}

	// speaker is an alias of id for a single unit.
	if !filter.speaker.Blank() && filter.speaker.String() != u.ID {
		return false
	}

	if filter.location != nil && !filter.location.Match(loc) {
		return false
	}

	if filter.side != nil && !filter.side.Match(u.Side) {
		return false
	}

	if !filter.x.Blank() || !filter.y.Blank() {
		switch {
		case filter.x.EqualsString(recallCoordinate) && filter.y.EqualsString(recallCoordinate):
			if board.Map().OnBoard(loc) {
				return false
			}
		case filter.x.Empty() && filter.y.Empty():
			return false
		case !loc.MatchesRange(filter.x.String(), filter.y.String()):
			return false
		}
	}

	if !filter.types.Empty() && !filter.types.Contains(u.TypeID) {
		return false
	}

	if !filter.variations.Empty() && !filter.variations.Contains(u.Variation) {
		return false
	}

	if !filter.hasVariations.Empty() && !filter.matchesHasVariation(u) {
		return false
	}

	if !filter.abilities.Empty() && !filter.matchesAbility(u) {
		return false
	}

	if !filter.races.Empty() && !filter.races.Contains(u.Race) {
		return false
	}

	if !filter.gender.Blank() && unit.ParseGender(filter.gender.String()) != u.Gender {
		return false
	}

	if !filter.sides.Empty() && filter.sideNum != u.Side && !filter.sides.Contains(strconv.Itoa(u.Side)) {
		return false
	}

	if !filter.hasWeapon.Blank() && !u.HasAttack(filter.hasWeapon.String()) {
		return false
	}

	if !filter.role.Blank() && filter.role.String() != u.Role {
		return false
	}

	if !filter.aiSpecial.Blank() && (filter.aiSpecial.String() == string(unit.StateGuardian)) != u.HasState(unit.StateGuardian) {
		return false
	}

	if !filter.canRecruit.Blank() && filter.canRecruit.ToBool(false) != u.CanRecruit {
		return false
	}

	if !filter.recallCost.Blank() && filter.recallCost.ToInt(-1) != u.RecallCost {
		return false
	}

	if !filter.level.Blank() && filter.level.ToInt(-1) != u.Level {
		return false
	}

	if !filter.defense.Blank() && filter.defense.ToInt(-1) != u.DefenseModifier(board.Map().Terrain(loc)) {
		return false
	}

	if !filter.movement.Blank() && filter.movement.ToInt(-1) != u.MovementCost(board.Map().Terrain(loc)) {
		return false
	}

	if len(filter.wml) > 0 && !filter.matchesWML(u) {
		return false
	}

	for _, vision := range filter.vision {
		if !filter.matchesVision(vision, u, loc) {
			return false
		}
	}

	if len(filter.adjacent) > 0 {
		adjacent := hex.AdjacentTiles(loc)

		for _, adj := range filter.adjacent {
			if !filter.matchesAdjacent(adj, adjacent, u) {
				return false
			}
		}
	}

	if !filter.findIn.Blank() && !filter.matchesFindIn(u) {
		return false
	}

	if !filter.formula.Blank() {
		if evaluator := filter.fc.Formulas(); evaluator != nil && !evaluator.MatchesFilter(filter.formula.String(), loc, u) {
			return false
		}
	}

	if !filter.luaFunc.Blank() {
		if kernel := filter.fc.Scripting(); kernel != nil && !kernel.RunFilter(filter.luaFunc.String(), u) {
			return false
		}
	}

	return true
}

// matchesHasVariation looks the variations up on the base type when the unit is itself a
// variation.
func (filter *basicFilter) matchesHasVariation(u *unit.Unit) bool {
	typ, ok := filter.fc.Board().Types().VariationBase(u.TypeID, u.Variation != "")
	if !ok {
		return false
	}

	for _, id := range filter.hasVariations.get() {
		if typ.HasVariation(id) {
			return true
		}
	}

	return false
}

func (filter *basicFilter) matchesAbility(u *unit.Unit) bool {
	for _, id := range filter.abilities.get() {
		if u.HasAbility(id) {
			return true
		}
	}

	return false
}

// matchesWML serializes the unit at most once per call, and not at all for filters that only
// look at the unit's variables.
func (filter *basicFilter) matchesWML(u *unit.Unit) bool {
	var unitCfg *config.Config

	for _, wml := range filter.wml {
		children := wml.Children()

		if len(wml.Attributes()) == 0 && len(children) == 1 && children[0].Key == "variables" {
			if !u.UnitVariables().Matches(children[0].Cfg) {
				return false
			}

			continue
		}

		if unitCfg == nil {
			unitCfg = config.New()
			u.Write(unitCfg)
		}

		if !unitCfg.Matches(wml) {
			return false
		}
	}

	return true
}

// matchesVision passes if any viewer sees the unit as required. Viewers without a team are skipped.
func (filter *basicFilter) matchesVision(vision visionFilter, u *unit.Unit, loc hex.Location) bool {
	board := filter.fc.Board()

	for _, viewer := range vision.viewers {
		team, ok := board.Team(viewer)
		if !ok {
			continue
		}

		hidden := team.Fogged(loc) || board.Concealed(u, loc)
		if vision.visible != hidden {
			return true
		}
	}

	return false
}

func (filter *basicFilter) matchesAdjacent(adj adjacentFilter, adjacent [hex.NumDirections]hex.Location, u *unit.Unit) bool {
	board := filter.fc.Board()
	units := board.Units()
	count := 0

	for _, dir := range adj.dirs {
		other, ok := units.Find(adjacent[dir])
		if !ok || !adj.filter.MatchesUnit(other) {
			continue
		}

		if adj.isEnemy != nil {
			team, ok := board.Team(u.Side)
			if *adj.isEnemy != (ok && team.IsEnemy(other.Side)) {
				continue
			}
		}

		count++
	}

	return util.InRanges(count, adj.counts)
}

// matchesFindIn fails closed: a malformed name, a missing variable or a variable that is not an
// array of records holding the unit's id all reject the unit. Without game data the check is skipped.
func (filter *basicFilter) matchesFindIn(u *unit.Unit) bool {
	store := filter.fc.GameData()
	if store == nil {
		return true
	}

	val, err := store.Get(filter.findIn.String())
	if err != nil {
		return false
	}

	for _, record := range val.AsArray() {
		if id := record.Get("id"); !id.Blank() && id.String() == u.ID {
			return true
		}
	}

	return false
}
