package unitfilter

import (
	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
	"github.com/gruntwork-io/unitfilter/internal/hex"
	"github.com/gruntwork-io/unitfilter/internal/sidefilter"
	"github.com/gruntwork-io/unitfilter/internal/terrainfilter"
	"github.com/gruntwork-io/unitfilter/pkg/log"
	"github.com/gruntwork-io/unitfilter/util"
)

// Child tags recognised by the basic filter.
const (
	TagAnd            = "and"
	TagOr             = "or"
	TagNot            = "not"
	TagFilterVision   = "filter_vision"
	TagFilterAdjacent = "filter_adjacent"
	TagFilterLocation = "filter_location"
	TagFilterSide     = "filter_side"
	TagFilterWML      = "filter_wml"
)

// DefaultAdjacentCount is the count range of a [filter_adjacent] without `count`.
const DefaultAdjacentCount = "1-6"

// childKind classifies a child of a filter. Each child is classified once, at construction.
type childKind int

const (
	childUnrecognized childKind = iota
	childAnd
	childOr
	childNot
	childVision
	childAdjacent
	childLocation
	childSide
	childRawAttributes
)

func classifyChild(key string) childKind {
	switch key {
	case TagAnd:
		return childAnd
	case TagOr:
		return childOr
	case TagNot:
		return childNot
	case TagFilterVision:
		return childVision
	case TagFilterAdjacent:
		return childAdjacent
	case TagFilterLocation:
		return childLocation
	case TagFilterSide:
		return childSide
	case TagFilterWML:
		return childRawAttributes
	}

	return childUnrecognized
}

// conditional is an [and], [or] or [not] child.
type conditional struct {
	filter *Filter
	kind   childKind
}

type visionFilter struct {
	viewers []int
	visible bool
}

type adjacentFilter struct {
	filter  *Filter
	isEnemy *bool
	dirs    []hex.Direction
	counts  util.Ranges
}

// basicFilter is a compiled non-null filter.
type basicFilter struct {
	fc Context

	name       config.AttributeValue
	speaker    config.AttributeValue
	x          config.AttributeValue
	y          config.AttributeValue
	gender     config.AttributeValue
	hasWeapon  config.AttributeValue
	role       config.AttributeValue
	aiSpecial  config.AttributeValue
	canRecruit config.AttributeValue
	recallCost config.AttributeValue
	level      config.AttributeValue
	defense    config.AttributeValue
	movement   config.AttributeValue
	findIn     config.AttributeValue
	formula    config.AttributeValue
	luaFunc    config.AttributeValue

	ids           *lazyStringList
	types         *lazyStringList
	variations    *lazyStringList
	hasVariations *lazyStringList
	abilities     *lazyStringList
	races         *lazyStringList
	sides         *lazyStringList
	sideNum       int

	location *terrainfilter.Filter
	side     *sidefilter.Filter

	wml        []*config.Config
	vision     []visionFilter
	adjacent   []adjacentFilter
	conditions []conditional
}

func compile(l log.Logger, cfg *config.Config, fc Context) (*basicFilter, error) {
	filter := &basicFilter{
		fc:            fc,
		name:          cfg.Get("name"),
		ids:           newLazyStringList(cfg.Get("id")),
		speaker:       cfg.Get("speaker"),
		x:             cfg.Get("x"),
		y:             cfg.Get("y"),
		types:         newLazyStringList(cfg.Get("type")),
		variations:    newLazyStringList(cfg.Get("variation")),
		hasVariations: newLazyStringList(cfg.Get("has_variation")),
		abilities:     newLazyStringList(cfg.Get("ability")),
		races:         newLazyStringList(cfg.Get("race")),
		gender:        cfg.Get("gender"),
		sides:         newLazyStringList(cfg.Get("side")),
		sideNum:       cfg.Get("side").ToInt(-999),
		hasWeapon:     cfg.Get("has_weapon"),
		role:          cfg.Get("role"),
		aiSpecial:     cfg.Get("ai_special"),
		canRecruit:    cfg.Get("canrecruit"),
		recallCost:    cfg.Get("recall_cost"),
		level:         cfg.Get("level"),
		defense:       cfg.Get("defense"),
		movement:      cfg.Get("movement_cost"),
		findIn:        cfg.Get("find_in"),
		formula:       cfg.Get("formula"),
		luaFunc:       cfg.Get("lua_function"),
	}

	for _, child := range cfg.Children() {
		switch kind := classifyChild(child.Key); kind {
		case childAnd, childOr, childNot:
			nested, err := New(l, child.Cfg, fc)
			if err != nil {
				return nil, err
			}

			filter.conditions = append(filter.conditions, conditional{kind: kind, filter: nested})

		case childVision:
			filter.vision = append(filter.vision, visionFilter{
				viewers: sidefilter.New(l, child.Cfg, fc.Board()).Sides(),
				visible: child.Cfg.Get("visible").ToBool(true),
			})

		case childAdjacent:
			adj, err := compileAdjacent(l, child.Cfg, fc)
			if err != nil {
				return nil, err
			}

			filter.adjacent = append(filter.adjacent, adj)

		case childLocation:
			if filter.location != nil {
				return nil, errors.New(MultipleChildrenError{Tag: child.Key})
			}

			filter.location = terrainfilter.New(l, child.Cfg, fc.Board())

		case childSide:
			if filter.side != nil {
				return nil, errors.New(MultipleChildrenError{Tag: child.Key})
			}

			filter.side = sidefilter.New(l, child.Cfg, fc.Board())

		case childRawAttributes:
			filter.wml = append(filter.wml, child.Cfg.Clone())

		case childUnrecognized:
			l.WithField(log.FieldKeyTag, child.Key).Debugf("Encountered a child [%s] of a standard unit filter, it is being ignored", child.Key)
		}
	}

	return filter, nil
}

func compileAdjacent(l log.Logger, cfg *config.Config, fc Context) (adjacentFilter, error) {
	nested, err := New(l, cfg, fc)
	if err != nil {
		return adjacentFilter{}, err
	}

	adj := adjacentFilter{
		filter: nested,
		dirs:   hex.AllDirections(),
		counts: util.ParseRanges(DefaultAdjacentCount),
	}

	if dirs := cfg.Get("adjacent"); !dirs.Blank() {
		adj.dirs = hex.ParseDirections(dirs.String())
	}

	if isEnemy := cfg.Get("is_enemy"); !isEnemy.Blank() {
		val := isEnemy.ToBool(false)
		adj.isEnemy = &val
	}

	if count := cfg.Get("count"); !count.Blank() {
		adj.counts = util.ParseRanges(count.String())
	}

	return adj, nil
}
