package unit

import (
	"slices"
	"sort"
)

// Type describes a kind of unit. A variation type names the type it varies in BaseID.
type Type struct {
	Defense    map[string]int `mapstructure:"defense"`
	Movement   map[string]int `mapstructure:"movement_costs"`
	ID         string         `mapstructure:"id"`
	BaseID     string         `mapstructure:"base_id"`
	Race       string         `mapstructure:"race"`
	Variations []string       `mapstructure:"variations"`
	Abilities  []string       `mapstructure:"abilities"`
	Attacks    []Attack       `mapstructure:"attacks"`
	Hides      []string       `mapstructure:"hides"`
	Level      int            `mapstructure:"level"`
	RecallCost int            `mapstructure:"recall_cost"`
}

// HasVariation reports whether id is one of the variations of the type.
func (typ *Type) HasVariation(id string) bool {
	return typ != nil && slices.Contains(typ.Variations, id)
}

// Types is a registry of unit types by id.
type Types struct {
	types map[string]*Type
}

// NewTypes returns a registry holding the given types.
func NewTypes(types ...*Type) *Types {
	registry := &Types{types: make(map[string]*Type, len(types))}

	for _, typ := range types {
		registry.Add(typ)
	}

	return registry
}

// Add registers typ, replacing a type with the same id.
func (registry *Types) Add(typ *Type) {
	registry.types[typ.ID] = typ
}

// Find returns the type with the given id.
func (registry *Types) Find(id string) (*Type, bool) {
	if registry == nil {
		return nil, false
	}

	typ, ok := registry.types[id]

	return typ, ok
}

// VariationBase returns the type whose variations apply to a unit of type id. That is the base
// type when the unit is a variation, otherwise the type itself.
func (registry *Types) VariationBase(id string, isVariation bool) (*Type, bool) {
	typ, ok := registry.Find(id)
	if !ok {
		return nil, false
	}

	if isVariation && typ.BaseID != "" {
		return registry.Find(typ.BaseID)
	}

	return typ, true
}

// IDs returns the registered type ids, sorted.
func (registry *Types) IDs() []string {
	ids := make([]string, 0, len(registry.types))

	for id := range registry.types {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}
