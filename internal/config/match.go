package config

import (
	"fmt"
	"sort"
	"strings"
)

// Matches reports whether cfg satisfies filter. Every filter attribute must be set to an equal
// value in cfg. Every filter child must be matched by some child of cfg with the same key, except
// `not` children, which cfg must not match.
func (cfg *Config) Matches(filter *Config) bool {
	if filter.Empty() {
		return true
	}

	for _, attr := range filter.Attributes() {
		if !cfg.Get(attr.Key).Equals(Value(attr.Value)) {
			return false
		}
	}

	for _, child := range filter.Children() {
		if child.Key == "not" {
			if cfg.Matches(child.Cfg) {
				return false
			}

			continue
		}

		found := false

		for _, candidate := range cfg.ChildrenByKey(child.Key) {
			if candidate.Matches(child.Cfg) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}

// FromMap builds a config from decoded document data. Nested maps become children, lists of maps
// become repeated children and lists of scalars become comma separated attributes. Map keys are
// visited in sorted order.
func FromMap(data map[string]any) *Config {
	cfg := New()

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		addValue(cfg, key, data[key])
	}

	return cfg
}

func addValue(cfg *Config, key string, val any) {
	switch val := val.(type) {
	case map[string]any:
		cfg.AppendChild(key, FromMap(val))
	case []any:
		var scalars []string

		for _, item := range val {
			if itemMap, ok := item.(map[string]any); ok {
				cfg.AppendChild(key, FromMap(itemMap))
				continue
			}

			scalars = append(scalars, scalarString(item))
		}

		if len(scalars) > 0 {
			cfg.Set(key, strings.Join(scalars, ListSeparator))
		}
	default:
		cfg.Set(key, scalarString(val))
	}
}

func scalarString(val any) string {
	switch val := val.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "yes"
		}

		return "no"
	default:
		return fmt.Sprint(val)
	}
}

// ToMap converts cfg to plain data. A key with one child maps to a map, a key with several
// children maps to a list of maps.
func (cfg *Config) ToMap() map[string]any {
	data := make(map[string]any, len(cfg.Attributes()))

	for _, attr := range cfg.Attributes() {
		data[attr.Key] = attr.Value
	}

	for _, child := range cfg.Children() {
		childData := child.Cfg.ToMap()

		switch existing := data[child.Key].(type) {
		case nil, string:
			data[child.Key] = childData
		case map[string]any:
			data[child.Key] = []any{existing, childData}
		case []any:
			data[child.Key] = append(existing, childData)
		}
	}

	return data
}

// ListSeparator joins list values read from documents.
const ListSeparator = ","
