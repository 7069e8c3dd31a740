// Package variables implements the game variable store that `find_in` filters read and scoped
// aliases such as `this_unit` are written to.
//
// Variables live in a config tree. A name is a dotted path through it, `side.units[2].id`. A
// path ending in a key with children is an array of records, one ending in an attribute is a
// scalar.
package variables

import (
	"strconv"

	"github.com/gruntwork-io/unitfilter/internal/config"
)

// Kind of a looked up variable.
type Kind int

const (
	KindNotFound Kind = iota
	KindScalar
	KindArray
)

// Store reads variables by name. Get returns an error wrapping ErrInvalidName for a malformed
// name, and a KindNotFound value for a well formed name with nothing stored.
type Store interface {
	Get(name string) (Value, error)
}

// Value is the result of a lookup.
type Value struct {
	scalar  config.AttributeValue
	records []*config.Config
	Kind    Kind
}

// Found reports whether anything is stored under the name.
func (val Value) Found() bool {
	return val.Kind != KindNotFound
}

// Scalar returns the attribute value, blank unless Kind is KindScalar.
func (val Value) Scalar() config.AttributeValue {
	return val.scalar
}

// AsArray returns the records of an array. Scalars and missing variables have no records.
func (val Value) AsArray() []*config.Config {
	return val.records
}

func arrayValue(records []*config.Config) Value {
	return Value{Kind: KindArray, records: records}
}

func scalarValue(str string) Value {
	return Value{Kind: KindScalar, scalar: config.Value(str)}
}

// resolve looks path up in root.
func resolve(root *config.Config, path []segment) Value {
	cfg := root

	for i, seg := range path {
		last := i == len(path)-1

		if last && seg.key == LengthKey && i > 0 && !path[i-1].hasIndex {
			parent := root
			if i > 1 {
				parent = walk(root, path[:i-1])
			}

			return scalarValue(strconv.Itoa(len(parent.ChildrenByKey(path[i-1].key))))
		}

		children := cfg.ChildrenByKey(seg.key)

		if last {
			switch {
			case seg.hasIndex && seg.index < len(children):
				return arrayValue(children[seg.index : seg.index+1])
			case seg.hasIndex:
				return Value{}
			case len(children) > 0:
				return arrayValue(children)
			case cfg.Has(seg.key):
				return Value{Kind: KindScalar, scalar: cfg.Get(seg.key)}
			}

			return Value{}
		}

		if seg.index >= len(children) {
			return Value{}
		}

		cfg = children[seg.index]
	}

	return Value{}
}

// walk follows path through root, returning nil if an element is missing.
func walk(root *config.Config, path []segment) *config.Config {
	cfg := root

	for _, seg := range path {
		children := cfg.ChildrenByKey(seg.key)
		if seg.index >= len(children) {
			return nil
		}

		cfg = children[seg.index]
	}

	return cfg
}
