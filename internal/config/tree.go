// Package config implements the ordered attribute tree that filters, unit records and scenario
// documents are written in.
//
// A Config holds scalar attributes, kept sorted by key, and an ordered list of keyed children.
// Child order is significant: filters evaluate `and`, `or` and `not` children in the order they
// were written.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/huandu/go-clone"
)

// Child is a keyed child of a Config.
type Child struct {
	Cfg *Config
	Key string
}

// Attribute is a key and its value.
type Attribute struct {
	Key   string
	Value string
}

// Config is an ordered attribute tree. A nil *Config is the null config: lookups on it return
// blank values and no children.
type Config struct {
	attrs    map[string]string
	children []Child
}

// New returns an empty config.
func New() *Config {
	return &Config{attrs: map[string]string{}}
}

// Get returns the attribute value of key, blank if it is not set.
func (cfg *Config) Get(key string) AttributeValue {
	if cfg == nil {
		return AttributeValue{}
	}

	str, ok := cfg.attrs[key]
	if !ok {
		return AttributeValue{}
	}

	return Value(str)
}

// Has reports whether key is set.
func (cfg *Config) Has(key string) bool {
	return !cfg.Get(key).Blank()
}

// Set sets an attribute and returns cfg, so calls can be chained.
func (cfg *Config) Set(key, value string) *Config {
	if cfg.attrs == nil {
		cfg.attrs = map[string]string{}
	}

	cfg.attrs[key] = value

	return cfg
}

// Remove unsets an attribute.
func (cfg *Config) Remove(key string) {
	delete(cfg.attrs, key)
}

// AddChild appends a new empty child and returns it.
func (cfg *Config) AddChild(key string) *Config {
	child := New()
	cfg.AppendChild(key, child)

	return child
}

// AppendChild appends child under key and returns cfg.
func (cfg *Config) AppendChild(key string, child *Config) *Config {
	if child == nil {
		child = New()
	}

	cfg.children = append(cfg.children, Child{Key: key, Cfg: child})

	return cfg
}

// ClearChildren removes every child with the given key.
func (cfg *Config) ClearChildren(key string) {
	kept := cfg.children[:0]

	for _, child := range cfg.children {
		if child.Key != key {
			kept = append(kept, child)
		}
	}

	cfg.children = kept
}

// Children returns every child in document order.
func (cfg *Config) Children() []Child {
	if cfg == nil {
		return nil
	}

	return cfg.children
}

// ChildrenByKey returns the children with the given key in document order.
func (cfg *Config) ChildrenByKey(key string) []*Config {
	if cfg == nil {
		return nil
	}

	var children []*Config

	for _, child := range cfg.children {
		if child.Key == key {
			children = append(children, child.Cfg)
		}
	}

	return children
}

// Child returns the first child with the given key, or nil.
func (cfg *Config) Child(key string) *Config {
	if cfg == nil {
		return nil
	}

	for _, child := range cfg.children {
		if child.Key == key {
			return child.Cfg
		}
	}

	return nil
}

// Attributes returns the attributes sorted by key.
func (cfg *Config) Attributes() []Attribute {
	if cfg == nil {
		return nil
	}

	attrs := make([]Attribute, 0, len(cfg.attrs))

	for key, value := range cfg.attrs {
		attrs = append(attrs, Attribute{Key: key, Value: value})
	}

	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Key < attrs[j].Key
	})

	return attrs
}

// Empty reports whether cfg has neither attributes nor children.
func (cfg *Config) Empty() bool {
	return cfg == nil || (len(cfg.attrs) == 0 && len(cfg.children) == 0)
}

// Clone returns a deep copy that shares nothing with cfg.
func (cfg *Config) Clone() *Config {
	if cfg == nil {
		return nil
	}

	return clone.Clone(cfg).(*Config)
}

// Equal reports whether both trees have the same attributes and the same children in the same order.
func (cfg *Config) Equal(other *Config) bool {
	if cfg.Empty() || other.Empty() {
		return cfg.Empty() == other.Empty()
	}

	if len(cfg.attrs) != len(other.attrs) || len(cfg.children) != len(other.children) {
		return false
	}

	for key, value := range cfg.attrs {
		if otherValue, ok := other.attrs[key]; !ok || otherValue != value {
			return false
		}
	}

	for i, child := range cfg.children {
		if child.Key != other.children[i].Key || !child.Cfg.Equal(other.children[i].Cfg) {
			return false
		}
	}

	return true
}

// String renders cfg in a bracketed tag notation, used in log messages.
func (cfg *Config) String() string {
	var sb strings.Builder

	cfg.write(&sb, 0)

	return sb.String()
}

func (cfg *Config) write(sb *strings.Builder, depth int) {
	indent := strings.Repeat("\t", depth)

	for _, attr := range cfg.Attributes() {
		fmt.Fprintf(sb, "%s%s=%q\n", indent, attr.Key, attr.Value)
	}

	for _, child := range cfg.Children() {
		fmt.Fprintf(sb, "%s[%s]\n", indent, child.Key)
		child.Cfg.write(sb, depth+1)
		fmt.Fprintf(sb, "%s[/%s]\n", indent, child.Key)
	}
}
