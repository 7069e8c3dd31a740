package config

import (
	"strconv"
	"strings"
)

// AttributeValue is a scalar attribute of a Config. The zero value is blank, which is what a
// lookup of a missing key returns. A set value may still be the empty string.
type AttributeValue struct {
	str string
	set bool
}

// Value returns a set attribute value.
func Value(str string) AttributeValue {
	return AttributeValue{str: str, set: true}
}

// Blank reports whether the attribute was never set.
func (val AttributeValue) Blank() bool {
	return !val.set
}

// Empty reports whether the attribute is blank or set to the empty string.
func (val AttributeValue) Empty() bool {
	return !val.set || val.str == ""
}

// String returns the raw value, or "" for a blank attribute.
func (val AttributeValue) String() string {
	return val.str
}

// ToInt parses the value as an integer, returning def if it is blank or not a number.
func (val AttributeValue) ToInt(def int) int {
	if val.Blank() {
		return def
	}

	num, err := strconv.Atoi(strings.TrimSpace(val.str))
	if err != nil {
		return def
	}

	return num
}

// ToBool parses `yes`, `no`, `true` and `false`, returning def for anything else.
func (val AttributeValue) ToBool(def bool) bool {
	switch strings.TrimSpace(val.str) {
	case "yes", "true":
		return true
	case "no", "false":
		return false
	}

	return def
}

// Equals compares two attributes the way filters compare them: blank equals only blank, and
// values that both read as the same boolean are equal, so `yes` equals `true`.
func (val AttributeValue) Equals(other AttributeValue) bool {
	if val.set != other.set {
		return false
	}

	if val.str == other.str {
		return true
	}

	if valBool, ok := parseBool(val.str); ok {
		if otherBool, ok := parseBool(other.str); ok {
			return valBool == otherBool
		}
	}

	return false
}

// EqualsString compares a set value to str.
func (val AttributeValue) EqualsString(str string) bool {
	return val.Equals(Value(str))
}

func parseBool(str string) (bool, bool) {
	switch str {
	case "yes", "true":
		return true, true
	case "no", "false":
		return false, true
	}

	return false, false
}
