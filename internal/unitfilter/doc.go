// Package unitfilter decides which units on a board match a unit filter.
//
// A filter is a config tree. Its attributes constrain the unit itself:
//
//	name, id, speaker, x, y, type, variation, has_variation, ability, race, gender, side,
//	has_weapon, role, ai_special, canrecruit, recall_cost, level, defense, movement_cost,
//	find_in, formula, lua_function
//
// Attributes that take lists (id, type, variation, has_variation, ability, race, side) accept
// comma separated values and match any of them. Absent attributes impose no constraint.
//
// Its children add sub-filters:
//
//	[filter_location]  the unit's location matches a location filter, at most once
//	[filter_side]      the unit's side matches a side filter, at most once
//	[filter_wml]       the serialized unit matches the child as a config filter
//	[filter_vision]    the unit is visible, or with visible=no hidden, to some selected side
//	[filter_adjacent]  the number of adjacent units matching a nested unit filter is in `count`
//	[and] [or] [not]   nested unit filters folded left in document order
//
// A filter compiled from a nil config is the null filter, which matches every unit.
//
// Filters are compiled once with New and can then be evaluated many times. Evaluation binds the
// unit under test to the variable `this_unit` through the Context, so calls sharing a Context
// must not overlap.
package unitfilter
