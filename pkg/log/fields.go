package log

import "sort"

// Field keys shared by the filter engine and the CLI.
const (
	FieldKeyFilter   = "filter"
	FieldKeyUnit     = "unit"
	FieldKeySide     = "side"
	FieldKeyTag      = "tag"
	FieldKeyScenario = "scenario"

	FieldKeyMsg   = "msg"
	FieldKeyLevel = "level"
	FieldKeyTime  = "time"
)

// Fields type, used to pass to `WithFields`.
type Fields map[string]any

// Keys returns the sorted field keys, without removeKeys.
func (fields Fields) Keys(removeKeys ...string) []string {
	keys := make([]string, 0, len(fields))

	for key := range fields {
		skip := false

		for _, removeKey := range removeKeys {
			if key == removeKey {
				skip = true
				break
			}
		}

		if !skip {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	return keys
}
