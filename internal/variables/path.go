package variables

import (
	"strconv"
	"strings"

	"github.com/gruntwork-io/unitfilter/internal/errors"
)

// ErrInvalidName is returned for a variable name that does not follow the path grammar.
var ErrInvalidName = errors.New("invalid variable name")

// LengthKey, as the last path element, reads the number of records of the element before it.
const LengthKey = "length"

// segment is one element of a variable path, `units[2]` is {key: "units", index: 2}.
type segment struct {
	key      string
	index    int
	hasIndex bool
}

// parsePath splits a variable path such as `side.units[2].id`. Keys hold letters, digits and
// underscores, indices are non-negative integers.
func parsePath(name string) ([]segment, error) {
	if name == "" {
		return nil, errors.Errorf("%w: empty name", ErrInvalidName)
	}

	parts := strings.Split(name, ".")
	path := make([]segment, 0, len(parts))

	for _, part := range parts {
		seg := segment{key: part}

		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, errors.Errorf("%w: %q", ErrInvalidName, name)
			}

			index, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || index < 0 {
				return nil, errors.Errorf("%w: %q has a bad index", ErrInvalidName, name)
			}

			seg = segment{key: part[:open], index: index, hasIndex: true}
		}

		if !validKey(seg.key) {
			return nil, errors.Errorf("%w: %q", ErrInvalidName, name)
		}

		path = append(path, seg)
	}

	return path, nil
}

func validKey(key string) bool {
	if key == "" {
		return false
	}

	for _, r := range key {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}

	return true
}
