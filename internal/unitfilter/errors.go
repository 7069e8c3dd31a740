package unitfilter

import (
	"fmt"
)

// MultipleChildrenError is returned when a filter has more than one child of a tag that may
// appear only once. Use [and] to combine several of them.
type MultipleChildrenError struct {
	Tag string
}

func (err MultipleChildrenError) Error() string {
	return fmt.Sprintf("encountered multiple [%s] children of a standard unit filter, this is not supported, use [and] or similar to combine them", err.Tag)
}
