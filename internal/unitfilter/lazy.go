package unitfilter

import (
	"slices"
	"sync"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/util"
)

// lazyStringList splits a list attribute the first time it is needed.
type lazyStringList struct {
	raw   string
	items []string
	once  sync.Once
}

func newLazyStringList(val config.AttributeValue) *lazyStringList {
	return &lazyStringList{raw: val.String()}
}

func (list *lazyStringList) get() []string {
	list.once.Do(func() {
		list.items = util.SplitList(list.raw)
	})

	return list.items
}

// Empty reports whether the list has no items, which is the case for a blank attribute.
func (list *lazyStringList) Empty() bool {
	return len(list.get()) == 0
}

// Contains reports whether str is one of the items.
func (list *lazyStringList) Contains(str string) bool {
	return slices.Contains(list.get(), str)
}
