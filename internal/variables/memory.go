package variables

import (
	"sync"

	"github.com/gruntwork-io/unitfilter/internal/config"
	"github.com/gruntwork-io/unitfilter/internal/errors"
)

// Memory is a Store backed by a config tree held in memory.
type Memory struct {
	root *config.Config
	mu   sync.RWMutex
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{root: config.New()}
}

// NewMemoryFrom returns a store holding a copy of cfg.
func NewMemoryFrom(cfg *config.Config) *Memory {
	if cfg == nil {
		return NewMemory()
	}

	return &Memory{root: cfg.Clone()}
}

// Get implements Store.
func (mem *Memory) Get(name string) (Value, error) {
	path, err := parsePath(name)
	if err != nil {
		return Value{}, err
	}

	mem.mu.RLock()
	defer mem.mu.RUnlock()

	return resolve(mem.root, path), nil
}

// Set stores a scalar, creating the records along the path as needed.
func (mem *Memory) Set(name, value string) error {
	path, err := parsePath(name)
	if err != nil {
		return err
	}

	last := path[len(path)-1]
	if last.hasIndex {
		return errors.Errorf("%w: scalar %q cannot be indexed", ErrInvalidName, name)
	}

	mem.mu.Lock()
	defer mem.mu.Unlock()

	mem.create(path[:len(path)-1]).Set(last.key, value)

	return nil
}

// SetArray replaces the records stored under name with copies of records.
func (mem *Memory) SetArray(name string, records []*config.Config) error {
	path, err := parsePath(name)
	if err != nil {
		return err
	}

	mem.mu.Lock()
	defer mem.mu.Unlock()

	mem.setRecords(path, records)

	return nil
}

// Clear removes the variable, scalar or array.
func (mem *Memory) Clear(name string) error {
	path, err := parsePath(name)
	if err != nil {
		return err
	}

	mem.mu.Lock()
	defer mem.mu.Unlock()

	parent := walk(mem.root, path[:len(path)-1])
	if parent == nil {
		return nil
	}

	last := path[len(path)-1]
	parent.Remove(last.key)
	parent.ClearChildren(last.key)

	return nil
}

// Scope stores cfg as the single record of the top level variable name, and returns a function
// that puts back whatever was stored there before.
func (mem *Memory) Scope(name string, cfg *config.Config) func() {
	mem.mu.Lock()
	defer mem.mu.Unlock()

	saved := make([]*config.Config, 0, 1)
	for _, record := range mem.root.ChildrenByKey(name) {
		saved = append(saved, record.Clone())
	}

	path := []segment{{key: name}}
	mem.setRecords(path, []*config.Config{cfg})

	return func() {
		mem.mu.Lock()
		defer mem.mu.Unlock()

		mem.setRecords(path, saved)
	}
}

// Root returns a copy of the whole variable tree.
func (mem *Memory) Root() *config.Config {
	mem.mu.RLock()
	defer mem.mu.RUnlock()

	return mem.root.Clone()
}

func (mem *Memory) setRecords(path []segment, records []*config.Config) {
	last := path[len(path)-1]
	parent := mem.create(path[:len(path)-1])

	if last.hasIndex {
		existing := parent.ChildrenByKey(last.key)
		for len(existing) <= last.index {
			existing = append(existing, config.New())
		}

		if len(records) > 0 {
			existing[last.index] = records[0].Clone()
		}

		records = existing
	} else {
		cloned := make([]*config.Config, 0, len(records))
		for _, record := range records {
			cloned = append(cloned, record.Clone())
		}

		records = cloned
	}

	parent.ClearChildren(last.key)

	for _, record := range records {
		parent.AppendChild(last.key, record)
	}
}

// create walks path, appending empty records where an element is missing.
func (mem *Memory) create(path []segment) *config.Config {
	cfg := mem.root

	for _, seg := range path {
		children := cfg.ChildrenByKey(seg.key)
		for len(children) <= seg.index {
			children = append(children, cfg.AddChild(seg.key))
		}

		cfg = children[seg.index]
	}

	return cfg
}
