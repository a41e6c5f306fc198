package ingest

import (
	"errors"
	"fmt"
	"sort"
)

// ErrCycle reports that the registered entity types cannot be ordered
// because their declared dependencies form a cycle.
var ErrCycle = errors.New("entity dependency cycle")

// Order sorts the definitions so that every entity type appears after
// all the types it depends on. Ties break alphabetically, so the order
// is stable across runs. A dependency on an unregistered type or a
// dependency cycle is a configuration error, not a data error.
func Order(defs []*Definition) ([]*Definition, error) {
	byName := make(map[string]*Definition, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
	}

	remaining := make(map[string][]string, len(defs))
	for _, d := range defs {
		for _, dep := range d.Deps {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("%s depends on unregistered type %s", d.Name, dep)
			}
		}
		remaining[d.Name] = append([]string(nil), d.Deps...)
	}

	ordered := make([]*Definition, 0, len(defs))
	placed := make(map[string]bool, len(defs))
	for len(ordered) < len(defs) {
		ready := make([]string, 0, len(remaining))
		for name, deps := range remaining {
			if placed[name] {
				continue
			}
			satisfied := true
			for _, dep := range deps {
				if !placed[dep] {
					satisfied = false
					break
				}
			}
			if satisfied {
				ready = append(ready, name)
			}
		}
		if len(ready) == 0 {
			return nil, fmt.Errorf("%w among %s", ErrCycle, unplacedNames(remaining, placed))
		}
		sort.Strings(ready)
		for _, name := range ready {
			placed[name] = true
			ordered = append(ordered, byName[name])
		}
	}
	return ordered, nil
}

func unplacedNames(remaining map[string][]string, placed map[string]bool) string {
	names := make([]string, 0, len(remaining))
	for name := range remaining {
		if !placed[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return fmt.Sprint(names)
}
