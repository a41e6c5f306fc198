package ingest

// refSets tracks the primary keys known for each entity type during a
// run: keys already committed to the store plus keys accepted earlier in
// the same run. It backs the schema package's foreign-key checks.
type refSets map[string]map[string]struct{}

func newRefSets() refSets {
	return make(refSets)
}

// HasKey implements schema.RefLookup.
func (r refSets) HasKey(entity, key string) bool {
	_, ok := r[entity][key]
	return ok
}

// KeyCount implements schema.RefLookup.
func (r refSets) KeyCount(entity string) int {
	return len(r[entity])
}

func (r refSets) add(entity, key string) {
	set, ok := r[entity]
	if !ok {
		set = make(map[string]struct{})
		r[entity] = set
	}
	set[key] = struct{}{}
}
