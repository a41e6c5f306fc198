// Package ingest drives feed ingestion: it owns the static registry of
// entity-type definitions, resolves the foreign-key dependency order,
// and runs the batched load-and-upsert engine against the store.
package ingest

import (
	"fmt"

	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
	"github.com/mbtahub/gtfs-ingest/internal/schema"
)

// Definition binds an entity type to everything the engine needs to
// process it: its source file, its transform rule set, its table
// layout, and the entity types it references by foreign key.
//
// The registry is static and assembled at startup, so an unknown entity
// type is a programming error, not a runtime discovery failure.
type Definition struct {
	// Name is the entity type's registry name ("agency", "stop_time").
	Name string
	// File is the feed file the type is read from, overridable by the
	// feed manifest.
	File string
	// Table is the SQL table rows are written to.
	Table string
	// KeyColumns are the table's primary key columns, in key order.
	KeyColumns []string
	// KeySelect is a SQL expression rendering the primary key of a row
	// in its canonical string form (composite parts joined with "|").
	KeySelect string
	// Deps names the entity types this type references by foreign key,
	// excluding self-references.
	Deps []string
	// Schema is the type's transform rule set.
	Schema *schema.Schema
	// Values maps a validated entity to its column values, including
	// the key columns.
	Values func(e gtfs.Entity) map[string]any
}

var (
	registry   []*Definition
	registryIx = make(map[string]*Definition)
)

// register adds a definition at package init. Panics on duplicates or
// on a definition missing one of its required parts, because the
// registry is fixed configuration: a bad entry can never be valid at
// runtime.
func register(def *Definition) {
	if def.Name == "" || def.Table == "" || def.Schema == nil || def.Values == nil {
		panic(fmt.Sprintf("incomplete definition: %+v", def))
	}
	if _, exists := registryIx[def.Name]; exists {
		panic(fmt.Sprintf("entity type already registered: %s", def.Name))
	}
	registry = append(registry, def)
	registryIx[def.Name] = def
}

// Definitions returns all registered entity types in registration order.
func Definitions() []*Definition {
	out := make([]*Definition, len(registry))
	copy(out, registry)
	return out
}

// ByName returns the definition for an entity type name.
func ByName(name string) (*Definition, bool) {
	def, ok := registryIx[name]
	return def, ok
}

// ValidateFiles rejects manifest file overrides that name entity types
// the registry does not know.
func ValidateFiles(files map[string]string) error {
	for name := range files {
		if _, ok := registryIx[name]; !ok {
			return fmt.Errorf("unknown entity type in manifest: %s", name)
		}
	}
	return nil
}
