// Package schema declares, per entity type, how one raw CSV row becomes
// a validated gtfs entity. Each entity type has a Schema: an ordered
// list of field rules (presence, coercion, default substitution,
// cross-reference checks) plus a constructor that assembles the typed
// entity from the coerced values.
//
// Loading a row has exactly three outcomes: a valid entity, a skip (the
// row references an entity absent under a tolerated relationship and is
// deliberately dropped), or a field error. Callers branch on the Result
// and the returned error, never on error message contents.
package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
)

// Row is one raw CSV record, keyed by header name.
type Row map[string]string

// String renders the row with keys sorted, for reproducible diagnostics.
func (r Row) String() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %q", k, r[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Values holds the coerced field values a constructor builds from.
type Values map[string]any

// Str returns the string value for name. The second return is false if
// the field was omitted.
func (v Values) Str(name string) (string, bool) {
	s, ok := v[name].(string)
	return s, ok
}

// StrPtr returns a pointer to the string value for name, or nil if the
// field was omitted.
func (v Values) StrPtr(name string) *string {
	if s, ok := v[name].(string); ok {
		return &s
	}
	return nil
}

// IntPtr returns a pointer to the int value for name, or nil.
func (v Values) IntPtr(name string) *int {
	if n, ok := v[name].(int); ok {
		return &n
	}
	return nil
}

// FloatPtr returns a pointer to the float64 value for name, or nil.
func (v Values) FloatPtr(name string) *float64 {
	if f, ok := v[name].(float64); ok {
		return &f
	}
	return nil
}

// FieldError reports the first field of a row that failed validation.
type FieldError struct {
	Entity string
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s (value %q)", e.Entity, e.Field, e.Reason, e.Value)
}

// RefLookup provides read access to the primary keys of already-loaded
// entity types. Implementations must treat it as read-only during a Load.
type RefLookup interface {
	// HasKey reports whether key exists for the named entity type.
	HasKey(entity, key string) bool
	// KeyCount returns how many keys are loaded for the named entity
	// type. Zero distinguishes "no data at all" from "missing entry".
	KeyCount(entity string) int
}

// Ref is a foreign-key rule: the coerced value must match an existing
// primary key of the target entity type. When Tolerant is set, a missing
// entry (target has data, key not found) skips the row instead of
// failing it; an empty target table is always an error.
type Ref struct {
	Entity   string
	Tolerant bool
}

// Convert coerces one raw string into its typed value.
type Convert func(raw string) (any, error)

// Field is one declarative rule in a Schema, applied in declared order.
type Field struct {
	Name     string
	Required bool
	Convert  Convert
	Ref      *Ref
	// Default is substituted when the field is absent. Used by numbered
	// enums that declare a default variant.
	Default any
}

// Schema is the transform rule set for one entity type.
type Schema struct {
	// Entity is the registry name of the target entity type.
	Entity string
	// Fields are applied in order; the first failure aborts the row.
	Fields []Field
	// Drop lists source columns removed silently before validation.
	Drop []string
	// NoFilter lists fields exempt from the blank-value pre-filter, so
	// an explicit empty value reaches the field's converter instead of
	// being treated as absent. Used for the Calendar day-of-week
	// booleans, where a dropped "false-looking" value would be a bug.
	NoFilter []string
	// Build assembles the entity from the coerced values.
	Build func(v Values) gtfs.Entity
}

// Result is the three-way outcome of loading a row. Exactly one of
// Entity or Skipped is meaningful; Invalid rows are reported through the
// error return instead.
type Result struct {
	Entity     gtfs.Entity
	Skipped    bool
	SkipReason string
}

// Load validates one raw row against the schema and constructs the
// entity. It returns a skip Result when a tolerated foreign key dangles,
// and a *FieldError for the first invalid field. Load reads refs but
// mutates nothing.
func (s *Schema) Load(row Row, refs RefLookup) (Result, error) {
	filtered := s.preFilter(row)

	if err := s.checkUnknown(filtered); err != nil {
		return Result{}, err
	}

	vals := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		raw, ok := filtered[f.Name]
		if !ok {
			if f.Required {
				return Result{}, &FieldError{
					Entity: s.Entity,
					Field:  f.Name,
					Reason: "missing required field",
				}
			}
			if f.Default != nil {
				vals[f.Name] = f.Default
			}
			continue
		}

		v, err := f.Convert(raw)
		if err != nil {
			return Result{}, &FieldError{
				Entity: s.Entity,
				Field:  f.Name,
				Value:  raw,
				Reason: err.Error(),
			}
		}

		if f.Ref != nil {
			res, err := s.checkRef(f, v, raw, refs)
			if err != nil {
				return Result{}, err
			}
			if res.Skipped {
				return res, nil
			}
		}

		vals[f.Name] = v
	}

	return Result{Entity: s.Build(vals)}, nil
}

// preFilter strips blank and literal "None" values from the row, except
// for fields the schema exempts. The comparison is against the empty
// string and the "None" literal only, never against any wider notion of
// falsiness.
func (s *Schema) preFilter(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		if (v == "" || v == "None") && !s.noFilter(k) {
			continue
		}
		out[k] = v
	}
	return out
}

func (s *Schema) noFilter(name string) bool {
	for _, n := range s.NoFilter {
		if n == name {
			return true
		}
	}
	return false
}

// checkUnknown rejects rows carrying columns the schema does not
// declare. Columns listed in Drop are removed from consideration.
func (s *Schema) checkUnknown(row Row) error {
	for k := range row {
		if s.knownField(k) {
			continue
		}
		return &FieldError{
			Entity: s.Entity,
			Field:  k,
			Value:  row[k],
			Reason: "unknown field",
		}
	}
	return nil
}

func (s *Schema) knownField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	for _, d := range s.Drop {
		if d == name {
			return true
		}
	}
	return false
}

func (s *Schema) checkRef(f Field, v any, raw string, refs RefLookup) (Result, error) {
	key := refKey(v)
	if refs.HasKey(f.Ref.Entity, key) {
		return Result{}, nil
	}
	if refs.KeyCount(f.Ref.Entity) == 0 {
		return Result{}, &FieldError{
			Entity: s.Entity,
			Field:  f.Name,
			Value:  raw,
			Reason: fmt.Sprintf("no data for %s", f.Ref.Entity),
		}
	}
	if f.Ref.Tolerant {
		return Result{
			Skipped:    true,
			SkipReason: fmt.Sprintf("missing entry for %s id %s", f.Ref.Entity, key),
		}, nil
	}
	return Result{}, &FieldError{
		Entity: s.Entity,
		Field:  f.Name,
		Value:  raw,
		Reason: fmt.Sprintf("missing entry for %s id %s", f.Ref.Entity, key),
	}
}

// refKey renders a coerced foreign-key value in the canonical key form
// used by the reference key sets.
func refKey(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
