package schema

// fields.go provides the Convert functions the entity schemas compose.
//
// Converters handle the textual conventions of GTFS exports:
//   - numbered enums ("0", "1", ...) mapped to named variants
//   - named enums matched after case-folding and whitespace normalization
//   - binary {0,1} fields in string, integer, or boolean spelling
//   - "HH:MM:SS" times of day converted to seconds, hours past 23 allowed
//   - timezone identifiers with "/" replaced by "_" for storage
//
// Every converter returns a descriptive error for input it rejects; the
// Schema wraps that into a FieldError naming the field and raw value.

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // timezone validation must not depend on host tzdata
	"unicode"

	"golang.org/x/text/language"

	"github.com/mbtahub/gtfs-ingest/internal/gtfs"
)

// dateLayout is the compact calendar date form used throughout the feed.
const dateLayout = "20060102"

// Str accepts any string value as-is.
func Str() Convert {
	return func(raw string) (any, error) {
		return raw, nil
	}
}

// Int accepts a base-10 integer.
func Int() Convert {
	return func(raw string) (any, error) {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.New("not an integer")
		}
		return n, nil
	}
}

// Float accepts a finite decimal number. NaN and infinities are
// rejected even though they parse.
func Float() Convert {
	return func(raw string) (any, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errors.New("not a finite number")
		}
		return f, nil
	}
}

// URL accepts an absolute http(s) URL.
func URL() Convert {
	return func(raw string) (any, error) {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, errors.New("not a valid URL")
		}
		return u.String(), nil
	}
}

// Date accepts a YYYYMMDD calendar date.
func Date() Convert {
	return func(raw string) (any, error) {
		t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.New("not a YYYYMMDD date")
		}
		return t, nil
	}
}

// TimeOfDay accepts "HH:MM:SS" and yields elapsed seconds since local
// midnight. Hours may exceed 23 to represent post-midnight service.
func TimeOfDay() Convert {
	return func(raw string) (any, error) {
		parts := strings.Split(strings.TrimSpace(raw), ":")
		if len(parts) != 3 {
			return nil, errors.New("not an HH:MM:SS time")
		}
		var segs [3]int
		for i, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return nil, errors.New("not an HH:MM:SS time")
			}
			segs[i] = n
		}
		return gtfs.TimeOfDay(segs[0]*3600 + segs[1]*60 + segs[2]), nil
	}
}

// Binary accepts the values {0, 1} in string, integer, or boolean
// spelling and yields 0 or 1. Floats, out-of-range integers, and
// anything else are rejected.
func Binary() Convert {
	return func(raw string) (any, error) {
		return parseBinary(raw)
	}
}

// Bool is Binary with a boolean result, for day-of-week style fields.
func Bool() Convert {
	return func(raw string) (any, error) {
		n, err := parseBinary(raw)
		if err != nil {
			return nil, err
		}
		return n == 1, nil
	}
}

func parseBinary(raw string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false":
		return 0, nil
	case "1", "true":
		return 1, nil
	}
	return 0, errors.New("cannot be interpreted as one of: [0, 1]")
}

// NumberedEnum maps a non-negative integer numeral onto the named
// variant it selects. Non-numeric numerals are always rejected, even
// when the field declares a default variant.
func NumberedEnum[T ~string](variants map[string]T) Convert {
	return func(raw string) (any, error) {
		numeral := strings.TrimSpace(raw)
		if !isDecimal(numeral) {
			return nil, errors.New("not a non-negative integer numeral")
		}
		v, ok := variants[numeral]
		if !ok {
			return nil, fmt.Errorf("no variant for numeral %s", numeral)
		}
		return v, nil
	}
}

// NamedEnum matches a free-text label against the enumeration after
// case-folding and whitespace normalization ("Rapid Transit" matches
// the rapid_transit variant).
func NamedEnum[T ~string](variants map[string]T) Convert {
	return func(raw string) (any, error) {
		v, ok := variants[foldLabel(raw)]
		if !ok {
			return nil, errors.New("not a recognized value")
		}
		return v, nil
	}
}

// Timezone accepts a canonical IANA timezone identifier and yields the
// storage form with "/" replaced by "_".
func Timezone() Convert {
	return func(raw string) (any, error) {
		name := strings.TrimSpace(raw)
		if _, err := time.LoadLocation(name); err != nil || name == "" {
			return nil, errors.New("not a known timezone")
		}
		return gtfs.TimeZone(strings.ReplaceAll(name, "/", "_")), nil
	}
}

// Lang accepts a lowercase two-letter ISO 639-1 language code.
func Lang() Convert {
	return func(raw string) (any, error) {
		code := strings.ToLower(strings.TrimSpace(raw))
		if len(code) != 2 {
			return nil, errors.New("not a two-letter language code")
		}
		if _, err := language.ParseBase(code); err != nil {
			return nil, errors.New("not a recognized language code")
		}
		return gtfs.LangCode(code), nil
	}
}

// isDecimal reports whether s is a non-empty string of ASCII digits.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// foldLabel lowercases a label and collapses whitespace runs to single
// underscores, the form the enumeration maps are keyed by.
func foldLabel(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(s)), unicode.IsSpace)
	return strings.Join(fields, "_")
}
