package joshvalue

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Units is a normalized symbolic tag carried by every EngineValue (spec §3).
// Equality between two Units is structural (simple string equality) once
// both have passed through Normalize, so callers never need to fold case or
// trim whitespace themselves.
type Units string

// Dimensionless is the empty units tag used for booleans, strings and plain
// counts that carry no physical dimension.
const Dimensionless Units = ""

// Count is the units tag produced by literal counting values (the compile
// visitor's precomputed `single_count = 1 count`, §4.5).
const Count Units = "count"

// Position is the units tag produced by `make_position` (§4.6).
const Position Units = "position"

var foldCaser = cases.Fold()

// Normalize canonicalizes a raw unit symbol read from source text: it folds
// fullwidth/halfwidth variants to their narrow form (so a unit symbol typed
// on a fullwidth input method still interns to the same tag), folds case
// (so "Meters" and "meters" are the same tag), and trims surrounding
// whitespace. Interning beyond this is left to the Converter, which indexes
// conversions by normalized pairs.
func Normalize(raw string) Units {
	trimmed := strings.TrimSpace(width.Narrow.String(raw))
	if trimmed == "" {
		return Dimensionless
	}
	return Units(foldCaser.String(trimmed))
}

// Equal reports whether two units tags are structurally identical. Both
// sides are assumed already normalized; Equal does not re-fold, so that
// repeated comparisons in hot arithmetic paths stay cheap.
func (u Units) Equal(other Units) bool {
	return u == other
}

// IsDimensionless reports whether u carries no physical dimension.
func (u Units) IsDimensionless() bool {
	return u == Dimensionless
}

func (u Units) String() string {
	if u == Dimensionless {
		return ""
	}
	return string(u)
}
