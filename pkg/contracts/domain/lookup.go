package domain

// DimensionLookup maps dimension codes to human-readable display names.
// A nil or empty lookup is valid and resolves every code to itself.
type DimensionLookup struct {
	names map[string]string
}

// NewDimensionLookup builds a lookup from parallel code/name pairs.
func NewDimensionLookup(entries map[string]string) *DimensionLookup {
	names := make(map[string]string, len(entries))
	for code, name := range entries {
		names[code] = name
	}
	return &DimensionLookup{names: names}
}

// EmptyDimensionLookup returns a lookup with no mappings. Resolution through
// it is pure pass-through, which is the degraded mode used when the lookup
// source is absent or malformed.
func EmptyDimensionLookup() *DimensionLookup {
	return &DimensionLookup{names: map[string]string{}}
}

// Resolve returns the display name mapped to code, or code itself when the
// mapping is empty or does not contain it. It never fails: unknown codes are
// an identity fallback, not an error. Resolving an already-resolved display
// name that is absent from the mapping therefore returns it unchanged.
func (l *DimensionLookup) Resolve(code string) string {
	if l == nil {
		return code
	}
	if name, ok := l.names[code]; ok {
		return name
	}
	return code
}

// Len returns the number of mapped codes.
func (l *DimensionLookup) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}
