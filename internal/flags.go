package internal

import "strings"

// Caps describes what a variable can do.
type Caps uint8

const (
	CapsNone   Caps = 0
	CapsStatic Caps = 1 << iota // value never changes
	CapsReadOnly                // writes are rejected
	CapsShare                   // handle is cheap to alias
	CapsChange                  // capabilities themselves can change over time
)

// Has reports whether every flag of flags is set.
func (c Caps) Has(flags Caps) bool {
	return c&flags == flags
}

func (c Caps) With(flag Caps) Caps {
	return c | flag
}

func (c Caps) Without(flag Caps) Caps {
	return c &^ flag
}

func (c Caps) String() string {
	if c == CapsNone {
		return "none"
	}

	var parts []string
	if c.Has(CapsStatic) {
		parts = append(parts, "static")
	}
	if c.Has(CapsReadOnly) {
		parts = append(parts, "read-only")
	}
	if c.Has(CapsShare) {
		parts = append(parts, "share")
	}
	if c.Has(CapsChange) {
		parts = append(parts, "caps-change")
	}

	return strings.Join(parts, "|")
}
