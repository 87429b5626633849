package kvon

import (
	"strconv"
	"strings"
)

// Indention is the whitespace unit representing exactly one nesting level:
// a single tab, or a fixed number of spaces. A document's unit is fixed by
// its first line carrying leading whitespace and is immutable thereafter.
// The zero value is tab indentation.
type Indention struct {
	spaces int // 0 means one tab
}

// Tabs returns tab indentation.
func Tabs() Indention {
	return Indention{}
}

// Spaces returns indentation of n spaces per level, with a minimum of one.
func Spaces(n int) Indention {
	if n < 1 {
		n = 1
	}
	return Indention{spaces: n}
}

// IsTabs reports whether the unit is a tab.
func (in Indention) IsTabs() bool { return in.spaces == 0 }

// String renders the unit for diagnostics, e.g. "tabs" or "spaces:4".
func (in Indention) String() string {
	if in.IsTabs() {
		return "tabs"
	}
	return "spaces:" + strconv.Itoa(in.spaces)
}

// unit returns the literal whitespace written per nesting level.
func (in Indention) unit() string {
	if in.IsTabs() {
		return "\t"
	}
	return strings.Repeat(" ", in.spaces)
}
