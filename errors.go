package kvon

import "fmt"

// ErrorKind classifies terminal parse failures.
type ErrorKind uint8

const (
	// ErrUnexpectedCharacter: trailing content where the end of the line or
	// a comment was expected.
	ErrUnexpectedCharacter ErrorKind = iota
	// ErrUnclosedString: a string literal was opened but not closed before
	// the end of the line.
	ErrUnclosedString
	// ErrExpected: a required token is missing; ParserError.Expected names it.
	ErrExpected
	// ErrInconsistentIndention: a line's whitespace kind conflicts with the
	// fixed document unit.
	ErrInconsistentIndention
	// ErrInvalidIndention: a line is indented past the innermost open frame.
	ErrInvalidIndention
	// ErrMultipleTabIndent: the first indented line uses more than one tab.
	ErrMultipleTabIndent
	// ErrMixedTabsAndSpaces: one line's leading whitespace mixes tabs and
	// spaces.
	ErrMixedTabsAndSpaces
	// ErrSpacesNotMultipleOfIndent: a leading space count is not an exact
	// multiple of the established unit.
	ErrSpacesNotMultipleOfIndent
)

// String returns a short identifier for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedCharacter:
		return "UnexpectedCharacter"
	case ErrUnclosedString:
		return "UnclosedString"
	case ErrExpected:
		return "Expected"
	case ErrInconsistentIndention:
		return "InconsistentIndention"
	case ErrInvalidIndention:
		return "InvalidIndention"
	case ErrMultipleTabIndent:
		return "MultipleTabIndent"
	case ErrMixedTabsAndSpaces:
		return "MixedTabsAndSpaces"
	case ErrSpacesNotMultipleOfIndent:
		return "SpacesNotMultipleOfIndent"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// ParserError is the terminal diagnostic of a failed parse. Parsing aborts at
// the first error; no partial document is produced.
type ParserError struct {
	Kind ErrorKind

	// Expected is the missing token when Kind is ErrExpected.
	Expected string
	// ExpectedIndention and FoundIndention carry the conflicting units when
	// Kind is ErrInconsistentIndention.
	ExpectedIndention Indention
	FoundIndention    Indention

	// Line and Column locate the failure, both 0-based. Column is a byte
	// offset into Text.
	Line   int
	Column int
	// Text is the raw offending line.
	Text string
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.description())
}

func (e *ParserError) description() string {
	switch e.Kind {
	case ErrUnexpectedCharacter:
		return "unexpected character"
	case ErrUnclosedString:
		return "string not closed"
	case ErrExpected:
		return fmt.Sprintf("expected %q", e.Expected)
	case ErrInconsistentIndention:
		return fmt.Sprintf("inconsistent indention, expected: %s, but found: %s",
			e.ExpectedIndention, e.FoundIndention)
	case ErrInvalidIndention:
		return "invalid indention"
	case ErrMultipleTabIndent:
		return "tab indention can only use one tab"
	case ErrMixedTabsAndSpaces:
		return "indention of mixed tabs and spaces is not allowed"
	case ErrSpacesNotMultipleOfIndent:
		return "amount of spaces is not a multiple of the indention spaces"
	default:
		return e.Kind.String()
	}
}
