package kvon

import (
	"strconv"
	"strings"
)

// lexer is a cursor over one physical line. It provides the look-ahead and
// consume-on-match primitives the parser state machine dispatches on, plus
// scanners for keys, literals and inline arrays.
type lexer struct {
	lineNum int
	line    string
	pos     int
}

func newLexer(lineNum int, line string) *lexer {
	return &lexer{lineNum: lineNum, line: line}
}

// errAt builds a ParserError of the given kind at the current column.
func (l *lexer) errAt(kind ErrorKind) *ParserError {
	return &ParserError{
		Kind:   kind,
		Line:   l.lineNum,
		Column: l.pos,
		Text:   l.line,
	}
}

// errExpected reports a missing required token.
func (l *lexer) errExpected(token string) *ParserError {
	err := l.errAt(ErrExpected)
	err.Expected = token
	return err
}

// errIndention reports a whitespace kind conflicting with the document unit.
func (l *lexer) errIndention(expected, found Indention) *ParserError {
	err := l.errAt(ErrInconsistentIndention)
	err.ExpectedIndention = expected
	err.FoundIndention = found
	return err
}

func (l *lexer) rest() string {
	return l.line[l.pos:]
}

func (l *lexer) reachedEnd() bool {
	return l.pos >= len(l.line)
}

// see reports whether the remainder of the line starts with s.
func (l *lexer) see(s string) bool {
	return strings.HasPrefix(l.rest(), s)
}

// have consumes s if the remainder starts with it.
func (l *lexer) have(s string) bool {
	if !l.see(s) {
		return false
	}
	l.pos += len(s)
	return true
}

// seeEndOrComment reports whether only whitespace or a trailing comment is
// left on the line.
func (l *lexer) seeEndOrComment() bool {
	left := strings.TrimLeft(l.rest(), " \t")
	return left == "" || left[0] == '#'
}

// restOfLine consumes and returns the remainder of the line verbatim.
func (l *lexer) restOfLine() string {
	rest := l.rest()
	l.pos = len(l.line)
	return rest
}

// nextWhitespaces consumes leading tabs and spaces, returning how many of
// each were seen before the first other character.
func (l *lexer) nextWhitespaces() (tabs, spaces int) {
	for l.pos < len(l.line) {
		switch l.line[l.pos] {
		case '\t':
			tabs++
		case ' ':
			spaces++
		default:
			return tabs, spaces
		}
		l.pos++
	}
	return tabs, spaces
}

// skipSpaces consumes in-line whitespace.
func (l *lexer) skipSpaces() {
	for l.pos < len(l.line) && (l.line[l.pos] == ' ' || l.line[l.pos] == '\t') {
		l.pos++
	}
}

// scanStringLiteral scans a quote-run delimited literal. The opening
// delimiter is a maximal run of identical quote characters (' or ") and the
// literal ends at the first identical-length run of the same character, so
// quote characters may appear inside a literal delimited by a longer run.
// Returns ok=false without consuming anything when no literal starts here.
func (l *lexer) scanStringLiteral() (string, bool, *ParserError) {
	if l.reachedEnd() {
		return "", false, nil
	}
	q := l.line[l.pos]
	if q != '\'' && q != '"' {
		return "", false, nil
	}

	start := l.pos
	for l.pos < len(l.line) && l.line[l.pos] == q {
		l.pos++
	}
	delim := l.line[start:l.pos]

	end := strings.Index(l.rest(), delim)
	if end < 0 {
		l.pos = len(l.line)
		return "", false, l.errAt(ErrUnclosedString)
	}
	content := l.rest()[:end]
	l.pos += end + len(delim)
	return content, true, nil
}

// scanKey scans a quoted or bare key. A bare key is a run terminated by
// whitespace, ':', '#' or ';' and may be empty.
func (l *lexer) scanKey() (string, *ParserError) {
	if lit, ok, err := l.scanStringLiteral(); err != nil {
		return "", err
	} else if ok {
		return lit, nil
	}

	start := l.pos
	for l.pos < len(l.line) {
		switch l.line[l.pos] {
		case ' ', '\t', ':', '#', ';':
			return l.line[start:l.pos], nil
		}
		l.pos++
	}
	return l.line[start:], nil
}

// scanKeyWithColon scans a key followed by ':', consuming both. When the
// colon is absent the cursor is rolled back and ok is false.
func (l *lexer) scanKeyWithColon() (string, bool, *ParserError) {
	start := l.pos
	key, err := l.scanKey()
	if err != nil {
		return "", false, err
	}
	l.skipSpaces()
	if !l.have(":") {
		l.pos = start
		return "", false, nil
	}
	return key, true, nil
}

// scanNumber scans a numeric literal: optional '-', optional integer digits,
// optional '.' followed by digits. No exponent form exists. Nothing is
// consumed unless a parseable number starts here.
func (l *lexer) scanNumber() (float32, bool) {
	p := l.pos
	if p < len(l.line) && l.line[p] == '-' {
		p++
	}
	for p < len(l.line) && isDigit(l.line[p]) {
		p++
	}
	if p+1 < len(l.line) && l.line[p] == '.' && isDigit(l.line[p+1]) {
		p++
		for p < len(l.line) && isDigit(l.line[p]) {
			p++
		}
	}

	tok := l.line[l.pos:p]
	if tok == "" || tok == "-" {
		return 0, false
	}
	f, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, false
	}
	l.pos = p
	return float32(f), true
}

// scanPrimitive scans a string, number, boolean or null literal.
func (l *lexer) scanPrimitive() (Primitive, bool, *ParserError) {
	if lit, ok, err := l.scanStringLiteral(); err != nil {
		return Primitive{}, false, err
	} else if ok {
		return String(lit), true, nil
	}
	if n, ok := l.scanNumber(); ok {
		return Number(n), true, nil
	}
	if l.have("true") {
		return Bool(true), true, nil
	}
	if l.have("false") {
		return Bool(false), true, nil
	}
	if l.have("null") {
		return Null(), true, nil
	}
	return Primitive{}, false, nil
}

// scanInlineArray scans a bracketed single-line array of whitespace-separated
// primitives and nested inline arrays. Returns ok=false without consuming
// anything when the remainder does not start with '['.
func (l *lexer) scanInlineArray() (Value, bool, *ParserError) {
	if !l.have("[") {
		return Value{}, false, nil
	}
	v, err := l.scanInlineArrayBody()
	if err != nil {
		return Value{}, false, err
	}
	return v, true, nil
}

func (l *lexer) scanInlineArrayBody() (Value, *ParserError) {
	var elems []Value
	for {
		l.skipSpaces()
		if l.have("]") {
			break
		}
		if l.seeEndOrComment() {
			return Value{}, l.errExpected("]")
		}
		if l.have("[") {
			nested, err := l.scanInlineArrayBody()
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, nested)
			continue
		}
		if prim, ok, err := l.scanPrimitive(); err != nil {
			return Value{}, err
		} else if ok {
			elems = append(elems, FromPrimitive(prim))
			continue
		}
		return Value{}, l.errAt(ErrUnexpectedCharacter)
	}
	return Array(elems...), nil
}

// haveIndentions consumes exactly count units of the given indentation kind.
// On any mismatch, including the opposite whitespace character, nothing is
// consumed and false is returned.
func (l *lexer) haveIndentions(in Indention, count int) bool {
	start := l.pos
	for i := 0; i < count; i++ {
		if in.IsTabs() {
			if l.see(" ") || !l.have("\t") {
				l.pos = start
				return false
			}
			continue
		}
		for j := 0; j < in.spaces; j++ {
			if l.see("\t") || !l.have(" ") {
				l.pos = start
				return false
			}
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
