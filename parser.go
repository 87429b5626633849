package kvon

import (
	"strings"
)

// frame is one level of the parse stack. A frame is created by the line that
// opens a nested value and collects content lines indented one unit deeper.
type frame interface {
	depth() int
}

// objectFrame collects key/value entries. The root of every document is an
// objectFrame at depth 0. When keyed, the finished object is assigned under
// key in the parent; a keyless objectFrame is an array element opened by a
// bare "-" line.
type objectFrame struct {
	d       int
	key     string
	keyed   bool
	entries map[string]Value
}

func newObjectFrame(d int) *objectFrame {
	return &objectFrame{d: d, entries: map[string]Value{}}
}

func (f *objectFrame) depth() int { return f.d }

// arrayFrame collects elements from "-" and "--" lines.
type arrayFrame struct {
	d     int
	key   string
	keyed bool
	elems []Value
}

func (f *arrayFrame) depth() int { return f.d }

// stringFrame collects the raw lines of a multi-line string block. Content
// sits at exactly the frame depth and is kept verbatim past the indention.
type stringFrame struct {
	d     int
	key   string
	keyed bool
	lines []string
}

func (f *stringFrame) depth() int { return f.d }

// Parser consumes a document line by line and assembles a Value. Feed each
// line to NextLine, then call Finish. The first error is sticky: every
// subsequent call returns it again.
type Parser struct {
	lineNum   int
	indention Indention
	haveUnit  bool
	stack     []frame
	err       error
}

// NewParser returns a Parser ready for the first line. The indention unit is
// inferred from the first indented line of the document.
func NewParser() *Parser {
	return &Parser{stack: []frame{newObjectFrame(0)}}
}

// NextLine processes one line, given without its trailing newline.
func (p *Parser) NextLine(line string) error {
	if p.err != nil {
		return p.err
	}
	lx := newLexer(p.lineNum, line)
	p.lineNum++
	if err := p.processLine(lx); err != nil {
		p.err = err
		return err
	}
	return nil
}

// Finish closes all open frames and returns the document root.
func (p *Parser) Finish() (Value, error) {
	if p.err != nil {
		return Value{}, p.err
	}
	for len(p.stack) > 1 {
		p.popFrame()
	}
	root := p.stack[0].(*objectFrame)
	return Object(root.entries), nil
}

func (p *Parser) top() frame {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) push(f frame) {
	p.stack = append(p.stack, f)
}

// popFrame folds the top frame into the frame below it.
func (p *Parser) popFrame() {
	top := p.top()
	p.stack = p.stack[:len(p.stack)-1]

	var v Value
	var key string
	var keyed bool
	switch f := top.(type) {
	case *objectFrame:
		v, key, keyed = Object(f.entries), f.key, f.keyed
	case *arrayFrame:
		v, key, keyed = Array(f.elems...), f.key, f.keyed
	case *stringFrame:
		v, key, keyed = FromPrimitive(String(strings.Join(f.lines, "\n"))), f.key, f.keyed
	}

	switch pf := p.top().(type) {
	case *objectFrame:
		pf.entries[key] = v
	case *arrayFrame:
		if keyed {
			pf.elems = append(pf.elems, KeyValue(key, v))
		} else {
			pf.elems = append(pf.elems, v)
		}
	}
}

func (p *Parser) collapseTo(depth int) {
	for p.top().depth() > depth {
		p.popFrame()
	}
}

func (p *Parser) processLine(lx *lexer) *ParserError {
	if sf, ok := p.top().(*stringFrame); ok {
		consumed, err := p.stringLine(lx, sf)
		if err != nil || consumed {
			return err
		}
		// block ended, reparse the line as structure
	}

	if lx.seeEndOrComment() {
		return nil
	}

	depth, err := p.resolveIndent(lx)
	if err != nil {
		return err
	}
	if depth > p.top().depth() {
		return lx.errAt(ErrInvalidIndention)
	}
	p.collapseTo(depth)

	switch f := p.top().(type) {
	case *objectFrame:
		return p.objectLine(lx, f)
	case *arrayFrame:
		return p.arrayLine(lx, f)
	}
	return nil
}

// stringLine appends one content line to an open multi-line string block.
// A line not indented to the frame depth closes the block and is handed back
// for structural parsing, so consumed is false.
func (p *Parser) stringLine(lx *lexer, sf *stringFrame) (consumed bool, err *ParserError) {
	if !p.haveUnit {
		if strings.HasPrefix(lx.line, "\t") {
			p.indention = Tabs()
			p.haveUnit = true
		} else if n := leadingSpaces(lx.line); n > 0 {
			if n < len(lx.line) && lx.line[n] == '\t' {
				return false, lx.errAt(ErrMixedTabsAndSpaces)
			}
			p.indention = Spaces(n)
			p.haveUnit = true
		}
	}
	if p.haveUnit && lx.haveIndentions(p.indention, sf.d) {
		sf.lines = append(sf.lines, lx.restOfLine())
		return true, nil
	}
	p.popFrame()
	return false, nil
}

// resolveIndent consumes the line's leading whitespace and converts it to a
// nesting depth, fixing the document unit on the first indented line.
func (p *Parser) resolveIndent(lx *lexer) (int, *ParserError) {
	tabs, spaces := lx.nextWhitespaces()
	if tabs > 0 && spaces > 0 {
		return 0, lx.errAt(ErrMixedTabsAndSpaces)
	}
	if tabs == 0 && spaces == 0 {
		return 0, nil
	}

	if !p.haveUnit {
		if tabs > 1 {
			return 0, lx.errAt(ErrMultipleTabIndent)
		}
		if tabs == 1 {
			p.indention = Tabs()
		} else {
			p.indention = Spaces(spaces)
		}
		p.haveUnit = true
		return 1, nil
	}

	if p.indention.IsTabs() {
		if spaces > 0 {
			return 0, lx.errIndention(Tabs(), Spaces(spaces))
		}
		return tabs, nil
	}
	if tabs > 0 {
		return 0, lx.errIndention(p.indention, Tabs())
	}
	if spaces%p.indention.spaces != 0 {
		return 0, lx.errAt(ErrSpacesNotMultipleOfIndent)
	}
	return spaces / p.indention.spaces, nil
}

// expectEnd requires nothing but whitespace or a comment on the rest of the
// line.
func expectEnd(lx *lexer) *ParserError {
	lx.skipSpaces()
	if lx.reachedEnd() || lx.see("#") {
		return nil
	}
	return lx.errAt(ErrUnexpectedCharacter)
}

func (p *Parser) objectLine(lx *lexer, f *objectFrame) *ParserError {
	key, err := lx.scanKey()
	if err != nil {
		return err
	}
	lx.skipSpaces()

	if lx.have(":--") {
		if perr := expectEnd(lx); perr != nil {
			return perr
		}
		p.push(&arrayFrame{d: f.d + 1, key: key, keyed: true})
		return nil
	}

	if lx.have(":") {
		lx.skipSpaces()

		if v, ok, perr := lx.scanInlineArray(); perr != nil {
			return perr
		} else if ok {
			f.entries[key] = v
			return expectEnd(lx)
		}
		if lx.seeEndOrComment() {
			of := newObjectFrame(f.d + 1)
			of.key, of.keyed = key, true
			p.push(of)
			return nil
		}
		if lx.have("|") {
			if perr := expectEnd(lx); perr != nil {
				return perr
			}
			p.push(&stringFrame{d: f.d + 1, key: key, keyed: true})
			return nil
		}
		if prim, ok, perr := lx.scanPrimitive(); perr != nil {
			return perr
		} else if ok {
			f.entries[key] = FromPrimitive(prim)
			return expectEnd(lx)
		}
		return lx.errAt(ErrUnexpectedCharacter)
	}

	// a bare key stands for null
	if perr := expectEnd(lx); perr != nil {
		return perr
	}
	f.entries[key] = Value{}
	return nil
}

func (p *Parser) arrayLine(lx *lexer, f *arrayFrame) *ParserError {
	if lx.have("--") {
		if perr := expectEnd(lx); perr != nil {
			return perr
		}
		p.push(&arrayFrame{d: f.d + 1})
		return nil
	}
	if !lx.have("-") {
		return lx.errExpected("-")
	}
	lx.skipSpaces()

	if key, ok, perr := lx.scanKeyWithColon(); perr != nil {
		return perr
	} else if ok {
		// an element line needs a real key in front of its colon
		if key == "" {
			return lx.errAt(ErrUnexpectedCharacter)
		}
		lx.skipSpaces()

		if v, ok2, perr2 := lx.scanInlineArray(); perr2 != nil {
			return perr2
		} else if ok2 {
			f.elems = append(f.elems, KeyValue(key, v))
			return expectEnd(lx)
		}
		if lx.have("|") {
			if perr2 := expectEnd(lx); perr2 != nil {
				return perr2
			}
			// element object wrapping a keyed string block
			p.push(newObjectFrame(f.d + 1))
			p.push(&stringFrame{d: f.d + 1, key: key, keyed: true})
			return nil
		}
		if lx.seeEndOrComment() {
			of := newObjectFrame(f.d + 1)
			of.key, of.keyed = key, true
			p.push(of)
			return nil
		}
		if prim, ok2, perr2 := lx.scanPrimitive(); perr2 != nil {
			return perr2
		} else if ok2 {
			f.elems = append(f.elems, KeyValue(key, FromPrimitive(prim)))
			return expectEnd(lx)
		}
		return lx.errAt(ErrUnexpectedCharacter)
	}

	if lx.have("|") {
		if perr := expectEnd(lx); perr != nil {
			return perr
		}
		p.push(&stringFrame{d: f.d + 1})
		return nil
	}
	if lx.seeEndOrComment() {
		// a bare "-" opens a multi-key object element
		p.push(newObjectFrame(f.d + 1))
		return nil
	}

	// one or more primitives and inline arrays, flattened onto the array
	for {
		lx.skipSpaces()
		if lx.seeEndOrComment() {
			return nil
		}
		if v, ok, perr := lx.scanInlineArray(); perr != nil {
			return perr
		} else if ok {
			f.elems = append(f.elems, v)
			continue
		}
		if prim, ok, perr := lx.scanPrimitive(); perr != nil {
			return perr
		} else if ok {
			f.elems = append(f.elems, FromPrimitive(prim))
			continue
		}
		return lx.errAt(ErrUnexpectedCharacter)
	}
}

func leadingSpaces(s string) int {
	n := 0
	for n < len(s) && s[n] == ' ' {
		n++
	}
	return n
}
