package kvon

import (
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// bareKeyRe matches keys that can be written without quoting: nonempty, not
// starting with a quote character and free of key terminators.
var bareKeyRe = regexp.MustCompile(`^[^'" \t:#;][^ \t:#;]*$`)

// Encode renders v as canonical text using the given indention unit. Object
// keys are sorted, so equal values always produce equal text. Arrays are
// written inline when every element is a primitive that fits on one line,
// block form otherwise. The result carries no trailing newline.
//
// An empty object key renders as '', which has no valid spelling in the
// grammar (a run of two quotes opens a length-2 delimiter), so documents
// holding empty-keyed entries do not reparse.
func Encode(v Value, ind Indention) string {
	st := encodePool.Get().(*encodeState)
	defer encodePool.Put(st)
	st.sb.Reset()
	st.ind = ind

	st.value(v, 0)
	return st.finish()
}

// An Encoder writes values to an output stream, one document per Encode
// call, each terminated by a newline.
type Encoder struct {
	w   io.Writer
	ind Indention
}

// NewEncoder returns an Encoder writing to w, indenting with tabs.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, ind: Tabs()}
}

// SetIndention changes the indention unit used for subsequent documents.
func (e *Encoder) SetIndention(ind Indention) {
	e.ind = ind
}

// Encode writes the encoding of v followed by a newline.
func (e *Encoder) Encode(v Value) error {
	_, err := io.WriteString(e.w, Encode(v, e.ind)+"\n")
	return err
}

var encodePool = sync.Pool{
	New: func() any { return new(encodeState) },
}

type encodeState struct {
	sb  strings.Builder
	ind Indention
}

// finish drops fully blank lines and joins the rest.
func (st *encodeState) finish() string {
	lines := strings.Split(st.sb.String(), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimLeft(l, " \t") != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

func (st *encodeState) indent(depth int) {
	for i := 0; i < depth; i++ {
		st.sb.WriteString(st.ind.unit())
	}
}

// value writes a document root. Only object roots parse back; other roots
// are rendered for completeness.
func (st *encodeState) value(v Value, depth int) {
	switch {
	case v.IsObject():
		obj, _ := v.AsObject()
		st.entries(obj, depth)
	case v.IsArray():
		arr, _ := v.AsArray()
		if arrayInlineable(arr) {
			st.inlineArray(arr)
			st.sb.WriteByte('\n')
		} else {
			st.elements(arr, depth)
		}
	default:
		p, _ := v.AsPrimitive()
		if s, ok := p.AsString(); ok && needsBlock(s) {
			st.sb.WriteString("|\n")
			st.stringBlock(s, depth+1)
		} else {
			st.sb.WriteString(primitiveLiteral(p))
			st.sb.WriteByte('\n')
		}
	}
}

// entries writes one line per key in sorted order.
func (st *encodeState) entries(obj map[string]Value, depth int) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		st.indent(depth)
		st.sb.WriteString(quoteKey(k))
		st.entryValue(obj[k], depth)
	}
}

// entryValue writes everything after the key of an object entry, from the
// colon to the end of the entry's last line. An empty object leaves nothing
// after the colon, which reads back as an empty object again.
func (st *encodeState) entryValue(v Value, depth int) {
	switch {
	case v.IsObject():
		obj, _ := v.AsObject()
		st.sb.WriteString(":\n")
		st.entries(obj, depth+1)
	case v.IsArray():
		arr, _ := v.AsArray()
		if arrayInlineable(arr) {
			st.sb.WriteString(": ")
			st.inlineArray(arr)
			st.sb.WriteByte('\n')
		} else {
			st.sb.WriteString(":--\n")
			st.elements(arr, depth+1)
		}
	default:
		p, _ := v.AsPrimitive()
		if s, ok := p.AsString(); ok && needsBlock(s) {
			st.sb.WriteString(": |\n")
			st.stringBlock(s, depth+1)
		} else {
			st.sb.WriteString(": ")
			st.sb.WriteString(primitiveLiteral(p))
			st.sb.WriteByte('\n')
		}
	}
}

// elements writes block array form, one element per line. A nested block
// array is introduced by a bare "--" line so it cannot be confused with any
// other element shape.
func (st *encodeState) elements(arr []Value, depth int) {
	for _, el := range arr {
		switch {
		case el.IsArray():
			inner, _ := el.AsArray()
			if arrayInlineable(inner) {
				st.indent(depth)
				st.sb.WriteString("- ")
				st.inlineArray(inner)
				st.sb.WriteByte('\n')
			} else {
				st.indent(depth)
				st.sb.WriteString("--\n")
				st.elements(inner, depth+1)
			}
		case el.IsObject():
			obj, _ := el.AsObject()
			st.objectElement(obj, depth)
		default:
			p, _ := el.AsPrimitive()
			if s, ok := p.AsString(); ok && needsBlock(s) {
				st.indent(depth)
				st.sb.WriteString("- |\n")
				st.stringBlock(s, depth+1)
			} else {
				st.indent(depth)
				st.sb.WriteString("- ")
				st.sb.WriteString(primitiveLiteral(p))
				st.sb.WriteByte('\n')
			}
		}
	}
}

// objectElement writes one object array element. A single-entry object uses
// the compact "- key ..." form when its value can follow a key on an element
// line. Anything else falls back to a bare "-" line with the entries nested
// one level deeper, which also covers block-array values since "- key:--"
// is not a parseable line.
func (st *encodeState) objectElement(obj map[string]Value, depth int) {
	if len(obj) == 1 {
		for k, v := range obj {
			if !v.IsArray() || arrayInlineable(mustArr(v)) {
				st.indent(depth)
				st.sb.WriteString("- ")
				st.sb.WriteString(quoteKey(k))
				st.entryValue(v, depth)
				return
			}
		}
	}
	st.indent(depth)
	st.sb.WriteString("-\n")
	st.entries(obj, depth+1)
}

func (st *encodeState) inlineArray(arr []Value) {
	st.sb.WriteByte('[')
	for i, el := range arr {
		if i > 0 {
			st.sb.WriteByte(' ')
		}
		p, _ := el.AsPrimitive()
		st.sb.WriteString(primitiveLiteral(p))
	}
	st.sb.WriteByte(']')
}

func (st *encodeState) stringBlock(s string, depth int) {
	for _, line := range strings.Split(s, "\n") {
		st.indent(depth)
		st.sb.WriteString(line)
		st.sb.WriteByte('\n')
	}
}

// needsBlock reports whether a string must use multi-line form. Quoted
// literals have no escaping, so any quote character forces a block, and an
// empty inline literal has no valid spelling at all.
func needsBlock(s string) bool {
	return s == "" || strings.ContainsAny(s, "'\"\n")
}

// inlineElement reports whether v can appear inside an inline array.
func inlineElement(v Value) bool {
	p, ok := v.AsPrimitive()
	if !ok {
		return false
	}
	if s, isStr := p.AsString(); isStr {
		return !needsBlock(s)
	}
	return true
}

func arrayInlineable(arr []Value) bool {
	for _, el := range arr {
		if !inlineElement(el) {
			return false
		}
	}
	return true
}

func mustArr(v Value) []Value {
	arr, _ := v.AsArray()
	return arr
}

// primitiveLiteral renders a primitive in its minimal single-line form.
// Numbers never use exponent notation so they read back as numbers.
func primitiveLiteral(p Primitive) string {
	if p.IsNull() {
		return "null"
	}
	if n, ok := p.AsNumber(); ok {
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	}
	if b, ok := p.AsBool(); ok {
		return strconv.FormatBool(b)
	}
	s, _ := p.AsString()
	return "'" + s + "'"
}

func quoteKey(key string) string {
	if bareKeyRe.MatchString(key) {
		return key
	}
	if !strings.Contains(key, "'") {
		return "'" + key + "'"
	}
	if !strings.Contains(key, `"`) {
		return `"` + key + `"`
	}
	delim := strings.Repeat("'", longestRun(key, '\'')+1)
	return delim + key + delim
}

func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}
