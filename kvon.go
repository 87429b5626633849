// Package kvon parses and encodes KVON (Key Value Object Notation)
// documents. KVON is a line-oriented, indentation-sensitive format sitting
// between YAML and minimal JSON: objects are "key: value" lines, nesting is
// one indention unit per level, arrays use "-" item lines or single-line
// "[a b c]" form, and "|" opens a verbatim multi-line string block.
package kvon

import (
	"bufio"
	"io"
	"strings"
)

// Parse parses a complete document. The root of a document is always an
// object. Carriage returns before line breaks are dropped, so documents with
// Windows line endings parse the same as Unix ones.
func Parse(s string) (Value, error) {
	p := NewParser()
	for _, line := range strings.Split(s, "\n") {
		if err := p.NextLine(strings.TrimSuffix(line, "\r")); err != nil {
			return Value{}, err
		}
	}
	return p.Finish()
}

// Decoder reads a KVON document from an input stream.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Decode reads the stream to EOF and parses it as one document.
func (d *Decoder) Decode() (Value, error) {
	p := NewParser()
	for {
		line, err := d.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return Value{}, err
		}
		atEOF := err == io.EOF
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if !atEOF || line != "" {
			if perr := p.NextLine(line); perr != nil {
				return Value{}, perr
			}
		}
		if atEOF {
			return p.Finish()
		}
	}
}
