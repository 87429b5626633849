package kvon

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	f := func(name string, v Value, want string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			assert.Equal(t, want, Encode(v, Tabs()))
		})
	}

	f("flat_object", MustBuild(map[string]any{
		"d": 0,
		"a": map[string]any{"c": 1, "b": 0},
	}), "a:\n\tb: 0\n\tc: 1\nd: 0")

	f("primitives", MustBuild(map[string]any{
		"num":  1.5,
		"neg":  -2,
		"yes":  true,
		"no":   false,
		"none": nil,
		"text": "plain",
	}), "neg: -2\nno: false\nnone: null\nnum: 1.5\ntext: 'plain'\nyes: true")

	f("inline_array", MustBuild(map[string]any{
		"k": []any{1, true, "x"},
	}), "k: [1 true 'x']")

	f("empty_array", MustBuild(map[string]any{
		"k": []any{},
	}), "k: []")

	// an element that is itself an array forces block form, nested block
	// arrays are introduced by a bare "--" line
	f("nested_array_goes_block", MustBuild(map[string]any{
		"k": []any{1, []any{2, 3}},
	}), "k:--\n\t- 1\n\t--\n\t\t- 2\n\t\t- 3")

	// one "- key: value" line per single-entry object element
	f("array_of_objects", MustBuild(map[string]any{
		"arr": []any{
			map[string]any{"a": "a"},
			map[string]any{"b": "b"},
		},
	}), "arr:--\n\t- a: 'a'\n\t- b: 'b'")

	f("multi_key_element", MustBuild(map[string]any{
		"arr": []any{
			map[string]any{"a": 1, "b": 2},
		},
	}), "arr:--\n\t-\n\t\ta: 1\n\t\tb: 2")

	f("block_string", MustBuild(map[string]any{
		"s": "line 1\nline 2",
	}), "s: |\n\tline 1\n\tline 2")

	f("string_with_quote_goes_block", MustBuild(map[string]any{
		"s": "it's",
	}), "s: |\n\tit's")

	f("empty_string_is_empty_block", MustBuild(map[string]any{
		"s": "",
	}), "s: |")

	f("empty_object_keeps_colon", MustBuild(map[string]any{
		"o": map[string]any{},
	}), "o:")

	f("quoted_key", MustBuild(map[string]any{
		"key one": 1,
	}), "'key one': 1")

	f("block_string_element", MustBuild(map[string]any{
		"arr": []any{"a\nb", 1},
	}), "arr:--\n\t- |\n\t\ta\n\t\tb\n\t- 1")

	f("keyed_block_string_element", MustBuild(map[string]any{
		"arr": []any{
			map[string]any{"a": "x\ny"},
		},
	}), "arr:--\n\t- a: |\n\t\tx\n\t\ty")

	// "- key:--" is not a parseable line, so an element whose single value is
	// a block array falls back to the multi-key form
	f("element_with_block_array_value", MustBuild(map[string]any{
		"arr": []any{
			map[string]any{"k": []any{1, []any{2}}},
		},
	}), "arr:--\n\t-\n\t\tk:--\n\t\t\t- 1\n\t\t\t--\n\t\t\t\t- 2")

	f("deep_nesting", MustBuild(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1}},
	}), "a:\n\tb:\n\t\tc: 1")
}

// An empty key has no valid quoted spelling, so its emission cannot reparse.
// Documented on Encode; this pins the behavior.
func TestEncodeEmptyKey(t *testing.T) {
	v := MustBuild(map[string]any{"": 1})
	text := Encode(v, Tabs())
	assert.Equal(t, "'': 1", text)

	_, err := Parse(text)
	var perr *ParserError
	if !errors.As(err, &perr) {
		t.Fatalf("error is %T, not *ParserError", err)
	}
	assert.Equal(t, ErrUnclosedString, perr.Kind)
}

func TestEncodeSpaces(t *testing.T) {
	v := MustBuild(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": 1}},
	})
	assert.Equal(t, "a:\n  b:\n    c: 1", Encode(v, Spaces(2)))
	assert.Equal(t, "a:\n    b:\n        c: 1", Encode(v, Spaces(4)))
}

func TestEncodeNumbers(t *testing.T) {
	f := func(name string, n float32, want string) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			v := Object(map[string]Value{"n": FromPrimitive(Number(n))})
			assert.Equal(t, "n: "+want, Encode(v, Tabs()))
		})
	}

	f("integer", 42, "42")
	f("negative", -7, "-7")
	f("fraction", 0.25, "0.25")
	f("shortest_form", 0.1, "0.1")
	// no exponent notation, numbers must read back through the tokenizer
	f("large", 1e10, "10000000000")
}

func TestRoundTrip(t *testing.T) {
	f := func(name string, v Value) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			for _, ind := range []Indention{Tabs(), Spaces(2), Spaces(4)} {
				text := Encode(v, ind)
				back, err := Parse(text)
				if err != nil {
					t.Fatalf("reparsing %q: %v", text, err)
				}
				assert.Equal(t, v, back)
				assert.Equal(t, text, Encode(back, ind))
			}
		})
	}

	f("scalars", MustBuild(map[string]any{
		"a": 1, "b": -2.5, "c": true, "d": nil, "e": "text",
	}))
	f("nested_objects", MustBuild(map[string]any{
		"a": map[string]any{"b": map[string]any{"c": map[string]any{}}},
	}))
	f("arrays", MustBuild(map[string]any{
		"inline": []any{1, 2, "x"},
		"block":  []any{[]any{1}, map[string]any{"k": 1}, "a\nb"},
		"empty":  []any{},
	}))
	f("strings", MustBuild(map[string]any{
		"plain":  "hello world",
		"quotes": `it has ' and " in it`,
		"lines":  "one\ntwo\nthree",
		"empty":  "",
	}))
	f("elements", MustBuild(map[string]any{
		"arr": []any{
			map[string]any{"single": 1},
			map[string]any{"a": 1, "b": 2},
			map[string]any{"s": "x\ny"},
			map[string]any{"deep": map[string]any{"k": "v"}},
			nil,
			true,
		},
	}))

	// the parsed form of every document fixture must survive a full cycle
	for _, src := range []string{
		simpleObject, inlinedArrays, multiLineArraysA, multiLineArraysB,
		multiLineStrings, arrayOfObjects, emptyObjectVsNull,
	} {
		v, err := Parse(src)
		if err != nil {
			t.Fatalf("parsing fixture: %v", err)
		}
		back, err := Parse(Encode(v, Tabs()))
		if err != nil {
			t.Fatalf("reparsing fixture: %v", err)
		}
		assert.Equal(t, v, back)
	}
}

func TestEncoderWriter(t *testing.T) {
	var sb strings.Builder
	enc := NewEncoder(&sb)
	v := MustBuild(map[string]any{"a": 1})
	if err := enc.Encode(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "a: 1\n", sb.String())

	sb.Reset()
	enc.SetIndention(Spaces(2))
	v = MustBuild(map[string]any{"a": map[string]any{"b": 1}})
	if err := enc.Encode(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, "a:\n  b: 1\n", sb.String())
}
