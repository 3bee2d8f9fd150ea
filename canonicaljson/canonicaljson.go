// Package canonicaljson encodes JSON per RFC 8785 (JSON Canonicalization
// Scheme). Serialized fragments keep their declared key order for humans;
// this package gives the byte-stable form used for hashing and golden files.
package canonicaljson

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	json "github.com/goccy/go-json"
)

// Marshal returns the RFC 8785 encoding of v. v may be pre-encoded JSON
// (json.RawMessage or []byte) or any value json.Marshal accepts.
//
// Object members are sorted by UTF-16 code units, arrays keep their order,
// numbers use the ECMAScript form and output has no insignificant whitespace.
func Marshal(v any) ([]byte, error) {
	raw, err := encode(v)
	if err != nil {
		return nil, err
	}
	tree, err := decodeOne(raw)
	if err != nil {
		return nil, err
	}
	var e encoder
	if err := e.value(tree); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

func encode(v any) ([]byte, error) {
	switch x := v.(type) {
	case json.RawMessage:
		return x, nil
	case []byte:
		return x, nil
	}
	return json.Marshal(v)
}

// decodeOne decodes exactly one JSON value, keeping numbers as text.
func decodeOne(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return nil, errors.New("canonicaljson: trailing data")
		}
		return nil, err
	}
	return tree, nil
}

type encoder struct {
	buf bytes.Buffer
}

func (e *encoder) value(v any) error {
	switch x := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(x))
	case string:
		e.string(x)
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return err
		}
		return e.number(f)
	case float64:
		return e.number(x)
	case []any:
		e.buf.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.value(item); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case map[string]any:
		return e.object(x)
	default:
		return errors.New("canonicaljson: unsupported value type")
	}
	return nil
}

func (e *encoder) object(m map[string]any) error {
	type member struct {
		name  string
		units []uint16
	}
	members := make([]member, 0, len(m))
	for k := range m {
		members = append(members, member{name: k, units: utf16.Encode([]rune(k))})
	}
	sort.Slice(members, func(i, j int) bool {
		return lessUTF16(members[i].units, members[j].units)
	})

	e.buf.WriteByte('{')
	for i, mem := range members {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.string(mem.name)
		e.buf.WriteByte(':')
		if err := e.value(m[mem.name]); err != nil {
			return err
		}
	}
	e.buf.WriteByte('}')
	return nil
}

func lessUTF16(a, b []uint16) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// shortEscapes are the control characters RFC 8785 §3.2.2.2 writes in
// two-character form.
var shortEscapes = map[rune]string{
	'\b': `\b`,
	'\t': `\t`,
	'\n': `\n`,
	'\f': `\f`,
	'\r': `\r`,
	'"':  `\"`,
	'\\': `\\`,
}

func (e *encoder) string(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		if esc, ok := shortEscapes[r]; ok {
			e.buf.WriteString(esc)
			continue
		}
		if r <= 0x1F {
			e.buf.WriteString(`\u00`)
			e.buf.WriteString(hex.EncodeToString([]byte{byte(r)}))
			continue
		}
		e.buf.WriteRune(r)
	}
	e.buf.WriteByte('"')
}

// number writes f the way ECMAScript's Number.prototype.toString does.
func (e *encoder) number(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("canonicaljson: NaN or Infinity")
	}
	if f == 0 {
		// Covers -0 too.
		e.buf.WriteByte('0')
		return nil
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		e.buf.WriteString(trimExponent(strconv.FormatFloat(f, 'e', -1, 64)))
		return nil
	}
	e.buf.WriteString(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

// trimExponent drops the zero padding Go puts in exponents (1e-07 -> 1e-7).
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	exp := strings.TrimLeft(s[i+2:], "0")
	if exp == "" {
		exp = "0"
	}
	return s[:i+2] + exp
}
