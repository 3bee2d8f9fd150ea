package canonicaljson

import (
	"bytes"
	"testing"

	json "github.com/goccy/go-json"
)

func TestMarshal_SameBytesRegardlessOfMemberOrder(t *testing.T) {
	inA := []byte(`{"default": "v1", "enum": ["v1", "v2"], "x-nested": {"b": 2, "a": 1}}`)
	inB := []byte(`{"x-nested": {"a": 1, "b": 2}, "enum": ["v1", "v2"], "default": "v1"}`)

	ca, err := Marshal(json.RawMessage(inA))
	if err != nil {
		t.Fatalf("canonical a: %v", err)
	}
	cb, err := Marshal(json.RawMessage(inB))
	if err != nil {
		t.Fatalf("canonical b: %v", err)
	}
	if !bytes.Equal(ca, cb) {
		t.Fatalf("expected identical canonical JSON\nA: %s\nB: %s", ca, cb)
	}
	want := `{"default":"v1","enum":["v1","v2"],"x-nested":{"a":1,"b":2}}`
	if string(ca) != want {
		t.Fatalf("got %s, want %s", ca, want)
	}
}

func TestMarshal_ArraysKeepOrder(t *testing.T) {
	out, err := Marshal([]string{"v2", "v1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `["v2","v1"]` {
		t.Fatalf("got %s", out)
	}
}

func TestMarshal_ControlCharEscapes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"\b", `"\b"`},
		{"\t", `"\t"`},
		{"\n", `"\n"`},
		{"\f", `"\f"`},
		{"\r", `"\r"`},
		{"\x00", `"\u0000"`},
		{"\x1b", `"\u001b"`},
		{`q"b\`, `"q\"b\\"`},
		{"é", `"é"`},
	}
	for _, tt := range tests {
		out, err := Marshal(json.RawMessage(mustQuote(t, tt.in)))
		if err != nil {
			t.Fatalf("marshal %q: %v", tt.in, err)
		}
		if string(out) != tt.want {
			t.Errorf("Marshal(%q) = %s, want %s", tt.in, out, tt.want)
		}
	}
}

func mustQuote(t *testing.T, s string) []byte {
	t.Helper()
	b, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	return b
}

func TestMarshal_Numbers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`1e-6`, `0.000001`},
		{`1e-7`, `1e-7`},
		{`-0`, `0`},
		{`1.50`, `1.5`},
		{`1e21`, `1e+21`},
		{`100`, `100`},
	}
	for _, tt := range tests {
		out, err := Marshal(json.RawMessage(tt.in))
		if err != nil {
			t.Fatalf("marshal %s: %v", tt.in, err)
		}
		if string(out) != tt.want {
			t.Errorf("Marshal(%s) = %s, want %s", tt.in, out, tt.want)
		}
	}
}

func TestMarshal_RejectsTrailingData(t *testing.T) {
	if _, err := Marshal(json.RawMessage(`{} {}`)); err == nil {
		t.Fatal("expected error for trailing data")
	}
}
