package specmodel

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func newTestServer() *Server {
	return NewServer(Attributes{
		"url": "https://{env}.example.com/{basePath}",
		"variables": map[string]any{
			"env": map[string]any{
				"default": "prod",
				"enum":    []any{"prod", "staging"},
			},
			"basePath": NewServerVariable(Attributes{"default": "v2"}),
		},
	})
}

func TestServer_Serialize_NestedVariablesSortedByName(t *testing.T) {
	s := newTestServer()
	out := mustMarshalJSON(t, s)

	want := `{"url":"https://{env}.example.com/{basePath}","variables":{"basePath":{"default":"v2"},"env":{"default":"prod","enum":["prod","staging"]}}}`
	if string(out) != want {
		t.Fatalf("got  %s\nwant %s", out, want)
	}
}

func TestServer_Serialize_NestedFragments(t *testing.T) {
	f := newTestServer().Serialize()
	vars, ok := f.Get("variables")
	if !ok {
		t.Fatal("expected variables")
	}
	vf, ok := vars.(*Fragment)
	if !ok {
		t.Fatalf("expected nested *Fragment, got %T", vars)
	}
	assertKeys(t, vf, "basePath", "env")
	env, _ := vf.Get("env")
	assertKeys(t, env.(*Fragment), "default", "enum")
}

func TestServer_CloneAndEdit_NestedVariableIndependent(t *testing.T) {
	s := newTestServer()
	before := s.Clone()

	edited := s.CloneAndEdit(func(c *Server) {
		c.Variable("env").Description.Set("deployment environment")
		enum, _ := c.Variable("env").Enum.Get()
		enum[0] = "dev"
	})

	if diff := cmp.Diff(before, s); diff != "" {
		t.Fatalf("original changed (-before +after):\n%s", diff)
	}
	if s.Variable("env").Description.IsSet() {
		t.Fatal("nested variable of original was edited")
	}
	if d, _ := edited.Variable("env").Description.Get(); d != "deployment environment" {
		t.Fatalf("edit missing on copy, got %q", d)
	}
	if s.Variable("env") == edited.Variable("env") {
		t.Fatal("nested variable shared between original and copy")
	}
}

func TestServer_CloneAndEdit_SetVariableOnCopyOnly(t *testing.T) {
	s := NewServer(Attributes{"url": "https://example.com"})

	edited := s.CloneAndEdit(func(c *Server) {
		c.SetVariable("port", NewServerVariable(Attributes{"default": "443"}))
	})

	assertKeys(t, s.Serialize(), "url")
	assertKeys(t, edited.Serialize(), "url", "variables")
}

func TestServer_Serialize_ExplicitEmptyVariables(t *testing.T) {
	s := NewServer(Attributes{"url": "/", "variables": map[string]any{}})
	out := mustMarshalJSON(t, s)
	if string(out) != `{"url":"/","variables":{}}` {
		t.Fatalf("got %s", out)
	}
}

func TestServer_Clone_PreservesRepeatedReferences(t *testing.T) {
	shared := NewServerVariable(Attributes{"default": "x"})
	s := &Server{
		URL:       Some("/{a}/{b}"),
		Variables: Some(map[string]*ServerVariable{"a": shared, "b": shared}),
	}

	c := s.Clone()
	if c.Variable("a") != c.Variable("b") {
		t.Fatal("repeated reference split into two copies")
	}
	if c.Variable("a") == shared {
		t.Fatal("copy aliases the original variable")
	}
}

func TestServer_Clone_CyclicExtension(t *testing.T) {
	cyc := map[string]any{"name": "loop"}
	cyc["self"] = cyc
	s := &Server{URL: Some("/")}
	s.SetExtension("x-cycle", cyc)

	c := s.Clone()
	got := c.Extensions["x-cycle"].(map[string]any)
	self := got["self"].(map[string]any)
	got["name"] = "changed"
	if self["name"] != "changed" {
		t.Fatal("cycle not closed on the copy")
	}
	if cyc["name"] != "loop" {
		t.Fatal("copy aliases the original map")
	}
}

func TestServerVariable_Serialize_SelfReferenceClosesOnFragment(t *testing.T) {
	sv := NewServerVariable(Attributes{"default": "v1"})
	sv.SetExtension("x-self", sv)

	f := sv.Serialize()
	self, ok := f.Get("x-self")
	if !ok {
		t.Fatal("expected x-self")
	}
	if self.(*Fragment) != f {
		t.Fatalf("expected the cycle to close on the output, got %#v", self)
	}

	m := f.ToMap()
	inner, ok := m["x-self"].(map[string]any)
	if !ok || inner["default"] != "v1" {
		t.Fatalf("expected x-self as a mapping, got %#v", m["x-self"])
	}

	if _, err := f.MarshalJSON(); !errors.Is(err, ErrCyclicFragment) {
		t.Fatalf("expected ErrCyclicFragment, got %v", err)
	}
	if _, err := json.Marshal(sv); err == nil {
		t.Fatal("expected an encoding error for a cyclic value")
	}
}

func TestServer_Serialize_MutualReferenceThroughExtras(t *testing.T) {
	a := NewServer(Attributes{"url": "/a"})
	b := NewServer(Attributes{"url": "/b"})
	a.SetExtension("x-peer", b)
	b.SetExtension("x-peer", a)

	f := a.Serialize()
	peer, _ := f.Get("x-peer")
	back, _ := peer.(*Fragment).Get("x-peer")
	if back.(*Fragment) != f {
		t.Fatal("expected the peer's back reference to reach the outer fragment")
	}
}

func TestServer_Serialize_ValueObjectsInsideExtraContainers(t *testing.T) {
	sv := NewServerVariable(Attributes{"default": "v1"})
	s := NewServer(Attributes{
		"url":     "/",
		"x-list":  []any{sv, "plain"},
		"x-map":   map[string]any{"k": sv},
		"x-typed": []*ServerVariable{sv},
	})

	f := s.Serialize()
	list, _ := f.Get("x-list")
	if _, ok := list.([]any)[0].(*Fragment); !ok {
		t.Fatalf("expected list element serialized, got %T", list.([]any)[0])
	}
	typed, _ := f.Get("x-typed")
	if _, ok := typed.([]any)[0].(*Fragment); !ok {
		t.Fatalf("expected typed list element serialized, got %#v", typed)
	}

	want := map[string]any{
		"url":     "/",
		"x-list":  []any{map[string]any{"default": "v1"}, "plain"},
		"x-map":   map[string]any{"k": map[string]any{"default": "v1"}},
		"x-typed": []any{map[string]any{"default": "v1"}},
	}
	if diff := cmp.Diff(want, f.ToMap()); diff != "" {
		t.Fatalf("ToMap mismatch (-want +got):\n%s", diff)
	}

	out := mustMarshalJSON(t, s)
	if string(out) != `{"url":"/","x-list":[{"default":"v1"},"plain"],"x-map":{"k":{"default":"v1"}},"x-typed":[{"default":"v1"}]}` {
		t.Fatalf("got %s", out)
	}
}

func TestNewServer_CopiesTypedExtraContainers(t *testing.T) {
	sv := NewServerVariable(Attributes{"default": "v1"})
	list := []*ServerVariable{sv}
	s := NewServer(Attributes{"url": "/", "x-typed": list})

	got := s.Extensions["x-typed"].([]*ServerVariable)
	if got[0] == sv {
		t.Fatal("typed extra aliases construction input")
	}
	list[0] = nil
	if got[0] == nil {
		t.Fatal("typed extra shares the input slice")
	}
}

func TestServer_Serialize_SharedVariableEmittedOnce(t *testing.T) {
	shared := NewServerVariable(Attributes{"default": "x"})
	s := &Server{
		URL:       Some("/{a}/{b}"),
		Variables: Some(map[string]*ServerVariable{"a": shared, "b": shared}),
	}

	out := mustMarshalJSON(t, s)
	if string(out) != `{"url":"/{a}/{b}","variables":{"a":{"default":"x"},"b":{"default":"x"}}}` {
		t.Fatalf("got %s", out)
	}
}

func TestServer_MistypedVariablesKeptVerbatim(t *testing.T) {
	s := NewServer(Attributes{"url": "/", "variables": map[string]any{"env": "prod"}})
	if s.Variables.IsSet() {
		t.Fatal("mistyped variables must not populate the typed field")
	}
	out := mustMarshalJSON(t, s)
	if string(out) != `{"url":"/","variables":{"env":"prod"}}` {
		t.Fatalf("got %s", out)
	}
}

func TestServer_ConstructFromSerializedFragment(t *testing.T) {
	orig := newTestServer()
	rebuilt := NewServer(Attributes(orig.Serialize().ToMap()))
	if !rebuilt.Serialize().Equal(orig.Serialize()) {
		t.Fatalf("rebuild mismatch:\n%s\n%s", mustMarshalJSON(t, rebuilt), mustMarshalJSON(t, orig))
	}
}

func TestServer_LosslessRoundTrip_PreservesExtensionsAndUnknown(t *testing.T) {
	in := []byte(`{
  "url": "https://example.com",
  "variables": {"v": {"default": "1", "x-inner": [1, 2]}},
  "x-extensionField": "extensionFieldValue",
  "unknownField": {"value": "unknownFieldValue"}
}`)

	var s Server
	outMap := mustRoundTripToMap(t, in, &s)
	assertPreservedExtensionAndUnknown(t, outMap)

	v := s.Variable("v")
	if v == nil {
		t.Fatal("expected variable v decoded as a Value Object")
	}
	if _, ok := v.Extensions["x-inner"]; !ok {
		t.Fatalf("expected nested extension kept, got %#v", v.Extensions)
	}
}

func TestServer_UnmarshalJSON_Null(t *testing.T) {
	s := *NewServer(Attributes{"url": "/keep"})
	if err := json.Unmarshal([]byte(`null`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if u, _ := s.URL.Get(); u != "/keep" {
		t.Fatalf("null must leave the value untouched, got %q", u)
	}
}
