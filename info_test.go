package specmodel

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestInfo_Serialize_DeclaredOrderWithNestedObjects(t *testing.T) {
	info := NewInfo(Attributes{
		"version": "1.0.0",
		"license": map[string]any{"name": "MIT"},
		"title":   "Pets",
		"contact": NewContact(Attributes{"email": "api@example.com"}),
	})

	f := info.Serialize()
	assertKeys(t, f, "title", "contact", "license", "version")

	out := mustMarshalJSON(t, info)
	want := `{"title":"Pets","contact":{"email":"api@example.com"},"license":{"name":"MIT"},"version":"1.0.0"}`
	if string(out) != want {
		t.Fatalf("got  %s\nwant %s", out, want)
	}
}

func TestInfo_CloneAndEdit_NestedContactIndependent(t *testing.T) {
	info := NewInfo(Attributes{
		"title":   "Pets",
		"version": "1.0.0",
		"contact": map[string]any{"name": "Team"},
	})
	before := info.Clone()

	edited := info.CloneAndEdit(func(c *Info) {
		c.Contact.Name.Set("Other team")
		c.License = NewLicense(Attributes{"name": "Apache-2.0"})
	})

	if diff := cmp.Diff(before, info); diff != "" {
		t.Fatalf("original changed (-before +after):\n%s", diff)
	}
	if n, _ := edited.Contact.Name.Get(); n != "Other team" {
		t.Fatalf("expected edit on copy, got %q", n)
	}
	if info.License != nil {
		t.Fatal("license leaked into original")
	}
}

func TestInfo_Serialize_ExplicitEmptyContact(t *testing.T) {
	info := NewInfo(Attributes{"title": "", "contact": map[string]any{}})
	out := mustMarshalJSON(t, info)
	if string(out) != `{"title":"","contact":{}}` {
		t.Fatalf("got %s", out)
	}
}

func TestInfo_YAMLRoundTrip(t *testing.T) {
	in := []byte(`title: Pets
x-logo:
  url: https://example.com/logo.png
version: 2.1.0
license:
  name: MIT
  url: https://opensource.org/licenses/MIT
`)

	var info Info
	if err := yaml.Unmarshal(in, &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.License == nil {
		t.Fatal("expected license decoded")
	}
	if v, _ := info.Version.Get(); v != "2.1.0" {
		t.Fatalf("expected version 2.1.0, got %q", v)
	}

	out, err := yaml.Marshal(info)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `title: Pets
license:
    name: MIT
    url: https://opensource.org/licenses/MIT
version: 2.1.0
x-logo:
    url: https://example.com/logo.png
`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
}

func TestInfo_UnmarshalYAML_RejectsSequence(t *testing.T) {
	var info Info
	if err := yaml.Unmarshal([]byte("- a\n- b\n"), &info); err == nil {
		t.Fatal("expected error")
	}
}

func TestInfo_JSONUnmarshal_NestedObjects(t *testing.T) {
	var info Info
	err := json.Unmarshal([]byte(`{"title":"T","version":"1","contact":{"url":"https://example.com","x-slack":"#api"}}`), &info)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Contact == nil {
		t.Fatal("expected contact")
	}
	if u, _ := info.Contact.URL.Get(); u != "https://example.com" {
		t.Fatalf("unexpected contact url %q", u)
	}
	if info.Contact.Extensions["x-slack"] != "#api" {
		t.Fatalf("expected contact extension, got %#v", info.Contact.Extensions)
	}
}

func TestTag_Serialize_ExternalDocs(t *testing.T) {
	tag := NewTag(Attributes{
		"externalDocs": map[string]any{"url": "https://docs.example.com"},
		"name":         "pets",
	})
	out := mustMarshalJSON(t, tag)
	if string(out) != `{"name":"pets","externalDocs":{"url":"https://docs.example.com"}}` {
		t.Fatalf("got %s", out)
	}

	edited := tag.CloneAndEdit(func(c *Tag) {
		c.ExternalDocs.Description.Set("More")
	})
	if tag.ExternalDocs.Description.IsSet() {
		t.Fatal("nested external docs of original edited")
	}
	assertKeys(t, edited.ExternalDocs.Serialize(), "description", "url")
}

func TestTag_NullExternalDocsKeptVerbatim(t *testing.T) {
	var tag Tag
	if err := json.Unmarshal([]byte(`{"name":"pets","externalDocs":null}`), &tag); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tag.ExternalDocs != nil {
		t.Fatal("null must not become an object")
	}
	out := mustMarshalJSON(t, tag)
	if string(out) != `{"name":"pets","externalDocs":null}` {
		t.Fatalf("got %s", out)
	}
}
