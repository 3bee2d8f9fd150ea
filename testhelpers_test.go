package specmodel

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func mustMarshalJSON(t *testing.T, v any) []byte {
	t.Helper()
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return out
}

func mustUnmarshalToMap(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	return m
}

// mustRoundTripToMap decodes in into v, re-encodes it and returns the result
// as a plain map.
func mustRoundTripToMap[T any](t *testing.T, in []byte, v *T) map[string]any {
	t.Helper()
	if err := json.Unmarshal(in, v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return mustUnmarshalToMap(t, mustMarshalJSON(t, v))
}

func assertPreservedExtensionAndUnknown(t *testing.T, outMap map[string]any) {
	t.Helper()
	if outMap["x-extensionField"] != "extensionFieldValue" {
		t.Fatalf("expected x-extensionField preserved, got %#v", outMap["x-extensionField"])
	}
	unknownField, ok := outMap["unknownField"].(map[string]any)
	if !ok {
		t.Fatalf("expected unknownField preserved as object, got %#v", outMap["unknownField"])
	}
	if unknownField["value"] != "unknownFieldValue" {
		t.Fatalf("expected unknownField.value preserved, got %#v", unknownField["value"])
	}
}

func assertKeys(t *testing.T, f *Fragment, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	got := f.Keys()
	if got == nil {
		got = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}
