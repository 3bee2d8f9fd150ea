// Package specmodel provides an object model for building OpenAPI-style
// specification documents in Go.
//
// Every Value Object (ServerVariable, Server, Info, Tag, Document, ...) offers two
// capabilities:
//   - Safe-Edit: CloneAndEdit deep-copies the receiver, applies a mutator to
//     the copy and returns it. The receiver and any other copy are never
//     affected.
//   - Sparse serialization: Serialize returns a Fragment holding exactly the
//     attributes that were assigned, in the type's declared order.
//
// # Quick Start
//
//	sv := specmodel.NewServerVariable(specmodel.Attributes{
//	    "default": "v1",
//	    "enum":    []string{"v1", "v2"},
//	})
//
//	v2 := sv.CloneAndEdit(func(c *specmodel.ServerVariable) {
//	    c.Description.Set("API version")
//	})
//
//	out, _ := json.Marshal(v2)
//	// {"default":"v1","description":"API version","enum":["v1","v2"]}
//
// # Presence
//
// Attributes are Optional values. An Optional that was never assigned is
// absent and produces no key. An Optional assigned "", 0 or an empty slice
// is present and is emitted as such. Nested Value Objects are pointers; nil
// is absent.
//
// # Lossless Construction
//
// Constructors accept any attribute bag. Keys the type does not model are
// kept verbatim:
//   - LosslessFields.Extensions for keys beginning with x-
//   - LosslessFields.Unknown for other keys, and for declared keys whose
//     value had the wrong shape (for example "default": 5 or null)
//
// Serialize emits verbatim values too: a mistyped declared key keeps its
// declared position, remaining keys follow sorted by name.
//
// # Required Attributes
//
// Neither construction nor Serialize checks required attributes; an
// incomplete object serializes without the missing keys. Call Validate for
// an explicit check.
//
// # Concurrency
//
// Distinct instances never share storage, so they may be used from different
// goroutines freely. Concurrent writes to the same instance require external
// synchronization; prefer CloneAndEdit over direct field writes on values
// that other code holds.
//
// # Subpackages
//
//   - canonicaljson: RFC 8785 (JCS) deterministic JSON serialization
package specmodel
