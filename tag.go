package specmodel

import (
	"log/slog"

	"gopkg.in/yaml.v3"
)

// ExternalDocumentation points at external documentation for a resource.
type ExternalDocumentation struct {
	Description Optional[string]
	// URL is REQUIRED.
	URL Optional[string]

	LosslessFields
}

var externalDocsCodec = objectCodec[ExternalDocumentation]{
	build: newExternalDocumentation,
	clone: (*ExternalDocumentation).clone,
}

// NewExternalDocumentation builds an ExternalDocumentation from an attribute bag.
func NewExternalDocumentation(attrs Attributes) *ExternalDocumentation {
	return newExternalDocumentation(attrs, newCloneState())
}

func newExternalDocumentation(attrs Attributes, st *cloneState) *ExternalDocumentation {
	d := newAttrDecoder(attrs, st)
	e := &ExternalDocumentation{
		Description: decodeString(d, "description"),
		URL:         decodeString(d, "url"),
	}
	e.LosslessFields = d.lossless()
	return e
}

// Clone returns a deep copy of e.
func (e *ExternalDocumentation) Clone() *ExternalDocumentation {
	return e.clone(newCloneState())
}

func (e *ExternalDocumentation) clone(st *cloneState) *ExternalDocumentation {
	return cloneRef(st, e, func(dst *ExternalDocumentation) {
		dst.Description = e.Description
		dst.URL = e.URL
		dst.LosslessFields = e.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of e with mutate applied. e is unchanged.
func (e *ExternalDocumentation) CloneAndEdit(mutate func(*ExternalDocumentation)) *ExternalDocumentation {
	return CloneAndEdit(e, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (e *ExternalDocumentation) TryCloneAndEdit(mutate func(*ExternalDocumentation) error) (*ExternalDocumentation, error) {
	return TryCloneAndEdit(e, mutate)
}

// Serialize returns the attributes that are set, in declared order.
func (e *ExternalDocumentation) Serialize() *Fragment {
	return e.serialize(newCloneState())
}

func (e *ExternalDocumentation) serialize(st *cloneState) *Fragment {
	return serializeRef(st, e, func(f *Fragment) {
		putAttr(f, st, e.LosslessFields, "description", e.Description, renderString)
		putAttr(f, st, e.LosslessFields, "url", e.URL, renderString)
		appendLossless(f, st, e.LosslessFields, knownExternalDocsSet)
	})
}

func (e ExternalDocumentation) MarshalJSON() ([]byte, error) {
	return e.Serialize().MarshalJSON()
}

func (e *ExternalDocumentation) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("external documentation", b, e, newExternalDocumentation)
}

func (e ExternalDocumentation) MarshalYAML() (any, error) {
	return e.Serialize().MarshalYAML()
}

func (e *ExternalDocumentation) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("external documentation", n, e, newExternalDocumentation)
}

func (e *ExternalDocumentation) LogValue() slog.Value {
	return e.Serialize().LogValue()
}

// Tag adds metadata to a single tag used by operations.
type Tag struct {
	// Name is REQUIRED.
	Name        Optional[string]
	Description Optional[string]

	// ExternalDocs is nil when absent.
	ExternalDocs *ExternalDocumentation

	LosslessFields
}

var tagCodec = objectCodec[Tag]{
	build: newTag,
	clone: (*Tag).clone,
}

// NewTag builds a Tag from an attribute bag. "externalDocs" may be an
// *ExternalDocumentation or a nested attribute bag.
func NewTag(attrs Attributes) *Tag {
	return newTag(attrs, newCloneState())
}

func newTag(attrs Attributes, st *cloneState) *Tag {
	d := newAttrDecoder(attrs, st)
	t := &Tag{
		Name:         decodeString(d, "name"),
		Description:  decodeString(d, "description"),
		ExternalDocs: decodeObject(d, "externalDocs", externalDocsCodec),
	}
	t.LosslessFields = d.lossless()
	return t
}

// Clone returns a deep copy of t.
func (t *Tag) Clone() *Tag {
	return t.clone(newCloneState())
}

func (t *Tag) clone(st *cloneState) *Tag {
	return cloneRef(st, t, func(dst *Tag) {
		dst.Name = t.Name
		dst.Description = t.Description
		dst.ExternalDocs = t.ExternalDocs.clone(st)
		dst.LosslessFields = t.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of t with mutate applied. t is unchanged.
func (t *Tag) CloneAndEdit(mutate func(*Tag)) *Tag {
	return CloneAndEdit(t, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (t *Tag) TryCloneAndEdit(mutate func(*Tag) error) (*Tag, error) {
	return TryCloneAndEdit(t, mutate)
}

// Serialize returns the attributes that are set, in declared order.
func (t *Tag) Serialize() *Fragment {
	return t.serialize(newCloneState())
}

func (t *Tag) serialize(st *cloneState) *Fragment {
	return serializeRef(st, t, func(f *Fragment) {
		putAttr(f, st, t.LosslessFields, "name", t.Name, renderString)
		putAttr(f, st, t.LosslessFields, "description", t.Description, renderString)
		putObject(f, st, t.LosslessFields, "externalDocs", t.ExternalDocs)
		appendLossless(f, st, t.LosslessFields, knownTagSet)
	})
}

func (t Tag) MarshalJSON() ([]byte, error) {
	return t.Serialize().MarshalJSON()
}

func (t *Tag) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("tag", b, t, newTag)
}

func (t Tag) MarshalYAML() (any, error) {
	return t.Serialize().MarshalYAML()
}

func (t *Tag) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("tag", n, t, newTag)
}

func (t *Tag) LogValue() slog.Value {
	return t.Serialize().LogValue()
}
