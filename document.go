package specmodel

import (
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Document is the root of an API description. Paths, components and
// security requirements are not modeled; they are kept verbatim like any
// other unknown key.
//
// See https://github.com/OAI/OpenAPI-Specification/blob/master/versions/3.0.2.md#openapi-object
type Document struct {
	// OpenAPI is REQUIRED. The version of the document format, e.g. "3.0.2".
	OpenAPI Optional[string]

	// Info is REQUIRED. Nil when absent.
	Info *Info

	// Servers are listed in the order given. A nil element is emitted as null.
	Servers Optional[[]*Server]

	Tags Optional[[]*Tag]

	// ExternalDocs is nil when absent.
	ExternalDocs *ExternalDocumentation

	LosslessFields
}

// NewDocument builds a Document from an attribute bag. "servers" and "tags"
// may be lists of Value Objects or of nested attribute bags.
func NewDocument(attrs Attributes) *Document {
	return newDocument(attrs, newCloneState())
}

func newDocument(attrs Attributes, st *cloneState) *Document {
	d := newAttrDecoder(attrs, st)
	doc := &Document{
		OpenAPI:      decodeString(d, "openapi"),
		Info:         decodeObject(d, "info", infoCodec),
		Servers:      decodeObjectList(d, "servers", serverCodec),
		Tags:         decodeObjectList(d, "tags", tagCodec),
		ExternalDocs: decodeObject(d, "externalDocs", externalDocsCodec),
	}
	doc.LosslessFields = d.lossless()
	return doc
}

// AddServer appends s to the server list, creating it if needed.
// Call it on a copy handed out by CloneAndEdit.
func (doc *Document) AddServer(s *Server) {
	servers, _ := doc.Servers.Get()
	doc.Servers.Set(append(servers, s))
}

// Tag returns the first tag with the given name, or nil.
func (doc *Document) Tag(name string) *Tag {
	tags, _ := doc.Tags.Get()
	for _, t := range tags {
		if t == nil {
			continue
		}
		if n, ok := t.Name.Get(); ok && n == name {
			return t
		}
	}
	return nil
}

// Clone returns a deep copy of doc.
func (doc *Document) Clone() *Document {
	return doc.clone(newCloneState())
}

func (doc *Document) clone(st *cloneState) *Document {
	return cloneRef(st, doc, func(dst *Document) {
		dst.OpenAPI = doc.OpenAPI
		dst.Info = doc.Info.clone(st)
		dst.Servers = cloneOptionalObjects(st, doc.Servers, (*Server).clone)
		dst.Tags = cloneOptionalObjects(st, doc.Tags, (*Tag).clone)
		dst.ExternalDocs = doc.ExternalDocs.clone(st)
		dst.LosslessFields = doc.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of doc with mutate applied. doc is unchanged.
func (doc *Document) CloneAndEdit(mutate func(*Document)) *Document {
	return CloneAndEdit(doc, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (doc *Document) TryCloneAndEdit(mutate func(*Document) error) (*Document, error) {
	return TryCloneAndEdit(doc, mutate)
}

// Serialize returns the attributes that are set, in declared order. Servers
// and tags are serialized element by element and keep their list order.
func (doc *Document) Serialize() *Fragment {
	return doc.serialize(newCloneState())
}

func (doc *Document) serialize(st *cloneState) *Fragment {
	return serializeRef(st, doc, func(f *Fragment) {
		putAttr(f, st, doc.LosslessFields, "openapi", doc.OpenAPI, renderString)
		putObject(f, st, doc.LosslessFields, "info", doc.Info)
		putAttr(f, st, doc.LosslessFields, "servers", doc.Servers, func(list []*Server) any {
			return renderObjectList(st, list)
		})
		putAttr(f, st, doc.LosslessFields, "tags", doc.Tags, func(list []*Tag) any {
			return renderObjectList(st, list)
		})
		putObject(f, st, doc.LosslessFields, "externalDocs", doc.ExternalDocs)
		appendLossless(f, st, doc.LosslessFields, knownDocumentSet)
	})
}

func (doc Document) MarshalJSON() ([]byte, error) {
	return doc.Serialize().MarshalJSON()
}

func (doc *Document) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("document", b, doc, newDocument)
}

func (doc Document) MarshalYAML() (any, error) {
	return doc.Serialize().MarshalYAML()
}

func (doc *Document) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("document", n, doc, newDocument)
}

func (doc *Document) LogValue() slog.Value {
	return doc.Serialize().LogValue()
}
