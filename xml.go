package specmodel

import (
	"log/slog"

	"gopkg.in/yaml.v3"
)

// XML adjusts how a schema property is rendered as XML. All attributes are
// optional. An explicit false for Attribute or Wrapped is kept and emitted.
//
// See https://github.com/OAI/OpenAPI-Specification/blob/master/versions/3.0.2.md#xml-object
type XML struct {
	Name      Optional[string]
	Namespace Optional[string]
	Prefix    Optional[string]

	// Attribute renders the property as an attribute instead of an element.
	Attribute Optional[bool]
	// Wrapped wraps array items in an enclosing element.
	Wrapped Optional[bool]

	LosslessFields
}

// NewXML builds an XML object from an attribute bag.
func NewXML(attrs Attributes) *XML {
	return newXML(attrs, newCloneState())
}

func newXML(attrs Attributes, st *cloneState) *XML {
	d := newAttrDecoder(attrs, st)
	x := &XML{
		Name:      decodeString(d, "name"),
		Namespace: decodeString(d, "namespace"),
		Prefix:    decodeString(d, "prefix"),
		Attribute: decodeBool(d, "attribute"),
		Wrapped:   decodeBool(d, "wrapped"),
	}
	x.LosslessFields = d.lossless()
	return x
}

// Clone returns a deep copy of x.
func (x *XML) Clone() *XML {
	return x.clone(newCloneState())
}

func (x *XML) clone(st *cloneState) *XML {
	return cloneRef(st, x, func(dst *XML) {
		dst.Name = x.Name
		dst.Namespace = x.Namespace
		dst.Prefix = x.Prefix
		dst.Attribute = x.Attribute
		dst.Wrapped = x.Wrapped
		dst.LosslessFields = x.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of x with mutate applied. x is unchanged.
func (x *XML) CloneAndEdit(mutate func(*XML)) *XML {
	return CloneAndEdit(x, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (x *XML) TryCloneAndEdit(mutate func(*XML) error) (*XML, error) {
	return TryCloneAndEdit(x, mutate)
}

// Serialize returns the attributes that are set, in declared order.
func (x *XML) Serialize() *Fragment {
	return x.serialize(newCloneState())
}

func (x *XML) serialize(st *cloneState) *Fragment {
	return serializeRef(st, x, func(f *Fragment) {
		putAttr(f, st, x.LosslessFields, "name", x.Name, renderString)
		putAttr(f, st, x.LosslessFields, "namespace", x.Namespace, renderString)
		putAttr(f, st, x.LosslessFields, "prefix", x.Prefix, renderString)
		putAttr(f, st, x.LosslessFields, "attribute", x.Attribute, renderBool)
		putAttr(f, st, x.LosslessFields, "wrapped", x.Wrapped, renderBool)
		appendLossless(f, st, x.LosslessFields, knownXMLSet)
	})
}

func (x XML) MarshalJSON() ([]byte, error) {
	return x.Serialize().MarshalJSON()
}

func (x *XML) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("xml", b, x, newXML)
}

func (x XML) MarshalYAML() (any, error) {
	return x.Serialize().MarshalYAML()
}

func (x *XML) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("xml", n, x, newXML)
}

func (x *XML) LogValue() slog.Value {
	return x.Serialize().LogValue()
}
