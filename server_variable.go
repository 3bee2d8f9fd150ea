package specmodel

import (
	"log/slog"

	"gopkg.in/yaml.v3"
)

// ServerVariable represents a Server Variable for server URL template
// substitution.
//
// See https://github.com/OAI/OpenAPI-Specification/blob/master/versions/3.0.2.md#server-variable-object
type ServerVariable struct {
	// Default is REQUIRED. The value used for substitution when no alternate
	// value is supplied.
	Default Optional[string]

	// Description of the variable. CommonMark syntax MAY be used.
	Description Optional[string]

	// Enum restricts substitution to a limited set of values.
	Enum Optional[[]string]

	LosslessFields
}

var serverVariableCodec = objectCodec[ServerVariable]{
	build: newServerVariable,
	clone: (*ServerVariable).clone,
}

// NewServerVariable builds a ServerVariable from an attribute bag. Required
// attributes are not checked; see Validate.
func NewServerVariable(attrs Attributes) *ServerVariable {
	return newServerVariable(attrs, newCloneState())
}

func newServerVariable(attrs Attributes, st *cloneState) *ServerVariable {
	d := newAttrDecoder(attrs, st)
	sv := &ServerVariable{
		Default:     decodeString(d, "default"),
		Description: decodeString(d, "description"),
		Enum:        decodeStrings(d, "enum"),
	}
	sv.LosslessFields = d.lossless()
	return sv
}

// Clone returns a deep copy of sv.
func (sv *ServerVariable) Clone() *ServerVariable {
	return sv.clone(newCloneState())
}

func (sv *ServerVariable) clone(st *cloneState) *ServerVariable {
	return cloneRef(st, sv, func(dst *ServerVariable) {
		dst.Default = sv.Default
		dst.Description = sv.Description
		dst.Enum = cloneOptionalStrings(sv.Enum)
		dst.LosslessFields = sv.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of sv with mutate applied. sv is unchanged.
func (sv *ServerVariable) CloneAndEdit(mutate func(*ServerVariable)) *ServerVariable {
	return CloneAndEdit(sv, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (sv *ServerVariable) TryCloneAndEdit(mutate func(*ServerVariable) error) (*ServerVariable, error) {
	return TryCloneAndEdit(sv, mutate)
}

// Serialize returns the attributes that are set, in declared order.
func (sv *ServerVariable) Serialize() *Fragment {
	return sv.serialize(newCloneState())
}

func (sv *ServerVariable) serialize(st *cloneState) *Fragment {
	return serializeRef(st, sv, func(f *Fragment) {
		putAttr(f, st, sv.LosslessFields, "default", sv.Default, renderString)
		putAttr(f, st, sv.LosslessFields, "description", sv.Description, renderString)
		putAttr(f, st, sv.LosslessFields, "enum", sv.Enum, renderStrings)
		appendLossless(f, st, sv.LosslessFields, knownServerVariableSet)
	})
}

func (sv ServerVariable) MarshalJSON() ([]byte, error) {
	return sv.Serialize().MarshalJSON()
}

func (sv *ServerVariable) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("server variable", b, sv, newServerVariable)
}

func (sv ServerVariable) MarshalYAML() (any, error) {
	return sv.Serialize().MarshalYAML()
}

func (sv *ServerVariable) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("server variable", n, sv, newServerVariable)
}

func (sv *ServerVariable) LogValue() slog.Value {
	return sv.Serialize().LogValue()
}
