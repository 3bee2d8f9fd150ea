package specmodel

import (
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Server represents a Server, a target host plus the variables substituted
// into its URL template.
type Server struct {
	// URL is REQUIRED. It may be relative and may contain {variable}
	// placeholders.
	URL Optional[string]

	Description Optional[string]

	// Variables maps placeholder names to their substitution rules.
	Variables Optional[map[string]*ServerVariable]

	LosslessFields
}

var serverCodec = objectCodec[Server]{
	build: newServer,
	clone: (*Server).clone,
}

// NewServer builds a Server from an attribute bag. "variables" may hold
// *ServerVariable values or nested attribute bags.
func NewServer(attrs Attributes) *Server {
	return newServer(attrs, newCloneState())
}

func newServer(attrs Attributes, st *cloneState) *Server {
	d := newAttrDecoder(attrs, st)
	s := &Server{
		URL:         decodeString(d, "url"),
		Description: decodeString(d, "description"),
		Variables:   decodeObjectMap(d, "variables", serverVariableCodec),
	}
	s.LosslessFields = d.lossless()
	return s
}

// Variable returns the named variable, or nil.
func (s *Server) Variable(name string) *ServerVariable {
	vars, _ := s.Variables.Get()
	return vars[name]
}

// SetVariable stores v under name, creating the variables map if needed.
// Call it on a copy handed out by CloneAndEdit.
func (s *Server) SetVariable(name string, v *ServerVariable) {
	vars, ok := s.Variables.Get()
	if !ok || vars == nil {
		vars = map[string]*ServerVariable{}
	}
	vars[name] = v
	s.Variables.Set(vars)
}

// Clone returns a deep copy of s.
func (s *Server) Clone() *Server {
	return s.clone(newCloneState())
}

func (s *Server) clone(st *cloneState) *Server {
	return cloneRef(st, s, func(dst *Server) {
		dst.URL = s.URL
		dst.Description = s.Description
		if vars, ok := s.Variables.Get(); ok {
			dst.Variables = Some(cloneObjectMap(st, vars, (*ServerVariable).clone))
		}
		dst.LosslessFields = s.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of s with mutate applied. s is unchanged.
func (s *Server) CloneAndEdit(mutate func(*Server)) *Server {
	return CloneAndEdit(s, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (s *Server) TryCloneAndEdit(mutate func(*Server) error) (*Server, error) {
	return TryCloneAndEdit(s, mutate)
}

// Serialize returns the attributes that are set. Each variable is
// serialized in turn, variables sorted by name.
func (s *Server) Serialize() *Fragment {
	return s.serialize(newCloneState())
}

func (s *Server) serialize(st *cloneState) *Fragment {
	return serializeRef(st, s, func(f *Fragment) {
		putAttr(f, st, s.LosslessFields, "url", s.URL, renderString)
		putAttr(f, st, s.LosslessFields, "description", s.Description, renderString)
		putAttr(f, st, s.LosslessFields, "variables", s.Variables, func(m map[string]*ServerVariable) any {
			return renderObjectMap(st, m)
		})
		appendLossless(f, st, s.LosslessFields, knownServerSet)
	})
}

func (s Server) MarshalJSON() ([]byte, error) {
	return s.Serialize().MarshalJSON()
}

func (s *Server) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("server", b, s, newServer)
}

func (s Server) MarshalYAML() (any, error) {
	return s.Serialize().MarshalYAML()
}

func (s *Server) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("server", n, s, newServer)
}

func (s *Server) LogValue() slog.Value {
	return s.Serialize().LogValue()
}
