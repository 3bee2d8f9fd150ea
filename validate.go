package specmodel

import (
	"fmt"
	"sort"
	"strings"
)

type validateOptions struct {
	rejectUnknownFields bool
	rejectMistypedField bool
}

// ValidateOption configures Validate.
type ValidateOption func(*validateOptions)

// WithRejectUnknownFields treats unknown (non-`x-`) keys as problems.
// Default behavior is forward-compatible (unknowns kept and emitted), so this
// is an opt-in "strict" mode.
func WithRejectUnknownFields() ValidateOption {
	return func(o *validateOptions) { o.rejectUnknownFields = true }
}

// WithRejectMistypedFields treats declared attributes whose value was kept
// verbatim, because it did not have the declared type, as problems.
func WithRejectMistypedFields() ValidateOption {
	return func(o *validateOptions) { o.rejectMistypedField = true }
}

// ValidationError is a deterministic, multi-problem validation error.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid object"
	}
	return "invalid object: " + strings.Join(e.Problems, "; ")
}

// validator collects problems for one Validate call. Serialize never runs
// it: an incomplete object still serializes, minus the missing keys.
type validator struct {
	opts     validateOptions
	problems []string
}

func newValidator(opts []ValidateOption) *validator {
	v := &validator{}
	for _, opt := range opts {
		if opt != nil {
			opt(&v.opts)
		}
	}
	return v
}

func (v *validator) addf(prefix, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = prefix + "." + msg
	}
	v.problems = append(v.problems, msg)
}

// required reports key as missing unless o is set. A verbatim value of the
// wrong type does not count as present.
func required[T any](v *validator, prefix, key string, o Optional[T]) {
	if !o.IsSet() {
		v.addf(prefix, "%s: required", key)
	}
}

// lossless checks the verbatim keys of one object against the options.
func (v *validator) lossless(prefix string, l LosslessFields, known map[string]struct{}) {
	var unknown, mistyped []string
	for k := range l.Unknown {
		if _, ok := known[k]; ok {
			mistyped = append(mistyped, k)
			continue
		}
		unknown = append(unknown, k)
	}
	if v.opts.rejectMistypedField {
		sort.Strings(mistyped)
		for _, k := range mistyped {
			val, _ := l.Extra(k)
			v.addf(prefix, "%s: unexpected value of type %T", k, val)
		}
	}
	if v.opts.rejectUnknownFields && len(unknown) > 0 {
		sort.Strings(unknown)
		if prefix == "" {
			v.problems = append(v.problems, fmt.Sprintf("unknown fields: %s", strings.Join(unknown, ", ")))
			return
		}
		v.problems = append(v.problems, fmt.Sprintf("%s: unknown fields: %s", prefix, strings.Join(unknown, ", ")))
	}
}

func (v *validator) err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Validate reports missing required attributes. It is never called
// implicitly.
func (sv *ServerVariable) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	sv.validate(v, "")
	return v.err()
}

func (sv *ServerVariable) validate(v *validator, prefix string) {
	required(v, prefix, "default", sv.Default)
	v.lossless(prefix, sv.LosslessFields, knownServerVariableSet)
}

// Validate reports missing required attributes, including those of every
// variable.
func (s *Server) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	s.validate(v, "")
	return v.err()
}

func (s *Server) validate(v *validator, prefix string) {
	required(v, prefix, "url", s.URL)
	vars, _ := s.Variables.Get()
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		p := joinPath(prefix, fmt.Sprintf("variables[%q]", k))
		if vars[k] == nil {
			v.problems = append(v.problems, p+": must not be null")
			continue
		}
		vars[k].validate(v, p)
	}
	v.lossless(prefix, s.LosslessFields, knownServerSet)
}

func (e *ExternalDocumentation) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	e.validate(v, "")
	return v.err()
}

func (e *ExternalDocumentation) validate(v *validator, prefix string) {
	required(v, prefix, "url", e.URL)
	v.lossless(prefix, e.LosslessFields, knownExternalDocsSet)
}

func (t *Tag) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	t.validate(v, "")
	return v.err()
}

func (t *Tag) validate(v *validator, prefix string) {
	required(v, prefix, "name", t.Name)
	if t.ExternalDocs != nil {
		t.ExternalDocs.validate(v, joinPath(prefix, "externalDocs"))
	}
	v.lossless(prefix, t.LosslessFields, knownTagSet)
}

// Validate only checks lossless options; Contact has no required attributes.
func (c *Contact) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	c.validate(v, "")
	return v.err()
}

func (c *Contact) validate(v *validator, prefix string) {
	v.lossless(prefix, c.LosslessFields, knownContactSet)
}

func (l *License) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	l.validate(v, "")
	return v.err()
}

func (l *License) validate(v *validator, prefix string) {
	required(v, prefix, "name", l.Name)
	v.lossless(prefix, l.LosslessFields, knownLicenseSet)
}

func (i *Info) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	i.validate(v, "")
	return v.err()
}

func (i *Info) validate(v *validator, prefix string) {
	required(v, prefix, "title", i.Title)
	if i.Contact != nil {
		i.Contact.validate(v, joinPath(prefix, "contact"))
	}
	if i.License != nil {
		i.License.validate(v, joinPath(prefix, "license"))
	}
	required(v, prefix, "version", i.Version)
	v.lossless(prefix, i.LosslessFields, knownInfoSet)
}

// Validate only checks lossless options; XML has no required attributes.
func (x *XML) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	x.validate(v, "")
	return v.err()
}

func (x *XML) validate(v *validator, prefix string) {
	v.lossless(prefix, x.LosslessFields, knownXMLSet)
}

// Validate reports missing required attributes of the document and of every
// nested object, each under its path.
func (doc *Document) Validate(opts ...ValidateOption) error {
	v := newValidator(opts)
	doc.validate(v, "")
	return v.err()
}

func (doc *Document) validate(v *validator, prefix string) {
	required(v, prefix, "openapi", doc.OpenAPI)
	if doc.Info == nil {
		v.addf(prefix, "info: required")
	} else {
		doc.Info.validate(v, joinPath(prefix, "info"))
	}
	servers, _ := doc.Servers.Get()
	for i, s := range servers {
		p := joinPath(prefix, fmt.Sprintf("servers[%d]", i))
		if s == nil {
			v.problems = append(v.problems, p+": must not be null")
			continue
		}
		s.validate(v, p)
	}
	tags, _ := doc.Tags.Get()
	for i, t := range tags {
		p := joinPath(prefix, fmt.Sprintf("tags[%d]", i))
		if t == nil {
			v.problems = append(v.problems, p+": must not be null")
			continue
		}
		t.validate(v, p)
	}
	if doc.ExternalDocs != nil {
		doc.ExternalDocs.validate(v, joinPath(prefix, "externalDocs"))
	}
	v.lossless(prefix, doc.LosslessFields, knownDocumentSet)
}
