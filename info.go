package specmodel

import (
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Contact information for the exposed API. All attributes are optional.
type Contact struct {
	Name  Optional[string]
	URL   Optional[string]
	Email Optional[string]

	LosslessFields
}

var contactCodec = objectCodec[Contact]{
	build: newContact,
	clone: (*Contact).clone,
}

// NewContact builds a Contact from an attribute bag.
func NewContact(attrs Attributes) *Contact {
	return newContact(attrs, newCloneState())
}

func newContact(attrs Attributes, st *cloneState) *Contact {
	d := newAttrDecoder(attrs, st)
	c := &Contact{
		Name:  decodeString(d, "name"),
		URL:   decodeString(d, "url"),
		Email: decodeString(d, "email"),
	}
	c.LosslessFields = d.lossless()
	return c
}

// Clone returns a deep copy of c.
func (c *Contact) Clone() *Contact {
	return c.clone(newCloneState())
}

func (c *Contact) clone(st *cloneState) *Contact {
	return cloneRef(st, c, func(dst *Contact) {
		dst.Name = c.Name
		dst.URL = c.URL
		dst.Email = c.Email
		dst.LosslessFields = c.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of c with mutate applied. c is unchanged.
func (c *Contact) CloneAndEdit(mutate func(*Contact)) *Contact {
	return CloneAndEdit(c, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (c *Contact) TryCloneAndEdit(mutate func(*Contact) error) (*Contact, error) {
	return TryCloneAndEdit(c, mutate)
}

// Serialize returns the attributes that are set, in declared order.
func (c *Contact) Serialize() *Fragment {
	return c.serialize(newCloneState())
}

func (c *Contact) serialize(st *cloneState) *Fragment {
	return serializeRef(st, c, func(f *Fragment) {
		putAttr(f, st, c.LosslessFields, "name", c.Name, renderString)
		putAttr(f, st, c.LosslessFields, "url", c.URL, renderString)
		putAttr(f, st, c.LosslessFields, "email", c.Email, renderString)
		appendLossless(f, st, c.LosslessFields, knownContactSet)
	})
}

func (c Contact) MarshalJSON() ([]byte, error) {
	return c.Serialize().MarshalJSON()
}

func (c *Contact) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("contact", b, c, newContact)
}

func (c Contact) MarshalYAML() (any, error) {
	return c.Serialize().MarshalYAML()
}

func (c *Contact) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("contact", n, c, newContact)
}

func (c *Contact) LogValue() slog.Value {
	return c.Serialize().LogValue()
}

// License information for the exposed API.
type License struct {
	// Name is REQUIRED.
	Name Optional[string]
	URL  Optional[string]

	LosslessFields
}

var licenseCodec = objectCodec[License]{
	build: newLicense,
	clone: (*License).clone,
}

// NewLicense builds a License from an attribute bag.
func NewLicense(attrs Attributes) *License {
	return newLicense(attrs, newCloneState())
}

func newLicense(attrs Attributes, st *cloneState) *License {
	d := newAttrDecoder(attrs, st)
	l := &License{
		Name: decodeString(d, "name"),
		URL:  decodeString(d, "url"),
	}
	l.LosslessFields = d.lossless()
	return l
}

// Clone returns a deep copy of l.
func (l *License) Clone() *License {
	return l.clone(newCloneState())
}

func (l *License) clone(st *cloneState) *License {
	return cloneRef(st, l, func(dst *License) {
		dst.Name = l.Name
		dst.URL = l.URL
		dst.LosslessFields = l.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of l with mutate applied. l is unchanged.
func (l *License) CloneAndEdit(mutate func(*License)) *License {
	return CloneAndEdit(l, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (l *License) TryCloneAndEdit(mutate func(*License) error) (*License, error) {
	return TryCloneAndEdit(l, mutate)
}

// Serialize returns the attributes that are set, in declared order.
func (l *License) Serialize() *Fragment {
	return l.serialize(newCloneState())
}

func (l *License) serialize(st *cloneState) *Fragment {
	return serializeRef(st, l, func(f *Fragment) {
		putAttr(f, st, l.LosslessFields, "name", l.Name, renderString)
		putAttr(f, st, l.LosslessFields, "url", l.URL, renderString)
		appendLossless(f, st, l.LosslessFields, knownLicenseSet)
	})
}

func (l License) MarshalJSON() ([]byte, error) {
	return l.Serialize().MarshalJSON()
}

func (l *License) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("license", b, l, newLicense)
}

func (l License) MarshalYAML() (any, error) {
	return l.Serialize().MarshalYAML()
}

func (l *License) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("license", n, l, newLicense)
}

func (l *License) LogValue() slog.Value {
	return l.Serialize().LogValue()
}

// Info provides metadata about the API.
//
// See https://github.com/OAI/OpenAPI-Specification/blob/master/versions/3.0.2.md#info-object
type Info struct {
	// Title is REQUIRED.
	Title          Optional[string]
	Description    Optional[string]
	TermsOfService Optional[string]

	// Contact and License are nil when absent.
	Contact *Contact
	License *License

	// Version is REQUIRED. It is the version of the API document, not of
	// the document format.
	Version Optional[string]

	LosslessFields
}

var infoCodec = objectCodec[Info]{
	build: newInfo,
	clone: (*Info).clone,
}

// NewInfo builds an Info from an attribute bag. "contact" and "license" may
// be Value Objects or nested attribute bags.
func NewInfo(attrs Attributes) *Info {
	return newInfo(attrs, newCloneState())
}

func newInfo(attrs Attributes, st *cloneState) *Info {
	d := newAttrDecoder(attrs, st)
	i := &Info{
		Title:          decodeString(d, "title"),
		Description:    decodeString(d, "description"),
		TermsOfService: decodeString(d, "termsOfService"),
		Contact:        decodeObject(d, "contact", contactCodec),
		License:        decodeObject(d, "license", licenseCodec),
		Version:        decodeString(d, "version"),
	}
	i.LosslessFields = d.lossless()
	return i
}

// Clone returns a deep copy of i.
func (i *Info) Clone() *Info {
	return i.clone(newCloneState())
}

func (i *Info) clone(st *cloneState) *Info {
	return cloneRef(st, i, func(dst *Info) {
		dst.Title = i.Title
		dst.Description = i.Description
		dst.TermsOfService = i.TermsOfService
		dst.Contact = i.Contact.clone(st)
		dst.License = i.License.clone(st)
		dst.Version = i.Version
		dst.LosslessFields = i.LosslessFields.clone(st)
	})
}

// CloneAndEdit returns a copy of i with mutate applied. i is unchanged.
func (i *Info) CloneAndEdit(mutate func(*Info)) *Info {
	return CloneAndEdit(i, mutate)
}

// TryCloneAndEdit is CloneAndEdit for a mutator that can fail.
func (i *Info) TryCloneAndEdit(mutate func(*Info) error) (*Info, error) {
	return TryCloneAndEdit(i, mutate)
}

// Serialize returns the attributes that are set; contact and license are
// serialized recursively.
func (i *Info) Serialize() *Fragment {
	return i.serialize(newCloneState())
}

func (i *Info) serialize(st *cloneState) *Fragment {
	return serializeRef(st, i, func(f *Fragment) {
		putAttr(f, st, i.LosslessFields, "title", i.Title, renderString)
		putAttr(f, st, i.LosslessFields, "description", i.Description, renderString)
		putAttr(f, st, i.LosslessFields, "termsOfService", i.TermsOfService, renderString)
		putObject(f, st, i.LosslessFields, "contact", i.Contact)
		putObject(f, st, i.LosslessFields, "license", i.License)
		putAttr(f, st, i.LosslessFields, "version", i.Version, renderString)
		appendLossless(f, st, i.LosslessFields, knownInfoSet)
	})
}

func (i Info) MarshalJSON() ([]byte, error) {
	return i.Serialize().MarshalJSON()
}

func (i *Info) UnmarshalJSON(b []byte) error {
	return unmarshalJSONInto("info", b, i, newInfo)
}

func (i Info) MarshalYAML() (any, error) {
	return i.Serialize().MarshalYAML()
}

func (i *Info) UnmarshalYAML(n *yaml.Node) error {
	return unmarshalYAMLInto("info", n, i, newInfo)
}

func (i *Info) LogValue() slog.Value {
	return i.Serialize().LogValue()
}
