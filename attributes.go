package specmodel

import "slices"

// Attributes is the construction input of every Value Object: attribute name
// (in the document's own field naming) to value. Any subset of the declared
// attributes may be supplied; extra keys are kept verbatim.
type Attributes map[string]any

// attrDecoder moves values out of an attribute bag into typed fields. Keys
// whose value has the expected shape are consumed; everything left over ends
// up in LosslessFields.
type attrDecoder struct {
	st   *cloneState
	rest map[string]any
}

func newAttrDecoder(attrs Attributes, st *cloneState) *attrDecoder {
	rest := make(map[string]any, len(attrs))
	for k, v := range attrs {
		rest[k] = v
	}
	return &attrDecoder{st: st, rest: rest}
}

// lossless returns deep copies of the unconsumed entries.
func (d *attrDecoder) lossless() LosslessFields {
	ext, unk := splitLossless(d.rest)
	return LosslessFields{
		Extensions: cloneExtras(d.st, ext),
		Unknown:    cloneExtras(d.st, unk),
	}
}

func decodeString(d *attrDecoder, key string) Optional[string] {
	v, ok := d.rest[key]
	if !ok {
		return None[string]()
	}
	switch x := v.(type) {
	case string:
		delete(d.rest, key)
		return Some(x)
	case Optional[string]:
		delete(d.rest, key)
		return x
	}
	return None[string]()
}

func decodeStrings(d *attrDecoder, key string) Optional[[]string] {
	v, ok := d.rest[key]
	if !ok {
		return None[[]string]()
	}
	switch x := v.(type) {
	case []string:
		delete(d.rest, key)
		return Some(slices.Clone(x))
	case Optional[[]string]:
		delete(d.rest, key)
		return cloneOptionalStrings(x)
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return None[[]string]()
			}
			out = append(out, s)
		}
		delete(d.rest, key)
		return Some(out)
	}
	return None[[]string]()
}

func decodeBool(d *attrDecoder, key string) Optional[bool] {
	v, ok := d.rest[key]
	if !ok {
		return None[bool]()
	}
	switch x := v.(type) {
	case bool:
		delete(d.rest, key)
		return Some(x)
	case Optional[bool]:
		delete(d.rest, key)
		return x
	}
	return None[bool]()
}

// objectCodec ties a Value Object type to its bag constructor and its clone.
type objectCodec[T any] struct {
	build func(Attributes, *cloneState) *T
	clone func(*T, *cloneState) *T
}

// as converts v into a *T if it has one of the accepted shapes: the Value
// Object itself (copied), a nested attribute bag or a serialized Fragment
// (both constructed).
func (c objectCodec[T]) as(st *cloneState, v any) (*T, bool) {
	switch x := v.(type) {
	case *T:
		if x == nil {
			return nil, false
		}
		return c.clone(x, st), true
	case T:
		return c.clone(&x, st), true
	case Attributes:
		return c.build(x, st), true
	case map[string]any:
		return c.build(Attributes(x), st), true
	case *Fragment:
		if x == nil {
			return nil, false
		}
		return c.build(Attributes(x.ToMap()), st), true
	}
	return nil, false
}

func decodeObject[T any](d *attrDecoder, key string, c objectCodec[T]) *T {
	v, ok := d.rest[key]
	if !ok {
		return nil
	}
	obj, ok := c.as(d.st, v)
	if !ok {
		return nil
	}
	delete(d.rest, key)
	return obj
}

func decodeObjectMap[T any](d *attrDecoder, key string, c objectCodec[T]) Optional[map[string]*T] {
	v, ok := d.rest[key]
	if !ok {
		return None[map[string]*T]()
	}
	var out map[string]*T
	switch x := v.(type) {
	case Optional[map[string]*T]:
		delete(d.rest, key)
		m, set := x.Get()
		if !set {
			return x
		}
		return Some(cloneObjectMap(d.st, m, c.clone))
	case map[string]*T:
		out = cloneObjectMap(d.st, x, c.clone)
	case map[string]T:
		out = make(map[string]*T, len(x))
		for k, e := range x {
			out[k] = c.clone(&e, d.st)
		}
	case map[string]Attributes:
		out = make(map[string]*T, len(x))
		for k, e := range x {
			out[k] = c.build(e, d.st)
		}
	case Attributes:
		if out, ok = objectMapFromBag(d.st, x, c); !ok {
			return None[map[string]*T]()
		}
	case map[string]any:
		if out, ok = objectMapFromBag(d.st, x, c); !ok {
			return None[map[string]*T]()
		}
	case *Fragment:
		if x == nil {
			return None[map[string]*T]()
		}
		if out, ok = objectMapFromBag(d.st, x.ToMap(), c); !ok {
			return None[map[string]*T]()
		}
	default:
		return None[map[string]*T]()
	}
	delete(d.rest, key)
	return Some(out)
}

func objectMapFromBag[T any](st *cloneState, bag map[string]any, c objectCodec[T]) (map[string]*T, bool) {
	out := make(map[string]*T, len(bag))
	for k, e := range bag {
		obj, ok := c.as(st, e)
		if !ok {
			return nil, false
		}
		out[k] = obj
	}
	return out, true
}

// decodeObjectList reads a list of nested Value Objects. Every element must
// convert, or the whole list is kept verbatim.
func decodeObjectList[T any](d *attrDecoder, key string, c objectCodec[T]) Optional[[]*T] {
	v, ok := d.rest[key]
	if !ok {
		return None[[]*T]()
	}
	var out []*T
	switch x := v.(type) {
	case Optional[[]*T]:
		delete(d.rest, key)
		list, set := x.Get()
		if !set {
			return x
		}
		return Some(cloneObjectList(d.st, list, c.clone))
	case []*T:
		out = cloneObjectList(d.st, x, c.clone)
	case []T:
		out = make([]*T, len(x))
		for i := range x {
			out[i] = c.clone(&x[i], d.st)
		}
	case []Attributes:
		out = make([]*T, len(x))
		for i, e := range x {
			out[i] = c.build(e, d.st)
		}
	case []map[string]any:
		out = make([]*T, len(x))
		for i, e := range x {
			out[i] = c.build(Attributes(e), d.st)
		}
	case []any:
		out = make([]*T, 0, len(x))
		for _, e := range x {
			obj, ok := c.as(d.st, e)
			if !ok {
				return None[[]*T]()
			}
			out = append(out, obj)
		}
	default:
		return None[[]*T]()
	}
	delete(d.rest, key)
	return Some(out)
}
