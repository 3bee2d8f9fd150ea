package specmodel

import "sort"

// putAttr places a declared attribute: the typed value when set, otherwise a
// verbatim value kept for the same key. Absent attributes produce no key.
func putAttr[T any](f *Fragment, st *cloneState, l LosslessFields, key string, o Optional[T], render func(T) any) {
	if v, ok := o.Get(); ok {
		f.Set(key, render(v))
		return
	}
	if v, ok := l.Extra(key); ok {
		f.Set(key, serializeAny(st, v))
	}
}

// putObject places a nested Value Object. A nil object is absent.
func putObject[T any, P interface {
	*T
	fragmentSerializer
}](f *Fragment, st *cloneState, l LosslessFields, key string, obj P) {
	if obj != nil {
		f.Set(key, obj.serialize(st))
		return
	}
	if v, ok := l.Extra(key); ok {
		f.Set(key, serializeAny(st, v))
	}
}

func renderString(s string) any { return s }

func renderBool(b bool) any { return b }

// renderStrings copies the slice so callers of Serialize cannot reach the
// receiver's storage. An explicitly empty list stays an empty list.
func renderStrings(s []string) any {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// renderObjectMap serializes a map of named nested Value Objects with keys
// sorted.
func renderObjectMap[T any, P interface {
	*T
	fragmentSerializer
}](st *cloneState, m map[string]P) *Fragment {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	f := NewFragment()
	for _, k := range keys {
		f.Set(k, m[k].serialize(st))
	}
	return f
}

// renderObjectList serializes a list of nested Value Objects in order. A nil
// element is emitted as null.
func renderObjectList[T any, P interface {
	*T
	fragmentSerializer
}](st *cloneState, list []P) []any {
	out := make([]any, len(list))
	for i, e := range list {
		out[i] = e.serialize(st)
	}
	return out
}
