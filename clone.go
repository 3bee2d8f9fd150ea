package specmodel

import (
	"bytes"
	"reflect"
	"slices"
)

// cloneState memoizes copies made during one Clone call, keyed by the
// identity of the original. A node reachable twice in the original is copied
// once and reachable twice in the copy; cycles close on the copy.
type cloneState struct {
	seen map[any]any
}

func newCloneState() *cloneState {
	return &cloneState{seen: map[any]any{}}
}

// cloneRef copies the object behind p at most once per cloneState.
// The copy is registered before fill runs so back-references resolve to it.
func cloneRef[T any](st *cloneState, p *T, fill func(dst *T)) *T {
	if p == nil {
		return nil
	}
	if c, ok := st.seen[p]; ok {
		return c.(*T)
	}
	dst := new(T)
	st.seen[p] = dst
	fill(dst)
	return dst
}

type (
	mapKey   uintptr
	sliceKey struct {
		ptr uintptr
		len int
	}
)

// cloneAny deep-copies a verbatim attribute value. Maps and slices of the
// shapes JSON/YAML decoding produce are copied element-wise, Value Objects
// through their own clone, everything else by value.
func cloneAny(st *cloneState, v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		if x == nil {
			return x
		}
		key := mapKey(reflect.ValueOf(x).Pointer())
		if c, ok := st.seen[key]; ok {
			return c
		}
		out := make(map[string]any, len(x))
		st.seen[key] = out
		for k, e := range x {
			out[k] = cloneAny(st, e)
		}
		return out
	case Attributes:
		return Attributes(cloneAny(st, map[string]any(x)).(map[string]any))
	case []any:
		if x == nil {
			return x
		}
		key := sliceKey{ptr: reflect.ValueOf(x).Pointer(), len: len(x)}
		if c, ok := st.seen[key]; ok {
			return c
		}
		out := make([]any, len(x))
		st.seen[key] = out
		for i, e := range x {
			out[i] = cloneAny(st, e)
		}
		return out
	case []string:
		return slices.Clone(x)
	case []byte:
		return bytes.Clone(x)
	case *Fragment:
		return x.clone(st)
	case *ServerVariable:
		return x.clone(st)
	case *Server:
		return x.clone(st)
	case *ExternalDocumentation:
		return x.clone(st)
	case *Tag:
		return x.clone(st)
	case *Contact:
		return x.clone(st)
	case *License:
		return x.clone(st)
	case *Info:
		return x.clone(st)
	case *XML:
		return x.clone(st)
	case *Document:
		return x.clone(st)
	default:
		return cloneReflect(st, v)
	}
}

// cloneReflect copies typed slices and maps element-wise, such as
// []*Server or map[string]*Tag kept verbatim. Byte slices under another
// name (json.RawMessage) are copied wholesale; other values are returned
// as is.
func cloneReflect(st *cloneState, v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			reflect.Copy(cp, rv)
			return cp.Interface()
		}
		for i := 0; i < rv.Len(); i++ {
			setCloned(st, cp.Index(i), rv.Index(i))
		}
		return cp.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		cp := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			e := reflect.New(rv.Type().Elem()).Elem()
			setCloned(st, e, iter.Value())
			cp.SetMapIndex(iter.Key(), e)
		}
		return cp.Interface()
	}
	return v
}

func setCloned(st *cloneState, dst, src reflect.Value) {
	c := cloneAny(st, src.Interface())
	if c == nil {
		return
	}
	if cv := reflect.ValueOf(c); cv.Type().AssignableTo(dst.Type()) {
		dst.Set(cv)
		return
	}
	dst.Set(src)
}

// cloneExtras copies a verbatim key/value table.
func cloneExtras(st *cloneState, m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAny(st, v)
	}
	return out
}

func cloneOptionalStrings(o Optional[[]string]) Optional[[]string] {
	v, ok := o.Get()
	if !ok {
		return o
	}
	return Some(slices.Clone(v))
}

func cloneObjectMap[T any](st *cloneState, m map[string]*T, clone func(*T, *cloneState) *T) map[string]*T {
	if m == nil {
		return nil
	}
	out := make(map[string]*T, len(m))
	for k, v := range m {
		out[k] = clone(v, st)
	}
	return out
}

func cloneObjectList[T any](st *cloneState, list []*T, clone func(*T, *cloneState) *T) []*T {
	if list == nil {
		return nil
	}
	out := make([]*T, len(list))
	for i, v := range list {
		out[i] = clone(v, st)
	}
	return out
}

func cloneOptionalObjects[T any](st *cloneState, o Optional[[]*T], clone func(*T, *cloneState) *T) Optional[[]*T] {
	list, ok := o.Get()
	if !ok {
		return o
	}
	return Some(cloneObjectList(st, list, clone))
}
