package specmodel

// Cloner is implemented by types that can produce a deep, independent copy
// of themselves.
type Cloner[T any] interface {
	Clone() T
}

// SafeEditable is the Safe-Edit capability: edits are applied to a fresh deep
// copy, never to the receiver.
type SafeEditable[T any] interface {
	Cloner[T]
	CloneAndEdit(mutate func(T)) T
	TryCloneAndEdit(mutate func(T) error) (T, error)
}

// Serializable is the sparse serialization capability. Serialize emits an
// entry for every attribute that was assigned, and nothing else.
type Serializable interface {
	Serialize() *Fragment
}

// ValueObject is a specification document node with both capabilities.
type ValueObject[T any] interface {
	SafeEditable[T]
	Serializable
}

var (
	_ ValueObject[*ServerVariable]        = (*ServerVariable)(nil)
	_ ValueObject[*Server]                = (*Server)(nil)
	_ ValueObject[*ExternalDocumentation] = (*ExternalDocumentation)(nil)
	_ ValueObject[*Tag]                   = (*Tag)(nil)
	_ ValueObject[*Contact]               = (*Contact)(nil)
	_ ValueObject[*License]               = (*License)(nil)
	_ ValueObject[*Info]                  = (*Info)(nil)
	_ ValueObject[*XML]                   = (*XML)(nil)
	_ ValueObject[*Document]              = (*Document)(nil)
)

// CloneAndEdit deep-copies v, applies mutate to the copy and returns it.
// v is never touched, so a panic inside mutate leaves it intact.
func CloneAndEdit[T Cloner[T]](v T, mutate func(T)) T {
	c := v.Clone()
	mutate(c)
	return c
}

// TryCloneAndEdit is CloneAndEdit for mutators that can fail. The mutator's
// error is returned as is and the partially edited copy is dropped.
func TryCloneAndEdit[T Cloner[T]](v T, mutate func(T) error) (T, error) {
	c := v.Clone()
	if err := mutate(c); err != nil {
		var zero T
		return zero, err
	}
	return c, nil
}
