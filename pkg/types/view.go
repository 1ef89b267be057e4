package types

// View is a typed, write-through handle on the sequence an entry stores for
// one element type. It holds no elements itself: every read sees the
// entry's current contents and every write changes the entry.
type View[T Element] struct {
	entry *Entry
	typ   ElementType
}

// AllOf returns the view of e's elements of type T. T must be a concrete
// element type; its element type tag is read from T's zero value.
func AllOf[T Element](e *Entry) View[T] {
	var zero T
	return View[T]{entry: e, typ: zero.ElementType()}
}

// Type returns the element type the view covers.
func (v View[T]) Type() ElementType { return v.typ }

// Len returns the number of stored elements.
func (v View[T]) Len() int { return len(v.entry.store[v.typ]) }

// At returns the i'th element in insertion order.
func (v View[T]) At(i int) T { return v.entry.store[v.typ][i].(T) }

// All returns the stored elements in insertion order. The slice is a copy;
// the elements are not.
func (v View[T]) All() []T {
	seq := v.entry.store[v.typ]
	out := make([]T, 0, len(seq))
	for _, el := range seq {
		out = append(out, el.(T))
	}
	return out
}

// Append adds el to the entry, subject to the same checks as
// Entry.AddElement.
func (v View[T]) Append(el T) error { return v.entry.AddElement(el) }

// Remove removes el from the entry and reports whether it was present.
func (v View[T]) Remove(el T) bool { return v.entry.RemoveElement(el) }
