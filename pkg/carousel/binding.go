package carousel

// Binding is a two-way handle to a value owned by someone else.
//
// The carousel never stores the bound collection; it calls Get on every
// build and routes element writes back through Set so the host remains
// the single owner of the data.
type Binding[T any] struct {
	Get func() T
	Set func(T)
}

// BindValue creates a binding backed by the pointed-to value.
func BindValue[T any](ptr *T) Binding[T] {
	return Binding[T]{
		Get: func() T { return *ptr },
		Set: func(value T) { *ptr = value },
	}
}

// Items binds a carousel to a caller-owned item slice. It is BindValue
// specialized to the collection shape CarouselView.Data expects.
func Items[T Item](items *[]T) Binding[[]T] {
	return BindValue(items)
}

// Constant creates a read-only binding; writes are dropped.
func Constant[T any](value T) Binding[T] {
	return Binding[T]{
		Get: func() T { return value },
		Set: func(T) {},
	}
}

// Value returns the bound value. A binding without a getter yields the
// zero value.
func (b Binding[T]) Value() T {
	if b.Get == nil {
		var zero T
		return zero
	}
	return b.Get()
}

// Update writes a new value through the binding, if it is writable.
func (b Binding[T]) Update(value T) {
	if b.Set != nil {
		b.Set(value)
	}
}

// ElementBinding derives a binding to a single element of a bound slice.
//
// Reads outside the current bounds yield the zero value; writes outside
// the current bounds are dropped. Bounds are rechecked on every access
// because the host may mutate the collection between build passes.
func ElementBinding[T any](list Binding[[]T], index int) Binding[T] {
	return Binding[T]{
		Get: func() T {
			items := list.Value()
			if index < 0 || index >= len(items) {
				var zero T
				return zero
			}
			return items[index]
		},
		Set: func(value T) {
			items := list.Value()
			if index < 0 || index >= len(items) {
				return
			}
			items[index] = value
			list.Update(items)
		},
	}
}
