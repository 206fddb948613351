package stream

// Map derives a stream by applying fn to every upstream value.
func Map[T, U any](src Observable[T], fn func(T) U) *Derived[U] {
	d := newDerived[U](src.Graph())
	d.upstream = append(d.upstream, src.Subscribe(func(v T) {
		d.n.publish(fn(v))
	}))
	return d
}

// Filter forwards only the upstream values for which keep returns true.
func Filter[T any](src Observable[T], keep func(T) bool) *Derived[T] {
	d := newDerived[T](src.Graph())
	d.upstream = append(d.upstream, src.Subscribe(func(v T) {
		if keep(v) {
			d.n.publish(v)
		}
	}))
	return d
}

// Dedupe drops values equal to the previously forwarded one.
func Dedupe[T comparable](src Observable[T]) *Derived[T] {
	return DedupeFunc(src, func(a, b T) bool { return a == b })
}

func DedupeFunc[T any](src Observable[T], equal func(a, b T) bool) *Derived[T] {
	d := newDerived[T](src.Graph())
	d.upstream = append(d.upstream, src.Subscribe(func(v T) {
		if d.n.has && equal(d.n.value, v) {
			return
		}
		d.n.publish(v)
	}))
	return d
}

// Combine emits fn(a, b) whenever either side changes, once both sides have
// produced a value.
func Combine[A, B, R any](a Observable[A], b Observable[B], fn func(A, B) R) *Derived[R] {
	d := newDerived[R](a.Graph())
	var (
		la   A
		lb   B
		hasA bool
		hasB bool
	)
	d.upstream = append(d.upstream,
		a.Subscribe(func(v A) {
			la, hasA = v, true
			if hasB {
				d.n.publish(fn(la, lb))
			}
		}),
		b.Subscribe(func(v B) {
			lb, hasB = v, true
			if hasA {
				d.n.publish(fn(la, lb))
			}
		}),
	)
	return d
}

// Connect writes every value of src into dst.
func Connect[T any](src Observable[T], dst *Value[T]) *Subscription {
	return src.Subscribe(dst.Set)
}
