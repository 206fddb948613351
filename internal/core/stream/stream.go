package stream

import "slices"

// Observable is anything that can be subscribed to inside a Graph.
type Observable[T any] interface {
	// Latest returns the most recent value, if any was ever produced.
	Latest() (T, bool)
	// Subscribe registers fn. Replaying streams deliver the latest value
	// immediately; fn then sees every subsequent value in order.
	Subscribe(fn func(T)) *Subscription
	Graph() *Graph
}

type subscriber[T any] struct {
	fn  func(T)
	sub *Subscription
}

type node[T any] struct {
	graph  *Graph
	value  T
	has    bool
	replay bool
	subs   []*subscriber[T]
}

func newNode[T any](g *Graph, replay bool) *node[T] {
	return &node[T]{graph: g, replay: replay}
}

func (n *node[T]) publish(v T) {
	n.value, n.has = v, true
	n.graph.inline(func() {
		// cancel replaces n.subs, so this slice stays stable while we iterate
		for _, s := range n.subs {
			if s.sub.active {
				s.fn(v)
			}
		}
	})
}

func (n *node[T]) subscribe(fn func(T)) *Subscription {
	s := &subscriber[T]{fn: fn}
	s.sub = n.graph.track(func() {
		n.subs = slices.DeleteFunc(slices.Clone(n.subs), func(x *subscriber[T]) bool { return x == s })
	})
	n.subs = append(n.subs, s)
	if n.replay && n.has {
		v := n.value
		n.graph.inline(func() { fn(v) })
	}
	return s.sub
}

// Value is a mutable observable holding exactly one current value.
type Value[T any] struct {
	n *node[T]
}

func NewValue[T any](g *Graph, initial T) *Value[T] {
	n := newNode[T](g, true)
	n.value, n.has = initial, true
	return &Value[T]{n: n}
}

func (v *Value[T]) Get() T { return v.n.value }

func (v *Value[T]) Latest() (T, bool) { return v.n.value, true }

func (v *Value[T]) Graph() *Graph { return v.n.graph }

// Set stores x and notifies every subscriber. From inside a subscriber the
// store and its notifications happen after the current notification.
func (v *Value[T]) Set(x T) {
	v.n.graph.Do(func() { v.n.publish(x) })
}

// Subscribe replays the current value to fn, then every later one.
func (v *Value[T]) Subscribe(fn func(T)) *Subscription {
	return v.n.subscribe(fn)
}

// Event is a stream of discrete occurrences. Unlike Value it has no initial
// value and does not replay to late subscribers.
type Event[T any] struct {
	n *node[T]
}

func NewEvent[T any](g *Graph) *Event[T] {
	return &Event[T]{n: newNode[T](g, false)}
}

func (e *Event[T]) Latest() (T, bool) { return e.n.value, e.n.has }

func (e *Event[T]) Graph() *Graph { return e.n.graph }

func (e *Event[T]) Emit(x T) {
	e.n.graph.Do(func() { e.n.publish(x) })
}

func (e *Event[T]) Subscribe(fn func(T)) *Subscription {
	return e.n.subscribe(fn)
}

// Derived is a read-only stream computed from one or more upstream streams.
// It holds its upstream subscriptions until Dispose.
type Derived[T any] struct {
	n        *node[T]
	upstream []*Subscription
}

func newDerived[T any](g *Graph) *Derived[T] {
	return &Derived[T]{n: newNode[T](g, true)}
}

// Get returns the latest derived value or the zero value if none was produced.
func (d *Derived[T]) Get() T { return d.n.value }

func (d *Derived[T]) Latest() (T, bool) { return d.n.value, d.n.has }

func (d *Derived[T]) Graph() *Graph { return d.n.graph }

func (d *Derived[T]) Subscribe(fn func(T)) *Subscription {
	return d.n.subscribe(fn)
}

// Dispose detaches the stream from its upstreams and from its subscribers.
func (d *Derived[T]) Dispose() {
	d.n.graph.Do(func() {
		for _, s := range d.upstream {
			s.Cancel()
		}
		d.upstream = nil
		for _, s := range d.n.subs {
			s.sub.Cancel()
		}
	})
}
