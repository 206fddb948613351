package stream

// Subscription is the disposable token returned by every Subscribe call.
// Cancel must eventually be called; calling it more than once is safe.
type Subscription struct {
	id     string
	active bool
	cancel func()
}

func (s *Subscription) ID() string { return s.id }

// IsActive reports whether the subscription still receives values.
func (s *Subscription) IsActive() bool { return s != nil && s.active }

// Cancel stops delivery to this subscription only. It is safe to call with nil.
func (s *Subscription) Cancel() {
	if s == nil || !s.active {
		return
	}
	s.active = false
	if s.cancel != nil {
		s.cancel()
	}
}

// Bag groups subscriptions that share a lifetime.
type Bag struct {
	graph *Graph
	subs  []*Subscription
	done  []func()
}

func NewBag(g *Graph) *Bag {
	return &Bag{graph: g}
}

// Add keeps track of subs and returns the first one for convenience.
func (b *Bag) Add(subs ...*Subscription) *Subscription {
	b.subs = append(b.subs, subs...)
	if len(subs) == 0 {
		return nil
	}
	return subs[0]
}

// OnDispose registers fn to run when the bag is disposed.
func (b *Bag) OnDispose(fn func()) {
	b.done = append(b.done, fn)
}

func (b *Bag) Len() int { return len(b.subs) }

// Dispose cancels everything in the bag. When called mid-notification the
// cancellation is deferred until the notification completes.
func (b *Bag) Dispose() {
	b.graph.Do(func() {
		subs, done := b.subs, b.done
		b.subs, b.done = nil, nil
		for _, s := range subs {
			s.Cancel()
		}
		for _, fn := range done {
			fn()
		}
	})
}
