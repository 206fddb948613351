package stream

import (
	"github.com/google/uuid"
	"github.com/zeusync/motion/pkg/sequence"
)

// Graph is the dispatcher shared by a set of connected streams.
//
// Delivery is synchronous and single-threaded: a Set that happens outside of a
// notification runs every transitive notification before returning. A Set issued
// from inside a subscriber is queued and applied once the current notification
// has finished, so values on one stream are always observed in the order they
// were set and no intermediate value is ever coalesced away.
//
// A Graph is not safe for concurrent use. Drive it from the frame loop.
type Graph struct {
	queue    sequence.Queue[func()]
	depth    int
	draining bool
	subs     map[string]*Subscription
}

func NewGraph() *Graph {
	return &Graph{
		subs: make(map[string]*Subscription),
	}
}

// Dispatching reports whether a notification is currently being delivered.
func (g *Graph) Dispatching() bool {
	return g.depth > 0 || g.draining
}

// Do runs fn immediately, or right after the current notification when called
// from inside a subscriber.
func (g *Graph) Do(fn func()) {
	if g.depth > 0 {
		g.queue.Enqueue(fn)
		return
	}
	g.inline(fn)
}

// Subscriptions returns the number of live subscriptions in the graph.
func (g *Graph) Subscriptions() int {
	return len(g.subs)
}

// Teardown cancels every subscription in the graph. Called mid-notification it
// takes effect once the notification completes.
func (g *Graph) Teardown() {
	g.Do(func() {
		for _, s := range g.subs {
			s.Cancel()
		}
	})
}

func (g *Graph) inline(fn func()) {
	g.depth++
	completed := false
	defer func() {
		g.depth--
		if !completed {
			// a panicking subscriber leaves queued work meaningless
			g.queue.Clear()
			return
		}
		if g.depth == 0 && !g.draining {
			g.drain()
		}
	}()
	fn()
	completed = true
}

func (g *Graph) drain() {
	g.draining = true
	defer func() { g.draining = false }()
	for {
		job, ok := g.queue.Dequeue()
		if !ok {
			return
		}
		g.inline(job)
	}
}

func (g *Graph) track(cancel func()) *Subscription {
	s := &Subscription{id: uuid.NewString(), active: true}
	s.cancel = func() {
		cancel()
		delete(g.subs, s.id)
	}
	g.subs[s.id] = s
	return s
}
