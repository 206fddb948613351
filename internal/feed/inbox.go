package feed

import (
	"sync"

	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/observability/log"
)

// DefaultInboxLimit bounds how many samples may wait between two drains.
const DefaultInboxLimit = 1024

// Inbox buffers samples received on connection goroutines until the frame loop
// drains them.
type Inbox struct {
	mu      sync.Mutex
	pending []Message
	limit   int
	logger  log.Log
}

// NewInbox creates an inbox holding at most limit messages; zero means
// DefaultInboxLimit.
func NewInbox(limit int, logger log.Log) *Inbox {
	if limit <= 0 {
		limit = DefaultInboxLimit
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Inbox{limit: limit, logger: logger}
}

func (in *Inbox) Push(m Message) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if len(in.pending) >= in.limit {
		return ErrInboxFull
	}
	in.pending = append(in.pending, m)
	return nil
}

func (in *Inbox) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.pending)
}

// Router finds the recognizer a message is addressed to.
type Router interface {
	Route(id string) (*gesture.Pan, bool)
}

// Drain applies every waiting message, in arrival order, and returns how many
// were accepted by their recognizer. Call it from the goroutine that drives
// the stream graph.
func (in *Inbox) Drain(router Router) int {
	in.mu.Lock()
	batch := in.pending
	in.pending = nil
	in.mu.Unlock()

	applied := 0
	for _, m := range batch {
		pan, ok := router.Route(m.Gesture)
		if !ok {
			in.logger.Warn("sample for unknown gesture", log.String("gesture", m.Gesture))
			continue
		}
		s, err := m.Sample()
		if err != nil {
			in.logger.Warn("bad sample phase", log.String("gesture", m.Gesture), log.Error(err))
			continue
		}
		if err := pan.Apply(s); err != nil {
			in.logger.Warn("sample rejected",
				log.String("gesture", m.Gesture), log.Stringer("phase", s.Phase), log.Error(err))
			continue
		}
		applied++
	}
	return applied
}

// Registry routes messages to pans by id.
type Registry struct {
	pans map[string]*gesture.Pan
}

func NewRegistry(pans ...*gesture.Pan) *Registry {
	r := &Registry{pans: make(map[string]*gesture.Pan, len(pans))}
	for _, p := range pans {
		r.Register(p)
	}
	return r
}

func (r *Registry) Register(p *gesture.Pan) { r.pans[p.ID()] = p }

func (r *Registry) Unregister(id string) { delete(r.pans, id) }

func (r *Registry) Route(id string) (*gesture.Pan, bool) {
	p, ok := r.pans[id]
	return p, ok
}
