package main

import (
	"github.com/zeusync/motion/internal/core/direction"
	"github.com/zeusync/motion/internal/core/events/bus"
	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
	"github.com/zeusync/motion/internal/core/observability/log"
	"github.com/zeusync/motion/internal/core/stream"
	"github.com/zeusync/motion/internal/core/toss"
	"github.com/zeusync/motion/internal/core/transition"
	"github.com/zeusync/motion/internal/feed"
)

// host gives every new remote gesture its own pan and, once the pan begins,
// a sheet dismissal driven by it.
type host struct {
	rt        *transition.Runtime
	container geometry.Rect
	logger    log.Log

	pans     *feed.Registry
	gestures map[string]string // transition id -> gesture id
	torn     bus.Subscription
}

func newHost(rt *transition.Runtime, container geometry.Rect, logger log.Log) *host {
	h := &host{
		rt:        rt,
		container: container,
		logger:    logger,
		pans:      feed.NewRegistry(),
		gestures:  make(map[string]string),
	}
	h.torn = rt.Bus().Subscribe(bus.TransitionTornDown, func(e bus.Event) error {
		if id, ok := h.gestures[e.Transition]; ok {
			delete(h.gestures, e.Transition)
			h.pans.Unregister(id)
		}
		return nil
	})
	return h
}

func (h *host) Route(id string) (*gesture.Pan, bool) {
	if p, ok := h.pans.Route(id); ok {
		return p, true
	}
	p := gesture.NewPan(h.rt.Graph(), id)
	h.pans.Register(p)

	var began *stream.Subscription
	began = p.Samples().Subscribe(func(s gesture.Sample) {
		if s.Phase != gesture.PhaseBegan {
			return
		}
		began.Cancel()
		// the pan is only live once this notification is over
		h.rt.Graph().Do(func() { h.dismiss(p) })
	})
	return p, true
}

func (h *host) dismiss(p *gesture.Pan) {
	ctx := transition.Context{
		Container: h.container,
		ForeFrame: h.container,
		Direction: direction.Backward,
		Gestures:  []gesture.Recognizer{p},
	}
	logger := h.logger.With(log.String("gesture", p.ID()))
	sink := toss.SinkFunc(func(pos geometry.Point) {
		logger.Debug("position", log.Point("position", pos.X(), pos.Y()))
	})
	a, err := h.rt.Begin(transition.Modal{}, ctx, sink)
	if err != nil {
		logger.Error("cannot begin dismissal", log.Error(err))
		h.pans.Unregister(p.ID())
		return
	}
	h.gestures[a.ID()] = p.ID()
}

func (h *host) close() {
	h.torn.Cancel()
}
