package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/motion/internal/core/events/bus"
	"github.com/zeusync/motion/internal/core/observability/log"
	"github.com/zeusync/motion/internal/core/stream"
	"github.com/zeusync/motion/internal/core/transition"
)

// CoreSet provides a transition runtime and everything it runs on.
var CoreSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	stream.NewGraph,
	bus.New,
	ProvideRuntime,
)

// ProvideLogger builds the process logger. The first one built is also
// returned by log.Provide.
func ProvideLogger(level log.Level) *log.Logger {
	return log.New(level)
}

func ProvideRuntime(g *stream.Graph, b bus.EventBus, presets transition.Presets, logger log.Log) *transition.Runtime {
	return transition.NewRuntime(g,
		transition.WithBus(b),
		transition.WithPresets(presets),
		transition.WithRuntimeLogger(logger))
}
