//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"
	"github.com/zeusync/motion/internal/core/observability/log"
	"github.com/zeusync/motion/internal/core/transition"
)

func InitializeRuntime(level log.Level, presets transition.Presets) *transition.Runtime {
	wire.Build(CoreSet)
	return nil
}
