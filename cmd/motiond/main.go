// Command motiond drives sheet dismissals from gesture samples streamed by
// remote touch hosts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/observability/log"
	"github.com/zeusync/motion/internal/core/transition"
	"github.com/zeusync/motion/internal/feed"
	"github.com/zeusync/motion/internal/injector"
)

func main() {
	addr := flag.String("addr", ":8090", "feed listen address")
	presetsPath := flag.String("presets", "", "YAML file with transition presets")
	level := flag.String("log-level", "info", "debug, info, warn or error")
	width := flag.Float64("width", 390, "container width in points")
	height := flag.Float64("height", 844, "container height in points")
	fps := flag.Int("fps", 60, "frames per second")
	flag.Parse()

	if err := run(*addr, *presetsPath, *level, geometry.Rect{Width: *width, Height: *height}, *fps); err != nil {
		fmt.Fprintln(os.Stderr, "motiond:", err)
		os.Exit(1)
	}
}

func run(addr, presetsPath, level string, container geometry.Rect, fps int) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	if fps <= 0 {
		return errors.New("fps must be positive")
	}
	presets, err := loadPresets(presetsPath)
	if err != nil {
		return err
	}

	rt := injector.InitializeRuntime(lvl, presets)
	logger := log.Provide()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inbox := feed.NewInbox(0, logger)
	srv := feed.NewServer(inbox, feed.WithLogger(logger))
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(ctx, addr) }()
	logger.Info("motiond listening", log.String("addr", addr), log.Int("fps", fps))

	h := newHost(rt, container, logger)
	defer h.close()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			rt.Teardown()
			return <-errc
		case err := <-errc:
			rt.Teardown()
			return err
		case now := <-ticker.C:
			inbox.Drain(h)
			rt.Tick(now.Sub(last).Seconds())
			last = now
		}
	}
}

func loadPresets(path string) (transition.Presets, error) {
	if path == "" {
		return transition.DefaultPresets(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return transition.Presets{}, err
	}
	defer f.Close()
	return transition.LoadPresetsYAML(f)
}
