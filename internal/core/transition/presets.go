package transition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/zeusync/motion/internal/core/toss"
	"gopkg.in/yaml.v3"
)

// defaultKey names the section that applies to every kind.
const defaultKey = "default"

// Presets holds the spring configuration per transition kind.
//
// In a presets document each section overrides only the fields it names: the
// "default" section is applied over toss.DefaultConfig, and each kind section
// over the result.
//
//	default:
//	  max_ticks: 900
//	slide:
//	  stiffness: 500
//	  minimum_velocity: 150
type Presets struct {
	Default toss.Config
	Kinds   map[Kind]toss.Config
}

func DefaultPresets() Presets {
	return Presets{Default: toss.DefaultConfig(), Kinds: map[Kind]toss.Config{}}
}

// For returns the configuration used for kind k.
func (p Presets) For(k Kind) toss.Config {
	if cfg, ok := p.Kinds[k]; ok {
		return cfg
	}
	return p.Default
}

// LoadPresetsYAML reads a presets document. Unknown kinds and invalid
// configurations are rejected.
func LoadPresetsYAML(r io.Reader) (Presets, error) {
	var sections map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&sections); err != nil && !errors.Is(err, io.EOF) {
		return Presets{}, fmt.Errorf("decode presets: %w", err)
	}
	return buildPresets(len(sections), func(name string, cfg *toss.Config) (bool, error) {
		node, ok := sections[name]
		if !ok {
			return false, nil
		}
		return true, node.Decode(cfg)
	}, keys(sections))
}

// LoadPresetsJSON is LoadPresetsYAML for JSON documents.
func LoadPresetsJSON(r io.Reader) (Presets, error) {
	var sections map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&sections); err != nil && !errors.Is(err, io.EOF) {
		return Presets{}, fmt.Errorf("decode presets: %w", err)
	}
	return buildPresets(len(sections), func(name string, cfg *toss.Config) (bool, error) {
		raw, ok := sections[name]
		if !ok {
			return false, nil
		}
		return true, json.Unmarshal(raw, cfg)
	}, keys(sections))
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func buildPresets(n int, decode func(name string, cfg *toss.Config) (bool, error), names []string) (Presets, error) {
	p := Presets{Default: toss.DefaultConfig(), Kinds: make(map[Kind]toss.Config, n)}
	if _, err := decode(defaultKey, &p.Default); err != nil {
		return Presets{}, fmt.Errorf("preset %s: %w", defaultKey, err)
	}
	if err := p.Default.Validate(); err != nil {
		return Presets{}, fmt.Errorf("preset %s: %w", defaultKey, err)
	}

	var errs []error
	for _, name := range names {
		if name == defaultKey {
			continue
		}
		k, err := ParseKind(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cfg := p.Default
		if _, err := decode(name, &cfg); err != nil {
			errs = append(errs, fmt.Errorf("preset %s: %w", name, err))
			continue
		}
		if err := cfg.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("preset %s: %w", name, err))
			continue
		}
		p.Kinds[k] = cfg
	}
	if len(errs) > 0 {
		return Presets{}, errors.Join(errs...)
	}
	return p, nil
}
