package transition

import (
	"fmt"
	"strings"
)

type Kind uint8

const (
	KindModal Kind = iota + 1
	KindVerticalSheet
	KindSlide
	KindFABFullScreen
	KindFABMaskedReveal
)

var kindNames = map[Kind]string{
	KindModal:           "modal",
	KindVerticalSheet:   "vertical_sheet",
	KindSlide:           "slide",
	KindFABFullScreen:   "fab_fullscreen",
	KindFABMaskedReveal: "fab_masked_reveal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Capabilities declares which optional hooks a transition provides.
type Capabilities uint8

const (
	// Presentation transitions decide the frame of the presented view.
	Presentation Capabilities = 1 << iota
	// Fallback transitions may hand over to another transition at begin time.
	Fallback
	// Termination transitions run a hook once they settle.
	Termination
)

func (c Capabilities) Has(flag Capabilities) bool { return c&flag == flag }

func (c Capabilities) String() string {
	var parts []string
	if c.Has(Presentation) {
		parts = append(parts, "presentation")
	}
	if c.Has(Fallback) {
		parts = append(parts, "fallback")
	}
	if c.Has(Termination) {
		parts = append(parts, "termination")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
