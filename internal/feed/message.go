package feed

import (
	"fmt"

	"github.com/zeusync/motion/internal/core/geometry"
	"github.com/zeusync/motion/internal/core/gesture"
)

// Message is one gesture sample as sent by a touch host. Translation is
// cumulative since the gesture began; velocity is in points per second.
type Message struct {
	Gesture string  `json:"gesture"`
	Phase   string  `json:"phase"`
	TX      float64 `json:"tx"`
	TY      float64 `json:"ty"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
}

func (m Message) Validate() error {
	if m.Gesture == "" {
		return fmt.Errorf("%w: missing gesture id", ErrInvalidMessage)
	}
	if _, err := gesture.ParsePhase(m.Phase); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	return nil
}

func (m Message) Sample() (gesture.Sample, error) {
	phase, err := gesture.ParsePhase(m.Phase)
	if err != nil {
		return gesture.Sample{}, err
	}
	return gesture.Sample{
		Phase:       phase,
		Translation: geometry.Pt(m.TX, m.TY),
		Velocity:    geometry.Pt(m.VX, m.VY),
	}, nil
}

// Ack answers every message on the connection it arrived on.
type Ack struct {
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}
