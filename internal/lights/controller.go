package lights

import (
	"context"
	"errors"
)

var (
	// ErrMissingEntity is returned when a command carries no entity id.
	ErrMissingEntity = errors.New("lights: missing entity id")

	// ErrPublishFailed is returned when the transport rejects a command.
	ErrPublishFailed = errors.New("lights: publish failed")
)

// TurnOnCommand is one state change for one light. Optional attributes
// are pointers so omitted ones stay off the wire.
type TurnOnCommand struct {
	EntityID        string      `json:"entity"`
	BrightnessPct   *int        `json:"brightness_pct,omitempty"`
	Transition      *float64    `json:"transition,omitempty"`
	ColorTempKelvin *int        `json:"color_temp_kelvin,omitempty"`
	RGBColor        *[3]int     `json:"rgb_color,omitempty"`
	HSColor         *[2]float64 `json:"hs_color,omitempty"`
}

// Controller applies a turn-on command to a single named light.
type Controller interface {
	TurnOn(ctx context.Context, cmd TurnOnCommand) error
}
