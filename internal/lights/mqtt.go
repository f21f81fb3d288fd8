package lights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lumenhaus/lumen-core/internal/infrastructure/mqtt"
)

// Publisher is the slice of the MQTT client the controller needs.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// MQTTController publishes light commands to the per-entity command
// topic. Commands are fire-and-forget: a successful publish does not
// imply the device acted on it.
type MQTTController struct {
	publisher Publisher
	topics    mqtt.Topics
	qos       byte
}

// NewMQTTController creates a controller over the given publisher.
func NewMQTTController(publisher Publisher, qos byte) *MQTTController {
	return &MQTTController{publisher: publisher, qos: qos}
}

// TurnOn implements Controller. The payload carries only the attributes
// set on the command; commands are never retained.
func (c *MQTTController) TurnOn(_ context.Context, cmd TurnOnCommand) error {
	if cmd.EntityID == "" {
		return ErrMissingEntity
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("encoding command for %s: %w", cmd.EntityID, err)
	}

	topic := c.topics.LightCommand(cmd.EntityID)
	if err := c.publisher.Publish(topic, payload, c.qos, false); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublishFailed, cmd.EntityID, err)
	}
	return nil
}
