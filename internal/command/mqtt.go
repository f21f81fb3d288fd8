package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumenhaus/lumen-core/internal/infrastructure/mqtt"
)

// dispatchTimeout bounds a single command handled off the broker.
const dispatchTimeout = 10 * time.Second

// Broker is the slice of the MQTT client the transport needs.
type Broker interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// serviceRequest is the wire format on the service request topic.
type serviceRequest struct {
	ID      string         `json:"id"`
	Command string         `json:"command"`
	Args    map[string]any `json:"args"`
}

// serviceResponse is published on the per-request response topic.
type serviceResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MQTTTransport accepts command invocations from the service request
// topic and publishes results to the caller's response topic. Requests
// without an id are handled fire-and-forget: the command runs but no
// response is published.
type MQTTTransport struct {
	router *Router
	broker Broker
	topics mqtt.Topics
	qos    byte
	logger Logger
}

// NewMQTTTransport creates the transport. Call Start to subscribe.
func NewMQTTTransport(router *Router, broker Broker, qos byte) *MQTTTransport {
	return &MQTTTransport{
		router: router,
		broker: broker,
		qos:    qos,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the transport.
func (t *MQTTTransport) SetLogger(logger Logger) {
	t.logger = logger
}

// Start subscribes to the service request topic.
func (t *MQTTTransport) Start() error {
	topic := t.topics.ServiceRequest()
	if err := t.broker.Subscribe(topic, t.qos, t.handleRequest); err != nil {
		return fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	t.logger.Info("mqtt command transport started", "topic", topic)
	return nil
}

func (t *MQTTTransport) handleRequest(topic string, payload []byte) error {
	var req serviceRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		t.logger.Warn("dropping malformed service request", "topic", topic, "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	result, err := t.router.Dispatch(ctx, req.Command, req.Args)

	if req.ID == "" {
		if err != nil {
			t.logger.Warn("fire-and-forget command failed", "command", req.Command, "error", err)
		}
		return nil
	}

	resp := serviceResponse{ID: req.ID, Success: err == nil, Result: result}
	if err != nil {
		resp.Error = err.Error()
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response for %s: %w", req.ID, err)
	}
	return t.broker.Publish(t.topics.ServiceResponse(req.ID), data, t.qos, false)
}
