package lights

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type publishedMessage struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

type mockPublisher struct {
	messages []publishedMessage
	failNext bool
}

func (m *mockPublisher) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if m.failNext {
		m.failNext = false
		return errors.New("broker unavailable")
	}
	m.messages = append(m.messages, publishedMessage{topic, payload, qos, retained})
	return nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestTurnOnPublishesToEntityTopic(t *testing.T) {
	pub := &mockPublisher{}
	ctrl := NewMQTTController(pub, 1)

	err := ctrl.TurnOn(context.Background(), TurnOnCommand{
		EntityID:      "light-living-main",
		BrightnessPct: intPtr(80),
		RGBColor:      &[3]int{255, 0, 0},
	})
	if err != nil {
		t.Fatalf("TurnOn() error = %v", err)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(pub.messages))
	}

	msg := pub.messages[0]
	if want := "lumen/command/light/light-living-main"; msg.topic != want {
		t.Errorf("topic = %q, want %q", msg.topic, want)
	}
	if msg.qos != 1 {
		t.Errorf("qos = %d, want 1", msg.qos)
	}
	if msg.retained {
		t.Error("command was retained")
	}

	var decoded map[string]any
	if err := json.Unmarshal(msg.payload, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded["entity"] != "light-living-main" {
		t.Errorf("entity = %v", decoded["entity"])
	}
	if decoded["brightness_pct"] != float64(80) {
		t.Errorf("brightness_pct = %v, want 80", decoded["brightness_pct"])
	}
	if _, ok := decoded["color_temp_kelvin"]; ok {
		t.Error("payload carries color_temp_kelvin for an rgb command")
	}
	if _, ok := decoded["transition"]; ok {
		t.Error("payload carries transition that was never set")
	}
}

func TestTurnOnOmitsUnsetAttributes(t *testing.T) {
	pub := &mockPublisher{}
	ctrl := NewMQTTController(pub, 0)

	if err := ctrl.TurnOn(context.Background(), TurnOnCommand{EntityID: "light-hall"}); err != nil {
		t.Fatalf("TurnOn() error = %v", err)
	}

	if want := `{"entity":"light-hall"}`; string(pub.messages[0].payload) != want {
		t.Errorf("payload = %s, want %s", pub.messages[0].payload, want)
	}
}

func TestTurnOnMissingEntity(t *testing.T) {
	ctrl := NewMQTTController(&mockPublisher{}, 1)

	err := ctrl.TurnOn(context.Background(), TurnOnCommand{Transition: floatPtr(1)})
	if !errors.Is(err, ErrMissingEntity) {
		t.Errorf("TurnOn() error = %v, want ErrMissingEntity", err)
	}
}

func TestTurnOnPublishFailure(t *testing.T) {
	pub := &mockPublisher{failNext: true}
	ctrl := NewMQTTController(pub, 1)

	err := ctrl.TurnOn(context.Background(), TurnOnCommand{EntityID: "light-hall"})
	if !errors.Is(err, ErrPublishFailed) {
		t.Errorf("TurnOn() error = %v, want ErrPublishFailed", err)
	}
}
