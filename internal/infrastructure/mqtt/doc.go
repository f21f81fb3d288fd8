// Package mqtt provides MQTT client connectivity for Lumen Core.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// Lumen uses MQTT as the bus between the preset core and the light
// device layer. Applying a preset publishes one turn-on command per
// target entity; device integrations subscribe to their command topics.
//
//	Lumen Core ↔ MQTT Broker ↔ Light integrations
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	topic := mqtt.Topics{}.LightCommand("light-living-main")
//	client.Publish(topic, []byte(`{"brightness_pct":80}`), 1, false)
package mqtt
