// Package lights sends turn-on commands to controllable lights.
//
// The Controller interface is the seam between preset application and
// the device transport. The production implementation publishes JSON
// command payloads over MQTT; tests substitute an in-memory fake.
package lights
