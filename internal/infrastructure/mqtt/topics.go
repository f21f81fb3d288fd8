package mqtt

import "fmt"

// Topic prefixes for the Lumen MQTT namespace.
//
// Command topics use the flat scheme: lumen/command/{device_class}/{entity_id}
const (
	// TopicPrefix is the base for all Lumen topics.
	TopicPrefix = "lumen"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "lumen/system"

	// TopicPrefixService is the base for service invocation topics.
	TopicPrefixService = "lumen/service"
)

// Topics provides builders for Lumen MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	cmdTopic := topics.LightCommand("light-living-main")
//	// Returns: "lumen/command/light/light-living-main"
type Topics struct{}

// LightCommand returns the topic for turn-on commands to a light entity.
//
// Example: lumen/command/light/light-living-main
func (Topics) LightCommand(entityID string) string {
	return fmt.Sprintf("%s/command/light/%s", TopicPrefix, entityID)
}

// SystemStatus returns the topic for the service's online/offline status.
//
// Example: lumen/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// ServiceRequest returns the topic external callers publish service
// invocations to.
//
// Example: lumen/service/request
func (Topics) ServiceRequest() string {
	return TopicPrefixService + "/request"
}

// ServiceResponse returns the topic a service invocation response is
// published on, keyed by request id.
//
// Example: lumen/service/response/req-abc123
func (Topics) ServiceResponse(requestID string) string {
	return fmt.Sprintf("%s/response/%s", TopicPrefixService, requestID)
}

// Event returns the topic for core event notifications.
//
// Example: lumen/event/document.changed
func (Topics) Event(eventType string) string {
	return fmt.Sprintf("%s/event/%s", TopicPrefix, eventType)
}
