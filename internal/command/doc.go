// Package command exposes the preset store as named, schema-validated
// commands.
//
// A Router holds the registered commands. Each command pairs a name
// with an argument Schema and a handler; Dispatch validates the raw
// arguments against the schema before the handler ever sees them, so
// handlers work with typed, range-checked values and malformed input
// never reaches the store.
//
// Commands arrive over two transports that share one Router: the HTTP
// API (POST /api/v1/services/{name}) and the MQTT service topic. Both
// deliver arguments as a JSON object and receive the handler's result
// or a field-identified validation error.
//
// The applyColor command carries the one piece of domain logic in the
// package: projecting a stored preset's attributes onto a per-entity
// light turn-on call.
package command
