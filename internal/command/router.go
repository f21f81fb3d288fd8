package command

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Logger is the minimal logging interface the package needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Args holds schema-validated arguments. Values carry the types the
// schema normalized them to.
type Args map[string]any

// String returns a string argument, empty when absent.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// IntOK returns an int argument and whether it was supplied.
func (a Args) IntOK(name string) (int, bool) {
	v, ok := a[name].(int)
	return v, ok
}

// FloatOK returns a float argument and whether it was supplied.
func (a Args) FloatOK(name string) (float64, bool) {
	v, ok := a[name].(float64)
	return v, ok
}

// StringList returns a string-list argument, nil when absent.
func (a Args) StringList(name string) []string {
	v, _ := a[name].([]string)
	return v
}

// IntListOK returns an int-list argument and whether it was supplied.
func (a Args) IntListOK(name string) ([]int, bool) {
	v, ok := a[name].([]int)
	return v, ok
}

// FloatListOK returns a float-list argument and whether it was supplied.
func (a Args) FloatListOK(name string) ([]float64, bool) {
	v, ok := a[name].([]float64)
	return v, ok
}

// Handler executes one validated command invocation. A nil result with
// a nil error means the command has no response payload.
type Handler func(ctx context.Context, args Args) (any, error)

// Command pairs a name with its argument schema and handler.
type Command struct {
	Name    string
	Schema  Schema
	Handler Handler
}

// Router dispatches named commands after schema validation.
//
// All public methods are thread-safe; registration normally happens at
// startup and dispatch for the lifetime of the process.
type Router struct {
	mu       sync.RWMutex
	commands map[string]Command
	logger   Logger
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		commands: make(map[string]Command),
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the router.
func (r *Router) SetLogger(logger Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register adds a command. Registering the same name twice is an error.
func (r *Router) Register(cmd Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("command: empty name")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command: %s has no handler", cmd.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[cmd.Name]; exists {
		return fmt.Errorf("%w: %s", ErrCommandExists, cmd.Name)
	}
	r.commands[cmd.Name] = cmd
	return nil
}

// Commands returns the registered command names, sorted.
func (r *Router) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch validates args against the command's schema and runs its
// handler. Validation failures return a *ValidationError before the
// handler or any store state is touched.
func (r *Router) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	cmd, ok := r.commands[name]
	logger := r.logger
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	normalized, err := cmd.Schema.Validate(args)
	if err != nil {
		logger.Warn("command rejected", "command", name, "error", err)
		return nil, err
	}

	logger.Debug("dispatching command", "command", name)
	return cmd.Handler(ctx, Args(normalized))
}
