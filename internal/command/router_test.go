package command

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestRouterRegisterAndDispatch(t *testing.T) {
	router := NewRouter()
	err := router.Register(Command{
		Name: "echo",
		Schema: Schema{Fields: []Field{
			{Name: "value", Type: FieldString, Required: true},
		}},
		Handler: func(_ context.Context, args Args) (any, error) {
			return args.String("value"), nil
		},
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := router.Dispatch(context.Background(), "echo", map[string]any{"value": "hi"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result != "hi" {
		t.Errorf("Dispatch() = %v, want %q", result, "hi")
	}
}

func TestRouterUnknownCommand(t *testing.T) {
	router := NewRouter()

	_, err := router.Dispatch(context.Background(), "nope", nil)
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Dispatch() error = %v, want ErrUnknownCommand", err)
	}
}

func TestRouterDuplicateRegistration(t *testing.T) {
	router := NewRouter()
	cmd := Command{Name: "x", Handler: func(context.Context, Args) (any, error) { return nil, nil }}

	if err := router.Register(cmd); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := router.Register(cmd); !errors.Is(err, ErrCommandExists) {
		t.Errorf("second Register() error = %v, want ErrCommandExists", err)
	}
}

func TestRouterValidationStopsHandler(t *testing.T) {
	router := NewRouter()
	called := false
	_ = router.Register(Command{
		Name: "strict",
		Schema: Schema{Fields: []Field{
			{Name: "n", Type: FieldInt, Required: true},
		}},
		Handler: func(context.Context, Args) (any, error) {
			called = true
			return nil, nil
		},
	})

	_, err := router.Dispatch(context.Background(), "strict", map[string]any{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Dispatch() error = %v, want *ValidationError", err)
	}
	if called {
		t.Error("handler ran despite validation failure")
	}
}

func TestRouterCommands(t *testing.T) {
	router := NewRouter()
	for _, name := range []string{"b", "a"} {
		_ = router.Register(Command{
			Name:    name,
			Handler: func(context.Context, Args) (any, error) { return nil, nil },
		})
	}

	if got, want := router.Commands(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() = %v, want %v", got, want)
	}
}
