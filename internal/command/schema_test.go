package command

import (
	"errors"
	"reflect"
	"testing"
)

func TestSchemaValidateNormalizes(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "brightness", Type: FieldInt, Min: bound(0), Max: bound(100)},
		{Name: "transition", Type: FieldFloat, Min: bound(0)},
		{Name: "rgb", Type: FieldIntList, Length: 3, Min: bound(0), Max: bound(255)},
		{Name: "hs", Type: FieldFloatList, Length: 2},
		{Name: "targets", Type: FieldStringList, AllowSingle: true},
	}}

	// JSON decoding delivers every number as float64.
	out, err := schema.Validate(map[string]any{
		"name":       "Warm",
		"brightness": float64(80),
		"transition": float64(2),
		"rgb":        []any{float64(255), float64(0), float64(0)},
		"hs":         []any{float64(30), float64(80)},
		"targets":    "light-hall",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if out["brightness"] != 80 {
		t.Errorf("brightness = %#v, want int 80", out["brightness"])
	}
	if out["transition"] != float64(2) {
		t.Errorf("transition = %#v, want float64 2", out["transition"])
	}
	if !reflect.DeepEqual(out["rgb"], []int{255, 0, 0}) {
		t.Errorf("rgb = %#v, want []int{255 0 0}", out["rgb"])
	}
	if !reflect.DeepEqual(out["hs"], []float64{30, 80}) {
		t.Errorf("hs = %#v, want []float64{30 80}", out["hs"])
	}
	if !reflect.DeepEqual(out["targets"], []string{"light-hall"}) {
		t.Errorf("targets = %#v, want single-element list", out["targets"])
	}
}

func TestSchemaValidateRejections(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "name", Type: FieldString, Required: true},
		{Name: "type", Type: FieldString, OneOf: []string{"rgb", "hs"}},
		{Name: "brightness", Type: FieldInt, Min: bound(0), Max: bound(100)},
		{Name: "rgb", Type: FieldIntList, Length: 3, Min: bound(0), Max: bound(255)},
		{Name: "targets", Type: FieldStringList, Required: true},
	}}

	tests := []struct {
		name      string
		args      map[string]any
		wantField string
	}{
		{"missing required", map[string]any{"targets": []any{"a"}}, "name"},
		{"unexpected argument", map[string]any{"name": "x", "targets": []any{"a"}, "bogus": 1}, "bogus"},
		{"wrong type", map[string]any{"name": 7, "targets": []any{"a"}}, "name"},
		{"not in enum", map[string]any{"name": "x", "type": "xy", "targets": []any{"a"}}, "type"},
		{"out of range", map[string]any{"name": "x", "brightness": float64(101), "targets": []any{"a"}}, "brightness"},
		{"non-integer", map[string]any{"name": "x", "brightness": 1.5, "targets": []any{"a"}}, "brightness"},
		{"wrong list length", map[string]any{"name": "x", "rgb": []any{float64(1)}, "targets": []any{"a"}}, "rgb"},
		{"element out of range", map[string]any{"name": "x", "rgb": []any{float64(300), float64(0), float64(0)}, "targets": []any{"a"}}, "rgb"},
		{"empty required list", map[string]any{"name": "x", "targets": []any{}}, "targets"},
		{"bare string without AllowSingle", map[string]any{"name": "x", "targets": "light-hall"}, "targets"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.Validate(tt.args)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestSchemaValidateOptionalAbsent(t *testing.T) {
	schema := Schema{Fields: []Field{
		{Name: "order", Type: FieldInt},
	}}

	out, err := schema.Validate(map[string]any{})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, ok := out["order"]; ok {
		t.Error("absent optional argument appeared in normalized args")
	}
}
