package command

import "math"

// FieldType enumerates the argument shapes a schema can require.
type FieldType int

const (
	FieldString FieldType = iota
	FieldInt
	FieldFloat
	FieldStringList
	FieldIntList
	FieldFloatList
)

// Field describes one argument of a command.
type Field struct {
	Name     string
	Type     FieldType
	Required bool

	// Min and Max bound numeric fields and the elements of numeric
	// lists. Nil means unbounded on that side.
	Min *float64
	Max *float64

	// Length is the exact element count for list fields. 0 means any.
	Length int

	// OneOf restricts a string field to an allowed set.
	OneOf []string

	// AllowSingle lets a list field accept a bare scalar as a
	// one-element list.
	AllowSingle bool
}

// Schema is the full argument contract of a command.
type Schema struct {
	Fields []Field
}

// Validate checks args against the schema and returns a normalized copy:
// ints arrive as int, floats as float64, lists as typed slices. Unknown
// arguments, missing required arguments, wrong types, and out-of-range
// values all produce a *ValidationError naming the offending field.
func (s Schema) Validate(args map[string]any) (map[string]any, error) {
	known := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		known[f.Name] = true
	}
	for name := range args {
		if !known[name] {
			return nil, invalid(name, "unexpected argument")
		}
	}

	out := make(map[string]any, len(args))
	for _, f := range s.Fields {
		raw, ok := args[f.Name]
		if !ok || raw == nil {
			if f.Required {
				return nil, invalid(f.Name, "required")
			}
			continue
		}
		value, err := f.normalize(raw)
		if err != nil {
			return nil, err
		}
		out[f.Name] = value
	}
	return out, nil
}

func (f Field) normalize(raw any) (any, error) {
	switch f.Type {
	case FieldString:
		return f.normalizeString(raw)
	case FieldInt:
		return f.normalizeInt(raw)
	case FieldFloat:
		return f.normalizeFloat(raw)
	case FieldStringList:
		return f.normalizeStringList(raw)
	case FieldIntList:
		return f.normalizeIntList(raw)
	case FieldFloatList:
		return f.normalizeFloatList(raw)
	}
	return nil, invalid(f.Name, "unsupported field type")
}

func (f Field) normalizeString(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", invalid(f.Name, "must be a string")
	}
	if len(f.OneOf) > 0 {
		for _, allowed := range f.OneOf {
			if s == allowed {
				return s, nil
			}
		}
		return "", invalid(f.Name, "must be one of %v, got %q", f.OneOf, s)
	}
	return s, nil
}

func (f Field) normalizeInt(raw any) (int, error) {
	v, ok := asFloat(raw)
	if !ok || v != math.Trunc(v) {
		return 0, invalid(f.Name, "must be an integer")
	}
	n := int(v)
	if err := f.checkRange(float64(n), ""); err != nil {
		return 0, err
	}
	return n, nil
}

func (f Field) normalizeFloat(raw any) (float64, error) {
	v, ok := asFloat(raw)
	if !ok {
		return 0, invalid(f.Name, "must be a number")
	}
	if err := f.checkRange(v, ""); err != nil {
		return 0, err
	}
	return v, nil
}

func (f Field) normalizeStringList(raw any) ([]string, error) {
	var items []any
	switch v := raw.(type) {
	case string:
		if !f.AllowSingle {
			return nil, invalid(f.Name, "must be a list of strings")
		}
		items = []any{v}
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	case []any:
		items = v
	default:
		return nil, invalid(f.Name, "must be a list of strings")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, invalid(f.Name, "must contain only strings")
		}
		out = append(out, s)
	}
	if f.Required && len(out) == 0 {
		return nil, invalid(f.Name, "must not be empty")
	}
	if f.Length > 0 && len(out) != f.Length {
		return nil, invalid(f.Name, "must have exactly %d elements, got %d", f.Length, len(out))
	}
	return out, nil
}

func (f Field) normalizeIntList(raw any) ([]int, error) {
	items, ok := raw.([]any)
	if !ok {
		if typed, isTyped := raw.([]int); isTyped {
			items = make([]any, len(typed))
			for i, v := range typed {
				items[i] = v
			}
		} else {
			return nil, invalid(f.Name, "must be a list of integers")
		}
	}
	if f.Length > 0 && len(items) != f.Length {
		return nil, invalid(f.Name, "must have exactly %d elements, got %d", f.Length, len(items))
	}
	out := make([]int, 0, len(items))
	for i, item := range items {
		v, ok := asFloat(item)
		if !ok || v != math.Trunc(v) {
			return nil, invalid(f.Name, "element %d must be an integer", i)
		}
		if err := f.checkRange(v, "element"); err != nil {
			return nil, err
		}
		out = append(out, int(v))
	}
	return out, nil
}

func (f Field) normalizeFloatList(raw any) ([]float64, error) {
	items, ok := raw.([]any)
	if !ok {
		if typed, isTyped := raw.([]float64); isTyped {
			items = make([]any, len(typed))
			for i, v := range typed {
				items[i] = v
			}
		} else {
			return nil, invalid(f.Name, "must be a list of numbers")
		}
	}
	if f.Length > 0 && len(items) != f.Length {
		return nil, invalid(f.Name, "must have exactly %d elements, got %d", f.Length, len(items))
	}
	out := make([]float64, 0, len(items))
	for i, item := range items {
		v, ok := asFloat(item)
		if !ok {
			return nil, invalid(f.Name, "element %d must be a number", i)
		}
		if err := f.checkRange(v, "element"); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (f Field) checkRange(v float64, what string) error {
	label := f.Name
	if what != "" {
		label = f.Name + " " + what
	}
	if f.Min != nil && v < *f.Min {
		return invalid(f.Name, "%s must be >= %v, got %v", label, *f.Min, v)
	}
	if f.Max != nil && v > *f.Max {
		return invalid(f.Name, "%s must be <= %v, got %v", label, *f.Max, v)
	}
	return nil
}

// asFloat widens the numeric types JSON decoding and Go callers produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func bound(v float64) *float64 {
	return &v
}
