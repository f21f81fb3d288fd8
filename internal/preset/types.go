package preset

// DocumentVersion is the only schema version this build reads or writes.
const DocumentVersion = 1

// Type identifies which colour descriptor a preset carries.
type Type string

const (
	// TypeColorTempKelvin presets carry a white colour temperature.
	TypeColorTempKelvin Type = "color_temp_kelvin"

	// TypeRGB presets carry an RGB triple.
	TypeRGB Type = "rgb"

	// TypeHS presets carry a hue/saturation pair.
	TypeHS Type = "hs"

	// TypeBrightnessOnly presets carry no colour descriptor at all.
	TypeBrightnessOnly Type = "brightness_only"
)

// AllTypes returns every valid preset type.
func AllTypes() []Type {
	return []Type{TypeColorTempKelvin, TypeRGB, TypeHS, TypeBrightnessOnly}
}

// ValidType reports whether t is a known preset type.
func ValidType(t Type) bool {
	switch t {
	case TypeColorTempKelvin, TypeRGB, TypeHS, TypeBrightnessOnly:
		return true
	}
	return false
}

// Document is the persisted root of the preset tree.
type Document struct {
	Version    int        `json:"version"`
	Categories []Category `json:"categories"`
}

// Category is a named, ordered grouping of presets.
type Category struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Order   int      `json:"order"`
	Presets []Preset `json:"presets"`
}

// Preset is a named bundle of light attributes. Optional attributes are
// pointers so that absence survives a JSON round trip.
type Preset struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Order           int         `json:"order"`
	Type            Type        `json:"type"`
	BrightnessPct   *int        `json:"brightness_pct,omitempty"`
	Transition      *float64    `json:"transition,omitempty"`
	ColorTempKelvin *int        `json:"color_temp_kelvin,omitempty"`
	RGBColor        *[3]int     `json:"rgb_color,omitempty"`
	HSColor         *[2]float64 `json:"hs_color,omitempty"`
}

// Patch describes a partial preset update. Nil fields leave the stored
// value untouched; set fields overwrite it.
type Patch struct {
	Name            *string
	Type            *Type
	Order           *int
	BrightnessPct   *int
	Transition      *float64
	ColorTempKelvin *int
	RGBColor        *[3]int
	HSColor         *[2]float64
}

// DeepCopy returns an independent copy of the document.
func (d *Document) DeepCopy() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Version: d.Version}
	if d.Categories != nil {
		out.Categories = make([]Category, len(d.Categories))
		for i := range d.Categories {
			out.Categories[i] = *d.Categories[i].DeepCopy()
		}
	}
	return out
}

// DeepCopy returns an independent copy of the category and its presets.
func (c *Category) DeepCopy() *Category {
	if c == nil {
		return nil
	}
	out := &Category{ID: c.ID, Name: c.Name, Order: c.Order}
	if c.Presets != nil {
		out.Presets = make([]Preset, len(c.Presets))
		for i := range c.Presets {
			out.Presets[i] = *c.Presets[i].DeepCopy()
		}
	}
	return out
}

// DeepCopy returns an independent copy of the preset.
func (p *Preset) DeepCopy() *Preset {
	if p == nil {
		return nil
	}
	out := &Preset{ID: p.ID, Name: p.Name, Order: p.Order, Type: p.Type}
	out.BrightnessPct = copyIntPtr(p.BrightnessPct)
	out.Transition = copyFloatPtr(p.Transition)
	out.ColorTempKelvin = copyIntPtr(p.ColorTempKelvin)
	if p.RGBColor != nil {
		rgb := *p.RGBColor
		out.RGBColor = &rgb
	}
	if p.HSColor != nil {
		hs := *p.HSColor
		out.HSColor = &hs
	}
	return out
}

func copyIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyFloatPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
