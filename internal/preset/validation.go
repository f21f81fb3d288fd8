package preset

import (
	"fmt"

	"github.com/google/uuid"
)

// Attribute bounds shared with the command schemas.
const (
	MaxNameLength      = 100
	MinBrightnessPct   = 0
	MaxBrightnessPct   = 100
	MinColorTempKelvin = 1000
	MaxColorTempKelvin = 10000
	MinRGBValue        = 0
	MaxRGBValue        = 255
)

// NewID returns a fresh identifier for a category or preset.
func NewID() string {
	return uuid.NewString()
}

// ValidateName checks a category or preset display name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// ValidatePatch checks every field a patch supplies. Absent fields are
// not checked; the store applies the patch only when this passes.
func ValidatePatch(p Patch) error {
	if p.Name != nil {
		if err := ValidateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Type != nil && !ValidType(*p.Type) {
		return fmt.Errorf("%w: %q", ErrInvalidType, *p.Type)
	}
	if p.BrightnessPct != nil {
		if *p.BrightnessPct < MinBrightnessPct || *p.BrightnessPct > MaxBrightnessPct {
			return fmt.Errorf("%w: brightness_pct must be %d-%d, got %d",
				ErrInvalidAttribute, MinBrightnessPct, MaxBrightnessPct, *p.BrightnessPct)
		}
	}
	if p.Transition != nil && *p.Transition < 0 {
		return fmt.Errorf("%w: transition must not be negative, got %v",
			ErrInvalidAttribute, *p.Transition)
	}
	if p.ColorTempKelvin != nil {
		if *p.ColorTempKelvin < MinColorTempKelvin || *p.ColorTempKelvin > MaxColorTempKelvin {
			return fmt.Errorf("%w: color_temp_kelvin must be %d-%d, got %d",
				ErrInvalidAttribute, MinColorTempKelvin, MaxColorTempKelvin, *p.ColorTempKelvin)
		}
	}
	if p.RGBColor != nil {
		for i, v := range p.RGBColor {
			if v < MinRGBValue || v > MaxRGBValue {
				return fmt.Errorf("%w: rgb_color[%d] must be %d-%d, got %d",
					ErrInvalidAttribute, i, MinRGBValue, MaxRGBValue, v)
			}
		}
	}
	if p.HSColor != nil {
		if hue := p.HSColor[0]; hue < 0 || hue > 360 {
			return fmt.Errorf("%w: hue must be 0-360, got %v", ErrInvalidAttribute, hue)
		}
		if sat := p.HSColor[1]; sat < 0 || sat > 100 {
			return fmt.Errorf("%w: saturation must be 0-100, got %v", ErrInvalidAttribute, sat)
		}
	}
	return nil
}
