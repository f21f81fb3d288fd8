package command

import (
	"context"
	"errors"

	"github.com/lumenhaus/lumen-core/internal/lights"
	"github.com/lumenhaus/lumen-core/internal/preset"
)

// handleApplyColor resolves a preset and issues one light turn-on call
// per target entity.
//
// An unknown preset id is logged and produces zero device calls without
// failing the command; the id may belong to a preset deleted between
// the client reading the document and issuing the apply. Per-entity
// calls are independent: a failure on one device never blocks the rest
// and the command succeeds with the failures logged and counted.
func (d Deps) handleApplyColor(ctx context.Context, args Args) (any, error) {
	presetID := args.String("preset_id")
	entityIDs := args.StringList("entity_id")

	p, err := d.Store.GetPresetByID(ctx, presetID)
	if errors.Is(err, preset.ErrPresetNotFound) {
		d.Logger.Error("apply skipped: preset not found", "preset_id", presetID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	base := projectPreset(p)
	failures := 0
	for _, entityID := range entityIDs {
		cmd := base
		cmd.EntityID = entityID
		if err := d.Lights.TurnOn(ctx, cmd); err != nil {
			failures++
			d.Logger.Error("turn-on failed",
				"entity_id", entityID, "preset_id", presetID, "error", err)
		}
	}

	d.Logger.Info("applied preset",
		"preset_id", presetID, "type", p.Type,
		"entities", len(entityIDs), "failures", failures)

	if d.Telemetry != nil {
		d.Telemetry.WriteApplyEvent(presetID, string(p.Type), len(entityIDs), failures)
	}
	if d.Events != nil {
		d.Events.Broadcast("preset.applied", map[string]any{
			"preset_id": presetID,
			"entities":  len(entityIDs),
			"failures":  failures,
		})
	}
	return nil, nil
}

// projectPreset maps preset attributes onto a turn-on command: always
// brightness and transition when present, then exactly the one colour
// field matching the preset's type.
func projectPreset(p *preset.Preset) lights.TurnOnCommand {
	cmd := lights.TurnOnCommand{
		BrightnessPct: p.BrightnessPct,
		Transition:    p.Transition,
	}
	switch p.Type {
	case preset.TypeColorTempKelvin:
		cmd.ColorTempKelvin = p.ColorTempKelvin
	case preset.TypeRGB:
		cmd.RGBColor = p.RGBColor
	case preset.TypeHS:
		cmd.HSColor = p.HSColor
	case preset.TypeBrightnessOnly:
		// no colour field
	}
	return cmd
}
