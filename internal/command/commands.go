package command

import (
	"context"

	"github.com/lumenhaus/lumen-core/internal/lights"
	"github.com/lumenhaus/lumen-core/internal/preset"
)

// Command names as invoked by clients.
const (
	CmdGetPresets     = "get_presets"
	CmdApplyColor     = "applyColor"
	CmdSaveCategory   = "save_category"
	CmdDeleteCategory = "delete_category"
	CmdSavePreset     = "save_preset"
	CmdDeletePreset   = "delete_preset"
)

// EventSink receives state-change events for fan-out to subscribers.
type EventSink interface {
	Broadcast(event string, payload any)
}

// Telemetry records preset activity measurements. Implemented by the
// influxdb client; nil disables telemetry.
type Telemetry interface {
	WriteApplyEvent(presetID string, presetType string, entities int, failures int)
	WriteDocumentMetric(categories int, presets int)
}

// Deps wires the preset commands to their collaborators. Store and
// Lights are required; Telemetry, Events and Logger are optional.
type Deps struct {
	Store     *preset.Store
	Lights    lights.Controller
	Telemetry Telemetry
	Events    EventSink
	Logger    Logger
}

// RegisterAll registers the six preset commands on the router.
func RegisterAll(router *Router, deps Deps) error {
	if deps.Logger == nil {
		deps.Logger = noopLogger{}
	}

	commands := []Command{
		{
			Name:    CmdGetPresets,
			Schema:  Schema{},
			Handler: deps.handleGetPresets,
		},
		{
			Name: CmdApplyColor,
			Schema: Schema{Fields: []Field{
				{Name: "preset_id", Type: FieldString, Required: true},
				{Name: "entity_id", Type: FieldStringList, Required: true, AllowSingle: true},
			}},
			Handler: deps.handleApplyColor,
		},
		{
			Name: CmdSaveCategory,
			Schema: Schema{Fields: []Field{
				{Name: "category_id", Type: FieldString},
				{Name: "name", Type: FieldString, Required: true},
				{Name: "order", Type: FieldInt},
			}},
			Handler: deps.handleSaveCategory,
		},
		{
			Name: CmdDeleteCategory,
			Schema: Schema{Fields: []Field{
				{Name: "category_id", Type: FieldString, Required: true},
			}},
			Handler: deps.handleDeleteCategory,
		},
		{
			Name: CmdSavePreset,
			Schema: Schema{Fields: []Field{
				{Name: "category_id", Type: FieldString, Required: true},
				{Name: "preset_id", Type: FieldString},
				{Name: "name", Type: FieldString, Required: true},
				{Name: "type", Type: FieldString, Required: true, OneOf: presetTypeNames()},
				{Name: "brightness_pct", Type: FieldInt,
					Min: bound(preset.MinBrightnessPct), Max: bound(preset.MaxBrightnessPct)},
				{Name: "transition", Type: FieldFloat, Min: bound(0)},
				{Name: "color_temp_kelvin", Type: FieldInt,
					Min: bound(preset.MinColorTempKelvin), Max: bound(preset.MaxColorTempKelvin)},
				{Name: "rgb_color", Type: FieldIntList, Length: 3,
					Min: bound(preset.MinRGBValue), Max: bound(preset.MaxRGBValue)},
				{Name: "hs_color", Type: FieldFloatList, Length: 2},
				{Name: "order", Type: FieldInt},
			}},
			Handler: deps.handleSavePreset,
		},
		{
			Name: CmdDeletePreset,
			Schema: Schema{Fields: []Field{
				{Name: "category_id", Type: FieldString, Required: true},
				{Name: "preset_id", Type: FieldString, Required: true},
			}},
			Handler: deps.handleDeletePreset,
		},
	}

	for _, cmd := range commands {
		if err := router.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func presetTypeNames() []string {
	types := preset.AllTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

func (d Deps) handleGetPresets(ctx context.Context, _ Args) (any, error) {
	return d.Store.GetAll(ctx)
}

func (d Deps) handleSaveCategory(ctx context.Context, args Args) (any, error) {
	var order *int
	if v, ok := args.IntOK("order"); ok {
		order = &v
	}

	cat, err := d.Store.SaveCategory(ctx, args.String("category_id"), args.String("name"), order)
	if err != nil {
		return nil, err
	}
	d.notifyDocumentChanged(ctx)
	return cat, nil
}

func (d Deps) handleDeleteCategory(ctx context.Context, args Args) (any, error) {
	if err := d.Store.DeleteCategory(ctx, args.String("category_id")); err != nil {
		return nil, err
	}
	d.notifyDocumentChanged(ctx)
	return nil, nil
}

func (d Deps) handleSavePreset(ctx context.Context, args Args) (any, error) {
	patch := patchFromArgs(args)
	p, err := d.Store.SavePreset(ctx, args.String("category_id"), args.String("preset_id"), patch)
	if err != nil {
		return nil, err
	}
	d.notifyDocumentChanged(ctx)
	return p, nil
}

func (d Deps) handleDeletePreset(ctx context.Context, args Args) (any, error) {
	err := d.Store.DeletePreset(ctx, args.String("category_id"), args.String("preset_id"))
	if err != nil {
		return nil, err
	}
	d.notifyDocumentChanged(ctx)
	return nil, nil
}

// patchFromArgs packs only the supplied optional attributes, preserving
// the partial-update contract of the store.
func patchFromArgs(args Args) preset.Patch {
	patch := preset.Patch{}
	if name := args.String("name"); name != "" {
		patch.Name = &name
	}
	if t := args.String("type"); t != "" {
		pt := preset.Type(t)
		patch.Type = &pt
	}
	if v, ok := args.IntOK("order"); ok {
		patch.Order = &v
	}
	if v, ok := args.IntOK("brightness_pct"); ok {
		patch.BrightnessPct = &v
	}
	if v, ok := args.FloatOK("transition"); ok {
		patch.Transition = &v
	}
	if v, ok := args.IntOK("color_temp_kelvin"); ok {
		patch.ColorTempKelvin = &v
	}
	if v, ok := args.IntListOK("rgb_color"); ok && len(v) == 3 {
		rgb := [3]int{v[0], v[1], v[2]}
		patch.RGBColor = &rgb
	}
	if v, ok := args.FloatListOK("hs_color"); ok && len(v) == 2 {
		hs := [2]float64{v[0], v[1]}
		patch.HSColor = &hs
	}
	return patch
}

// notifyDocumentChanged fans the new document shape out to event
// subscribers and telemetry. Failures here never fail the command.
func (d Deps) notifyDocumentChanged(ctx context.Context) {
	if d.Events == nil && d.Telemetry == nil {
		return
	}

	doc, err := d.Store.GetAll(ctx)
	if err != nil {
		d.Logger.Warn("reading document for change event", "error", err)
		return
	}

	if d.Events != nil {
		d.Events.Broadcast("document.changed", doc)
	}
	if d.Telemetry != nil {
		presets := 0
		for _, cat := range doc.Categories {
			presets += len(cat.Presets)
		}
		d.Telemetry.WriteDocumentMetric(len(doc.Categories), presets)
	}
}
