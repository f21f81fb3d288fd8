package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lumenhaus/lumen-core/internal/lights"
	"github.com/lumenhaus/lumen-core/internal/preset"
)

// memRepository keeps the document in memory.
type memRepository struct {
	data []byte
}

func (m *memRepository) Load(_ context.Context, key string) ([]byte, error) {
	if m.data == nil {
		return nil, fmt.Errorf("%w: %s", preset.ErrNoDocument, key)
	}
	return m.data, nil
}

func (m *memRepository) Save(_ context.Context, _ string, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

// mockController records turn-on calls and can fail selected entities.
type mockController struct {
	calls       []lights.TurnOnCommand
	failEntities map[string]bool
}

func (m *mockController) TurnOn(_ context.Context, cmd lights.TurnOnCommand) error {
	if m.failEntities[cmd.EntityID] {
		return errors.New("device offline")
	}
	m.calls = append(m.calls, cmd)
	return nil
}

type recordedEvent struct {
	event   string
	payload any
}

type mockEvents struct {
	events []recordedEvent
}

func (m *mockEvents) Broadcast(event string, payload any) {
	m.events = append(m.events, recordedEvent{event, payload})
}

type applyRecord struct {
	presetID   string
	presetType string
	entities   int
	failures   int
}

type mockTelemetry struct {
	applies []applyRecord
	metrics int
}

func (m *mockTelemetry) WriteApplyEvent(presetID, presetType string, entities, failures int) {
	m.applies = append(m.applies, applyRecord{presetID, presetType, entities, failures})
}

func (m *mockTelemetry) WriteDocumentMetric(int, int) {
	m.metrics++
}

type fixture struct {
	router    *Router
	store     *preset.Store
	lights    *mockController
	events    *mockEvents
	telemetry *mockTelemetry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := preset.NewStore(&memRepository{})
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("store.Load() error = %v", err)
	}

	f := &fixture{
		router:    NewRouter(),
		store:     store,
		lights:    &mockController{failEntities: map[string]bool{}},
		events:    &mockEvents{},
		telemetry: &mockTelemetry{},
	}
	err := RegisterAll(f.router, Deps{
		Store:     store,
		Lights:    f.lights,
		Telemetry: f.telemetry,
		Events:    f.events,
	})
	if err != nil {
		t.Fatalf("RegisterAll() error = %v", err)
	}
	return f
}

func (f *fixture) dispatch(t *testing.T, name string, args map[string]any) any {
	t.Helper()
	result, err := f.router.Dispatch(context.Background(), name, args)
	if err != nil {
		t.Fatalf("Dispatch(%s) error = %v", name, err)
	}
	return result
}

// seedRGBPreset creates a category with one rgb preset and returns both ids.
func (f *fixture) seedRGBPreset(t *testing.T) (categoryID, presetID string) {
	t.Helper()
	cat := f.dispatch(t, CmdSaveCategory, map[string]any{"name": "Evening"}).(*preset.Category)
	p := f.dispatch(t, CmdSavePreset, map[string]any{
		"category_id":    cat.ID,
		"name":           "Red",
		"type":           "rgb",
		"rgb_color":      []any{float64(255), float64(0), float64(0)},
		"brightness_pct": float64(80),
	}).(*preset.Preset)
	return cat.ID, p.ID
}

func TestGetPresetsReturnsDocument(t *testing.T) {
	f := newFixture(t)

	result := f.dispatch(t, CmdGetPresets, nil)
	doc, ok := result.(*preset.Document)
	if !ok {
		t.Fatalf("result type = %T, want *preset.Document", result)
	}
	if len(doc.Categories) != 1 || doc.Categories[0].Name != preset.DefaultCategoryName {
		t.Errorf("document = %+v, want seeded default", doc)
	}
}

func TestApplyColorFansOutPerEntity(t *testing.T) {
	f := newFixture(t)
	_, presetID := f.seedRGBPreset(t)

	f.dispatch(t, CmdApplyColor, map[string]any{
		"preset_id": presetID,
		"entity_id": []any{"light-living", "light-hall"},
	})

	if len(f.lights.calls) != 2 {
		t.Fatalf("got %d turn-on calls, want 2", len(f.lights.calls))
	}
	for i, call := range f.lights.calls {
		if call.RGBColor == nil || *call.RGBColor != [3]int{255, 0, 0} {
			t.Errorf("call %d RGBColor = %v, want [255 0 0]", i, call.RGBColor)
		}
		if call.BrightnessPct == nil || *call.BrightnessPct != 80 {
			t.Errorf("call %d BrightnessPct = %v, want 80", i, call.BrightnessPct)
		}
		if call.ColorTempKelvin != nil {
			t.Errorf("call %d carries ColorTempKelvin for an rgb preset", i)
		}
		if call.HSColor != nil {
			t.Errorf("call %d carries HSColor for an rgb preset", i)
		}
	}
	if f.lights.calls[0].EntityID != "light-living" || f.lights.calls[1].EntityID != "light-hall" {
		t.Errorf("entities = %q, %q", f.lights.calls[0].EntityID, f.lights.calls[1].EntityID)
	}
}

func TestApplyColorAcceptsSingleEntityString(t *testing.T) {
	f := newFixture(t)
	_, presetID := f.seedRGBPreset(t)

	f.dispatch(t, CmdApplyColor, map[string]any{
		"preset_id": presetID,
		"entity_id": "light-hall",
	})

	if len(f.lights.calls) != 1 {
		t.Fatalf("got %d turn-on calls, want 1", len(f.lights.calls))
	}
}

func TestApplyColorUnknownPresetIsNoOp(t *testing.T) {
	f := newFixture(t)

	result, err := f.router.Dispatch(context.Background(), CmdApplyColor, map[string]any{
		"preset_id": "nope",
		"entity_id": []any{"light-hall"},
	})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil", result)
	}
	if len(f.lights.calls) != 0 {
		t.Errorf("got %d turn-on calls, want 0", len(f.lights.calls))
	}
}

func TestApplyColorPartialFailure(t *testing.T) {
	f := newFixture(t)
	_, presetID := f.seedRGBPreset(t)
	f.lights.failEntities["light-broken"] = true

	f.dispatch(t, CmdApplyColor, map[string]any{
		"preset_id": presetID,
		"entity_id": []any{"light-broken", "light-hall"},
	})

	// The healthy entity is still commanded.
	if len(f.lights.calls) != 1 || f.lights.calls[0].EntityID != "light-hall" {
		t.Fatalf("calls = %+v, want one call to light-hall", f.lights.calls)
	}
	if len(f.telemetry.applies) != 1 {
		t.Fatalf("got %d apply records, want 1", len(f.telemetry.applies))
	}
	rec := f.telemetry.applies[0]
	if rec.entities != 2 || rec.failures != 1 {
		t.Errorf("telemetry = %+v, want entities=2 failures=1", rec)
	}
}

func TestApplyColorBrightnessOnlyCarriesNoColor(t *testing.T) {
	f := newFixture(t)
	cat := f.dispatch(t, CmdSaveCategory, map[string]any{"name": "Plain"}).(*preset.Category)
	p := f.dispatch(t, CmdSavePreset, map[string]any{
		"category_id":    cat.ID,
		"name":           "Dim",
		"type":           "brightness_only",
		"brightness_pct": float64(20),
		"transition":     float64(1.5),
	}).(*preset.Preset)

	f.dispatch(t, CmdApplyColor, map[string]any{
		"preset_id": p.ID,
		"entity_id": []any{"light-hall"},
	})

	call := f.lights.calls[0]
	if call.RGBColor != nil || call.HSColor != nil || call.ColorTempKelvin != nil {
		t.Errorf("brightness_only call carries a colour field: %+v", call)
	}
	if call.Transition == nil || *call.Transition != 1.5 {
		t.Errorf("Transition = %v, want 1.5", call.Transition)
	}
}

func TestApplyColorEmitsEvent(t *testing.T) {
	f := newFixture(t)
	_, presetID := f.seedRGBPreset(t)
	f.events.events = nil

	f.dispatch(t, CmdApplyColor, map[string]any{
		"preset_id": presetID,
		"entity_id": []any{"light-hall"},
	})

	if len(f.events.events) != 1 || f.events.events[0].event != "preset.applied" {
		t.Errorf("events = %+v, want one preset.applied", f.events.events)
	}
}

func TestSavePresetRejectsOutOfRangeRGB(t *testing.T) {
	f := newFixture(t)
	cat := f.dispatch(t, CmdSaveCategory, map[string]any{"name": "Evening"}).(*preset.Category)

	_, err := f.router.Dispatch(context.Background(), CmdSavePreset, map[string]any{
		"category_id": cat.ID,
		"name":        "Bad",
		"type":        "rgb",
		"rgb_color":   []any{float64(300), float64(0), float64(0)},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Dispatch() error = %v, want *ValidationError", err)
	}
	if verr.Field != "rgb_color" {
		t.Errorf("Field = %q, want rgb_color", verr.Field)
	}

	// The rejection happened before the store: category is still empty.
	got, _ := f.store.FindCategory(context.Background(), cat.ID)
	if len(got.Presets) != 0 {
		t.Errorf("category has %d presets, want 0", len(got.Presets))
	}
}

func TestSavePresetRejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	cat := f.dispatch(t, CmdSaveCategory, map[string]any{"name": "Evening"}).(*preset.Category)

	_, err := f.router.Dispatch(context.Background(), CmdSavePreset, map[string]any{
		"category_id": cat.ID,
		"name":        "Bad",
		"type":        "xy",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Dispatch() error = %v, want *ValidationError", err)
	}
}

func TestSavePresetUnknownCategorySurfacesNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.router.Dispatch(context.Background(), CmdSavePreset, map[string]any{
		"category_id": "nope",
		"name":        "Warm",
		"type":        "brightness_only",
	})
	if !errors.Is(err, preset.ErrCategoryNotFound) {
		t.Errorf("Dispatch() error = %v, want ErrCategoryNotFound", err)
	}
}

func TestMutationsEmitDocumentChanged(t *testing.T) {
	f := newFixture(t)

	cat := f.dispatch(t, CmdSaveCategory, map[string]any{"name": "Evening"}).(*preset.Category)
	f.dispatch(t, CmdDeleteCategory, map[string]any{"category_id": cat.ID})

	if len(f.events.events) != 2 {
		t.Fatalf("got %d events, want 2", len(f.events.events))
	}
	for _, ev := range f.events.events {
		if ev.event != "document.changed" {
			t.Errorf("event = %q, want document.changed", ev.event)
		}
	}
	if f.telemetry.metrics != 2 {
		t.Errorf("document metrics = %d, want 2", f.telemetry.metrics)
	}
}

func TestDeletePresetReturnsNothing(t *testing.T) {
	f := newFixture(t)
	catID, presetID := f.seedRGBPreset(t)

	result := f.dispatch(t, CmdDeletePreset, map[string]any{
		"category_id": catID,
		"preset_id":   presetID,
	})
	if result != nil {
		t.Errorf("result = %v, want nil", result)
	}
	if _, err := f.store.GetPresetByID(context.Background(), presetID); !errors.Is(err, preset.ErrPresetNotFound) {
		t.Errorf("preset still resolvable after delete: %v", err)
	}
}
