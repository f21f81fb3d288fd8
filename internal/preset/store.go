package preset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// StorageKey is the repository key the preset document lives under.
const StorageKey = "light_presets"

// DefaultCategoryName is the category seeded into a fresh document.
const DefaultCategoryName = "Default"

// Logger is the minimal logging interface the store needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Store owns the preset document. It keeps the document in memory and
// writes it back through the repository after every mutation, so a
// successful return from any mutating method implies the change is
// durable.
//
// All public methods are thread-safe. Reads return deep copies; callers
// can never mutate the store's state through a returned value.
type Store struct {
	mu     sync.Mutex
	repo   Repository
	key    string
	doc    *Document
	logger Logger
}

// NewStore creates a store over the given repository. Call Load before
// any other method.
func NewStore(repo Repository) *Store {
	return &Store{
		repo:   repo,
		key:    StorageKey,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the store.
func (s *Store) SetLogger(logger Logger) {
	s.logger = logger
}

// Load reads the document from the repository. When no document exists
// yet it seeds one containing a single empty category named "Default"
// and persists it immediately, so first boot and every later boot leave
// the store in the same shape.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.repo.Load(ctx, s.key)
	if errors.Is(err, ErrNoDocument) {
		s.doc = seedDocument()
		if err := s.persistLocked(ctx); err != nil {
			s.doc = nil
			return err
		}
		s.logger.Info("seeded preset document", "category", DefaultCategoryName)
		return nil
	}
	if err != nil {
		return err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding document %s: %w", s.key, err)
	}
	if doc.Version != DocumentVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, doc.Version, DocumentVersion)
	}

	s.doc = &doc
	s.logger.Info("loaded preset document", "categories", len(doc.Categories))
	return nil
}

// GetAll returns a deep copy of the whole document.
func (s *Store) GetAll(_ context.Context) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	return s.doc.DeepCopy(), nil
}

// FindCategory returns a deep copy of the category with the given id.
func (s *Store) FindCategory(_ context.Context, id string) (*Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	cat := s.findCategoryLocked(id)
	if cat == nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}
	return cat.DeepCopy(), nil
}

// FindPreset returns a deep copy of the preset with the given id inside
// the given category.
func (s *Store) FindPreset(_ context.Context, categoryID, presetID string) (*Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	cat := s.findCategoryLocked(categoryID)
	if cat == nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}
	for i := range cat.Presets {
		if cat.Presets[i].ID == presetID {
			return cat.Presets[i].DeepCopy(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, presetID)
}

// GetPresetByID searches every category for the preset with the given
// id and returns a deep copy of the first match.
func (s *Store) GetPresetByID(_ context.Context, presetID string) (*Preset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	for ci := range s.doc.Categories {
		presets := s.doc.Categories[ci].Presets
		for pi := range presets {
			if presets[pi].ID == presetID {
				return presets[pi].DeepCopy(), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, presetID)
}

// SaveCategory creates or renames a category and persists the document.
// An empty id means create: a fresh id is generated and, when order is
// nil, the category is appended after the existing ones. For an
// existing id only the supplied fields change.
func (s *Store) SaveCategory(ctx context.Context, id, name string, order *int) (*Category, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}

	var cat *Category
	if id == "" {
		s.doc.Categories = append(s.doc.Categories, Category{
			ID:      NewID(),
			Name:    name,
			Order:   len(s.doc.Categories),
			Presets: []Preset{},
		})
		cat = &s.doc.Categories[len(s.doc.Categories)-1]
		if order != nil {
			cat.Order = *order
		}
	} else {
		cat = s.findCategoryLocked(id)
		if cat == nil {
			return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
		}
		cat.Name = name
		if order != nil {
			cat.Order = *order
		}
	}

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("saved category", "category_id", cat.ID, "name", cat.Name)
	return cat.DeepCopy(), nil
}

// DeleteCategory removes a category and every preset inside it, then
// persists the document. Deleting an id that does not exist is a no-op
// that still persists.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}

	kept := s.doc.Categories[:0]
	removed := false
	for _, cat := range s.doc.Categories {
		if cat.ID == id {
			removed = true
			continue
		}
		kept = append(kept, cat)
	}
	s.doc.Categories = kept

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	if removed {
		s.logger.Info("deleted category", "category_id", id)
	} else {
		s.logger.Debug("delete of unknown category was a no-op", "category_id", id)
	}
	return nil
}

// SavePreset creates or updates a preset inside a category and persists
// the document. An empty preset id means create: a fresh id is
// generated and, when the patch carries no order, the preset is
// appended after the category's existing ones. For an existing id only
// the fields the patch supplies change.
func (s *Store) SavePreset(ctx context.Context, categoryID, presetID string, patch Patch) (*Preset, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}
	cat := s.findCategoryLocked(categoryID)
	if cat == nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}

	var p *Preset
	if presetID == "" {
		cat.Presets = append(cat.Presets, Preset{
			ID:    NewID(),
			Order: len(cat.Presets),
		})
		p = &cat.Presets[len(cat.Presets)-1]
	} else {
		for i := range cat.Presets {
			if cat.Presets[i].ID == presetID {
				p = &cat.Presets[i]
				break
			}
		}
		if p == nil {
			return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, presetID)
		}
	}

	applyPatch(p, patch)

	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("saved preset",
		"category_id", categoryID, "preset_id", p.ID, "name", p.Name, "type", p.Type)
	return p.DeepCopy(), nil
}

// DeletePreset removes a preset from a category and persists the
// document. The category must exist; deleting a preset id that does not
// exist inside it is a no-op that still persists.
func (s *Store) DeletePreset(ctx context.Context, categoryID, presetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	cat := s.findCategoryLocked(categoryID)
	if cat == nil {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}

	kept := cat.Presets[:0]
	removed := false
	for _, p := range cat.Presets {
		if p.ID == presetID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	cat.Presets = kept

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	if removed {
		s.logger.Info("deleted preset", "category_id", categoryID, "preset_id", presetID)
	} else {
		s.logger.Debug("delete of unknown preset was a no-op",
			"category_id", categoryID, "preset_id", presetID)
	}
	return nil
}

// findCategoryLocked returns a pointer into the live document. The
// caller must hold s.mu.
func (s *Store) findCategoryLocked(id string) *Category {
	for i := range s.doc.Categories {
		if s.doc.Categories[i].ID == id {
			return &s.doc.Categories[i]
		}
	}
	return nil
}

// persistLocked writes the full document through the repository. The
// caller must hold s.mu. On failure the in-memory document may be ahead
// of the persisted one until a later mutation persists successfully.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", s.key, err)
	}
	if err := s.repo.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("persisting document: %w", err)
	}
	return nil
}

func seedDocument() *Document {
	return &Document{
		Version: DocumentVersion,
		Categories: []Category{
			{
				ID:      NewID(),
				Name:    DefaultCategoryName,
				Order:   0,
				Presets: []Preset{},
			},
		},
	}
}

// applyPatch overwrites only the fields the patch supplies.
func applyPatch(p *Preset, patch Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.Order != nil {
		p.Order = *patch.Order
	}
	if patch.BrightnessPct != nil {
		p.BrightnessPct = copyIntPtr(patch.BrightnessPct)
	}
	if patch.Transition != nil {
		p.Transition = copyFloatPtr(patch.Transition)
	}
	if patch.ColorTempKelvin != nil {
		p.ColorTempKelvin = copyIntPtr(patch.ColorTempKelvin)
	}
	if patch.RGBColor != nil {
		rgb := *patch.RGBColor
		p.RGBColor = &rgb
	}
	if patch.HSColor != nil {
		hs := *patch.HSColor
		p.HSColor = &hs
	}
}
