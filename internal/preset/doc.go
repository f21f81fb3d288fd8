// Package preset provides the preset store for Lumen Core.
//
// Presets are named bundles of light attributes (brightness, optional
// transition time, and one colour-mode-specific descriptor) organised
// into ordered categories. The whole tree is held in memory as a single
// document and written back to the repository after every mutation.
//
// # Key Types
//
//   - Document: The persisted root - version stamp plus all categories
//   - Category: Named ordered grouping of presets
//   - Preset: Named bundle of light attributes with a colour mode
//   - Patch: Partial preset update (only supplied fields overwrite)
//   - Store: Owner of the document; all reads and writes go through it
//   - Repository: Key-value persistence (SQLite-backed in production)
//
// # Persistence Discipline
//
// Every mutating call persists the full document before returning, so a
// successful return implies durability. There is no batching or dirty
// tracking. Deletes of missing ids are no-ops that still persist.
//
// # Usage
//
//	repo := preset.NewSQLiteRepository(db.DB)
//	store := preset.NewStore(repo)
//	store.SetLogger(log)
//
//	if err := store.Load(ctx); err != nil {
//	    return err
//	}
//
//	cat, err := store.SaveCategory(ctx, "", "Evening", nil)
package preset
