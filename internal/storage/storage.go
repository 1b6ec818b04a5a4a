// Package storage implements the document store: it owns the live document,
// the schema-migration routine, the dual-phase load protocol, and
// save/export/import/reset.
//
// Load protocol: phase A reads the local blob store synchronously so a shell
// can render immediately; phase B consults the platform adapter on a
// goroutine and replaces the document only when the mirrored state is
// structurally different. Both phases produce a valid document, so reads
// during the override window are safe.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/angeleecka/linkapp/internal/event"
	"github.com/angeleecka/linkapp/internal/log"
	"github.com/angeleecka/linkapp/internal/model"
	"github.com/angeleecka/linkapp/internal/platform"
	"github.com/angeleecka/linkapp/internal/store"
)

// ErrInvalidImport is returned when an import payload has no pages array.
var ErrInvalidImport = errors.New("invalid data structure: 'pages' array not found")

// Service owns the live document. All mutation goes through Update; the
// mutex exists only because the phase-B platform override runs on a
// goroutine, every other operation is a synchronous read-modify-write.
type Service struct {
	mu      sync.Mutex
	doc     *model.Document
	kv      *store.Store
	adapter platform.Adapter
	bus     *event.Bus
}

// New creates a document store over the given blob store and platform
// adapter. Call Init before anything else.
func New(kv *store.Store, adapter platform.Adapter, bus *event.Bus) *Service {
	return &Service{kv: kv, adapter: adapter, bus: bus}
}

// Init loads the document. Phase A runs synchronously: parse the local blob
// (falling back to the default document on a missing or corrupt blob),
// migrate, persist, and emit data:loaded. Phase B runs on a goroutine: if
// the platform adapter holds different state, it wins - replace, migrate,
// persist, emit data:loaded again. The returned channel closes when phase B
// has settled, for callers that need the final state (the CLI does; a GUI
// shell would just re-render on the second data:loaded).
func (s *Service) Init(ctx context.Context) <-chan struct{} {
	s.mu.Lock()

	loaded := false
	if text, ok, err := s.kv.Get(ctx, store.KeyData); err != nil {
		log.Event("storage:init", "load").Detail("phase", "local").Write(err)
	} else if ok {
		var doc model.Document
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			log.Event("storage:init", "load").Detail("phase", "local").Write(err)
		} else {
			s.doc = &doc
			Migrate(s.doc)
			loaded = true
		}
	}
	if !loaded {
		s.doc = model.DefaultDocument()
		log.Event("storage:init", "load").Detail("fallback", "defaults").Write(nil)
	}

	s.saveLocked(ctx)
	doc := s.doc
	s.mu.Unlock()

	s.bus.Emit(event.DataLoaded{Doc: doc})

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.platformOverride(ctx)
	}()
	return done
}

// platformOverride applies phase B of the load protocol. Failures are
// logged and ignored - a broken platform mirror must never crash the app or
// clear existing state.
func (s *Service) platformOverride(ctx context.Context) {
	text, err := s.adapter.Load(ctx)
	if err != nil {
		log.Event("storage:init", "load").Detail("phase", "platform").Write(err)
		return
	}
	if text == "" {
		return
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		log.Event("storage:init", "load").Detail("phase", "platform").Write(err)
		return
	}

	s.mu.Lock()
	if doc.Equal(s.doc) {
		s.mu.Unlock()
		return
	}
	s.doc = &doc
	Migrate(s.doc)
	s.saveLocked(ctx)
	current := s.doc
	s.mu.Unlock()

	log.Event("storage:init", "load").Detail("phase", "platform").Detail("override", true).Write(nil)
	s.bus.Emit(event.DataLoaded{Doc: current})
}

// Get returns the live document for read access. Callers must not mutate it
// directly; use Update.
func (s *Service) Get() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Update is the sole sanctioned mutation path. The mutator may edit the
// document in place; on success the document is persisted and data:updated
// fires exactly once. If the mutator returns an error there is no rollback:
// the document keeps whatever partial state the mutator produced, the error
// is logged and surfaced as a user message, and the partial state will be
// persisted by the next successful save. This lenient behaviour is
// deliberate and matches the historical semantics.
func (s *Service) Update(ctx context.Context, fn func(*model.Document) error) error {
	s.mu.Lock()
	if err := fn(s.doc); err != nil {
		s.mu.Unlock()
		log.Event("storage:update", "update").Write(err)
		s.bus.Error("Failed to update data")
		return err
	}
	s.saveLocked(ctx)
	doc := s.doc
	s.mu.Unlock()

	s.bus.Emit(event.DataUpdated{Doc: doc})
	return nil
}

// Save persists the current document to the local blob store and forwards
// the same text to the platform adapter. Both writes are best-effort:
// failures are logged, never propagated, because save runs on every
// mutation path and a persistence hiccup must not fail the user's edit.
func (s *Service) Save(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveLocked(ctx)
}

func (s *Service) saveLocked(ctx context.Context) {
	text, err := json.Marshal(s.doc)
	if err != nil {
		log.Event("storage:save", "save").Write(err)
		return
	}
	if err := s.kv.Put(ctx, store.KeyData, string(text)); err != nil {
		log.Event("storage:save", "save").Detail("target", "local").Write(err)
	}
	if err := s.adapter.Save(ctx, string(text)); err != nil {
		log.Event("storage:save", "save").Detail("target", "platform").Write(err)
	}
}

// ExportJSON returns a pretty-printed serialisation of the current
// document, or an error (also surfaced as a user message).
func (s *Service) ExportJSON() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		s.bus.Error("Failed to export data")
		return "", fmt.Errorf("exporting data: %w", err)
	}
	return string(text), nil
}

// ImportJSON replaces the document wholesale with the parsed payload. The
// payload must contain a pages array; anything else is rejected without
// touching current state. On success the document is migrated,
// currentPageIndex resets to 0, and data:loaded plus data:updated fire
// (distinct listener groups key off the two events).
func (s *Service) ImportJSON(ctx context.Context, text string) error {
	var doc model.Document
	err := json.Unmarshal([]byte(text), &doc)
	if err == nil && doc.Pages == nil {
		err = ErrInvalidImport
	}
	if err != nil {
		log.Event("storage:import", "import").Write(err)
		s.bus.Error("Failed to import data: " + err.Error())
		return err
	}

	s.mu.Lock()
	s.doc = &doc
	Migrate(s.doc)
	s.doc.CurrentPageIndex = 0
	s.saveLocked(ctx)
	current := s.doc
	s.mu.Unlock()

	log.Event("storage:import", "import").Detail("pages", len(current.Pages)).Write(nil)
	s.bus.Emit(event.DataLoaded{Doc: current})
	s.bus.Emit(event.DataUpdated{Doc: current})
	s.bus.Success("Data imported successfully!")
	return nil
}

// Reset replaces the document with a fresh default.
func (s *Service) Reset(ctx context.Context) {
	s.mu.Lock()
	s.doc = model.DefaultDocument()
	s.saveLocked(ctx)
	doc := s.doc
	s.mu.Unlock()

	log.Event("storage:reset", "reset").Write(nil)
	s.bus.Emit(event.DataLoaded{Doc: doc})
	s.bus.Emit(event.DataUpdated{Doc: doc})
	s.bus.Info("Data reset to defaults")
}

// Replace installs doc as the live document (the caller passes ownership of
// a deep copy), migrates it, persists, and fires data:updated then
// data:loaded. Used by the session registry when loading a session.
func (s *Service) Replace(ctx context.Context, doc *model.Document) {
	s.mu.Lock()
	s.doc = doc
	Migrate(s.doc)
	s.saveLocked(ctx)
	current := s.doc
	s.mu.Unlock()

	s.bus.Emit(event.DataUpdated{Doc: current})
	s.bus.Emit(event.DataLoaded{Doc: current})
}
