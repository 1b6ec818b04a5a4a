// Package session implements the session registry (workspaces and
// snapshots) and the named-save facade layered on top of it.
//
// Sessions are full document snapshots stored as one JSON object map under
// a single blob key; every operation is a read-modify-write of the whole
// map. That is deliberate: the collection is small (tens of entries) and
// whole-map writes keep the blob consistent without any partial-update
// machinery.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/angeleecka/linkapp/internal/event"
	"github.com/angeleecka/linkapp/internal/log"
	"github.com/angeleecka/linkapp/internal/model"
	"github.com/angeleecka/linkapp/internal/storage"
	"github.com/angeleecka/linkapp/internal/store"
)

// Registry manages the persisted session collection. All methods are
// tolerant the way the rest of the persistence layer is: a corrupt or
// missing collection reads as empty, and write failures surface as user
// messages rather than hard errors.
type Registry struct {
	kv   *store.Store
	docs *storage.Service
	bus  *event.Bus
}

// NewRegistry creates a session registry over the given blob store and
// document store.
func NewRegistry(kv *store.Store, docs *storage.Service, bus *event.Bus) *Registry {
	return &Registry{kv: kv, docs: docs, bus: bus}
}

// read loads the session map. Missing or corrupt blobs read as empty.
func (r *Registry) read(ctx context.Context) map[string]*model.Session {
	text, ok, err := r.kv.Get(ctx, store.KeySessions)
	if err != nil || !ok {
		if err != nil {
			log.Event("sessions", "read").Write(err)
		}
		return map[string]*model.Session{}
	}
	sessions := map[string]*model.Session{}
	if err := json.Unmarshal([]byte(text), &sessions); err != nil {
		log.Event("sessions", "read").Write(err)
		return map[string]*model.Session{}
	}
	return sessions
}

// write persists the session map and announces the change. Failures are
// logged and surfaced as a user message.
func (r *Registry) write(ctx context.Context, sessions map[string]*model.Session) {
	text, err := json.Marshal(sessions)
	if err == nil {
		err = r.kv.Put(ctx, store.KeySessions, string(text))
	}
	if err != nil {
		log.Event("sessions", "write").Write(err)
		r.bus.Error("Failed to save session list")
		return
	}
	r.bus.Emit(event.SessionsChanged{})
}

// Save snapshots the current document under a new session. A blank name
// gets a timestamped default. Returns the new session id.
func (r *Registry) Save(ctx context.Context, name, kind string) string {
	sessions := r.read(ctx)

	ms := model.NowMillis()
	id := fmt.Sprintf("sess-%d", ms)
	for sessions[id] != nil {
		ms++
		id = fmt.Sprintf("sess-%d", ms)
	}

	title := strings.TrimSpace(name)
	if title == "" {
		stamp := time.Now().Format("2006-01-02 15:04:05")
		if kind == model.KindSnapshot {
			title = "Snapshot " + stamp
		} else {
			title = "Workspace " + stamp
		}
	}

	sessions[id] = &model.Session{
		ID:        id,
		Kind:      kind,
		Name:      title,
		CreatedAt: ms,
		UpdatedAt: ms,
		Data:      r.docs.Get().Clone(),
	}
	r.write(ctx, sessions)

	log.Event("sessions", "save").Name(title).Kind(kind).Write(nil)
	if kind == model.KindSnapshot {
		r.bus.Success("Snapshot created")
	} else {
		r.bus.Success("Workspace saved")
	}
	return id
}

// List returns every session, soft-deleted entries included, newest
// activity first.
func (r *Registry) List(ctx context.Context) []*model.Session {
	return sortByRecency(values(r.read(ctx)))
}

// ListByKind returns the live (non-deleted) sessions of one kind, newest
// activity first. Entries with no recorded kind count as workspaces.
func (r *Registry) ListByKind(ctx context.Context, kind string) []*model.Session {
	var out []*model.Session
	for _, s := range r.read(ctx) {
		k := s.Kind
		if k == "" {
			k = model.KindWorkspace
		}
		if !s.Deleted() && k == kind {
			out = append(out, s)
		}
	}
	return sortByRecency(out)
}

// ListWorkspaces returns the live workspace sessions.
func (r *Registry) ListWorkspaces(ctx context.Context) []*model.Session {
	return r.ListByKind(ctx, model.KindWorkspace)
}

// ListSnapshots returns the live snapshot sessions.
func (r *Registry) ListSnapshots(ctx context.Context) []*model.Session {
	return r.ListByKind(ctx, model.KindSnapshot)
}

// Get returns one session by id, or nil.
func (r *Registry) Get(ctx context.Context, id string) *model.Session {
	return r.read(ctx)[id]
}

// Rename changes a session's name and bumps its activity time. A blank new
// name keeps the old one. Returns false when the id is unknown.
func (r *Registry) Rename(ctx context.Context, id, newName string) bool {
	sessions := r.read(ctx)
	s := sessions[id]
	if s == nil {
		return false
	}
	if name := strings.TrimSpace(newName); name != "" {
		s.Name = name
	}
	s.UpdatedAt = model.NowMillis()
	r.write(ctx, sessions)
	r.bus.Info("Session renamed")
	return true
}

// Delete soft-deletes a session. The entry stays in the collection with a
// deletion timestamp so List still shows it; the kind-filtered lists hide
// it. Returns false when the id is unknown.
func (r *Registry) Delete(ctx context.Context, id string) bool {
	sessions := r.read(ctx)
	s := sessions[id]
	if s == nil {
		return false
	}
	s.DeletedAt = model.NowMillis()
	r.write(ctx, sessions)
	r.bus.Info("Moved to trash")
	return true
}

// Load replaces the current document with a deep copy of the session's
// snapshot, records the session name as the active save name, and
// persists. Returns false when the id is unknown.
func (r *Registry) Load(ctx context.Context, id string) bool {
	s := r.read(ctx)[id]
	if s == nil {
		r.bus.Error("Session not found")
		return false
	}

	r.docs.Replace(ctx, s.Data.Clone())
	r.setActiveName(ctx, s.Name)

	log.Event("sessions", "load").Name(s.Name).Kind(s.Kind).Write(nil)
	r.bus.Success("Session loaded: " + s.Name)
	return true
}

// RestoreToWorkspace copies a session's snapshot into a brand-new workspace
// session and immediately loads it. The new workspace is named newName, or
// "<original> (restored <date>)" when blank. Returns the new id, or ""
// when the source id is unknown.
func (r *Registry) RestoreToWorkspace(ctx context.Context, id, newName string) string {
	sessions := r.read(ctx)
	src := sessions[id]
	if src == nil {
		r.bus.Error("Snapshot not found")
		return ""
	}

	title := strings.TrimSpace(newName)
	if title == "" {
		title = fmt.Sprintf("%s (restored %s)", src.Name, time.Now().Format("2006-01-02"))
	}

	newID := r.Save(ctx, title, model.KindWorkspace)

	// Replace the freshly minted workspace's data with the source snapshot.
	sessions = r.read(ctx)
	if created := sessions[newID]; created != nil {
		now := model.NowMillis()
		created.Data = src.Data.Clone()
		created.CreatedAt = now
		created.UpdatedAt = now
		r.write(ctx, sessions)

		r.setActiveName(ctx, title)
		r.Load(ctx, newID)
	}
	return newID
}

// setActiveName persists the active save name and announces the change.
func (r *Registry) setActiveName(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if err := r.kv.Put(ctx, store.KeyActiveSave, name); err != nil {
		log.Event("saves", "set-active").Name(name).Write(err)
	}
	r.bus.Emit(event.ActiveNameChanged{Name: name})
}

// activeName reads the persisted active save name, "" when unset.
func (r *Registry) activeName(ctx context.Context) string {
	text, _, err := r.kv.Get(ctx, store.KeyActiveSave)
	if err != nil {
		log.Event("saves", "get-active").Write(err)
		return ""
	}
	return text
}

func values(m map[string]*model.Session) []*model.Session {
	out := make([]*model.Session, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	return out
}

// sortByRecency orders newest activity first, with the id as a
// deterministic tie-break.
func sortByRecency(sessions []*model.Session) []*model.Session {
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].UpdatedAt != sessions[j].UpdatedAt {
			return sessions[i].UpdatedAt > sessions[j].UpdatedAt
		}
		return sessions[i].ID > sessions[j].ID
	})
	return sessions
}
