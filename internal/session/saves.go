package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/angeleecka/linkapp/internal/model"
)

// Saves is the named-save facade over the registry: a mental model of "one
// current save with a name" for users who never think in sessions. It
// tracks the active name and upserts workspaces by name instead of id.
type Saves struct {
	reg *Registry
}

// NewSaves wraps a registry in the named-save facade.
func NewSaves(reg *Registry) *Saves {
	return &Saves{reg: reg}
}

// ActiveName returns the active save name, "" when the document is unsaved.
func (s *Saves) ActiveName(ctx context.Context) string {
	return s.reg.activeName(ctx)
}

// SetActiveName records name as the active save. Pass "" to mark the
// document unsaved.
func (s *Saves) SetActiveName(ctx context.Context, name string) {
	s.reg.setActiveName(ctx, name)
}

// List returns the live (non-deleted) sessions, newest activity first.
func (s *Saves) List(ctx context.Context) []*model.Session {
	var out []*model.Session
	for _, sess := range s.reg.read(ctx) {
		if !sess.Deleted() {
			out = append(out, sess)
		}
	}
	return sortByRecency(out)
}

// Upsert saves the current document under name. The name match is
// case-insensitive and spans all kinds; a matching snapshot is converted
// to a workspace in place. No match creates a new workspace. The name
// becomes the active save. Returns false only for a blank name.
func (s *Saves) Upsert(ctx context.Context, name string) bool {
	target := strings.TrimSpace(name)
	if target == "" {
		return false
	}

	sessions := s.reg.read(ctx)
	var existing *model.Session
	for _, sess := range sessions {
		if strings.EqualFold(sess.Name, target) {
			existing = sess
			break
		}
	}

	if existing != nil {
		existing.Kind = model.KindWorkspace
		existing.Data = s.reg.docs.Get().Clone()
		existing.UpdatedAt = model.NowMillis()
		s.reg.write(ctx, sessions)
		s.reg.setActiveName(ctx, target)
		s.reg.bus.Success(fmt.Sprintf("Saved to %q", target))
		return true
	}

	s.reg.Save(ctx, target, model.KindWorkspace)
	s.reg.setActiveName(ctx, target)
	return true
}

// SaveActive re-saves under the active name. Returns false when no name is
// active.
func (s *Saves) SaveActive(ctx context.Context) bool {
	name := s.ActiveName(ctx)
	if name == "" {
		return false
	}
	return s.Upsert(ctx, name)
}

// OpenByName loads the live session whose name matches (case-insensitive)
// and makes it the active save. Soft-deleted sessions are not candidates.
// Returns false when no session matches.
func (s *Saves) OpenByName(ctx context.Context, name string) bool {
	for _, sess := range s.List(ctx) {
		if strings.EqualFold(sess.Name, strings.TrimSpace(name)) {
			s.reg.Load(ctx, sess.ID)
			s.reg.setActiveName(ctx, sess.Name)
			return true
		}
	}
	return false
}
