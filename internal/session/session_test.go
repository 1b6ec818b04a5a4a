package session_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/angeleecka/linkapp/internal/event"
	"github.com/angeleecka/linkapp/internal/model"
	"github.com/angeleecka/linkapp/internal/platform"
	"github.com/angeleecka/linkapp/internal/session"
	"github.com/angeleecka/linkapp/internal/storage"
	"github.com/angeleecka/linkapp/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	reg   *session.Registry
	saves *session.Saves
	docs  *storage.Service
	kv    *store.Store
	bus   *event.Bus

	changed  int
	active   []string
	messages []event.UserMessage
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	kv, err := store.Open(filepath.Join(t.TempDir(), "linkapp.db"))
	require.NoError(t, err)
	require.NoError(t, kv.Init())
	t.Cleanup(func() { kv.Close() })

	env := &testEnv{kv: kv, bus: event.NewBus()}
	env.bus.On(event.TypeSessionsChanged, func(event.Event) { env.changed++ })
	env.bus.On(event.TypeActiveNameChanged, func(e event.Event) {
		env.active = append(env.active, e.(event.ActiveNameChanged).Name)
	})
	env.bus.On(event.TypeUserMessage, func(e event.Event) {
		env.messages = append(env.messages, e.(event.UserMessage))
	})

	env.docs = storage.New(kv, platform.Noop{}, env.bus)
	<-env.docs.Init(context.Background())

	env.reg = session.NewRegistry(kv, env.docs, env.bus)
	env.saves = session.NewSaves(env.reg)
	return env
}

func TestSave_SnapshotsAreIsolated(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	id := env.reg.Save(ctx, "work", model.KindWorkspace)
	require.NotEmpty(t, id)

	// Mutate the live document after saving.
	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "Mutated"
		return nil
	}))

	s := env.reg.Get(ctx, id)
	require.NotNil(t, s)
	assert.Equal(t, "Page 1", s.Data.Pages[0].Name, "session must hold a deep copy")
	assert.Equal(t, "work", s.Name)
	assert.Equal(t, model.KindWorkspace, s.Kind)
	assert.Equal(t, 1, env.changed)
}

func TestSave_BlankNameGetsDefault(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	id := env.reg.Save(ctx, "  ", model.KindSnapshot)
	s := env.reg.Get(ctx, id)
	require.NotNil(t, s)
	assert.Contains(t, s.Name, "Snapshot ")
}

func TestSave_IDsAreUnique(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	a := env.reg.Save(ctx, "a", model.KindSnapshot)
	b := env.reg.Save(ctx, "b", model.KindSnapshot)
	assert.NotEqual(t, a, b)
}

func TestList_SoftDeleteFiltering(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	ws := env.reg.Save(ctx, "workspace", model.KindWorkspace)
	snap := env.reg.Save(ctx, "snapshot", model.KindSnapshot)
	require.True(t, env.reg.Delete(ctx, snap))

	// List shows everything, deleted included.
	assert.Len(t, env.reg.List(ctx), 2)
	// Kind-filtered lists hide soft-deleted entries.
	assert.Empty(t, env.reg.ListSnapshots(ctx))
	workspaces := env.reg.ListWorkspaces(ctx)
	require.Len(t, workspaces, 1)
	assert.Equal(t, ws, workspaces[0].ID)
}

func TestListByKind_MissingKindCountsAsWorkspace(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	// Seed a legacy entry with no recorded kind.
	blob := `{"sess-1":{"id":"sess-1","name":"legacy","createdAt":1,"updatedAt":1,"data":null}}`
	require.NoError(t, env.kv.Put(ctx, store.KeySessions, blob))

	all := env.reg.ListWorkspaces(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, "legacy", all[0].Name)
	assert.Empty(t, env.reg.ListSnapshots(ctx))
}

func TestRename(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	id := env.reg.Save(ctx, "old", model.KindWorkspace)
	require.True(t, env.reg.Rename(ctx, id, "new"))
	assert.Equal(t, "new", env.reg.Get(ctx, id).Name)

	// Blank new name keeps the old one.
	require.True(t, env.reg.Rename(ctx, id, "   "))
	assert.Equal(t, "new", env.reg.Get(ctx, id).Name)

	assert.False(t, env.reg.Rename(ctx, "sess-0", "x"))
}

func TestLoad(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "Before"
		return nil
	}))
	id := env.reg.Save(ctx, "checkpoint", model.KindSnapshot)

	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "After"
		return nil
	}))

	require.True(t, env.reg.Load(ctx, id))
	assert.Equal(t, "Before", env.docs.Get().Pages[0].Name)
	assert.Equal(t, "checkpoint", env.saves.ActiveName(ctx))
}

func TestLoad_UnknownID(t *testing.T) {
	env := newEnv(t)
	env.messages = nil

	assert.False(t, env.reg.Load(context.Background(), "sess-0"))
	require.NotEmpty(t, env.messages)
	assert.Equal(t, event.LevelError, env.messages[0].Level)
	assert.Equal(t, "Session not found", env.messages[0].Text)
}

func TestRestoreToWorkspace(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "Golden"
		return nil
	}))
	snap := env.reg.Save(ctx, "golden", model.KindSnapshot)

	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "Drifted"
		return nil
	}))

	newID := env.reg.RestoreToWorkspace(ctx, snap, "")
	require.NotEmpty(t, newID)
	assert.NotEqual(t, snap, newID)

	created := env.reg.Get(ctx, newID)
	require.NotNil(t, created)
	assert.Equal(t, model.KindWorkspace, created.Kind)
	assert.Contains(t, created.Name, "golden (restored ")
	assert.Equal(t, "Golden", created.Data.Pages[0].Name)

	// The restored workspace was loaded immediately.
	assert.Equal(t, "Golden", env.docs.Get().Pages[0].Name)
	assert.Equal(t, created.Name, env.saves.ActiveName(ctx))
}

func TestRestoreToWorkspace_UnknownID(t *testing.T) {
	env := newEnv(t)
	assert.Empty(t, env.reg.RestoreToWorkspace(context.Background(), "sess-0", ""))
}

func TestUpsert_CreatesWorkspace(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	require.True(t, env.saves.Upsert(ctx, "my links"))
	workspaces := env.reg.ListWorkspaces(ctx)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "my links", workspaces[0].Name)
	assert.Equal(t, "my links", env.saves.ActiveName(ctx))

	assert.False(t, env.saves.Upsert(ctx, "   "))
}

func TestUpsert_OverwritesCaseInsensitive(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	env.reg.Save(ctx, "My Links", model.KindSnapshot)

	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "Fresh"
		return nil
	}))
	require.True(t, env.saves.Upsert(ctx, "my links"))

	all := env.reg.List(ctx)
	require.Len(t, all, 1, "upsert must overwrite, not duplicate")
	// A matched snapshot is converted to a workspace in place.
	assert.Equal(t, model.KindWorkspace, all[0].Kind)
	assert.Equal(t, "My Links", all[0].Name)
	assert.Equal(t, "Fresh", all[0].Data.Pages[0].Name)
}

func TestSaveActive(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	assert.False(t, env.saves.SaveActive(ctx), "no active name yet")

	require.True(t, env.saves.Upsert(ctx, "daily"))
	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "Edited"
		return nil
	}))

	require.True(t, env.saves.SaveActive(ctx))
	workspaces := env.reg.ListWorkspaces(ctx)
	require.Len(t, workspaces, 1)
	assert.Equal(t, "Edited", workspaces[0].Data.Pages[0].Name)
}

func TestOpenByName(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "Saved state"
		return nil
	}))
	env.reg.Save(ctx, "Project", model.KindWorkspace)

	require.NoError(t, env.docs.Update(ctx, func(d *model.Document) error {
		d.Pages[0].Name = "Other"
		return nil
	}))

	require.True(t, env.saves.OpenByName(ctx, "project"))
	assert.Equal(t, "Saved state", env.docs.Get().Pages[0].Name)
	assert.Equal(t, "Project", env.saves.ActiveName(ctx))

	assert.False(t, env.saves.OpenByName(ctx, "nope"))
}

func TestOpenByName_SkipsSoftDeleted(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	id := env.reg.Save(ctx, "ghost", model.KindWorkspace)
	require.True(t, env.reg.Delete(ctx, id))

	current := env.docs.Get().Pages[0].Name
	assert.False(t, env.saves.OpenByName(ctx, "ghost"))
	assert.Equal(t, current, env.docs.Get().Pages[0].Name)
	assert.Empty(t, env.saves.ActiveName(ctx))
}
