// app.go wires the core services together for the lifetime of one command.
//
// Design: the app opens lazily in PersistentPreRunE so commands that never
// touch the store (guide, help, completion) stay instant and work without a
// data directory. Opening waits for the full two-phase document load, so every
// command sees the final state including any platform override.

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/angeleecka/linkapp/internal/config"
	"github.com/angeleecka/linkapp/internal/edit"
	"github.com/angeleecka/linkapp/internal/event"
	"github.com/angeleecka/linkapp/internal/history"
	"github.com/angeleecka/linkapp/internal/log"
	"github.com/angeleecka/linkapp/internal/platform"
	"github.com/angeleecka/linkapp/internal/session"
	"github.com/angeleecka/linkapp/internal/storage"
	"github.com/angeleecka/linkapp/internal/store"
)

// DBFileName is the blob store file inside the data directory.
const DBFileName = "linkapp.db"

// app bundles the open services for one command invocation.
type app struct {
	dataDir string
	cfg     *config.Config
	kv      *store.Store
	bus     *event.Bus
	docs    *storage.Service
	reg     *session.Registry
	saves   *session.Saves
	editor  *edit.Editor
	trash   *history.Trash
}

// theApp is set by openApp and closed in Execute.
var theApp *app

// openApp resolves the data directory, opens the stores and loads the
// document. Safe to call more than once.
func openApp(ctx context.Context) (*app, error) {
	if theApp != nil {
		return theApp, nil
	}

	dataDir, err := config.DataDir(Dir())
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}

	// Audit log is best-effort; the app works without it.
	if err := log.Open(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	kv, err := store.Open(filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := kv.Init(); err != nil {
		kv.Close()
		return nil, fmt.Errorf("initialising store: %w", err)
	}

	bus := event.NewBus()
	bus.On(event.TypeUserMessage, printMessage)

	docs := storage.New(kv, platform.NewFile(dataDir), bus)
	<-docs.Init(ctx)

	reg := session.NewRegistry(kv, docs, bus)
	theApp = &app{
		dataDir: dataDir,
		cfg:     cfg,
		kv:      kv,
		bus:     bus,
		docs:    docs,
		reg:     reg,
		saves:   session.NewSaves(reg),
		editor:  edit.New(docs, bus, cfg.MaxButtons()),
		trash:   history.New(docs, bus),
	}
	return theApp, nil
}

// closeApp releases the store. Called once from Execute.
func closeApp() {
	if theApp == nil {
		return
	}
	if err := theApp.kv.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing store: %v\n", err)
	}
	log.Close()
	theApp = nil
}

// printMessage renders transient user messages on stderr, keeping stdout
// clean for command output and JSON.
func printMessage(e event.Event) {
	m := e.(event.UserMessage)
	fmt.Fprintf(os.Stderr, "%s: %s\n", m.Level, m.Text)
}
