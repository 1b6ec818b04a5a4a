// Package log provides best-effort audit logging for linkapp operations.
// Entries are stored in <data-dir>/log/linkapp-log.db and track CLI commands
// and MCP tool invocations.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("sessions:save", "save").
//		Name(name).
//		Kind(model.KindWorkspace).
//		Write(err)
//
//	log.Event("storage:import", "import").
//		Detail("bytes", len(text)).
//		Write(err)
//
// The source parameter follows the format "{group}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "storage:init",
// "sessions:load", "mcp:linkapp_save".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g. "sessions:save", "mcp:linkapp_find"
	Action string // verb: init, save, load, delete, restore, ...
	Name   string // target: session name/id, page name, file path
	Kind   string // workspace/snapshot/button/section where applicable

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API. Create with [Event],
// chain methods to set fields, then call [Builder.Write].
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Name sets the target of the operation (a session name or id, a page name,
// a backup file path).
func (b *Builder) Name(name string) *Builder {
	b.entry.Name = name
	return b
}

// Kind sets the target kind where one applies (workspace, snapshot, button,
// section).
func (b *Builder) Kind(kind string) *Builder {
	b.entry.Kind = kind
	return b
}

// Detail adds a key-value pair to the log entry's detail map. Can be called
// multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err. If err is
// nil the entry is logged as successful; otherwise as failed with the error
// message.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger for the given data directory. Safe to
// call multiple times. Errors are returned but callers may choose to ignore
// them (best-effort logging).
func Open(dataDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath(dataDir)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db, path: p, profile: hash(dataDir)}
	return nil
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
