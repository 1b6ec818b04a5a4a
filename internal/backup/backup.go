// Package backup moves the whole document between the store and JSON files
// on disk.
package backup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/angeleecka/linkapp/internal/log"
	"github.com/angeleecka/linkapp/internal/storage"
)

// DefaultFileName returns the date-stamped default backup file name.
func DefaultFileName() string {
	return fmt.Sprintf("linkapp-backup-%s.json", time.Now().Format("2006-01-02"))
}

// Export writes the current document as pretty JSON to path. An empty path
// uses DefaultFileName in the working directory. Returns the path written.
func Export(_ context.Context, docs *storage.Service, path string) (string, error) {
	if path == "" {
		path = DefaultFileName()
	}

	text, err := docs.ExportJSON()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		log.Event("backup", "export").Name(path).Write(err)
		return "", fmt.Errorf("writing backup: %w", err)
	}

	log.Event("backup", "export").Name(path).Write(nil)
	return path, nil
}

// Import reads a JSON backup file and loads it as the current document.
// Validation and state replacement happen in the document store; a rejected
// payload leaves current state untouched.
func Import(ctx context.Context, docs *storage.Service, path string) error {
	text, err := os.ReadFile(path)
	if err != nil {
		log.Event("backup", "import").Name(path).Write(err)
		return fmt.Errorf("reading backup: %w", err)
	}
	if err := docs.ImportJSON(ctx, string(text)); err != nil {
		return err
	}

	log.Event("backup", "import").Name(path).Write(nil)
	return nil
}
