package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"todo-screen/model"
)

const (
	exportName         = "todo-export.json"
	maxRotatingBackups = 10
)

// ExportPath returns the export file inside dir. The name is fixed so
// repeated exports replace each other and feed the backup rotation.
func ExportPath(dir string) string {
	return filepath.Join(dir, exportName)
}

// Export writes a snapshot as indented JSON using a temporary file and an
// atomic rename. An existing file at path is kept as path.bak plus a
// rotating timestamped backup.
//
// Exports are write-only; nothing reads them back into a screen.
func Export(path string, snap model.Snapshot) error {
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	if err := rotatePrevious(path, time.Now()); err != nil {
		return fmt.Errorf("backing up previous export: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Checklist renders tasks as a Markdown checklist, one task per line.
// Line breaks inside a task become spaces; all other spacing is kept as
// typed. Tasks with only whitespace are skipped.
func Checklist(tasks []model.Task) string {
	var b strings.Builder
	for _, t := range tasks {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(&b, "- %s %s", box, lineBreaks.Replace(t.Text))
	}
	return b.String()
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// rotatePrevious keeps the current contents of path as path.bak and as a
// timestamped path.bak.<time> copy, then drops the oldest timestamped copies
// beyond maxRotatingBackups. A missing path is not an error.
func rotatePrevious(path string, now time.Time) error {
	prev, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	stamped := path + ".bak." + now.UTC().Format("20060102-150405.000000000")
	for _, dst := range []string{path + ".bak", stamped} {
		if err := os.WriteFile(dst, prev, 0o644); err != nil {
			return err
		}
	}

	backups, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		return err
	}
	// Timestamps sort lexically, oldest first.
	sort.Strings(backups)
	for len(backups) > maxRotatingBackups {
		if err := os.Remove(backups[0]); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		backups = backups[1:]
	}
	return nil
}
