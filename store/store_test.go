package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"todo-screen/model"
)

func sampleSnapshot(label string) model.Snapshot {
	return model.Snapshot{
		Tasks: []model.Task{
			{ID: 1, Text: "Task-" + label, Completed: true},
			{ID: 3, Text: "Other-" + label},
		},
		Filter: model.FilterCompleted,
		NextID: 4,
	}
}

func readSnapshot(t *testing.T, path string) model.Snapshot {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s failed: %v", path, err)
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("decode %s failed: %v", path, err)
	}
	return snap
}

func TestExportWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.json")
	want := sampleSnapshot("a")

	if err := Export(path, want); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if got := readSnapshot(t, path); !reflect.DeepEqual(want, got) {
		t.Fatalf("export mismatch\nwant=%+v\ngot=%+v", want, got)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("expected no backup for first export, got err=%v", err)
	}
}

func TestExportEmptySnapshotWritesEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.json")
	if err := Export(path, model.Snapshot{Filter: model.FilterAll, NextID: 1}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	got := readSnapshot(t, path)
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Fatalf("expected empty task list, got %+v", got.Tasks)
	}
}

func TestExportKeepsPreviousAsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.json")
	initial := sampleSnapshot("old")
	updated := sampleSnapshot("new")

	if err := Export(path, initial); err != nil {
		t.Fatalf("initial export failed: %v", err)
	}
	if err := Export(path, updated); err != nil {
		t.Fatalf("second export failed: %v", err)
	}

	if got := readSnapshot(t, path); !reflect.DeepEqual(updated, got) {
		t.Fatalf("latest export mismatch\nwant=%+v\ngot=%+v", updated, got)
	}
	if got := readSnapshot(t, path+".bak"); !reflect.DeepEqual(initial, got) {
		t.Fatalf("backup mismatch\nwant=%+v\ngot=%+v", initial, got)
	}
}

func TestExportPrunesRotatingBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.json")
	for i := 0; i < maxRotatingBackups+4; i++ {
		if err := Export(path, sampleSnapshot("x")); err != nil {
			t.Fatalf("export %d failed: %v", i, err)
		}
	}
	files, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(files) > maxRotatingBackups {
		t.Fatalf("expected at most %d rotating backups, got %d", maxRotatingBackups, len(files))
	}
	leftovers, _ := filepath.Glob(path + ".tmp-*")
	if len(leftovers) != 0 {
		t.Fatalf("expected temp files to be cleaned up, got %v", leftovers)
	}
}

func TestExportPathIsStable(t *testing.T) {
	dir := t.TempDir()
	path := ExportPath(dir)
	if path != filepath.Join(dir, "todo-export.json") {
		t.Fatalf("unexpected export path %q", path)
	}

	first := sampleSnapshot("first")
	if err := Export(ExportPath(dir), first); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if err := Export(ExportPath(dir), sampleSnapshot("second")); err != nil {
		t.Fatalf("second export failed: %v", err)
	}
	if got := readSnapshot(t, path+".bak"); !reflect.DeepEqual(first, got) {
		t.Fatalf("expected repeated exports to back up the previous one\nwant=%+v\ngot=%+v", first, got)
	}
}

func TestRotatePreviousDropsOldest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo-export.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	base := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	for i := 0; i < maxRotatingBackups+2; i++ {
		if err := rotatePrevious(path, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("rotate %d failed: %v", i, err)
		}
	}

	files, err := filepath.Glob(path + ".bak.*")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(files) != maxRotatingBackups {
		t.Fatalf("expected %d backups, got %d", maxRotatingBackups, len(files))
	}
	for _, f := range files {
		if strings.Contains(f, "20261017-080000") || strings.Contains(f, "20261017-080100") {
			t.Fatalf("expected the two oldest backups to be pruned, found %s", f)
		}
	}
}

func TestRotatePreviousWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	if err := rotatePrevious(path, time.Now()); err != nil {
		t.Fatalf("expected no error for a missing file, got %v", err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("expected no backup to be written, got err=%v", err)
	}
}

func TestChecklist(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Text: "Buy milk", Completed: true},
		{ID: 2, Text: "two\nlines"},
		{ID: 3, Text: "   "},
		{ID: 4, Text: "  Call  mom "},
		{ID: 5, Text: "dos\r\nline"},
	}
	want := "- [x] Buy milk\n- [ ] two lines\n- [ ]   Call  mom \n- [ ] dos line"
	if got := Checklist(tasks); got != want {
		t.Fatalf("checklist mismatch\nwant=%q\ngot=%q", want, got)
	}
	if got := Checklist(nil); got != "" {
		t.Fatalf("expected empty checklist, got %q", got)
	}
}
