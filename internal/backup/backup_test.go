package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/tickle/internal/apperr"
	"github.com/balkashynov/tickle/internal/events"
	"github.com/balkashynov/tickle/internal/models"
	"github.com/balkashynov/tickle/internal/repo"
	"github.com/balkashynov/tickle/internal/store"
)

func newTestRepos(t *testing.T) (*repo.Repos, *store.Store) {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	clock := func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }
	return repo.New(st, events.NewBus(), apperr.NewChannel(), clock), st
}

func TestExportImport_Roundtrip(t *testing.T) {
	source, sourceStore := newTestRepos(t)

	area, _ := source.Areas.Create(repo.CreateAreaRequest{Name: "Home"})
	project, _ := source.Projects.Create(repo.CreateProjectRequest{Name: "Garden", AreaID: &area.ID})

	kept, _ := source.Tasks.Create(repo.CreateTaskRequest{Title: "water plants", ProjectID: &project.ID, Tags: []string{"chore"}})
	gone, _ := source.Tasks.Create(repo.CreateTaskRequest{Title: "old idea"})
	if _, err := source.Tasks.SoftDelete(gone.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	path := filepath.Join(t.TempDir(), "archive.json")
	if err := New(sourceStore, nil).Export(path); err != nil {
		t.Fatalf("export: %v", err)
	}

	target, targetStore := newTestRepos(t)
	if err := New(targetStore, nil).Import(path); err != nil {
		t.Fatalf("import: %v", err)
	}

	// Ids survive the roundtrip.
	imported, err := target.Tasks.Get(kept.ID)
	if err != nil {
		t.Fatalf("imported task missing: %v", err)
	}
	if imported.Title != "water plants" || imported.ProjectID == nil || *imported.ProjectID != project.ID {
		t.Fatalf("imported task mangled: %+v", imported)
	}
	if len(imported.Tags) != 1 || imported.Tags[0].Name != "chore" {
		t.Fatalf("tag association lost: %v", imported.Tags)
	}

	// Soft-delete flags survive too.
	deleted, err := target.Tasks.Get(gone.ID)
	if err != nil {
		t.Fatalf("soft-deleted task missing: %v", err)
	}
	if !deleted.Deleted {
		t.Fatal("import dropped the deleted flag")
	}
	inbox, _ := target.Tasks.Inbox()
	for _, task := range inbox {
		if task.ID == gone.ID {
			t.Fatal("soft-deleted task visible after import")
		}
	}

	if _, err := target.Areas.Get(area.ID); err != nil {
		t.Fatalf("imported area missing: %v", err)
	}
}

func TestImport_MissingFile(t *testing.T) {
	_, st := newTestRepos(t)

	err := New(st, nil).Import(filepath.Join(t.TempDir(), "nope.json"))
	var typed *apperr.Error
	if !errors.As(err, &typed) || typed.Kind != apperr.KindFileNotFound {
		t.Fatalf("expected file-not-found, got %v", err)
	}
}

func TestImport_MalformedJSON(t *testing.T) {
	_, st := newTestRepos(t)

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	err := New(st, nil).Import(path)
	var typed *apperr.Error
	if !errors.As(err, &typed) || typed.Kind != apperr.KindDecodeFailed {
		t.Fatalf("expected decode failure, got %v", err)
	}
}

func TestImport_UnsupportedVersion(t *testing.T) {
	_, st := newTestRepos(t)

	path := filepath.Join(t.TempDir(), "future.json")
	if err := os.WriteFile(path, []byte(`{"version": 99}`), 0644); err != nil {
		t.Fatal(err)
	}

	err := New(st, nil).Import(path)
	var typed *apperr.Error
	if !errors.As(err, &typed) || typed.Kind != apperr.KindInvalidFormat {
		t.Fatalf("expected invalid-format, got %v", err)
	}
}

func TestImport_MismatchedPairingsRejected(t *testing.T) {
	archives := map[string]string{
		"completed without timestamp": `{"version": 1, "tasks": [
			{"id": "t1", "title": "done", "completed": true}
		]}`,
		"timestamp without completed": `{"version": 1, "tasks": [
			{"id": "t1", "title": "open", "completed_at": "2026-08-28T10:00:00Z"}
		]}`,
		"reminder without fire time": `{"version": 1, "tasks": [
			{"id": "t1", "title": "remind", "reminder_enabled": true, "reminder_type": "exact"}
		]}`,
	}

	for name, archive := range archives {
		t.Run(name, func(t *testing.T) {
			_, st := newTestRepos(t)
			path := filepath.Join(t.TempDir(), "archive.json")
			if err := os.WriteFile(path, []byte(archive), 0644); err != nil {
				t.Fatal(err)
			}

			err := New(st, nil).Import(path)
			var typed *apperr.Error
			if !errors.As(err, &typed) || typed.Kind != apperr.KindInvalidData {
				t.Fatalf("expected validation failure, got %v", err)
			}

			var tasks []models.Task
			if err := st.Batch().Find(&tasks); err != nil {
				t.Fatalf("find: %v", err)
			}
			if len(tasks) != 0 {
				t.Fatalf("mismatched record was committed: %+v", tasks)
			}
		})
	}
}

func TestImport_InvalidRecordFailsWhole(t *testing.T) {
	_, st := newTestRepos(t)

	path := filepath.Join(t.TempDir(), "bad.json")
	archive := `{"version": 1, "tasks": [{"id": "t1", "title": "   "}]}`
	if err := os.WriteFile(path, []byte(archive), 0644); err != nil {
		t.Fatal(err)
	}

	err := New(st, nil).Import(path)
	var typed *apperr.Error
	if !errors.As(err, &typed) || typed.Kind != apperr.KindInvalidData {
		t.Fatalf("expected validation failure, got %v", err)
	}

	var tasks []models.Task
	if err := st.Batch().Find(&tasks); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("failed import left records behind: %+v", tasks)
	}
}
