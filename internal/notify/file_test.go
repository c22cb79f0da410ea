package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/balkashynov/tickle/internal/apperr"
)

func TestFileFacility_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.json")

	first := NewFileFacility(path)
	req := Request{
		TaskID: "t1", Title: "water plants", Body: "Due soon",
		FireAt:  time.Date(2026, 9, 1, 17, 0, 0, 0, time.UTC),
		Actions: [2]string{ActionComplete, SnoozeAction(15)},
	}
	if err := first.Schedule(req); err != nil {
		t.Fatalf("schedule: %v", err)
	}

	// A new instance over the same file sees the schedule.
	second := NewFileFacility(path)
	pending, err := second.Pending()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || !pending[0].Same(req) {
		t.Fatalf("schedule not persisted: %+v", pending)
	}

	if err := second.Cancel("t1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	pending, _ = first.Pending()
	if len(pending) != 0 {
		t.Fatalf("cancel not persisted: %+v", pending)
	}
}

func TestFileFacility_MissingFileIsEmpty(t *testing.T) {
	f := NewFileFacility(filepath.Join(t.TempDir(), "never-written.json"))
	pending, err := f.Pending()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty schedule, got %+v", pending)
	}
}

func TestFileFacility_CorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notifications.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileFacility(path).Pending()
	var typed *apperr.Error
	if !errors.As(err, &typed) || typed.Kind != apperr.KindDecodeFailed {
		t.Fatalf("expected decode failure, got %v", err)
	}
}
