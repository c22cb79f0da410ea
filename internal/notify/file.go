package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/balkashynov/tickle/internal/apperr"
)

// FileFacility persists the scheduled notification set as a JSON file, so
// reconciliation carries across CLI invocations. It stands in for the OS
// notification center, which has no durable handle from a short-lived
// process.
type FileFacility struct {
	mu   sync.Mutex
	path string
}

// NewFileFacility returns a facility backed by the JSON file at path. The
// file is created on first schedule.
func NewFileFacility(path string) *FileFacility {
	return &FileFacility{path: path}
}

// RequestAuthorization always succeeds for the file-backed facility.
func (f *FileFacility) RequestAuthorization() (bool, error) {
	return true, nil
}

// Pending returns the currently scheduled notifications.
func (f *FileFacility) Pending() ([]Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(m))
	for _, req := range m {
		out = append(out, req)
	}
	return out, nil
}

// Schedule registers or replaces the notification for req.TaskID.
func (f *FileFacility) Schedule(req Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return err
	}
	m[req.TaskID] = req
	return f.save(m)
}

// Cancel removes the scheduled notification for the task.
func (f *FileFacility) Cancel(taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, err := f.load()
	if err != nil {
		return err
	}
	delete(m, taskID)
	return f.save(m)
}

func (f *FileFacility) load() (map[string]Request, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]Request), nil
	}
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindFileNotFound, Reason: "notification state unreadable", Err: err}
	}

	var m map[string]Request
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &apperr.Error{Kind: apperr.KindDecodeFailed, Reason: "notification state corrupt", Err: err}
	}
	if m == nil {
		m = make(map[string]Request)
	}
	return m, nil
}

func (f *FileFacility) save(m map[string]Request) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return &apperr.Error{Kind: apperr.KindEncodeFailed, Reason: "notification state", Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create notification state directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return apperr.SaveFailed(err)
	}
	return nil
}
