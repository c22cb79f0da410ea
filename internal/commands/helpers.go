package commands

import (
	"fmt"
	"strings"

	"github.com/balkashynov/tickle/internal/app"
	"github.com/balkashynov/tickle/internal/models"
)

// resolveTaskID matches a full task id or a unique id prefix.
func resolveTaskID(a *app.App, arg string) (string, error) {
	tasks, err := a.Repos.Tasks.Active()
	if err != nil {
		return "", err
	}
	completed, err := a.Repos.Tasks.Completed()
	if err != nil {
		return "", err
	}
	tasks = append(tasks, completed...)

	var matches []string
	for _, t := range tasks {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("task id %q is ambiguous", arg)
	}
	// Fall through to the repository lookup so soft-deleted tasks resolve
	// by their full id.
	if _, err := a.Repos.Tasks.Get(arg); err != nil {
		return "", fmt.Errorf("task %q not found", arg)
	}
	return arg, nil
}

// resolveProject matches a project by id, id prefix, or exact name.
func resolveProject(a *app.App, arg string) (string, error) {
	projects, err := a.Repos.Projects.List()
	if err != nil {
		return "", err
	}
	for _, p := range projects {
		if p.ID == arg || strings.EqualFold(p.Name, arg) {
			return p.ID, nil
		}
	}
	for _, p := range projects {
		if strings.HasPrefix(p.ID, arg) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("project %q not found", arg)
}

// resolveArea matches an area by id, id prefix, or exact name.
func resolveArea(a *app.App, arg string) (string, error) {
	areas, err := a.Repos.Areas.List()
	if err != nil {
		return "", err
	}
	for _, ar := range areas {
		if ar.ID == arg || strings.EqualFold(ar.Name, arg) {
			return ar.ID, nil
		}
	}
	for _, ar := range areas {
		if strings.HasPrefix(ar.ID, arg) {
			return ar.ID, nil
		}
	}
	return "", fmt.Errorf("area %q not found", arg)
}

func reminderTypeFromFlag(flag string) models.ReminderType {
	typ := models.ReminderType(strings.ToLower(strings.TrimSpace(flag)))
	if !typ.Valid() {
		return ""
	}
	return typ
}

// syncReminders runs one reconciliation pass and surfaces any degraded
// state.
func syncReminders(a *app.App) {
	if err := a.Sync.Sync(); err != nil {
		printError(a, err)
		return
	}
	if a.Sync.Degraded() {
		if e := a.Errors.Current(); e != nil {
			fmt.Println(warnStyle.Render("⚠ " + e.Message()))
			a.Errors.Acknowledge()
		}
	}
}

func priorityLabel(p int) string {
	labels := []string{"", "low", "med", "high"}
	if p >= 0 && p < len(labels) {
		return labels[p]
	}
	return ""
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
