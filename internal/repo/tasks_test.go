package repo

import (
	"errors"
	"testing"
	"time"

	"github.com/balkashynov/tickle/internal/apperr"
	"github.com/balkashynov/tickle/internal/events"
	"github.com/balkashynov/tickle/internal/models"
	"github.com/balkashynov/tickle/internal/store"
)

// testClock is a fixed, manually advanced clock.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestRepos(t *testing.T) (*Repos, *testClock, *events.Bus, *apperr.Channel) {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	clock := &testClock{t: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)}
	bus := events.NewBus()
	errs := apperr.NewChannel()
	return New(st, bus, errs, clock.Now), clock, bus, errs
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func contains(tasks []models.Task, id string) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

func TestCreate_AssignsDefaults(t *testing.T) {
	repos, clock, _, _ := newTestRepos(t)

	first, err := repos.Tasks.Create(CreateTaskRequest{Title: "  Buy milk  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" {
		t.Fatal("id not assigned")
	}
	if first.Title != "Buy milk" {
		t.Fatalf("title not normalized: %q", first.Title)
	}
	if !first.CreatedAt.Equal(clock.Now()) || !first.UpdatedAt.Equal(clock.Now()) {
		t.Fatal("timestamps not assigned from the clock")
	}
	if first.SortOrder != 1 {
		t.Fatalf("first sort order = %d, want 1", first.SortOrder)
	}

	second, err := repos.Tasks.Create(CreateTaskRequest{Title: "Walk dog"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if second.SortOrder != 2 {
		t.Fatalf("second sort order = %d, want 2", second.SortOrder)
	}
}

func TestCreate_SortOrderSkipsDeleted(t *testing.T) {
	repos, _, _, _ := newTestRepos(t)

	a, _ := repos.Tasks.Create(CreateTaskRequest{Title: "a"})
	b, _ := repos.Tasks.Create(CreateTaskRequest{Title: "b"})
	_ = a

	if _, err := repos.Tasks.SoftDelete(b.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	// Max over non-deleted is a's 1, so the next task gets 2 even though a
	// deleted task already holds it.
	c, err := repos.Tasks.Create(CreateTaskRequest{Title: "c"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.SortOrder != 2 {
		t.Fatalf("sort order = %d, want 2", c.SortOrder)
	}
}

func TestCreate_TagsCommitWithTheTask(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	clock := &testClock{t: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)}
	repos := New(st, events.NewBus(), apperr.NewChannel(), clock.Now)

	// Poison the shared unit of work with a duplicate primary key so the
	// task's commit fails after its tags were staged.
	now := clock.Now()
	prim := st.Primary()
	prim.Insert(&models.Task{ID: "dup", CreatedAt: now, UpdatedAt: now, Title: "x", ReminderType: models.ReminderExact})
	prim.Insert(&models.Task{ID: "dup", CreatedAt: now, UpdatedAt: now, Title: "y", ReminderType: models.ReminderExact})

	if _, err := repos.Tasks.Create(CreateTaskRequest{Title: "with tags", Tags: []string{"orphan"}}); err == nil {
		t.Fatal("expected commit failure")
	}

	var tags []models.Tag
	if err := st.Batch().Find(&tags); err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("failed task commit left orphan tags: %+v", tags)
	}
}

func TestCreate_ValidationShortCircuits(t *testing.T) {
	repos, _, _, errs := newTestRepos(t)

	_, err := repos.Tasks.Create(CreateTaskRequest{Title: "   ", Priority: 99})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	var typed *apperr.Error
	if !errors.As(err, &typed) || typed.Kind != apperr.KindInvalidData || typed.Field != "title" {
		t.Fatalf("expected the title failure first, got %v", err)
	}
	if errs.Current() == nil {
		t.Fatal("failure not surfaced on the error channel")
	}

	active, err := repos.Tasks.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 0 {
		t.Fatal("invalid task was committed")
	}
}

func TestCompletionInvariant(t *testing.T) {
	repos, clock, _, _ := newTestRepos(t)

	task, _ := repos.Tasks.Create(CreateTaskRequest{Title: "t"})

	done, err := repos.Tasks.MarkCompleted(task.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !done.Completed || done.CompletedAt == nil {
		t.Fatalf("completed flag and timestamp must flip together: %+v", done)
	}
	if !done.CompletedAt.Equal(clock.Now()) {
		t.Fatalf("completedAt = %v, want %v", done.CompletedAt, clock.Now())
	}

	undone, err := repos.Tasks.MarkIncomplete(task.ID)
	if err != nil {
		t.Fatalf("uncomplete: %v", err)
	}
	if undone.Completed || undone.CompletedAt != nil {
		t.Fatalf("incomplete task must have no completedAt: %+v", undone)
	}
}

func TestToday_WindowAndExclusions(t *testing.T) {
	repos, clock, _, _ := newTestRepos(t)
	now := clock.Now()

	dueToday := now.Add(4 * time.Hour)
	dueTomorrow := now.AddDate(0, 0, 1).Add(4 * time.Hour)
	dueYesterday := now.AddDate(0, 0, -1)

	today, _ := repos.Tasks.Create(CreateTaskRequest{Title: "today", DueDate: &dueToday})
	_, _ = repos.Tasks.Create(CreateTaskRequest{Title: "tomorrow", DueDate: &dueTomorrow})
	_, _ = repos.Tasks.Create(CreateTaskRequest{Title: "yesterday", DueDate: &dueYesterday})
	doneToday, _ := repos.Tasks.Create(CreateTaskRequest{Title: "done today", DueDate: &dueToday})
	_, _ = repos.Tasks.MarkCompleted(doneToday.ID)

	list, err := repos.Tasks.Today()
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if len(list) != 1 || list[0].ID != today.ID {
		t.Fatalf("today = %v", ids(list))
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, task := range list {
		if task.DueDate.Before(start) || !task.DueDate.Before(start.AddDate(0, 0, 1)) {
			t.Fatalf("due date %v outside today's window", task.DueDate)
		}
		if task.Completed || task.Deleted {
			t.Fatalf("today returned a completed or deleted task: %+v", task)
		}
	}
}

func TestUpcoming_ExclusiveOfNow(t *testing.T) {
	repos, clock, _, _ := newTestRepos(t)
	now := clock.Now()

	atNow := now
	in2 := now.AddDate(0, 0, 2)
	in9 := now.AddDate(0, 0, 9)

	_, _ = repos.Tasks.Create(CreateTaskRequest{Title: "due now", DueDate: &atNow})
	soon, _ := repos.Tasks.Create(CreateTaskRequest{Title: "soon", DueDate: &in2})
	_, _ = repos.Tasks.Create(CreateTaskRequest{Title: "later", DueDate: &in9})

	list, err := repos.Tasks.Upcoming(7)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(list) != 1 || list[0].ID != soon.ID {
		t.Fatalf("upcoming(7) = %v", ids(list))
	}
}

func TestInboxScenario(t *testing.T) {
	repos, clock, _, _ := newTestRepos(t)

	task, err := repos.Tasks.Create(CreateTaskRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	inbox, _ := repos.Tasks.Inbox()
	if !contains(inbox, task.ID) {
		t.Fatal("new loose task should be in the inbox")
	}

	project, err := repos.Projects.Create(CreateProjectRequest{Name: "Groceries"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := repos.Tasks.Update(task.ID, TaskPatch{ProjectID: &project.ID}); err != nil {
		t.Fatalf("assign project: %v", err)
	}

	inbox, _ = repos.Tasks.Inbox()
	if contains(inbox, task.ID) {
		t.Fatal("task with a project must leave the inbox")
	}
	inProject, _ := repos.Tasks.ByProject(project.ID)
	if !contains(inProject, task.ID) {
		t.Fatal("task should appear in the project's active list")
	}

	clock.Advance(time.Minute)
	if _, err := repos.Tasks.MarkCompleted(task.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	inProject, _ = repos.Tasks.ByProject(project.ID)
	if contains(inProject, task.ID) {
		t.Fatal("completed task must leave the project's active list")
	}
	completed, _ := repos.Tasks.Completed()
	if !contains(completed, task.ID) {
		t.Fatal("completed task should appear in the completed list")
	}
}

func TestCompleted_SortedByCompletionDesc(t *testing.T) {
	repos, clock, _, _ := newTestRepos(t)

	first, _ := repos.Tasks.Create(CreateTaskRequest{Title: "first done"})
	second, _ := repos.Tasks.Create(CreateTaskRequest{Title: "second done"})

	_, _ = repos.Tasks.MarkCompleted(first.ID)
	clock.Advance(time.Hour)
	_, _ = repos.Tasks.MarkCompleted(second.ID)

	completed, err := repos.Tasks.Completed()
	if err != nil {
		t.Fatalf("completed: %v", err)
	}
	if len(completed) != 2 || completed[0].ID != second.ID {
		t.Fatalf("most recently completed should come first: %v", ids(completed))
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	repos, clock, _, _ := newTestRepos(t)

	due := clock.Now().Add(2 * time.Hour)
	task, _ := repos.Tasks.Create(CreateTaskRequest{Title: "keep me", Notes: "note", DueDate: &due, Priority: 2})

	if _, err := repos.Tasks.SoftDelete(task.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	for name, query := range map[string]func() ([]models.Task, error){
		"active":    repos.Tasks.Active,
		"today":     repos.Tasks.Today,
		"inbox":     repos.Tasks.Inbox,
		"completed": repos.Tasks.Completed,
	} {
		list, err := query()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if contains(list, task.ID) {
			t.Fatalf("soft-deleted task still visible in %s", name)
		}
	}

	// Still in storage, fetchable by id.
	kept, err := repos.Tasks.Get(task.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if !kept.Deleted {
		t.Fatal("deleted flag not set")
	}

	clock.Advance(time.Minute)
	restored, err := repos.Tasks.Restore(task.ID)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Deleted {
		t.Fatal("restore did not clear the flag")
	}
	if restored.Title != task.Title || restored.Notes != task.Notes || restored.Priority != task.Priority {
		t.Fatal("restore changed field values")
	}
	if !restored.UpdatedAt.After(task.UpdatedAt) {
		t.Fatal("restore must bump UpdatedAt")
	}

	inbox, _ := repos.Tasks.Inbox()
	if !contains(inbox, task.ID) {
		t.Fatal("restored task should be visible again")
	}
}

func TestUpdate_ValidatesOnlySuppliedFields(t *testing.T) {
	repos, _, _, _ := newTestRepos(t)

	task, _ := repos.Tasks.Create(CreateTaskRequest{Title: "original"})

	bad := "   "
	if _, err := repos.Tasks.Update(task.ID, TaskPatch{Title: &bad}); err == nil {
		t.Fatal("blank title should be rejected")
	}
	unchanged, _ := repos.Tasks.Get(task.ID)
	if unchanged.Title != "original" {
		t.Fatalf("failed update mutated the record: %q", unchanged.Title)
	}

	notes := "just notes"
	updated, err := repos.Tasks.Update(task.ID, TaskPatch{Notes: &notes})
	if err != nil {
		t.Fatalf("notes-only update: %v", err)
	}
	if updated.Title != "original" || updated.Notes != "just notes" {
		t.Fatalf("patch applied wrong fields: %+v", updated)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repos, _, _, _ := newTestRepos(t)

	title := "x"
	_, err := repos.Tasks.Update("missing", TaskPatch{Title: &title})
	var typed *apperr.Error
	if !errors.As(err, &typed) || typed.Kind != apperr.KindNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestReminder_EnableDisable(t *testing.T) {
	repos, _, _, _ := newTestRepos(t)

	due := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	task, _ := repos.Tasks.Create(CreateTaskRequest{Title: "remind me", DueDate: &due})

	enabled, err := repos.Tasks.EnableReminder(task.ID, models.ReminderOneHour, nil)
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if enabled.ReminderTime == nil || !enabled.ReminderTime.Equal(due.Add(-time.Hour)) {
		t.Fatalf("reminder time = %v, want due - 1h", enabled.ReminderTime)
	}
	if enabled.ReminderOffsetMinutes != 60 {
		t.Fatalf("offset = %d, want 60", enabled.ReminderOffsetMinutes)
	}

	disabled, err := repos.Tasks.DisableReminder(task.ID)
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if disabled.ReminderEnabled || disabled.ReminderTime != nil || disabled.ReminderOffsetMinutes != 0 {
		t.Fatalf("disable left reminder state behind: %+v", disabled)
	}
}

func TestReminder_RemovingDueDateFallsBackToExact(t *testing.T) {
	repos, _, _, _ := newTestRepos(t)

	due := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	task, _ := repos.Tasks.Create(CreateTaskRequest{
		Title: "t", DueDate: &due,
		ReminderEnabled: true, ReminderType: models.ReminderOneHour,
	})
	oldFire := *task.ReminderTime

	updated, err := repos.Tasks.Update(task.ID, TaskPatch{ClearDueDate: true})
	if err != nil {
		t.Fatalf("clear due: %v", err)
	}
	if updated.ReminderType != models.ReminderExact {
		t.Fatalf("type = %s, want exact", updated.ReminderType)
	}
	if updated.ReminderTime == nil || !updated.ReminderTime.Equal(oldFire) {
		t.Fatalf("previous fire time should become the explicit time, got %v", updated.ReminderTime)
	}
	if updated.ReminderOffsetMinutes != 0 {
		t.Fatalf("offset = %d, want 0", updated.ReminderOffsetMinutes)
	}
}

func TestEvents_PublishedOnCommit(t *testing.T) {
	repos, _, bus, _ := newTestRepos(t)
	ch := bus.Subscribe(8)

	task, _ := repos.Tasks.Create(CreateTaskRequest{Title: "evented"})
	<-ch // create event

	_, _ = repos.Tasks.MarkCompleted(task.ID)
	ev := <-ch
	if ev.Entity != "task" || ev.Op != events.OpUpdate || !ev.ReminderRelevant {
		t.Fatalf("completion should publish a reminder-relevant update, got %+v", ev)
	}
}
