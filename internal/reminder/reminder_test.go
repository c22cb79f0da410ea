package reminder

import (
	"testing"
	"time"

	"github.com/balkashynov/tickle/internal/models"
)

var now = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func TestResolve_RelativeOffsets(t *testing.T) {
	due := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		typ        models.ReminderType
		wantOffset int
	}{
		{models.ReminderFifteenMinutes, 15},
		{models.ReminderThirtyMinutes, 30},
		{models.ReminderOneHour, 60},
		{models.ReminderOneDay, 1440},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			sched := Resolve(&due, tt.typ, nil, now)
			if sched.Type != tt.typ {
				t.Fatalf("type changed to %s", sched.Type)
			}
			if sched.OffsetMinutes != tt.wantOffset {
				t.Fatalf("offset = %d, want %d", sched.OffsetMinutes, tt.wantOffset)
			}
			want := due.Add(-time.Duration(tt.wantOffset) * time.Minute)
			if sched.Time == nil || !sched.Time.Equal(want) {
				t.Fatalf("time = %v, want %v", sched.Time, want)
			}
		})
	}
}

func TestResolve_OneHourIsExactly3600SecondsBefore(t *testing.T) {
	due := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	sched := Resolve(&due, models.ReminderOneHour, nil, now)
	if got := due.Sub(*sched.Time); got != 3600*time.Second {
		t.Fatalf("reminder fires %v before due, want 3600s", got)
	}
}

func TestResolve_ExactKeepsExplicitTime(t *testing.T) {
	due := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	explicit := time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC)

	sched := Resolve(&due, models.ReminderExact, &explicit, now)
	if !sched.Time.Equal(explicit) {
		t.Fatalf("explicit time not kept: %v", sched.Time)
	}
	if sched.OffsetMinutes != 0 {
		t.Fatalf("exact type must not carry an offset, got %d", sched.OffsetMinutes)
	}
}

func TestResolve_ExactDefaultsToHourBeforeDue(t *testing.T) {
	due := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	sched := Resolve(&due, models.ReminderExact, nil, now)
	if want := due.Add(-time.Hour); !sched.Time.Equal(want) {
		t.Fatalf("default = %v, want %v", sched.Time, want)
	}
}

func TestResolve_NoDueDateForcesExact(t *testing.T) {
	// A relative type without a due date cannot be resolved; it degrades to
	// exact one hour from now.
	sched := Resolve(nil, models.ReminderOneDay, nil, now)
	if sched.Type != models.ReminderExact {
		t.Fatalf("type = %s, want exact", sched.Type)
	}
	if want := now.Add(time.Hour); !sched.Time.Equal(want) {
		t.Fatalf("time = %v, want %v", sched.Time, want)
	}

	// An explicit time survives the forced-exact fallback.
	explicit := now.Add(30 * time.Minute)
	sched = Resolve(nil, models.ReminderOneDay, &explicit, now)
	if !sched.Time.Equal(explicit) {
		t.Fatalf("explicit time lost: %v", sched.Time)
	}
}

func TestDisabled_ClearsTimeAndOffset(t *testing.T) {
	sched := Disabled(models.ReminderOneHour)
	if sched.Time != nil {
		t.Fatal("disabled reminder must have no fire time")
	}
	if sched.OffsetMinutes != 0 {
		t.Fatalf("offset = %d, want 0", sched.OffsetMinutes)
	}
}
