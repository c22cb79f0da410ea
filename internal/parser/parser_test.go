package parser

import (
	"testing"
	"time"

	"github.com/balkashynov/tickle/internal/models"
)

var now = time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)

func TestParseDueDate_Formats(t *testing.T) {
	due, err := ParseDueDate("15/12/2026", now)
	if err != nil {
		t.Fatalf("dd/mm/yyyy: %v", err)
	}
	if due.Day() != 15 || due.Month() != time.December || due.Year() != 2026 {
		t.Fatalf("wrong date: %v", due)
	}

	due, err = ParseDueDate("tomorrow", now)
	if err != nil {
		t.Fatalf("tomorrow: %v", err)
	}
	if due.Day() != 29 {
		t.Fatalf("tomorrow = %v", due)
	}

	due, err = ParseDueDate("2 weeks", now)
	if err != nil {
		t.Fatalf("relative: %v", err)
	}
	if due.Day() != 11 || due.Month() != time.September {
		t.Fatalf("2 weeks = %v", due)
	}

	if _, err := ParseDueDate("31/02/2026", now); err == nil {
		t.Fatal("impossible date accepted")
	}
	if _, err := ParseDueDate("whenever", now); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestParseDueDate_EmptyIsNil(t *testing.T) {
	due, err := ParseDueDate("", now)
	if err != nil || due != nil {
		t.Fatalf("empty input should be (nil, nil), got (%v, %v)", due, err)
	}
}

func TestParseQuickEntry(t *testing.T) {
	entry := ParseQuickEntry("Buy milk #errands,home +high due:tomorrow remind:1h", now)

	if entry.Title != "Buy milk" {
		t.Errorf("title = %q", entry.Title)
	}
	if len(entry.Tags) != 2 || entry.Tags[0] != "errands" || entry.Tags[1] != "home" {
		t.Errorf("tags = %v", entry.Tags)
	}
	if entry.Priority != 3 {
		t.Errorf("priority = %d", entry.Priority)
	}
	if entry.DueDate == nil || entry.DueDate.Day() != 29 {
		t.Errorf("due = %v", entry.DueDate)
	}
	if entry.ReminderType != models.ReminderOneHour {
		t.Errorf("reminder = %s", entry.ReminderType)
	}
	if len(entry.Errors) != 0 {
		t.Errorf("unexpected errors: %v", entry.Errors)
	}
}

func TestParseQuickEntry_CollectsErrors(t *testing.T) {
	entry := ParseQuickEntry("Call mom +urgent due:someday remind:5s", now)
	if entry.Title != "Call mom" {
		t.Errorf("title = %q", entry.Title)
	}
	if len(entry.Errors) != 3 {
		t.Errorf("expected 3 errors, got %v", entry.Errors)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"", 0, true},
		{"low", 1, true},
		{"med", 2, true},
		{"HIGH", 3, true},
		{"3", 3, true},
		{"urgent", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePriority(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePriority(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFormatDueDate(t *testing.T) {
	past := now.AddDate(0, 0, -2)
	if got := FormatDueDate(&past, now); got == "" || got[:7] != "OVERDUE" {
		t.Errorf("overdue format = %q", got)
	}
	if got := FormatDueDate(nil, now); got != "" {
		t.Errorf("nil due date should format empty, got %q", got)
	}
}
