package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/balkashynov/tickle/internal/models"
)

// QuickEntry is a task parsed from a single quick-entry line.
type QuickEntry struct {
	Title        string
	Tags         []string
	Priority     int
	DueDate      *time.Time
	ReminderType models.ReminderType
	Errors       []string
}

var (
	tagRegex      = regexp.MustCompile(`#([a-zA-Z0-9_,-]+)`)
	priorityRegex = regexp.MustCompile(`\+([a-zA-Z0-9]+)`)
	dueRegex      = regexp.MustCompile(`due:([^\s]+)`)
	remindRegex   = regexp.MustCompile(`remind:([^\s]+)`)
)

// ParseQuickEntry extracts metadata from a quick-entry line.
// Syntax: "Task title #tag1,tag2 +priority due:tomorrow remind:1h"
func ParseQuickEntry(input string, now time.Time) QuickEntry {
	result := QuickEntry{
		Tags:   []string{},
		Errors: []string{},
	}

	// Tags (#tag1,tag2 or #tag1 #tag2)
	for _, match := range tagRegex.FindAllStringSubmatch(input, -1) {
		for _, tag := range strings.Split(match[1], ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				result.Tags = append(result.Tags, tag)
			}
		}
	}
	input = tagRegex.ReplaceAllString(input, "")

	// Priority (+high, +3, +medium, etc.)
	if matches := priorityRegex.FindStringSubmatch(input); len(matches) > 1 {
		p, ok := ParsePriority(matches[1])
		if !ok {
			result.Errors = append(result.Errors, "Invalid priority '"+matches[1]+"'. Use: low, medium, high, 1, 2, or 3")
		} else {
			result.Priority = p
		}
		input = priorityRegex.ReplaceAllString(input, "")
	}

	// Due date (due:3days is not supported; use due:15/12/2026 or due:tomorrow)
	if matches := dueRegex.FindStringSubmatch(input); len(matches) > 1 {
		due, err := ParseDueDate(matches[1], now)
		if err != nil {
			result.Errors = append(result.Errors, "Invalid due date '"+matches[1]+"': "+err.Error())
		} else {
			result.DueDate = due
		}
		input = dueRegex.ReplaceAllString(input, "")
	}

	// Reminder type (remind:15m, remind:1h, remind:1d, remind:exact)
	if matches := remindRegex.FindStringSubmatch(input); len(matches) > 1 {
		typ := models.ReminderType(strings.ToLower(matches[1]))
		if !typ.Valid() {
			result.Errors = append(result.Errors, "Invalid reminder '"+matches[1]+"'. Use: 15m, 30m, 1h, 1d, or exact")
		} else {
			result.ReminderType = typ
		}
		input = remindRegex.ReplaceAllString(input, "")
	}

	result.Title = strings.Join(strings.Fields(input), " ")
	return result
}

// ParsePriority converts a priority word or digit to its integer level. The
// second return is false for unknown values.
func ParsePriority(priority string) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "":
		return 0, true
	case "low", "1":
		return 1, true
	case "medium", "med", "2":
		return 2, true
	case "high", "3":
		return 3, true
	default:
		return 0, false
	}
}
