package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDueDate parses the due date formats accepted on the command line:
// - dd/mm/yyyy (e.g., "15/12/2026")
// - "today", "tomorrow"
// - X days / X hours / X weeks (e.g., "3 days")
func ParseDueDate(input string, now time.Time) (*time.Time, error) {
	if input == "" {
		return nil, nil
	}

	input = strings.TrimSpace(input)

	switch strings.ToLower(input) {
	case "today":
		due := endOfDay(now)
		return &due, nil
	case "tomorrow":
		due := endOfDay(now.AddDate(0, 0, 1))
		return &due, nil
	}

	if due, err := parseDateFormat(input); err == nil {
		return due, nil
	}
	if due, err := parseRelative(input, now); err == nil {
		return due, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: dd/mm/yyyy, today, tomorrow, X days, X hours, or X weeks")
}

var dateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

func parseDateFormat(input string) (*time.Time, error) {
	matches := dateRegex.FindStringSubmatch(input)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid date format")
	}

	day, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	year, _ := strconv.Atoi(matches[3])

	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}

	due := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)

	// Catches impossible dates like 31/02 that normalize into March
	if due.Day() != day || due.Month() != time.Month(month) || due.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &due, nil
}

var relativeRegex = regexp.MustCompile(`^(\d+)\s+(hour|hours|day|days|week|weeks)$`)

func parseRelative(input string, now time.Time) (*time.Time, error) {
	matches := relativeRegex.FindStringSubmatch(strings.ToLower(input))
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative time format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil || amount < 1 {
		return nil, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "hour", "hours":
		due := now.Add(time.Duration(amount) * time.Hour)
		return &due, nil
	case "day", "days":
		due := endOfDay(now.AddDate(0, 0, amount))
		return &due, nil
	case "week", "weeks":
		due := endOfDay(now.AddDate(0, 0, amount*7))
		return &due, nil
	default:
		return nil, fmt.Errorf("unsupported time unit")
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// FormatDueDate formats a due date for display
func FormatDueDate(dueDate *time.Time, now time.Time) string {
	if dueDate == nil {
		return ""
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, dueDate.Location())
	daysDiff := int(dueDay.Sub(today).Hours() / 24)

	dateStr := dueDate.Format("02/01/2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("due %s", dateStr)
	}
}
