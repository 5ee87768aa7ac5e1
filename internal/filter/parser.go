package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/exam-calendar/internal/exam"
)

// ParseDays parses a compact day code such as "MWF" or "TuTh".
//
// The whole input must be a single run of codes. Full names separated by
// commas ("Monday, Wednesday") are accepted as well.
func ParseDays(input string) (exam.WeekdaySet, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("days cannot be empty")
	}

	if strings.Contains(input, ",") || len(input) > len("MTuWThF") {
		return parseDayNames(input)
	}

	runs, err := exam.WeekdayRuns(input)
	if err != nil {
		return 0, err
	}
	if len(runs) != 1 || len(codeOf(runs[0])) != len(input) {
		return parseDayNames(input)
	}
	return exam.NewWeekdaySet(runs[0]...), nil
}

func parseDayNames(input string) (exam.WeekdaySet, error) {
	var days exam.WeekdaySet
	for _, name := range strings.Split(input, ",") {
		day, err := exam.ParseWeekdayName(titleCase(strings.TrimSpace(name)))
		if err != nil {
			return 0, fmt.Errorf("invalid days %q. Use codes like 'MWF' or 'TuTh', or full names: %w", input, err)
		}
		days = days.With(day)
	}
	return days, nil
}

// titleCase turns "monday" or "MONDAY" into "Monday"
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// codeOf re-encodes days in input order so callers can check a run covered
// the whole input.
func codeOf(days []exam.Weekday) string {
	var b strings.Builder
	for _, d := range days {
		b.WriteString(exam.NewWeekdaySet(d).Code())
	}
	return b.String()
}

// ParseSpan parses a time span written the way the calendar writes it,
// e.g. "8:00 a.m. - 10:00 a.m." or "6:00 p.m. and later".
func ParseSpan(input string) (exam.Class, error) {
	classes, err := exam.ParseClasses(input)
	if err != nil {
		return exam.Class{}, err
	}
	if len(classes) != 1 || classes[0].Kind() != exam.KindSpan {
		return exam.Class{}, fmt.Errorf("invalid span %q. Use '8:00 a.m. - 10:00 a.m.' or '6:00 p.m. and later'", input)
	}
	return classes[0], nil
}
