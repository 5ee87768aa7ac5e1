package exam

import (
	"fmt"
	"regexp"
	"strings"
)

// Weekday is a teaching day. Weekends never appear on the exam calendar.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// String returns the full English name of the weekday
func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

var (
	// weekdayRun matches one or more concatenated day codes, e.g. "MWF" or "TuTh".
	weekdayRun = regexp.MustCompile(`(?:M|Tu|W|Th|F)+`)
	// weekdayAtom splits a run into its individual codes.
	weekdayAtom = regexp.MustCompile(`M|Tu|W|Th|F`)
)

// ParseWeekdayCode converts a single compact day code (M, Tu, W, Th, F).
// A bare "T" is ambiguous and rejected.
func ParseWeekdayCode(code string) (Weekday, error) {
	switch code {
	case "M":
		return Monday, nil
	case "Tu":
		return Tuesday, nil
	case "W":
		return Wednesday, nil
	case "Th":
		return Thursday, nil
	case "F":
		return Friday, nil
	}
	return 0, fmt.Errorf("%w: %q is not in the valid set (M, Tu, W, Th, F)", ErrInvalidWeekdayCode, code)
}

// ParseWeekdayName converts a full, case-sensitive day name such as "Monday".
func ParseWeekdayName(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownWeekdayName, name)
}

// WeekdayRuns finds every run of day codes in text and decodes each one.
// Days within a run keep their left-to-right order from the input.
func WeekdayRuns(text string) ([][]Weekday, error) {
	runs := weekdayRun.FindAllString(text, -1)
	result := make([][]Weekday, 0, len(runs))
	for _, run := range runs {
		codes := weekdayAtom.FindAllString(run, -1)
		days := make([]Weekday, 0, len(codes))
		for _, code := range codes {
			day, err := ParseWeekdayCode(code)
			if err != nil {
				return nil, err
			}
			days = append(days, day)
		}
		result = append(result, days)
	}
	return result, nil
}

// WeekdaySet is an ordered, duplicate-free set of weekdays.
// The zero value is the empty set.
type WeekdaySet uint8

// NewWeekdaySet builds a set from days in any order.
func NewWeekdaySet(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// With returns the set with d added
func (s WeekdaySet) With(d Weekday) WeekdaySet {
	if d < Monday || d > Friday {
		return s
	}
	return s | 1<<uint(d)
}

// Has reports whether d is in the set
func (s WeekdaySet) Has(d Weekday) bool {
	if d < Monday || d > Friday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

// Contains reports whether every day of other is also in s
func (s WeekdaySet) Contains(other WeekdaySet) bool {
	return s&other == other
}

// Union returns the days present in either set
func (s WeekdaySet) Union(other WeekdaySet) WeekdaySet {
	return s | other
}

// Empty reports whether the set has no days
func (s WeekdaySet) Empty() bool {
	return s == 0
}

// Days lists the members in calendar order
func (s WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, 5)
	for d := Monday; d <= Friday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Code renders the set in the compact notation used on the page, e.g. "MWF".
func (s WeekdaySet) Code() string {
	codes := [...]string{"M", "Tu", "W", "Th", "F"}
	var b strings.Builder
	for _, d := range s.Days() {
		b.WriteString(codes[d])
	}
	return b.String()
}

// String renders the set as a bracketed list of full names,
// e.g. "[Monday, Wednesday, Friday]".
func (s WeekdaySet) String() string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
