// Package filter selects classes and their exams from a semester calendar.
//
// A class can be picked three ways, matching the shapes the calendar uses:
//   - by name, for classes listed by course label ("CH 101")
//   - by meeting days and start time ("MWF" at "9:00 a.m.")
//   - by time span, for evening classes ("6:00 p.m. and later")
//
// The option helpers list what can be picked so a front end can offer only
// choices that exist on the calendar.
//
// Example usage:
//
//	q := filter.Query{Days: "MWF", Time: "9:00 a.m."}
//	class, exam, err := filter.Lookup(cal, q)
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/exam-calendar/internal/exam"
)

var (
	// ErrEmptyQuery is returned when a query names no class.
	ErrEmptyQuery = errors.New("query names no class")
	// ErrAmbiguousQuery is returned when a query mixes selection modes.
	ErrAmbiguousQuery = errors.New("query mixes name, days/time and span")
	// ErrNoExam is returned when the class is not on the calendar.
	ErrNoExam = errors.New("no exam found for class")
)

// Query describes one class. Exactly one of Name, Days+Time or Span is used.
type Query struct {
	Name string `json:"name,omitempty"`
	Days string `json:"days,omitempty"`
	Time string `json:"time,omitempty"`
	Span string `json:"span,omitempty"`
}

// IsEmpty reports whether the query has no criteria
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Name) == "" &&
		strings.TrimSpace(q.Days) == "" &&
		strings.TrimSpace(q.Time) == "" &&
		strings.TrimSpace(q.Span) == ""
}

// Class resolves the query to the class it describes
func (q Query) Class() (exam.Class, error) {
	if q.IsEmpty() {
		return exam.Class{}, ErrEmptyQuery
	}

	name := strings.TrimSpace(q.Name)
	span := strings.TrimSpace(q.Span)
	byTime := strings.TrimSpace(q.Days) != "" || strings.TrimSpace(q.Time) != ""

	modes := 0
	for _, used := range []bool{name != "", span != "", byTime} {
		if used {
			modes++
		}
	}
	if modes > 1 {
		return exam.Class{}, ErrAmbiguousQuery
	}

	switch {
	case name != "":
		return exam.Named(name), nil
	case span != "":
		return ParseSpan(span)
	}

	days, err := ParseDays(q.Days)
	if err != nil {
		return exam.Class{}, err
	}
	at, err := exam.ParseClock(q.Time)
	if err != nil {
		return exam.Class{}, fmt.Errorf("class time: %w", err)
	}
	return exam.Recurring(days, at), nil
}

// Lookup finds the exam for the class a query describes
func Lookup(cal exam.Calendar, q Query) (exam.Class, exam.Exam, error) {
	class, err := q.Class()
	if err != nil {
		return exam.Class{}, exam.Exam{}, err
	}
	e, ok := cal.Lookup(class)
	if !ok {
		return class, exam.Exam{}, fmt.Errorf("%w: %s", ErrNoExam, class)
	}
	return class, e, nil
}

// Search returns the named classes whose label contains term, ignoring case,
// in the calendar's natural order.
func Search(cal exam.Calendar, term string) []exam.Class {
	term = strings.ToLower(strings.TrimSpace(term))
	matches := make([]exam.Class, 0)
	for _, c := range cal.Classes() {
		if c.Kind() != exam.KindNamed {
			continue
		}
		if strings.Contains(strings.ToLower(c.Label()), term) {
			matches = append(matches, c)
		}
	}
	return matches
}
