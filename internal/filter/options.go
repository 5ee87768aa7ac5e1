package filter

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/exam-calendar/internal/exam"
)

// Semesters returns the catalog's semester labels sorted alphabetically
func Semesters(catalog *exam.Catalog) []string {
	labels := catalog.Semesters()
	sort.Strings(labels)
	return labels
}

// Names returns the labels of named classes, sorted case-insensitively
func Names(cal exam.Calendar) []string {
	names := make([]string, 0)
	for c := range cal {
		if c.Kind() == exam.KindNamed {
			names = append(names, c.Label())
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// Days returns every weekday some recurring class meets on, in calendar order
func Days(cal exam.Calendar) []exam.Weekday {
	var all exam.WeekdaySet
	for c := range cal {
		if c.Kind() == exam.KindRecurring {
			all = all.Union(c.Days())
		}
	}
	return all.Days()
}

// TimesFor returns the distinct start times of recurring classes meeting on
// at least all of the selected days, earliest first. An empty selection
// matches every recurring class.
func TimesFor(cal exam.Calendar, selected exam.WeekdaySet) []exam.Clock {
	seen := make(map[exam.Clock]bool)
	times := make([]exam.Clock, 0)
	for c := range cal {
		if c.Kind() != exam.KindRecurring || !c.Days().Contains(selected) {
			continue
		}
		if !seen[c.At()] {
			seen[c.At()] = true
			times = append(times, c.At())
		}
	}
	sort.Slice(times, func(i, j int) bool {
		return times[i].Before(times[j])
	})
	return times
}

// Spans returns the span classes ordered by start time
func Spans(cal exam.Calendar) []exam.TimeRange {
	spans := make([]exam.TimeRange, 0)
	for c := range cal {
		if c.Kind() == exam.KindSpan {
			spans = append(spans, c.TimeRange())
		}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start.Before(spans[j].Start)
		}
		return spans[i].End.Before(spans[j].End)
	})
	return spans
}
