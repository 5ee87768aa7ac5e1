package exam

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
)

// Exam is the date and slot a class sits its final exam in.
type Exam struct {
	Date Date
	Slot TimeRange
}

// MarshalJSON encodes the exam as a [date, slot] pair:
//
//	["2023-12-11", {"start": "08:00:00", "end": "10:00:00"}]
func (e Exam) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Date, e.Slot})
}

// UnmarshalJSON decodes a [date, slot] pair
func (e *Exam) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("exam: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("exam: expected [date, slot], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Date); err != nil {
		return fmt.Errorf("exam date: %w", err)
	}
	if err := json.Unmarshal(pair[1], &e.Slot); err != nil {
		return fmt.Errorf("exam slot: %w", err)
	}
	return nil
}

// Calendar maps each class of one semester to its exam.
type Calendar map[Class]Exam

// Lookup returns the exam for c
func (cal Calendar) Lookup(c Class) (Exam, bool) {
	e, ok := cal[c]
	return e, ok
}

// Classes lists the calendar's classes, recurring first, then spans, then
// named, each group in natural order.
func (cal Calendar) Classes() []Class {
	classes := slices.Collect(maps.Keys(cal))
	sort.Slice(classes, func(i, j int) bool {
		return lessClass(classes[i], classes[j])
	})
	return classes
}

// Equal reports whether both calendars hold the same assignments
func (cal Calendar) Equal(other Calendar) bool {
	return maps.Equal(cal, other)
}

func lessClass(a, b Class) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	switch a.kind {
	case KindRecurring:
		if a.days != b.days {
			return a.days.Code() < b.days.Code()
		}
		return a.at.Before(b.at)
	case KindSpan:
		if a.span.Start != b.span.Start {
			return a.span.Start.Before(b.span.Start)
		}
		return a.span.End.Before(b.span.End)
	}
	return strings.ToLower(a.label) < strings.ToLower(b.label)
}

// Catalog holds every semester's calendar in the order the semesters appear
// on the page.
type Catalog struct {
	semesters []string
	calendars map[string]Calendar
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{calendars: make(map[string]Calendar)}
}

// Add stores cal under label. Re-adding a label replaces its calendar but
// keeps its original position.
func (c *Catalog) Add(label string, cal Calendar) {
	if _, exists := c.calendars[label]; !exists {
		c.semesters = append(c.semesters, label)
	}
	c.calendars[label] = cal
}

// Semesters returns the semester labels in insertion order
func (c *Catalog) Semesters() []string {
	return slices.Clone(c.semesters)
}

// Calendar returns the calendar for a semester label
func (c *Catalog) Calendar(label string) (Calendar, bool) {
	cal, ok := c.calendars[label]
	return cal, ok
}

// Len returns the number of semesters
func (c *Catalog) Len() int {
	return len(c.semesters)
}

// Equal reports whether both catalogs have the same semesters, in the same
// order, with equal calendars.
func (c *Catalog) Equal(other *Catalog) bool {
	if !slices.Equal(c.semesters, other.semesters) {
		return false
	}
	for _, label := range c.semesters {
		if !c.calendars[label].Equal(other.calendars[label]) {
			return false
		}
	}
	return true
}

// MarshalJSON writes semesters as object keys in insertion order
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range c.semesters {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(c.calendars[label])
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", label, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a catalog object, keeping the key order of the input
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("catalog: expected object, got %v", tok)
	}

	decoded := NewCatalog()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("catalog: expected semester label, got %v", tok)
		}

		var cal Calendar
		if err := dec.Decode(&cal); err != nil {
			return fmt.Errorf("catalog semester %q: %w", label, err)
		}
		if cal == nil {
			cal = Calendar{}
		}
		decoded.Add(label, cal)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	*c = *decoded
	return nil
}
