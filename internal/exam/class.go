package exam

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tells which shape a Class has.
type Kind int

const (
	// KindRecurring is a class meeting on fixed weekdays at a fixed time.
	KindRecurring Kind = iota + 1
	// KindSpan is a class identified by a time range, e.g. evening sections.
	KindSpan
	// KindNamed is a class identified only by its label.
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindRecurring:
		return "recurring"
	case KindSpan:
		return "span"
	case KindNamed:
		return "named"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Class identifies a class the way one exam table cell describes it.
// Class is comparable and is used directly as a map key.
type Class struct {
	kind  Kind
	days  WeekdaySet
	at    Clock
	span  TimeRange
	label string
}

// Recurring creates a class meeting on days at the given start time.
func Recurring(days WeekdaySet, at Clock) Class {
	return Class{kind: KindRecurring, days: days, at: at}
}

// Span creates a class identified by a start and end time.
func Span(start, end Clock) Class {
	return Class{kind: KindSpan, span: TimeRange{Start: start, End: end}}
}

// Named creates a class identified by a free-text label such as "CH 101".
func Named(label string) Class {
	return Class{kind: KindNamed, label: label}
}

// Kind reports which of the three forms c takes.
func (c Class) Kind() Kind { return c.kind }

// Days returns the meeting days of a recurring class.
func (c Class) Days() WeekdaySet { return c.days }

// At returns the start time of a recurring class.
func (c Class) At() Clock { return c.at }

// TimeRange returns the bounds of a span class.
func (c Class) TimeRange() TimeRange { return c.span }

// Label returns the text of a named class.
func (c Class) Label() string { return c.label }

// String returns the encoded form, see EncodeClass
func (c Class) String() string {
	return EncodeClass(c)
}

// commonSentinel heads the non-class rows of the table.
const commonSentinel = "Common:"

// classEntry matches "9:00 a.m. MWF" and similar: a clock followed, possibly
// after other text, by a weekday code.
var classEntry = regexp.MustCompile(`(\d{1,2}:\d{1,2} [ap]\.m\.).*(?:M|Tu|W|Th|F)`)

// andSeparator matches "and" as a whole word, so "Landscape" is not a range.
var andSeparator = regexp.MustCompile(`\s+and\s+`)

// classRule is one way of reading cell text. match returns the pieces build
// needs, or false when the rule does not apply.
type classRule struct {
	name  string
	match func(text string) ([]string, bool)
	build func(parts []string) ([]Class, error)
}

// classRules are evaluated in order and the first match wins. The order
// resolves the ambiguity of the source text and must not change.
var classRules = []classRule{
	{name: "recurring", match: matchRecurring, build: buildRecurring},
	{name: "dash range", match: matchDashRange, build: buildSpan},
	{name: "and range", match: matchAndRange, build: buildOpenSpan},
	{name: "named", match: matchNamed, build: buildNamed},
}

// ParseClasses reads one table cell's text into the classes it lists.
// Empty text and the "Common:" marker yield no classes. A malformed time in a
// day/time or range cell is an error; it never falls back to a named class.
func ParseClasses(text string) ([]Class, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == commonSentinel {
		return nil, nil
	}

	for _, rule := range classRules {
		parts, ok := rule.match(text)
		if !ok {
			continue
		}
		classes, err := rule.build(parts)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as %s: %w", text, rule.name, err)
		}
		return classes, nil
	}
	return nil, nil
}

func matchRecurring(text string) ([]string, bool) {
	m := classEntry.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	return []string{m[1], text}, true
}

func buildRecurring(parts []string) ([]Class, error) {
	at, err := ParseClock(parts[0])
	if err != nil {
		return nil, err
	}
	runs, err := WeekdayRuns(parts[1])
	if err != nil {
		return nil, err
	}

	seen := make(map[WeekdaySet]bool)
	classes := make([]Class, 0, len(runs))
	for _, run := range runs {
		days := NewWeekdaySet(run...)
		if days.Empty() || seen[days] {
			continue
		}
		seen[days] = true
		classes = append(classes, Recurring(days, at))
	}
	return classes, nil
}

func matchDashRange(text string) ([]string, bool) {
	return splitPair(strings.ReplaceAll(text, "–", "-"), "-")
}

func buildSpan(parts []string) ([]Class, error) {
	start, err := ParseClock(parts[0])
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return nil, err
	}
	return []Class{Span(start, end)}, nil
}

func matchAndRange(text string) ([]string, bool) {
	parts := andSeparator.Split(text, -1)
	if len(parts) != 2 {
		return nil, false
	}
	return []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}, true
}

// buildOpenSpan handles "6:00 p.m. and later", where later means end of day.
func buildOpenSpan(parts []string) ([]Class, error) {
	if strings.EqualFold(parts[1], "later") {
		parts = []string{parts[0], "11:59 p.m."}
	}
	return buildSpan(parts)
}

func matchNamed(text string) ([]string, bool) {
	pieces := strings.Split(text, ",")
	labels := make([]string, 0, len(pieces))
	for _, p := range pieces {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels, true
}

func buildNamed(labels []string) ([]Class, error) {
	classes := make([]Class, len(labels))
	for i, label := range labels {
		classes[i] = Named(label)
	}
	return classes, nil
}

// splitPair splits text on sep and reports whether there were exactly two parts.
func splitPair(text, sep string) ([]string, bool) {
	parts := strings.Split(text, sep)
	if len(parts) != 2 {
		return nil, false
	}
	return []string{strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])}, true
}
