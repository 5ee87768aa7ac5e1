package exam

import (
	"fmt"
	"regexp"
	"strings"
)

// EncodeClass renders a class in its canonical textual form:
//
//	Recurring  "[Monday, Wednesday, Friday] 09:00:00"
//	Span       "08:00:00..10:00:00"
//	Named      the label itself
//
// DecodeClass reverses it for every class ParseClasses can produce.
func EncodeClass(c Class) string {
	switch c.kind {
	case KindRecurring:
		return c.days.String() + " " + c.at.String()
	case KindSpan:
		return c.span.String()
	default:
		return c.label
	}
}

var (
	weekdayPattern = "(?:" + strings.Join(weekdayNames[:], "|") + ")"

	// encodedRecurring matches the exact shape EncodeClass gives a recurring class.
	encodedRecurring = regexp.MustCompile(`^\[(` + weekdayPattern + `(?:, ` + weekdayPattern + `)*)\] (\d\d:\d\d:\d\d)$`)

	encodedClock = regexp.MustCompile(`^\d\d:\d\d:\d\d$`)
)

// DecodeClass parses the output of EncodeClass. Only strings with the exact
// recurring or span shape decode as those kinds; anything else is a label, so
// "CSC 116 [Lab]" and "Topics..Special" stay named. Errors name the segment
// that could not be read and wrap ErrDecode.
func DecodeClass(s string) (Class, error) {
	if m := encodedRecurring.FindStringSubmatch(s); m != nil {
		return decodeRecurring(m[1], m[2])
	}

	if start, end, ok := strings.Cut(s, ".."); ok && encodedClock.MatchString(start) && encodedClock.MatchString(end) {
		from, err := ParseClock(start)
		if err != nil {
			return Class{}, fmt.Errorf("%w: range start %q: %w", ErrDecode, start, err)
		}
		to, err := ParseClock(end)
		if err != nil {
			return Class{}, fmt.Errorf("%w: range end %q: %w", ErrDecode, end, err)
		}
		return Span(from, to), nil
	}

	return Named(s), nil
}

func decodeRecurring(list, clock string) (Class, error) {
	var days WeekdaySet
	for _, name := range strings.Split(list, ", ") {
		day, err := ParseWeekdayName(name)
		if err != nil {
			return Class{}, fmt.Errorf("%w: weekday list %q: %w", ErrDecode, list, err)
		}
		days = days.With(day)
	}

	at, err := ParseClock(clock)
	if err != nil {
		return Class{}, fmt.Errorf("%w: time %q: %w", ErrDecode, clock, err)
	}
	return Recurring(days, at), nil
}

// MarshalText implements encoding.TextMarshaler so a Class can be a JSON object key.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(EncodeClass(c)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Class) UnmarshalText(text []byte) error {
	decoded, err := DecodeClass(string(text))
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}
