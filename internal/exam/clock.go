package exam

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a wall-clock time of day with no date or zone attached.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// NewClock creates a Clock for hour:minute
func NewClock(hour, minute int) Clock {
	return Clock{Hour: hour, Minute: minute}
}

// String renders the clock as 15:04:05
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// Format renders the clock with a time package layout
func (c Clock) Format(layout string) string {
	return time.Date(0, time.January, 1, c.Hour, c.Minute, c.Second, 0, time.UTC).Format(layout)
}

// Before reports whether c is earlier in the day than other
func (c Clock) Before(other Clock) bool {
	return c.seconds() < other.seconds()
}

// On places the clock on a calendar date in loc
func (c Clock) On(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.Hour, c.Minute, c.Second, 0, loc)
}

func (c Clock) seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// TimeRange is a [Start, End) span of the day.
type TimeRange struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// String renders the range as start..end
func (r TimeRange) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// MarshalText encodes the clock as 15:04:05
func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts anything ParseClock does
func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Layouts tried, in order, after periods are stripped and the text is lowercased.
// "9:00 a.m." arrives here as "9:00 am".
var clockLayouts = []string{
	"3:04 pm",
	"3:04pm",
	"3 pm",
	"3pm",
	"15:04:05",
	"15:04",
}

// ParseClock parses the time-of-day literals found on the exam calendar,
// such as "9:00 a.m.", "11:59 p.m.", "6 pm" or "08:00:00".
func ParseClock(text string) (Clock, error) {
	normalized := strings.ToLower(strings.ReplaceAll(text, ".", ""))
	normalized = strings.Join(strings.Fields(normalized), " ")

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, normalized)
		if err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return Clock{}, fmt.Errorf("%w: %q", ErrInvalidTime, text)
}

// ParseSlot parses an exam slot header cell such as "8:00 a.m.–11:00 a.m.".
// The two ends are separated by an en-dash.
func ParseSlot(text string) (TimeRange, error) {
	parts := strings.Split(strings.ReplaceAll(text, ".", ""), "–")
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("%w: %q is not two times separated by \"–\"", ErrInvalidSlot, text)
	}

	start, err := ParseClock(strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: start of %q: %w", ErrInvalidSlot, text, err)
	}
	end, err := ParseClock(strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("%w: end of %q: %w", ErrInvalidSlot, text, err)
	}
	return TimeRange{Start: start, End: end}, nil
}
