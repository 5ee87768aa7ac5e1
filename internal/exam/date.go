package exam

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day with no time or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar day
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// String renders the date as 2006-01-02
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Format renders the date with a time package layout
func (d Date) Format(layout string) string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(layout)
}

// Before reports whether d is an earlier day than other
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// MarshalText encodes the date as 2006-01-02
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a 2006-01-02 date
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse("2006-01-02", string(text))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, string(text))
	}
	*d = DateOf(t)
	return nil
}

// ParseExamDate parses the date column of an exam table, e.g. "Mon., Dec. 11."
// or "Monday, December 11.", in the given year. The leading weekday word is
// ignored. Abbreviated month names are tried before full ones.
func ParseExamDate(text, year string) (Date, error) {
	cleaned := strings.ReplaceAll(text, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	_, monthDay, found := strings.Cut(cleaned, " ")
	if !found {
		return Date{}, fmt.Errorf("%w: unexpected format (no space): %q", ErrInvalidDate, text)
	}
	value := monthDay + " " + year + " 00:00"

	// Try "Dec 11 2023" format
	t, err := time.Parse("Jan 2 2006 15:04", value)
	if err == nil {
		return DateOf(t), nil
	}

	// Try "December 11 2023" format
	t, err = time.Parse("January 2 2006 15:04", value)
	if err == nil {
		return DateOf(t), nil
	}

	return Date{}, fmt.Errorf("%w: %q in %s", ErrInvalidDate, text, year)
}
