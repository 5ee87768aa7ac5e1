package exam

import "fmt"

// Layouts used when exams are shown to people rather than stored.
const (
	DisplayDateLayout = "Monday, January 2"
	DisplayTimeLayout = "3:04 PM"
)

// DisplayDate renders the exam day, e.g. "Monday, December 11"
func (e Exam) DisplayDate() string {
	return e.Date.Format(DisplayDateLayout)
}

// DisplaySlot renders the exam slot, e.g. "8:00 AM - 10:00 AM"
func (e Exam) DisplaySlot() string {
	return DisplayRange(e.Slot)
}

// DisplayRange renders a time range in 12-hour form
func DisplayRange(r TimeRange) string {
	return r.Start.Format(DisplayTimeLayout) + " - " + r.End.Format(DisplayTimeLayout)
}

// Describe renders a class the way a student would name it:
// "MWF 9:00 AM", "6:00 PM - 11:59 PM" or the course label.
func Describe(c Class) string {
	switch c.Kind() {
	case KindRecurring:
		return fmt.Sprintf("%s %s", c.Days().Code(), c.At().Format(DisplayTimeLayout))
	case KindSpan:
		return DisplayRange(c.TimeRange())
	default:
		return c.Label()
	}
}
