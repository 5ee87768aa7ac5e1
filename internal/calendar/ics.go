package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/pfrederiksen/exam-calendar/internal/exam"
)

// ProductID identifies this tool in exported calendars.
const ProductID = "-//Exam Calendar//exam-calendar//EN"

// Entry is one class and its exam to export.
type Entry struct {
	Class exam.Class
	Exam  exam.Exam
}

// GenerateICS generates an iCalendar (.ics) file with one event per entry,
// named after the semester. Exam times are wall-clock times on campus, so they
// are placed in loc before being written out in UTC.
func GenerateICS(semester string, entries []Entry, loc *time.Location) string {
	if len(entries) == 0 {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	if semester != "" {
		cal.SetXWRCalName(semester)
	}

	now := time.Now().UTC()
	for _, entry := range entries {
		e := entry.Exam

		event := cal.AddEvent(EventUID(semester, entry.Class))
		event.SetDtStampTime(now)
		event.SetStartAt(e.Slot.Start.On(e.Date, loc))
		event.SetEndAt(e.Slot.End.On(e.Date, loc))
		event.SetSummary(fmt.Sprintf("Final Exam: %s", exam.Describe(entry.Class)))
		event.SetDescription(describeEntry(semester, entry))
	}

	return cal.Serialize()
}

// EventUID derives a stable UID for a class's exam so re-exporting the same
// semester updates calendar entries instead of duplicating them.
func EventUID(semester string, class exam.Class) string {
	name := strings.Join([]string{"exam-calendar", semester, exam.EncodeClass(class)}, "\n")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String() + "@exam-calendar"
}

func describeEntry(semester string, entry Entry) string {
	var b strings.Builder
	b.WriteString(semester)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Class: %s\n", exam.Describe(entry.Class))
	fmt.Fprintf(&b, "Exam: %s %s", entry.Exam.DisplayDate(), entry.Exam.DisplaySlot())
	return b.String()
}
