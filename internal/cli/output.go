package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/exam-calendar/internal/exam"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ClassesResult lists what can be looked up in one semester
type ClassesResult struct {
	Semester string   `json:"semester"`
	Selected string   `json:"selected_days,omitempty"`
	Days     []string `json:"days"`
	Times    []string `json:"times"`
	Spans    []string `json:"spans"`
	Names    []string `json:"names"`
}

// LookupResult describes one class's exam
type LookupResult struct {
	Semester    string `json:"semester"`
	Class       string `json:"class"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`

	exam exam.Exam
}

// NewLookupResult builds the result for a found exam
func NewLookupResult(semester string, class exam.Class, e exam.Exam) *LookupResult {
	return &LookupResult{
		Semester:    semester,
		Class:       exam.EncodeClass(class),
		Description: exam.Describe(class),
		Date:        e.Date.String(),
		Start:       e.Slot.Start.String(),
		End:         e.Slot.End.String(),
		exam:        e,
	}
}

// WriteSemesters writes semester labels in the specified format
func WriteSemesters(w io.Writer, semesters []string, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, semesters)
	case FormatText:
		if len(semesters) == 0 {
			fmt.Fprintln(w, "No semesters found.")
			return nil
		}
		for _, s := range semesters {
			fmt.Fprintln(w, s)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteClasses writes a semester's classes in the specified format
func WriteClasses(w io.Writer, result *ClassesResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeClassesText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeClassesText(w io.Writer, result *ClassesResult) error {
	fmt.Fprintf(w, "%s\n", result.Semester)

	fmt.Fprintf(w, "\nMeeting days: %s\n", orNone(strings.Join(result.Days, ", ")))

	if result.Selected != "" {
		fmt.Fprintf(w, "\nStart times (%s):\n", result.Selected)
	} else {
		fmt.Fprintln(w, "\nStart times:")
	}
	writeList(w, result.Times)

	fmt.Fprintln(w, "\nTime spans:")
	writeList(w, result.Spans)

	fmt.Fprintln(w, "\nCourses:")
	writeList(w, result.Names)

	return nil
}

func writeList(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// WriteLookup writes a found exam in the specified format
func WriteLookup(w io.Writer, result *LookupResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		fmt.Fprintf(w, "%s (%s)\n", result.Description, result.Semester)
		fmt.Fprintf(w, "  Exam: %s\n", result.exam.DisplayDate())
		fmt.Fprintf(w, "  Time: %s\n", result.exam.DisplaySlot())
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as indented JSON
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func weekdayNames(days []exam.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.String())
	}
	return names
}

func clockNames(clocks []exam.Clock) []string {
	names := make([]string, 0, len(clocks))
	for _, c := range clocks {
		names = append(names, c.Format(exam.DisplayTimeLayout))
	}
	return names
}

func rangeNames(ranges []exam.TimeRange) []string {
	names := make([]string, 0, len(ranges))
	for _, r := range ranges {
		names = append(names, exam.DisplayRange(r))
	}
	return names
}
