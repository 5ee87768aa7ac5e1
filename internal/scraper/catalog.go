package scraper

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/exam-calendar/internal/exam"
	"github.com/pfrederiksen/exam-calendar/internal/logger"
)

// semesterSuffix ends every semester heading, e.g. "Fall 2023 Exam Calendar".
const semesterSuffix = "Exam Calendar"

// Structural errors. Any of them aborts the whole extraction.
var (
	ErrMissingSemesterYear        = errors.New("semester heading has no year")
	ErrSemesterTableCountMismatch = errors.New("number of semesters does not match number of exam tables")
)

var semesterYear = regexp.MustCompile(`(\d{4}) ` + semesterSuffix + `$`)

// Only h2 headings name semesters. Page titles and section headings at other
// levels may also end in "Exam Calendar".
const headingSelector = "h2"

type semester struct {
	label string
	year  string
}

// ParseCatalog extracts every semester on the page.
//
// Semester headings and exam tables are found independently and paired in
// document order. Tables that are not exam tables are skipped. If the number
// of exam tables differs from the number of semester headings the pairing
// cannot be trusted and no catalog is returned.
func ParseCatalog(doc *goquery.Document) (*exam.Catalog, error) {
	semesters, err := findSemesters(doc)
	if err != nil {
		return nil, err
	}

	calendars := make([]exam.Calendar, 0, len(semesters))
	skipped := 0
	var tableErr error
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		// The header decides whether this is an exam table at all, before a
		// semester year is spent on it.
		if _, err := parseHeader(table); errors.Is(err, ErrNotAnExamTable) {
			skipped++
			logger.Debug("Skipping table", logger.Fields{"table": i + 1, "reason": err.Error()})
			return true
		}

		next := len(calendars)
		if next >= len(semesters) {
			tableErr = fmt.Errorf("%w: found more than %d exam tables for %d semesters",
				ErrSemesterTableCountMismatch, len(semesters), len(semesters))
			return false
		}

		cal, err := ParseTable(semesters[next].year, table)
		if err != nil {
			tableErr = fmt.Errorf("parsing table for %q: %w", semesters[next].label, err)
			return false
		}
		calendars = append(calendars, cal)
		return true
	})
	if tableErr != nil {
		return nil, tableErr
	}

	logger.IncrCounterBy("scraper.tables.parsed", int64(len(calendars)))
	logger.IncrCounterBy("scraper.tables.skipped", int64(skipped))

	if len(calendars) != len(semesters) {
		return nil, fmt.Errorf("%w: %d semesters, %d exam tables",
			ErrSemesterTableCountMismatch, len(semesters), len(calendars))
	}

	catalog := exam.NewCatalog()
	for i, sem := range semesters {
		catalog.Add(sem.label, calendars[i])
	}

	logger.Info("Parsed exam catalog", logger.Fields{
		"semesters": len(semesters),
		"skipped":   skipped,
	})
	return catalog, nil
}

// findSemesters returns the semester headings in document order with the
// year each one names.
func findSemesters(doc *goquery.Document) ([]semester, error) {
	var semesters []semester
	var yearErr error
	doc.Find(headingSelector).EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		label := strings.Join(strings.Fields(heading.Text()), " ")
		if !strings.HasSuffix(label, semesterSuffix) {
			return true
		}
		m := semesterYear.FindStringSubmatch(label)
		if m == nil {
			yearErr = fmt.Errorf("%w: %q does not match %q", ErrMissingSemesterYear, label, semesterYear.String())
			return false
		}
		semesters = append(semesters, semester{label: label, year: m[1]})
		return true
	})
	if yearErr != nil {
		return nil, yearErr
	}
	return semesters, nil
}
