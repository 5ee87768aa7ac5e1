package scraper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/exam-calendar/internal/exam"
)

// examTableMarker is the text of the first header cell of every exam table.
const examTableMarker = "Exam Dates/Times"

// ErrNotAnExamTable marks a table that is not an exam schedule. Catalog
// extraction skips such tables.
var ErrNotAnExamTable = errors.New("not an exam table")

// ParseTable reads one semester's exam table. year is the semester's year as
// printed in its heading and completes the month/day dates of the body rows.
//
// The header row holds the exam slots. Each body row starts with the exam
// date followed by one cell per slot listing the classes examined then.
func ParseTable(year string, table *goquery.Selection) (exam.Calendar, error) {
	slots, err := parseHeader(table)
	if err != nil {
		return nil, err
	}

	body := table.ChildrenFiltered("tbody").First()
	if body.Length() == 0 {
		return nil, fmt.Errorf("exam table has no body")
	}

	cal := make(exam.Calendar)
	var rowErr error
	body.ChildrenFiltered("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if err := parseRow(cal, year, slots, row); err != nil {
			rowErr = fmt.Errorf("row %d: %w", i+1, err)
			return false
		}
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return cal, nil
}

// parseHeader validates the header row and returns its distinct slots in
// column order.
func parseHeader(table *goquery.Selection) ([]exam.TimeRange, error) {
	head := table.ChildrenFiltered("thead").First()
	if head.Length() == 0 {
		return nil, fmt.Errorf("%w: no table head (thead)", ErrNotAnExamTable)
	}
	cells := head.ChildrenFiltered("tr").First().ChildrenFiltered("th, td")
	if cells.Length() == 0 {
		return nil, fmt.Errorf("%w: table head row is empty", ErrNotAnExamTable)
	}

	first := strings.TrimSpace(cells.First().Text())
	if first != examTableMarker {
		return nil, fmt.Errorf("%w: table starts with %q, not %q", ErrNotAnExamTable, first, examTableMarker)
	}

	seen := make(map[exam.TimeRange]bool)
	slots := make([]exam.TimeRange, 0, cells.Length()-1)
	var slotErr error
	cells.Slice(1, cells.Length()).EachWithBreak(func(i int, cell *goquery.Selection) bool {
		slot, err := exam.ParseSlot(strings.TrimSpace(cell.Text()))
		if err != nil {
			slotErr = fmt.Errorf("header column %d: %w", i+2, err)
			return false
		}
		if !seen[slot] {
			seen[slot] = true
			slots = append(slots, slot)
		}
		return true
	})
	if slotErr != nil {
		return nil, slotErr
	}

	return slots, nil
}

// parseRow adds the classes of one body row to cal. Cells beyond the last
// slot are ignored.
func parseRow(cal exam.Calendar, year string, slots []exam.TimeRange, row *goquery.Selection) error {
	cells := row.ChildrenFiltered("td, th")
	if cells.Length() == 0 {
		return fmt.Errorf("row is empty")
	}

	date, err := exam.ParseExamDate(strings.TrimSpace(cells.First().Text()), year)
	if err != nil {
		return err
	}

	var cellErr error
	cells.Slice(1, cells.Length()).EachWithBreak(func(i int, cell *goquery.Selection) bool {
		if i >= len(slots) {
			return false
		}
		assignment := exam.Exam{Date: date, Slot: slots[i]}

		// A cell lists its classes as separate child nodes, usually text
		// broken up by <br> or wrapped in <p>.
		cell.Contents().EachWithBreak(func(_ int, child *goquery.Selection) bool {
			classes, err := exam.ParseClasses(child.Text())
			if err != nil {
				cellErr = fmt.Errorf("%s column %d: %w", date, i+2, err)
				return false
			}
			for _, c := range classes {
				cal[c] = assignment
			}
			return true
		})
		return cellErr == nil
	})
	return cellErr
}
