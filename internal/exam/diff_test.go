package exam

import (
	"testing"
	"time"
)

func TestDiff(t *testing.T) {
	slot := TimeRange{Start: NewClock(8, 0), End: NewClock(11, 0)}
	dec11 := Exam{Date: Date{Year: 2023, Month: time.December, Day: 11}, Slot: slot}
	dec12 := Exam{Date: Date{Year: 2023, Month: time.December, Day: 12}, Slot: slot}

	ch101 := Named("CH 101")
	ch102 := Named("CH 102")
	mwf := Recurring(NewWeekdaySet(Monday, Wednesday, Friday), NewClock(9, 0))

	previous := NewCatalog()
	previous.Add("Fall 2023 Exam Calendar", Calendar{ch101: dec11, ch102: dec11, mwf: dec11})
	previous.Add("Summer 2023 Exam Calendar", Calendar{ch101: dec11})

	current := NewCatalog()
	current.Add("Fall 2023 Exam Calendar", Calendar{ch101: dec11, mwf: dec12, Named("CH 201"): dec12})
	current.Add("Spring 2024 Exam Calendar", Calendar{ch101: dec12})

	t.Run("finds new semesters", func(t *testing.T) {
		result := Diff(previous, current)

		if len(result.NewSemesters) != 1 || result.NewSemesters[0] != "Spring 2024 Exam Calendar" {
			t.Errorf("NewSemesters = %v", result.NewSemesters)
		}
	})

	t.Run("finds class changes", func(t *testing.T) {
		result := Diff(previous, current)

		want := map[Class]ChangeType{
			mwf:             ChangeMoved,
			Named("CH 201"): ChangeNew,
			ch102:           ChangeRemoved,
		}
		if len(result.Changes) != len(want) {
			t.Fatalf("got %d changes, want %d", len(result.Changes), len(want))
		}
		for _, c := range result.Changes {
			if want[c.Class] != c.Type {
				t.Errorf("change for %v = %s, want %s", c.Class, c.Type, want[c.Class])
			}
			if c.Type == ChangeMoved && (*c.Old != dec11 || *c.New != dec12) {
				t.Errorf("moved exam = %v -> %v", *c.Old, *c.New)
			}
		}
	})

	t.Run("handles nil previous catalog", func(t *testing.T) {
		result := Diff(nil, current)

		if len(result.NewSemesters) != 2 {
			t.Errorf("expected 2 new semesters, got %d", len(result.NewSemesters))
		}
		if len(result.Changes) != 0 {
			t.Errorf("expected no class changes, got %d", len(result.Changes))
		}
	})

	t.Run("identical catalogs", func(t *testing.T) {
		if result := Diff(current, current); !result.Empty() {
			t.Errorf("expected empty diff, got %+v", result)
		}
	})
}
