package exam

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func sampleCalendar() Calendar {
	slot := TimeRange{Start: NewClock(8, 0), End: NewClock(11, 0)}
	return Calendar{
		Recurring(NewWeekdaySet(Monday, Wednesday, Friday), NewClock(9, 0)): {Date: Date{2023, time.December, 11}, Slot: slot},
		Span(NewClock(18, 0), NewClock(23, 59)):                             {Date: Date{2023, time.December, 12}, Slot: slot},
		Named("CSC 116"):                                                    {Date: Date{2023, time.December, 13}, Slot: slot},
	}
}

func TestExam_JSON(t *testing.T) {
	e := Exam{
		Date: Date{2023, time.December, 11},
		Slot: TimeRange{Start: NewClock(8, 0), End: NewClock(10, 0)},
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `["2023-12-11",{"start":"08:00:00","end":"10:00:00"}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var got Exam
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got != e {
		t.Errorf("Unmarshal() = %+v, want %+v", got, e)
	}
}

func TestExam_UnmarshalErrors(t *testing.T) {
	inputs := []string{
		`{"date":"2023-12-11"}`,
		`["2023-12-11"]`,
		`["12/11/2023",{"start":"08:00:00","end":"10:00:00"}]`,
		`["2023-12-11",{"start":"breakfast","end":"10:00:00"}]`,
	}
	for _, in := range inputs {
		var e Exam
		if err := json.Unmarshal([]byte(in), &e); err == nil {
			t.Errorf("Unmarshal(%s) expected error", in)
		}
	}
}

func TestCalendar_Classes(t *testing.T) {
	cal := sampleCalendar()
	cal[Recurring(NewWeekdaySet(Monday, Wednesday, Friday), NewClock(8, 0))] = Exam{}
	cal[Named("ART 101")] = Exam{}

	got := cal.Classes()
	want := []Class{
		Recurring(NewWeekdaySet(Monday, Wednesday, Friday), NewClock(8, 0)),
		Recurring(NewWeekdaySet(Monday, Wednesday, Friday), NewClock(9, 0)),
		Span(NewClock(18, 0), NewClock(23, 59)),
		Named("ART 101"),
		Named("CSC 116"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Classes() = %v, want %v", got, want)
	}
}

func TestCalendar_Lookup(t *testing.T) {
	cal := sampleCalendar()

	e, ok := cal.Lookup(Named("CSC 116"))
	if !ok {
		t.Fatal("Lookup() did not find CSC 116")
	}
	if e.Date != (Date{2023, time.December, 13}) {
		t.Errorf("Lookup() date = %v", e.Date)
	}

	if _, ok := cal.Lookup(Named("CSC 216")); ok {
		t.Error("Lookup() found a class that is not on the calendar")
	}
}

func TestCatalog_Order(t *testing.T) {
	c := NewCatalog()
	c.Add("Spring 2024 Exam Calendar", Calendar{})
	c.Add("Fall 2023 Exam Calendar", sampleCalendar())
	c.Add("Summer 2024 Exam Calendar", Calendar{})
	c.Add("Spring 2024 Exam Calendar", sampleCalendar())

	want := []string{"Spring 2024 Exam Calendar", "Fall 2023 Exam Calendar", "Summer 2024 Exam Calendar"}
	if got := c.Semesters(); !reflect.DeepEqual(got, want) {
		t.Errorf("Semesters() = %v, want %v", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if cal, _ := c.Calendar("Spring 2024 Exam Calendar"); len(cal) != 3 {
		t.Errorf("re-added semester has %d classes, want 3", len(cal))
	}
}

func TestCatalog_JSONRoundTrip(t *testing.T) {
	c := NewCatalog()
	c.Add("Spring 2024 Exam Calendar", sampleCalendar())
	c.Add("Fall 2023 Exam Calendar", sampleCalendar())
	c.Add("Summer 2024 Exam Calendar", Calendar{})

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// Semesters follow insertion order, not alphabetical order.
	spring := strings.Index(string(data), "Spring 2024")
	fall := strings.Index(string(data), "Fall 2023")
	if spring < 0 || fall < 0 || spring > fall {
		t.Errorf("Marshal() semester order wrong: %s", data)
	}
	if !strings.Contains(string(data), `"[Monday, Wednesday, Friday] 09:00:00":["2023-12-11",{"start":"08:00:00","end":"11:00:00"}]`) {
		t.Errorf("Marshal() missing encoded recurring class: %s", data)
	}

	decoded := NewCatalog()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !decoded.Equal(c) {
		t.Errorf("round trip mismatch:\n got  %v\n want %v", decoded.Semesters(), c.Semesters())
	}
}

func TestCatalog_UnmarshalErrors(t *testing.T) {
	inputs := []string{
		`[]`,
		`{"Fall 2023 Exam Calendar": {"[Someday] 09:00:00": ["2023-12-11", {"start":"08:00:00","end":"10:00:00"}]}}`,
		`{"Fall 2023 Exam Calendar": 5}`,
		`{"Fall 2023 Exam Calendar": {}`,
	}
	for _, in := range inputs {
		c := NewCatalog()
		if err := json.Unmarshal([]byte(in), c); err == nil {
			t.Errorf("Unmarshal(%s) expected error", in)
		}
	}
}

func TestCatalog_Equal(t *testing.T) {
	a := NewCatalog()
	a.Add("Fall 2023 Exam Calendar", sampleCalendar())
	b := NewCatalog()
	b.Add("Fall 2023 Exam Calendar", sampleCalendar())

	if !a.Equal(b) {
		t.Error("identical catalogs should be equal")
	}

	changed := sampleCalendar()
	changed[Named("CSC 116")] = Exam{Date: Date{2023, time.December, 14}}
	c := NewCatalog()
	c.Add("Fall 2023 Exam Calendar", changed)
	if a.Equal(c) {
		t.Error("catalogs with different exams should not be equal")
	}
}
