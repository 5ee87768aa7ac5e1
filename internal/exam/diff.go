package exam

// ChangeType describes how a class's exam differs between two catalogs.
type ChangeType string

const (
	ChangeNew     ChangeType = "new"
	ChangeMoved   ChangeType = "moved"
	ChangeRemoved ChangeType = "removed"
)

// Change is one class whose exam differs between two catalogs
type Change struct {
	Semester string     `json:"semester"`
	Class    Class      `json:"class"`
	Type     ChangeType `json:"change_type"`
	Old      *Exam      `json:"old,omitempty"`
	New      *Exam      `json:"new,omitempty"`
}

// DiffResult contains the results of comparing two catalogs
type DiffResult struct {
	NewSemesters []string  `json:"new_semesters"`
	Changes      []*Change `json:"changes"`
}

// Empty reports whether the catalogs were identical
func (d *DiffResult) Empty() bool {
	return len(d.NewSemesters) == 0 && len(d.Changes) == 0
}

// Diff compares current against a previous catalog. Semesters only present in
// previous are ignored since the page drops old semesters over time. Changes
// are ordered by semester as they appear in current, then by class.
func Diff(previous, current *Catalog) *DiffResult {
	result := &DiffResult{
		NewSemesters: make([]string, 0),
		Changes:      make([]*Change, 0),
	}

	if previous == nil {
		previous = NewCatalog()
	}

	for _, label := range current.Semesters() {
		cur, _ := current.Calendar(label)
		prev, existed := previous.Calendar(label)
		if !existed {
			result.NewSemesters = append(result.NewSemesters, label)
			continue
		}

		for _, class := range cur.Classes() {
			now := cur[class]
			before, ok := prev[class]
			switch {
			case !ok:
				result.Changes = append(result.Changes, &Change{Semester: label, Class: class, Type: ChangeNew, New: &now})
			case before != now:
				result.Changes = append(result.Changes, &Change{Semester: label, Class: class, Type: ChangeMoved, Old: &before, New: &now})
			}
		}
		for _, class := range prev.Classes() {
			if _, ok := cur[class]; !ok {
				before := prev[class]
				result.Changes = append(result.Changes, &Change{Semester: label, Class: class, Type: ChangeRemoved, Old: &before})
			}
		}
	}

	return result
}
