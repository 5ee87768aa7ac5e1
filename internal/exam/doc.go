// Package exam provides the typed model of a published exam calendar.
//
// A Catalog maps each semester label to a Calendar, and a Calendar maps each
// Class to its Exam. Classes come in three shapes: recurring (weekday codes
// plus a start time, "9:00 a.m. MWF"), span ("8:00 a.m. - 10:00 a.m.") and
// named ("CH 101"). ParseClasses reads them from table cell text and
// EncodeClass/DecodeClass give the canonical textual form used as JSON keys.
package exam
