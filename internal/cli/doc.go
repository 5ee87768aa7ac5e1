// Package cli implements the command-line interface for exam-calendar.
//
// The cli package provides the Cobra-based CLI with commands to fetch and save
// the exam catalog, list semesters and their classes, and look up a single
// class's exam, optionally exporting it as an iCalendar file. Output is text or
// JSON on stdout; logs go to stderr. It coordinates the config, scraper,
// storage, filter and calendar packages.
package cli
