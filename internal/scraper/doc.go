// Package scraper provides HTTP fetching and HTML extraction for the exam calendar page.
//
// The page lists one heading per semester ("Fall 2023 Exam Calendar") and one
// table per semester. Each table's header row names the exam slots and each
// body row gives an exam date and, per slot, the classes examined then.
// ParseTable reads one such table and ParseCatalog pairs tables with
// headings across the whole document.
package scraper
