package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/exam-calendar/internal/exam"
	"github.com/pfrederiksen/exam-calendar/internal/logger"
)

const (
	ExamCalendarURL = "https://studentservices.ncsu.edu/calendars/exam-calendar/"
	UserAgent       = "exam-calendar-cli/1.0 (github.com/pfrederiksen/exam-calendar)"
	Timeout         = 30 * time.Second
)

// ErrUnexpectedStatus is returned when the calendar page does not answer 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Scraper fetches and parses the exam calendar page
type Scraper struct {
	client *http.Client
	url    string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithURL points the scraper at a different page
func WithURL(url string) Option {
	return func(s *Scraper) {
		s.url = url
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		s.client = client
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url: ExamCalendarURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page the scraper fetches
func (s *Scraper) URL() string {
	return s.url
}

// FetchDocument downloads the calendar page and parses it into a document tree
func (s *Scraper) FetchDocument(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	doc, err := parseDocument(resp.Body)
	if err != nil {
		return nil, err
	}

	logger.RecordTiming("scraper.fetch", time.Since(start))
	logger.Debug("Fetched exam calendar page", logger.Fields{
		"url":    s.url,
		"status": resp.StatusCode,
	})
	return doc, nil
}

// FetchCatalog fetches the page and extracts every semester's calendar
func (s *Scraper) FetchCatalog(ctx context.Context) (*exam.Catalog, error) {
	doc, err := s.FetchDocument(ctx)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(doc)
}

// ParseCatalogHTML reads an HTML page from r and extracts its catalog
func ParseCatalogHTML(r io.Reader) (*exam.Catalog, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(doc)
}

func parseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
