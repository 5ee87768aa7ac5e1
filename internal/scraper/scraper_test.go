package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const minimalPage = `
<html>
	<body>
		<h2>Fall 2023 Exam Calendar</h2>
		<table>
			<thead><tr><th>Exam Dates/Times</th><th>8:00 a.m.–10:00 a.m.</th></tr></thead>
			<tbody><tr><td>Mon. Dec 11.</td><td>9:00 a.m. MWF</td></tr></tbody>
		</table>
	</body>
</html>
`

func TestFetchCatalog(t *testing.T) {
	tests := []struct {
		name          string
		htmlContent   string
		statusCode    int
		wantError     bool
		wantSemesters int
	}{
		{
			name:          "successful fetch",
			htmlContent:   minimalPage,
			statusCode:    http.StatusOK,
			wantSemesters: 1,
		},
		{
			name:       "HTTP error",
			statusCode: http.StatusNotFound,
			wantError:  true,
		},
		{
			name:        "server error",
			htmlContent: "oops",
			statusCode:  http.StatusInternalServerError,
			wantError:   true,
		},
		{
			name: "page without semesters",
			htmlContent: `
				<html>
					<body>
						<p>Exam calendars will be posted soon.</p>
					</body>
				</html>
			`,
			statusCode:    http.StatusOK,
			wantSemesters: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "exam-calendar") {
					t.Errorf("User-Agent = %q, should contain 'exam-calendar'", userAgent)
				}
				if r.Method != http.MethodGet {
					t.Errorf("Method = %s, want GET", r.Method)
				}

				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.htmlContent)) // nolint:errcheck
			}))
			defer server.Close()

			s := New(WithURL(server.URL))
			catalog, err := s.FetchCatalog(context.Background())

			if tt.wantError {
				if err == nil {
					t.Error("FetchCatalog() expected error, got nil")
				}
				if !errors.Is(err, ErrUnexpectedStatus) {
					t.Errorf("FetchCatalog() error = %v, want ErrUnexpectedStatus", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchCatalog() unexpected error: %v", err)
			}
			if catalog.Len() != tt.wantSemesters {
				t.Errorf("FetchCatalog() returned %d semesters, want %d", catalog.Len(), tt.wantSemesters)
			}
		})
	}
}

func TestFetchDocument_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(minimalPage)) // nolint:errcheck
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(WithURL(server.URL)).FetchDocument(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("FetchDocument() error = %v, want context.Canceled", err)
	}
}

func TestFetchDocument_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	if _, err := New(WithURL(url)).FetchDocument(context.Background()); err == nil {
		t.Error("FetchDocument() expected error for closed server")
	}
}

func TestNew(t *testing.T) {
	s := New()

	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.client == nil {
		t.Error("scraper client is nil")
	}
	if s.client.Timeout != Timeout {
		t.Errorf("client timeout = %v, want %v", s.client.Timeout, Timeout)
	}
	if s.URL() != ExamCalendarURL {
		t.Errorf("scraper url = %q, want %q", s.URL(), ExamCalendarURL)
	}
}

func TestNew_Options(t *testing.T) {
	client := &http.Client{Timeout: time.Second}
	s := New(WithURL("https://example.edu/exams"), WithHTTPClient(client))

	if s.URL() != "https://example.edu/exams" {
		t.Errorf("URL() = %q", s.URL())
	}
	if s.client != client {
		t.Error("WithHTTPClient() did not replace the client")
	}
}
