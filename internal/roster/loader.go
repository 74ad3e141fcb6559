package roster

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Header variants seen across roster spreadsheet revisions.
// The loader owns all schema tolerance so the rest of the system only
// ever sees the canonical Record shape.
var headerAliases = map[string]string{
	"name":                  "name",
	"title":                 "title",
	"twitter/github":        "social",
	"social":                "social",
	"website":               "website",
	"contact (mail)":        "contact",
	"contact":               "contact",
	"what am i building?":   "project",
	"currently building":    "project",
	"/whoami (description)": "whoami",
	"whoami":                "whoami",
	"description":           "whoami",
	"ai_description":        "ai",
}

// Loader fetches and parses the roster CSV into normalized records.
// The source is either a URL (Google Sheet CSV export) or a local file.
type Loader struct {
	url     string
	path    string
	client  *http.Client
	timeout time.Duration
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithHTTPClient overrides the HTTP client used for URL sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		l.client = c
	}
}

// NewURLLoader creates a loader that fetches the roster from a URL.
func NewURLLoader(url string, opts ...LoaderOption) *Loader {
	l := &Loader{
		url:     url,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// NewFileLoader creates a loader that reads the roster from a local file.
func NewFileLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the local file path, or empty for URL sources.
func (l *Loader) Path() string {
	return l.path
}

// Load fetches and parses the roster source.
func (l *Loader) Load(ctx context.Context) ([]Record, error) {
	var body io.ReadCloser

	switch {
	case l.path != "":
		f, err := os.Open(l.path)
		if err != nil {
			return nil, fmt.Errorf("open roster file: %w", err)
		}
		body = f
	case l.url != "":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
		if err != nil {
			return nil, fmt.Errorf("build roster request: %w", err)
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch roster: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("fetch roster: unexpected status %d", resp.StatusCode)
		}
		body = resp.Body
	default:
		return nil, fmt.Errorf("no roster source configured")
	}
	defer func() { _ = body.Close() }()

	records, err := Parse(body)
	if err != nil {
		return nil, err
	}

	slog.Info("roster_loaded",
		slog.Int("records", len(records)),
		slog.String("source", l.source()))

	return records, nil
}

func (l *Loader) source() string {
	if l.path != "" {
		return l.path
	}
	return l.url
}

// Parse reads CSV data with a header row and normalizes it into records.
// Unknown columns are ignored; rows without a name are dropped.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // sheet exports have ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("roster is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}

	// Map column index -> canonical field key.
	columns := make(map[int]string, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := headerAliases[key]; ok {
			columns[i] = canonical
		}
	}

	var records []Record
	var dropped int
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}

		rec := recordFromRow(row, columns)
		if !rec.Valid() {
			dropped++
			continue
		}
		records = append(records, rec)
	}

	if dropped > 0 {
		slog.Debug("roster_rows_dropped", slog.Int("count", dropped))
	}

	return records, nil
}

func recordFromRow(row []string, columns map[int]string) Record {
	var rec Record
	for i, value := range row {
		field, ok := columns[i]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch field {
		case "name":
			rec.Name = value
		case "title":
			rec.Title = value
		case "social":
			rec.SocialLink = value
		case "website":
			rec.Website = value
		case "contact":
			rec.Contact = value
		case "project":
			rec.CurrentProject = value
		case "whoami":
			rec.SelfDescription = value
		case "ai":
			rec.AIDescription = value
		}
	}
	return rec
}
