package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// PlainView renders results as plain text (for pipes, CI, one-shot
// searches). Annotations arriving after the initial render are printed
// as addendum lines keyed by name.
type PlainView struct {
	mu      sync.Mutex
	out     io.Writer
	visible []roster.Record
}

// Ensure PlainView implements View.
var _ View = (*PlainView)(nil)

// NewPlainView creates a plain text view writing to cfg.Output.
func NewPlainView(cfg Config) *PlainView {
	return &PlainView{out: cfg.Output}
}

// RenderResults implements View.
func (v *PlainView) RenderResults(records []roster.Record) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visible = records

	for i, rec := range records {
		_, _ = fmt.Fprintf(v.out, "%d. %s", i+1, rec.Name)
		if rec.Title != "" {
			_, _ = fmt.Fprintf(v.out, " — %s", rec.Title)
		}
		_, _ = fmt.Fprintln(v.out)

		if rec.SelfDescription != "" {
			_, _ = fmt.Fprintf(v.out, "   %q\n", rec.SelfDescription)
		}
		if rec.CurrentProject != "" {
			_, _ = fmt.Fprintf(v.out, "   Building: %s\n", rec.CurrentProject)
		}

		var links []string
		if rec.SocialLink != "" {
			links = append(links, "Social: "+rec.SocialLink)
		}
		if rec.Website != "" {
			links = append(links, "Website: "+rec.Website)
		}
		if rec.Contact != "" {
			links = append(links, "Contact: "+rec.Contact)
		}
		if len(links) > 0 {
			_, _ = fmt.Fprintf(v.out, "   %s\n", strings.Join(links, " | "))
		}
	}
}

// RenderStatus implements View.
func (v *PlainView) RenderStatus(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.visible = nil
	_, _ = fmt.Fprintln(v.out, message)
}

// UpdateAnnotation implements View. Updates are ignored for names not
// currently displayed.
func (v *PlainView) UpdateAnnotation(name, annotation string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, rec := range v.visible {
		if rec.Name == name {
			_, _ = fmt.Fprintf(v.out, "AI: %s: %s\n", name, annotation)
			return
		}
	}
}

// SettleAnnotations implements View. Plain output has no pending
// indicator, so there is nothing to clear.
func (v *PlainView) SettleAnnotations() {}
