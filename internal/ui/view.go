// Package ui provides the terminal view layer for the directory search
// widget: an interactive TUI for terminals and a plain text view for
// pipes and CI. The core hands the view either an ordered result set
// or a status line, and later mutates annotation slots by name.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// View is the rendering contract consumed by the search core.
// RenderResults and RenderStatus replace the whole display;
// UpdateAnnotation mutates one displayed record's annotation slot
// without disturbing order, count, or identity.
type View interface {
	// RenderResults displays the ordered result set as cards.
	RenderResults(records []roster.Record)

	// RenderStatus displays a one-line status message ("loading",
	// "no results", error text) in place of results.
	RenderStatus(message string)

	// UpdateAnnotation sets the annotation slot of the record
	// currently displayed under the given name.
	UpdateAnnotation(name, annotation string)

	// SettleAnnotations signals that enrichment finished for the
	// displayed results; slots without an annotation stay empty.
	SettleAnnotations()
}

// Config configures view construction.
type Config struct {
	Output     io.Writer
	ForcePlain bool
	NoColor    bool
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}

// UseTUI reports whether the interactive widget should be used.
func UseTUI(cfg Config) bool {
	if cfg.ForcePlain {
		return false
	}
	if !IsTTY(cfg.Output) {
		return false
	}
	return !DetectCI()
}
