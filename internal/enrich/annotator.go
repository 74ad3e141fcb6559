// Package enrich augments displayed search results with one-sentence
// AI-generated descriptions fetched from a remote annotation service.
// Enrichment is strictly additive: it never reorders, removes, or
// blocks the already-rendered result set, and any failure degrades to
// "results shown, no annotations".
package enrich

import (
	"context"

	"github.com/aryan-pahwani/hermes/internal/roster"
)

// Annotations maps record identity (name) to a short description.
type Annotations map[string]string

// Annotator produces annotations for a displayed result set.
// The service receives only the bounded result set, never the full
// roster, so it scopes its work to what the user sees.
type Annotator interface {
	// Annotate returns a name-keyed mapping of short third-person
	// sentences. The service may omit records it cannot annotate.
	Annotate(ctx context.Context, query string, records []roster.Record) (Annotations, error)
}

// NoopAnnotator annotates nothing. Used when enrichment is disabled or
// no API key is configured; every record settles as absent.
type NoopAnnotator struct{}

var _ Annotator = NoopAnnotator{}

// Annotate implements Annotator.
func (NoopAnnotator) Annotate(ctx context.Context, query string, records []roster.Record) (Annotations, error) {
	return Annotations{}, nil
}
