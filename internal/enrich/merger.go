package enrich

import (
	"log/slog"

	"github.com/aryan-pahwani/hermes/internal/session"
)

// AnnotationView is the single mutation hook the merger uses on the
// view layer: update the annotation slot of the record displayed under
// the given name. The initial render is never touched.
type AnnotationView interface {
	UpdateAnnotation(name, annotation string)
}

// Merger applies an annotation mapping onto the live session's view.
// Merges for superseded sessions are discarded by generation check,
// not timing, so a late response can never write into a newer query's
// result view.
type Merger struct {
	sessions *session.Manager
	view     AnnotationView
}

// NewMerger creates a merger bound to the session manager and view.
func NewMerger(sessions *session.Manager, view AnnotationView) *Merger {
	return &Merger{sessions: sessions, view: view}
}

// Merge applies annotations to the session with the given generation.
// Records with a mapping entry (matched by exact name) transition to
// received and get their slot updated; the rest settle to absent.
// Returns true if the merge applied to the live session.
func (m *Merger) Merge(generation uint64, annotations Annotations) bool {
	if !m.sessions.IsLive(generation) {
		slog.Debug("enrichment_discarded_stale",
			slog.Uint64("generation", generation))
		return false
	}
	cur := m.sessions.Current()
	if cur == nil || cur.Generation() != generation {
		// Superseded between the liveness check and the snapshot.
		return false
	}

	var received, absent int
	for _, rec := range cur.Results() {
		// Settled slots are terminal; only pending ones can take a merge.
		if m.sessions.Status(rec.Name) != session.StatusPending {
			continue
		}
		text, ok := annotations[rec.Name]
		if ok && text != "" {
			// The transition itself re-checks the generation under the
			// manager lock, so a supersession mid-merge stops writes.
			if m.sessions.MarkReceived(generation, rec.Name) {
				m.view.UpdateAnnotation(rec.Name, text)
				received++
			}
		} else {
			if m.sessions.MarkAbsent(generation, rec.Name) {
				absent++
			}
		}
	}

	slog.Debug("enrichment_merged",
		slog.Uint64("generation", generation),
		slog.Int("received", received),
		slog.Int("absent", absent))

	return true
}
