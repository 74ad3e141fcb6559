// Package roster holds the normalized directory of people and the
// machinery that loads it from its tabular source.
package roster

import "strings"

// Record is a single person entry in the roster.
// Name is the identity key: two records with the same name are the
// same entity for enrichment-merge purposes. No secondary key exists.
type Record struct {
	// Name is the person's display name (required, identity key).
	Name string

	// Title is the person's role or title.
	Title string

	// SocialLink is a Twitter/GitHub profile URL.
	SocialLink string

	// Website is the person's website URL.
	Website string

	// Contact is a free-form contact field (usually an email).
	Contact string

	// CurrentProject describes what the person is currently building.
	CurrentProject string

	// SelfDescription is the person's own one-line description.
	SelfDescription string

	// AIDescription is a precomputed description column, when the
	// source sheet carries one. Live enrichment does not write here.
	AIDescription string
}

// Valid reports whether the record carries an identity.
// Records without a name are excluded from the store.
func (r Record) Valid() bool {
	return strings.TrimSpace(r.Name) != ""
}
