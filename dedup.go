package jdoc2md

// DedupReason explains a deduplication decision.
type DedupReason string

// DedupReason values.
const (
	// DedupFirstSeen marks the first occurrence of a qualified name. Kept.
	DedupFirstSeen DedupReason = "first_seen"

	// DedupDuplicateContent marks a repeat of a qualified name with identical
	// normalized content. Dropped; expected for redirect and nested-class pages.
	DedupDuplicateContent DedupReason = "duplicate_content"

	// DedupDuplicateName marks a repeat of a qualified name with different
	// content. Dropped and surfaced as a naming collision.
	DedupDuplicateName DedupReason = "duplicate_name"
)

// DedupDecision records whether a document is kept.
type DedupDecision struct {
	QualifiedName string
	SourcePage    string
	Kept          bool
	Reason        DedupReason
}

// Deduplicator decides which documents to keep, first-seen-wins.
// It is scoped to one run and must be fed documents in traversal order
// from a single goroutine.
type Deduplicator struct {
	seen map[string]string // qualified name → first content hash
}

// NewDeduplicator returns an empty Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]string)}
}

// Decide returns the decision for doc and records it.
// The first document for a qualified name is always kept, regardless of
// the size or completeness of later ones.
func (d *Deduplicator) Decide(doc *ParsedDoc) DedupDecision {
	decision := DedupDecision{
		QualifiedName: doc.QualifiedName,
		SourcePage:    doc.SourcePage,
	}

	hash, ok := d.seen[doc.QualifiedName]
	switch {
	case !ok:
		d.seen[doc.QualifiedName] = doc.ContentHash
		decision.Kept = true
		decision.Reason = DedupFirstSeen
	case hash == doc.ContentHash:
		decision.Reason = DedupDuplicateContent
	default:
		decision.Reason = DedupDuplicateName
	}
	return decision
}

// DecideAll returns one decision per document, in input order.
func (d *Deduplicator) DecideAll(docs []*ParsedDoc) []DedupDecision {
	decisions := make([]DedupDecision, 0, len(docs))
	for _, doc := range docs {
		decisions = append(decisions, d.Decide(doc))
	}
	return decisions
}
