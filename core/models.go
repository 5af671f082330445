package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted entities.
// It is generated using content-based hashing so the same input record
// always maps to the same classification run.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ConceptKind classifies an extracted concept.
type ConceptKind string

const (
	// KindKeyword is a subject keyword, e.g. "Migration".
	KindKeyword ConceptKind = "keyword"
	// KindDiscipline is an academic discipline, e.g. "Soziologie".
	KindDiscipline ConceptKind = "discipline"
	// KindPlace is a geographic name, e.g. "Chemnitz".
	KindPlace ConceptKind = "place"
)

// Concept is one candidate subject term driving the hierarchy search.
type Concept struct {
	Text       string // surface text as extracted
	Kind       ConceptKind
	Rank       int    // position in the extractor output, 0 = most salient
	Normalized string // country-level form for place concepts, empty otherwise
}

// SearchText returns the text the concept is matched under: the normalized
// form when the place normalizer has set one, the surface text otherwise.
func (c Concept) SearchText() string {
	if c.Normalized != "" {
		return c.Normalized
	}
	return c.Text
}

// Tuple returns a string representation of the concept as "(Kind,Text)".
// This is used to merge contributing concepts during result deduplication.
func (c Concept) Tuple() string {
	return "(" + string(c.Kind) + "," + c.Text + ")"
}

// NotationNode is one node of the RVK hierarchy. Nodes are immutable once
// fetched; the accessor caches replacement values rather than mutating.
type NotationNode struct {
	Notation    string   // RVK code, e.g. "AN 1000"
	Label       string   // subject text (Benennung)
	Parent      string   // parent notation, empty for a Hauptgruppe
	Children    []string // ordered child notations, set once the node was listed
	Depth       int      // root = 0
	HasChildren bool
}

// IsRoot reports whether the node is a top-level group.
func (n NotationNode) IsRoot() bool {
	return n.Parent == ""
}

// MatchKind states how a concept matched a node.
type MatchKind string

const (
	// MatchExactLabel covers exact and substring label matches.
	MatchExactLabel MatchKind = "exact-label"
	// MatchAlias covers synonym and gazetteer-indicator matches.
	MatchAlias MatchKind = "alias"
	// MatchDisciplineCategory covers the static discipline to group mapping.
	MatchDisciplineCategory MatchKind = "discipline-category"
)

// MatchCandidate is a scored (node, concept) pair produced during traversal.
type MatchCandidate struct {
	Node       NotationNode
	Concept    Concept
	Kind       MatchKind
	Confidence float64 // in [0,1]
	Depth      int     // equals Node.Depth
}

// ClassificationResult is one ranked suggestion returned to the caller.
type ClassificationResult struct {
	Notation   string
	Path       []string // labels root-first; the last one is the node's own label
	Confidence float64
	Depth      int
	Concepts   []Concept // concepts that produced or reinforced the match
}

// Record is the parsed bibliographic metadata of one PICA record.
type Record struct {
	Title     string
	Authors   []string
	Year      string
	Publisher string
	Abstract  string
	Subjects  []string // keywords, classification register terms
	Notations []string // RVK notations already present on the record
	Raw       string   // original exchange text, used for content addressing
}

// ContentID derives the persistent run identifier for the record.
func (r *Record) ContentID() ID {
	if r.Raw != "" {
		return IDFromContent(r.Raw)
	}
	return IDFromContent(r.Title)
}

// ClassificationRun is the persisted outcome of classifying one record.
type ClassificationRun struct {
	ID        ID
	Title     string
	CreatedAt time.Time
	Concepts  []Concept
	Results   []ClassificationResult
}
