package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "4000 $aMigration und Integration in Chemnitz",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestConcept_SearchText(t *testing.T) {
	tests := []struct {
		name    string
		concept Concept
		want    string
	}{
		{
			name:    "surface text when not normalized",
			concept: Concept{Text: "Migration", Kind: KindKeyword},
			want:    "Migration",
		},
		{
			name:    "normalized form wins",
			concept: Concept{Text: "Chemnitz", Kind: KindPlace, Normalized: "Deutschland"},
			want:    "Deutschland",
		},
		{
			name:    "unresolved place falls back to surface text",
			concept: Concept{Text: "Atlantis", Kind: KindPlace},
			want:    "Atlantis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.concept.SearchText(); got != tt.want {
				t.Errorf("Concept.SearchText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConcept_Tuple(t *testing.T) {
	tests := []struct {
		name    string
		concept Concept
		want    string
	}{
		{
			name:    "basic concept",
			concept: Concept{Text: "Migration", Kind: KindKeyword},
			want:    "(keyword,Migration)",
		},
		{
			name:    "concept with spaces",
			concept: Concept{Text: "Soziale Integration", Kind: KindKeyword},
			want:    "(keyword,Soziale Integration)",
		},
		{
			name:    "empty concept",
			concept: Concept{},
			want:    "(,)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.concept.Tuple()
			if got != tt.want {
				t.Errorf("Concept.Tuple() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNotationNode_IsRoot(t *testing.T) {
	root := NotationNode{Notation: "M", Label: "Politologie, Soziologie", Depth: 0}
	if !root.IsRoot() {
		t.Errorf("NotationNode.IsRoot() = false for a Hauptgruppe")
	}

	child := NotationNode{Notation: "MN", Label: "Soziologie", Parent: "M", Depth: 1}
	if child.IsRoot() {
		t.Errorf("NotationNode.IsRoot() = true for a node with a parent")
	}
}

func TestRecord_ContentID(t *testing.T) {
	withRaw := Record{Title: "Migration und Integration", Raw: "4000 $aMigration und Integration"}
	if withRaw.ContentID() != IDFromContent(withRaw.Raw) {
		t.Errorf("Record.ContentID() did not hash the raw exchange text")
	}

	titleOnly := Record{Title: "Migration und Integration"}
	if titleOnly.ContentID() != IDFromContent(titleOnly.Title) {
		t.Errorf("Record.ContentID() did not fall back to the title")
	}
}
