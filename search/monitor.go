package search

import "github.com/fachref/rvkc/core"

// SearchMonitor provides hooks to observe the classification search.
// Implement this interface to track intermediate steps and results.
type SearchMonitor interface {
	Start(concepts []core.Concept)
	AfterNormalization(concepts []core.Concept)
	AfterRootSelection(roots []core.NotationNode)
	CandidateFound(candidate core.MatchCandidate)
	AfterLevel(depth, frontierSize, candidateCount int)
	AfterGeographicPrecedence(kept int)
	AfterDeduplication(kept int)
	Finish(results []core.ClassificationResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ []core.Concept)                      {}
func (n *noopMonitor) AfterNormalization(_ []core.Concept)         {}
func (n *noopMonitor) AfterRootSelection(_ []core.NotationNode)    {}
func (n *noopMonitor) CandidateFound(_ core.MatchCandidate)        {}
func (n *noopMonitor) AfterLevel(_, _, _ int)                      {}
func (n *noopMonitor) AfterGeographicPrecedence(_ int)             {}
func (n *noopMonitor) AfterDeduplication(_ int)                    {}
func (n *noopMonitor) Finish(_ []core.ClassificationResult)        {}
