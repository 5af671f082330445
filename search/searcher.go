package search

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/fachref/rvkc/core"
)

// Hierarchy is the accessor surface the searcher traverses. rvk.Accessor
// satisfies it; tests provide in-memory trees.
type Hierarchy interface {
	// TopLevelGroups returns the ordered Hauptgruppen.
	TopLevelGroups(ctx context.Context) ([]core.NotationNode, error)

	// Children returns the ordered children of a node, empty for a leaf.
	Children(ctx context.Context, notation string) ([]core.NotationNode, error)

	// Path returns the full label path of a node, root first.
	Path(node core.NotationNode) ([]string, error)
}

// PlaceNormalizer resolves place concepts to country level and exposes the
// gazetteer views scoring needs. place.Normalizer satisfies it.
type PlaceNormalizer interface {
	Normalize(c core.Concept) core.Concept
	IsRegion(name string) bool
	IndicatorsFor(region string) []string
}

// Options are the tunables of one search request. Thresholds are
// configuration, not constants; the defaults are starting points to be
// validated against representative records.
type Options struct {
	// MaxResults caps the returned suggestions.
	MaxResults int

	// MaxDepth is the traversal ceiling. Exceeding it means the upstream
	// data is deeper than the classification plausibly goes, which is
	// treated as malformed.
	MaxDepth int

	// MaxNodes bounds the total number of visited nodes per request.
	MaxNodes int

	// ExpandThreshold is the minimum score a node needs for its subtree
	// to be explored further.
	ExpandThreshold float64

	// CandidateThreshold is the minimum confidence for a node to be
	// emitted as a match candidate.
	CandidateThreshold float64

	// SalienceDecay discounts matches of lower-ranked concepts.
	SalienceDecay float64
}

// DefaultOptions returns the default search tuning.
func DefaultOptions() Options {
	return Options{
		MaxResults:         10,
		MaxDepth:           12,
		MaxNodes:           4000,
		ExpandThreshold:    0.30,
		CandidateThreshold: 0.55,
		SalienceDecay:      0.05,
	}
}

// withDefaults fills zero-valued fields from DefaultOptions.
func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.MaxResults <= 0 {
		o.MaxResults = defaults.MaxResults
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaults.MaxDepth
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = defaults.MaxNodes
	}
	if o.ExpandThreshold <= 0 {
		o.ExpandThreshold = defaults.ExpandThreshold
	}
	if o.CandidateThreshold <= 0 {
		o.CandidateThreshold = defaults.CandidateThreshold
	}
	if o.SalienceDecay <= 0 {
		o.SalienceDecay = defaults.SalienceDecay
	}
	return o
}

// Searcher walks the notation hierarchy top-down and matches nodes against
// ranked concepts. Safe for concurrent use across requests; the only
// shared state lives in the hierarchy accessor's append-only cache and the
// static tables.
type Searcher struct {
	hierarchy Hierarchy
	places    PlaceNormalizer
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithWorkers dispatches each level's child fetches across a worker pool.
// size 0 disables the pool (sequential traversal); the default is
// runtime.NumCPU() / 2, with a minimum of 1. Output is identical either
// way: aggregation happens only after the whole level has completed.
func WithWorkers(size int) Option {
	return func(s *Searcher) error {
		if s.pool != nil {
			s.pool.Release()
			s.pool = nil
		}
		if size == 0 {
			return nil
		}
		if size < 0 {
			size = runtime.NumCPU() / 2
			if size < 1 {
				size = 1
			}
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// NewSearcher creates a new hierarchical searcher.
func NewSearcher(hierarchy Hierarchy, places PlaceNormalizer, opts ...Option) (*Searcher, error) {
	if hierarchy == nil {
		return nil, ErrHierarchyRequired
	}
	if places == nil {
		return nil, ErrPlacesRequired
	}

	s := &Searcher{
		hierarchy: hierarchy,
		places:    places,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Release frees the worker pool, if any.
func (s *Searcher) Release() {
	if s.pool != nil {
		s.pool.Release()
		s.pool = nil
	}
}

// candidate pairs a match with the ancestor chain it was reached through.
// The chain carries notations root-first, excluding the node itself.
type candidate struct {
	match     core.MatchCandidate
	ancestors []string
	anchor    bool // country-level node matched by its own place concept
}

// frontierEntry is one node awaiting expansion, plus its ancestry.
type frontierEntry struct {
	node      core.NotationNode
	ancestors []string
}

// Search classifies ranked concepts against the hierarchy and returns up
// to opts.MaxResults suggestions, best first. An empty result with a nil
// error means "no match found"; failures are always non-nil errors.
func (s *Searcher) Search(ctx context.Context, concepts []core.Concept, opts Options) ([]core.ClassificationResult, error) {
	return s.SearchWithMonitor(ctx, concepts, opts, nil)
}

// SearchWithMonitor runs Search with stage callbacks for observability.
// A nil monitor is replaced by a no-op.
func (s *Searcher) SearchWithMonitor(ctx context.Context, concepts []core.Concept, opts Options, monitor SearchMonitor) ([]core.ClassificationResult, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	opts = opts.withDefaults()

	monitor.Start(concepts)
	if len(concepts) == 0 {
		return []core.ClassificationResult{}, nil
	}

	// 1. Resolve place concepts to country level before any matching.
	normalized := make([]core.Concept, 0, len(concepts))
	for _, c := range concepts {
		normalized = append(normalized, s.places.Normalize(c))
	}
	monitor.AfterNormalization(normalized)

	sc := scorer{places: s.places, decay: opts.SalienceDecay}

	// 2. Score the top-level groups and pick traversal roots.
	groups, err := s.hierarchy.TopLevelGroups(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	var roots []frontierEntry
	type groupScore struct {
		node       core.NotationNode
		confidence float64
		concept    core.Concept
		kind       core.MatchKind
	}
	var scoredGroups []groupScore

	for _, group := range groups {
		best := groupScore{node: group}
		for _, concept := range normalized {
			confidence, kind := sc.score(concept, group, true)
			if confidence >= opts.CandidateThreshold {
				c := s.newCandidate(group, concept, kind, confidence, nil)
				candidates = append(candidates, c)
				monitor.CandidateFound(c.match)
			}
			if confidence > best.confidence {
				best.confidence = confidence
				best.concept = concept
				best.kind = kind
			}
		}
		if best.confidence > 0 {
			roots = append(roots, frontierEntry{node: group})
			scoredGroups = append(scoredGroups, best)
		}
	}

	// No group resonated at all: explore everything rather than silently
	// returning nothing for overly generic concepts.
	if len(roots) == 0 {
		s.logger.Debug("no top-level group scored, expanding all groups")
		roots = make([]frontierEntry, 0, len(groups))
		for _, group := range groups {
			roots = append(roots, frontierEntry{node: group})
		}
	}
	rootNodes := make([]core.NotationNode, 0, len(roots))
	for _, r := range roots {
		rootNodes = append(rootNodes, r.node)
	}
	monitor.AfterRootSelection(rootNodes)

	// 3. Breadth-first expansion, level by level.
	visited := make(map[string]bool, len(groups))
	for _, group := range groups {
		visited[group.Notation] = true
	}
	nodesVisited := len(groups)

	frontier := roots
	depth := 0
	for len(frontier) > 0 {
		depth++
		if depth > opts.MaxDepth {
			return nil, fmt.Errorf("%w: traversal depth %d exceeds ceiling %d",
				core.ErrMalformedHierarchy, depth, opts.MaxDepth)
		}

		childSets, err := s.fetchChildren(ctx, frontier)
		if err != nil {
			return nil, err
		}

		var next []frontierEntry
		for i, entry := range frontier {
			chain := append(slices.Clone(entry.ancestors), entry.node.Notation)
			for _, child := range childSets[i] {
				if child.Notation == entry.node.Notation || slices.Contains(chain, child.Notation) {
					return nil, fmt.Errorf("%w: %s is its own ancestor (depth %d)",
						core.ErrMalformedHierarchy, child.Notation, depth)
				}
				if visited[child.Notation] {
					// Reachable through more than one branch: the forest
					// invariant is bent upstream. First reach wins.
					s.logger.Warn("node revisited across branches, skipping",
						"notation", child.Notation, "parent", entry.node.Notation)
					continue
				}
				visited[child.Notation] = true
				nodesVisited++
				if nodesVisited > opts.MaxNodes {
					return nil, fmt.Errorf("%w: visited more than %d nodes",
						core.ErrMalformedHierarchy, opts.MaxNodes)
				}

				best := 0.0
				for _, concept := range normalized {
					confidence, kind := sc.score(concept, child, false)
					if confidence >= opts.CandidateThreshold {
						c := s.newCandidate(child, concept, kind, confidence, chain)
						candidates = append(candidates, c)
						monitor.CandidateFound(c.match)
					}
					if confidence > best {
						best = confidence
					}
				}

				// A candidate's subtree is still explored: an acceptable
				// match must not shadow a more specific one below it.
				if best >= opts.ExpandThreshold && child.HasChildren {
					next = append(next, frontierEntry{node: child, ancestors: chain})
				}
			}
		}

		// Deterministic level order regardless of worker scheduling.
		sort.Slice(next, func(i, j int) bool {
			return next[i].node.Notation < next[j].node.Notation
		})
		monitor.AfterLevel(depth, len(next), len(candidates))
		frontier = next
	}

	// Nothing cleared the candidate bar anywhere: fall back to the scored
	// top-level groups (breadth of 1). All-zero stays an empty success.
	if len(candidates) == 0 {
		for _, g := range scoredGroups {
			candidates = append(candidates, s.newCandidate(g.node, g.concept, g.kind, g.confidence, nil))
		}
	}

	// 4+5. Geographic precedence, then prefer the deepest match per path.
	candidates = applyGeographicPrecedence(candidates)
	monitor.AfterGeographicPrecedence(len(candidates))
	candidates = applyDepthPreference(candidates)

	// 6. Deduplicate by notation, merging contributing concepts.
	merged := dedupeByNotation(candidates)
	monitor.AfterDeduplication(len(merged))

	// 7+8. Assemble, order, truncate.
	results := make([]core.ClassificationResult, 0, len(merged))
	for _, c := range merged {
		path, err := s.hierarchy.Path(c.match.Node)
		if err != nil {
			return nil, fmt.Errorf("reconstructing path of %s: %w", c.match.Node.Notation, err)
		}
		results = append(results, core.ClassificationResult{
			Notation:   c.match.Node.Notation,
			Path:       path,
			Confidence: c.match.Confidence,
			Depth:      c.match.Depth,
			Concepts:   c.concepts,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Confidence != results[j].Confidence {
			return results[i].Confidence > results[j].Confidence
		}
		if results[i].Depth != results[j].Depth {
			return results[i].Depth > results[j].Depth
		}
		return results[i].Notation < results[j].Notation
	})
	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	monitor.Finish(results)
	return results, nil
}

// newCandidate builds a candidate and flags country anchors: a place
// concept matching a node labeled exactly with its own normalized region.
func (s *Searcher) newCandidate(node core.NotationNode, concept core.Concept, kind core.MatchKind, confidence float64, chain []string) candidate {
	term := normalizeTerm(concept.SearchText())
	anchor := concept.Kind == core.KindPlace &&
		s.places.IsRegion(term) &&
		normalizeTerm(node.Label) == term

	return candidate{
		match: core.MatchCandidate{
			Node:       node,
			Concept:    concept,
			Kind:       kind,
			Confidence: confidence,
			Depth:      node.Depth,
		},
		ancestors: slices.Clone(chain),
		anchor:    anchor,
	}
}

// fetchChildren lists the children of every frontier node, concurrently
// when a pool is configured. Slots are index-disjoint, and the wait group
// is a full barrier: aggregation never sees a partial level.
func (s *Searcher) fetchChildren(ctx context.Context, frontier []frontierEntry) ([][]core.NotationNode, error) {
	childSets := make([][]core.NotationNode, len(frontier))
	errs := make([]error, len(frontier))

	if s.pool == nil || len(frontier) < 2 {
		for i, entry := range frontier {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			childSets[i], errs[i] = s.hierarchy.Children(ctx, entry.node.Notation)
		}
	} else {
		var wg sync.WaitGroup
		for i := range frontier {
			wg.Add(1)
			notation := frontier[i].node.Notation
			slot := i
			if err := s.pool.Submit(func() {
				defer wg.Done()
				if err := ctx.Err(); err != nil {
					errs[slot] = err
					return
				}
				childSets[slot], errs[slot] = s.hierarchy.Children(ctx, notation)
			}); err != nil {
				wg.Done()
				errs[slot] = err
			}
		}
		wg.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return childSets, nil
}

// applyGeographicPrecedence drops candidates that sit below a country
// anchor of the same concept: "Chemnitz" resolves to the "Deutschland"
// node, never to a Saxon subdivision beneath it, even when the deeper
// node's raw score is higher.
func applyGeographicPrecedence(candidates []candidate) []candidate {
	type anchorKey struct {
		tuple    string
		notation string
	}
	var anchors []anchorKey
	for _, c := range candidates {
		if c.anchor {
			anchors = append(anchors, anchorKey{tuple: c.match.Concept.Tuple(), notation: c.match.Node.Notation})
		}
	}
	if len(anchors) == 0 {
		return candidates
	}

	kept := candidates[:0]
	for _, c := range candidates {
		dropped := false
		for _, a := range anchors {
			if c.match.Concept.Tuple() == a.tuple && slices.Contains(c.ancestors, a.notation) {
				dropped = true
				break
			}
		}
		if !dropped {
			kept = append(kept, c)
		}
	}
	return kept
}

// applyDepthPreference keeps only the deepest candidate per root-to-leaf
// path: when both an ancestor and its descendant matched, the descendant
// wins. Country anchors are exempt; the geographic rule outranks depth.
func applyDepthPreference(candidates []candidate) []candidate {
	shadowed := make(map[string]bool)
	for _, c := range candidates {
		for _, ancestor := range c.ancestors {
			shadowed[ancestor] = true
		}
	}

	kept := candidates[:0]
	for _, c := range candidates {
		if shadowed[c.match.Node.Notation] && !c.anchor {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// mergedCandidate is a dedup survivor with its contributing concepts.
type mergedCandidate struct {
	match    core.MatchCandidate
	concepts []core.Concept
}

// dedupeByNotation collapses candidates sharing a notation: the
// highest-confidence occurrence wins, contributing concepts are merged.
func dedupeByNotation(candidates []candidate) []mergedCandidate {
	index := make(map[string]int)
	var merged []mergedCandidate

	for _, c := range candidates {
		i, ok := index[c.match.Node.Notation]
		if !ok {
			index[c.match.Node.Notation] = len(merged)
			merged = append(merged, mergedCandidate{
				match:    c.match,
				concepts: []core.Concept{c.match.Concept},
			})
			continue
		}

		if c.match.Confidence > merged[i].match.Confidence {
			concepts := merged[i].concepts
			merged[i] = mergedCandidate{match: c.match, concepts: concepts}
		}
		if !slices.ContainsFunc(merged[i].concepts, func(existing core.Concept) bool {
			return existing.Tuple() == c.match.Concept.Tuple()
		}) {
			merged[i].concepts = append(merged[i].concepts, c.match.Concept)
		}
	}

	return merged
}
