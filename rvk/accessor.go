package rvk

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fachref/rvkc/core"
)

// maxAncestryDepth bounds parent-chain walks. The RVK hierarchy is at most
// a handful of levels deep; a chain longer than this is corrupt data.
const maxAncestryDepth = 64

// Source is the remote lookup contract the Accessor builds on. *Client
// satisfies it; tests provide fakes.
type Source interface {
	// Top lists the top-level groups in upstream order.
	Top(ctx context.Context) ([]Node, error)

	// Node returns a single node by notation.
	Node(ctx context.Context, notation string) (Node, error)

	// Children lists the ordered children of a node; empty for a leaf.
	Children(ctx context.Context, notation string) ([]Node, error)

	// Ancestors returns the chain from the root down to the queried node
	// itself, root first.
	Ancestors(ctx context.Context, notation string) ([]Node, error)
}

// Accessor provides cached, read-only access to the notation hierarchy.
// The cache is append-only for the accessor's lifetime: entries are written
// once per key (idempotent replacements when a node's child list becomes
// known) and never evicted. Safe for concurrent use.
type Accessor struct {
	source Source
	logger *slog.Logger

	mu        sync.RWMutex
	nodes     map[string]core.NotationNode
	listed    map[string]bool // notations whose children have been fetched
	rootOrder []string        // top-level notations in upstream order, nil until listed
}

// AccessorOption configures an Accessor.
type AccessorOption func(*Accessor) error

// WithAccessorLogger sets a custom logger.
// Default is slog.Default().
func WithAccessorLogger(logger *slog.Logger) AccessorOption {
	return func(a *Accessor) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAccessor creates a new hierarchy accessor with an empty cache.
func NewAccessor(source Source, opts ...AccessorOption) (*Accessor, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	a := &Accessor{
		source: source,
		logger: slog.Default(),
		nodes:  make(map[string]core.NotationNode),
		listed: make(map[string]bool),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// TopLevelGroups returns the ordered Hauptgruppen. The listing is fetched
// once and then served from the cache. Returns core.ErrEmptyHierarchy when
// the source reports zero groups.
func (a *Accessor) TopLevelGroups(ctx context.Context) ([]core.NotationNode, error) {
	a.mu.RLock()
	if a.rootOrder != nil {
		groups := make([]core.NotationNode, 0, len(a.rootOrder))
		for _, notation := range a.rootOrder {
			groups = append(groups, a.nodes[notation])
		}
		a.mu.RUnlock()
		return groups, nil
	}
	a.mu.RUnlock()

	raw, err := a.source.Top(ctx)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, core.ErrEmptyHierarchy
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rootOrder == nil {
		a.rootOrder = make([]string, 0, len(raw))
		for _, n := range raw {
			node := core.NotationNode{
				Notation:    n.Notation,
				Label:       n.Label,
				Depth:       0,
				HasChildren: n.HasChildren,
			}
			a.cacheNode(node)
			a.rootOrder = append(a.rootOrder, n.Notation)
		}
	}

	groups := make([]core.NotationNode, 0, len(a.rootOrder))
	for _, notation := range a.rootOrder {
		groups = append(groups, a.nodes[notation])
	}
	return groups, nil
}

// Children returns the ordered children of a node, empty for a leaf.
// Returns core.ErrNotFound for an unknown notation. Fetched children are
// cached with parent link and depth set; the parent's cached value is
// replaced by a copy carrying the child list.
func (a *Accessor) Children(ctx context.Context, notation string) ([]core.NotationNode, error) {
	parent, err := a.Node(ctx, notation)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	if a.listed[notation] {
		children := make([]core.NotationNode, 0, len(parent.Children))
		for _, childNotation := range parent.Children {
			children = append(children, a.nodes[childNotation])
		}
		a.mu.RUnlock()
		return children, nil
	}
	a.mu.RUnlock()

	raw, err := a.source.Children(ctx, notation)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listed[notation] {
		// Another traversal won the race; serve its result.
		parent = a.nodes[notation]
		children := make([]core.NotationNode, 0, len(parent.Children))
		for _, childNotation := range parent.Children {
			children = append(children, a.nodes[childNotation])
		}
		return children, nil
	}

	children := make([]core.NotationNode, 0, len(raw))
	childNotations := make([]string, 0, len(raw))
	for _, n := range raw {
		child := core.NotationNode{
			Notation:    n.Notation,
			Label:       n.Label,
			Parent:      notation,
			Depth:       parent.Depth + 1,
			HasChildren: n.HasChildren,
		}
		a.cacheNode(child)
		children = append(children, child)
		childNotations = append(childNotations, n.Notation)
	}

	listed := parent
	listed.Children = childNotations
	a.nodes[notation] = listed
	a.listed[notation] = true

	return children, nil
}

// Node returns a single node by notation. A cache miss resolves the node
// together with its ancestor chain so parent links and depth are correct,
// which makes later Path calls cache-only even for random access.
func (a *Accessor) Node(ctx context.Context, notation string) (core.NotationNode, error) {
	a.mu.RLock()
	if node, ok := a.nodes[notation]; ok {
		a.mu.RUnlock()
		return node, nil
	}
	a.mu.RUnlock()

	chain, err := a.source.Ancestors(ctx, notation)
	if err != nil {
		return core.NotationNode{}, err
	}
	if len(chain) == 0 {
		return core.NotationNode{}, fmt.Errorf("%w: %s", core.ErrNotFound, notation)
	}
	if len(chain) > maxAncestryDepth {
		return core.NotationNode{}, fmt.Errorf("%w: ancestor chain for %s has %d levels",
			core.ErrMalformedHierarchy, notation, len(chain))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	parent := ""
	for depth, n := range chain {
		node := core.NotationNode{
			Notation:    n.Notation,
			Label:       n.Label,
			Parent:      parent,
			Depth:       depth,
			HasChildren: n.HasChildren,
		}
		a.cacheNode(node)
		parent = n.Notation
	}

	node, ok := a.nodes[notation]
	if !ok {
		return core.NotationNode{}, fmt.Errorf("%w: ancestor chain for %s does not contain it",
			ErrInvalidResponse, notation)
	}
	return node, nil
}

// Size returns the number of cached nodes.
func (a *Accessor) Size() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.nodes)
}

// cacheNode writes a node unless a richer entry (one whose children have
// been listed) is already present. Callers must hold a.mu.
func (a *Accessor) cacheNode(node core.NotationNode) {
	if a.listed[node.Notation] {
		return
	}
	a.nodes[node.Notation] = node
}
