package testreg

import (
	"path"
	"sort"
	"strings"
	"sync"

	"muster/internal/testgraph"
)

// Registry owns the root category nodes of the test graph. It is mutated
// only during process initialisation; the scheduler treats it as read-only.
type Registry struct {
	mu         sync.RWMutex
	root       *testgraph.Node
	categories map[string]*testgraph.Node
}

// NewRegistry creates an empty registry. Tests of the scheduler or
// generator should always construct a fresh Registry rather than reach for
// Default, so that one test's registrations cannot leak into another's.
func NewRegistry() *Registry {
	root := testgraph.NewNode("", "", 0)
	return &Registry{
		root:       root,
		categories: make(map[string]*testgraph.Node),
	}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, creating it on first use. Host
// code (the CLI, a future panel) binds to this instance; the registration
// macros in package testgen graft into it by default.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
	})
	return defaultReg
}

// Graft attaches node under the named category, creating any category nodes
// along the way on first use. categoryPath is "/"-joined for a nested
// category (e.g. "Outer/Inner"), mirroring the nesting the registration
// macros build up as they enter and leave Category blocks - the way
// spec.md 4.2's "registration side effect" describes: "the produced
// TestNode is attached under a named category node within the process-wide
// registry," generalised to a chain of category nodes rather than a single
// flat one, so that two categories with the same leaf name nested under
// different parents (e.g. "Foo/Shared" and "Bar/Shared") never collide.
func (r *Registry) Graft(categoryPath string, node *testgraph.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cat := r.categoryNode(categoryPath)
	cat.AddChild(node)
	assignIDs(node)
}

// categoryNode walks categoryPath's "/"-separated segments from the root,
// creating any missing category node along the way, and returns the final
// segment's node. Must be called with r.mu held.
func (r *Registry) categoryNode(categoryPath string) *testgraph.Node {
	cur := r.root
	key := ""
	for _, part := range strings.Split(categoryPath, "/") {
		if part == "" {
			continue
		}
		if key == "" {
			key = part
		} else {
			key = key + "/" + part
		}
		child, ok := r.categories[key]
		if !ok {
			child = testgraph.NewNode(part, "", 0)
			cur.AddChild(child)
			r.categories[key] = child
		}
		cur = child
	}
	return cur
}

// assignIDs stamps every node in the subtree rooted at n with its path-
// unique ID, derived from Node.Path(). Called once, right after the
// subtree is attached to the tree, so that every ID reflects its final
// position.
func assignIDs(n *testgraph.Node) {
	n.ID = n.Path()
	for _, child := range n.Children {
		assignIDs(child)
	}
}

// Root returns the registry's root node. The root itself carries no
// definition and no File/Line - it exists only to anchor category nodes.
func (r *Registry) Root() *testgraph.Node {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root
}

// AllLeaves returns every Definition reachable from the registry root, in
// registration order.
func (r *Registry) AllLeaves() []*testgraph.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var leaves []*testgraph.Definition
	r.root.VisitAllLeafDefinitions(func(d *testgraph.Definition) {
		leaves = append(leaves, d)
	})
	return leaves
}

// Category returns the category node for name, if it has been grafted
// into. name is the same "/"-joined path Graft accepts, so nested
// categories are looked up by their full path (e.g. "Outer/Inner").
func (r *Registry) Category(name string) (*testgraph.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.categories[name]
	return cat, ok
}

// Find returns every Definition whose full path matches pattern, using
// path.Match glob semantics over Node.Path() - the category filter the
// original source's panel search box exposed, supplemented here since it
// is not a Non-goal.
func (r *Registry) Find(pattern string) []*testgraph.Definition {
	all := r.AllLeaves()
	matches := make([]*testgraph.Definition, 0, len(all))
	for _, def := range all {
		ok, err := path.Match(pattern, def.Node.Path())
		if err == nil && ok {
			matches = append(matches, def)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Node.Path() < matches[j].Node.Path()
	})
	return matches
}
