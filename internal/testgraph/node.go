package testgraph

import (
	"strings"

	"muster/pkg/logging"
)

// Node is a named point in the test registry. A Node may be a pure category
// (children only), a pure leaf (Definition only), or both at once - the
// registry never forbids a node from carrying its own runnable definition
// while also owning children.
type Node struct {
	ID       string
	Name     string
	File     string
	Line     int
	Parent   *Node
	Children []*Node

	Definition *Definition
}

// NewNode creates a detached node. Callers attach it to the tree with
// AddChild; a Node with a nil Parent is a root.
func NewNode(name, file string, line int) *Node {
	return &Node{Name: name, File: file, Line: line}
}

// AddChild appends child to n's child list and sets child's Parent back-
// reference. Insertion order is display order: callers that want stable
// output should register children in the order they want them shown.
//
// AddChild is the only writer of the tree's shape. Since it always attaches
// a previously-detached node, the tree cannot develop cycles through normal
// use; isAncestorOf below exists purely to catch programmer error during
// generator development, not to defend against adversarial input. The check
// runs behind debugChecks, so a production build (-tags production) skips
// the O(depth) walk on every graft.
func (n *Node) AddChild(child *Node) {
	if debugChecks && child.isAncestorOf(n) {
		logging.Warn("testgraph", "AddChild would create a cycle: %s under %s", child.Path(), n.Path())
		panic("testgraph: AddChild would create a cycle")
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

func (child *Node) isAncestorOf(n *Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == child {
			return true
		}
	}
	return false
}

// Root walks Parent links to the topmost node.
func (n *Node) Root() *Node {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Path joins Name from Root() down to n with "/", giving the path-unique
// identity the registry uses to assign IDs. A node with an empty Name (such
// as a registry's anchoring root) contributes no segment.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Name != "" {
			parts = append(parts, cur.Name)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// VisitAllLeafDefinitions performs a depth-first, pre-order traversal of the
// subtree rooted at n, invoking visit for every Definition encountered -
// including n's own, if present, visited before any child's. This resolves
// the dual leaf-and-group case by running the node's own definition first
// (see DESIGN.md, "dual leaf+group node execution order").
func (n *Node) VisitAllLeafDefinitions(visit func(*Definition)) {
	if n.Definition != nil {
		visit(n.Definition)
	}
	for _, child := range n.Children {
		child.VisitAllLeafDefinitions(visit)
	}
}
