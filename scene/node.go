package scene

import (
	"github.com/jakecoffman/cp"
)

// Node is a transform in the scene hierarchy. Nodes own components and form
// a tree via parent/child links; components are activated when the node is
// enabled and deactivated when it is disabled.
type Node struct {
	Name     string
	Position cp.Vector

	// Collider marks this node as carrying collision geometry. Trigger
	// auto-propagation only attaches to collider nodes.
	Collider bool

	parent     *Node
	children   []*Node
	components []Component
	enabled    bool
}

// NewNode creates an enabled node with no parent.
func NewNode(name string) *Node {
	return &Node{Name: name, enabled: true}
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// AddChild attaches child under n. Re-parenting detaches from the old parent
// first; attaching a node to itself is a no-op.
func (n *Node) AddChild(child *Node) {
	if n == nil || child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Enabled reports whether the node itself is enabled. It does not consult
// ancestors; the scheduler skips subtrees under disabled nodes.
func (n *Node) Enabled() bool {
	if n == nil {
		return false
	}
	return n.enabled
}

// SetEnabled toggles the node and activates or deactivates its components.
func (n *Node) SetEnabled(enabled bool) {
	if n == nil || n.enabled == enabled {
		return
	}
	n.enabled = enabled
	for _, c := range n.components {
		if c == nil {
			continue
		}
		if enabled {
			c.Activate()
		} else {
			c.Deactivate()
		}
	}
}

// AddComponent attaches a component to this node and activates it if the
// node is enabled. Adding the same component twice is a no-op.
func (n *Node) AddComponent(c Component) {
	if n == nil || c == nil {
		return
	}
	for _, existing := range n.components {
		if existing == c {
			return
		}
	}
	c.SetNode(n)
	n.components = append(n.components, c)
	if n.enabled {
		c.Activate()
	}
}

// RemoveComponent detaches a component, deactivating it first if the node
// is enabled.
func (n *Node) RemoveComponent(c Component) {
	if n == nil || c == nil {
		return
	}
	for i, existing := range n.components {
		if existing == c {
			if n.enabled {
				c.Deactivate()
			}
			n.components = append(n.components[:i], n.components[i+1:]...)
			c.SetNode(nil)
			return
		}
	}
}

// Components returns the node's component list.
func (n *Node) Components() []Component {
	if n == nil {
		return nil
	}
	return n.components
}

// Ancestors returns the chain of parents from nearest to root.
func (n *Node) Ancestors() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// Descendants returns every node below n in depth-first order, excluding n.
func (n *Node) Descendants() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.children {
		out = append(out, c)
		out = append(out, c.Descendants()...)
	}
	return out
}

// IsAncestorOf reports whether n appears in other's parent chain.
func (n *Node) IsAncestorOf(other *Node) bool {
	if n == nil || other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
