package scene

// Scheduler drives fixed ticks over a node tree. Tick order is total and
// sequential: parents tick before children, components in attach order.
type Scheduler struct {
	root *Node
}

// NewScheduler creates a scheduler for the tree rooted at root.
func NewScheduler(root *Node) *Scheduler {
	return &Scheduler{root: root}
}

// Tick runs one fixed update over every enabled component. Subtrees under a
// disabled node are skipped entirely.
func (s *Scheduler) Tick() {
	if s == nil || s.root == nil {
		return
	}
	tickNode(s.root)
}

func tickNode(n *Node) {
	if n == nil || !n.enabled {
		return
	}
	for _, c := range n.components {
		if c != nil {
			c.OnTick()
		}
	}
	for _, child := range n.children {
		tickNode(child)
	}
}
