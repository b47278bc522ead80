package scene

// Component is the interface every node component implements. Activate and
// Deactivate are driven by the node's enable state; OnTick runs once per
// fixed simulation tick while the component is live.
type Component interface {
	Activate()
	Deactivate()
	OnTick()
	SetNode(n *Node)
	Node() *Node
}

// BaseComponent provides default implementations for Component.
type BaseComponent struct {
	node *Node
}

func (b *BaseComponent) Activate() {}

func (b *BaseComponent) Deactivate() {}

func (b *BaseComponent) OnTick() {}

func (b *BaseComponent) SetNode(n *Node) {
	b.node = n
}

func (b *BaseComponent) Node() *Node {
	if b == nil {
		return nil
	}
	return b.node
}
