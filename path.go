package tether

// Path is an ordered sequence of nodes from some ancestor (usually the scene
// root) down to the node a tool is attached to. A tool bound to two different
// paths is two independent bindings, even when both paths end at the same
// node.
//
// Path values share their backing array the way slices do; use Clone before
// mutating a path someone else holds.
type Path struct {
	nodes []*Node
}

// NewPath creates a path from the given node sequence.
func NewPath(nodes ...*Node) Path {
	return Path{nodes: nodes}
}

// Len returns the number of nodes in the path.
func (p Path) Len() int {
	return len(p.nodes)
}

// Node returns the node at the given index.
func (p Path) Node(index int) *Node {
	return p.nodes[index]
}

// First returns the first node, or nil for an empty path.
func (p Path) First() *Node {
	if len(p.nodes) == 0 {
		return nil
	}
	return p.nodes[0]
}

// Last returns the final node (the one the tool lives on), or nil for an
// empty path.
func (p Path) Last() *Node {
	if len(p.nodes) == 0 {
		return nil
	}
	return p.nodes[len(p.nodes)-1]
}

// Append returns a new path with node added at the end.
func (p Path) Append(node *Node) Path {
	nodes := make([]*Node, len(p.nodes)+1)
	copy(nodes, p.nodes)
	nodes[len(p.nodes)] = node
	return Path{nodes: nodes}
}

// Pop returns a new path with the last node removed.
// Popping an empty path returns an empty path.
func (p Path) Pop() Path {
	if len(p.nodes) == 0 {
		return p
	}
	nodes := make([]*Node, len(p.nodes)-1)
	copy(nodes, p.nodes[:len(p.nodes)-1])
	return Path{nodes: nodes}
}

// Extend returns a new path extended by the direct child of Last with the
// given name. Returns a NoSuchNodeError if Last has no such child.
func (p Path) Extend(childName string) (Path, error) {
	last := p.Last()
	if last == nil {
		return Path{}, &NoSuchNodeError{Name: childName}
	}
	child := last.Child(childName)
	if child == nil {
		return Path{}, &NoSuchNodeError{Name: childName}
	}
	return p.Append(child), nil
}

// Clone returns a path with its own backing array.
func (p Path) Clone() Path {
	nodes := make([]*Node, len(p.nodes))
	copy(nodes, p.nodes)
	return Path{nodes: nodes}
}

// Equal reports whether both paths hold the same node sequence.
func (p Path) Equal(other Path) bool {
	if len(p.nodes) != len(other.nodes) {
		return false
	}
	for i, n := range p.nodes {
		if other.nodes[i] != n {
			return false
		}
	}
	return true
}

// Matrix returns the cumulative transform along the path: the identity
// seeded left-to-right product of each node's local transform. An empty
// path yields the identity matrix.
func (p Path) Matrix() Matrix {
	m := Identity
	for _, n := range p.nodes {
		m = m.Mul(localTransform(n))
	}
	return m
}

// InverseMatrix returns the inverse of the cumulative path transform,
// computed as the right-to-left product of per-node inverses. Inverting each
// small factor and multiplying keeps the error of one near-singular node
// local to that factor instead of spreading it through a single big inverse.
func (p Path) InverseMatrix() Matrix {
	m := Identity
	for i := len(p.nodes) - 1; i >= 0; i-- {
		m = m.Mul(localTransform(p.nodes[i]).Invert())
	}
	return m
}

// IsValid reports whether every consecutive pair in the path is a live
// parent→child relation and no node has been disposed. This is a defensive
// check for callers mutating the hierarchy; dispatch does not run it per
// event.
func (p Path) IsValid() bool {
	for i, n := range p.nodes {
		if n == nil || n.IsDisposed() {
			return false
		}
		if i > 0 && !p.nodes[i-1].HasChild(n) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer: node names joined by "/".
func (p Path) String() string {
	s := ""
	for i, n := range p.nodes {
		if i > 0 {
			s += "/"
		}
		s += n.Name
	}
	return s
}
