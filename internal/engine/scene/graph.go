package scene

import (
	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/pkg/math"
)

// Node is a mesh placed in the scene. A node with Instances draws the mesh
// once per offset; a node without draws it once at the origin.
type Node struct {
	Name          string
	Mesh          *geometry.Mesh
	Instances     []math.Vec3
	CastShadow    bool
	ReceiveShadow bool
	Hidden        bool
}

// InstanceCount returns how many copies of the mesh the node draws.
func (n *Node) InstanceCount() int {
	if n.Instances == nil {
		return 1
	}
	return len(n.Instances)
}

// Bounds returns the world bounds of every instance.
func (n *Node) Bounds() geometry.Bounds {
	if n.Mesh == nil {
		return geometry.Bounds{}
	}
	if n.Instances == nil {
		return n.Mesh.Bounds
	}

	b := geometry.EmptyBounds()
	mb := n.Mesh.Bounds
	for _, p := range n.Instances {
		b.Extend([3]float32{mb.Min[0] + p.X, mb.Min[1] + p.Y, mb.Min[2] + p.Z})
		b.Extend([3]float32{mb.Max[0] + p.X, mb.Max[1] + p.Y, mb.Max[2] + p.Z})
	}
	return b
}

// Graph is the ordered set of nodes in a scene.
type Graph struct {
	nodes []*Node
}

// Add appends n unless it is already present.
func (g *Graph) Add(n *Node) {
	if n == nil || g.index(n) >= 0 {
		return
	}
	g.nodes = append(g.nodes, n)
}

// Remove detaches n. Returns false if n was not in the graph.
func (g *Graph) Remove(n *Node) bool {
	i := g.index(n)
	if i < 0 {
		return false
	}
	g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
	return true
}

// Find returns the first node with the given name.
func (g *Graph) Find(name string) *Node {
	for _, n := range g.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Clear removes every node.
func (g *Graph) Clear() {
	g.nodes = nil
}

// Bounds returns the union of all visible node bounds.
func (g *Graph) Bounds() geometry.Bounds {
	b := geometry.EmptyBounds()
	empty := true
	for _, n := range g.nodes {
		if n.Hidden || n.Mesh == nil {
			continue
		}
		b = b.Union(n.Bounds())
		empty = false
	}
	if empty {
		return geometry.Bounds{}
	}
	return b
}

func (g *Graph) index(n *Node) int {
	for i, existing := range g.nodes {
		if existing == n {
			return i
		}
	}
	return -1
}
