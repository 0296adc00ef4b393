package element

import (
	"fmt"

	"github.com/notargets/FEMKernel/mesh"
	"github.com/notargets/FEMKernel/utils"
)

// FiniteElement is one mesh triangle with its ordered nodes: the three vertex
// nodes in triangle order, then the bubble for P1b
type FiniteElement struct {
	Index    int
	Triangle mesh.Triangle
	Nodes    []Node
}

// NewFiniteElement builds the nodes of kind k on tri. vertexDOFs are the
// global indices of the triangle's vertices, bubbleDOF is only used by P1b.
func NewFiniteElement(k Kind, tri mesh.Triangle, vertexDOFs [3]int, bubbleDOF int) (FiniteElement, error) {
	if !k.Valid() {
		return FiniteElement{}, fmt.Errorf("element kind %d: %w", k, utils.ErrInvalidArgument)
	}
	bary, err := NewBarycentric(tri)
	if err != nil {
		return FiniteElement{}, err
	}
	props := k.Properties()
	fe := FiniteElement{
		Index:    tri.ID,
		Triangle: tri,
		Nodes:    make([]Node, 0, props.Np),
	}
	for i := 0; i < 3; i++ {
		fe.Nodes = append(fe.Nodes, Node{Kind: VertexNode, Local: i, Vertex: vertexDOFs[i], Bary: bary})
	}
	if k == P1b {
		fe.Nodes = append(fe.Nodes, Node{Kind: BubbleNode, Local: 3, Vertex: bubbleDOF, Bary: bary})
	}
	return fe, nil
}

// Interpolate evaluates sum_n Phi_n(p) * values(n.Vertex)
func (fe FiniteElement) Interpolate(p mesh.Point2D, values func(dof int) float64) float64 {
	var u float64
	for _, n := range fe.Nodes {
		u += n.Phi(p) * values(n.Vertex)
	}
	return u
}
