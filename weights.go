package meshdog

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// cotClamp bounds the cosine before the inverse cosine in the cotangent weights.
const cotClamp = 0.99

// ComputeWeights returns the cotangent weight of every edge and the area
// weight 1/(2A) of every vertex, where A is a third of the incident triangle area.
//
// Each edge sums the cotangents of the angles opposite to it in its incident
// triangles; a boundary edge has one such triangle and so one term. Negative
// sums are clamped to zero. Isolated vertices get an infinite area weight.
func ComputeWeights(m *Mesh) (*EdgeProperty[float64], *VertexProperty[float64]) {
	eweight := NewEdgeProperty[float64](m)
	for e := 0; e < m.NumEdges(); e++ {
		eweight.Set(e, cotanWeight(m, e))
	}

	vweight := NewVertexProperty[float64](m)
	for v := 0; v < m.NumVertices(); v++ {
		area := 0.0
		for _, f := range m.IncidentFaces(v) {
			p := m.FacePositions(f)
			area += computeTriangleArea(p[0], p[1], p[2]) / 3
		}
		vweight.Set(v, 1/(2*area))
	}

	return eweight, vweight
}

func cotanWeight(m *Mesh, e int) float64 {
	w := 0.0
	for _, h := range m.EdgeHalfedges(e) {
		he := m.Halfedge(h)
		if he.Face < 0 {
			continue
		}
		opposite := m.Halfedge(he.Next).To
		w += cotan(m.Position(he.From), m.Position(he.To), m.Position(opposite))
	}
	return math.Max(0, w)
}

// cotan returns the cotangent of the angle at p2 in triangle (p0, p1, p2).
// Degenerate corners, where p2 coincides with an endpoint, contribute nothing.
func cotan(p0, p1, p2 r3.Vec) float64 {
	d0, ok0 := direction(p0, p2)
	d1, ok1 := direction(p1, p2)
	if !ok0 || !ok1 {
		return 0
	}
	return 1 / math.Tan(math.Acos(clamp(r3.Dot(d0, d1), -cotClamp, cotClamp)))
}
