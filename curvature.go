package meshdog

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// UniformMeanCurvature approximates mean curvature as half the length of the
// uniform Laplacian: the vector from a vertex to the centroid of its one-ring.
// Isolated vertices get NaN.
func UniformMeanCurvature(m *Mesh) *VertexProperty[float64] {
	curv := NewVertexProperty[float64](m)
	for v := 0; v < m.NumVertices(); v++ {
		ring := m.OneRing(v)
		if len(ring) == 0 {
			curv.Set(v, math.NaN())
			continue
		}
		var centroid r3.Vec
		for _, u := range ring {
			centroid = r3.Add(centroid, m.Position(u))
		}
		centroid = r3.Scale(1/float64(len(ring)), centroid)
		curv.Set(v, r3.Norm(r3.Sub(centroid, m.Position(v)))/2)
	}
	return curv
}

// MeanCurvature approximates mean curvature as half the length of the
// cotangent-weighted Laplace-Beltrami vector, scaled by the vertex area weight.
// Only the magnitude is recovered. Isolated vertices get NaN.
func MeanCurvature(m *Mesh, eweight *EdgeProperty[float64], vweight *VertexProperty[float64]) *VertexProperty[float64] {
	curv := NewVertexProperty[float64](m)
	for v := 0; v < m.NumVertices(); v++ {
		if m.Valence(v) == 0 {
			curv.Set(v, math.NaN())
			continue
		}
		curv.Set(v, r3.Norm(r3.Scale(vweight.At(v), laplaceBeltrami(m, eweight, v)))/2)
	}
	return curv
}

// laplaceBeltrami returns sum(w_e * (p_u - p_v)) over the outgoing edges of v.
func laplaceBeltrami(m *Mesh, eweight *EdgeProperty[float64], v int) r3.Vec {
	var laplace r3.Vec
	p := m.Position(v)
	for _, h := range m.Outgoing(v) {
		he := m.Halfedge(h)
		laplace = r3.Add(laplace, r3.Scale(eweight.At(he.Edge), r3.Sub(m.Position(he.To), p)))
	}
	return laplace
}

// GaussCurvature approximates Gaussian curvature from the angle deficit
// 2π - Σθ over the incident triangle angles, times twice the area weight.
func GaussCurvature(m *Mesh, vweight *VertexProperty[float64]) *VertexProperty[float64] {
	curv := NewVertexProperty[float64](m)
	for v := 0; v < m.NumVertices(); v++ {
		curv.Set(v, 2*vweight.At(v)*AngleDeficit(m, v))
	}
	return curv
}

// AngleDeficit returns 2π minus the sum of the triangle angles at v.
func AngleDeficit(m *Mesh, v int) float64 {
	angles := 0.0
	p := m.Position(v)
	for _, h := range m.Outgoing(v) {
		he := m.Halfedge(h)
		if he.Face < 0 {
			continue
		}
		angles += angleAt(p, m.Position(he.To), m.Position(m.Halfedge(he.Next).To))
	}
	return 2*math.Pi - angles
}
