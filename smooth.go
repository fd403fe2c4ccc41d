package meshdog

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Smooth runs Laplace-Beltrami smoothing: every round moves each vertex by
// half of its cotangent-weighted Laplacian normalized by the sum of its edge
// weights. Vertices whose weights sum to zero do not move.
// Fields computed before the call are stale afterwards.
func Smooth(m *Mesh, eweight *EdgeProperty[float64], iters int) {
	smooth(m, iters, func(old []r3.Vec, v int) (r3.Vec, bool) {
		var laplace r3.Vec
		ww := 0.0
		for _, h := range m.Outgoing(v) {
			he := m.Halfedge(h)
			w := eweight.At(he.Edge)
			laplace = r3.Add(laplace, r3.Scale(w, r3.Sub(old[he.To], old[v])))
			ww += w
		}
		if ww == 0 {
			return r3.Vec{}, false
		}
		return r3.Scale(1/ww, laplace), true
	})
}

// UniformSmooth runs uniform Laplacian smoothing: every round moves each
// vertex halfway towards the centroid of its one-ring.
// Fields computed before the call are stale afterwards.
func UniformSmooth(m *Mesh, iters int) {
	smooth(m, iters, func(old []r3.Vec, v int) (r3.Vec, bool) {
		ring := m.OneRing(v)
		if len(ring) == 0 {
			return r3.Vec{}, false
		}
		var centroid r3.Vec
		for _, u := range ring {
			centroid = r3.Add(centroid, old[u])
		}
		return r3.Sub(r3.Scale(1/float64(len(ring)), centroid), old[v]), true
	})
}

// smooth applies displacement rounds. Each round reads the positions of the
// previous round only.
func smooth(m *Mesh, iters int, displacement func(old []r3.Vec, v int) (r3.Vec, bool)) {
	if iters <= 0 {
		return
	}
	old := slices.Clone(m.positions)
	for i := 0; i < iters; i++ {
		for v := range m.positions {
			if d, ok := displacement(old, v); ok {
				m.positions[v] = r3.Add(old[v], r3.Scale(0.5, d))
			}
		}
		copy(old, m.positions)
		m.UpdateNormals()
	}
	m.version++
}
