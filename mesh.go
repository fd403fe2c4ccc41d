package meshdog

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/core/base/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrNotTriangle is returned by NewMesh for faces that do not have exactly three vertices.
	ErrNotTriangle = errors.New("meshdog: face is not a triangle")

	// ErrNonManifold is returned by NewMesh when a directed edge is used by more than one face.
	ErrNonManifold = errors.New("meshdog: non-manifold edge")
)

// Face is a list of vertex indices, as read from a mesh file.
type Face []int

// Halfedge is a directed edge of a face. Boundary half-edges have Face == -1.
type Halfedge struct {
	From int
	To   int
	Next int
	Twin int
	Face int
	Edge int
}

// Edge is an undirected edge made of two half-edges.
// For boundary edges H[0] is the half-edge that belongs to a face.
type Edge struct {
	H [2]int
}

// Mesh is an index-based half-edge triangle mesh.
// Topology is fixed after NewMesh; only vertex positions change.
type Mesh struct {
	positions []r3.Vec
	normals   []r3.Vec
	halfedges []Halfedge
	edges     []Edge
	faces     []int   // first half-edge of each face
	outgoing  [][]int // outgoing half-edges per vertex, in fan order

	// version is bumped on every geometry change.
	version int
}

// NewMesh builds the half-edge structure for the given vertex positions and triangles.
func NewMesh(points []r3.Vec, faces []Face) (*Mesh, error) {
	n := len(points)
	m := &Mesh{
		positions: slices.Clone(points),
		normals:   make([]r3.Vec, n),
		outgoing:  make([][]int, n),
		faces:     make([]int, 0, len(faces)),
		halfedges: make([]Halfedge, 0, 3*len(faces)),
	}

	directed := make(map[[2]int]int, 3*len(faces))
	for fi, f := range faces {
		if len(f) != 3 {
			return nil, fmt.Errorf("face %d has %d vertices: %w", fi, len(f), ErrNotTriangle)
		}
		for _, v := range f {
			if v < 0 || v >= n {
				return nil, fmt.Errorf("face %d references vertex %d, mesh has %d vertices", fi, v, n)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			return nil, fmt.Errorf("face %d repeats a vertex: %v", fi, []int(f))
		}

		base := len(m.halfedges)
		for i := 0; i < 3; i++ {
			from, to := f[i], f[(i+1)%3]
			if _, dup := directed[[2]int{from, to}]; dup {
				return nil, fmt.Errorf("edge %d->%d of face %d: %w", from, to, fi, ErrNonManifold)
			}
			directed[[2]int{from, to}] = base + i
			m.halfedges = append(m.halfedges, Halfedge{
				From: from,
				To:   to,
				Next: base + (i+1)%3,
				Twin: -1,
				Face: fi,
				Edge: -1,
			})
		}
		m.faces = append(m.faces, base)
	}

	// pair up interior half-edges
	interior := len(m.halfedges)
	for h := 0; h < interior; h++ {
		he := &m.halfedges[h]
		if he.Edge >= 0 {
			continue
		}
		t, ok := directed[[2]int{he.To, he.From}]
		if !ok {
			continue
		}
		e := len(m.edges)
		m.edges = append(m.edges, Edge{H: [2]int{h, t}})
		he.Twin, he.Edge = t, e
		m.halfedges[t].Twin, m.halfedges[t].Edge = h, e
	}

	// close the open edges with boundary half-edges
	boundaryFrom := make(map[int]int)
	for h := 0; h < interior; h++ {
		he := m.halfedges[h]
		if he.Twin >= 0 {
			continue
		}
		b := len(m.halfedges)
		e := len(m.edges)
		m.edges = append(m.edges, Edge{H: [2]int{h, b}})
		m.halfedges = append(m.halfedges, Halfedge{From: he.To, To: he.From, Next: -1, Twin: h, Face: -1, Edge: e})
		m.halfedges[h].Twin, m.halfedges[h].Edge = b, e
		if _, ok := boundaryFrom[he.To]; !ok {
			boundaryFrom[he.To] = b
		}
	}
	for h := interior; h < len(m.halfedges); h++ {
		if next, ok := boundaryFrom[m.halfedges[h].To]; ok {
			m.halfedges[h].Next = next
		}
	}

	for h, he := range m.halfedges {
		m.outgoing[he.From] = append(m.outgoing[he.From], h)
	}
	for v := range m.outgoing {
		m.orderFan(v)
	}

	m.UpdateNormals()
	return m, nil
}

// orderFan sorts the outgoing half-edges of v so that consecutive entries
// share a face. Boundary vertices start at their boundary half-edge.
// Vertices whose fan cannot be walked (non-manifold) keep construction order.
func (m *Mesh) orderFan(v int) {
	hs := m.outgoing[v]
	if len(hs) < 2 {
		return
	}
	start := hs[0]
	for _, h := range hs {
		if m.halfedges[h].Face < 0 {
			start = h
			break
		}
	}
	ordered := make([]int, 0, len(hs))
	h := start
	for len(ordered) < len(hs) {
		ordered = append(ordered, h)
		h = m.halfedges[m.halfedges[h].Twin].Next
		if h < 0 || h == start {
			break
		}
	}
	if len(ordered) != len(hs) {
		slog.Debug("meshdog: vertex fan is not a single disk", "vertex", v, "walked", len(ordered), "outgoing", len(hs))
		return
	}
	m.outgoing[v] = ordered
}

// NumVertices returns the number of vertices.
func (m *Mesh) NumVertices() int { return len(m.positions) }

// NumEdges returns the number of undirected edges.
func (m *Mesh) NumEdges() int { return len(m.edges) }

// NumFaces returns the number of triangles.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// Position returns the position of vertex v.
func (m *Mesh) Position(v int) r3.Vec { return m.positions[v] }

// Normal returns the vertex normal computed by the last UpdateNormals.
func (m *Mesh) Normal(v int) r3.Vec { return m.normals[v] }

// SetPosition moves vertex v. Previously computed fields become stale.
func (m *Mesh) SetPosition(v int, p r3.Vec) {
	m.positions[v] = p
	m.version++
}

// Points returns a copy of all vertex positions.
func (m *Mesh) Points() []r3.Vec { return slices.Clone(m.positions) }

// Version identifies the current geometry; it changes whenever a vertex moves.
func (m *Mesh) Version() int { return m.version }

// Halfedge returns half-edge h.
func (m *Mesh) Halfedge(h int) Halfedge { return m.halfedges[h] }

// Outgoing returns the outgoing half-edges of v in fan order.
// The returned slice must not be modified.
func (m *Mesh) Outgoing(v int) []int { return m.outgoing[v] }

// Valence returns the number of one-ring neighbors of v.
func (m *Mesh) Valence(v int) int { return len(m.outgoing[v]) }

// OneRing returns the neighbors of v in fan order.
func (m *Mesh) OneRing(v int) []int {
	ring := make([]int, len(m.outgoing[v]))
	for i, h := range m.outgoing[v] {
		ring[i] = m.halfedges[h].To
	}
	return ring
}

// IncidentFaces returns the faces around v.
func (m *Mesh) IncidentFaces(v int) []int {
	var fs []int
	for _, h := range m.outgoing[v] {
		if f := m.halfedges[h].Face; f >= 0 {
			fs = append(fs, f)
		}
	}
	return fs
}

// FaceVertices returns the three vertices of face f in winding order.
func (m *Mesh) FaceVertices(f int) [3]int {
	h0 := m.halfedges[m.faces[f]]
	h1 := m.halfedges[h0.Next]
	return [3]int{h0.From, h0.To, h1.To}
}

// FacePositions returns the three corner positions of face f.
func (m *Mesh) FacePositions(f int) [3]r3.Vec {
	vs := m.FaceVertices(f)
	return [3]r3.Vec{m.positions[vs[0]], m.positions[vs[1]], m.positions[vs[2]]}
}

// EdgeVertices returns the two endpoints of edge e.
func (m *Mesh) EdgeVertices(e int) (int, int) {
	h := m.halfedges[m.edges[e].H[0]]
	return h.From, h.To
}

// EdgeHalfedges returns the two half-edges of edge e.
func (m *Mesh) EdgeHalfedges(e int) [2]int { return m.edges[e].H }

// IsBoundaryEdge reports whether e has only one incident face.
func (m *Mesh) IsBoundaryEdge(e int) bool {
	h := m.edges[e].H
	return m.halfedges[h[0]].Face < 0 || m.halfedges[h[1]].Face < 0
}

// IsBoundaryVertex reports whether v lies on a boundary edge.
// Isolated vertices are not boundary vertices.
func (m *Mesh) IsBoundaryVertex(v int) bool {
	for _, h := range m.outgoing[v] {
		if m.halfedges[h].Face < 0 {
			return true
		}
	}
	return false
}

// Faces returns the triangles as vertex index lists.
func (m *Mesh) Faces() []Face {
	fs := make([]Face, len(m.faces))
	for f := range m.faces {
		vs := m.FaceVertices(f)
		fs[f] = Face{vs[0], vs[1], vs[2]}
	}
	return fs
}

// UpdateNormals recomputes vertex normals as the normalized sum of the
// unit normals of the incident faces.
func (m *Mesh) UpdateNormals() {
	faceNormals := make([]r3.Vec, len(m.faces))
	for f := range m.faces {
		p := m.FacePositions(f)
		faceNormals[f] = computeTriangleNormal(p[0], p[1], p[2])
	}
	for v := range m.positions {
		var sum r3.Vec
		for _, f := range m.IncidentFaces(v) {
			sum = r3.Add(sum, faceNormals[f])
		}
		if length := r3.Norm(sum); length > 0 {
			sum = r3.Scale(1/length, sum)
		}
		m.normals[v] = sum
	}
}
