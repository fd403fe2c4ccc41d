package meshdog

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// icosahedron returns a regular icosahedron with 12 vertices of valence 5.
func icosahedron(t *testing.T) *Mesh {
	t.Helper()
	p, f := icosahedronData()
	m, err := NewMesh(p, f)
	require.NoError(t, err)
	return m
}

func icosahedronData() ([]r3.Vec, []Face) {
	g := (1 + math.Sqrt(5)) / 2
	coords := []float64{
		-1, g, 0, 1, g, 0, -1, -g, 0, 1, -g, 0,
		0, -1, g, 0, 1, g, 0, -1, -g, 0, 1, -g,
		g, 0, -1, g, 0, 1, -g, 0, -1, -g, 0, 1,
	}
	indices := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	points := make([]r3.Vec, len(coords)/3)
	for i := range points {
		points[i] = r3.Vec{X: coords[3*i], Y: coords[3*i+1], Z: coords[3*i+2]}
	}
	faces := make([]Face, len(indices)/3)
	for i := range faces {
		faces[i] = Face{indices[3*i], indices[3*i+1], indices[3*i+2]}
	}
	return points, faces
}

// icosphere subdivides the icosahedron and projects onto the unit sphere.
// A non-zero jitter moves every vertex radially by a random amount.
func icosphere(t *testing.T, levels int, jitter float64) *Mesh {
	t.Helper()
	points, faces := icosahedronData()
	for l := 0; l < levels; l++ {
		mid := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if i, ok := mid[key]; ok {
				return i
			}
			points = append(points, r3.Scale(0.5, r3.Add(points[a], points[b])))
			mid[key] = len(points) - 1
			return len(points) - 1
		}
		next := make([]Face, 0, 4*len(faces))
		for _, f := range faces {
			a, b, c := midpoint(f[0], f[1]), midpoint(f[1], f[2]), midpoint(f[2], f[0])
			next = append(next, Face{f[0], a, c}, Face{f[1], b, a}, Face{f[2], c, b}, Face{a, b, c})
		}
		faces = next
	}
	rnd := rand.New(rand.NewSource(1))
	for i, p := range points {
		points[i] = r3.Scale((1+jitter*rnd.Float64())/r3.Norm(p), p)
	}
	m, err := NewMesh(points, faces)
	require.NoError(t, err)
	return m
}

// tetrahedron returns a closed tetrahedron.
func tetrahedron(t *testing.T) *Mesh {
	t.Helper()
	m, err := NewMesh([]r3.Vec{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	}, []Face{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}})
	require.NoError(t, err)
	return m
}

// hexagonFan returns a flat disk: a center vertex 0 surrounded by six
// triangles. An extra isolated vertex is appended when isolated is set.
func hexagonFan(t *testing.T, isolated bool) *Mesh {
	t.Helper()
	points := []r3.Vec{{}}
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		points = append(points, r3.Vec{X: math.Cos(a), Y: math.Sin(a)})
	}
	if isolated {
		points = append(points, r3.Vec{X: 5, Y: 5, Z: 5})
	}
	var faces []Face
	for i := 1; i <= 6; i++ {
		faces = append(faces, Face{0, i, i%6 + 1})
	}
	m, err := NewMesh(points, faces)
	require.NoError(t, err)
	return m
}

// grid returns an n x n flat grid of unit squares split into triangles,
// with the height of each vertex given by h.
func grid(t *testing.T, n int, h func(x, y float64) float64) *Mesh {
	t.Helper()
	var points []r3.Vec
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			x, y := float64(i), float64(j)
			points = append(points, r3.Vec{X: x, Y: y, Z: h(x, y)})
		}
	}
	idx := func(i, j int) int { return j*(n+1) + i }
	var faces []Face
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			faces = append(faces,
				Face{idx(i, j), idx(i+1, j), idx(i+1, j+1)},
				Face{idx(i, j), idx(i+1, j+1), idx(i, j+1)})
		}
	}
	m, err := NewMesh(points, faces)
	require.NoError(t, err)
	return m
}

func flat(x, y float64) float64 { return 0 }
