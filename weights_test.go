package meshdog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCotan(t *testing.T) {
	// right angle at the origin
	assert.InDelta(t, 0, cotan(r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{}), 1e-12)
	// 60 degrees
	assert.InDelta(t, 1/math.Sqrt(3), cotan(r3.Vec{X: 1}, r3.Vec{X: 0.5, Y: math.Sqrt(3) / 2}, r3.Vec{}), 1e-12)
	// nearly flat angles are limited by the cosine clamp
	limit := 1 / math.Tan(math.Acos(cotClamp))
	assert.InDelta(t, limit, cotan(r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1e-9}, r3.Vec{}), 1e-9)
	assert.InDelta(t, -limit, cotan(r3.Vec{X: 1}, r3.Vec{X: -1, Y: 1e-9}, r3.Vec{}), 1e-9)
	// coincident points contribute nothing
	assert.Zero(t, cotan(r3.Vec{}, r3.Vec{X: 1}, r3.Vec{}))
}

func TestEdgeWeightsNonNegative(t *testing.T) {
	obtuse := grid(t, 4, func(x, y float64) float64 { return 0.8 * math.Sin(3*x) * math.Cos(2*y) })
	for _, m := range []*Mesh{icosahedron(t), tetrahedron(t), hexagonFan(t, false), obtuse, icosphere(t, 2, 0.3)} {
		eweight, _ := ComputeWeights(m)
		for e := 0; e < m.NumEdges(); e++ {
			assert.GreaterOrEqual(t, eweight.At(e), 0.0)
		}
	}
}

func TestEdgeWeightsObtuseClamped(t *testing.T) {
	// two flat triangles sharing edge 0-1, both with a 120 degree angle opposite it
	h := math.Tan(math.Pi/6) / 2
	m, err := NewMesh([]r3.Vec{{}, {X: 1}, {X: 0.5, Y: h}, {X: 0.5, Y: -h}}, []Face{{0, 1, 2}, {1, 0, 3}})
	assert.NoError(t, err)
	eweight, _ := ComputeWeights(m)
	for e := 0; e < m.NumEdges(); e++ {
		a, b := m.EdgeVertices(e)
		if min(a, b) == 0 && max(a, b) == 1 {
			assert.Zero(t, eweight.At(e))
		}
	}
}

func TestEquilateralWeights(t *testing.T) {
	m := hexagonFan(t, false)
	eweight, vweight := ComputeWeights(m)
	cot60 := 1 / math.Sqrt(3)
	for e := 0; e < m.NumEdges(); e++ {
		if m.IsBoundaryEdge(e) {
			// one opposite angle only
			assert.InDelta(t, cot60, eweight.At(e), 1e-9)
		} else {
			assert.InDelta(t, 2*cot60, eweight.At(e), 1e-9)
		}
	}

	area := math.Sqrt(3) / 4
	assert.InDelta(t, 1/(2*6*area/3), vweight.At(0), 1e-9)
	for v := 1; v <= 6; v++ {
		assert.InDelta(t, 1/(2*2*area/3), vweight.At(v), 1e-9)
	}
}

func TestVertexWeights(t *testing.T) {
	for _, m := range []*Mesh{icosahedron(t), tetrahedron(t), icosphere(t, 2, 0.3)} {
		_, vweight := ComputeWeights(m)
		for v := 0; v < m.NumVertices(); v++ {
			w := vweight.At(v)
			assert.Greater(t, w, 0.0)
			assert.False(t, math.IsInf(w, 0))
		}
	}

	m := hexagonFan(t, true)
	_, vweight := ComputeWeights(m)
	assert.True(t, math.IsInf(vweight.At(7), 1))
}

func TestWeightsDeterministic(t *testing.T) {
	m := icosphere(t, 2, 0.2)
	e1, v1 := ComputeWeights(m)
	e2, v2 := ComputeWeights(m)
	assert.Equal(t, e1.Values(), e2.Values())
	assert.Equal(t, v1.Values(), v2.Values())
}
