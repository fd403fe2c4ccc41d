package meshdog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestCurvatureNonNegative(t *testing.T) {
	for _, m := range []*Mesh{icosahedron(t), hexagonFan(t, false), icosphere(t, 2, 0.3)} {
		eweight, vweight := ComputeWeights(m)
		uni := UniformMeanCurvature(m)
		mean := MeanCurvature(m, eweight, vweight)
		for v := 0; v < m.NumVertices(); v++ {
			assert.GreaterOrEqual(t, uni.At(v), 0.0)
			assert.GreaterOrEqual(t, mean.At(v), 0.0)
		}
	}
}

func TestIcosahedronSymmetry(t *testing.T) {
	m := icosahedron(t)
	fd := Analyze(m, QualityLiteral)
	for v := 1; v < m.NumVertices(); v++ {
		assert.InDelta(t, fd.UniformCurvature.At(0), fd.UniformCurvature.At(v), 1e-12)
		assert.InDelta(t, fd.MeanCurvature.At(0), fd.MeanCurvature.At(v), 1e-12)
		assert.InDelta(t, fd.GaussCurvature.At(0), fd.GaussCurvature.At(v), 1e-12)
	}
	// five equilateral angles of 60 degrees
	assert.InDelta(t, math.Pi/3, AngleDeficit(m, 0), 1e-12)
}

func TestGaussBonnet(t *testing.T) {
	for _, m := range []*Mesh{icosahedron(t), tetrahedron(t), icosphere(t, 2, 0.3)} {
		_, vweight := ComputeWeights(m)
		gauss := GaussCurvature(m, vweight)
		deficit, total := 0.0, 0.0
		for v := 0; v < m.NumVertices(); v++ {
			deficit += AngleDeficit(m, v)
			total += gauss.At(v) / (2 * vweight.At(v))
		}
		// Euler characteristic 2
		assert.InDelta(t, 4*math.Pi, deficit, 1e-9)
		assert.InDelta(t, 4*math.Pi, total, 1e-9)
	}
}

func TestUnitSphereCurvature(t *testing.T) {
	m := icosphere(t, 3, 0)
	fd := Analyze(m, QualityLiteral)
	assert.InDelta(t, 1, stat.Mean(fd.MeanCurvature.Values(), nil), 0.1)
	assert.InDelta(t, 1, stat.Mean(fd.GaussCurvature.Values(), nil), 0.1)
}

func TestFlatCurvature(t *testing.T) {
	m := hexagonFan(t, false)
	fd := Analyze(m, QualityLiteral)
	assert.InDelta(t, 0, fd.UniformCurvature.At(0), 1e-12)
	assert.InDelta(t, 0, fd.MeanCurvature.At(0), 1e-12)
	assert.InDelta(t, 0, fd.GaussCurvature.At(0), 1e-12)
}

func TestIsolatedVertexCurvature(t *testing.T) {
	m := hexagonFan(t, true)
	fd := Analyze(m, QualityLiteral)
	assert.True(t, math.IsNaN(fd.UniformCurvature.At(7)))
	assert.True(t, math.IsNaN(fd.MeanCurvature.At(7)))
	assert.True(t, math.IsInf(fd.GaussCurvature.At(7), 1))
}

func TestCurvatureDeterministic(t *testing.T) {
	m := icosphere(t, 2, 0.25)
	a := Analyze(m, QualityLiteral)
	b := Analyze(m, QualityLiteral)
	assert.Equal(t, a.UniformCurvature.Values(), b.UniformCurvature.Values())
	assert.Equal(t, a.MeanCurvature.Values(), b.MeanCurvature.Values())
	assert.Equal(t, a.GaussCurvature.Values(), b.GaussCurvature.Values())
	assert.Equal(t, a.ShapeQuality.Values(), b.ShapeQuality.Values())
}
