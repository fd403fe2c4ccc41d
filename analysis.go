package meshdog

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Fields holds the per-element quantities derived from the mesh geometry.
type Fields struct {
	EdgeWeight       *EdgeProperty[float64]
	VertexWeight     *VertexProperty[float64]
	UniformCurvature *VertexProperty[float64]
	MeanCurvature    *VertexProperty[float64]
	GaussCurvature   *VertexProperty[float64]
	ShapeQuality     *FaceProperty[float64]

	version int
}

// Analyze computes weights, curvatures and triangle quality for the current geometry.
func Analyze(m *Mesh, mode QualityMode) *Fields {
	fd := &Fields{version: m.Version()}
	fd.EdgeWeight, fd.VertexWeight = ComputeWeights(m)
	fd.MeanCurvature = MeanCurvature(m, fd.EdgeWeight, fd.VertexWeight)
	fd.UniformCurvature = UniformMeanCurvature(m)
	fd.GaussCurvature = GaussCurvature(m, fd.VertexWeight)
	fd.ShapeQuality = TriangleQuality(m, mode)

	slog.Info("meshdog: analyzed mesh", "vertices", m.NumVertices(), "edges", m.NumEdges(), "faces", m.NumFaces(), "quality", mode)
	return fd
}

// Stale reports whether m has moved since the fields were computed.
func (fd *Fields) Stale(m *Mesh) bool {
	return fd.version != m.Version()
}

// Summary describes the distribution of a scalar field.
// Non-finite values are counted in NaN and excluded from the statistics.
type Summary struct {
	Name   string  `yaml:"name"`
	Count  int     `yaml:"count"`
	NaN    int     `yaml:"nan"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`

	// RobustMin and RobustMax discard the lower and upper 5% of the values.
	RobustMin float64 `yaml:"robust_min"`
	RobustMax float64 `yaml:"robust_max"`
}

// Summarize computes a Summary of values.
func Summarize(name string, values []float64) Summary {
	s := Summary{Name: name, Count: len(values)}
	finite := make([]float64, 0, len(values))
	for _, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			s.NaN++
			continue
		}
		finite = append(finite, x)
	}
	if len(finite) == 0 {
		return s
	}

	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	s.Mean = stat.Mean(finite, nil)
	if len(finite) > 1 {
		s.StdDev = stat.StdDev(finite, nil)
	}

	slices.Sort(finite)
	n := len(finite) - 1
	i := n / 20
	s.RobustMin = finite[i]
	s.RobustMax = finite[max(n-1-i, i)]
	return s
}

// Summaries returns a Summary of every vertex and face field.
func (fd *Fields) Summaries() []Summary {
	return []Summary{
		Summarize("vertex_weight", fd.VertexWeight.Values()),
		Summarize("uniform_mean_curvature", fd.UniformCurvature.Values()),
		Summarize("mean_curvature", fd.MeanCurvature.Values()),
		Summarize("gauss_curvature", fd.GaussCurvature.Values()),
		Summarize("edge_weight", fd.EdgeWeight.Values()),
		Summarize("triangle_quality", fd.ShapeQuality.Values()),
	}
}

// LogSummaries writes the field summaries at debug level.
func (fd *Fields) LogSummaries() {
	for _, s := range fd.Summaries() {
		slog.Debug("meshdog: field", "name", s.Name, "min", s.Min, "max", s.Max, "mean", s.Mean, "nan", s.NaN)
	}
}
