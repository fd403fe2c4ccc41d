package meshdog

import (
	"log/slog"
	"math"
	"slices"
)

const (
	// DefaultIters is the default number of Gaussian convolution rounds.
	DefaultIters = 10

	// DefaultPercentile selects the top 5% of DoG responses.
	DefaultPercentile = 0.95
)

// bandwidthScale multiplies the average edge length to give the kernel width.
var bandwidthScale = math.Cbrt(2)

// Detector finds MeshDOG feature points: vertices where the difference between
// successive Gaussian-smoothed versions of a scalar field is largest.
//
// Init must be called before Detect; an uninitialized Detector detects
// nothing. Detect does not reset the smoothed field, so calling it again
// continues the convolution from where the previous call stopped.
type Detector struct {
	// Iters is the number of convolution rounds run by Detect.
	Iters int

	// Percentile is the rank, as a fraction of the vertex count, of the
	// DoG value used as the feature threshold.
	Percentile float64

	mesh     *Mesh
	response *VertexProperty[float64]
	next     *VertexProperty[float64]
	avgEdge  *VertexProperty[float64]
	dog      *VertexProperty[float64]
}

// NewDetector returns a Detector with the default parameters.
func NewDetector() *Detector {
	return &Detector{Iters: DefaultIters, Percentile: DefaultPercentile}
}

// Init seeds the response field with seed (normally the uniform mean
// curvature) and computes the average incident edge length of every vertex.
// Vertices without neighbors keep an average edge length of zero.
func (d *Detector) Init(m *Mesh, seed *VertexProperty[float64]) {
	d.mesh = m
	d.response = NewVertexProperty[float64](m)
	d.next = NewVertexProperty[float64](m)
	d.avgEdge = NewVertexProperty[float64](m)
	d.dog = NewVertexProperty[float64](m)

	for v := 0; v < m.NumVertices(); v++ {
		d.response.Set(v, seed.At(v))

		valence := 0
		eavg := 0.0
		p := m.Position(v)
		for _, u := range m.OneRing(v) {
			valence++
			eavg += distance(p, m.Position(u))
		}
		if valence == 0 {
			slog.Warn("meshdog: isolated vertex", "vertex", v, "response", seed.At(v))
			continue
		}
		d.avgEdge.Set(v, eavg/float64(valence))
	}
}

// Detect runs Iters convolution rounds and returns the vertices whose DoG
// value reaches the Percentile threshold. Before Init it returns an empty set.
func (d *Detector) Detect() *FeatureSet {
	if d.mesh == nil {
		slog.Warn("meshdog: detector used before Init")
		return NewFeatureSet()
	}
	d.Convolve(d.Iters)
	fs := d.Threshold()
	slog.Info("meshdog: detected feature points", "count", fs.Len(), "vertices", d.mesh.NumVertices(), "iters", d.Iters)
	return fs
}

// Convolve runs the given number of Gaussian convolution rounds. Every round
// reads only the previous round's responses. It does nothing before Init.
func (d *Detector) Convolve(rounds int) {
	m := d.mesh
	if m == nil {
		return
	}
	for i := 0; i < rounds; i++ {
		for v := 0; v < m.NumVertices(); v++ {
			f0 := d.response.At(v)
			d.next.Set(v, f0)
			if math.IsNaN(f0) {
				continue
			}

			theta := bandwidthScale * d.avgEdge.At(v)
			p := m.Position(v)
			f1, K := 0.0, 0.0
			for _, u := range m.OneRing(v) {
				k := GaussianKernel(distance(p, m.Position(u)), theta)
				K += k
				f1 += d.response.At(u) * k
			}
			if K == 0 || math.IsNaN(K) || math.IsInf(K, 0) {
				continue
			}
			f1 /= K

			d.dog.Set(v, f1-f0)
			d.next.Set(v, f1)
		}
		d.response, d.next = d.next, d.response
	}
}

// Threshold selects the vertices whose DoG value is at least the value at
// rank floor(Percentile * n) of all DoG values sorted ascending.
// Before Init it returns an empty set.
func (d *Detector) Threshold() *FeatureSet {
	m := d.mesh
	fs := NewFeatureSet()
	if m == nil {
		return fs
	}
	n := m.NumVertices()
	if n == 0 {
		return fs
	}

	sorted := d.dog.Values()
	slices.Sort(sorted)
	rank := int(float64(n) * d.Percentile)
	rank = min(max(rank, 0), n-1)
	threshold := sorted[rank]

	for v := 0; v < n; v++ {
		if !math.IsNaN(d.response.At(v)) && d.dog.At(v) >= threshold {
			fs.Add(v, m.Position(v))
		}
	}
	return fs
}

// Response returns the current smoothed field.
func (d *Detector) Response() *VertexProperty[float64] { return d.response }

// DoG returns the DoG value of the last convolution round.
func (d *Detector) DoG() *VertexProperty[float64] { return d.dog }

// AverageEdgeLength returns the average incident edge length per vertex.
func (d *Detector) AverageEdgeLength() *VertexProperty[float64] { return d.avgEdge }

// GaussianKernel is the normal density with standard deviation theta at distance x.
func GaussianKernel(x, theta float64) float64 {
	return math.Exp(-(x*x)/(2*theta*theta)) / (theta * math.Sqrt(2*math.Pi))
}
