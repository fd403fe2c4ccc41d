package meshdog

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"cogentcore.org/core/base/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultFeatureFile is the file the detected feature points are saved to.
const DefaultFeatureFile = "dog_points.ply"

// FeatureSet is the ordered set of detected feature vertices and their positions.
type FeatureSet struct {
	points *orderedmap.OrderedMap[int, r3.Vec]
}

// NewFeatureSet returns an empty FeatureSet.
func NewFeatureSet() *FeatureSet {
	return &FeatureSet{points: orderedmap.New[int, r3.Vec]()}
}

// Add appends vertex v at position p.
func (fs *FeatureSet) Add(v int, p r3.Vec) {
	fs.points.Set(v, p)
}

// Len returns the number of feature points.
func (fs *FeatureSet) Len() int { return fs.points.Len() }

// Contains reports whether vertex v is a feature point.
func (fs *FeatureSet) Contains(v int) bool {
	_, ok := fs.points.Get(v)
	return ok
}

// Indices returns the feature vertex indices in detection order.
func (fs *FeatureSet) Indices() []int {
	vs := make([]int, 0, fs.Len())
	for pair := fs.points.Oldest(); pair != nil; pair = pair.Next() {
		vs = append(vs, pair.Key)
	}
	return vs
}

// Points returns the feature positions in detection order.
func (fs *FeatureSet) Points() []r3.Vec {
	ps := make([]r3.Vec, 0, fs.Len())
	for pair := fs.points.Oldest(); pair != nil; pair = pair.Next() {
		ps = append(ps, pair.Value)
	}
	return ps
}

// MarshalJSON encodes the set as an object keyed by vertex index.
func (fs *FeatureSet) MarshalJSON() ([]byte, error) {
	return fs.points.MarshalJSON()
}

// MarshalYAML encodes the set as a mapping keyed by vertex index.
func (fs *FeatureSet) MarshalYAML() (any, error) {
	return fs.points.MarshalYAML()
}

// WritePLY writes the feature points as an ASCII PLY point cloud without faces.
func (fs *FeatureSet) WritePLY(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ply\nformat ascii 1.0\nelement vertex %d\n", fs.Len())
	fmt.Fprint(bw, "property float x\nproperty float y\nproperty float z\nend_header\n")
	for pair := fs.points.Oldest(); pair != nil; pair = pair.Next() {
		p := pair.Value
		if _, err := fmt.Fprintf(bw, "%g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SavePLY writes the feature points to the named file.
func (fs *FeatureSet) SavePLY(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fs.WritePLY(file); err != nil {
		return errors.Join(err, file.Close())
	}
	return file.Close()
}
