package meshdog

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/mailru/easyjson/jwriter"
	"gopkg.in/yaml.v3"
)

// MeshStats counts the elements of a mesh.
type MeshStats struct {
	Vertices      int `yaml:"vertices"`
	Edges         int `yaml:"edges"`
	Faces         int `yaml:"faces"`
	BoundaryLoops int `yaml:"boundary_loops"`
	Isolated      int `yaml:"isolated"`
}

// Report summarizes one detection run.
type Report struct {
	Mesh       MeshStats   `yaml:"mesh"`
	Iters      int         `yaml:"iters"`
	Percentile float64     `yaml:"percentile"`
	Fields     []Summary   `yaml:"fields"`
	Features   *FeatureSet `yaml:"features"`
}

// NewReport collects the statistics of a run.
func NewReport(m *Mesh, fd *Fields, d *Detector, fs *FeatureSet) *Report {
	r := &Report{
		Mesh: MeshStats{
			Vertices:      m.NumVertices(),
			Edges:         m.NumEdges(),
			Faces:         m.NumFaces(),
			BoundaryLoops: len(m.BoundaryLoops()),
		},
		Iters:      d.Iters,
		Percentile: d.Percentile,
		Fields:     fd.Summaries(),
		Features:   fs,
	}
	for v := 0; v < m.NumVertices(); v++ {
		if m.Valence(v) == 0 {
			r.Mesh.Isolated++
		}
	}
	r.Fields = append(r.Fields,
		Summarize("dog_response", d.Response().Values()),
		Summarize("dog", d.DoG().Values()))
	return r
}

// WriteYAML writes the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// WriteJSON writes the report as JSON. Non-finite numbers are written as null.
func (r *Report) WriteJSON(w io.Writer) error {
	jw := &jwriter.Writer{}
	jw.RawString(`{"mesh":{"vertices":`)
	jw.Int(r.Mesh.Vertices)
	jw.RawString(`,"edges":`)
	jw.Int(r.Mesh.Edges)
	jw.RawString(`,"faces":`)
	jw.Int(r.Mesh.Faces)
	jw.RawString(`,"boundary_loops":`)
	jw.Int(r.Mesh.BoundaryLoops)
	jw.RawString(`,"isolated":`)
	jw.Int(r.Mesh.Isolated)
	jw.RawString(`},"iters":`)
	jw.Int(r.Iters)
	jw.RawString(`,"percentile":`)
	writeFloat(jw, r.Percentile)

	jw.RawString(`,"fields":[`)
	for i, s := range r.Fields {
		if i > 0 {
			jw.RawByte(',')
		}
		jw.RawString(`{"name":`)
		jw.String(s.Name)
		jw.RawString(`,"count":`)
		jw.Int(s.Count)
		jw.RawString(`,"nan":`)
		jw.Int(s.NaN)
		for _, kv := range []struct {
			key string
			val float64
		}{
			{"min", s.Min}, {"max", s.Max}, {"mean", s.Mean}, {"stddev", s.StdDev},
			{"robust_min", s.RobustMin}, {"robust_max", s.RobustMax},
		} {
			jw.RawString(`,"` + kv.key + `":`)
			writeFloat(jw, kv.val)
		}
		jw.RawByte('}')
	}
	jw.RawByte(']')

	jw.RawString(`,"features":`)
	jw.Raw(r.Features.MarshalJSON())
	jw.RawByte('}')

	if jw.Error != nil {
		return jw.Error
	}
	_, err := jw.DumpTo(w)
	return err
}

func writeFloat(jw *jwriter.Writer, x float64) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		jw.RawString("null")
		return
	}
	jw.Float64(x)
}

// Save writes the report to path, as JSON for a .json extension and YAML otherwise.
func (r *Report) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = r.WriteJSON(file)
	} else {
		err = r.WriteYAML(file)
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("saving report %s: %w", path, err)
	}
	return nil
}
