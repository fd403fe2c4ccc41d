// Command meshdog computes discrete curvatures of a triangle mesh and
// detects MeshDOG feature points on it.
package main

import (
	"fmt"
	"log/slog"
	"math"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"cogentcore.org/core/cli"

	"meshdog"
)

//go:generate core generate -add-types -add-funcs

// Config is the configuration information for the meshdog cli.
type Config struct {

	// Input is the triangle mesh to process, as .obj or binary .stl.
	Input string `posarg:"0"`

	// Output is the PLY file the detected feature points are written to.
	Output string `flag:"o,output" default:"dog_points.ply"`

	// Iters is the number of Gaussian convolution rounds.
	Iters int `default:"10"`

	// Percentile is the fraction of vertices below the feature threshold.
	Percentile float64 `default:"0.95"`

	// Quality is the triangle shape measure: literal or corrected.
	Quality string `default:"literal"`

	// Report, if set, is a .yaml or .json file the run statistics are written to.
	Report string

	// Debug enables debug logging.
	Debug bool

	// Rounds is the number of smoothing rounds.
	Rounds int `cmd:"smooth" default:"10"`

	// Uniform selects uniform instead of Laplace-Beltrami smoothing.
	Uniform bool `cmd:"smooth"`

	// Mesh is the OBJ file the smoothed mesh is written to.
	Mesh string `cmd:"smooth" default:"smoothed.obj"`

	// Redetect runs feature detection again on the smoothed mesh.
	Redetect bool `cmd:"smooth"`
}

func main() { //types:skip
	opts := cli.DefaultOptions("meshdog", "Curvature analysis and MeshDOG feature detection for triangle meshes.")
	cli.Run(opts, &Config{}, Detect, Smooth)
}

// Detect loads the mesh, computes its curvature fields and saves the
// detected feature points.
func Detect(c *Config) error { //cli:cmd -root
	m, fd, _, err := load(c)
	if err != nil {
		return err
	}
	return detect(c, m, fd)
}

// Smooth loads the mesh, smooths it, recomputes its fields and saves it.
// With Redetect, feature points are detected on the smoothed mesh.
func Smooth(c *Config) error {
	m, fd, mode, err := load(c)
	if err != nil {
		return err
	}

	if c.Uniform {
		slog.Info("uniform smoothing", "rounds", c.Rounds)
		meshdog.UniformSmooth(m, c.Rounds)
	} else {
		slog.Info("Laplace-Beltrami smoothing", "rounds", c.Rounds)
		meshdog.Smooth(m, fd.EdgeWeight, c.Rounds)
	}
	fd = meshdog.Analyze(m, mode)
	fd.LogSummaries()

	if err := meshdog.WriteOBJ(m, c.Mesh); err != nil {
		return fmt.Errorf("writing smoothed mesh: %w", err)
	}
	if !c.Redetect {
		return nil
	}
	return detect(c, m, fd)
}

// load validates the parameters, reads the input mesh and computes its
// fields with the configured quality mode.
func load(c *Config) (*meshdog.Mesh, *meshdog.Fields, meshdog.QualityMode, error) {
	if c.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	if c.Input == "" {
		return nil, nil, 0, errors.New("no input mesh given")
	}
	if !errors.Log1(fsx.FileExists(c.Input)) {
		return nil, nil, 0, fmt.Errorf("input mesh %q does not exist", c.Input)
	}
	mode, err := meshdog.ParseQualityMode(c.Quality)
	if err != nil {
		return nil, nil, 0, err
	}
	if math.IsNaN(c.Percentile) || c.Percentile < 0 || c.Percentile > 1 {
		return nil, nil, 0, fmt.Errorf("percentile %v is outside [0, 1]", c.Percentile)
	}
	if c.Iters < 0 {
		return nil, nil, 0, fmt.Errorf("negative iteration count %d", c.Iters)
	}
	if c.Rounds < 0 {
		return nil, nil, 0, fmt.Errorf("negative smoothing round count %d", c.Rounds)
	}

	m, err := meshdog.LoadMesh(c.Input)
	if err != nil {
		return nil, nil, 0, err
	}
	if loops := m.BoundaryLoops(); len(loops) > 0 {
		slog.Info("mesh is open", "boundary_loops", len(loops))
	}
	fd := meshdog.Analyze(m, mode)
	fd.LogSummaries()
	return m, fd, mode, nil
}

func detect(c *Config, m *meshdog.Mesh, fd *meshdog.Fields) error {
	d := meshdog.NewDetector()
	d.Iters = c.Iters
	d.Percentile = c.Percentile
	d.Init(m, fd.UniformCurvature)
	fs := d.Detect()

	// a failed export does not invalidate the detection
	if err := fs.SavePLY(c.Output); err != nil {
		errors.Log(fmt.Errorf("failed to save the feature points: %w", err))
	} else {
		slog.Info("saved feature points", "path", c.Output, "count", fs.Len())
	}

	if c.Report != "" {
		errors.Log(meshdog.NewReport(m, fd, d, fs).Save(c.Report))
	}
	return nil
}
