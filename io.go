package meshdog

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cogentcore.org/core/base/errors"
	"gonum.org/v1/gonum/spatial/r3"
)

// LoadMesh reads a Wavefront OBJ or binary STL file, chosen by extension.
func LoadMesh(path string) (*Mesh, error) {
	var (
		points []r3.Vec
		faces  []Face
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		points, faces, err = ReadOBJ(path)
	case ".stl":
		points, faces, err = ReadBinarySTL(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
	if err != nil {
		return nil, err
	}

	m, err := NewMesh(points, faces)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("meshdog: loaded mesh", "path", path, "vertices", m.NumVertices(), "faces", m.NumFaces())
	return m, nil
}

// ReadOBJ reads the vertices and faces of a Wavefront OBJ file.
// Polygons are split into triangle fans; texture and normal indices are ignored.
func ReadOBJ(path string) ([]r3.Vec, []Face, error) {
	var vertices []r3.Vec
	var faces []Face

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		words := strings.Fields(scanner.Text())
		// if line is empty continue
		if len(words) == 0 {
			continue
		}

		switch words[0] {
		case "v":
			if len(words) < 4 {
				return nil, nil, fmt.Errorf("%s:%d: vertices must be 3D", path, line)
			}
			var xyz [3]float64
			for i := range xyz {
				xyz[i], err = strconv.ParseFloat(words[i+1], 64)
				if err != nil {
					return nil, nil, fmt.Errorf("%s:%d: %w", path, line, err)
				}
			}
			vertices = append(vertices, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})

		case "f":
			var face Face
			for _, word := range words[1:] {
				idx, _, _ := strings.Cut(word, "/")
				value, err := strconv.Atoi(idx)
				if err != nil {
					return nil, nil, fmt.Errorf("%s:%d: %w", path, line, err)
				}
				// negative indices count back from the last vertex
				if value < 0 {
					value = len(vertices) + value + 1
				}
				// Adjusting the index to be 0-based
				face = append(face, value-1)
			}
			if len(face) < 3 {
				return nil, nil, fmt.Errorf("%s:%d: face with %d vertices", path, line, len(face))
			}
			for i := 1; i+1 < len(face); i++ {
				faces = append(faces, Face{face[0], face[i], face[i+1]})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return vertices, faces, nil
}

// ReadBinarySTL reads a binary STL file, merging identical corner positions into shared vertices.
func ReadBinarySTL(path string) ([]r3.Vec, []Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if len(data) < 84 {
		return nil, nil, fmt.Errorf("%s: too short for a binary STL", path)
	}

	buffer := bytes.NewBuffer(data[80:])
	var numTriangles uint32
	if err := binary.Read(buffer, binary.LittleEndian, &numTriangles); err != nil {
		return nil, nil, err
	}
	if want := 84 + 50*int(numTriangles); len(data) < want {
		return nil, nil, fmt.Errorf("%s: %d triangles need %d bytes, file has %d", path, numTriangles, want, len(data))
	}

	var vertices []r3.Vec
	faces := make([]Face, 0, numTriangles)
	vMap := make(map[[3]float32]int)
	for i := 0; i < int(numTriangles); i++ {
		// skip the facet normal
		buffer.Next(12)
		face := make(Face, 3)
		for j := 0; j < 3; j++ {
			var corner [3]float32
			if err := binary.Read(buffer, binary.LittleEndian, &corner); err != nil {
				return nil, nil, err
			}
			idx, exists := vMap[corner]
			if !exists {
				idx = len(vertices)
				vMap[corner] = idx
				vertices = append(vertices, r3.Vec{X: float64(corner[0]), Y: float64(corner[1]), Z: float64(corner[2])})
			}
			face[j] = idx
		}
		// attribute byte count
		buffer.Next(2)
		faces = append(faces, face)
	}

	return vertices, faces, nil
}

// WriteOBJ writes the mesh vertices and triangles as a Wavefront OBJ file.
func WriteOBJ(m *Mesh, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	w := bufio.NewWriter(file)
	// Write the vertices
	for v := 0; v < m.NumVertices(); v++ {
		p := m.Position(v)
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", p.X, p.Y, p.Z); err != nil {
			return err
		}
	}

	// Write the faces
	for f := 0; f < m.NumFaces(); f++ {
		vs := m.FaceVertices(f)
		// One has to be added to every triangle index
		if _, err := fmt.Fprintf(w, "f %d %d %d\n", vs[0]+1, vs[1]+1, vs[2]+1); err != nil {
			return err
		}
	}

	return w.Flush()
}
