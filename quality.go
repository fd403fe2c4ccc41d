package meshdog

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// QualityMode selects the triangle shape measure.
type QualityMode int

const (
	// QualityLiteral is circumradius / shortest edge.
	QualityLiteral QualityMode = iota

	// QualityCorrected is circumradius² / shortest edge².
	QualityCorrected
)

// String returns the flag spelling of the mode.
func (q QualityMode) String() string {
	switch q {
	case QualityLiteral:
		return "literal"
	case QualityCorrected:
		return "corrected"
	}
	return fmt.Sprintf("QualityMode(%d)", int(q))
}

// ParseQualityMode parses "literal" or "corrected".
func ParseQualityMode(s string) (QualityMode, error) {
	switch s {
	case "", "literal":
		return QualityLiteral, nil
	case "corrected":
		return QualityCorrected, nil
	}
	return 0, fmt.Errorf("unknown quality mode %q", s)
}

const (
	// DegenerateQuality is assigned to triangles with (near) zero area.
	DegenerateQuality = math.MaxFloat32

	// degenerateFloor is the smallest normal float32.
	degenerateFloor = 0x1p-126

	// degenerateEpsilon is float32 machine epsilon, relative to the squared longest edge.
	degenerateEpsilon = 0x1p-23

	// QualityDisplayMin and QualityDisplayMax bound the color ramp of viewers.
	QualityDisplayMin = 0.6
	QualityDisplayMax = 2.0
)

// TriangleQuality computes the shape measure of every face. Lower is better;
// equilateral triangles get the minimum.
func TriangleQuality(m *Mesh, mode QualityMode) *FaceProperty[float64] {
	shape := NewFaceProperty[float64](m)
	for f := 0; f < m.NumFaces(); f++ {
		p := m.FacePositions(f)
		shape.Set(f, triangleShape(p[0], p[1], p[2], mode))
	}
	return shape
}

func triangleShape(p0, p1, p2 r3.Vec, mode QualityMode) float64 {
	a := distance(p1, p0)
	b := distance(p2, p0)
	c := distance(p1, p2)
	minLength := math.Min(a, math.Min(b, c))
	maxLength := math.Max(a, math.Max(b, c))

	// twice the triangle area
	denom := r3.Norm(triangleCross(p0, p1, p2))
	if denom < degenerateFloor || denom <= degenerateEpsilon*maxLength*maxLength {
		return DegenerateQuality
	}

	circumRadius := (a * b * c) / (2 * denom)
	if mode == QualityCorrected {
		return (circumRadius * circumRadius) / (minLength * minLength)
	}
	return circumRadius / minLength
}
