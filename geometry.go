package meshdog

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

/* Vertex Operations */

// A - B, normalized. Returns the zero vector and false when A == B.
func direction(a, b r3.Vec) (r3.Vec, bool) {
	d := r3.Sub(a, b)
	length := r3.Norm(d)
	if length == 0 {
		return r3.Vec{}, false
	}
	return r3.Scale(1/length, d), true
}

// |A - B|
func distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// clamp restricts x to [lo, hi]. NaN passes through unchanged.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// (B - A) x (C - A)
func triangleCross(a, b, c r3.Vec) r3.Vec {
	return r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
}

func computeTriangleArea(a, b, c r3.Vec) float64 {
	return r3.Norm(triangleCross(a, b, c)) * 0.5
}

// Unit normal of triangle ABC, zero for degenerate triangles.
func computeTriangleNormal(a, b, c r3.Vec) r3.Vec {
	n := triangleCross(a, b, c)
	length := r3.Norm(n)
	if length == 0 {
		return r3.Vec{}
	}
	return r3.Scale(1/length, n)
}

// angleAt returns the angle at vertex p between the directions to a and b.
// The cosine is clamped to [-1, 1] before the inverse cosine.
func angleAt(p, a, b r3.Vec) float64 {
	d0 := r3.Sub(a, p)
	d1 := r3.Sub(b, p)
	cos := r3.Dot(d0, d1) / (r3.Norm(d0) * r3.Norm(d1))
	return math.Acos(clamp(cos, -1, 1))
}
