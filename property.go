package meshdog

import "slices"

// property is per-element storage indexed by element index.
type property[T any] struct {
	values []T
}

// At returns the value stored for element i.
func (p *property[T]) At(i int) T { return p.values[i] }

// Set stores x for element i.
func (p *property[T]) Set(i int, x T) { p.values[i] = x }

// Len returns the number of elements.
func (p *property[T]) Len() int { return len(p.values) }

// Values returns a copy of all stored values.
func (p *property[T]) Values() []T { return slices.Clone(p.values) }

// Fill sets every element to x.
func (p *property[T]) Fill(x T) {
	for i := range p.values {
		p.values[i] = x
	}
}

// VertexProperty holds one value per mesh vertex.
type VertexProperty[T any] struct {
	property[T]
}

// NewVertexProperty returns a zero-valued vertex property for m.
func NewVertexProperty[T any](m *Mesh) *VertexProperty[T] {
	return &VertexProperty[T]{property[T]{make([]T, m.NumVertices())}}
}

// EdgeProperty holds one value per undirected mesh edge.
type EdgeProperty[T any] struct {
	property[T]
}

// NewEdgeProperty returns a zero-valued edge property for m.
func NewEdgeProperty[T any](m *Mesh) *EdgeProperty[T] {
	return &EdgeProperty[T]{property[T]{make([]T, m.NumEdges())}}
}

// FaceProperty holds one value per mesh face.
type FaceProperty[T any] struct {
	property[T]
}

// NewFaceProperty returns a zero-valued face property for m.
func NewFaceProperty[T any](m *Mesh) *FaceProperty[T] {
	return &FaceProperty[T]{property[T]{make([]T, m.NumFaces())}}
}
