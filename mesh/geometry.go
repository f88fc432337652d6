package mesh

import (
	"github.com/pkg/errors"
)

// Interleaved vertex layout, in floats.
const (
	PositionSize   = 3
	NormalSize     = 3
	TexCoordSize   = 2
	PositionOffset = 0
	NormalOffset   = PositionOffset + PositionSize
	TexCoordOffset = NormalOffset + NormalSize
	Stride         = TexCoordOffset + TexCoordSize
)

// Geometry is an immutable interleaved vertex stream and index stream shared
// by every mesh created from it.
type Geometry struct {
	vertices []float32
	indices  []uint32
}

// NewGeometry validates and wraps vertex and index data. The slices are
// copied so the caller cannot mutate the geometry afterwards.
func NewGeometry(vertices []float32, indices []uint32) (*Geometry, error) {
	if len(vertices)%Stride != 0 {
		return nil, errors.Wrapf(ErrBadStride, "%d floats is not a multiple of %d", len(vertices), Stride)
	}
	count := uint32(len(vertices) / Stride)
	for i, idx := range indices {
		if idx >= count {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d at position %d, vertex count %d", idx, i, count)
		}
	}

	return &Geometry{
		vertices: append([]float32(nil), vertices...),
		indices:  append([]uint32(nil), indices...),
	}, nil
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.vertices) / Stride }

// IndexCount returns the number of indices.
func (g *Geometry) IndexCount() int { return len(g.indices) }

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i int) [3]float32 {
	o := i * Stride
	return [3]float32{g.vertices[o], g.vertices[o+1], g.vertices[o+2]}
}

// Vertices returns the interleaved stream. It must not be modified.
func (g *Geometry) Vertices() []float32 { return g.vertices }

// Indices returns the index stream. It must not be modified.
func (g *Geometry) Indices() []uint32 { return g.indices }
