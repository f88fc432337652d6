package asset

import (
	"github.com/toxichemicals/GO/holy-render/mesh"
)

var (
	defaultNormal   = [3]float32{0, 1, 0}
	defaultTexCoord = [2]float32{0, 0}
)

type vertex struct {
	pos    [3]float32
	normal [3]float32
	uv     [2]float32
}

// builder interleaves vertices and shares identical ones between triangles.
type builder struct {
	vertices []float32
	indices  []uint32
	seen     map[vertex]uint32
}

func newBuilder() *builder {
	return &builder{seen: make(map[vertex]uint32)}
}

func (b *builder) add(v vertex) {
	if idx, ok := b.seen[v]; ok {
		b.indices = append(b.indices, idx)
		return
	}
	idx := uint32(len(b.vertices) / mesh.Stride)
	b.seen[v] = idx
	b.indices = append(b.indices, idx)
	b.vertices = append(b.vertices,
		v.pos[0], v.pos[1], v.pos[2],
		v.normal[0], v.normal[1], v.normal[2],
		v.uv[0], v.uv[1],
	)
}

// polygon fan-triangulates an n-gon around its first vertex. Anything with
// fewer than three vertices is dropped.
func (b *builder) polygon(vs []vertex) int {
	if len(vs) < 3 {
		return 0
	}
	for i := 1; i+1 < len(vs); i++ {
		b.add(vs[0])
		b.add(vs[i])
		b.add(vs[i+1])
	}
	return len(vs) - 2
}

func (b *builder) geometry() (*mesh.Geometry, error) {
	if len(b.indices) == 0 {
		return nil, ErrNoTriangles
	}
	return mesh.NewGeometry(b.vertices, b.indices)
}
