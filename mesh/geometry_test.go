package mesh

import (
	"errors"
	"testing"
)

func quad() ([]float32, []uint32) {
	return []float32{
			-1, -1, 0, 0, 0, 1, 0, 0,
			1, -1, 0, 0, 0, 1, 1, 0,
			1, 1, 0, 0, 0, 1, 1, 1,
			-1, 1, 0, 0, 0, 1, 0, 1,
		}, []uint32{
			0, 1, 2,
			2, 3, 0,
		}
}

func TestNewGeometry(t *testing.T) {
	vertices, indices := quad()
	geo, err := NewGeometry(vertices, indices)
	if err != nil {
		t.Fatal(err)
	}
	if geo.VertexCount() != 4 || geo.IndexCount() != 6 {
		t.Fatalf("expected 4 vertices and 6 indices; got %d and %d", geo.VertexCount(), geo.IndexCount())
	}
	if v := geo.Vertex(2); v != [3]float32{1, 1, 0} {
		t.Fatalf("unexpected position for vertex 2: %v", v)
	}

	// The geometry keeps its own copy.
	vertices[0] = 42
	indices[0] = 3
	if geo.Vertices()[0] != -1 || geo.Indices()[0] != 0 {
		t.Fatal("expected geometry to be unaffected by caller mutation")
	}
}

func TestNewGeometryErrors(t *testing.T) {
	vertices, _ := quad()
	specs := []struct {
		vertices []float32
		indices  []uint32
		expErr   error
	}{
		{vertices[:7], nil, ErrBadStride},
		{vertices, []uint32{0, 1, 4}, ErrIndexOutOfRange},
		{nil, []uint32{0}, ErrIndexOutOfRange},
	}

	for index, s := range specs {
		_, err := NewGeometry(s.vertices, s.indices)
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.expErr, err)
		}
	}
}

func TestLayoutConstants(t *testing.T) {
	if Stride != 8 || PositionOffset != 0 || NormalOffset != 3 || TexCoordOffset != 6 {
		t.Fatalf("unexpected layout: stride %d offsets %d/%d/%d", Stride, PositionOffset, NormalOffset, TexCoordOffset)
	}
}
