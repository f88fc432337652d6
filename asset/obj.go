package asset

import (
	"bufio"
	"io/fs"

	"github.com/sheenobu/go-obj/obj"

	"github.com/toxichemicals/GO/holy-render/mesh"
)

func loadOBJ(fsys fs.FS, name string) (*mesh.Geometry, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	o, err := obj.NewReader(bufio.NewReader(f)).Read()
	if err != nil {
		return nil, err
	}

	b := newBuilder()
	skipped := 0
	poly := make([]vertex, 0, 4)
	for _, face := range o.Faces {
		poly = poly[:0]
		for _, p := range face.Points {
			if p == nil || p.Vertex == nil {
				continue
			}
			v := vertex{
				pos:    [3]float32{float32(p.Vertex.X), float32(p.Vertex.Y), float32(p.Vertex.Z)},
				normal: defaultNormal,
				uv:     defaultTexCoord,
			}
			if p.Normal != nil {
				v.normal = [3]float32{float32(p.Normal.X), float32(p.Normal.Y), float32(p.Normal.Z)}
			}
			if p.Texture != nil {
				v.uv = [2]float32{float32(p.Texture.U), float32(p.Texture.V)}
			}
			poly = append(poly, v)
		}
		if b.polygon(poly) == 0 {
			skipped++
		}
	}
	if skipped > 0 {
		logger.Warningf("%s: skipped %d degenerate face(s)", name, skipped)
	}
	return b.geometry()
}
