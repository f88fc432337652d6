package asset

import (
	"io/fs"
	"path"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/toxichemicals/GO/holy-render/mesh"
)

// loadGLTF merges every triangle primitive of every mesh in the document into
// one geometry. Node transforms are not applied.
func loadGLTF(fsys fs.FS, name string) (*mesh.Geometry, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// External buffers resolve relative to the document.
	dir, err := fs.Sub(fsys, path.Dir(name))
	if err != nil {
		return nil, err
	}
	doc := new(gltf.Document)
	if err = gltf.NewDecoderFS(f, dir).Decode(doc); err != nil {
		return nil, err
	}

	b := newBuilder()
	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				logger.Warningf("%s: mesh %d primitive %d: skipping non-triangle mode %v", name, mi, pi, prim.Mode)
				continue
			}
			if err = addPrimitive(b, doc, prim); err != nil {
				return nil, errors.Wrapf(err, "mesh %d primitive %d", mi, pi)
			}
		}
	}
	return b.geometry()
}

func addPrimitive(b *builder, doc *gltf.Document, prim *gltf.Primitive) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return ErrNoPositions
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return errors.Wrap(err, "reading positions")
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return errors.Wrap(err, "reading normals")
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return errors.Wrap(err, "reading texture coordinates")
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return errors.Wrap(err, "reading indices")
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	at := func(i uint32) (vertex, error) {
		if int(i) >= len(positions) {
			return vertex{}, errors.Wrapf(mesh.ErrIndexOutOfRange, "index %d, %d positions", i, len(positions))
		}
		v := vertex{pos: positions[i], normal: defaultNormal, uv: defaultTexCoord}
		if int(i) < len(normals) {
			v.normal = normals[i]
		}
		if int(i) < len(uvs) {
			v.uv = uvs[i]
		}
		return v, nil
	}

	tri := make([]vertex, 3)
	for t := 0; t+2 < len(indices); t += 3 {
		for k := 0; k < 3; k++ {
			if tri[k], err = at(indices[t+k]); err != nil {
				return err
			}
		}
		b.polygon(tri)
	}
	return nil
}
