// Package asset decodes geometry files into interleaved mesh geometry.
package asset

import (
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/holy-render/log"
	"github.com/toxichemicals/GO/holy-render/mesh"
)

var logger = log.New("asset")

// LoadGeometry loads the geometry file at name from fsys. The format is
// picked by extension: .obj, .gltf or .glb.
func LoadGeometry(fsys fs.FS, name string) (*mesh.Geometry, error) {
	var (
		geo *mesh.Geometry
		err error
	)
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".obj":
		geo, err = loadOBJ(fsys, name)
	case ".gltf", ".glb":
		geo, err = loadGLTF(fsys, name)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "asset: loading %q", name)
	}

	logger.Infof("loaded %q: %d vertices, %d indices", name, geo.VertexCount(), geo.IndexCount())
	return geo, nil
}
