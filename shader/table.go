package shader

import (
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/holy-render/gpu"
	"github.com/toxichemicals/GO/holy-render/log"
)

var logger = log.New("shader")

// Dirs locates shader sources and textures inside the resource file system.
type Dirs struct {
	Shaders  string
	Textures string
}

// SourcePaths returns the vertex and fragment source paths for a program.
func (d Dirs) SourcePaths(name string) (vert, frag string) {
	return path.Join(d.Shaders, name+".vert"), path.Join(d.Shaders, name+".frag")
}

// TexturePath returns the path of a configured texture file.
func (d Dirs) TexturePath(file string) string {
	return path.Join(d.Textures, file)
}

// Table owns every program built from the shader configuration.
type Table struct {
	res      *gpu.Resources
	programs map[string]*Program
	order    []string
}

// Build compiles each configured program and loads its textures in list
// order. On failure everything built so far is released and the error is
// returned; callers treat it as fatal.
func Build(res *gpu.Resources, fsys fs.FS, dirs Dirs, entries []Entry) (*Table, error) {
	t := &Table{
		res:      res,
		programs: make(map[string]*Program, len(entries)),
	}
	loader := gpu.TextureLoader{Res: res, FS: fsys}

	for _, e := range entries {
		if err := t.add(fsys, loader, dirs, e); err != nil {
			t.Cleanup()
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(fsys fs.FS, loader gpu.TextureLoader, dirs Dirs, e Entry) error {
	if _, exists := t.programs[e.Name]; exists {
		return errors.Wrap(ErrDuplicateShader, e.Name)
	}

	vertPath, fragPath := dirs.SourcePaths(e.Name)
	vertSrc, err := fs.ReadFile(fsys, vertPath)
	if err != nil {
		return errors.Wrapf(err, "shader %q", e.Name)
	}
	fragSrc, err := fs.ReadFile(fsys, fragPath)
	if err != nil {
		return errors.Wrapf(err, "shader %q", e.Name)
	}

	p, err := NewProgram(t.res, e.Name, string(vertSrc), string(fragSrc))
	if err != nil {
		return errors.Wrapf(ErrCompile, "%s: %v", e.Name, err)
	}
	t.programs[e.Name] = p
	t.order = append(t.order, e.Name)

	for _, file := range e.Textures {
		tex, err := loader.LoadTexture(dirs.TexturePath(file))
		if err != nil {
			return errors.Wrapf(err, "shader %q", e.Name)
		}
		p.AddTexture(tex)
	}

	logger.Infof("built shader %q with %d texture(s)", e.Name, len(e.Textures))
	return nil
}

// Lookup returns the program registered under name.
func (t *Table) Lookup(name string) (*Program, bool) {
	p, ok := t.programs[name]
	return p, ok
}

// MustLookup returns the program registered under name and panics if there
// is none: asking for an unconfigured shader is a configuration error.
func (t *Table) MustLookup(name string) *Program {
	p, ok := t.programs[name]
	if !ok {
		panic(fmt.Sprintf("shader: %q is not configured (have %v)", name, t.Names()))
	}
	return p
}

// Names returns the configured program names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.programs))
	for name := range t.programs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of programs in the table.
func (t *Table) Len() int {
	return len(t.programs)
}

// Cleanup releases every program and texture once, in build order. Later
// calls do nothing.
func (t *Table) Cleanup() error {
	var first error
	for _, name := range t.order {
		if err := t.programs[name].Cleanup(t.res); err != nil {
			logger.Warningf("releasing shader %q: %v", name, err)
			if first == nil {
				first = err
			}
		}
	}
	t.order = nil
	t.programs = make(map[string]*Program)
	return first
}
