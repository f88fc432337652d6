package cmd

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/toxichemicals/GO/holy-render/asset"
	"github.com/toxichemicals/GO/holy-render/config"
	"github.com/toxichemicals/GO/holy-render/shader"
)

var errCheckFailed = errors.New("resource check failed")

// Check validates the shader configuration, the shader sources, the textures
// and the geometry without opening a window.
func Check(ctx *cli.Context) error {
	cfg, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(ctx, cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	var buf bytes.Buffer
	ok, err := checkResources(&buf, os.DirFS(cfg.Resources.Root), cfg)
	if err != nil {
		return err
	}
	logger.Noticef("resources under %q\n%s", cfg.Resources.Root, buf.String())

	if !ok {
		return errCheckFailed
	}
	return nil
}

// checkResources writes a table describing every configured shader and
// texture to w. It reports false if anything is missing or unreadable.
// Configuration and geometry errors are returned directly.
func checkResources(w io.Writer, fsys fs.FS, cfg config.Config) (bool, error) {
	rc := cfg.Resources
	f, err := fsys.Open(rc.ShaderConfig)
	if err != nil {
		return false, errors.Wrap(err, "shader config")
	}
	entries, err := shader.ParseConfig(f)
	f.Close()
	if err != nil {
		return false, err
	}

	geo, err := asset.LoadGeometry(fsys, rc.Geometry)
	if err != nil {
		return false, err
	}

	dirs := shader.Dirs{Shaders: rc.Shaders, Textures: rc.Textures}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Shader", "Sources", "Textures", "Status"})

	allOK := true
	for _, e := range entries {
		var problems []string
		vert, frag := dirs.SourcePaths(e.Name)
		for _, p := range []string{vert, frag} {
			if _, err := fs.Stat(fsys, p); err != nil {
				problems = append(problems, "missing "+p)
			}
		}

		textures := make([]string, 0, len(e.Textures))
		for _, file := range e.Textures {
			desc, err := describeTexture(fsys, dirs.TexturePath(file))
			if err != nil {
				problems = append(problems, err.Error())
				desc = file + " (?)"
			}
			textures = append(textures, desc)
		}

		status := "ok"
		if len(problems) > 0 {
			status = strings.Join(problems, "; ")
			allOK = false
		}
		table.Append([]string{
			e.Name,
			fmt.Sprintf("%s, %s", vert, frag),
			strings.Join(textures, ", "),
			status,
		})
	}
	if len(rc.Detail) > 0 {
		var (
			textures []string
			problems []string
		)
		for _, l := range rc.Detail {
			desc, err := describeTexture(fsys, dirs.TexturePath(l.Path))
			if err != nil {
				problems = append(problems, err.Error())
				desc = l.Path + " (?)"
			}
			textures = append(textures, l.Role+": "+desc)
		}
		status := "ok"
		if len(problems) > 0 {
			status = strings.Join(problems, "; ")
			allOK = false
		}
		table.Append([]string{"(per mesh)", "", strings.Join(textures, ", "), status})
	}
	table.SetFooter([]string{"", "", rc.Geometry, fmt.Sprintf("%d vertices, %d indices", geo.VertexCount(), geo.IndexCount())})
	table.Render()

	return allOK, nil
}

func describeTexture(fsys fs.FS, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", errors.Errorf("missing %s", path)
	}
	defer f.Close()

	ic, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", errors.Errorf("undecodable %s: %v", path, err)
	}
	return fmt.Sprintf("%s (%s %dx%d)", path, format, ic.Width, ic.Height), nil
}
