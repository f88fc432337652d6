// Package mesh binds shared geometry to GPU buffers and draws it with a
// shader program, a material and a world transform.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/holy-render/gpu"
	"github.com/toxichemicals/GO/holy-render/material"
	"github.com/toxichemicals/GO/holy-render/shader"
)

// DefaultAmbient is the ambient light term used when none is configured.
var DefaultAmbient = mgl32.Vec3{.1, .1, .1}

// TextureSource loads textures by path.
type TextureSource interface {
	LoadTexture(path string) (*gpu.Texture, error)
}

// LayerSpec names a texture file and the role it plays in a material.
type LayerSpec struct {
	Path string
	Role material.Role
}

// Environment carries the per-frame inputs shared by every mesh.
type Environment struct {
	// Seconds since start.
	Time    float32
	Ambient mgl32.Vec3
	Lights  *Lights
}

// Factory creates meshes. Every mesh it creates loads its own copy of the
// Detail layers.
type Factory struct {
	Res      *gpu.Resources
	Textures TextureSource
	Detail   []LayerSpec

	// Framebuffer size uploaded to u_resolution.
	Width  int
	Height int
}

// Mesh is a drawable instance of a geometry. It owns its buffers and its
// detail layers; the geometry and program are shared.
type Mesh struct {
	res      *gpu.Resources
	program  *shader.Program
	geometry *Geometry

	vao gpu.Handle
	vbo gpu.Handle
	ebo gpu.Handle

	material material.Material

	position     mgl32.Vec3
	scale        mgl32.Vec3
	rotationAxis mgl32.Vec3
	angle        float32

	lightIndex    int
	lightColor    mgl32.Vec3
	hasLightColor bool

	released bool
}

// Create uploads geo into static buffers, wires the position, normal and
// texcoord attributes of prog and loads the factory's detail layers. All
// bindings are reset before returning.
func (f *Factory) Create(prog *shader.Program, geo *Geometry) (*Mesh, error) {
	if prog == nil {
		return nil, ErrNoProgram
	}
	if geo == nil {
		return nil, ErrNoGeometry
	}
	progName, err := f.Res.Name(prog.Handle)
	if err != nil {
		return nil, errors.Wrapf(err, "mesh: program %q", prog.Name)
	}

	own := make([]material.Layer, 0, len(f.Detail))
	for _, spec := range f.Detail {
		tex, err := f.Textures.LoadTexture(spec.Path)
		if err != nil {
			for _, l := range own {
				l.Texture.Release(f.Res)
			}
			return nil, errors.Wrapf(err, "mesh: detail layer %s", spec.Role)
		}
		own = append(own, material.Layer{Texture: tex, Role: spec.Role, Owned: true})
	}

	m := &Mesh{
		res:          f.Res,
		program:      prog,
		geometry:     geo,
		material:     material.Compose(prog.Layers(), own),
		scale:        mgl32.Vec3{1, 1, 1},
		rotationAxis: mgl32.Vec3{0, 1, 0},
		lightIndex:   -1,
	}

	dev := f.Res.Device()
	m.vao = f.Res.NewVertexArray()
	m.vbo = f.Res.NewBuffer()
	m.ebo = f.Res.NewBuffer()
	vaoName, _ := f.Res.Name(m.vao)
	vboName, _ := f.Res.Name(m.vbo)
	eboName, _ := f.Res.Name(m.ebo)

	dev.BindVertexArray(vaoName)

	dev.BindBuffer(gpu.ArrayBuffer, vboName)
	dev.BufferFloat32(gpu.ArrayBuffer, geo.Vertices())

	dev.BindBuffer(gpu.ElementArrayBuffer, eboName)
	dev.BufferUint32(gpu.ElementArrayBuffer, geo.Indices())

	loc := prog.Loc
	if loc.Position >= 0 {
		dev.VertexAttrib(uint32(loc.Position), PositionSize, Stride, PositionOffset)
	}
	if loc.Normal >= 0 {
		dev.VertexAttrib(uint32(loc.Normal), NormalSize, Stride, NormalOffset)
	}
	if loc.TexCoord >= 0 {
		dev.VertexAttrib(uint32(loc.TexCoord), TexCoordSize, Stride, TexCoordOffset)
	}

	dev.UseProgram(progName)
	if loc.Resolution >= 0 {
		dev.Uniform2f(loc.Resolution, float32(f.Width), float32(f.Height))
	}

	// The vertex array goes first so unbinding the element buffer does not
	// detach it from the vertex array.
	dev.BindVertexArray(0)
	dev.BindBuffer(gpu.ArrayBuffer, 0)
	dev.BindBuffer(gpu.ElementArrayBuffer, 0)
	dev.UseProgram(0)

	return m, nil
}

// World returns translate · rotate · scale for the current transform.
func (m *Mesh) World() mgl32.Mat4 {
	translate := mgl32.Translate3D(m.position[0], m.position[1], m.position[2])
	rotate := mgl32.Ident4()
	if m.rotationAxis.Len() > 0 {
		rotate = mgl32.HomogRotate3D(m.angle, m.rotationAxis.Normalize())
	}
	scale := mgl32.Scale3D(m.scale[0], m.scale[1], m.scale[2])
	return translate.Mul4(rotate).Mul4(scale)
}

// CameraWorldPos approximates the eye position by pushing the canonical
// forward direction through inverse(projection · view). It is only good
// enough for view-dependent shading terms.
func CameraWorldPos(view, projection mgl32.Mat4) mgl32.Vec3 {
	v := projection.Mul4(view).Inv().Mul4x1(mgl32.Vec4{0, 0, -1, 0})
	if v.W() == 0 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v.W())
}

func (m *Mesh) light(env Environment) Light {
	if env.Lights != nil && m.lightIndex >= 0 {
		if l, ok := env.Lights.Light(m.lightIndex); ok {
			return l
		}
	}
	if m.hasLightColor {
		return Light{Position: m.position, Color: m.lightColor}
	}
	return DefaultLight
}

// Render draws the mesh. Rendering after Cleanup returns ErrReleased.
func (m *Mesh) Render(view, projection mgl32.Mat4, env Environment) error {
	if m.released {
		return ErrReleased
	}

	vao, err := m.res.Name(m.vao)
	if err != nil {
		return err
	}
	ebo, err := m.res.Name(m.ebo)
	if err != nil {
		return err
	}
	prog, err := m.res.Name(m.program.Handle)
	if err != nil {
		return errors.Wrapf(err, "mesh: program %q", m.program.Name)
	}
	bound := m.material.Bound()
	textures := make([]uint32, len(bound))
	for i, b := range bound {
		if textures[i], err = m.res.Name(b.Layer.Texture.Handle); err != nil {
			return errors.Wrapf(err, "mesh: %s layer on unit %d", b.Layer.Role, b.Unit)
		}
	}

	world := m.World()
	wvp := projection.Mul4(view).Mul4(world)
	camera := CameraWorldPos(view, projection)
	light := m.light(env)
	ambient := env.Ambient

	dev := m.res.Device()
	dev.BindVertexArray(vao)
	dev.BindBuffer(gpu.ElementArrayBuffer, ebo)
	dev.UseProgram(prog)

	loc := m.program.Loc
	for i, b := range bound {
		dev.BindTexture(b.Unit, textures[i])
		if sampler := loc.Samplers[b.Sampler]; sampler >= 0 {
			dev.Uniform1i(sampler, int32(b.Unit))
		}
	}

	if loc.Time >= 0 {
		dev.Uniform1f(loc.Time, env.Time)
	}
	if loc.WVP >= 0 {
		dev.UniformMatrix4(loc.WVP, wvp)
	}
	if loc.ModelToWorld >= 0 {
		dev.UniformMatrix4(loc.ModelToWorld, world)
	}
	if loc.LightPos >= 0 {
		dev.Uniform3f(loc.LightPos, light.Position)
	}
	if loc.LightColor >= 0 {
		dev.Uniform3f(loc.LightColor, light.Color)
	}
	if loc.AmbientLight >= 0 {
		dev.Uniform3f(loc.AmbientLight, ambient)
	}
	if loc.CameraPos >= 0 {
		dev.Uniform3f(loc.CameraPos, camera)
	}

	dev.DrawIndexed(int32(m.geometry.IndexCount()))

	for _, b := range bound {
		dev.BindTexture(b.Unit, 0)
	}
	dev.BindVertexArray(0)
	dev.BindBuffer(gpu.ElementArrayBuffer, 0)
	dev.UseProgram(0)
	return nil
}

// Cleanup releases the vertex array, both buffers and the owned layers. A
// second call returns ErrReleased and releases nothing.
func (m *Mesh) Cleanup() error {
	if m.released {
		return ErrReleased
	}
	m.released = true

	var first error
	for _, h := range []gpu.Handle{m.vao, m.vbo, m.ebo} {
		if err := m.res.Release(h); err != nil && first == nil {
			first = err
		}
	}
	if err := m.material.Release(m.res); err != nil && first == nil {
		first = err
	}
	return first
}

// Released reports whether Cleanup has run.
func (m *Mesh) Released() bool { return m.released }

func (m *Mesh) Program() *shader.Program { return m.program }
func (m *Mesh) Geometry() *Geometry { return m.geometry }
func (m *Mesh) Material() material.Material { return m.material }

func (m *Mesh) Position() mgl32.Vec3 { return m.position }
func (m *Mesh) SetPosition(p mgl32.Vec3) { m.position = p }
func (m *Mesh) Scale() mgl32.Vec3 { return m.scale }
func (m *Mesh) SetScale(s mgl32.Vec3) { m.scale = s }
func (m *Mesh) Rotation() (float32, mgl32.Vec3) { return m.angle, m.rotationAxis }

// SetRotation rotates the mesh by angle radians about axis.
func (m *Mesh) SetRotation(angle float32, axis mgl32.Vec3) {
	m.angle = angle
	m.rotationAxis = axis
}

// LightColor returns the color this mesh emits when used as a light.
func (m *Mesh) LightColor() mgl32.Vec3 { return m.lightColor }

// SetLightColor marks the mesh as a light of the given color.
func (m *Mesh) SetLightColor(c mgl32.Vec3) {
	m.lightColor = c
	m.hasLightColor = true
}

// LightIndex returns the registry index this mesh is lit by, or -1.
func (m *Mesh) LightIndex() int { return m.lightIndex }

// SetLight makes the mesh read its light from registry entry index.
func (m *Mesh) SetLight(index int) { m.lightIndex = index }
