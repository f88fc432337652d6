// Package gputest provides a recording gpu.Device for tests that run
// without a graphics context.
package gputest

import (
	"errors"
	"image"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-render/gpu"
)

// CompileFailMarker makes CreateProgram fail when present in either source.
const CompileFailMarker = "#error"

// Draw captures the binding state at the time of a DrawIndexed call.
type Draw struct {
	Program      uint32
	VertexArray  uint32
	ElementArray uint32
	Count        int32
	Textures     map[uint32]uint32
	Uniforms     map[string]interface{}
}

// Attrib records a VertexAttrib call.
type Attrib struct {
	VertexArray uint32
	Location    uint32
	Size        int32
	Stride      int32
	Offset      int32
}

// Device is a fake gpu.Device. Object names are never reused so that tests
// can tell a recycled object apart from a fresh one.
type Device struct {
	// Uniform/attribute names reported as missing (location -1).
	Missing map[string]bool

	nextName uint32
	live     map[uint32]gpu.Kind
	deleted  map[uint32]int

	programs     map[uint32]map[string]int32
	locNames     map[uint32]map[int32]string
	program      uint32
	vertexArray  uint32
	arrayBuffer  uint32
	elementArray uint32
	textures     map[uint32]uint32

	Buffers   map[uint32][]float32
	Indices   map[uint32][]uint32
	Attribs   []Attrib
	Uniforms  map[uint32]map[string]interface{}
	Draws     []Draw
	Clears    int
	Viewports [][2]int

	ClearColor   [4]float32
	DepthTest    bool
	AlphaBlend   bool
	DoubleDelete int
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty fake device.
func New() *Device {
	return &Device{
		Missing:  make(map[string]bool),
		live:     make(map[uint32]gpu.Kind),
		deleted:  make(map[uint32]int),
		programs: make(map[uint32]map[string]int32),
		locNames: make(map[uint32]map[int32]string),
		textures: make(map[uint32]uint32),
		Buffers:  make(map[uint32][]float32),
		Indices:  make(map[uint32][]uint32),
		Uniforms: make(map[uint32]map[string]interface{}),
	}
}

func (d *Device) alloc(kind gpu.Kind) uint32 {
	d.nextName++
	d.live[d.nextName] = kind
	return d.nextName
}

func (d *Device) free(name uint32) {
	if _, ok := d.live[name]; !ok {
		d.DoubleDelete++
		return
	}
	delete(d.live, name)
	d.deleted[name]++
}

// Live returns the number of objects of any kind that were not deleted.
func (d *Device) Live() int {
	return len(d.live)
}

// LiveOf returns the number of live objects of the given kind.
func (d *Device) LiveOf(kind gpu.Kind) int {
	n := 0
	for _, k := range d.live {
		if k == kind {
			n++
		}
	}
	return n
}

// IsLive reports whether name was created and not deleted.
func (d *Device) IsLive(name uint32) bool {
	_, ok := d.live[name]
	return ok
}

// Bound reports the currently bound program, vertex array and element
// buffer, and the number of texture units with a texture bound.
func (d *Device) Bound() (program, vertexArray, elementArray uint32, textureUnits int) {
	for _, tex := range d.textures {
		if tex != 0 {
			textureUnits++
		}
	}
	return d.program, d.vertexArray, d.elementArray, textureUnits
}

func (d *Device) CreateProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	if strings.Contains(vertexSrc, CompileFailMarker) {
		return 0, errors.New("failed to compile vertex shader:\n0:1(1): error: #error")
	}
	if strings.Contains(fragmentSrc, CompileFailMarker) {
		return 0, errors.New("failed to compile fragment shader:\n0:1(1): error: #error")
	}
	name := d.alloc(gpu.KindProgram)
	d.programs[name] = make(map[string]int32)
	d.locNames[name] = make(map[int32]string)
	d.Uniforms[name] = make(map[string]interface{})
	return name, nil
}

func (d *Device) DeleteProgram(program uint32) { d.free(program) }
func (d *Device) UseProgram(program uint32) { d.program = program }

func (d *Device) location(program uint32, name string) int32 {
	locs, ok := d.programs[program]
	if !ok || d.Missing[name] {
		return -1
	}
	if loc, ok := locs[name]; ok {
		return loc
	}
	loc := int32(len(locs))
	locs[name] = loc
	d.locNames[program][loc] = name
	return loc
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return d.location(program, name)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return d.location(program, name)
}

func (d *Device) CreateVertexArray() uint32 { return d.alloc(gpu.KindVertexArray) }
func (d *Device) DeleteVertexArray(vao uint32) { d.free(vao) }
func (d *Device) BindVertexArray(vao uint32) { d.vertexArray = vao }
func (d *Device) CreateBuffer() uint32 { return d.alloc(gpu.KindBuffer) }
func (d *Device) DeleteBuffer(buf uint32) { d.free(buf) }
func (d *Device) DeleteTexture(tex uint32) { d.free(tex) }
func (d *Device) SetClearColor(r, g, b, a float32) { d.ClearColor = [4]float32{r, g, b, a} }
func (d *Device) EnableDepthTest() { d.DepthTest = true }
func (d *Device) EnableAlphaBlending() { d.AlphaBlend = true }
func (d *Device) Clear() { d.Clears++ }

func (d *Device) BindBuffer(target gpu.BufferTarget, buf uint32) {
	if target == gpu.ElementArrayBuffer {
		d.elementArray = buf
		return
	}
	d.arrayBuffer = buf
}

func (d *Device) BufferFloat32(target gpu.BufferTarget, data []float32) {
	d.Buffers[d.arrayBuffer] = append([]float32(nil), data...)
}

func (d *Device) BufferUint32(target gpu.BufferTarget, data []uint32) {
	d.Indices[d.elementArray] = append([]uint32(nil), data...)
}

func (d *Device) VertexAttrib(location uint32, size, strideFloats, offsetFloats int32) {
	d.Attribs = append(d.Attribs, Attrib{
		VertexArray: d.vertexArray,
		Location:    location,
		Size:        size,
		Stride:      strideFloats,
		Offset:      offsetFloats,
	})
}

func (d *Device) CreateTexture(img *image.RGBA) uint32 {
	return d.alloc(gpu.KindTexture)
}

func (d *Device) BindTexture(unit uint32, tex uint32) {
	d.textures[unit] = tex
}

func (d *Device) setUniform(location int32, v interface{}) {
	if location < 0 {
		return
	}
	names, ok := d.locNames[d.program]
	if !ok {
		return
	}
	d.Uniforms[d.program][names[location]] = v
}

func (d *Device) Uniform1i(location int32, v int32) { d.setUniform(location, v) }
func (d *Device) Uniform1f(location int32, v float32) { d.setUniform(location, v) }
func (d *Device) Uniform2f(location int32, x, y float32) { d.setUniform(location, mgl32.Vec2{x, y}) }
func (d *Device) Uniform3f(location int32, v mgl32.Vec3) { d.setUniform(location, v) }
func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	d.setUniform(location, m)
}

func (d *Device) Viewport(width, height int) {
	d.Viewports = append(d.Viewports, [2]int{width, height})
}

func (d *Device) DrawIndexed(count int32) {
	draw := Draw{
		Program:      d.program,
		VertexArray:  d.vertexArray,
		ElementArray: d.elementArray,
		Count:        count,
		Textures:     make(map[uint32]uint32),
		Uniforms:     make(map[string]interface{}),
	}
	for unit, tex := range d.textures {
		if tex != 0 {
			draw.Textures[unit] = tex
		}
	}
	for name, v := range d.Uniforms[d.program] {
		draw.Uniforms[name] = v
	}
	d.Draws = append(d.Draws, draw)
}
