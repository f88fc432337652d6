// Package gpu contains the graphics device abstraction used by the renderer,
// the generation-checked arena that owns every GPU object and the texture
// loader.
package gpu

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// BufferTarget selects the binding point of a buffer object.
type BufferTarget uint8

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// Device is the subset of the graphics API used by the renderer. All names
// are raw driver object names; ownership is tracked by Resources. A zero
// name passed to a Bind/Use call unbinds the target.
type Device interface {
	// Programs.
	CreateProgram(vertexSrc, fragmentSrc string) (uint32, error)
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	// Vertex arrays and buffers.
	CreateVertexArray() uint32
	DeleteVertexArray(vao uint32)
	BindVertexArray(vao uint32)
	CreateBuffer() uint32
	DeleteBuffer(buf uint32)
	BindBuffer(target BufferTarget, buf uint32)
	BufferFloat32(target BufferTarget, data []float32)
	BufferUint32(target BufferTarget, data []uint32)
	VertexAttrib(location uint32, size, strideFloats, offsetFloats int32)

	// Textures.
	CreateTexture(img *image.RGBA) uint32
	DeleteTexture(tex uint32)
	BindTexture(unit uint32, tex uint32)

	// Uniforms. Callers skip negative locations.
	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, v mgl32.Vec3)
	UniformMatrix4(location int32, m mgl32.Mat4)

	// Draw state.
	SetClearColor(r, g, b, a float32)
	EnableDepthTest()
	EnableAlphaBlending()
	Viewport(width, height int)
	Clear()
	DrawIndexed(count int32)
}
