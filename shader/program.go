// Package shader loads the shader programs named in the shader
// configuration, resolves their attribute and uniform locations, and owns
// the textures listed for each program.
package shader

import (
	"github.com/toxichemicals/GO/holy-render/gpu"
	"github.com/toxichemicals/GO/holy-render/material"
)

// Attribute and uniform names every program is queried for.
const (
	AttrPosition = "a_position"
	AttrNormal   = "a_normal"
	AttrTexCoord = "a_texCoord"

	UniWVP          = "u_WVP"
	UniModelToWorld = "u_modelToWorld"
	UniLightPos     = "u_lightPos"
	UniLightColor   = "u_lightColor"
	UniAmbientLight = "u_ambientLight"
	UniCameraPos    = "u_cameraWorldPos"
	UniTime         = "u_time"
	UniResolution   = "u_resolution"
)

// Locations holds the attribute and uniform locations of a program. A
// location of -1 means the program does not use that input.
type Locations struct {
	Position int32
	Normal   int32
	TexCoord int32

	WVP          int32
	ModelToWorld int32
	LightPos     int32
	LightColor   int32
	AmbientLight int32
	CameraPos    int32
	Time         int32
	Resolution   int32
	Samplers     [material.MaxSamplers]int32
}

// Program is a linked shader program with its resolved locations and its
// texture layers.
type Program struct {
	Name   string
	Handle gpu.Handle
	Loc    Locations

	layers []material.Layer
}

func resolveLocations(dev gpu.Device, program uint32) Locations {
	loc := Locations{
		Position: dev.AttribLocation(program, AttrPosition),
		Normal:   dev.AttribLocation(program, AttrNormal),
		TexCoord: dev.AttribLocation(program, AttrTexCoord),

		WVP:          dev.UniformLocation(program, UniWVP),
		ModelToWorld: dev.UniformLocation(program, UniModelToWorld),
		LightPos:     dev.UniformLocation(program, UniLightPos),
		LightColor:   dev.UniformLocation(program, UniLightColor),
		AmbientLight: dev.UniformLocation(program, UniAmbientLight),
		CameraPos:    dev.UniformLocation(program, UniCameraPos),
		Time:         dev.UniformLocation(program, UniTime),
		Resolution:   dev.UniformLocation(program, UniResolution),
	}
	for i, name := range material.SamplerUniforms {
		loc.Samplers[i] = dev.UniformLocation(program, name)
	}
	return loc
}

// NewProgram compiles a program and resolves its locations.
func NewProgram(res *gpu.Resources, name, vertexSrc, fragmentSrc string) (*Program, error) {
	h, err := res.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	glName, err := res.Name(h)
	if err != nil {
		return nil, err
	}
	return &Program{
		Name:   name,
		Handle: h,
		Loc:    resolveLocations(res.Device(), glName),
	}, nil
}

// AddTexture appends tex as the next layer. Its role follows its position.
func (p *Program) AddTexture(tex *gpu.Texture) {
	p.layers = append(p.layers, material.Layer{
		Texture: tex,
		Role:    material.RoleForIndex(len(p.layers)),
	})
}

// Layers returns the program's texture layers in unit order. The layers are
// shared: meshes composing them must not release them.
func (p *Program) Layers() []material.Layer {
	out := make([]material.Layer, len(p.layers))
	copy(out, p.layers)
	return out
}

// Cleanup releases the program and all of its textures.
func (p *Program) Cleanup(res *gpu.Resources) error {
	var first error
	for _, l := range p.layers {
		if err := l.Texture.Release(res); err != nil && first == nil {
			first = err
		}
	}
	p.layers = nil
	if err := res.Release(p.Handle); err != nil && first == nil {
		first = err
	}
	return first
}
