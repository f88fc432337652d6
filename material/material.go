// Package material describes how textures are layered on a mesh surface.
package material

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/holy-render/gpu"
)

// Role is the blend role of a layer. Each role feeds one sampler slot.
type Role uint8

const (
	Base Role = iota
	Detail
	Mask

	// MaxLayers is the number of roles, one sampler slot each.
	MaxLayers = 3

	// MaxShared is the number of shader-level textures a material binds.
	MaxShared = 4

	// MaxSamplers is the number of sampler uniforms a program is queried for.
	MaxSamplers = MaxLayers + MaxShared
)

var roleNames = [MaxLayers]string{"base", "detail", "mask"}

// SamplerUniforms lists sampler uniforms by slot: the role samplers first,
// then one per shared texture in list order.
var SamplerUniforms = [MaxSamplers]string{
	"u_sampler1", "u_sampler2", "u_sampler3",
	"u_texture0", "u_texture1", "u_texture2", "u_texture3",
}

// SharedSlot returns the sampler slot of the i-th shared texture.
func SharedSlot(i int) int { return MaxLayers + i }

var ErrUnknownRole = errors.New("material: unknown layer role")

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("role(%d)", r)
}

// ParseRole converts a role name (base, detail, mask) to a Role.
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if strings.EqualFold(n, name) {
			return Role(i), nil
		}
	}
	return 0, errors.Wrap(ErrUnknownRole, name)
}

// RoleForIndex assigns roles by list position: base, detail, mask, then
// wrapping around.
func RoleForIndex(i int) Role {
	return Role(i % MaxLayers)
}

// Layer is one texture in a material. Owned layers are released with the
// material; shared layers belong to someone else.
type Layer struct {
	Texture *gpu.Texture
	Role    Role
	Owned   bool
}

// Material is the texture set of one mesh: the shader's shared layers, each on
// its own unit, followed by the mesh's own layers, at most one per role.
type Material struct {
	Layers []Layer
	shared int
}

// Binding places a layer on a texture unit, read through SamplerUniforms[Sampler].
type Binding struct {
	Unit    uint32
	Sampler int
	Layer   Layer
}

// Compose builds a material from shared layers followed by own layers. An
// own layer whose role is already taken by an earlier own layer replaces it
// in place; shared layers are never replaced.
func Compose(shared, own []Layer) Material {
	m := Material{
		Layers: append(make([]Layer, 0, len(shared)+len(own)), shared...),
		shared: len(shared),
	}
	for _, l := range own {
		m.put(l)
	}
	return m
}

func (m *Material) put(l Layer) {
	for i := m.shared; i < len(m.Layers); i++ {
		if m.Layers[i].Role == l.Role {
			m.Layers[i] = l
			return
		}
	}
	m.Layers = append(m.Layers, l)
}

// Shared returns the shader-level layers.
func (m Material) Shared() []Layer { return m.Layers[:m.shared] }

// Own returns the mesh's own layers.
func (m Material) Own() []Layer { return m.Layers[m.shared:] }

// Bound assigns texture units in list order: up to MaxShared shared layers,
// then the own layers. Layers past those limits get no unit.
func (m Material) Bound() []Binding {
	out := make([]Binding, 0, MaxSamplers)
	for i, l := range m.Shared() {
		if i == MaxShared {
			break
		}
		out = append(out, Binding{Unit: uint32(len(out)), Sampler: SharedSlot(i), Layer: l})
	}
	for _, l := range m.Own() {
		if int(l.Role) >= MaxLayers {
			continue
		}
		out = append(out, Binding{Unit: uint32(len(out)), Sampler: int(l.Role), Layer: l})
	}
	return out
}

// Release frees every owned layer and drops all layers from the material.
// The first release error is returned after attempting all of them.
func (m *Material) Release(res *gpu.Resources) error {
	var first error
	for _, l := range m.Layers {
		if !l.Owned || l.Texture == nil {
			continue
		}
		if err := l.Texture.Release(res); err != nil && first == nil {
			first = err
		}
	}
	m.Layers = nil
	m.shared = 0
	return first
}
