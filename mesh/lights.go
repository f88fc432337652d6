package mesh

import "github.com/go-gl/mathgl/mgl32"

// Light is the point light a light mesh contributes to shading.
type Light struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// Default light used by meshes that do not reference a registry entry.
var DefaultLight = Light{
	Position: mgl32.Vec3{1, 1, 1},
	Color:    mgl32.Vec3{.9, .7, .8},
}

// Lights is the registry of light meshes. Dependent meshes refer to entries
// by index so the registry may grow without invalidating them.
type Lights struct {
	meshes []*Mesh
}

// Add registers m as a light and returns its index.
func (l *Lights) Add(m *Mesh) int {
	l.meshes = append(l.meshes, m)
	return len(l.meshes) - 1
}

// Light returns the light at index i.
func (l *Lights) Light(i int) (Light, bool) {
	if i < 0 || i >= len(l.meshes) {
		return Light{}, false
	}
	m := l.meshes[i]
	return Light{Position: m.Position(), Color: m.LightColor()}, true
}

// Meshes returns the registered light meshes in index order.
func (l *Lights) Meshes() []*Mesh {
	return l.meshes
}

// Len returns the number of registered lights.
func (l *Lights) Len() int {
	return len(l.meshes)
}
