package gpu

import (
	"fmt"
	"image"

	"github.com/pkg/errors"
)

// Kind identifies the type of GPU object a handle refers to.
type Kind uint8

const (
	KindNone Kind = iota
	KindProgram
	KindVertexArray
	KindBuffer
	KindTexture
)

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "program"
	case KindVertexArray:
		return "vertex-array"
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	}
	return "none"
}

// Handle names a GPU object owned by a Resources arena. The zero Handle is
// never valid.
type Handle struct {
	index      uint32
	generation uint32
	kind       Kind
}

// Kind returns the object type this handle was issued for.
func (h Handle) Kind() Kind { return h.kind }

// IsZero reports whether h was never issued.
func (h Handle) IsZero() bool { return h.generation == 0 }

func (h Handle) String() string {
	return fmt.Sprintf("%s#%d.%d", h.kind, h.index, h.generation)
}

type slot struct {
	generation uint32
	kind       Kind
	name       uint32
	live       bool
}

// Resources is an arena of GPU objects. Every object is created through it
// and released exactly once through Release; handles of released objects
// resolve to ErrStaleHandle and freed slots are reused under a new
// generation.
type Resources struct {
	dev   Device
	slots []slot
	free  []uint32
	live  int
}

// NewResources creates an empty arena on top of dev.
func NewResources(dev Device) *Resources {
	return &Resources{dev: dev}
}

// Device returns the device objects are created on.
func (r *Resources) Device() Device {
	return r.dev
}

// Live returns the number of objects that have not been released.
func (r *Resources) Live() int {
	return r.live
}

func (r *Resources) insert(kind Kind, name uint32) Handle {
	var index uint32
	if n := len(r.free); n > 0 {
		index = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, slot{})
		index = uint32(len(r.slots) - 1)
	}

	s := &r.slots[index]
	s.generation++
	s.kind = kind
	s.name = name
	s.live = true
	r.live++

	return Handle{index: index, generation: s.generation, kind: kind}
}

func (r *Resources) lookup(h Handle) (*slot, error) {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil, errors.Wrap(ErrStaleHandle, h.String())
	}
	s := &r.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil, errors.Wrap(ErrStaleHandle, h.String())
	}
	if s.kind != h.kind {
		return nil, errors.Wrapf(ErrWrongKind, "%s refers to a %s", h, s.kind)
	}
	return s, nil
}

// Name resolves h to the driver object name.
func (r *Resources) Name(h Handle) (uint32, error) {
	s, err := r.lookup(h)
	if err != nil {
		return 0, err
	}
	return s.name, nil
}

// Valid reports whether h still refers to a live object.
func (r *Resources) Valid(h Handle) bool {
	_, err := r.lookup(h)
	return err == nil
}

// NewProgram compiles and links a program.
func (r *Resources) NewProgram(vertexSrc, fragmentSrc string) (Handle, error) {
	name, err := r.dev.CreateProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return Handle{}, err
	}
	return r.insert(KindProgram, name), nil
}

// NewVertexArray allocates a vertex array object.
func (r *Resources) NewVertexArray() Handle {
	return r.insert(KindVertexArray, r.dev.CreateVertexArray())
}

// NewBuffer allocates a buffer object.
func (r *Resources) NewBuffer() Handle {
	return r.insert(KindBuffer, r.dev.CreateBuffer())
}

// NewTexture uploads img as a 2D texture.
func (r *Resources) NewTexture(img *image.RGBA) (Handle, error) {
	if img.Rect.Dx() == 0 || img.Rect.Dy() == 0 {
		return Handle{}, ErrEmptyTexture
	}
	return r.insert(KindTexture, r.dev.CreateTexture(img)), nil
}

// Release deletes the object behind h. Releasing a stale handle returns
// ErrStaleHandle and leaves the device untouched.
func (r *Resources) Release(h Handle) error {
	s, err := r.lookup(h)
	if err != nil {
		return err
	}

	switch s.kind {
	case KindProgram:
		r.dev.DeleteProgram(s.name)
	case KindVertexArray:
		r.dev.DeleteVertexArray(s.name)
	case KindBuffer:
		r.dev.DeleteBuffer(s.name)
	case KindTexture:
		r.dev.DeleteTexture(s.name)
	}

	s.live = false
	s.name = 0
	r.free = append(r.free, h.index)
	r.live--
	return nil
}
