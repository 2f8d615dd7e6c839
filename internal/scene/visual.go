package scene

import (
	"sync"

	"github.com/arcline-robotics/raysim/internal/geom"
)

// Visual is a box-shaped scene object. Its retro value models how strongly
// the surface reflects a range sensor's emission back to the receiver.
type Visual struct {
	mu    sync.Mutex
	name  string
	pose  geom.Pose
	size  geom.Vec
	retro float64
	color geom.Color
}

// Name returns the visual's name.
func (v *Visual) Name() string { return v.name }

// SetWorldPose places the visual in the world frame.
func (v *Visual) SetWorldPose(p geom.Pose) {
	v.mu.Lock()
	v.pose = p
	v.mu.Unlock()
}

// WorldPose returns the visual's world pose.
func (v *Visual) WorldPose() geom.Pose {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pose
}

// SetSize sets the box extents in metres.
func (v *Visual) SetSize(s geom.Vec) {
	v.mu.Lock()
	v.size = s
	v.mu.Unlock()
}

// Size returns the box extents.
func (v *Visual) Size() geom.Vec {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

// SetRetro sets the surface retro-reflectivity intensity.
func (v *Visual) SetRetro(r float64) {
	v.mu.Lock()
	v.retro = r
	v.mu.Unlock()
}

// Retro returns the surface retro-reflectivity intensity.
func (v *Visual) Retro() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.retro
}

// SetColor sets the visual's diffuse color.
func (v *Visual) SetColor(c geom.Color) {
	v.mu.Lock()
	v.color = c
	v.mu.Unlock()
}

// Color returns the visual's diffuse color.
func (v *Visual) Color() geom.Color {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.color
}

// Box returns the visual's oriented bounding box in the world frame.
func (v *Visual) Box() geom.Box {
	v.mu.Lock()
	defer v.mu.Unlock()
	return geom.Box{Pose: v.pose, Size: v.size}
}
