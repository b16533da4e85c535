// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is an orbit camera circling a fixed target, which is what a product
// viewer wants: the model stays centered while the user spins around it.
type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Target     mgl32.Vec3 // Point the camera orbits and looks at
	Distance   float32    // Orbit radius
	Yaw        float32    // Horizontal orbit angle (degrees)
	Pitch      float32    // Vertical orbit angle (degrees)
	Projection mgl32.Mat4 // Projection matrix

	// COLD DATA - Configuration and input handling
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Sensitivity float32    // Mouse sensitivity
	ZoomSpeed   float32    // Scroll zoom speed
	MinDistance float32    // Closest allowed zoom
	MaxDistance float32    // Farthest allowed zoom
	Fov         float32    // Field of view
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	AspectRatio float32    // Screen aspect ratio
}

// NewOrbitCamera creates a camera suited to inspecting a ring-sized object.
func NewOrbitCamera(width, height int32) *Camera {
	camera := Camera{
		Target:      mgl32.Vec3{0, 0, 0},
		Distance:    6,
		Yaw:         45,
		Pitch:       20,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Sensitivity: 0.25,
		ZoomSpeed:   0.4,
		MinDistance: 1.5,
		MaxDistance: 60,
		Fov:         45.0,
		Near:        0.1,
		Far:         1000.0,
		AspectRatio: float32(width) / float32(height),
	}
	camera.UpdateProjection()
	return &camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) SetAspectRatio(width, height int32) {
	c.AspectRatio = float32(width) / float32(height)
	c.UpdateProjection()
}

// Position derives the eye point from the orbit parameters.
func (c *Camera) Position() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(c.Pitch))
	offset := mgl32.Vec3{
		float32(math.Cos(pitch) * math.Sin(yaw)),
		float32(math.Sin(pitch)),
		float32(math.Cos(pitch) * math.Cos(yaw)),
	}.Mul(c.Distance)
	return c.Target.Add(offset)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, c.WorldUp)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

// ProcessMouseMovement orbits the camera around the target.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32) {
	c.Yaw -= xoffset * c.Sensitivity
	c.Pitch += yoffset * c.Sensitivity

	// Keep the camera from flipping over the poles
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// ProcessScroll zooms toward or away from the target.
func (c *Camera) ProcessScroll(yoffset float32) {
	c.Distance -= yoffset * c.ZoomSpeed
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}
