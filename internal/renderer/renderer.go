package renderer

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var Debug bool = false
var DepthTestEnabled bool = true // Flag for depth testing
var ClearColorR float32 = 0.02   // Background clear color red
var ClearColorG float32 = 0.02   // Background clear color green
var ClearColorB float32 = 0.03   // Background clear color blue

type Light struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// CubeLevel is one mip level of a prefiltered cubemap: six square faces of
// tightly packed RGB float32 texels, all with the same edge size.
type CubeLevel struct {
	Size  int
	Faces [6][]float32
}

// EnvironmentMap is the read-only view of a prefiltered radiance map that
// refractive and metallic materials sample for reflections. It is owned by
// whoever produced it; materials must never dispose it.
type EnvironmentMap interface {
	Texture() uint32
	Levels() int
	Disposed() bool
}

// Device is the opaque handle to the GPU. All creation and deletion must
// happen on the render thread. Delete calls are safe no-ops for handles that
// were never created or were already deleted.
type Device interface {
	Init(width, height int32, window *glfw.Window) error
	CreateTextureFromImage(img image.Image) (uint32, error)
	CreateCubemap(levels []CubeLevel) (uint32, error)
	DeleteTexture(id uint32)
	CreateRenderTarget(width, height int32) (uint32, error)
	DeleteRenderTarget(id uint32)
	UploadMesh(mesh *Mesh) error
	DeleteMesh(mesh *Mesh)
	Draw(camera *Camera, root *Node, light *Light)
	UpdateViewport(width, height int32)
	Stats() DeviceStats
	Cleanup()
}

// DeviceStats provides debugging and profiling information
type DeviceStats struct {
	TexturesCreated      int
	TexturesDeleted      int
	RenderTargetsCreated int
	RenderTargetsDeleted int
	MeshesUploaded       int
	MeshesDeleted        int
}

// Live returns the number of GPU handles still alive on the device.
func (s DeviceStats) Live() int {
	return (s.TexturesCreated - s.TexturesDeleted) +
		(s.RenderTargetsCreated - s.RenderTargetsDeleted) +
		(s.MeshesUploaded - s.MeshesDeleted)
}
