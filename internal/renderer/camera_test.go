package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewOrbitCamera(t *testing.T) {
	cam := NewOrbitCamera(800, 600)

	if cam == nil {
		t.Fatal("NewOrbitCamera returned nil")
	}

	if cam.Distance <= 0 {
		t.Error("Orbit distance should be positive")
	}

	if cam.Sensitivity <= 0 {
		t.Error("Camera sensitivity should be positive")
	}

	if cam.Position() == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera eye should not sit on the target")
	}
}

func TestCameraPositionOnOrbit(t *testing.T) {
	cam := NewOrbitCamera(800, 600)
	cam.Target = mgl32.Vec3{0, 0, 0}
	cam.Distance = 5

	pos := cam.Position()
	if math.Abs(float64(pos.Len())-5) > 1e-4 {
		t.Errorf("Eye should sit at orbit radius 5, got %v", pos.Len())
	}

	cam.Yaw += 180
	opposite := cam.Position()
	if math.Abs(float64(opposite.Len())-5) > 1e-4 {
		t.Errorf("Eye should stay on the orbit after yaw, got %v", opposite.Len())
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewOrbitCamera(800, 600)

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewOrbitCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraPitchClamped(t *testing.T) {
	cam := NewOrbitCamera(800, 600)

	cam.ProcessMouseMovement(0, 100000)
	if cam.Pitch > 89.0 {
		t.Errorf("Pitch should clamp at 89, got %v", cam.Pitch)
	}

	cam.ProcessMouseMovement(0, -200000)
	if cam.Pitch < -89.0 {
		t.Errorf("Pitch should clamp at -89, got %v", cam.Pitch)
	}
}

func TestCameraZoomClamped(t *testing.T) {
	cam := NewOrbitCamera(800, 600)

	cam.ProcessScroll(100000)
	if cam.Distance < cam.MinDistance {
		t.Errorf("Zoom should clamp at MinDistance, got %v", cam.Distance)
	}

	cam.ProcessScroll(-200000)
	if cam.Distance > cam.MaxDistance {
		t.Errorf("Zoom should clamp at MaxDistance, got %v", cam.Distance)
	}
}

func TestCameraSetAspectRatio(t *testing.T) {
	cam := NewOrbitCamera(800, 600)
	before := cam.Projection

	cam.SetAspectRatio(1920, 1080)

	if cam.AspectRatio != float32(1920)/float32(1080) {
		t.Errorf("Expected aspect 16:9, got %v", cam.AspectRatio)
	}
	if cam.Projection == before {
		t.Error("Projection should be rebuilt on aspect change")
	}
}
