package envmap

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPrefilterConstantRadiance(t *testing.T) {
	// Convolving a constant environment must give back the same constant at
	// every roughness level: the GGX weights are normalized.
	pf := NewPrefilter(nil, testQuality())
	prepared := pf.Filter(constantPanorama(0.5))

	if prepared.Levels() != 3 {
		t.Fatalf("Expected 3 mip levels, got %d", prepared.Levels())
	}

	for mip := 0; mip < prepared.Levels(); mip++ {
		level := prepared.Level(mip)
		for face := 0; face < 6; face++ {
			for i, v := range level.Faces[face] {
				if math.Abs(float64(v)-0.5) > 0.01 {
					t.Fatalf("Mip %d face %d texel %d: expected 0.5, got %v", mip, face, i, v)
				}
			}
		}
	}
}

func TestPrefilterMipSizesHalve(t *testing.T) {
	pf := NewPrefilter(nil, testQuality())
	prepared := pf.Filter(constantPanorama(1))

	expected := 8
	for mip := 0; mip < prepared.Levels(); mip++ {
		if size := prepared.Level(mip).Size; size != expected {
			t.Errorf("Mip %d: expected size %d, got %d", mip, expected, size)
		}
		if expected > 1 {
			expected /= 2
		}
	}
}

func TestPrefilterMirrorLevelSharp(t *testing.T) {
	// Top hemisphere bright, bottom dark. At roughness 0 the +Y face must be
	// bright and the -Y face dark; at the roughest mip the two faces blur
	// towards each other.
	pan := NewPanorama(32, 16)
	for y := 0; y < 16; y++ {
		value := float32(0)
		if y < 8 {
			value = 1
		}
		for x := 0; x < 32; x++ {
			pan.Set(x, y, value, value, value)
		}
	}

	pf := NewPrefilter(nil, testQuality())
	prepared := pf.Filter(pan)

	mirror := prepared.Level(0)
	top := mirror.Faces[2][0]    // +Y face
	bottom := mirror.Faces[3][0] // -Y face
	if top < 0.9 || bottom > 0.1 {
		t.Errorf("Mirror level should stay sharp: +Y=%v -Y=%v", top, bottom)
	}

	rough := prepared.Level(prepared.Levels() - 1)
	roughTop := rough.Faces[2][0]
	if roughTop >= top {
		t.Errorf("Roughest level should dim the bright face: %v vs %v", roughTop, top)
	}
}

func TestPrefilterReleaseIdempotent(t *testing.T) {
	device := &fakeDevice{}
	pf := NewPrefilter(device, testQuality())
	pf.Release()
	pf.Release()

	if live := device.Stats().Live(); live != 0 {
		t.Errorf("Release should return the render target, %d handles live", live)
	}
}

func TestCubeTexelDirectionsCoverAxes(t *testing.T) {
	// The center texel of each face must point down the face axis.
	axes := []mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	}
	for face, want := range axes {
		dir := cubeTexelDirection(face, 0, 0, 1)
		if dir.Sub(want).Len() > 1e-5 {
			t.Errorf("Face %d center: expected %v, got %v", face, want, dir)
		}
	}
}

func TestHammersleyRange(t *testing.T) {
	for i := 0; i < 64; i++ {
		u1, u2 := hammersley(i, 64)
		if u1 < 0 || u1 >= 1 || u2 < 0 || u2 >= 1 {
			t.Fatalf("Sample %d out of [0,1): (%v, %v)", i, u1, u2)
		}
	}
}
