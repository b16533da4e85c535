package renderer

import "testing"

type stubEnvMap struct{ disposed bool }

func (s *stubEnvMap) Texture() uint32 { return 1 }
func (s *stubEnvMap) Levels() int     { return 1 }
func (s *stubEnvMap) Disposed() bool  { return s.disposed }

func TestMaterialClone(t *testing.T) {
	env := &stubEnvMap{}
	original := &Material{
		Name:         "gem/ruby",
		BaseColor:    [3]float32{0.88, 0.07, 0.17},
		Transmission: 1,
		IOR:          2.42,
		EnvMap:       env,
	}

	clone := original.Clone()
	if clone == original {
		t.Fatal("Clone should be a new material")
	}
	if clone.Name != original.Name || clone.IOR != original.IOR {
		t.Error("Clone should copy all parameters")
	}
	if clone.EnvMap != env {
		t.Error("Clone shares the environment map reference")
	}

	clone.BaseColor = [3]float32{0, 0, 0}
	if original.BaseColor[0] != 0.88 {
		t.Error("Mutating a clone changed the original")
	}
}

func TestMaterialDisposeIdempotent(t *testing.T) {
	env := &stubEnvMap{}
	m := &Material{Name: "metal/silver", EnvMap: env}

	m.Dispose()
	m.Dispose()

	if !m.Disposed() {
		t.Error("Material should report disposed")
	}
	if m.EnvMap != nil {
		t.Error("Dispose should drop the environment reference")
	}
	if env.disposed {
		t.Error("Disposing a material must never dispose the shared environment")
	}

	var nilMat *Material
	nilMat.Dispose() // must not panic
	if nilMat.Disposed() {
		t.Error("Nil material is not disposed")
	}
}

func TestEnsureMaterialFillsDefaults(t *testing.T) {
	// An MTL entry that only named the material
	m := &Material{Name: "bare"}
	EnsureMaterial(m)

	if m.Alpha != 1 || m.Roughness != 0.5 || m.IOR != 1.5 {
		t.Errorf("Ensure should fill usable defaults, got %+v", m)
	}

	// A configured material is left alone
	configured := &Material{Name: "set", Alpha: 1, Roughness: 0.1, Metallic: 1, IOR: 1.5}
	EnsureMaterial(configured)
	if configured.Roughness != 0.1 {
		t.Error("Ensure must not overwrite configured values")
	}
}

func TestQualityModeConfig(t *testing.T) {
	perf := PerformanceMode.Config()
	high := HighQualityMode.Config()

	if perf.PrefilterBaseSize >= high.PrefilterBaseSize {
		t.Error("Performance prefilter should be smaller than high quality")
	}
	if perf.EnableClearcoat {
		t.Error("Performance mode should disable clearcoat")
	}
	if !high.EnableClearcoat {
		t.Error("High quality mode should enable clearcoat")
	}
	if PerformanceMode.String() != "performance" || HighQualityMode.String() != "quality" {
		t.Error("Unexpected mode names")
	}
}
