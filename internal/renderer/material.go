package renderer

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:      "default",
	BaseColor: [3]float32{1.0, 1.0, 1.0}, // White color
	// Modern PBR defaults
	Metallic:            0.0, // Non-metallic by default
	Roughness:           0.5, // Medium roughness
	Alpha:               1.0, // Fully opaque by default
	IOR:                 1.5, // Generic dielectric
	EnvMapIntensity:     1.0,
	AttenuationColor:    [3]float32{1.0, 1.0, 1.0},
	AttenuationDistance: 0, // 0 = no attenuation
}

// Material holds physically based surface parameters.
// Transmission, IOR, Thickness and the attenuation pair drive refractive
// surfaces; EnvMap/EnvMapIntensity drive image-based reflections for both
// refractive and metallic surfaces.
type Material struct {
	// HOT DATA - Accessed every render call for shading calculations
	BaseColor           [3]float32     // Albedo / base color
	Metallic            float32        // 0.0 = dielectric, 1.0 = metallic
	Roughness           float32        // 0.0 = mirror, 1.0 = completely rough
	Alpha               float32        // Transparency (0.0 = transparent, 1.0 = opaque)
	Transmission        float32        // 0.0 = opaque, 1.0 = fully transmissive
	IOR                 float32        // Index of refraction (diamond ~2.42)
	Thickness           float32        // Volume thickness for refraction
	Clearcoat           float32        // Clearcoat layer strength
	ClearcoatRoughness  float32        // Clearcoat layer roughness
	AttenuationColor    [3]float32     // Tint picked up by light traversing the volume
	AttenuationDistance float32        // Distance at which attenuation reaches full tint
	EnvMapIntensity     float32        // Multiplier on environment reflections
	EnvMap              EnvironmentMap // Shared, read-only; never disposed here

	// COLD DATA - Rarely accessed (identification only)
	Name     string // Material name for debugging and classification
	disposed bool
}

// Clone returns an independent copy sharing the (read-only) EnvMap reference.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	clone := *m
	clone.disposed = false
	return &clone
}

// Dispose releases the material. Idempotent; the environment map is shared
// and is left alone.
func (m *Material) Dispose() {
	if m == nil || m.disposed {
		return
	}
	m.EnvMap = nil
	m.disposed = true
}

// Disposed reports whether Dispose has been called.
func (m *Material) Disposed() bool {
	return m != nil && m.disposed
}

// ensure fixes incomplete materials (e.g. from MTL files that only set Name).
// Only fires if all critical values are zero, indicating incomplete
// initialization.
func (m *Material) ensure() {
	if m == nil {
		return
	}
	if m.Alpha == 0 && m.Roughness == 0 && m.Metallic == 0 && m.IOR == 0 {
		m.Alpha = 1.0
		m.Roughness = 0.5
		m.IOR = 1.5
		m.EnvMapIntensity = 1.0
		m.AttenuationColor = [3]float32{1, 1, 1}
	}
}

// EnsureMaterial makes sure a loaded material carries usable defaults.
func EnsureMaterial(m *Material) {
	m.ensure()
}
