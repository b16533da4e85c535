package renderer

// QualityMode selects between the two knob sets a viewer can run with.
type QualityMode int

const (
	PerformanceMode QualityMode = iota
	HighQualityMode
)

func (m QualityMode) String() string {
	switch m {
	case PerformanceMode:
		return "performance"
	case HighQualityMode:
		return "quality"
	default:
		return "unknown"
	}
}

// QualityConfig represents configurable rendering quality features.
// The prefilter knobs feed the environment pipeline; the rest are applied at
// the device level.
type QualityConfig struct {
	// Environment prefiltering
	PrefilterBaseSize int `json:"prefilterBaseSize"` // Cube face edge at mip 0
	PrefilterSamples  int `json:"prefilterSamples"`  // Importance samples per texel
	PrefilterMips     int `json:"prefilterMips"`     // Roughness levels in the mip chain

	// Modern PBR Extensions
	EnableClearcoat    bool    `json:"enableClearcoat"`
	ClearcoatRoughness float32 `json:"clearcoatRoughness"`

	// Anti-Aliasing - applied via the device, not shader uniforms
	MSAASamples int `json:"msaaSamples"` // 0, 2, 4, 8 (hardware MSAA, requires restart)

	// High-Quality Filtering
	EnableHighQualityFiltering bool `json:"enableHighQualityFiltering"`
}

// DefaultQualityConfig returns sensible defaults for interactive viewing.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		PrefilterBaseSize:          128,
		PrefilterSamples:           256,
		PrefilterMips:              6,
		EnableClearcoat:            true,
		ClearcoatRoughness:         0.1,
		MSAASamples:                4,
		EnableHighQualityFiltering: true,
	}
}

// HighQualityConfig returns settings optimized for maximum visual quality.
func HighQualityConfig() QualityConfig {
	config := DefaultQualityConfig()
	config.PrefilterBaseSize = 256
	config.PrefilterSamples = 1024
	config.PrefilterMips = 8
	config.MSAASamples = 8
	return config
}

// PerformanceQualityConfig returns settings optimized for performance.
func PerformanceQualityConfig() QualityConfig {
	config := DefaultQualityConfig()
	config.PrefilterBaseSize = 64
	config.PrefilterSamples = 64
	config.PrefilterMips = 5
	config.EnableClearcoat = false
	config.MSAASamples = 2
	config.EnableHighQualityFiltering = false
	return config
}

// Config returns the knob set for a mode.
func (m QualityMode) Config() QualityConfig {
	if m == HighQualityMode {
		return HighQualityConfig()
	}
	return PerformanceQualityConfig()
}
