package jewel

import (
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// Baseline material constants. These are deliberate defaults, not
// configuration: they describe what a faceted stone and a polished band are,
// independent of which stone or metal the user picked.
const (
	DiamondIOR             = 2.42
	gemEnvMapIntensity     = 2.5 // fixed multiplier for stones
	gemThickness           = 1.2
	gemAttenuationDistance = 2.0
	metalRoughness         = 0.12
	metalIntensityBoost    = 1.5 // applied on top of the configured intensity
)

// gemTemplate is the baseline refractive stone: fully transmissive, mirror
// smooth, diamond refraction, clearcoated.
var gemTemplate = renderer.Material{
	Name:               "gem",
	BaseColor:          [3]float32{1, 1, 1},
	Metallic:           0,
	Roughness:          0,
	Alpha:              1,
	Transmission:       1,
	IOR:                DiamondIOR,
	Thickness:          gemThickness,
	Clearcoat:          1,
	ClearcoatRoughness: 0.05,
	EnvMapIntensity:    gemEnvMapIntensity,
}

// metalTemplate is the baseline polished band.
var metalTemplate = renderer.Material{
	Name:             "metal",
	BaseColor:        [3]float32{1, 1, 1},
	Metallic:         1,
	Roughness:        metalRoughness,
	Alpha:            1,
	IOR:              1.5,
	AttenuationColor: [3]float32{1, 1, 1},
}

// NewGemMaterial builds a refractive stone material for the chosen gem,
// driven by the shared environment map.
func NewGemMaterial(env renderer.EnvironmentMap, gem string, quality renderer.QualityConfig) *renderer.Material {
	material := &renderer.Material{}
	if err := copier.Copy(material, &gemTemplate); err != nil {
		logger.Log.Error("Gem template copy failed", zap.Error(err))
		*material = gemTemplate
	}

	color := GemColor(gem)
	material.Name = "gem/" + gem
	material.BaseColor = color
	material.AttenuationColor = color
	material.AttenuationDistance = gemAttenuationDistance
	material.EnvMap = env
	if !quality.EnableClearcoat {
		material.Clearcoat = 0
	} else {
		material.ClearcoatRoughness = quality.ClearcoatRoughness
	}
	return material
}

// NewMetalMaterial builds an opaque metal material for the chosen metal.
// The environment intensity is the configured value boosted by a fixed
// factor so the band reads as polished under studio lighting.
func NewMetalMaterial(env renderer.EnvironmentMap, metal string, envMapIntensity float32) *renderer.Material {
	material := &renderer.Material{}
	if err := copier.Copy(material, &metalTemplate); err != nil {
		logger.Log.Error("Metal template copy failed", zap.Error(err))
		*material = metalTemplate
	}

	material.Name = "metal/" + metal
	material.BaseColor = MetalColor(metal)
	material.EnvMapIntensity = envMapIntensity * metalIntensityBoost
	material.EnvMap = env
	return material
}
