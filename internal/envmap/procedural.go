package envmap

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// StudioSource selects the built-in procedural studio panorama instead of a
// file on disk.
const StudioSource Source = "studio://default"

// ProceduralStudio synthesizes a neutral photo-studio panorama: a bright
// overhead softbox fading to a dark floor, broken up with low-frequency
// perlin variation so reflections don't look sterile. Useful when no HDR
// asset is shipped with a build.
func ProceduralStudio(width, height int, seed int64) *Panorama {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	pan := NewPanorama(width, height)

	for y := 0; y < height; y++ {
		// 1 at the zenith, 0 at the nadir
		elevation := 1 - float64(y)/float64(height-1)

		// Overhead softbox with a soft falloff, dim floor bounce
		base := 0.08 + 1.6*math.Pow(elevation, 3)

		for x := 0; x < width; x++ {
			u := float64(x) / float64(width)
			n := noise.Noise2D(u*6, elevation*3)
			v := float32(base * (1 + 0.25*n))
			if v < 0 {
				v = 0
			}
			// Slightly warm white, reads as studio tungsten
			pan.Set(x, y, v, v*0.98, v*0.94)
		}
	}
	return pan
}
