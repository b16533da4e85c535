package envmap

import (
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// tangentSample is one precomputed importance sample: an outgoing direction
// expressed in tangent space around the surface normal, and its n·l weight.
type tangentSample struct {
	dir    mgl32.Vec3
	weight float32
}

// Prefilter converts an equirectangular panorama into a cube mip chain where
// mip level i is the radiance convolved with a GGX lobe of roughness
// i/(mips-1). Building the per-level sample tables is the expensive one-time
// setup (the pipeline-compilation analog), so one Prefilter should be reused
// across every Filter call a provider makes.
type Prefilter struct {
	baseSize int
	samples  [][]tangentSample // one table per mip level

	device       renderer.Device
	renderTarget uint32
	released     bool
}

// NewPrefilter builds the sample tables for the given quality knobs and
// claims a scratch render target on the device.
func NewPrefilter(device renderer.Device, quality renderer.QualityConfig) *Prefilter {
	pf := &Prefilter{
		baseSize: quality.PrefilterBaseSize,
		device:   device,
	}

	mips := quality.PrefilterMips
	if mips < 2 {
		mips = 2
	}
	pf.samples = make([][]tangentSample, mips)
	for mip := 0; mip < mips; mip++ {
		roughness := float32(mip) / float32(mips-1)
		pf.samples[mip] = buildGGXSamples(roughness, quality.PrefilterSamples)
	}

	if device != nil {
		target, err := device.CreateRenderTarget(int32(pf.baseSize), int32(pf.baseSize))
		if err != nil {
			logger.Log.Warn("Prefilter render target creation failed", zap.Error(err))
		} else {
			pf.renderTarget = target
		}
	}

	logger.Log.Info("Prefilter pipeline ready",
		zap.Int("baseSize", pf.baseSize),
		zap.Int("mips", mips),
		zap.Int("samplesPerTexel", quality.PrefilterSamples))
	return pf
}

// Filter runs the convolution: a pure function of the panorama given the
// precomputed tables. The result is uploaded to the device if one is present.
func (pf *Prefilter) Filter(pan *Panorama) *Prepared {
	levels := make([]renderer.CubeLevel, len(pf.samples))
	for mip := range pf.samples {
		size := pf.baseSize >> mip
		if size < 1 {
			size = 1
		}
		levels[mip] = pf.convolveLevel(pan, size, pf.samples[mip])
	}

	prepared := &Prepared{levels: levels, device: pf.device}
	if pf.device != nil {
		texture, err := pf.device.CreateCubemap(levels)
		if err != nil {
			logger.Log.Warn("Cubemap upload failed", zap.Error(err))
		} else {
			prepared.texture = texture
		}
	}
	return prepared
}

// Release frees the sample tables and the scratch render target. Idempotent.
func (pf *Prefilter) Release() {
	if pf == nil || pf.released {
		return
	}
	if pf.renderTarget != 0 && pf.device != nil {
		pf.device.DeleteRenderTarget(pf.renderTarget)
		pf.renderTarget = 0
	}
	pf.samples = nil
	pf.released = true
}

// convolveLevel integrates the panorama over the GGX lobe for every texel of
// every cube face at the given edge size.
func (pf *Prefilter) convolveLevel(pan *Panorama, size int, samples []tangentSample) renderer.CubeLevel {
	level := renderer.CubeLevel{Size: size}
	for face := 0; face < 6; face++ {
		pixels := make([]float32, size*size*3)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				normal := cubeTexelDirection(face, x, y, size)
				color := convolveTexel(pan, normal, samples)
				i := (y*size + x) * 3
				pixels[i], pixels[i+1], pixels[i+2] = color.X(), color.Y(), color.Z()
			}
		}
		level.Faces[face] = pixels
	}
	return level
}

// convolveTexel rotates the tangent-space sample set onto the texel's normal
// and accumulates weighted radiance.
func convolveTexel(pan *Panorama, normal mgl32.Vec3, samples []tangentSample) mgl32.Vec3 {
	tangent, bitangent := tangentBasis(normal)

	var sum mgl32.Vec3
	var totalWeight float32
	for _, s := range samples {
		world := tangent.Mul(s.dir.X()).
			Add(bitangent.Mul(s.dir.Y())).
			Add(normal.Mul(s.dir.Z()))
		sum = sum.Add(pan.Sample(world).Mul(s.weight))
		totalWeight += s.weight
	}
	if totalWeight == 0 {
		return pan.Sample(normal)
	}
	return sum.Mul(1 / totalWeight)
}

// buildGGXSamples importance-samples the GGX distribution for one roughness
// level, keeping only samples in the upper hemisphere with positive n·l.
func buildGGXSamples(roughness float32, count int) []tangentSample {
	if roughness == 0 || count < 2 {
		// Mirror level: the normal itself
		return []tangentSample{{dir: mgl32.Vec3{0, 0, 1}, weight: 1}}
	}

	alpha := float64(roughness * roughness)
	normal := mgl32.Vec3{0, 0, 1}
	samples := make([]tangentSample, 0, count)

	for i := 0; i < count; i++ {
		u1, u2 := hammersley(i, count)

		// GGX half-vector in tangent space
		phi := 2 * math.Pi * u1
		cosTheta := math.Sqrt((1 - u2) / (1 + (alpha*alpha-1)*u2))
		sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
		half := mgl32.Vec3{
			float32(sinTheta * math.Cos(phi)),
			float32(sinTheta * math.Sin(phi)),
			float32(cosTheta),
		}

		// Outgoing direction with V = N (split-sum approximation)
		light := half.Mul(2 * normal.Dot(half)).Sub(normal)
		ndotl := normal.Dot(light)
		if ndotl > 0 {
			samples = append(samples, tangentSample{dir: light.Normalize(), weight: ndotl})
		}
	}

	if len(samples) == 0 {
		samples = append(samples, tangentSample{dir: normal, weight: 1})
	}
	return samples
}

// hammersley returns the i-th point of the 2D Hammersley set of size n.
func hammersley(i, n int) (float64, float64) {
	// Van der Corput radical inverse, base 2
	bits := uint32(i)
	bits = (bits << 16) | (bits >> 16)
	bits = ((bits & 0x55555555) << 1) | ((bits & 0xAAAAAAAA) >> 1)
	bits = ((bits & 0x33333333) << 2) | ((bits & 0xCCCCCCCC) >> 2)
	bits = ((bits & 0x0F0F0F0F) << 4) | ((bits & 0xF0F0F0F0) >> 4)
	bits = ((bits & 0x00FF00FF) << 8) | ((bits & 0xFF00FF00) >> 8)
	return float64(i) / float64(n), float64(bits) * 2.3283064365386963e-10
}

// cubeTexelDirection maps a texel of a cube face to its world direction,
// following the standard GL cubemap face layout.
func cubeTexelDirection(face, x, y, size int) mgl32.Vec3 {
	u := 2*(float32(x)+0.5)/float32(size) - 1
	v := 2*(float32(y)+0.5)/float32(size) - 1

	var dir mgl32.Vec3
	switch face {
	case 0: // +X
		dir = mgl32.Vec3{1, -v, -u}
	case 1: // -X
		dir = mgl32.Vec3{-1, -v, u}
	case 2: // +Y
		dir = mgl32.Vec3{u, 1, v}
	case 3: // -Y
		dir = mgl32.Vec3{u, -1, -v}
	case 4: // +Z
		dir = mgl32.Vec3{u, -v, 1}
	default: // -Z
		dir = mgl32.Vec3{-u, -v, -1}
	}
	return dir.Normalize()
}

// tangentBasis builds an orthonormal basis around a normal.
func tangentBasis(normal mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	up := mgl32.Vec3{0, 1, 0}
	if normal.Y() > 0.999 || normal.Y() < -0.999 {
		up = mgl32.Vec3{1, 0, 0}
	}
	tangent := up.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)
	return tangent, bitangent
}
