package envmap

import (
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"

	"go.uber.org/zap"
)

// Prepared is a prefiltered radiance environment: a cube mip chain where each
// level encodes the panorama convolved at increasing roughness, plus the GPU
// cubemap once uploaded. Shared read-only by any number of materials; only
// its producer may dispose it, and exactly once.
type Prepared struct {
	Source Source

	levels   []renderer.CubeLevel
	texture  uint32
	device   renderer.Device
	disposed bool
}

var _ renderer.EnvironmentMap = (*Prepared)(nil)

// Texture returns the GPU cubemap handle (0 if never uploaded).
func (p *Prepared) Texture() uint32 {
	return p.texture
}

// Levels returns the number of roughness mip levels.
func (p *Prepared) Levels() int {
	return len(p.levels)
}

// Level returns one mip level of the chain.
func (p *Prepared) Level(i int) renderer.CubeLevel {
	return p.levels[i]
}

// Disposed reports whether Dispose has been called.
func (p *Prepared) Disposed() bool {
	return p == nil || p.disposed
}

// Dispose releases the GPU cubemap and drops the CPU chain. Idempotent and
// safe when the upload never happened.
func (p *Prepared) Dispose() {
	if p == nil || p.disposed {
		return
	}
	if p.texture != 0 && p.device != nil {
		p.device.DeleteTexture(p.texture)
	}
	p.texture = 0
	p.levels = nil
	p.disposed = true
	logger.Log.Debug("Prepared environment disposed", zap.String("source", string(p.Source)))
}
