package jewel

import (
	"Jewel3D/internal/envmap"
	"Jewel3D/internal/loader"
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"
	"time"

	"go.uber.org/zap"
)

// ReadyDebounce is the pause between the first successful materialization of
// a shape and its OnReady callback, giving the render loop a frame or two to
// stabilize before the owner reveals the canvas.
const ReadyDebounce = 150 * time.Millisecond

// Config is one immutable snapshot of the user-facing options. Each change
// produces a new materialized scene generation.
type Config struct {
	Metal           string               // key into MetalColors
	Gem             string               // key into GemColors
	Shape           string               // variant identity; resets the one-shot ready flag
	Model           string               // asset path, passed through to the cache
	EnvMapIntensity float32              // metal reflection intensity (default 1.5)
	Mode            renderer.QualityMode // quality knob selection
	OnReady         func()               // invoked once per shape, debounced
}

// DefaultConfig returns the options a viewer starts with.
func DefaultConfig() Config {
	return Config{
		Metal:           "yellowgold",
		Gem:             "diamond",
		EnvMapIntensity: 1.5,
		Mode:            renderer.HighQualityMode,
	}
}

// Materializer turns an asset template plus a prepared environment and a
// config into a materialized scene, and keeps it in sync as any of the three
// change. It owns every material it constructs and, at final teardown, the
// geometries of the working copy.
type Materializer struct {
	device renderer.Device
	cache  *loader.Cache

	assetPath string
	asset     *renderer.Node // immutable template, owned by the cache
	env       *envmap.Prepared
	cfg       Config

	scene   *renderer.Node       // current working copy
	created []*renderer.Material // materials of the current generation

	materialsBuilt    int
	materialsDisposed int

	readySent  bool
	readyTimer *time.Timer
	disposed   bool
}

// NewMaterializer creates an empty materializer with default config.
func NewMaterializer(device renderer.Device, cache *loader.Cache) *Materializer {
	return &Materializer{
		device: device,
		cache:  cache,
		cfg:    DefaultConfig(),
	}
}

// Scene returns the current materialized scene, or false while inputs are
// still pending.
func (m *Materializer) Scene() (*renderer.Node, bool) {
	return m.scene, m.scene != nil
}

// Stats returns how many materials were ever constructed and disposed.
func (m *Materializer) Stats() (built, disposed int) {
	return m.materialsBuilt, m.materialsDisposed
}

// SetAsset switches to a new asset template, acquiring it through the cache
// and releasing the previous key.
func (m *Materializer) SetAsset(path string) error {
	if m.disposed || path == m.assetPath {
		return nil
	}

	root, err := m.cache.Acquire(path)
	if err != nil {
		logger.Log.Warn("Asset load failed", zap.String("path", path), zap.Error(err))
		return err
	}

	if m.assetPath != "" {
		m.cache.Release(m.assetPath)
	}
	m.assetPath = path
	m.asset = root

	// A new asset is a new shape generation
	m.resetReady()
	m.rematerialize()
	return nil
}

// SetEnvironment swaps the prepared environment the materials sample. A nil
// environment (load failure) leaves the previous scene in place; the next
// non-nil environment triggers a rebuild.
func (m *Materializer) SetEnvironment(env *envmap.Prepared) {
	if m.disposed {
		return
	}
	m.env = env
	if env != nil {
		m.rematerialize()
	}
}

// SetConfig applies a new configuration snapshot. Changing the shape
// identity re-arms the one-shot readiness notification.
func (m *Materializer) SetConfig(cfg Config) {
	if m.disposed {
		return
	}
	if cfg.EnvMapIntensity == 0 {
		cfg.EnvMapIntensity = DefaultConfig().EnvMapIntensity
	}
	if cfg.Shape != m.cfg.Shape {
		m.resetReady()
	}
	m.cfg = cfg

	if cfg.Model != "" && cfg.Model != m.assetPath {
		if err := m.SetAsset(cfg.Model); err == nil {
			return // SetAsset already rematerialized
		}
	}
	m.rematerialize()
}

// rematerialize runs a full pass: clone the template, classify every mesh
// node, assign fresh materials, publish the new scene, then dispose the
// superseded generation's materials. A missing asset or environment makes
// this a no-op (pending, not an error).
func (m *Materializer) rematerialize() {
	if m.asset == nil || m.env == nil || m.env.Disposed() {
		return
	}

	quality := m.cfg.Mode.Config()
	scene := m.asset.Clone()
	var created []*renderer.Material
	gems, metals := 0, 0

	scene.Walk(func(node *renderer.Node) bool {
		if node.Mesh == nil {
			return true
		}
		var material *renderer.Material
		// The clone still carries the template's placeholder material, so
		// classification sees the original name and transmission.
		if Classify(node) == Gem {
			material = NewGemMaterial(m.env, m.cfg.Gem, quality)
			gems++
		} else {
			material = NewMetalMaterial(m.env, m.cfg.Metal, m.cfg.EnvMapIntensity)
			metals++
		}
		node.Material = material
		node.Materials = nil
		created = append(created, material)
		return true
	})

	// Publish first, then dispose the superseded generation
	previous := m.created
	m.scene = scene
	m.created = created
	m.materialsBuilt += len(created)
	m.disposeMaterials(previous)

	logger.Log.Info("Scene materialized",
		zap.String("metal", m.cfg.Metal),
		zap.String("gem", m.cfg.Gem),
		zap.Int("gemMeshes", gems),
		zap.Int("metalMeshes", metals))

	m.scheduleReady()
}

// scheduleReady arms the debounced one-shot readiness callback for the
// current shape generation.
func (m *Materializer) scheduleReady() {
	if m.readySent || m.cfg.OnReady == nil {
		return
	}
	m.readySent = true
	callback := m.cfg.OnReady
	m.readyTimer = time.AfterFunc(ReadyDebounce, callback)
}

// resetReady re-arms the readiness notification for a new shape identity.
func (m *Materializer) resetReady() {
	if m.readyTimer != nil {
		m.readyTimer.Stop()
		m.readyTimer = nil
	}
	m.readySent = false
}

func (m *Materializer) disposeMaterials(materials []*renderer.Material) {
	for _, material := range materials {
		if material != nil && !material.Disposed() {
			material.Dispose()
			m.materialsDisposed++
		}
	}
}

// Dispose tears down the materializer: current-generation materials, every
// geometry of the working copy (single or listed materials included), and
// the cache reference. Idempotent.
func (m *Materializer) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.resetReady()

	if m.scene != nil {
		m.scene.Walk(func(node *renderer.Node) bool {
			if node.Mesh != nil {
				node.Mesh.Dispose(m.device)
			}
			if node.Material != nil && !node.Material.Disposed() {
				node.Material.Dispose()
				m.materialsDisposed++
			}
			for _, material := range node.Materials {
				if material != nil && !material.Disposed() {
					material.Dispose()
					m.materialsDisposed++
				}
			}
			return true
		})
		m.scene = nil
	}
	m.created = nil

	if m.assetPath != "" {
		m.cache.Release(m.assetPath)
		m.assetPath = ""
	}
	m.asset = nil
	m.env = nil

	logger.Log.Info("Materializer disposed",
		zap.Int("materialsBuilt", m.materialsBuilt),
		zap.Int("materialsDisposed", m.materialsDisposed))
}
