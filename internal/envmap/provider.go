package envmap

import (
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"

	"github.com/tevino/abool"
	"go.uber.org/zap"
)

// State is the provider's lifecycle state.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// completion is the result of one asynchronous panorama load.
type completion struct {
	alive *abool.AtomicBool // liveness flag of the request that started it
	pan   *Panorama
	err   error
	src   Source
}

// Provider owns the environment pipeline: it loads a panoramic radiance
// image off the render thread, prefilters it on the render thread, exposes
// the current Prepared environment, and owns every GPU resource it creates.
//
// All methods except the internal load goroutine must be called from the
// render thread. Update must be called once per frame to apply completions.
type Provider struct {
	device  renderer.Device
	quality renderer.QualityConfig

	state     State
	source    Source
	alive     *abool.AtomicBool // liveness of the in-flight request
	results   chan completion
	prefilter *Prefilter
	raw       *Panorama // panorama backing the current Prepared
	current   *Prepared
	err       error

	// OnChange is invoked on the render thread whenever the published
	// environment changes; nil means absent (load failure or teardown).
	OnChange func(*Prepared)

	// load is swappable for tests; defaults to Load.
	load func(Source) (*Panorama, error)
}

// NewProvider creates an idle provider bound to a device and quality knobs.
func NewProvider(device renderer.Device, quality renderer.QualityConfig) *Provider {
	return &Provider{
		device:  device,
		quality: quality,
		results: make(chan completion, 4),
		load:    Load,
	}
}

// State returns the current lifecycle state.
func (p *Provider) State() State {
	return p.state
}

// Current returns the published environment, if any.
func (p *Provider) Current() (*Prepared, bool) {
	return p.current, p.current != nil && !p.current.disposed
}

// Err returns the most recent load error, if the provider is Failed.
func (p *Provider) Err() error {
	if p.state != Failed {
		return nil
	}
	return p.err
}

// Request begins loading a new radiance source, superseding any in-flight
// request. The previously published environment stays live until the
// replacement is applied in Update, so observers never see a gap.
func (p *Provider) Request(source Source) {
	if p.alive != nil {
		// Cancel interest in the previous in-flight load
		p.alive.UnSet()
	}

	alive := abool.NewBool(true)
	p.alive = alive
	p.source = source
	p.state = Loading
	p.err = nil

	logger.Log.Info("Environment load requested", zap.String("source", string(source)))

	go func() {
		pan, err := p.load(source)
		p.results <- completion{alive: alive, pan: pan, err: err, src: source}
	}()
}

// Update drains load completions and applies the newest relevant one. Stale
// completions (superseded or torn down before arrival) release their
// panorama and cause zero observable state changes.
func (p *Provider) Update() {
	for {
		select {
		case c := <-p.results:
			p.apply(c)
		default:
			return
		}
	}
}

func (p *Provider) apply(c completion) {
	if c.alive == nil || !c.alive.IsSet() {
		// Superseded while in flight: discard silently
		if c.pan != nil {
			c.pan.Release()
		}
		logger.Log.Debug("Stale environment load discarded", zap.String("source", string(c.src)))
		return
	}

	if c.err != nil {
		p.state = Failed
		p.err = c.err
		logger.Log.Warn("Environment load failed",
			zap.String("source", string(c.src)), zap.Error(c.err))
		if p.OnChange != nil {
			p.OnChange(nil)
		}
		return
	}

	// The prefilter pipeline is built once and reused across loads
	if p.prefilter == nil {
		p.prefilter = NewPrefilter(p.device, p.quality)
	}

	prepared := p.prefilter.Filter(c.pan)
	prepared.Source = c.src

	// Replace, then dispose the superseded environment: never dispose the
	// old one before the new one is in place.
	oldRaw, oldPrepared := p.raw, p.current
	p.raw = c.pan
	p.current = prepared
	p.state = Ready
	p.err = nil

	if p.OnChange != nil {
		p.OnChange(prepared)
	}
	if oldPrepared != nil {
		oldPrepared.Dispose()
	}
	if oldRaw != nil {
		oldRaw.Release()
	}

	logger.Log.Info("Environment ready",
		zap.String("source", string(c.src)),
		zap.Int("mips", prepared.Levels()))
}

// Dispose tears the provider down: cancels any in-flight request and
// releases, in order, the raw panorama, the prefilter (render target and
// tables), and the published environment. Safe to call twice or before
// anything was loaded.
func (p *Provider) Dispose() {
	if p.alive != nil {
		p.alive.UnSet()
		p.alive = nil
	}
	if p.raw != nil {
		p.raw.Release()
		p.raw = nil
	}
	if p.prefilter != nil {
		p.prefilter.Release()
		p.prefilter = nil
	}
	if p.current != nil {
		p.current.Dispose()
		p.current = nil
	}
	p.state = Idle
	p.err = nil
}
