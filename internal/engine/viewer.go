package engine

import (
	"Jewel3D/internal/envmap"
	"Jewel3D/internal/jewel"
	"Jewel3D/internal/loader"
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

var lastX, lastY float64
var firstMouse bool = true

// Viewer is the top-level jewelry viewer: a window, an orbit camera, the
// environment provider and the materializer, driven by one render loop.
// Config changes arrive over ConfigChan from any goroutine and are applied
// on the render thread.
type Viewer struct {
	Width      int32
	Height     int32
	Title      string
	ConfigChan chan jewel.Config
	Light      *renderer.Light
	Camera     *renderer.Camera

	device       renderer.Device
	window       *glfw.Window
	provider     *envmap.Provider
	materializer *jewel.Materializer
	cache        *loader.Cache
	quality      renderer.QualityMode
	envSource    envmap.Source
}

// NewViewer creates a viewer with the given quality mode. The window and GL
// state come up in Run.
func NewViewer(mode renderer.QualityMode) *Viewer {
	logger.Init()
	logger.Log.Info("Jewel3D initializing...", zap.String("quality", mode.String()))

	device := renderer.NewOpenGLDevice()
	cache := loader.NewCache()
	return &Viewer{
		Width:        1024,
		Height:       768,
		Title:        "Jewel3D",
		ConfigChan:   make(chan jewel.Config, 64),
		Light:        &renderer.Light{Position: [3]float32{4, 6, 4}, Color: [3]float32{1, 1, 1}, Intensity: 1.0},
		device:       device,
		cache:        cache,
		materializer: jewel.NewMaterializer(device, cache),
		quality:      mode,
	}
}

// SetEnvironment records the panorama source the provider loads once the GL
// context is up. Callable again at runtime to swap environments.
func (v *Viewer) SetEnvironment(source envmap.Source) {
	v.envSource = source
	if v.provider != nil {
		v.provider.Request(source)
	}
}

// SetDebugMode toggles verbose device logging.
func (v *Viewer) SetDebugMode(debug bool) {
	renderer.Debug = debug
	logger.SetDebug(debug)
}

// Environment exposes the provider for state inspection.
func (v *Viewer) Environment() *envmap.Provider {
	return v.provider
}

// Run opens the window, wires provider to materializer and enters the render
// loop. Blocks until the window closes.
func (v *Viewer) Run(x, y int) {
	lastX, lastY = float64(v.Width/2), float64(v.Height/2)
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw", zap.Error(err))
		return
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if samples := v.quality.Config().MSAASamples; samples > 0 {
		glfw.WindowHint(glfw.Samples, samples)
	}

	var err error
	v.window, err = glfw.CreateWindow(int(v.Width), int(v.Height), v.Title, nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window", zap.Error(err))
		return
	}
	v.window.MakeContextCurrent()
	v.window.SetPos(x, y)

	if err := v.device.Init(v.Width, v.Height, v.window); err != nil {
		logger.Log.Error("Could not initialize device", zap.Error(err))
		return
	}

	v.Camera = renderer.NewOrbitCamera(v.Width, v.Height)
	v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	v.window.SetCursorPosCallback(v.mouseCallback)
	v.window.SetScrollCallback(v.scrollCallback)

	v.provider = envmap.NewProvider(v.device, v.quality.Config())
	v.provider.OnChange = func(env *envmap.Prepared) {
		v.materializer.SetEnvironment(env)
	}
	if v.envSource != "" {
		v.provider.Request(v.envSource)
	}

	v.renderLoop()
}

func (v *Viewer) renderLoop() {
	var lastWidth, lastHeight int32 = v.Width, v.Height

	for !v.window.ShouldClose() {
		actualWidth, actualHeight := v.window.GetSize()
		v.Width, v.Height = int32(actualWidth), int32(actualHeight)
		if v.Width != lastWidth || v.Height != lastHeight {
			v.device.UpdateViewport(v.Width, v.Height)
			v.Camera.SetAspectRatio(v.Width, v.Height)
			lastWidth, lastHeight = v.Width, v.Height
		}

		// Apply queued config changes before resolving async completions so
		// a fresh environment materializes against the latest options.
		v.drainConfig()
		v.provider.Update()

		if scene, ok := v.materializer.Scene(); ok {
			v.device.Draw(v.Camera, scene, v.Light)
		}

		v.window.SwapBuffers()
		glfw.PollEvents()
	}
	v.cleanup()
}

func (v *Viewer) drainConfig() {
	for {
		select {
		case cfg := <-v.ConfigChan:
			v.materializer.SetConfig(cfg)
		default:
			return
		}
	}
}

// cleanup tears everything down in dependency order: scene first, then the
// environment chain, then the device.
func (v *Viewer) cleanup() {
	v.materializer.Dispose()
	v.provider.Dispose()
	v.cache.Clear()
	v.device.Cleanup()
	logger.Log.Info("Jewel3D shut down")
}

func (v *Viewer) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	if w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
		if firstMouse {
			lastX, lastY = xpos, ypos
			firstMouse = false
			return
		}
		xoffset := xpos - lastX
		yoffset := lastY - ypos // Reversed since y-coordinates go from bottom to top
		lastX, lastY = xpos, ypos
		v.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset))
	} else {
		firstMouse = true
	}
}

func (v *Viewer) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	v.Camera.ProcessScroll(float32(yoff))
}
