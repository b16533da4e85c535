package main

import (
	"Jewel3D/internal/engine"
	"Jewel3D/internal/envmap"
	"Jewel3D/internal/jewel"
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"
	"flag"
)

func main() {
	model := flag.String("model", "../assets/ring.obj", "jewelry asset to load")
	env := flag.String("env", "", "panorama source (.hdr or LDR image); procedural studio when empty")
	metal := flag.String("metal", "yellowgold", "metal finish")
	gem := flag.String("gem", "diamond", "gem variety")
	performance := flag.Bool("performance", false, "use the performance quality profile")
	debug := flag.Bool("debug", false, "verbose device logging")
	flag.Parse()

	mode := renderer.HighQualityMode
	if *performance {
		mode = renderer.PerformanceMode
	}

	viewer := engine.NewViewer(mode)
	viewer.SetDebugMode(*debug)
	if *env != "" {
		viewer.SetEnvironment(envmap.Source(*env))
	} else {
		viewer.SetEnvironment(envmap.StudioSource)
	}

	cfg := jewel.DefaultConfig()
	cfg.Metal = *metal
	cfg.Gem = *gem
	cfg.Model = *model
	cfg.Mode = mode
	cfg.OnReady = func() {
		logger.Log.Info("Scene ready")
	}
	viewer.ConfigChan <- cfg

	viewer.Run(100, 100)
}
