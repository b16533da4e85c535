package jewel

import "strings"

// MetalColors maps metal choices to linear base colors.
var MetalColors = map[string][3]float32{
	"yellowgold": {1.00, 0.77, 0.34},
	"rosegold":   {0.93, 0.64, 0.54},
	"whitegold":  {0.93, 0.92, 0.90},
	"silver":     {0.96, 0.96, 0.95},
	"platinum":   {0.83, 0.85, 0.88},
	"copper":     {0.95, 0.54, 0.40},
}

// DefaultMetalColor is the neutral gray fallback for unrecognized metals.
var DefaultMetalColor = [3]float32{0.75, 0.75, 0.75}

// GemColors maps gem choices to linear tint colors, used for both base and
// attenuation color.
var GemColors = map[string][3]float32{
	"diamond":    {1.00, 1.00, 1.00},
	"ruby":       {0.88, 0.07, 0.17},
	"sapphire":   {0.06, 0.16, 0.56},
	"emerald":    {0.05, 0.56, 0.30},
	"amethyst":   {0.60, 0.33, 0.73},
	"topaz":      {0.97, 0.77, 0.31},
	"aquamarine": {0.50, 0.84, 0.86},
	"citrine":    {0.89, 0.65, 0.13},
}

// DefaultGemColor is the white fallback for unrecognized gems.
var DefaultGemColor = [3]float32{1, 1, 1}

// MetalColor looks up the base color for a metal choice, falling back to
// neutral gray.
func MetalColor(name string) [3]float32 {
	if color, ok := MetalColors[strings.ToLower(name)]; ok {
		return color
	}
	return DefaultMetalColor
}

// GemColor looks up the tint for a gem choice, falling back to white.
func GemColor(name string) [3]float32 {
	if color, ok := GemColors[strings.ToLower(name)]; ok {
		return color
	}
	return DefaultGemColor
}
