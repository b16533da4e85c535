package jewel

import (
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func node(name, materialName string, transmission float32) *renderer.Node {
	n := renderer.NewNode(name)
	if materialName != "" || transmission != 0 {
		n.Material = &renderer.Material{Name: materialName, Transmission: transmission}
	}
	return n
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		node     *renderer.Node
		expected Class
	}{
		// Node-name keywords, any casing, substring position
		{"diamond keyword", node("Diamond_01", "", 0), Gem},
		{"gem keyword", node("side_gems", "", 0), Gem},
		{"stone keyword", node("CenterStone", "", 0), Gem},
		{"crystal keyword", node("crystal", "", 0), Gem},
		{"glass keyword", node("GlassInlay", "", 0), Gem},
		{"dia abbreviation", node("dia_05", "", 0), Gem},
		{"cs_ prefix", node("CS_round", "", 0), Gem},
		{"mesh0 export artifact", node("mesh012", "", 0), Gem},

		// Carat-style numeric naming
		{"carat dot", node("round_0.80", "", 0), Gem},
		{"carat underscore", node("pear_1_10", "", 0), Gem},
		{"plain digits are not carats", node("part7", "", 0), Metal},

		// Material-name keywords
		{"material diamond", node("object1", "DiamondMat", 0), Gem},
		{"material glass", node("object1", "glass_clear", 0), Gem},

		// Transmission
		{"transmissive material", node("object1", "mat1", 0.7), Gem},
		{"opaque material", node("object1", "mat1", 0), Metal},

		// Defaults
		{"band defaults to metal", node("band", "gold", 0), Metal},
		{"no material", node("shank", "", 0), Metal},
		{"prong", node("prongs_top", "", 0), Metal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.node); got != tt.expected {
				t.Errorf("Classify(%q/%v) = %v, expected %v", tt.node.Name, tt.node.Material, got, tt.expected)
			}
		})
	}
}

func TestClassifyOrderNameBeatsMaterial(t *testing.T) {
	// A gem keyword in the node name wins even when the material looks
	// metallic, and vice versa the material keyword rescues a bland name.
	n := node("diamond_main", "gold", 0)
	if Classify(n) != Gem {
		t.Error("Node-name keyword should win over material name")
	}

	n = node("object42", "crystal", 0)
	if Classify(n) != Gem {
		t.Error("Material keyword should classify a bland node name as gem")
	}
}

func TestMetalColorFallback(t *testing.T) {
	if c := MetalColor("YellowGold"); c != MetalColors["yellowgold"] {
		t.Errorf("Lookup should be case-insensitive, got %v", c)
	}
	if c := MetalColor("unobtanium"); c != DefaultMetalColor {
		t.Errorf("Unknown metal should fall back to neutral gray, got %v", c)
	}
}

func TestGemColorFallback(t *testing.T) {
	if c := GemColor("Ruby"); c != GemColors["ruby"] {
		t.Errorf("Lookup should be case-insensitive, got %v", c)
	}
	if c := GemColor("kryptonite"); c != DefaultGemColor {
		t.Errorf("Unknown gem should fall back to white, got %v", c)
	}
}
