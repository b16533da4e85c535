package jewel

import (
	"Jewel3D/internal/renderer"
	"regexp"
	"strings"
)

// Class partitions a sub-mesh into the two material families a jewelry
// model is built from.
type Class int

const (
	Gem Class = iota
	Metal
)

func (c Class) String() string {
	if c == Gem {
		return "gem"
	}
	return "metal"
}

// Keyword vocabularies matched (case-insensitively) against node and
// material names. These mirror the naming conventions jewelry CAD exports
// use in the wild; keep the order and contents stable, real assets depend
// on them.
var gemNameKeywords = []string{"diamond", "gem", "stone", "crystal", "glass", "dia", "cs_", "mesh0"}
var gemMaterialKeywords = []string{"diamond", "gem", "glass", "crystal", "stone"}

// caratPattern matches carat-style numeric naming like "0.80" or "1.10_5".
var caratPattern = regexp.MustCompile(`[0-9]+[._][0-9]+`)

// Classify decides whether a sub-mesh is a gem or part of the metal body.
// It is a pure function of the node's name, its material's name and its
// material's transmission, applied as an ordered predicate chain with first
// match winning:
//
//  1. node name contains a gem keyword
//  2. node name carries carat-style numeric naming
//  3. material name contains a gem keyword
//  4. material transmits light
//  5. otherwise metal
//
// This is best-effort classification over untrusted naming conventions, not
// a guarantee.
func Classify(node *renderer.Node) Class {
	name := strings.ToLower(node.Name)
	for _, keyword := range gemNameKeywords {
		if strings.Contains(name, keyword) {
			return Gem
		}
	}

	if caratPattern.MatchString(name) {
		return Gem
	}

	if node.Material != nil {
		materialName := strings.ToLower(node.Material.Name)
		for _, keyword := range gemMaterialKeywords {
			if strings.Contains(materialName, keyword) {
				return Gem
			}
		}
		if node.Material.Transmission > 0 {
			return Gem
		}
	}

	return Metal
}
