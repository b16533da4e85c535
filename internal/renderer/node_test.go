package renderer

import "testing"

func buildHierarchy() *Node {
	root := NewNode("root")
	band := NewNode("band")
	band.Mesh = &Mesh{Name: "band"}
	band.Material = &Material{Name: "gold"}
	stone := NewNode("stone")
	stone.Mesh = &Mesh{Name: "stone"}
	stone.Material = &Material{Name: "diamond"}
	root.AddChild(band)
	root.AddChild(stone)
	return root
}

func TestNodeWalkVisitsAll(t *testing.T) {
	root := buildHierarchy()

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Name)
		return true
	})

	expected := []string{"root", "band", "stone"}
	if len(visited) != len(expected) {
		t.Fatalf("Expected %d nodes, visited %d", len(expected), len(visited))
	}
	for i, name := range expected {
		if visited[i] != name {
			t.Errorf("Visit %d: expected %q, got %q", i, name, visited[i])
		}
	}
}

func TestNodeWalkStops(t *testing.T) {
	root := buildHierarchy()

	count := 0
	root.Walk(func(n *Node) bool {
		count++
		return count < 2
	})

	if count != 2 {
		t.Errorf("Walk should stop when the visitor returns false, visited %d", count)
	}
}

func TestNodeCloneSharesMeshes(t *testing.T) {
	root := buildHierarchy()
	clone := root.Clone()

	if clone == root {
		t.Fatal("Clone should be a new node")
	}
	if len(clone.Children) != 2 {
		t.Fatalf("Clone should copy the hierarchy, got %d children", len(clone.Children))
	}
	if clone.Children[0].Mesh != root.Children[0].Mesh {
		t.Error("Clones share geometry")
	}
	if clone.Children[0].Material != root.Children[0].Material {
		t.Error("Clone should carry the placeholder material pointer")
	}

	// Replacing a clone's material must not touch the source
	clone.Children[0].Material = &Material{Name: "replacement"}
	if root.Children[0].Material.Name != "gold" {
		t.Error("Replacing a clone material mutated the source")
	}
}

func TestNodeCountMeshes(t *testing.T) {
	root := buildHierarchy()
	if n := root.CountMeshes(); n != 2 {
		t.Errorf("Expected 2 meshes, got %d", n)
	}
}

func TestNodeTransform(t *testing.T) {
	n := NewNode("part")
	n.SetPosition(1, 2, 3)

	if !n.IsDirty {
		t.Error("SetPosition should mark the node dirty")
	}
	// Translation lands in the last column
	if n.ModelMatrix.At(0, 3) != 1 || n.ModelMatrix.At(1, 3) != 2 || n.ModelMatrix.At(2, 3) != 3 {
		t.Errorf("Translation missing from model matrix: %v", n.ModelMatrix)
	}
}
