package loader

import (
	"Jewel3D/internal/logger"
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

const testOBJ = `# ring fixture
mtllib ring.mtl
o Band
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
usemtl gold
f 1 2 3
f 1 3 4
o Diamond_1
v 2 0 0
v 3 0 0
v 2 1 0
usemtl diamond
f 5 6 7
`

const testMTL = `newmtl gold
Kd 1.0 0.77 0.34
Pm 1.0
Pr 0.2
newmtl diamond
Kd 1 1 1
Ni 2.42
d 0.2
`

func writeRing(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	objPath := filepath.Join(dir, "ring.obj")
	if err := os.WriteFile(objPath, []byte(testOBJ), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ring.mtl"), []byte(testMTL), 0644); err != nil {
		t.Fatal(err)
	}
	return objPath
}

func TestLoadAsset(t *testing.T) {
	root, err := LoadAsset(writeRing(t), true)
	if err != nil {
		t.Fatalf("LoadAsset failed: %v", err)
	}

	if root.Name != "ring" {
		t.Errorf("Root should be named after the file, got %q", root.Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("Expected 2 sub-meshes, got %d", len(root.Children))
	}

	band := root.Children[0]
	if band.Name != "Band" {
		t.Errorf("Expected first sub-mesh Band, got %q", band.Name)
	}
	if band.Mesh == nil {
		t.Fatal("Band has no mesh")
	}
	if len(band.Mesh.Faces) != 6 {
		t.Errorf("Band should have 6 indices (2 triangles), got %d", len(band.Mesh.Faces))
	}
	if len(band.Mesh.Vertices) != 4*3 {
		t.Errorf("Band should unify to 4 vertices, got %d floats", len(band.Mesh.Vertices))
	}
	if band.Material == nil || band.Material.Name != "gold" {
		t.Errorf("Band should carry the gold placeholder, got %+v", band.Material)
	}
	if band.Material.Metallic != 1 {
		t.Errorf("Pm should populate Metallic, got %v", band.Material.Metallic)
	}

	stone := root.Children[1]
	if stone.Name != "Diamond_1" {
		t.Errorf("Expected second sub-mesh Diamond_1, got %q", stone.Name)
	}
	if stone.Material == nil || stone.Material.Name != "diamond" {
		t.Fatalf("Stone should carry the diamond placeholder, got %+v", stone.Material)
	}
	if stone.Material.IOR != 2.42 {
		t.Errorf("Ni should populate IOR, got %v", stone.Material.IOR)
	}
	if stone.Material.Transmission < 0.79 || stone.Material.Transmission > 0.81 {
		t.Errorf("d 0.2 should give transmission 0.8, got %v", stone.Material.Transmission)
	}
}

func TestLoadAssetInterleavesGeometry(t *testing.T) {
	root, err := LoadAsset(writeRing(t), true)
	if err != nil {
		t.Fatalf("LoadAsset failed: %v", err)
	}

	mesh := root.Children[0].Mesh
	// 8 floats per vertex: position, uv, normal
	if len(mesh.InterleavedData) != len(mesh.Vertices)/3*8 {
		t.Errorf("Interleaved data length %d does not match %d vertices",
			len(mesh.InterleavedData), len(mesh.Vertices)/3)
	}
	if mesh.BoundingSphereRadius <= 0 {
		t.Error("Bounding sphere should be computed")
	}
}

func TestLoadAssetMissingFile(t *testing.T) {
	if _, err := LoadAsset("no-such-file.obj", false); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadAssetNoGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAsset(path, false); err == nil {
		t.Error("Expected error for an OBJ with no faces")
	}
}

func TestParseFaceQuad(t *testing.T) {
	face, err := parseFace([]string{"1", "2", "3", "4"})
	if err != nil {
		t.Fatal(err)
	}
	if len(face) != 6 {
		t.Fatalf("Quad should triangulate to 6 corners, got %d", len(face))
	}
	// 0-based after conversion: triangles (0,1,2) and (0,2,3)
	expected := []int32{0, 1, 2, 0, 2, 3}
	for i, fv := range face {
		if fv.VertexIdx != expected[i] {
			t.Errorf("Corner %d: expected vertex %d, got %d", i, expected[i], fv.VertexIdx)
		}
	}
}

func TestParseFaceTriplets(t *testing.T) {
	face, err := parseFace([]string{"1/2/3", "4//5", "6"})
	if err != nil {
		t.Fatal(err)
	}
	if face[0].VertexIdx != 0 || face[0].TexCoordIdx != 1 || face[0].NormalIdx != 2 {
		t.Errorf("Full triplet parsed wrong: %+v", face[0])
	}
	if face[1].TexCoordIdx != -1 || face[1].NormalIdx != 4 {
		t.Errorf("Missing texcoord should be -1: %+v", face[1])
	}
	if face[2].TexCoordIdx != -1 || face[2].NormalIdx != -1 {
		t.Errorf("Bare vertex should have -1 texcoord and normal: %+v", face[2])
	}
}
