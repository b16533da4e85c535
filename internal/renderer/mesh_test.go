package renderer

import (
	"math"
	"testing"
)

func quadMesh() *Mesh {
	// Unit quad in the XY plane, two triangles
	return &Mesh{
		Name: "quad",
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			1, 1, 0,
			0, 1, 0,
		},
		Faces: []int32{0, 1, 2, 0, 2, 3},
	}
}

func TestMeshInterleavePadsAttributes(t *testing.T) {
	mesh := quadMesh()
	mesh.Interleave()

	if len(mesh.InterleavedData) != 4*8 {
		t.Fatalf("Expected 8 floats per vertex, got %d total", len(mesh.InterleavedData))
	}
	// Padded normal defaults to +Y
	if mesh.InterleavedData[5] != 0 || mesh.InterleavedData[6] != 1 || mesh.InterleavedData[7] != 0 {
		t.Errorf("Missing normals should pad to (0,1,0), got %v", mesh.InterleavedData[5:8])
	}
}

func TestMeshRecalculateNormals(t *testing.T) {
	mesh := quadMesh()
	mesh.RecalculateNormals()

	// A flat quad wound counter-clockwise faces +Z
	for i := 0; i < 4; i++ {
		nz := mesh.Normals[i*3+2]
		if math.Abs(float64(nz)-1) > 1e-5 {
			t.Errorf("Vertex %d: expected normal (0,0,1), got z=%v", i, nz)
		}
	}
}

func TestMeshBoundingSphere(t *testing.T) {
	mesh := quadMesh()
	mesh.CalculateBoundingSphere()

	if mesh.BoundingSphereCenter.X() != 0.5 || mesh.BoundingSphereCenter.Y() != 0.5 {
		t.Errorf("Expected center (0.5,0.5,0), got %v", mesh.BoundingSphereCenter)
	}
	expected := float32(math.Sqrt(0.5))
	if math.Abs(float64(mesh.BoundingSphereRadius-expected)) > 1e-5 {
		t.Errorf("Expected radius %v, got %v", expected, mesh.BoundingSphereRadius)
	}
}

func TestMeshDisposeWithoutUpload(t *testing.T) {
	mesh := quadMesh()
	mesh.Dispose(nil)
	mesh.Dispose(nil)

	if !mesh.Disposed() {
		t.Error("Mesh should report disposed")
	}

	var nilMesh *Mesh
	nilMesh.Dispose(nil) // must not panic
}
