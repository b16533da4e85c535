package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is the geometry of a single sub-mesh: CPU-side vertex data plus the
// GPU buffer handles once uploaded. Meshes are shared across materialization
// passes and disposed only at final teardown.
type Mesh struct {
	// HOT DATA - GPU handles used every draw
	VAO uint32 // Vertex Array Object
	VBO uint32 // Vertex Buffer Object
	EBO uint32 // Element Buffer Object

	// COLD DATA - Initialization only or rarely accessed
	Name            string    // Mesh name (also used for classification)
	Vertices        []float32 // Vertex position data
	Normals         []float32 // Normal vectors
	TextureCoords   []float32 // Texture coordinates
	Faces           []int32   // Face indices
	InterleavedData []float32 // Combined [x,y,z,u,v,nx,ny,nz] vertex data

	BoundingSphereCenter mgl32.Vec3
	BoundingSphereRadius float32

	uploaded bool
	disposed bool
}

// Uploaded reports whether GPU buffers exist for this mesh.
func (m *Mesh) Uploaded() bool {
	return m.uploaded
}

// MarkUploaded is called by the device after buffer creation.
func (m *Mesh) MarkUploaded() {
	m.uploaded = true
	m.disposed = false
}

// Dispose releases the mesh's GPU buffers through the device. Idempotent and
// safe when the mesh was never uploaded.
func (m *Mesh) Dispose(device Device) {
	if m == nil || m.disposed {
		return
	}
	if m.uploaded && device != nil {
		device.DeleteMesh(m)
	}
	m.uploaded = false
	m.disposed = true
}

// Disposed reports whether Dispose has been called.
func (m *Mesh) Disposed() bool {
	return m != nil && m.disposed
}

// CalculateBoundingSphere computes a bounding sphere over the raw vertices.
func (m *Mesh) CalculateBoundingSphere() {
	numVertices := len(m.Vertices) / 3
	if numVertices == 0 {
		return
	}

	var center mgl32.Vec3
	for i := 0; i < numVertices; i++ {
		center = center.Add(mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]})
	}
	center = center.Mul(1.0 / float32(numVertices))

	var maxDistanceSq float32
	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		distanceSq := vertex.Sub(center).LenSqr()
		if distanceSq > maxDistanceSq {
			maxDistanceSq = distanceSq
		}
	}

	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

// Interleave rebuilds InterleavedData from the separate attribute arrays,
// padding missing texture coordinates and normals.
func (m *Mesh) Interleave() {
	vertexCount := len(m.Vertices) / 3

	for len(m.TextureCoords)/2 < vertexCount {
		m.TextureCoords = append(m.TextureCoords, 0, 0)
	}
	for len(m.Normals)/3 < vertexCount {
		m.Normals = append(m.Normals, 0, 1, 0)
	}

	interleaved := make([]float32, 0, vertexCount*8)
	for i := 0; i < vertexCount; i++ {
		interleaved = append(interleaved, m.Vertices[i*3:i*3+3]...)
		interleaved = append(interleaved, m.TextureCoords[i*2:i*2+2]...)
		interleaved = append(interleaved, m.Normals[i*3:i*3+3]...)
	}
	m.InterleavedData = interleaved
}

// RecalculateNormals rebuilds per-vertex normals from face geometry.
// Some models have broken normals, so we recalculate them ourselves.
func (m *Mesh) RecalculateNormals() {
	if len(m.Vertices) == 0 || len(m.Faces) == 0 {
		return
	}

	normals := make([]float32, len(m.Vertices))

	for i := 0; i+2 < len(m.Faces); i += 3 {
		idx0 := m.Faces[i] * 3
		idx1 := m.Faces[i+1] * 3
		idx2 := m.Faces[i+2] * 3

		if idx0+2 >= int32(len(m.Vertices)) || idx1+2 >= int32(len(m.Vertices)) || idx2+2 >= int32(len(m.Vertices)) {
			continue
		}

		v0 := mgl32.Vec3{m.Vertices[idx0], m.Vertices[idx0+1], m.Vertices[idx0+2]}
		v1 := mgl32.Vec3{m.Vertices[idx1], m.Vertices[idx1+1], m.Vertices[idx1+2]}
		v2 := mgl32.Vec3{m.Vertices[idx2], m.Vertices[idx2+1], m.Vertices[idx2+2]}

		edge1 := v1.Sub(v0)
		edge2 := v2.Sub(v0)
		normal := edge1.Cross(edge2).Normalize()

		for j := 0; j < 3; j++ {
			normals[idx0+int32(j)] += normal[j]
			normals[idx1+int32(j)] += normal[j]
			normals[idx2+int32(j)] += normal[j]
		}
	}

	for i := 0; i+2 < len(normals); i += 3 {
		normal := mgl32.Vec3{normals[i], normals[i+1], normals[i+2]}.Normalize()
		normals[i], normals[i+1], normals[i+2] = normal[0], normal[1], normal[2]
	}

	m.Normals = normals
}
