package loader

import (
	"Jewel3D/internal/logger"
	"Jewel3D/internal/renderer"
	"bufio"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// subMesh accumulates the faces of one (group, material) run while parsing.
type subMesh struct {
	name         string
	materialName string
	faces        []FaceVertex
}

// LoadAsset parses an OBJ file into a hierarchy of named sub-mesh nodes: one
// child node per object/group and material run, each with its own geometry
// and the placeholder material from the MTL file. The returned hierarchy is
// the immutable template; callers clone it before assigning materials.
func LoadAsset(filename string, recalculateNormals bool) (*renderer.Node, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var vertices []float32
	var textureCoords []float32
	var normals []float32
	materials := map[string]*renderer.Material{"default": renderer.DefaultMaterial.Clone()}

	currentGroup := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	currentMaterial := "default"
	var subMeshes []*subMesh
	var current *subMesh

	// startRun opens a new sub-mesh when the group or material changes
	startRun := func() {
		current = &subMesh{name: currentGroup, materialName: currentMaterial}
		subMeshes = append(subMeshes, current)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "v":
			vertex, err := parseFloats(parts[1:])
			if err != nil {
				logger.Log.Error("Error parsing vertex: ", zap.Error(err))
				return nil, err
			}
			vertices = append(vertices, vertex...)
		case "vn":
			normal, err := parseFloats(parts[1:])
			if err != nil {
				logger.Log.Error("Error parsing normal: ", zap.Error(err))
				return nil, err
			}
			normals = append(normals, normal...)
		case "vt":
			texCoord, err := parseFloats(parts[1:])
			if err != nil {
				logger.Log.Error("Error parsing texture coordinate: ", zap.Error(err))
				return nil, err
			}
			textureCoords = append(textureCoords, texCoord[0], texCoord[1])
		case "o", "g":
			if len(parts) >= 2 {
				currentGroup = strings.Join(parts[1:], " ")
			}
			current = nil
		case "mtllib":
			mtlPath := filepath.Join(filepath.Dir(filename), parts[1])
			for name, mat := range LoadMaterials(mtlPath) {
				materials[name] = mat
			}
		case "usemtl":
			if len(parts) >= 2 && parts[1] != currentMaterial {
				currentMaterial = parts[1]
				current = nil
			}
		case "f":
			faceVertices, err := parseFace(parts[1:])
			if err != nil {
				logger.Log.Error("Error parsing face: ", zap.Error(err))
				return nil, err
			}
			if current == nil {
				startRun()
			}
			current.faces = append(current.faces, faceVertices...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	root := renderer.NewNode(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	for _, sm := range subMeshes {
		if len(sm.faces) == 0 {
			continue
		}
		mesh := buildMesh(sm, vertices, textureCoords, normals, recalculateNormals)

		material, ok := materials[sm.materialName]
		if !ok {
			logger.Log.Warn("Material not found, using default", zap.String("material", sm.materialName))
			material = materials["default"]
		}
		renderer.EnsureMaterial(material)

		child := renderer.NewNode(sm.name)
		child.Mesh = mesh
		child.Material = material
		root.AddChild(child)
	}

	if len(root.Children) == 0 {
		return nil, fmt.Errorf("no geometry found in %s", filename)
	}

	logger.Log.Info("Asset loaded",
		zap.String("file", filename),
		zap.Int("subMeshes", len(root.Children)),
		zap.Int("vertices", len(vertices)/3))
	return root, nil
}

// buildMesh unifies a sub-mesh's v/vt/vn index triplets into a single
// interleaved vertex buffer with one index per corner.
func buildMesh(sm *subMesh, vertices, textureCoords, normals []float32, recalculateNormals bool) *renderer.Mesh {
	type vertexKey struct {
		v, vt, vn int32
	}

	vertexMap := make(map[vertexKey]int32)
	mesh := &renderer.Mesh{Name: sm.name}

	for _, fv := range sm.faces {
		key := vertexKey{fv.VertexIdx, fv.TexCoordIdx, fv.NormalIdx}
		if idx, exists := vertexMap[key]; exists {
			mesh.Faces = append(mesh.Faces, idx)
			continue
		}

		idx := int32(len(mesh.Vertices) / 3)
		vertexMap[key] = idx

		if fv.VertexIdx >= 0 && int(fv.VertexIdx*3+2) < len(vertices) {
			mesh.Vertices = append(mesh.Vertices,
				vertices[fv.VertexIdx*3], vertices[fv.VertexIdx*3+1], vertices[fv.VertexIdx*3+2])
		} else {
			logger.Log.Error("Vertex index out of bounds",
				zap.Int32("vertexIdx", fv.VertexIdx), zap.Int("verticesLen", len(vertices)/3))
			mesh.Vertices = append(mesh.Vertices, 0, 0, 0)
		}

		if fv.TexCoordIdx >= 0 && int(fv.TexCoordIdx*2+1) < len(textureCoords) {
			mesh.TextureCoords = append(mesh.TextureCoords,
				textureCoords[fv.TexCoordIdx*2], textureCoords[fv.TexCoordIdx*2+1])
		} else {
			mesh.TextureCoords = append(mesh.TextureCoords, 0, 0)
		}

		if fv.NormalIdx >= 0 && int(fv.NormalIdx*3+2) < len(normals) {
			mesh.Normals = append(mesh.Normals,
				normals[fv.NormalIdx*3], normals[fv.NormalIdx*3+1], normals[fv.NormalIdx*3+2])
		} else {
			mesh.Normals = append(mesh.Normals, 0, 1, 0)
		}

		mesh.Faces = append(mesh.Faces, idx)
	}

	// Some models have broken normals, so we recalculate them ourselves
	if recalculateNormals {
		mesh.RecalculateNormals()
	}
	mesh.Interleave()
	mesh.CalculateBoundingSphere()
	return mesh
}

// LoadMaterials loads material properties from a .mtl file, including the
// PBR extension keywords modern exporters emit (Pm/Pr/Ni) and transmission
// via Tr/d.
func LoadMaterials(filename string) map[string]*renderer.Material {
	materials := make(map[string]*renderer.Material)

	file, err := os.Open(filename)
	if err != nil {
		logger.Log.Error("Error opening material file: ", zap.Error(err))
		return materials
	}
	defer file.Close()

	var current *renderer.Material
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if current == nil && fields[0] != "newmtl" {
			continue
		}

		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				logger.Log.Error("Malformed material line", zap.Strings("fields", fields))
				continue
			}
			current = &renderer.Material{
				Name:             fields[1],
				BaseColor:        [3]float32{1, 1, 1},
				Alpha:            1.0,
				Roughness:        0.5,
				IOR:              1.5,
				EnvMapIntensity:  1.0,
				AttenuationColor: [3]float32{1, 1, 1},
			}
			materials[fields[1]] = current
		case "Kd": // Diffuse color
			if len(fields) == 4 {
				current.BaseColor = parseColor(fields[1:])
			}
		case "d": // Dissolve (alpha/opacity)
			if len(fields) == 2 {
				current.Alpha = parseFloat(fields[1])
				if current.Alpha < 1 {
					current.Transmission = 1 - current.Alpha
				}
			}
		case "Tr": // Transparency (inverse of d)
			if len(fields) == 2 {
				current.Transmission = parseFloat(fields[1])
				current.Alpha = 1 - current.Transmission
			}
		case "Ni": // Optical density = index of refraction
			if len(fields) == 2 {
				current.IOR = parseFloat(fields[1])
			}
		case "Pm": // PBR metallic
			if len(fields) == 2 {
				current.Metallic = parseFloat(fields[1])
			}
		case "Pr": // PBR roughness
			if len(fields) == 2 {
				current.Roughness = parseFloat(fields[1])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Log.Error("Error reading material file: ", zap.Error(err))
	}
	return materials
}

// parseColor parses RGB color components from a list of strings to an array of float32.
func parseColor(fields []string) [3]float32 {
	var color [3]float32
	for i, field := range fields {
		if val, err := strconv.ParseFloat(field, 32); err == nil {
			color[i] = float32(val)
		} else {
			logger.Log.Error("Error parsing color component: ", zap.Error(err))
			color[i] = 0.0
		}
	}
	return color
}

// parseFloat parses a single string to a float32.
func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		logger.Log.Error("Error parsing float value: ", zap.Error(err))
		return 0
	}
	return float32(f)
}

func parseFloats(parts []string) ([]float32, error) {
	var values []float32
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid float value %v: %v", part, err)
		}
		values = append(values, float32(val))
	}
	return values, nil
}

func parseFace(parts []string) ([]FaceVertex, error) {
	var face []FaceVertex

	for _, part := range parts {
		vals := strings.Split(part, "/")

		vertexIdx, err := strconv.ParseInt(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %v: %v", vals[0], err)
		}

		var texCoordIdx int32 = -1
		if len(vals) > 1 && vals[1] != "" {
			texIdx, err := strconv.ParseInt(vals[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid texture coordinate index %v: %v", vals[1], err)
			}
			texCoordIdx = int32(texIdx - 1) // .obj indices start at 1, not 0
		}

		var normalIdx int32 = -1
		if len(vals) > 2 && vals[2] != "" {
			normIdx, err := strconv.ParseInt(vals[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid normal index %v: %v", vals[2], err)
			}
			normalIdx = int32(normIdx - 1)
		}

		face = append(face, FaceVertex{
			VertexIdx:   int32(vertexIdx - 1), // .obj indices start at 1, not 0
			TexCoordIdx: texCoordIdx,
			NormalIdx:   normalIdx,
		})
	}

	// Convert quads to triangles; fan-triangulate anything bigger
	if len(face) == 4 {
		return []FaceVertex{face[0], face[1], face[2], face[0], face[2], face[3]}, nil
	} else if len(face) > 4 {
		logger.Log.Warn("Face with more than 4 vertices detected, using fan triangulation",
			zap.Int("vertexCount", len(face)))
		var triangulated []FaceVertex
		for i := 1; i < len(face)-1; i++ {
			triangulated = append(triangulated, face[0], face[i], face[i+1])
		}
		return triangulated, nil
	}
	return face, nil
}
