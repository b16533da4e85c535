package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is one element of an asset hierarchy: a named transform that may carry
// a mesh with one material (or several, for multi-material sub-meshes) and
// any number of children.
type Node struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4 // Transformation matrix - used every frame
	Position    mgl32.Vec3 // Position in world space
	Scale       mgl32.Vec3 // Scale factors
	Rotation    mgl32.Quat // Rotation quaternion
	Mesh        *Mesh      // Geometry, shared across clones
	Material    *Material  // Primary material
	IsDirty     bool       // Needs matrix recalculation

	// COLD DATA
	Name      string      // Node name (drives gem/metal classification)
	Materials []*Material // Extra materials for multi-material meshes
	Children  []*Node
}

// NewNode creates a named node with identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Position: mgl32.Vec3{0, 0, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.QuatIdent(),
	}
}

func (n *Node) SetPosition(x, y, z float32) {
	n.Position = mgl32.Vec3{x, y, z}
	n.updateModelMatrix()
	n.IsDirty = true
}

func (n *Node) SetScale(x, y, z float32) {
	n.Scale = mgl32.Vec3{x, y, z}
	n.updateModelMatrix()
	n.IsDirty = true
}

func (n *Node) Rotate(angleX, angleY, angleZ float32) {
	if n.Rotation == (mgl32.Quat{}) {
		n.Rotation = mgl32.QuatIdent()
	}
	rotationX := mgl32.QuatRotate(mgl32.DegToRad(angleX), mgl32.Vec3{1, 0, 0})
	rotationY := mgl32.QuatRotate(mgl32.DegToRad(angleY), mgl32.Vec3{0, 1, 0})
	rotationZ := mgl32.QuatRotate(mgl32.DegToRad(angleZ), mgl32.Vec3{0, 0, 1})
	n.Rotation = n.Rotation.Mul(rotationX).Mul(rotationY).Mul(rotationZ)
	n.updateModelMatrix()
	n.IsDirty = true
}

func (n *Node) updateModelMatrix() {
	// ModelMatrix = translation * rotation * scale (TRS order)
	scaleMatrix := mgl32.Scale3D(n.Scale[0], n.Scale[1], n.Scale[2])
	rotationMatrix := n.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(n.Position[0], n.Position[1], n.Position[2])
	n.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Walk visits n and every descendant in depth-first order. Returning false
// from the visitor stops the walk.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(visit) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the hierarchy. Meshes are shared
// (geometry is never duplicated) and material pointers are carried over as
// placeholders; replacing a clone's material never touches the source.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		ModelMatrix: n.ModelMatrix,
		Position:    n.Position,
		Scale:       n.Scale,
		Rotation:    n.Rotation,
		Mesh:        n.Mesh, // shared
		Material:    n.Material,
		Name:        n.Name,
	}
	if len(n.Materials) > 0 {
		clone.Materials = append([]*Material(nil), n.Materials...)
	}
	for _, child := range n.Children {
		clone.Children = append(clone.Children, child.Clone())
	}
	return clone
}

// CountMeshes returns the number of nodes in the hierarchy carrying geometry.
func (n *Node) CountMeshes() int {
	count := 0
	n.Walk(func(node *Node) bool {
		if node.Mesh != nil {
			count++
		}
		return true
	})
	return count
}
