package geometry

import (
	"math"

	"github.com/dlumiere/wisp-tracer/pkg/core"
)

// Mat3 is a row-major 3x3 matrix used for the linear part of a node
// transform (rotation + scale), per §3 "affine transform".
type Mat3 struct {
	M [3][3]float64
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	var m Mat3
	m.M[0][0], m.M[1][1], m.M[2][2] = 1, 1, 1
	return m
}

func (m Mat3) MulVec(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		m.M[0][0]*v.X+m.M[0][1]*v.Y+m.M[0][2]*v.Z,
		m.M[1][0]*v.X+m.M[1][1]*v.Y+m.M[1][2]*v.Z,
		m.M[2][0]*v.X+m.M[2][1]*v.Y+m.M[2][2]*v.Z,
	)
}

func (m Mat3) Transpose() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[j][i] = m.M[i][j]
		}
	}
	return r
}

func (a Mat3) Mul(b Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				sum += a.M[i][k] * b.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// Inverse computes the matrix inverse via the cofactor/adjugate method.
// Node transforms built from the RotateX/Y/Z/Scale/Translate constructors
// below are always invertible in practice; a degenerate (zero-determinant)
// matrix returns the identity rather than dividing by zero.
func (m Mat3) Inverse() Mat3 {
	a, b, c := m.M[0][0], m.M[0][1], m.M[0][2]
	d, e, f := m.M[1][0], m.M[1][1], m.M[1][2]
	g, h, i := m.M[2][0], m.M[2][1], m.M[2][2]

	A := e*i - f*h
	B := -(d*i - f*g)
	C := d*h - e*g
	det := a*A + b*B + c*C
	if math.Abs(det) < 1e-18 {
		return Identity3()
	}
	invDet := 1.0 / det

	D := -(b*i - c*h)
	E := a*i - c*g
	F := -(a*h - b*g)
	G := b*f - c*e
	H := -(a*f - c*d)
	I := a*e - b*d

	var r Mat3
	r.M[0][0], r.M[0][1], r.M[0][2] = A*invDet, D*invDet, G*invDet
	r.M[1][0], r.M[1][1], r.M[1][2] = B*invDet, E*invDet, H*invDet
	r.M[2][0], r.M[2][1], r.M[2][2] = C*invDet, F*invDet, I*invDet
	return r
}

// Transform is a node's local affine transform, plus the cached inverse and
// normal matrix needed by TransformNormal without recomputing an inverse per
// hit (§3 "cached inverse and normal matrix").
type Transform struct {
	Linear      Mat3
	Translation core.Vec3

	inverseLinear Mat3
	normalMatrix  Mat3
}

// NewTransform builds a Transform from a linear part and translation,
// precomputing the inverse and normal matrix once at construction time.
func NewTransform(linear Mat3, translation core.Vec3) Transform {
	inv := linear.Inverse()
	return Transform{
		Linear:        linear,
		Translation:   translation,
		inverseLinear: inv,
		normalMatrix:  inv.Transpose(),
	}
}

// IdentityTransform returns the identity affine transform.
func IdentityTransform() Transform {
	return NewTransform(Identity3(), core.NewVec3(0, 0, 0))
}

func Translate(t core.Vec3) Transform {
	return NewTransform(Identity3(), t)
}

func Scale(sx, sy, sz float64) Transform {
	m := Identity3()
	m.M[0][0], m.M[1][1], m.M[2][2] = sx, sy, sz
	return NewTransform(m, core.NewVec3(0, 0, 0))
}

func RotateX(radians float64) Transform {
	m := Identity3()
	c, s := math.Cos(radians), math.Sin(radians)
	m.M[1][1], m.M[1][2] = c, -s
	m.M[2][1], m.M[2][2] = s, c
	return NewTransform(m, core.NewVec3(0, 0, 0))
}

func RotateY(radians float64) Transform {
	m := Identity3()
	c, s := math.Cos(radians), math.Sin(radians)
	m.M[0][0], m.M[0][2] = c, s
	m.M[2][0], m.M[2][2] = -s, c
	return NewTransform(m, core.NewVec3(0, 0, 0))
}

func RotateZ(radians float64) Transform {
	m := Identity3()
	c, s := math.Cos(radians), math.Sin(radians)
	m.M[0][0], m.M[0][1] = c, -s
	m.M[1][0], m.M[1][1] = s, c
	return NewTransform(m, core.NewVec3(0, 0, 0))
}

// TransformPoint maps a local point to its parent-space position.
func (t Transform) TransformPoint(p core.Vec3) core.Vec3 {
	return t.Linear.MulVec(p).Add(t.Translation)
}

// TransformDirection maps a local direction to parent space without
// renormalizing, so non-uniform scale changes the ray's effective speed
// exactly as the local-space intersection math expects (§4.3, "do not
// renormalize a ray direction when pushing it down into child space").
func (t Transform) TransformDirection(d core.Vec3) core.Vec3 {
	return t.Linear.MulVec(d)
}

// InverseTransformPoint maps a parent-space point back into local space.
func (t Transform) InverseTransformPoint(p core.Vec3) core.Vec3 {
	return t.inverseLinear.MulVec(p.Subtract(t.Translation))
}

// InverseTransformDirection maps a parent-space direction back into local
// space without renormalizing.
func (t Transform) InverseTransformDirection(d core.Vec3) core.Vec3 {
	return t.inverseLinear.MulVec(d)
}

// TransformNormal maps a local-space normal to parent space using the
// transpose of the inverse linear part, then renormalizes — the standard
// rule for transforming normals under non-uniform scale.
func (t Transform) TransformNormal(n core.Vec3) core.Vec3 {
	return t.normalMatrix.MulVec(n).Normalize()
}

// Compose returns the transform equivalent to applying `child` first
// then `parent`, i.e. parent ∘ child, used to fold a root-to-leaf chain of node
// transforms into one accumulated transform (§4.3).
func (parent Transform) Compose(child Transform) Transform {
	linear := parent.Linear.Mul(child.Linear)
	translation := parent.Linear.MulVec(child.Translation).Add(parent.Translation)
	return NewTransform(linear, translation)
}

// Node is one entry in the scene graph: a local transform, an optional
// shape (leaf geometry) referencing a material by index into the scene's
// flat material table, and child nodes (§3 "scene graph"). MaterialIndex
// is an index rather than a direct *material.Dielectric pointer so this
// package never has to import pkg/material, which itself depends on
// geometry.HitRecord.
type Node struct {
	Transform     Transform
	Shape         Shape
	MaterialIndex int
	Name          string
	Children      []*Node
}

// NewNode creates a transform-only grouping node with no geometry.
func NewNode(name string, transform Transform) *Node {
	return &Node{Name: name, Transform: transform, MaterialIndex: -1}
}

// NewLeaf creates a node carrying a shape and the index of the material it
// is shaded with.
func NewLeaf(name string, transform Transform, shape Shape, materialIndex int) *Node {
	return &Node{Name: name, Transform: transform, Shape: shape, MaterialIndex: materialIndex}
}

func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}
