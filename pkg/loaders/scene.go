// Package loaders parses external scene descriptions into the in-memory
// types the ray/path tracing core operates on: a YAML scene document
// (§4.11), glTF mesh geometry (§4.12), and PNG/JPEG/BMP texture images
// (§4.13). Grounded in the teacher's pkg/loaders package (file-backed,
// fmt.Errorf-wrapped loaders returning a concrete struct), generalized
// from the teacher's PBRT/PLY formats to YAML/glTF per SPEC_FULL.md.
package loaders

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/geometry"
	"github.com/dlumiere/wisp-tracer/pkg/integrator"
	"github.com/dlumiere/wisp-tracer/pkg/lights"
	"github.com/dlumiere/wisp-tracer/pkg/material"
)

// Scene is the concrete, loaded scene graph: the camera, a flat material
// table indexed by geometry.Node.MaterialIndex, the light list, the
// environment background, and the root of the transform hierarchy. It
// implements integrator.Scene. It lives here rather than in pkg/geometry
// so that geometry need not import pkg/material/pkg/lights (see the
// acyclic-dependency note on material.ShadingContext).
type Scene struct {
	Camera      *geometry.Camera
	root        *geometry.Node
	materials   []*material.Dielectric
	lightList   []lights.Light
	environment core.Vec3
}

func (s *Scene) Root() *geometry.Node                   { return s.root }
func (s *Scene) Lights() []lights.Light                 { return s.lightList }
func (s *Scene) Environment(ray core.Ray) core.Vec3     { return s.environment }
func (s *Scene) Material(index int) *material.Dielectric {
	if index < 0 || index >= len(s.materials) {
		return nil
	}
	return s.materials[index]
}

var _ integrator.Scene = (*Scene)(nil)

// sceneDoc mirrors the YAML document shape one-to-one before it is
// resolved into the Scene's concrete types, following the teacher's
// shaderConfig pattern of a plain intermediate struct validated and
// converted field by field.
type sceneDoc struct {
	Camera      cameraDoc    `yaml:"camera"`
	Environment []float64    `yaml:"environment"`
	Materials   []materialDoc `yaml:"materials"`
	Lights      []lightDoc   `yaml:"lights"`
	Nodes       []nodeDoc    `yaml:"nodes"`
}

type cameraDoc struct {
	LookFrom  []float64 `yaml:"look_from"`
	LookAt    []float64 `yaml:"look_at"`
	Up        []float64 `yaml:"up"`
	FovY      float64   `yaml:"fov_y"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	FocalDist float64   `yaml:"focal_dist"`
	Aperture  float64   `yaml:"aperture"`
}

type materialDoc struct {
	Name          string    `yaml:"name"`
	Diffuse       []float64 `yaml:"diffuse"`
	Specular      []float64 `yaml:"specular"`
	Transmission  []float64 `yaml:"transmission"`
	Glossiness    float64   `yaml:"glossiness"`
	Reflection    float64   `yaml:"reflection"`
	Refraction    float64   `yaml:"refraction"`
	IOR           float64   `yaml:"ior"`
	Absorption    []float64 `yaml:"absorption"`
	DiffuseTex    string    `yaml:"diffuse_texture"`
}

type lightDoc struct {
	Type      string    `yaml:"type"` // "ambient" | "directional" | "sphere"
	Color     []float64 `yaml:"color"`
	Direction []float64 `yaml:"direction"`
	Center    []float64 `yaml:"center"`
	Radius    float64   `yaml:"radius"`
}

type nodeDoc struct {
	Name      string      `yaml:"name"`
	Shape     string      `yaml:"shape"` // "sphere" | "plane" | "mesh"
	MeshFile  string      `yaml:"mesh_file"`
	Material  string      `yaml:"material"`
	Translate []float64   `yaml:"translate"`
	Rotate    []float64   `yaml:"rotate"` // degrees, applied X then Y then Z
	Scale     []float64   `yaml:"scale"`
	Children  []nodeDoc   `yaml:"children"`
}

// LoadScene parses a YAML scene document into a ready-to-render Scene
// (§4.11).
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}

	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene %q: %w", path, err)
	}

	return buildScene(doc)
}

func buildScene(doc sceneDoc) (*Scene, error) {
	camera, err := buildCamera(doc.Camera)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	materialIndex := make(map[string]int, len(doc.Materials))
	materials := make([]*material.Dielectric, 0, len(doc.Materials))
	for _, m := range doc.Materials {
		mat, err := buildMaterial(m)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", m.Name, err)
		}
		materialIndex[m.Name] = len(materials)
		materials = append(materials, mat)
	}

	lightList := make([]lights.Light, 0, len(doc.Lights))
	for i, l := range doc.Lights {
		light, err := buildLight(l)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		lightList = append(lightList, light)
	}

	root := geometry.NewNode("root", geometry.IdentityTransform())
	for _, n := range doc.Nodes {
		child, err := buildNode(n, materialIndex)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name, err)
		}
		root.AddChild(child)
	}

	return &Scene{
		Camera:      camera,
		root:        root,
		materials:   materials,
		lightList:   lightList,
		environment: vec3Or(doc.Environment, core.Vec3{}),
	}, nil
}

func buildCamera(c cameraDoc) (*geometry.Camera, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	lookFrom, err := vec3(c.LookFrom)
	if err != nil {
		return nil, fmt.Errorf("look_from: %w", err)
	}
	lookAt, err := vec3(c.LookAt)
	if err != nil {
		return nil, fmt.Errorf("look_at: %w", err)
	}
	up := vec3Or(c.Up, core.NewVec3(0, 1, 0))

	focalDist := c.FocalDist
	if focalDist <= 0 {
		focalDist = lookFrom.Subtract(lookAt).Length()
	}
	fovY := c.FovY
	if fovY <= 0 {
		fovY = 40
	}

	return geometry.NewCamera(lookFrom, lookAt, up, degreesToRadians(fovY), c.Width, c.Height, focalDist, c.Aperture/2), nil
}

func buildMaterial(m materialDoc) (*material.Dielectric, error) {
	diffuse := vec3Or(m.Diffuse, core.Vec3{})
	specular := vec3Or(m.Specular, core.Vec3{})
	transmission := vec3Or(m.Transmission, core.Vec3{})
	absorption := vec3Or(m.Absorption, core.Vec3{})

	glossiness := m.Glossiness
	if glossiness <= 0 {
		glossiness = 1
	}
	ior := m.IOR
	if ior <= 0 {
		ior = 1
	}

	var diffuseTex material.Texture = material.NewSolidColor(diffuse)
	if m.DiffuseTex != "" {
		tex, err := LoadTexture(m.DiffuseTex)
		if err != nil {
			return nil, fmt.Errorf("diffuse_texture: %w", err)
		}
		diffuseTex = tex
	}

	return material.NewDielectric(
		diffuseTex,
		material.NewSolidColor(specular),
		material.NewSolidColor(transmission),
		glossiness, m.Reflection, m.Refraction, ior, absorption,
	), nil
}

func buildLight(l lightDoc) (lights.Light, error) {
	switch l.Type {
	case "ambient":
		return lights.NewAmbientLight(vec3Or(l.Color, core.Vec3{})), nil
	case "directional":
		direction, err := vec3(l.Direction)
		if err != nil {
			return nil, fmt.Errorf("direction: %w", err)
		}
		return lights.NewDirectionalLight(direction, vec3Or(l.Color, core.Vec3{})), nil
	case "sphere":
		center, err := vec3(l.Center)
		if err != nil {
			return nil, fmt.Errorf("center: %w", err)
		}
		if l.Radius <= 0 {
			return nil, fmt.Errorf("radius must be positive, got %v", l.Radius)
		}
		return lights.NewSphereLight(center, l.Radius, vec3Or(l.Color, core.Vec3{})), nil
	default:
		return nil, fmt.Errorf("unsupported light type %q", l.Type)
	}
}

func buildNode(n nodeDoc, materialIndex map[string]int) (*geometry.Node, error) {
	transform := nodeTransform(n)

	if n.Shape == "" {
		node := geometry.NewNode(n.Name, transform)
		for _, c := range n.Children {
			child, err := buildNode(c, materialIndex)
			if err != nil {
				return nil, err
			}
			node.AddChild(child)
		}
		return node, nil
	}

	matIdx, ok := materialIndex[n.Material]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", n.Material)
	}

	shape, err := buildShape(n)
	if err != nil {
		return nil, err
	}

	node := geometry.NewLeaf(n.Name, transform, shape, matIdx)
	for _, c := range n.Children {
		child, err := buildNode(c, materialIndex)
		if err != nil {
			return nil, err
		}
		node.AddChild(child)
	}
	return node, nil
}

func buildShape(n nodeDoc) (geometry.Shape, error) {
	switch n.Shape {
	case "sphere":
		return geometry.NewSphere(), nil
	case "plane":
		return geometry.NewPlane(), nil
	case "mesh":
		if n.MeshFile == "" {
			return nil, fmt.Errorf("mesh node missing mesh_file")
		}
		return LoadMeshGLTF(n.MeshFile)
	default:
		return nil, fmt.Errorf("unsupported shape %q", n.Shape)
	}
}

func nodeTransform(n nodeDoc) geometry.Transform {
	t := geometry.IdentityTransform()
	if len(n.Scale) == 3 {
		t = geometry.Scale(n.Scale[0], n.Scale[1], n.Scale[2]).Compose(t)
	}
	if len(n.Rotate) == 3 {
		t = geometry.RotateX(degreesToRadians(n.Rotate[0])).Compose(t)
		t = geometry.RotateY(degreesToRadians(n.Rotate[1])).Compose(t)
		t = geometry.RotateZ(degreesToRadians(n.Rotate[2])).Compose(t)
	}
	if len(n.Translate) == 3 {
		tr, _ := vec3(n.Translate)
		t = geometry.Translate(tr).Compose(t)
	}
	return t
}

func vec3(v []float64) (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func vec3Or(v []float64, fallback core.Vec3) core.Vec3 {
	if c, err := vec3(v); err == nil {
		return c
	}
	return fallback
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
