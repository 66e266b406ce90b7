package loaders

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/dlumiere/wisp-tracer/pkg/core"
	"github.com/dlumiere/wisp-tracer/pkg/geometry"
)

// LoadMeshGLTF reads the first mesh primitive it finds in a glTF/GLB
// document into a geometry.TriangleMesh: vertex positions, optional
// per-vertex normals and UVs, and the flattened face index list (§4.12).
// Grounded in mrigankad-gorenderengine/scene/gltf_loader.go's
// modeler.ReadPosition/ReadNormal/ReadTextureCoord/ReadIndices call shape,
// narrowed to a single mesh since the scene graph's node hierarchy and
// transforms are described by the YAML scene document instead of the
// glTF node tree.
func LoadMeshGLTF(path string) (*geometry.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, fmt.Errorf("gltf %q: no mesh primitives", path)
	}
	prim := doc.Meshes[0].Primitives[0]

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("gltf %q: primitive has no POSITION attribute", path)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("gltf %q: positions: %w", path, err)
	}

	vertices := make([]core.Vec3, len(positions))
	for i, p := range positions {
		vertices[i] = core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
	}

	var normals []core.Vec3
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		raw, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("gltf %q: normals: %w", path, err)
		}
		normals = make([]core.Vec3, len(raw))
		for i, n := range raw {
			normals[i] = core.NewVec3(float64(n[0]), float64(n[1]), float64(n[2]))
		}
	}

	var uvs []core.Vec2
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		raw, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return nil, fmt.Errorf("gltf %q: texcoords: %w", path, err)
		}
		uvs = make([]core.Vec2, len(raw))
		for i, uv := range raw {
			uvs[i] = core.Vec2{X: float64(uv[0]), Y: float64(uv[1])}
		}
	}

	if prim.Indices == nil {
		return nil, fmt.Errorf("gltf %q: primitive has no index buffer", path)
	}
	rawIndices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return nil, fmt.Errorf("gltf %q: indices: %w", path, err)
	}
	faces := make([]int32, len(rawIndices))
	for i, idx := range rawIndices {
		faces[i] = int32(idx)
	}

	return geometry.NewTriangleMesh(vertices, faces, normals, uvs), nil
}
