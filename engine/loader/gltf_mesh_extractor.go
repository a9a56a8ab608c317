package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor flattens the meshes of a parsed document into a single
// position/normal mesh.
type gltfMeshExtractor interface {
	// Extract walks the default scene, bakes every node's world transform into
	// its primitives and concatenates them. Documents without scenes contribute
	// each mesh once, untransformed.
	//
	// Returns:
	//   - renderer.MeshData: the combined geometry
	//   - error: error if a primitive cannot be read
	Extract() (renderer.MeshData, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) Extract() (renderer.MeshData, error) {
	doc := e.parser.Document()
	if doc == nil {
		return renderer.MeshData{}, fmt.Errorf("no document loaded")
	}

	var out renderer.MeshData
	if len(doc.Scenes) == 0 {
		for i := range doc.Meshes {
			if err := e.appendMesh(&out, i, mgl32.Ident4()); err != nil {
				return renderer.MeshData{}, err
			}
		}
		return out, nil
	}

	sceneIndex := 0
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if sceneIndex < 0 || sceneIndex >= len(doc.Scenes) {
		return renderer.MeshData{}, fmt.Errorf("scene index %d out of range", sceneIndex)
	}
	for _, root := range doc.Scenes[sceneIndex].Nodes {
		if err := e.appendNode(&out, root, mgl32.Ident4(), 0); err != nil {
			return renderer.MeshData{}, err
		}
	}
	return out, nil
}

// maxNodeDepth bounds the hierarchy walk so cyclic documents fail instead of recursing forever.
const maxNodeDepth = 64

func (e *gltfMeshExtractorImpl) appendNode(out *renderer.MeshData, nodeIndex int, parent mgl32.Mat4, depth int) error {
	doc := e.parser.Document()
	if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIndex)
	}
	if depth > maxNodeDepth {
		return fmt.Errorf("node %d: hierarchy deeper than %d", nodeIndex, maxNodeDepth)
	}

	node := &doc.Nodes[nodeIndex]
	world := parent.Mul4(gltfNodeLocalMatrix(node))
	if node.Mesh != nil {
		if err := e.appendMesh(out, *node.Mesh, world); err != nil {
			return fmt.Errorf("node %d: %w", nodeIndex, err)
		}
	}
	for _, child := range node.Children {
		if err := e.appendNode(out, child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *gltfMeshExtractorImpl) appendMesh(out *renderer.MeshData, meshIndex int, world mgl32.Mat4) error {
	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIndex)
	}
	mesh := &doc.Meshes[meshIndex]
	normalMatrix := common.NormalMatrix(world)

	for primIdx := range mesh.Primitives {
		positions, normals, indices, err := e.extractPrimitive(&mesh.Primitives[primIdx])
		if err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}

		base := uint32(out.VertexCount())
		for i, pos := range positions {
			p := common.TransformPoint(world, pos)
			n := normalMatrix.Mul3x1(normals[i])
			if n.Len() > 1e-6 {
				n = n.Normalize()
			}
			out.Vertices = append(out.Vertices, p.X(), p.Y(), p.Z(), n.X(), n.Y(), n.Z())
		}
		for _, idx := range indices {
			out.Indices = append(out.Indices, base+idx)
		}
	}
	return nil
}

// extractPrimitive reads one triangle-list primitive. Missing indices become a
// sequential list and missing normals are generated from the triangles.
func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive) ([]mgl32.Vec3, []mgl32.Vec3, []uint32, error) {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return nil, nil, nil, fmt.Errorf("unsupported primitive mode: %d (only triangles supported)", *prim.Mode)
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, nil, nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	raw, err := e.parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read positions: %w", err)
	}
	positions := toVec3s(raw)

	var indices []uint32
	if prim.Indices != nil {
		indices, err = e.parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return nil, nil, nil, fmt.Errorf("%d indices do not form triangles", len(indices))
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return nil, nil, nil, fmt.Errorf("index %d out of range (%d vertices)", idx, len(positions))
		}
	}

	var normals []mgl32.Vec3
	if normalAccessor, ok := prim.Attributes["NORMAL"]; ok {
		raw, err := e.parser.ReadVec3Accessor(normalAccessor)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read normals: %w", err)
		}
		if len(raw) != len(positions) {
			return nil, nil, nil, fmt.Errorf("%d normals for %d positions", len(raw), len(positions))
		}
		normals = toVec3s(raw)
	} else {
		normals = generateNormals(positions, indices)
	}
	return positions, normals, indices, nil
}

// gltfNodeLocalMatrix returns the node's matrix, or T * R * S when it has none.
func gltfNodeLocalMatrix(node *gltfNode) mgl32.Mat4 {
	if node.Matrix != nil {
		return mgl32.Mat4(*node.Matrix)
	}
	m := mgl32.Ident4()
	if t := node.Translation; t != nil {
		m = m.Mul4(mgl32.Translate3D(t[0], t[1], t[2]))
	}
	if r := node.Rotation; r != nil {
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if s := node.Scale; s != nil {
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}

func toVec3s(raw [][3]float32) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(raw))
	for i, v := range raw {
		out[i] = mgl32.Vec3(v)
	}
	return out
}

// generateNormals computes smooth vertex normals by accumulating the area-weighted
// face normal of every triangle onto its three vertices. Vertices touched by no
// non-degenerate triangle get +Y.
func generateNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	accum := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[i0], positions[i1], positions[i2]

		// length proportional to triangle area
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		accum[i0] = accum[i0].Add(face)
		accum[i1] = accum[i1].Add(face)
		accum[i2] = accum[i2].Add(face)
	}

	for i, n := range accum {
		if n.Len() < 1e-6 {
			accum[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		accum[i] = n.Normalize()
	}
	return accum
}

// boundingRadius returns the distance from the origin to the farthest vertex.
func boundingRadius(d renderer.MeshData) float32 {
	var r float32
	for i := 0; i+2 < len(d.Vertices); i += renderer.VertexStride {
		p := mgl32.Vec3{d.Vertices[i], d.Vertices[i+1], d.Vertices[i+2]}
		r = max(r, p.Len())
	}
	return r
}
