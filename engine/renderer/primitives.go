package renderer

// CubeBoundingRadius is the radius of the sphere enclosing CubeMesh.
const CubeBoundingRadius float32 = 0.8660254

// CubeMesh returns a unit cube centred on the origin with per-face normals:
// 24 vertices and 36 indices. All outward faces wind counter-clockwise.
//
// Returns:
//   - MeshData: the cube geometry
func CubeMesh() MeshData {
	type face struct {
		positions [4][3]float32
		normal    [3]float32
	}

	faces := []face{
		// +X
		{positions: [4][3]float32{{0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5}}, normal: [3]float32{1, 0, 0}},
		// -X
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}, {-0.5, -0.5, -0.5}}, normal: [3]float32{-1, 0, 0}},
		// +Y
		{positions: [4][3]float32{{-0.5, 0.5, -0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}}, normal: [3]float32{0, 1, 0}},
		// -Y
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}}, normal: [3]float32{0, -1, 0}},
		// +Z
		{positions: [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}, normal: [3]float32{0, 0, 1}},
		// -Z
		{positions: [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, normal: [3]float32{0, 0, -1}},
	}

	data := MeshData{
		Vertices: make([]float32, 0, 24*VertexStride),
		Indices:  make([]uint32, 0, 36),
	}
	for fi, f := range faces {
		for _, p := range f.positions {
			data.Vertices = append(data.Vertices, p[0], p[1], p[2], f.normal[0], f.normal[1], f.normal[2])
		}
		base := uint32(fi * 4)
		data.Indices = append(data.Indices,
			base+0, base+1, base+2,
			base+0, base+2, base+3,
		)
	}
	return data
}
