package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMesh struct {
	indexCount int
	deleted    bool
}

func (m *fakeMesh) Draw(shader.Program) {}
func (m *fakeMesh) IndexCount() int     { return m.indexCount }
func (m *fakeMesh) Delete()             { m.deleted = true }

type fakeUploader struct {
	uploads []renderer.MeshData
	meshes  []*fakeMesh
	err     error
}

func (u *fakeUploader) NewMesh(d renderer.MeshData) (renderer.Mesh, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.uploads = append(u.uploads, d)
	m := &fakeMesh{indexCount: len(d.Indices)}
	u.meshes = append(u.meshes, m)
	return m, nil
}

func ptr[T any](v T) *T { return &v }

// triangleBuffer packs the positions (0,0,0) (1,0,0) (0,1,0) followed by the
// uint16 indices 0 1 2.
func triangleBuffer() []byte {
	var b bytes.Buffer
	for _, f := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		_ = binary.Write(&b, binary.LittleEndian, math.Float32bits(f))
	}
	for _, i := range []uint16{0, 1, 2} {
		_ = binary.Write(&b, binary.LittleEndian, i)
	}
	return b.Bytes()
}

func dataURI(buf []byte) string {
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(buf)
}

func triangleDocument(buf []byte, uri string) gltfDocument {
	return gltfDocument{
		Asset: gltfAsset{Version: "2.0"},
		Meshes: []gltfMesh{{
			Primitives: []gltfPrimitive{{Attributes: map[string]int{"POSITION": 0}, Indices: ptr(1)}},
		}},
		Accessors: []gltfAccessor{
			{BufferView: ptr(0), ComponentType: gltfComponentTypeFloat, Count: 3, Type: gltfAccessorTypeVec3},
			{BufferView: ptr(1), ComponentType: gltfComponentTypeUnsignedShort, Count: 3, Type: gltfAccessorTypeScalar},
		},
		BufferViews: []gltfBufferView{
			{Buffer: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 6},
		},
		Buffers: []gltfBuffer{{URI: uri, ByteLength: len(buf)}},
	}
}

func encode(t *testing.T, doc gltfDocument) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return data
}

// glb wraps a JSON document and binary payload in a GLB container.
func glb(t *testing.T, magic uint32, jsonData, bin []byte) []byte {
	t.Helper()
	pad := func(b []byte, fill byte) []byte {
		for len(b)%4 != 0 {
			b = append(b, fill)
		}
		return b
	}
	jsonData = pad(append([]byte(nil), jsonData...), ' ')
	bin = pad(append([]byte(nil), bin...), 0)

	var out bytes.Buffer
	total := 12 + 8 + len(jsonData) + 8 + len(bin)
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBHeader{Magic: magic, Version: gltfGLBVersion, Length: uint32(total)}))
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonData)), ChunkType: gltfGLBChunkJSON}))
	out.Write(jsonData)
	require.NoError(t, binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN}))
	out.Write(bin)
	return out.Bytes()
}

func vertex(d renderer.MeshData, i int) (pos, normal [3]float32) {
	v := d.Vertices[i*renderer.VertexStride:]
	return [3]float32{v[0], v[1], v[2]}, [3]float32{v[3], v[4], v[5]}
}

func TestNewLoader_NilUploaderPanics(t *testing.T) {
	assert.Panics(t, func() { NewLoader(BackendTypeGLTF, nil) })
}

func TestLoader_LoadReader_GeneratesNormals(t *testing.T) {
	buf := triangleBuffer()
	up := &fakeUploader{}
	l := NewLoader(BackendTypeGLTF, up)

	m, err := l.LoadReader("tri", bytes.NewReader(encode(t, triangleDocument(buf, dataURI(buf)))), false)
	require.NoError(t, err)
	require.Len(t, up.uploads, 1)

	d := up.uploads[0]
	assert.Equal(t, 3, d.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2}, d.Indices)
	for i := range 3 {
		_, n := vertex(d, i)
		assert.InDeltaSlice(t, []float32{0, 0, 1}, n[:], 1e-6)
	}

	assert.Equal(t, "tri", m.Name())
	assert.InDelta(t, 1, m.BoundingRadius(), 1e-6)
	assert.Same(t, m, l.Get("tri"))
}

func TestLoader_LoadReader_CacheHit(t *testing.T) {
	buf := triangleBuffer()
	data := encode(t, triangleDocument(buf, dataURI(buf)))
	up := &fakeUploader{}
	l := NewLoader(BackendTypeGLTF, up)

	first, err := l.LoadReader("tri", bytes.NewReader(data), false)
	require.NoError(t, err)
	second, err := l.LoadReader("tri", bytes.NewReader(nil), false)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, up.uploads, 1)
}

func TestLoader_NodeTransforms(t *testing.T) {
	buf := triangleBuffer()
	doc := triangleDocument(buf, dataURI(buf))
	doc.Scene = ptr(0)
	doc.Scenes = []gltfScene{{Nodes: []int{0}}}
	doc.Nodes = []gltfNode{{Mesh: ptr(0), Translation: &[3]float32{2, 0, 0}, Scale: &[3]float32{2, 2, 2}}}

	up := &fakeUploader{}
	m, err := NewLoader(BackendTypeGLTF, up).LoadReader("scaled", bytes.NewReader(encode(t, doc)), false)
	require.NoError(t, err)

	d := up.uploads[0]
	p, n := vertex(d, 1)
	assert.InDeltaSlice(t, []float32{4, 0, 0}, p[:], 1e-5)
	assert.InDeltaSlice(t, []float32{0, 0, 1}, n[:], 1e-5)
	assert.InDelta(t, 4, m.BoundingRadius(), 1e-5)
}

func TestLoader_NodeHierarchy(t *testing.T) {
	buf := triangleBuffer()
	doc := triangleDocument(buf, dataURI(buf))
	s := float32(math.Sqrt2 / 2)
	doc.Scenes = []gltfScene{{Nodes: []int{0}}}
	doc.Nodes = []gltfNode{
		{Children: []int{1}, Translation: &[3]float32{0, 0, -1}},
		{Mesh: ptr(0), Rotation: &[4]float32{0, 0, s, s}},
	}

	up := &fakeUploader{}
	_, err := NewLoader(BackendTypeGLTF, up).LoadReader("nested", bytes.NewReader(encode(t, doc)), false)
	require.NoError(t, err)

	p, n := vertex(up.uploads[0], 1)
	assert.InDeltaSlice(t, []float32{0, 1, -1}, p[:], 1e-5)
	assert.InDeltaSlice(t, []float32{0, 0, 1}, n[:], 1e-5)
}

func TestLoader_CyclicNodesFail(t *testing.T) {
	buf := triangleBuffer()
	doc := triangleDocument(buf, dataURI(buf))
	doc.Scenes = []gltfScene{{Nodes: []int{0}}}
	doc.Nodes = []gltfNode{{Children: []int{1}}, {Children: []int{0}}}

	_, err := NewLoader(BackendTypeGLTF, &fakeUploader{}).LoadReader("cycle", bytes.NewReader(encode(t, doc)), false)
	assert.ErrorContains(t, err, "hierarchy deeper than")
}

func TestLoader_MissingIndices(t *testing.T) {
	buf := triangleBuffer()
	doc := triangleDocument(buf, dataURI(buf))
	doc.Meshes[0].Primitives[0].Indices = nil

	up := &fakeUploader{}
	_, err := NewLoader(BackendTypeGLTF, up).LoadReader("tri", bytes.NewReader(encode(t, doc)), false)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, up.uploads[0].Indices)
}

func TestLoader_GLB(t *testing.T) {
	buf := triangleBuffer()
	data := glb(t, gltfGLBMagic, encode(t, triangleDocument(buf, "")), buf)

	up := &fakeUploader{}
	_, err := NewLoader(BackendTypeGLTF, up).LoadReader("tri", bytes.NewReader(data), true)
	require.NoError(t, err)
	require.Len(t, up.uploads, 1)
	assert.Equal(t, 3, up.uploads[0].VertexCount())
}

func TestLoader_Load_FromDisk(t *testing.T) {
	dir := t.TempDir()
	buf := triangleBuffer()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.bin"), buf, 0o644))
	path := filepath.Join(dir, "tri.gltf")
	require.NoError(t, os.WriteFile(path, encode(t, triangleDocument(buf, "tri.bin")), 0o644))

	up := &fakeUploader{}
	l := NewLoader(BackendTypeGLTF, up)
	m, err := l.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tri", m.Name())
	assert.Same(t, m, l.Get(path))

	again, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, m, again)
	assert.Len(t, up.uploads, 1)
	assert.Len(t, l.Models(), 1)
}

func TestLoader_Load_UnsupportedFormat(t *testing.T) {
	up := &fakeUploader{}
	_, err := NewLoader(BackendTypeGLTF, up).Load("model.obj")
	assert.ErrorContains(t, err, "unsupported model format")
	assert.Empty(t, up.uploads)
}

func TestLoader_Errors(t *testing.T) {
	buf := triangleBuffer()
	tests := []struct {
		name    string
		mutate  func(*gltfDocument)
		wantErr error
		wantMsg string
	}{
		{
			name:    "gltf 1.0",
			mutate:  func(d *gltfDocument) { d.Asset.Version = "1.0" },
			wantErr: errInvalidGLTFVersion,
		},
		{
			name:    "required extension",
			mutate:  func(d *gltfDocument) { d.ExtensionsRequired = []string{"KHR_draco_mesh_compression"} },
			wantMsg: "KHR_draco_mesh_compression",
		},
		{
			name:    "accessor past buffer end",
			mutate:  func(d *gltfDocument) { d.Accessors[0].Count = 10 },
			wantErr: errAccessorBounds,
		},
		{
			name:    "line primitive",
			mutate:  func(d *gltfDocument) { d.Meshes[0].Primitives[0].Mode = ptr(1) },
			wantMsg: "unsupported primitive mode",
		},
		{
			name:    "no position",
			mutate:  func(d *gltfDocument) { d.Meshes[0].Primitives[0].Attributes = map[string]int{"NORMAL": 0} },
			wantMsg: "no POSITION attribute",
		},
		{
			name:    "plain data uri",
			mutate:  func(d *gltfDocument) { d.Buffers[0].URI = "data:application/octet-stream,AAAA" },
			wantMsg: "unsupported data URI encoding",
		},
		{
			name:    "short buffer",
			mutate:  func(d *gltfDocument) { d.Buffers[0].ByteLength = len(buf) + 4 },
			wantErr: errBufferSizeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDocument(buf, dataURI(buf))
			tt.mutate(&doc)

			up := &fakeUploader{}
			l := NewLoader(BackendTypeGLTF, up)
			_, err := l.LoadReader("bad", bytes.NewReader(encode(t, doc)), false)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
			assert.Empty(t, up.uploads)
			assert.Nil(t, l.Get("bad"))
		})
	}
}

func TestLoader_InvalidGLBMagic(t *testing.T) {
	buf := triangleBuffer()
	data := glb(t, 0x12345678, encode(t, triangleDocument(buf, "")), buf)

	_, err := NewLoader(BackendTypeGLTF, &fakeUploader{}).LoadReader("tri", bytes.NewReader(data), true)
	assert.ErrorIs(t, err, errInvalidGLBMagic)
}

func TestLoader_UploadError(t *testing.T) {
	buf := triangleBuffer()
	up := &fakeUploader{err: errors.New("no context")}
	l := NewLoader(BackendTypeGLTF, up)

	_, err := l.LoadReader("tri", bytes.NewReader(encode(t, triangleDocument(buf, dataURI(buf)))), false)
	assert.ErrorContains(t, err, "no context")
	assert.Nil(t, l.Get("tri"))
}

func TestWithModel(t *testing.T) {
	buf := triangleBuffer()
	up := &fakeUploader{}
	seed, err := NewLoader(BackendTypeGLTF, up).LoadReader("tri", bytes.NewReader(encode(t, triangleDocument(buf, dataURI(buf)))), false)
	require.NoError(t, err)

	l := NewLoader(BackendTypeGLTF, up, WithModel("cube", seed))
	assert.Same(t, seed, l.Get("cube"))

	models := l.Models()
	delete(models, "cube")
	assert.NotNil(t, l.Get("cube"))
}

func TestGenerateNormals_SharedVertices(t *testing.T) {
	// two triangles folded along the x axis share vertices 0 and 1
	positions := toVec3s([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
	normals := generateNormals(positions, []uint32{0, 1, 2, 1, 0, 3})

	assert.InDeltaSlice(t, []float32{0, 0, 1}, normals[2][:], 1e-6)
	assert.InDeltaSlice(t, []float32{0, 1, 0}, normals[3][:], 1e-6)
	s := float32(math.Sqrt2 / 2)
	assert.InDeltaSlice(t, []float32{0, s, s}, normals[0][:], 1e-6)
}

func TestDecodeDataURI(t *testing.T) {
	got, err := decodeDataURI("data:application/gltf-buffer;base64," + base64.StdEncoding.EncodeToString([]byte("oxy")))
	require.NoError(t, err)
	assert.Equal(t, []byte("oxy"), got)

	_, err = decodeDataURI("data:no-comma")
	assert.ErrorIs(t, err, errInvalidBufferURI)
}

func TestLoader_StoreKeepsFirstCachedModel(t *testing.T) {
	buf := triangleBuffer()
	up := &fakeUploader{}
	l := NewLoader(BackendTypeGLTF, up).(*loader)

	data, err := newGLTFLoaderBackend().LoadReader(bytes.NewReader(encode(t, triangleDocument(buf, dataURI(buf)))), false)
	require.NoError(t, err)

	first, err := l.store("tri", "tri", data)
	require.NoError(t, err)
	second, err := l.store("tri", "tri", data)
	require.NoError(t, err)

	assert.Same(t, first, second)
	require.Len(t, up.meshes, 2)
	assert.False(t, up.meshes[0].deleted)
	assert.True(t, up.meshes[1].deleted)
	assert.Len(t, l.Models(), 1)
}
