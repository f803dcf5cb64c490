package wavefront

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/objloader/asset"
)

const triangleAndBoxObj = `# Blender v2.76 (sub 0) OBJ File: ''
# www.blender.org
mtllib triangle_and_box.mtl
o Triangle
v 1.407288 0.638664 -1.179823
v 1.407288 0.638664 -3.179823
v 3.407288 0.638664 -3.179823
vn 0.000000 -1.000000 0.000000
usemtl Red
s off
f 2//1 3//1 1//1
o Cube
v 1.000905 0.018270 -1.120729
v 1.000905 0.018270 0.879271
v -0.999095 0.018270 0.879271
v -0.999095 0.018270 -1.120729
vt 0.0 0.0
vt 1.0 0.0
vn 0.000000 -1.000000 -0.000000
vn 0.000000 1.000000 0.000000
usemtl Blue
f 4/1/2 5/2/2 6/1/2 7/2/2
f 4/1/3 -1/-1/-1 6/2/3
`

const triangleAndBoxMtl = `
newmtl Red
Kd 1 0 0
newmtl Blue
Kd 0 0 1
illum 1
`

// A loader double serving files from memory.
type memLoader struct {
	files    map[string]string
	requests []string
}

func (l *memLoader) LoadText(fullPath string) (string, error) {
	l.requests = append(l.requests, fullPath)
	text, exists := l.files[fullPath]
	if !exists {
		return "", fmt.Errorf("no such file: %s", fullPath)
	}
	return text, nil
}

func newMemLoader(files map[string]string) *memLoader {
	return &memLoader{files: files}
}

// Verify that face indices point inside the coordinate lists of the shape
// that owns them and not into the global lists of the file.
func verifyLocalFaceIndices(t *testing.T, shape *Shape) {
	for faceIndex, face := range shape.Faces {
		for _, vi := range face {
			if vi.V < 0 || vi.V >= len(shape.Vertices) {
				t.Fatalf("shape %q face %d: vertex index %d out of range [0, %d)", shape.Name, faceIndex, vi.V, len(shape.Vertices))
			}
			if vi.HasNormal() && (vi.N < 0 || vi.N >= len(shape.Normals)) {
				t.Fatalf("shape %q face %d: normal index %d out of range [0, %d)", shape.Name, faceIndex, vi.N, len(shape.Normals))
			}
			if vi.HasTextureCoord() && (vi.T < 0 || vi.T >= len(shape.TextureCoords)) {
				t.Fatalf("shape %q face %d: texture coord index %d out of range [0, %d)", shape.Name, faceIndex, vi.T, len(shape.TextureCoords))
			}
		}
	}
}

func TestReadSingleShape(t *testing.T) {
	payload := "o Box\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"

	shapes, err := NewObjReader(payload, "", nil).Read()
	if err != nil {
		t.Fatal(err)
	}

	expShape := &Shape{
		Name: "Box",
		Vertices: []Vector{
			{0, 0, 0, 1.0},
			{1, 0, 0, 1.0},
			{0, 1, 0, 1.0},
		},
		Faces: [][]VertexIndex{
			{
				{V: 0, N: NoIndex, T: NoIndex},
				{V: 1, N: NoIndex, T: NoIndex},
				{V: 2, N: NoIndex, T: NoIndex},
			},
		},
	}

	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape; got %d", len(shapes))
	}
	if !shapes[0].Equal(expShape) {
		t.Fatalf("expected shape to be %+v; got %+v", expShape, shapes[0])
	}
	if len(shapes[0].Normals) != 0 || len(shapes[0].TextureCoords) != 0 {
		t.Fatal("expected shape to have no normals or texture coords")
	}
	if shapes[0].Material != nil {
		t.Fatal("expected shape to have no material")
	}
}

func TestReadMultipleShapes(t *testing.T) {
	loader := newMemLoader(map[string]string{
		filepath.FromSlash("/scenes/triangle_and_box.mtl"): triangleAndBoxMtl,
	})

	shapes, err := NewObjReader(triangleAndBoxObj, "/scenes", loader).Read()
	if err != nil {
		t.Fatal(err)
	}

	if len(shapes) != 2 {
		t.Fatalf("expected 2 shapes; got %d", len(shapes))
	}

	type spec struct {
		name                                string
		vertices, normals, texCoords, faces int
		material                            string
	}
	specs := []spec{
		{"Triangle", 3, 1, 0, 1, "Red"},
		{"Cube", 4, 2, 2, 2, "Blue"},
	}
	for idx, s := range specs {
		shape := shapes[idx]
		if shape.Name != s.name {
			t.Fatalf("[shape %d] expected name %q; got %q", idx, s.name, shape.Name)
		}
		if len(shape.Vertices) != s.vertices || len(shape.Normals) != s.normals || len(shape.TextureCoords) != s.texCoords {
			t.Fatalf("[shape %d] expected %d/%d/%d vertices/normals/texcoords; got %d/%d/%d",
				idx, s.vertices, s.normals, s.texCoords, len(shape.Vertices), len(shape.Normals), len(shape.TextureCoords))
		}
		if len(shape.Faces) != s.faces {
			t.Fatalf("[shape %d] expected %d faces; got %d", idx, s.faces, len(shape.Faces))
		}
		if shape.Material == nil || shape.Material.Name != s.material {
			t.Fatalf("[shape %d] expected material %q; got %v", idx, s.material, shape.Material)
		}
		verifyLocalFaceIndices(t, shape)
	}

	expTriangleFace := []VertexIndex{
		{V: 1, N: 0, T: NoIndex},
		{V: 2, N: 0, T: NoIndex},
		{V: 0, N: 0, T: NoIndex},
	}
	for i, vi := range shapes[0].Faces[0] {
		if vi != expTriangleFace[i] {
			t.Fatalf("expected triangle face corner %d to be %v; got %v", i, expTriangleFace[i], vi)
		}
	}

	// Indices of the second shape must start at 0, not at a global offset
	expBoxFaces := [][]VertexIndex{
		{{V: 0, N: 0, T: 0}, {V: 1, N: 0, T: 1}, {V: 2, N: 0, T: 0}, {V: 3, N: 0, T: 1}},
		{{V: 0, N: 1, T: 0}, {V: 3, N: 1, T: 1}, {V: 2, N: 1, T: 1}},
	}
	for faceIndex, face := range expBoxFaces {
		for i, vi := range face {
			if got := shapes[1].Faces[faceIndex][i]; got != vi {
				t.Fatalf("expected box face %d corner %d to be %v; got %v", faceIndex, i, vi, got)
			}
		}
	}

	if len(loader.requests) != 1 || loader.requests[0] != filepath.FromSlash("/scenes/triangle_and_box.mtl") {
		t.Fatalf("expected material library to be requested relative to the base path; got %v", loader.requests)
	}
}

func TestGroupAndObjectBoundaries(t *testing.T) {
	payload := `
v 0 0 0
g first
v 1 1 1
vt 0.5
g second extra tokens
vn 0 0 1
o third object
v 2 2 2
`
	shapes, err := NewObjReader(payload, "", nil).Read()
	if err != nil {
		t.Fatal(err)
	}

	expNames := []string{"", "first", "second", "third object"}
	if len(shapes) != len(expNames) {
		t.Fatalf("expected %d shapes; got %d", len(expNames), len(shapes))
	}
	for idx, name := range expNames {
		if shapes[idx].Name != name {
			t.Fatalf("[shape %d] expected name %q; got %q", idx, name, shapes[idx].Name)
		}
	}

	if tc := shapes[1].TextureCoords[0]; !tc.ApproxEqual(Vector{0.5, 0, 0}) {
		t.Fatalf("expected texture coord to default v and w to 0; got %v", tc)
	}
}

func TestEmptyShapesAreDropped(t *testing.T) {
	payload := `
o Empty
o AlsoEmpty
usemtl_unknown foo
o Full
v 1 2 3
o Trailing
`
	shapes, err := NewObjReader(payload, "", nil).Read()
	if err != nil {
		t.Fatal(err)
	}

	if len(shapes) != 1 || shapes[0].Name != "Full" {
		t.Fatalf("expected only the shape with geometry to be emitted; got %d shapes", len(shapes))
	}
}

func TestNegativeFaceIndices(t *testing.T) {
	payload := `
o A
v 0 0 0
v 1 0 0
v 0 1 0
o B
v 0 0 1
v 1 0 1
v 0 1 1
f -3 -2 -1
`
	shapes, err := NewObjReader(payload, "", nil).Read()
	if err != nil {
		t.Fatal(err)
	}

	for i, vi := range shapes[1].Faces[0] {
		if vi.V != i {
			t.Fatalf("expected corner %d to reference local vertex %d; got %d", i, i, vi.V)
		}
	}
}

// A literal 0 is not a valid obj reference; it is currently mapped to the
// first coordinate of the shape instead of being rejected.
func TestZeroFaceIndexMapsToFirstCoordinate(t *testing.T) {
	payload := `
o A
v 0 0 0
o B
v 0 0 1
v 1 0 1
v 0 1 1
f 0 3 4
`
	shapes, err := NewObjReader(payload, "", nil).Read()
	if err != nil {
		t.Fatal(err)
	}

	expFace := []int{0, 1, 2}
	for i, vi := range shapes[1].Faces[0] {
		if vi.V != expFace[i] {
			t.Fatalf("expected corner %d to reference vertex %d; got %d", i, expFace[i], vi.V)
		}
	}
}

func TestFaceFormatErrors(t *testing.T) {
	specs := []string{
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2 3\n",
		"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2//1 3/1/1\n",
		"v 0 0 0\nf 1/1/1/1\n",
		"v 0 0 0\nf 1/x\n",
	}

	for idx, payload := range specs {
		shapes, err := NewObjReader(payload, "", nil).Read()
		if !errors.Is(err, ErrUnexpectedFileFormat) {
			t.Fatalf("[spec %d] expected unexpected file format error; got %v", idx, err)
		}
		if shapes != nil {
			t.Fatalf("[spec %d] expected no shapes on error; got %d", idx, len(shapes))
		}
	}
}

func TestFaceStopsAtNonIntegerToken(t *testing.T) {
	payload := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3 # trailing comment\n"
	shapes, err := NewObjReader(payload, "", nil).Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(shapes[0].Faces[0]) != 3 {
		t.Fatalf("expected face with 3 corners; got %d", len(shapes[0].Faces[0]))
	}
}

func TestFaceIndexOutsideShape(t *testing.T) {
	payload := `
o A
v 0 0 0
v 1 0 0
o B
v 0 0 1
f 1 2 3
`
	_, err := NewObjReader(payload, "", nil).Read()
	if !errors.Is(err, ErrUnexpectedFileFormat) || !strings.Contains(err.Error(), "outside the shape") {
		t.Fatalf("expected an out-of-shape reference error; got %v", err)
	}

	// The error points at the offending face and not at the line where the
	// shape gets finalized.
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Line != 7 {
		t.Fatalf("expected error at line 7; got %v", err)
	}

	payload = "o A\nv 0 0 0\nf 1 2 3\nf 1 1 1\no B\nv 1 1 1\n"
	_, err = NewObjReader(payload, "", nil).Read()
	if !errors.As(err, &parseErr) || parseErr.Line != 3 {
		t.Fatalf("expected error at line 3; got %v", err)
	}
}

func TestVertexErrors(t *testing.T) {
	_, err := NewObjReader("o A\nv 1 2\n", "", nil).Read()
	if !errors.Is(err, ErrUnreadableData) {
		t.Fatalf("expected unreadable data error; got %v", err)
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Line != 2 {
		t.Fatalf("expected error at line 2; got %v", err)
	}

	// A texture coordinate without components is skipped.
	shapes, err := NewObjReader("v 1 2 3\nvt\n", "", nil).Read()
	if err != nil {
		t.Fatal(err)
	}
	if len(shapes[0].TextureCoords) != 0 {
		t.Fatalf("expected empty vt line to be skipped; got %d coords", len(shapes[0].TextureCoords))
	}
}

func TestUseMaterialBeforeDefinition(t *testing.T) {
	payload := `
mtllib lib.mtl
o Box
v 0 0 0
usemtl Foo
`
	loader := newMemLoader(map[string]string{"lib.mtl": "newmtl Bar\nKd 1 1 1\n"})
	shapes, err := NewObjReader(payload, "", loader).Read()
	if !errors.Is(err, ErrUnexpectedFileFormat) {
		t.Fatalf("expected unexpected file format error; got %v", err)
	}
	if !strings.Contains(err.Error(), "referenced before it was defined") {
		t.Fatalf("expected forward reference error message; got %v", err)
	}
	if shapes != nil {
		t.Fatalf("expected no shapes to be returned; got %d", len(shapes))
	}
}

func TestMaterialCacheLastWriteWins(t *testing.T) {
	payload := `
mtllib first.mtl second.mtl
o Box
v 0 0 0
usemtl Shared
`
	loader := newMemLoader(map[string]string{
		filepath.FromSlash("assets/first.mtl"):  "newmtl Shared\nKd 1 0 0\n",
		filepath.FromSlash("assets/second.mtl"): "newmtl Shared\nKd 0 1 0\n",
	})
	shapes, err := NewObjReader(payload, "assets", loader).Read()
	if err != nil {
		t.Fatal(err)
	}

	if !shapes[0].Material.DiffuseColor.FuzzyEquals(Color{0, 1, 0}) {
		t.Fatalf("expected the last loaded definition to win; got %v", shapes[0].Material.DiffuseColor)
	}
}

func TestMaterialLibraryErrors(t *testing.T) {
	loader := newMemLoader(map[string]string{
		"broken.mtl": "newmtl A\nillum 9\n",
	})

	_, err := NewObjReader("mtllib missing.mtl\n", "", loader).Read()
	if !errors.Is(err, ErrUnexpectedFileFormat) || !strings.Contains(err.Error(), "missing.mtl") {
		t.Fatalf("expected loading error naming the missing file; got %v", err)
	}

	_, err = NewObjReader("\nmtllib broken.mtl\n", "", loader).Read()
	if !errors.Is(err, ErrUnexpectedFileFormat) {
		t.Fatalf("expected unexpected file format error; got %v", err)
	}

	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.Line != 2 {
		t.Fatalf("expected error to point at the mtllib line; got %v", err)
	}

	var nestedErr *ParseError
	if !errors.As(parseErr.Err, &nestedErr) || nestedErr.Line != 2 {
		t.Fatalf("expected nested material error at line 2; got %v", parseErr.Err)
	}
}

func TestMaterialLibraryFromDisk(t *testing.T) {
	dir := t.TempDir()
	mtlPath := filepath.Join(dir, "triangle_and_box.mtl")
	if err := os.WriteFile(mtlPath, []byte(triangleAndBoxMtl), 0644); err != nil {
		t.Fatal(err)
	}

	shapes, err := NewObjReader(triangleAndBoxObj, dir, asset.NewFileLoader(false)).Read()
	if err != nil {
		t.Fatal(err)
	}
	if shapes[1].Material.IlluminationModel != IlluminationDiffuse {
		t.Fatalf("expected Blue material to use the diffuse model; got %v", shapes[1].Material.IlluminationModel)
	}
}

func TestReaderReuse(t *testing.T) {
	loader := newMemLoader(map[string]string{
		filepath.FromSlash("/scenes/triangle_and_box.mtl"): triangleAndBoxMtl,
	})
	r := NewObjReader(triangleAndBoxObj, "/scenes", loader)

	first, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Read()
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected %d shapes on second read; got %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("expected shape %d to be identical across reads", i)
		}
	}
}

func TestReentrantReadIsRejected(t *testing.T) {
	var r *ObjReader
	var nestedErr error
	loader := asset.TextLoaderFunc(func(fullPath string) (string, error) {
		_, nestedErr = r.Read()
		return "newmtl A\nKd 1 1 1\n", nil
	})

	r = NewObjReader("mtllib a.mtl\nv 0 0 0\n", "", loader)
	if _, err := r.Read(); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(nestedErr, ErrConcurrentRead) {
		t.Fatalf("expected nested read to fail with ErrConcurrentRead; got %v", nestedErr)
	}
}
