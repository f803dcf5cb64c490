// Package wavefront parses Wavefront obj geometry and mtl material libraries
// into immutable shapes and materials.
package wavefront

import (
	"fmt"

	"github.com/achilleasa/objloader/types"
)

// NoIndex marks an absent VertexIndex field.
const NoIndex = -1

// Vector is a list of float components. Vertices and normals always have 4
// components (w defaults to 1.0); texture coordinates have 3 (v and w default
// to 0.0).
type Vector []float64

// ApproxEqual compares two vectors component-wise using types.FloatEqual.
func (v Vector) ApproxEqual(other Vector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if !types.FloatEqual(v[i], other[i]) {
			return false
		}
	}
	return true
}

// Convert the first 3 components to a float32 vector.
func (v Vector) Vec3() types.Vec3 {
	var out types.Vec3
	for i := 0; i < 3 && i < len(v); i++ {
		out[i] = float32(v[i])
	}
	return out
}

// VertexIndex references the vertex (V), normal (N) and texture coordinate
// (T) of a face corner. Each field is a zero-based index into the arrays of
// the owning Shape or NoIndex if absent.
type VertexIndex struct {
	V int
	N int
	T int
}

func (vi VertexIndex) HasVertex() bool {
	return vi.V != NoIndex
}

func (vi VertexIndex) HasNormal() bool {
	return vi.N != NoIndex
}

func (vi VertexIndex) HasTextureCoord() bool {
	return vi.T != NoIndex
}

func (vi VertexIndex) String() string {
	return fmt.Sprintf("%s/%s/%s", fmtIndex(vi.V), fmtIndex(vi.T), fmtIndex(vi.N))
}

func fmtIndex(index int) string {
	if index == NoIndex {
		return "-"
	}
	return fmt.Sprint(index)
}

// Shape is a named polygon mesh. Face indices always refer to the Vertices,
// Normals and TextureCoords of the same Shape.
//
// Shapes returned by a reader must be treated as read-only.
type Shape struct {
	// Empty if the shape was not named.
	Name string

	Vertices      []Vector
	Normals       []Vector
	TextureCoords []Vector

	// Each face is a list of vertex references.
	Faces [][]VertexIndex

	// Nil if the shape does not use a material.
	Material *Material
}

// DataForVertexIndex looks up the vertex, normal and texture coordinate
// referenced by vi. Absent references yield nil vectors.
func (s *Shape) DataForVertexIndex(vi VertexIndex) (vertex, normal, texCoord Vector) {
	if vi.HasVertex() {
		vertex = s.Vertices[vi.V]
	}
	if vi.HasNormal() {
		normal = s.Normals[vi.N]
	}
	if vi.HasTextureCoord() {
		texCoord = s.TextureCoords[vi.T]
	}
	return vertex, normal, texCoord
}

// BBox calculates the axis-aligned bounding box of the shape vertices.
func (s *Shape) BBox() types.BBox {
	bbox := types.EmptyBBox()
	for _, v := range s.Vertices {
		bbox = bbox.Expand(v.Vec3())
	}
	return bbox
}

// Equal compares two shapes. Coordinates are compared approximately while
// names, face indices and materials must match.
func (s *Shape) Equal(other *Shape) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.Name != other.Name ||
		!vectorsEqual(s.Vertices, other.Vertices) ||
		!vectorsEqual(s.Normals, other.Normals) ||
		!vectorsEqual(s.TextureCoords, other.TextureCoords) {
		return false
	}

	if len(s.Faces) != len(other.Faces) {
		return false
	}
	for i, face := range s.Faces {
		if len(face) != len(other.Faces[i]) {
			return false
		}
		for j, vi := range face {
			if vi != other.Faces[i][j] {
				return false
			}
		}
	}

	return s.Material.Equal(other.Material)
}

func vectorsEqual(a, b []Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].ApproxEqual(b[i]) {
			return false
		}
	}
	return true
}
