package wavefront

// indexCounts tracks the number of vertices, normals and texture coordinates
// in a group of shapes.
type indexCounts struct {
	vertices      int
	normals       int
	textureCoords int
}

// Add the coordinate counts of a shape.
func (c indexCounts) add(other indexCounts) indexCounts {
	return indexCounts{
		vertices:      c.vertices + other.vertices,
		normals:       c.normals + other.normals,
		textureCoords: c.textureCoords + other.textureCoords,
	}
}

// A face corner as written in the source. Indices are 1-based and global to
// the file, or negative to reference coordinates relative to the last one
// defined. Absent normal/texture indices are flagged.
type rawVertexIndex struct {
	v, t, n    int
	hasT, hasN bool
}

// Convert raw face corners into indices local to the shape being parsed.
// offsets holds the coordinate counts of all previously finalized shapes and
// local the counts of the current shape so far.
func normalizeFace(raw []rawVertexIndex, offsets, local indexCounts) []VertexIndex {
	face := make([]VertexIndex, len(raw))
	for i, r := range raw {
		face[i] = VertexIndex{
			V: normalizeIndex(r.v, offsets.vertices, local.vertices),
			N: NoIndex,
			T: NoIndex,
		}
		if r.hasN {
			face[i].N = normalizeIndex(r.n, offsets.normals, local.normals)
		}
		if r.hasT {
			face[i].T = normalizeIndex(r.t, offsets.textureCoords, local.textureCoords)
		}
	}
	return face
}

// Map a single raw index to a zero-based index local to the current shape.
//
// A literal 0 is not a valid reference; it is passed through as index 0.
func normalizeIndex(index, offset, localCount int) int {
	switch {
	case index == 0:
		return 0
	case index < 0:
		return localCount + index
	default:
		return index - offset - 1
	}
}
