package wavefront

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/achilleasa/objloader/asset"
	"github.com/achilleasa/objloader/log"
)

// The geometry collected so far for the shape being parsed.
type shapeState struct {
	name          string
	vertices      []Vector
	normals       []Vector
	textureCoords []Vector
	faces         [][]VertexIndex
	material      *Material

	// Source line of each face.
	faceLines []int
}

// Returns the number of coordinates of each kind defined by this shape.
func (s *shapeState) counts() indexCounts {
	return indexCounts{
		vertices:      len(s.vertices),
		normals:       len(s.normals),
		textureCoords: len(s.textureCoords),
	}
}

// A shape without any vertices, normals or texture coordinates is never emitted.
func (s *shapeState) isEmpty() bool {
	return len(s.vertices) == 0 && len(s.normals) == 0 && len(s.textureCoords) == 0
}

// Ensure that all face indices point inside the coordinate lists of this shape.
func (s *shapeState) validate() error {
	counts := s.counts()
	for faceIndex, face := range s.faces {
		for _, vi := range face {
			if indexInRange(vi.V, counts.vertices) &&
				indexInRange(vi.N, counts.normals) &&
				indexInRange(vi.T, counts.textureCoords) {
				continue
			}

			msg := fmt.Sprintf(
				"face %d of shape %q references %s outside the shape (%d vertices, %d normals, %d texture coords)",
				faceIndex, s.name, vi, counts.vertices, counts.normals, counts.textureCoords,
			)
			return &ParseError{Kind: ErrUnexpectedFileFormat, Line: s.faceLines[faceIndex], Msg: msg}
		}
	}
	return nil
}

func indexInRange(index, count int) bool {
	return index == NoIndex || (index >= 0 && index < count)
}

func (s *shapeState) build() *Shape {
	return &Shape{
		Name:          s.name,
		Vertices:      s.vertices,
		Normals:       s.normals,
		TextureCoords: s.textureCoords,
		Faces:         s.faces,
		Material:      s.material,
	}
}

// ObjReader parses the contents of an obj file. Material libraries referenced
// via "mtllib" are fetched through a TextLoader and parsed with a
// MaterialReader.
//
// A reader may be reused by calling Read again but it must not be used by
// more than one goroutine at a time.
type ObjReader struct {
	logger  log.Logger
	scanner *Scanner

	// Base path for resolving material library and texture filenames.
	basePath string

	loader asset.TextLoader

	// Materials loaded so far, by name. Later definitions win.
	materialCache map[string]*Material

	reading int32
}

// Create a new reader for obj source text. Material libraries are resolved
// relative to basePath and fetched using loader. If loader is nil, a local
// file loader is used.
func NewObjReader(source, basePath string, loader asset.TextLoader) *ObjReader {
	if loader == nil {
		loader = asset.NewFileLoader(false)
	}

	return &ObjReader{
		logger:        log.New("wavefront obj reader"),
		scanner:       NewScanner(source),
		basePath:      basePath,
		loader:        loader,
		materialCache: make(map[string]*Material),
	}
}

// Read parses the source and returns the defined shapes in file order. On
// error no shapes are returned.
func (r *ObjReader) Read() ([]*Shape, error) {
	if !atomic.CompareAndSwapInt32(&r.reading, 0, 1) {
		return nil, ErrConcurrentRead
	}
	defer atomic.StoreInt32(&r.reading, 0)

	r.logger.Noticef(`parsing obj source (base path "%s")`, r.basePath)
	start := time.Now()

	shapes, err := r.parse()
	r.resetState()
	if err != nil {
		return nil, err
	}

	r.logger.Noticef("parsed %d shapes in %d ms", len(shapes), time.Since(start).Nanoseconds()/1e6)
	return shapes, nil
}

func (r *ObjReader) resetState() {
	r.scanner.Reset()
	r.materialCache = make(map[string]*Material)
}

func (r *ObjReader) parse() ([]*Shape, error) {
	var (
		shapes  []*Shape
		state   = &shapeState{}
		offsets indexCounts
		err     error
	)

	r.resetState()
	for r.scanner.HasMoreInput() {
		marker, ok := r.scanner.ReadMarker()
		if !ok || strings.HasPrefix(marker, "#") {
			r.scanner.MoveToNextLine()
			continue
		}

		switch marker {
		case "v", "vn":
			var v []float64
			if v, err = r.scanner.ReadVertex(); err != nil {
				break
			}

			if marker == "v" {
				state.vertices = append(state.vertices, v)
			} else {
				state.normals = append(state.normals, v)
			}
		case "vt":
			if vt, ok := r.scanner.ReadTextureCoord(); ok {
				state.textureCoords = append(state.textureCoords, vt)
			}
		case "o", "g":
			if shapes, err = r.finalize(shapes, state); err != nil {
				break
			}
			offsets = offsets.add(state.counts())

			state = &shapeState{}
			if marker == "o" {
				state.name, _ = r.scanner.ReadLine()
			} else {
				state.name, _ = r.scanner.ReadToken()
			}
		case "f":
			var face []rawVertexIndex
			if face, err = r.readFace(); err != nil {
				break
			}

			if len(face) == 0 {
				r.logger.Debugf("[line %d] skipping face without vertex references", r.scanner.Line())
				break
			}
			state.faces = append(state.faces, normalizeFace(face, offsets, state.counts()))
			state.faceLines = append(state.faceLines, r.scanner.Line())
		case "mtllib":
			for _, filename := range r.scanner.ReadTokens() {
				if err = r.loadMaterialLibrary(filename); err != nil {
					break
				}
			}
		case "usemtl":
			var matName string
			if matName, err = r.scanner.ReadString(); err != nil {
				break
			}

			mat, exists := r.materialCache[matName]
			if !exists {
				err = r.scanner.errorf(ErrUnexpectedFileFormat, "material %q referenced before it was defined", matName)
				break
			}
			state.material = mat
		default:
			r.logger.Debugf("[line %d] skipping unsupported marker %q", r.scanner.Line(), marker)
		}

		if err != nil {
			return nil, err
		}
		r.scanner.MoveToNextLine()
	}

	return r.finalize(shapes, state)
}

// Append the shape being parsed to the list unless it is empty.
func (r *ObjReader) finalize(shapes []*Shape, state *shapeState) ([]*Shape, error) {
	if state.isEmpty() {
		if state.name != "" || len(state.faces) != 0 {
			r.logger.Warningf("dropping shape %q as it defines no geometry", state.name)
		}
		return shapes, nil
	}

	if err := state.validate(); err != nil {
		return nil, err
	}
	return append(shapes, state.build()), nil
}

// Parse a face definition. Each face corner uses one of the following formats:
//   - vertexIndex
//   - vertexIndex/uvIndex
//   - vertexIndex//normalIndex
//   - vertexIndex/uvIndex/normalIndex
//
// The first corner defines the format for the remaining ones. Corners are
// read until a token that does not start with an integer is found.
func (r *ObjReader) readFace() ([]rawVertexIndex, error) {
	var face []rawVertexIndex
	expIndices := 0
	for {
		tok, ok := r.scanner.PeekToken()
		if !ok || !startsWithInteger(tok) {
			return face, nil
		}
		r.scanner.ReadToken()

		parts := strings.Split(tok, "/")
		if len(parts) > 3 {
			return nil, r.scanner.errorf(ErrUnexpectedFileFormat, "face argument %q contains more than 3 indices", tok)
		}

		if expIndices == 0 {
			expIndices = len(parts)
		} else if len(parts) != expIndices {
			return nil, r.scanner.errorf(
				ErrUnexpectedFileFormat,
				"missing '/' separator in face argument %d (%q); expected each face argument to contain %d indices",
				len(face), tok, expIndices,
			)
		}

		var corner rawVertexIndex
		var err error
		if corner.v, err = strconv.Atoi(parts[0]); err != nil {
			return nil, r.scanner.errorf(ErrUnexpectedFileFormat, "could not parse vertex index for face argument %q", tok)
		}
		if len(parts) > 1 && parts[1] != "" {
			if corner.t, err = strconv.Atoi(parts[1]); err != nil {
				return nil, r.scanner.errorf(ErrUnexpectedFileFormat, "could not parse texture coord index for face argument %q", tok)
			}
			corner.hasT = true
		}
		if len(parts) > 2 && parts[2] != "" {
			if corner.n, err = strconv.Atoi(parts[2]); err != nil {
				return nil, r.scanner.errorf(ErrUnexpectedFileFormat, "could not parse normal index for face argument %q", tok)
			}
			corner.hasN = true
		}

		face = append(face, corner)
	}
}

// Load a material library and add its materials to the material cache.
func (r *ObjReader) loadMaterialLibrary(filename string) error {
	fullPath := asset.JoinPath(r.basePath, filename)
	r.logger.Infof(`loading material library "%s"`, fullPath)

	source, err := r.loader.LoadText(fullPath)
	if err != nil {
		return &ParseError{
			Kind: ErrUnexpectedFileFormat,
			Line: r.scanner.Line(),
			Msg:  fmt.Sprintf("invalid material file at %s", fullPath),
			Err:  err,
		}
	}

	materials, err := NewMaterialReader(source, r.basePath).Read()
	if err != nil {
		return &ParseError{
			Kind: ErrUnexpectedFileFormat,
			Line: r.scanner.Line(),
			Msg:  fmt.Sprintf("invalid material library %s", fullPath),
			Err:  err,
		}
	}

	for _, mat := range materials {
		r.materialCache[mat.Name] = mat
	}
	return nil
}

// Returns true if tok begins with an optionally signed integer.
func startsWithInteger(tok string) bool {
	if tok != "" && (tok[0] == '-' || tok[0] == '+') {
		tok = tok[1:]
	}
	return tok != "" && tok[0] >= '0' && tok[0] <= '9'
}
