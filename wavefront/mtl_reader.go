package wavefront

import (
	"sync/atomic"
	"time"

	"github.com/achilleasa/objloader/asset"
	"github.com/achilleasa/objloader/log"
)

// Valid range for the Ns (specular exponent) value.
const (
	minSpecularExponent = 0.0
	maxSpecularExponent = 1000.0
)

// The material fields collected so far for the material being parsed.
type materialState struct {
	name              string
	ambientColor      *Color
	diffuseColor      *Color
	specularColor     *Color
	specularExponent  *float64
	illuminationModel *IlluminationModel
	ambientTextureMap string
	diffuseTextureMap string
}

// A material is dirty once at least one property has been set. The name on
// its own does not count.
func (s *materialState) isDirty() bool {
	return s.ambientColor != nil ||
		s.diffuseColor != nil ||
		s.specularColor != nil ||
		s.specularExponent != nil ||
		s.illuminationModel != nil ||
		s.ambientTextureMap != "" ||
		s.diffuseTextureMap != ""
}

// Convert the collected fields into a Material, filling in defaults.
func (s *materialState) build() *Material {
	mat := &Material{
		Name:              s.name,
		AmbientColor:      Black,
		DiffuseColor:      Black,
		SpecularColor:     Black,
		IlluminationModel: IlluminationConstant,
		AmbientTextureMap: s.ambientTextureMap,
		DiffuseTextureMap: s.diffuseTextureMap,
	}
	if s.ambientColor != nil {
		mat.AmbientColor = *s.ambientColor
	}
	if s.diffuseColor != nil {
		mat.DiffuseColor = *s.diffuseColor
	}
	if s.specularColor != nil {
		mat.SpecularColor = *s.specularColor
	}
	if s.illuminationModel != nil {
		mat.IlluminationModel = *s.illuminationModel
	}
	if s.specularExponent != nil {
		exp := *s.specularExponent
		mat.SpecularExponent = &exp
	}
	return mat
}

// MaterialReader parses the contents of an mtl file.
//
// A reader may be reused by calling Read again but it must not be used by
// more than one goroutine at a time.
type MaterialReader struct {
	logger  log.Logger
	scanner *Scanner

	// Base path for resolving texture map filenames.
	basePath string

	reading int32
}

// Create a new reader for mtl source text. Texture map paths are resolved
// relative to basePath.
func NewMaterialReader(source, basePath string) *MaterialReader {
	return &MaterialReader{
		logger:   log.New("wavefront material reader"),
		scanner:  NewScanner(source),
		basePath: basePath,
	}
}

// Read parses the source and returns the defined materials in file order.
// Materials sharing a name are all returned.
func (r *MaterialReader) Read() ([]*Material, error) {
	if !atomic.CompareAndSwapInt32(&r.reading, 0, 1) {
		return nil, ErrConcurrentRead
	}
	defer atomic.StoreInt32(&r.reading, 0)

	start := time.Now()
	materials, err := r.parse()
	r.scanner.Reset()
	if err != nil {
		return nil, err
	}

	r.logger.Infof("parsed %d materials in %d ms", len(materials), time.Since(start).Nanoseconds()/1e6)
	return materials, nil
}

func (r *MaterialReader) parse() ([]*Material, error) {
	var materials []*Material
	state := &materialState{}

	r.scanner.Reset()
	for r.scanner.HasMoreInput() {
		marker, ok := r.scanner.ReadMarker()
		if !ok {
			r.scanner.MoveToNextLine()
			continue
		}

		var err error
		switch marker {
		case "newmtl":
			materials = r.finalize(materials, state)
			state = &materialState{}
			state.name, _ = r.scanner.ReadLine()
		case "Ka", "Kd", "Ks":
			var color Color
			if color, err = r.scanner.ReadColor(); err != nil {
				break
			}

			switch marker {
			case "Ka":
				state.ambientColor = &color
			case "Kd":
				state.diffuseColor = &color
			case "Ks":
				state.specularColor = &color
			}
		case "Ns":
			state.specularExponent, err = r.readSpecularExponent()
		case "illum":
			state.illuminationModel, err = r.readIlluminationModel()
		case "map_Ka", "map_Kd":
			var filename string
			if filename, err = r.scanner.ReadString(); err != nil {
				break
			}

			texPath := asset.JoinPath(r.basePath, filename)
			if marker == "map_Ka" {
				state.ambientTextureMap = texPath
			} else {
				state.diffuseTextureMap = texPath
			}
		default:
			r.logger.Debugf("[line %d] skipping unsupported marker %q", r.scanner.Line(), marker)
		}

		if err != nil {
			return nil, err
		}
		r.scanner.MoveToNextLine()
	}

	return r.finalize(materials, state), nil
}

// Append the material being parsed to the list if it is dirty.
func (r *MaterialReader) finalize(materials []*Material, state *materialState) []*Material {
	if !state.isDirty() {
		if state.name != "" {
			r.logger.Warningf("dropping material %q as it defines no properties", state.name)
		}
		return materials
	}
	return append(materials, state.build())
}

func (r *MaterialReader) readSpecularExponent() (*float64, error) {
	value, err := r.scanner.ReadDouble()
	if err != nil {
		return nil, err
	}

	if !(value >= minSpecularExponent && value <= maxSpecularExponent) {
		return nil, r.scanner.errorf(ErrUnexpectedFileFormat, "invalid Ns value %v; expected a value in [%v, %v]", value, minSpecularExponent, maxSpecularExponent)
	}
	return &value, nil
}

func (r *MaterialReader) readIlluminationModel() (*IlluminationModel, error) {
	code, err := r.scanner.ReadInt()
	if err != nil {
		return nil, err
	}

	model, valid := IlluminationModelFromCode(code)
	if !valid {
		return nil, r.scanner.errorf(ErrUnexpectedFileFormat, "invalid illumination model %d", code)
	}
	return &model, nil
}
