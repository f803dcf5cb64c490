package wavefront

import (
	"fmt"

	"github.com/achilleasa/objloader/types"
)

// Color is an rgb triplet.
type Color struct {
	R, G, B float64
}

// Black is the default color for unspecified material colors.
var Black = Color{}

// FuzzyEquals compares colors channel-wise using types.FloatEqual.
func (c Color) FuzzyEquals(other Color) bool {
	return types.FloatEqual(c.R, other.R) &&
		types.FloatEqual(c.G, other.G) &&
		types.FloatEqual(c.B, other.B)
}

// IlluminationModel enumerates the supported mtl "illum" models.
type IlluminationModel int

const (
	// color = Kd
	IlluminationConstant IlluminationModel = 0

	// Lambertian shading: color = KaIa + Kd { SUM j=1..ls, (N * Lj)Ij }
	IlluminationDiffuse IlluminationModel = 1

	// Lambertian shading plus Blinn-Phong specular:
	// color = KaIa + Kd { SUM j=1..ls, (N*Lj)Ij } + Ks { SUM j=1..ls, ((H*Hj)^Ns)Ij }
	IlluminationDiffuseSpecular IlluminationModel = 2
)

// IlluminationModelFromCode maps an mtl illum code to an IlluminationModel.
func IlluminationModelFromCode(code int) (IlluminationModel, bool) {
	switch model := IlluminationModel(code); model {
	case IlluminationConstant, IlluminationDiffuse, IlluminationDiffuseSpecular:
		return model, true
	}
	return IlluminationConstant, false
}

func (m IlluminationModel) String() string {
	switch m {
	case IlluminationConstant:
		return "Constant"
	case IlluminationDiffuse:
		return "Diffuse"
	case IlluminationDiffuseSpecular:
		return "DiffuseSpecular"
	}
	return fmt.Sprintf("IlluminationModel(%d)", int(m))
}

// Material describes the surface properties defined by an mtl "newmtl" block.
//
// Materials returned by a reader must be treated as read-only.
type Material struct {
	Name string

	AmbientColor  Color
	DiffuseColor  Color
	SpecularColor Color

	IlluminationModel IlluminationModel

	// Nil if the material does not define Ns.
	SpecularExponent *float64

	// Texture file paths resolved against the reader base path; empty if unset.
	AmbientTextureMap string
	DiffuseTextureMap string
}

// Equal compares two materials. Colors and the specular exponent are compared
// approximately.
func (m *Material) Equal(other *Material) bool {
	if m == nil || other == nil {
		return m == other
	}

	if m.Name != other.Name ||
		m.IlluminationModel != other.IlluminationModel ||
		m.AmbientTextureMap != other.AmbientTextureMap ||
		m.DiffuseTextureMap != other.DiffuseTextureMap {
		return false
	}

	if !m.AmbientColor.FuzzyEquals(other.AmbientColor) ||
		!m.DiffuseColor.FuzzyEquals(other.DiffuseColor) ||
		!m.SpecularColor.FuzzyEquals(other.SpecularColor) {
		return false
	}

	if m.SpecularExponent == nil || other.SpecularExponent == nil {
		return m.SpecularExponent == other.SpecularExponent
	}
	return types.FloatEqual(*m.SpecularExponent, *other.SpecularExponent)
}
