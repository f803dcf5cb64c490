package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/achilleasa/objloader/wavefront"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"
)

// The YAML representation of a parsed obj file.
type dumpDocument struct {
	Source    string         `yaml:"source"`
	Shapes    []dumpShape    `yaml:"shapes"`
	Materials []dumpMaterial `yaml:"materials,omitempty"`
}

type dumpShape struct {
	Name          string      `yaml:"name"`
	Material      string      `yaml:"material,omitempty"`
	Vertices      [][]float64 `yaml:"vertices,omitempty,flow"`
	Normals       [][]float64 `yaml:"normals,omitempty,flow"`
	TextureCoords [][]float64 `yaml:"texture_coords,omitempty,flow"`

	// Face corners formatted as v/t/n with "-" for missing indices.
	Faces [][]string `yaml:"faces,omitempty,flow"`
}

type dumpMaterial struct {
	Name              string    `yaml:"name"`
	AmbientColor      []float64 `yaml:"ambient,flow"`
	DiffuseColor      []float64 `yaml:"diffuse,flow"`
	SpecularColor     []float64 `yaml:"specular,flow"`
	IlluminationModel string    `yaml:"illumination"`
	SpecularExponent  *float64  `yaml:"specular_exponent,omitempty"`
	AmbientTextureMap string    `yaml:"ambient_map,omitempty"`
	DiffuseTextureMap string    `yaml:"diffuse_map,omitempty"`
}

// Parse an obj file and write its shapes and materials as YAML.
func DumpShapes(ctx *cli.Context) error {
	cfg, err := setupLogging(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("dump expects exactly one obj file")
	}

	objFile := ctx.Args().First()
	shapes, err := readShapes(objFile, cfg)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outFile := ctx.String("out"); outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		logger.Noticef("writing %d shapes to %s", len(shapes), outFile)
	}

	return writeDump(out, newDumpDocument(objFile, shapes))
}

func newDumpDocument(source string, shapes []*wavefront.Shape) *dumpDocument {
	doc := &dumpDocument{
		Source: source,
		Shapes: make([]dumpShape, 0, len(shapes)),
	}

	for _, shape := range shapes {
		ds := dumpShape{
			Name:          shape.Name,
			Vertices:      vectorList(shape.Vertices),
			Normals:       vectorList(shape.Normals),
			TextureCoords: vectorList(shape.TextureCoords),
		}
		if shape.Material != nil {
			ds.Material = shape.Material.Name
		}
		for _, face := range shape.Faces {
			corners := make([]string, len(face))
			for i, vi := range face {
				corners[i] = vi.String()
			}
			ds.Faces = append(ds.Faces, corners)
		}
		doc.Shapes = append(doc.Shapes, ds)
	}

	materials := usedMaterials(shapes)
	for _, name := range sortedKeys(materials) {
		mat := materials[name]
		doc.Materials = append(doc.Materials, dumpMaterial{
			Name:              mat.Name,
			AmbientColor:      colorList(mat.AmbientColor),
			DiffuseColor:      colorList(mat.DiffuseColor),
			SpecularColor:     colorList(mat.SpecularColor),
			IlluminationModel: mat.IlluminationModel.String(),
			SpecularExponent:  mat.SpecularExponent,
			AmbientTextureMap: mat.AmbientTextureMap,
			DiffuseTextureMap: mat.DiffuseTextureMap,
		})
	}

	return doc
}

func writeDump(w io.Writer, doc *dumpDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func vectorList(vectors []wavefront.Vector) [][]float64 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([][]float64, len(vectors))
	for i, v := range vectors {
		out[i] = []float64(v)
	}
	return out
}

func colorList(c wavefront.Color) []float64 {
	return []float64{c.R, c.G, c.B}
}
