package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/achilleasa/objloader/wavefront"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Display shape and material statistics for one or more obj files.
func ShowInfo(ctx *cli.Context) error {
	cfg, err := setupLogging(ctx)
	if err != nil {
		return err
	}

	if ctx.NArg() == 0 {
		return errors.New("missing obj file")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		objFile := ctx.Args().Get(idx)
		shapes, err := readShapes(objFile, cfg)
		if err != nil {
			return err
		}

		logger.Noticef("%s: shape information:\n%s", objFile, shapeStats(shapes))
		logger.Noticef("%s: material information:\n%s", objFile, materialStats(shapes))
	}

	return nil
}

// Render a table with the geometry counts and bounds of each shape.
func shapeStats(shapes []*wavefront.Shape) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Shape", "Vertices", "Normals", "UVs", "Faces", "Material", "Bounds"})

	var vertices, normals, uvs, faces int
	for _, shape := range shapes {
		matName := "-"
		if shape.Material != nil {
			matName = shape.Material.Name
		}

		table.Append([]string{
			shape.Name,
			strconv.Itoa(len(shape.Vertices)),
			strconv.Itoa(len(shape.Normals)),
			strconv.Itoa(len(shape.TextureCoords)),
			strconv.Itoa(len(shape.Faces)),
			matName,
			fmtBBox(shape),
		})

		vertices += len(shape.Vertices)
		normals += len(shape.Normals)
		uvs += len(shape.TextureCoords)
		faces += len(shape.Faces)
	}
	table.SetFooter([]string{
		fmt.Sprintf("Total (%d)", len(shapes)),
		strconv.Itoa(vertices),
		strconv.Itoa(normals),
		strconv.Itoa(uvs),
		strconv.Itoa(faces),
		" ",
		" ",
	})

	table.Render()
	return buf.String()
}

// Render a table with the properties of the materials used by a set of shapes.
func materialStats(shapes []*wavefront.Shape) string {
	materials := usedMaterials(shapes)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Material", "Illumination", "Kd", "Ns", "Diffuse map"})

	for _, name := range sortedKeys(materials) {
		mat := materials[name]
		ns := "-"
		if mat.SpecularExponent != nil {
			ns = strconv.FormatFloat(*mat.SpecularExponent, 'g', -1, 64)
		}
		table.Append([]string{
			name,
			mat.IlluminationModel.String(),
			fmt.Sprintf("%.3f %.3f %.3f", mat.DiffuseColor.R, mat.DiffuseColor.G, mat.DiffuseColor.B),
			ns,
			mat.DiffuseTextureMap,
		})
	}

	table.Render()
	return buf.String()
}

func fmtBBox(shape *wavefront.Shape) string {
	bbox := shape.BBox()
	if bbox.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("(%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)",
		bbox[0][0], bbox[0][1], bbox[0][2],
		bbox[1][0], bbox[1][1], bbox[1][2],
	)
}
