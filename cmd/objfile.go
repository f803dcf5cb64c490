package cmd

import (
	"fmt"
	"strings"

	"github.com/achilleasa/objloader/asset"
	"github.com/achilleasa/objloader/wavefront"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Parse an obj file and return its shapes.
func readShapes(objFile string, cfg *Config) ([]*wavefront.Shape, error) {
	if !strings.HasSuffix(strings.ToLower(objFile), ".obj") {
		return nil, fmt.Errorf("unsupported file %s; expected a file with a .obj extension", objFile)
	}

	loader := asset.NewFileLoader(cfg.Loader.AllowRemote)
	source, err := loader.LoadText(objFile)
	if err != nil {
		return nil, err
	}

	return wavefront.NewObjReader(source, cfg.BasePathFor(objFile), loader).Read()
}

// Collect the materials referenced by a set of shapes, by name.
func usedMaterials(shapes []*wavefront.Shape) map[string]*wavefront.Material {
	materials := make(map[string]*wavefront.Material)
	for _, shape := range shapes {
		if shape.Material != nil {
			materials[shape.Material.Name] = shape.Material
		}
	}
	return materials
}

func sortedKeys[K constraints.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
