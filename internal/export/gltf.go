// Package export writes terrain meshes to interchange formats.
package export

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/terrainview/internal/engine/terrain"
)

// ErrEmptyMesh is returned when there is nothing to export.
var ErrEmptyMesh = errors.New("export: mesh has no geometry")

// Document builds a single-mesh, single-node glTF scene from mesh.
// Texture V is flipped to glTF's top-left origin.
func Document(mesh *terrain.Mesh, name string) (*gltf.Document, error) {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return nil, ErrEmptyMesh
	}

	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	uvs := make([][2]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		uvs[i] = [2]float32{v.TexCoord[0], 1 - v.TexCoord[1]}
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "terrainview"

	attrs := gltf.PrimitiveAttributes{
		gltf.POSITION:   modeler.WritePosition(doc, positions),
		gltf.NORMAL:     modeler.WriteNormal(doc, normals),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, uvs),
	}
	indices := modeler.WriteIndices(doc, mesh.Indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Mode:       gltf.PrimitiveTriangles,
			Indices:    gltf.Index(indices),
			Attributes: attrs,
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: name,
		Mesh: gltf.Index(len(doc.Meshes) - 1),
	})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)

	return doc, nil
}

// WriteGLB writes mesh to path as a binary glTF file.
func WriteGLB(mesh *terrain.Mesh, path string) error {
	doc, err := Document(mesh, "terrain")
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
