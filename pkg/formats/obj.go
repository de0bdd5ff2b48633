// Package formats provides parsers for 3D mesh file formats.
// OBJ (Wavefront) text format loader producing indexed, deduplicated meshes.
package formats

import (
	"bytes"
	"io"
	"os"
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/Faultbox/objmesh/pkg/math"
)

// DefaultOBJMaxPolygon is the default upper bound on vertex groups per face.
const DefaultOBJMaxPolygon = 64

// OBJIndex is the set of integer types an OBJ index buffer can be built with.
// The largest value of the type is reserved and never emitted as a vertex slot.
type OBJIndex interface {
	constraints.Unsigned
}

// OBJVertex is a deduplicated vertex. Channels absent from the face group are zero.
type OBJVertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// BitsEqual reports whether both vertices have identical bit patterns in every field.
func (v OBJVertex) BitsEqual(other OBJVertex) bool {
	return v.Position.BitsEqual(other.Position) &&
		v.Normal.BitsEqual(other.Normal) &&
		v.TexCoord.BitsEqual(other.TexCoord)
}

// OBJMaterial is a material referenced by a usemtl statement.
// Only Name is set by the loader; the rest hold defaults until a material
// library resolver fills them in.
type OBJMaterial struct {
	Name      string
	Ambient   math.Vec3
	Diffuse   math.Vec3
	Specular  math.Vec3
	Emissive  math.Vec3
	Shininess uint32
	Alpha     float32

	HasSpecular bool
	HasEmissive bool

	Texture         string
	NormalTexture   string
	SpecularTexture string
	EmissiveTexture string
	RMATexture      string // Packed roughness/metalness/occlusion
}

// NewOBJMaterial returns a material with default shading coefficients.
func NewOBJMaterial(name string) OBJMaterial {
	return OBJMaterial{
		Name:     name,
		Ambient:  math.Vec3{X: 0.2, Y: 0.2, Z: 0.2},
		Diffuse:  math.Vec3{X: 0.8, Y: 0.8, Z: 0.8},
		Specular: math.Vec3{X: 1, Y: 1, Z: 1},
		Alpha:    1,
	}
}

// OBJMesh is the indexed triangle mesh produced by the OBJ loader.
type OBJMesh[I OBJIndex] struct {
	Vertices   []OBJVertex
	Indices    []I      // Three per triangle
	Attributes []uint32 // Material id per triangle

	Materials       []OBJMaterial
	MaterialLibrary string // mtllib filename, never opened

	HasNormals   bool
	HasTexcoords bool
	Bounds       math.AABB // Over every position statement

	// Skipped counts tokens that were not a recognized keyword.
	Skipped map[string]int
}

// TriangleCount returns the number of triangles in the mesh.
func (m *OBJMesh[I]) TriangleCount() int {
	return len(m.Attributes)
}

// MaterialName returns the name of material id, or "" when the id has no
// material (faces emitted before the first usemtl).
func (m *OBJMesh[I]) MaterialName(id uint32) string {
	if int(id) >= len(m.Materials) {
		return ""
	}
	return m.Materials[id].Name
}

// OBJSubset is the set of triangles drawn with one material.
type OBJSubset[I OBJIndex] struct {
	MaterialID uint32
	Indices    []I
}

// Subsets partitions the triangles by material id, in ascending id order.
// Triangle order within a subset follows the index buffer.
func (m *OBJMesh[I]) Subsets() []OBJSubset[I] {
	byID := make(map[uint32]int)
	var subsets []OBJSubset[I]

	for tri, id := range m.Attributes {
		k, ok := byID[id]
		if !ok {
			k = len(subsets)
			byID[id] = k
			subsets = append(subsets, OBJSubset[I]{MaterialID: id})
		}
		subsets[k].Indices = append(subsets[k].Indices, m.Indices[tri*3:tri*3+3]...)
	}

	sort.Slice(subsets, func(i, j int) bool {
		return subsets[i].MaterialID < subsets[j].MaterialID
	})
	return subsets
}

// OBJOptions controls OBJ loading.
type OBJOptions struct {
	MaxPolygon int // Max vertex groups per face (<= 0 uses DefaultOBJMaxPolygon)
}

// DefaultOBJOptions returns the default loader options.
func DefaultOBJOptions() OBJOptions {
	return OBJOptions{MaxPolygon: DefaultOBJMaxPolygon}
}

func (o OBJOptions) withDefaults() OBJOptions {
	if o.MaxPolygon <= 0 {
		o.MaxPolygon = DefaultOBJMaxPolygon
	}
	return o
}

// ParseOBJ parses OBJ data from a byte slice.
func ParseOBJ[I OBJIndex](data []byte, opts OBJOptions) (*OBJMesh[I], error) {
	return ReadOBJ[I](bytes.NewReader(data), opts)
}

// ReadOBJ parses OBJ statements from r in a single pass.
// On error no mesh is returned; nothing accumulated so far is usable.
func ReadOBJ[I OBJIndex](r io.Reader, opts OBJOptions) (*OBJMesh[I], error) {
	l := newOBJLoader[I](r, opts.withDefaults())
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.mesh, nil
}

// LoadOBJ opens and parses an OBJ file. The file is closed before returning.
func LoadOBJ[I OBJIndex](path string, opts OBJOptions) (*OBJMesh[I], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OBJError{Path: path, Statement: "open", Err: ErrFileNotFound, Cause: err}
	}
	defer f.Close()

	mesh, err := ReadOBJ[I](f, opts)
	if err != nil {
		if objErr, ok := err.(*OBJError); ok {
			objErr.Path = path
		}
		return nil, err
	}
	return mesh, nil
}
