package formats

import (
	"fmt"
	"io"

	"github.com/Faultbox/objmesh/pkg/math"
)

// Vertex slots are tracked as uint32 regardless of the output index type.
const maxOBJVertexSlots = 1<<32 - 1

// objLoader holds the state of a single OBJ load.
type objLoader[I OBJIndex] struct {
	r    *objReader
	opts OBJOptions
	mesh *OBJMesh[I]

	positions []math.Vec3
	normals   []math.Vec3
	texCoords []math.Vec2

	cache       *vertexCache
	face        []uint32 // Vertex slots of the face being parsed
	subset      uint32   // Current material id
	maxVertices uint64
	line        int // Line of the current statement
}

func newOBJLoader[I OBJIndex](r io.Reader, opts OBJOptions) *objLoader[I] {
	// The all-ones index is reserved (primitive restart).
	maxVertices := uint64(^I(0))
	if maxVertices > maxOBJVertexSlots {
		maxVertices = maxOBJVertexSlots
	}

	return &objLoader[I]{
		r:    newOBJReader(r),
		opts: opts,
		mesh: &OBJMesh[I]{
			Bounds:  math.EmptyAABB(),
			Skipped: make(map[string]int),
		},
		cache:       newVertexCache(),
		face:        make([]uint32, 0, opts.MaxPolygon),
		maxVertices: maxVertices,
	}
}

func (l *objLoader[I]) errorf(statement string, sentinel, cause error) *OBJError {
	return &OBJError{Line: l.line, Statement: statement, Err: sentinel, Cause: cause}
}

func (l *objLoader[I]) indexError(channel string, index int, sentinel error) *OBJError {
	return &OBJError{
		Line:      l.line,
		Statement: "f",
		Channel:   channel,
		Index:     index,
		Err:       sentinel,
	}
}

// run dispatches statements until end of input or the first error.
func (l *objLoader[I]) run() error {
	for {
		keyword := l.r.token()
		if keyword == "" {
			if l.r.err != nil {
				return l.errorf("read", ErrReadFailed, l.r.err)
			}
			return nil
		}
		l.line = l.r.line

		var err error
		switch keyword {
		case "v":
			var p math.Vec3
			if p, err = l.readVec3(keyword); err == nil {
				l.positions = append(l.positions, p)
				l.mesh.Bounds.Extend(p)
			}
		case "vt":
			var t math.Vec2
			if t, err = l.readVec2(keyword); err == nil {
				l.texCoords = append(l.texCoords, t)
				l.mesh.HasTexcoords = true
			}
		case "vn":
			var n math.Vec3
			if n, err = l.readVec3(keyword); err == nil {
				l.normals = append(l.normals, n)
				l.mesh.HasNormals = true
			}
		case "f":
			err = l.parseFace()
		case "mtllib":
			l.mesh.MaterialLibrary = l.r.token()
		case "usemtl":
			l.useMaterial(l.r.token())
		default:
			l.mesh.Skipped[keyword]++
		}
		if err != nil {
			return err
		}
	}
}

func (l *objLoader[I]) readFloat(statement string) (float32, error) {
	f, err := l.r.float()
	if err != nil {
		if l.r.err != nil {
			return 0, l.errorf(statement, ErrReadFailed, l.r.err)
		}
		return 0, l.errorf(statement, ErrMalformedNumber, err)
	}
	return f, nil
}

func (l *objLoader[I]) readVec3(statement string) (math.Vec3, error) {
	var v [3]float32
	for i := range v {
		f, err := l.readFloat(statement)
		if err != nil {
			return math.Vec3{}, err
		}
		v[i] = f
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func (l *objLoader[I]) readVec2(statement string) (math.Vec2, error) {
	u, err := l.readFloat(statement)
	if err != nil {
		return math.Vec2{}, err
	}
	v, err := l.readFloat(statement)
	if err != nil {
		return math.Vec2{}, err
	}
	return math.Vec2{X: u, Y: v}, nil
}

// resolveIndex maps a raw OBJ index onto a channel of length n.
// Positive indices are 1-based; negative indices count back from the end.
func resolveIndex(raw, n int) (int, error) {
	var idx int
	switch {
	case raw == 0:
		return 0, ErrInvalidIndexZero
	case raw > 0:
		idx = raw - 1
	default:
		idx = n + raw
	}
	if idx < 0 || idx >= n {
		return 0, ErrIndexOutOfRange
	}
	return idx, nil
}

// readIndex reads and resolves one channel index of a face group.
func (l *objLoader[I]) readIndex(channel string, n int) (int, error) {
	raw, err := l.r.integer()
	if err != nil {
		if l.r.err != nil {
			return 0, l.errorf("f", ErrReadFailed, l.r.err)
		}
		e := l.errorf("f", ErrMalformedNumber, err)
		e.Channel = channel
		return 0, e
	}
	idx, err := resolveIndex(raw, n)
	if err != nil {
		return 0, l.indexError(channel, raw, err)
	}
	return idx, nil
}

// readGroup parses one "p", "p/t", "p//n" or "p/t/n" group and returns the
// assembled vertex with its position index.
func (l *objLoader[I]) readGroup() (OBJVertex, int, error) {
	var v OBJVertex

	pos, err := l.readIndex(ChannelPosition, len(l.positions))
	if err != nil {
		return v, 0, err
	}
	v.Position = l.positions[pos]

	if c, ok := l.r.peek(); !ok || c != '/' {
		return v, pos, nil
	}
	l.r.skip()

	if c, ok := l.r.peek(); !ok || c != '/' {
		tex, err := l.readIndex(ChannelTexCoord, len(l.texCoords))
		if err != nil {
			return v, 0, err
		}
		v.TexCoord = l.texCoords[tex]
	}

	if c, ok := l.r.peek(); ok && c == '/' {
		l.r.skip()
		norm, err := l.readIndex(ChannelNormal, len(l.normals))
		if err != nil {
			return v, 0, err
		}
		v.Normal = l.normals[norm]
	}

	return v, pos, nil
}

// nextGroup consumes separators up to the next vertex group. It returns false
// at end of line or end of input.
func (l *objLoader[I]) nextGroup() bool {
	for {
		c, ok := l.r.peek()
		if !ok || c == '\n' {
			return false
		}
		if isOBJDigit(c) || c == '-' || c == '+' {
			return true
		}
		l.r.skip()
	}
}

// parseFace reads the vertex groups of an f statement and triangulates them.
func (l *objLoader[I]) parseFace() error {
	l.face = l.face[:0]

	for l.nextGroup() {
		if len(l.face) >= l.opts.MaxPolygon {
			return l.errorf("f", ErrPolygonTooLarge, fmt.Errorf("limit is %d", l.opts.MaxPolygon))
		}

		v, pos, err := l.readGroup()
		if err != nil {
			return err
		}
		slot, err := l.addVertex(uint32(pos), v)
		if err != nil {
			return err
		}
		l.face = append(l.face, slot)
	}
	if l.r.err != nil {
		return l.errorf("f", ErrReadFailed, l.r.err)
	}

	if len(l.face) < 3 {
		return l.errorf("f", ErrDegenerateFace, fmt.Errorf("got %d", len(l.face)))
	}

	l.emitFan()
	return nil
}

// addVertex returns the slot of a bit-identical vertex already in the mesh,
// or appends v and returns its new slot.
func (l *objLoader[I]) addVertex(fingerprint uint32, v OBJVertex) (uint32, error) {
	if slot, ok := l.cache.lookup(fingerprint, v, l.mesh.Vertices); ok {
		return slot, nil
	}

	if uint64(len(l.mesh.Vertices)) >= l.maxVertices {
		return 0, l.errorf("f", ErrAllocationFailure, fmt.Errorf("limit is %d vertices", l.maxVertices))
	}

	slot := uint32(len(l.mesh.Vertices))
	l.mesh.Vertices = append(l.mesh.Vertices, v)
	l.cache.insert(fingerprint, slot)
	return slot, nil
}

// emitFan triangulates the current face as a fan around its first vertex.
// Each triangle is (first, current, previous).
func (l *objLoader[I]) emitFan() {
	i0 := I(l.face[0])
	for j := 2; j < len(l.face); j++ {
		l.mesh.Indices = append(l.mesh.Indices, i0, I(l.face[j]), I(l.face[j-1]))
		l.mesh.Attributes = append(l.mesh.Attributes, l.subset)
	}
}

// useMaterial makes name the current material, adding it on first use.
func (l *objLoader[I]) useMaterial(name string) {
	for i, m := range l.mesh.Materials {
		if m.Name == name {
			l.subset = uint32(i)
			return
		}
	}
	l.subset = uint32(len(l.mesh.Materials))
	l.mesh.Materials = append(l.mesh.Materials, NewOBJMaterial(name))
}
