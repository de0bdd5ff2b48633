package formats

import (
	"math"
	"testing"

	pmath "github.com/Faultbox/objmesh/pkg/math"
)

func TestVertexCache_LookupInsert(t *testing.T) {
	cache := newVertexCache()
	vertices := []OBJVertex{
		{Position: pmath.Vec3{X: 1}},
		{Position: pmath.Vec3{X: 1}, Normal: pmath.Vec3{Y: 1}},
	}
	cache.insert(7, 0)
	cache.insert(7, 1)

	if got := cache.bucketSize(7); got != 2 {
		t.Fatalf("bucket size = %d, want 2", got)
	}

	slot, ok := cache.lookup(7, vertices[1], vertices)
	if !ok || slot != 1 {
		t.Errorf("lookup = (%d, %v), want (1, true)", slot, ok)
	}

	// Equal vertex under another fingerprint is never probed.
	if _, ok := cache.lookup(8, vertices[0], vertices); ok {
		t.Error("lookup hit in an empty bucket")
	}

	other := OBJVertex{Position: pmath.Vec3{X: 1}, TexCoord: pmath.Vec2{X: 0.5}}
	if _, ok := cache.lookup(7, other, vertices); ok {
		t.Error("lookup hit for a vertex with a different texcoord")
	}
}

func TestVertexCache_BitwiseEquality(t *testing.T) {
	negZero := float32(math.Copysign(0, -1))
	cache := newVertexCache()
	vertices := []OBJVertex{{Normal: pmath.Vec3{Z: 0}}}
	cache.insert(0, 0)

	if _, ok := cache.lookup(0, OBJVertex{Normal: pmath.Vec3{Z: negZero}}, vertices); ok {
		t.Error("-0 normal matched +0 normal")
	}
	if _, ok := cache.lookup(0, OBJVertex{}, vertices); !ok {
		t.Error("identical vertex not found")
	}
}

func TestAddVertex_Idempotent(t *testing.T) {
	l := newOBJLoader[uint32](nil, DefaultOBJOptions())
	l.positions = []pmath.Vec3{{X: 1}, {Y: 1}}

	v := OBJVertex{Position: l.positions[0]}
	first, err := l.addVertex(0, v)
	if err != nil {
		t.Fatalf("addVertex failed: %v", err)
	}
	if len(l.mesh.Vertices) != 1 {
		t.Fatalf("expected 1 vertex, got %d", len(l.mesh.Vertices))
	}

	second, err := l.addVertex(0, v)
	if err != nil {
		t.Fatalf("addVertex failed: %v", err)
	}
	if second != first {
		t.Errorf("duplicate got slot %d, want %d", second, first)
	}
	if len(l.mesh.Vertices) != 1 {
		t.Errorf("duplicate appended a vertex: got %d", len(l.mesh.Vertices))
	}

	third, _ := l.addVertex(1, OBJVertex{Position: l.positions[1]})
	if third != 1 || len(l.mesh.Vertices) != 2 {
		t.Errorf("new vertex got slot %d with %d vertices, want slot 1 with 2", third, len(l.mesh.Vertices))
	}
}
