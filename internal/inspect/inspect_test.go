package inspect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/pkg/formats"
	"github.com/Faultbox/objmesh/pkg/math"
)

const testOBJ = `mtllib scene.mtl
o panel
v 0 0 0
v 2 0 0
v 2 1 0
v 0 1 0
v 0 0 3
f 1 2 3
usemtl glass
f 1 3 4 5
usemtl steel
f 5 4 3
`

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.obj")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test obj: %v", err)
	}
	return path
}

func TestInspect(t *testing.T) {
	path := writeOBJ(t, testOBJ)

	for _, width := range []int{16, 32} {
		cfg := config.Default().Loader
		cfg.IndexWidth = width

		report, err := Inspect(path, cfg)
		if err != nil {
			t.Fatalf("width %d: Inspect failed: %v", width, err)
		}

		if report.IndexWidth != width {
			t.Errorf("index width = %d, want %d", report.IndexWidth, width)
		}
		if report.Vertices != 5 {
			t.Errorf("expected 5 vertices, got %d", report.Vertices)
		}
		if report.Triangles != 4 || report.Indices != 12 {
			t.Errorf("got %d triangles and %d indices, want 4 and 12", report.Triangles, report.Indices)
		}
		if report.MaterialLibrary != "scene.mtl" {
			t.Errorf("material library = %q", report.MaterialLibrary)
		}
		if report.Bounds.Max != (math.Vec3{X: 2, Y: 1, Z: 3}) {
			t.Errorf("bounds max = %v", report.Bounds.Max)
		}

		// Triangle before usemtl lands on id 0 alongside glass.
		want := []MaterialStat{
			{ID: 0, Name: "glass", Triangles: 3},
			{ID: 1, Name: "steel", Triangles: 1},
		}
		if len(report.Materials) != len(want) {
			t.Fatalf("got %d material stats, want %d", len(report.Materials), len(want))
		}
		for i := range want {
			if report.Materials[i] != want[i] {
				t.Errorf("material %d = %+v, want %+v", i, report.Materials[i], want[i])
			}
		}

		wantSkipped := []SkippedKeyword{{"o", 1}, {"panel", 1}}
		if len(report.Skipped) != 2 || report.Skipped[0] != wantSkipped[0] || report.Skipped[1] != wantSkipped[1] {
			t.Errorf("skipped = %v, want %v", report.Skipped, wantSkipped)
		}
	}
}

func TestInspect_Errors(t *testing.T) {
	cfg := config.Default().Loader

	_, err := Inspect(filepath.Join(t.TempDir(), "nope.obj"), cfg)
	if !errors.Is(err, formats.ErrFileNotFound) {
		t.Errorf("missing file: got %v, want %v", err, formats.ErrFileNotFound)
	}

	_, err = Inspect(writeOBJ(t, "v 0 0 0\nf 1 1\n"), cfg)
	if !errors.Is(err, formats.ErrDegenerateFace) {
		t.Errorf("degenerate face: got %v, want %v", err, formats.ErrDegenerateFace)
	}

	cfg.IndexWidth = 8
	_, err = Inspect(writeOBJ(t, testOBJ), cfg)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("bad width: got %v, want %v", err, config.ErrInvalidConfig)
	}
}
