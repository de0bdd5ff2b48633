// Package inspect loads OBJ files with the configured index width and
// summarizes the result independently of the index type.
package inspect

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/pkg/formats"
	"github.com/Faultbox/objmesh/pkg/math"
)

// MaterialStat is a material with the number of triangles drawn with it.
type MaterialStat struct {
	ID        uint32
	Name      string // Empty for faces emitted before any usemtl
	Triangles int
}

// SkippedKeyword is a token the loader did not recognize.
type SkippedKeyword struct {
	Keyword string
	Count   int
}

// Report summarizes a loaded mesh.
type Report struct {
	Path            string
	IndexWidth      int
	Vertices        int
	Indices         int
	Triangles       int
	HasNormals      bool
	HasTexcoords    bool
	Bounds          math.AABB
	MaterialLibrary string
	Materials       []MaterialStat // One per subset, ascending id
	Skipped         []SkippedKeyword
	Duration        time.Duration
}

// Inspect loads the OBJ file at path and builds a report.
func Inspect(path string, cfg config.LoaderConfig) (*Report, error) {
	log := logger.Named("inspect")
	start := time.Now()

	var (
		report *Report
		err    error
	)
	switch cfg.IndexWidth {
	case 16:
		report, err = load[uint16](path, cfg)
	case 32:
		report, err = load[uint32](path, cfg)
	default:
		return nil, fmt.Errorf("%w: index width %d", config.ErrInvalidConfig, cfg.IndexWidth)
	}
	if err != nil {
		log.Debug("load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	report.Duration = time.Since(start)
	log.Debug("loaded mesh",
		zap.String("path", path),
		zap.Int("vertices", report.Vertices),
		zap.Int("triangles", report.Triangles),
		zap.Int("materials", len(report.Materials)),
		zap.Duration("duration", report.Duration))

	if cfg.WarnUnknown {
		for _, s := range report.Skipped {
			log.Warn("skipped unknown keyword",
				zap.String("path", path),
				zap.String("keyword", s.Keyword),
				zap.Int("count", s.Count))
		}
	}
	return report, nil
}

func load[I formats.OBJIndex](path string, cfg config.LoaderConfig) (*Report, error) {
	mesh, err := formats.LoadOBJ[I](path, cfg.OBJOptions())
	if err != nil {
		return nil, err
	}
	report := newReport(mesh)
	report.Path = path
	report.IndexWidth = cfg.IndexWidth
	return report, nil
}

func newReport[I formats.OBJIndex](mesh *formats.OBJMesh[I]) *Report {
	r := &Report{
		Vertices:        len(mesh.Vertices),
		Indices:         len(mesh.Indices),
		Triangles:       mesh.TriangleCount(),
		HasNormals:      mesh.HasNormals,
		HasTexcoords:    mesh.HasTexcoords,
		Bounds:          mesh.Bounds,
		MaterialLibrary: mesh.MaterialLibrary,
	}

	for _, s := range mesh.Subsets() {
		r.Materials = append(r.Materials, MaterialStat{
			ID:        s.MaterialID,
			Name:      mesh.MaterialName(s.MaterialID),
			Triangles: len(s.Indices) / 3,
		})
	}

	for kw, n := range mesh.Skipped {
		r.Skipped = append(r.Skipped, SkippedKeyword{Keyword: kw, Count: n})
	}
	sort.Slice(r.Skipped, func(i, j int) bool {
		if r.Skipped[i].Count != r.Skipped[j].Count {
			return r.Skipped[i].Count > r.Skipped[j].Count
		}
		return r.Skipped[i].Keyword < r.Skipped[j].Keyword
	})
	return r
}
