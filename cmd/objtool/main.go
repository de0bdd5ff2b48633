// objtool is a CLI utility for inspecting Wavefront OBJ meshes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/inspect"
	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/internal/watch"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	var cmdErr error
	switch command {
	case "info":
		cmdErr = cmdInfo(cfg, args)
	case "materials", "mat":
		cmdErr = cmdMaterials(cfg, args)
	case "bounds":
		cmdErr = cmdBounds(cfg, args)
	case "watch":
		cmdErr = cmdWatch(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `objtool - Wavefront OBJ mesh inspector

Usage:
  objtool [flags] <command> [options]

Commands:
  info <file.obj>...                 Show vertex, index and material counts
  materials <file.obj>               List materials with triangle counts
  bounds [-wireframe] <file.obj>     Show the bounding box
  watch <file.obj>                   Re-inspect the file whenever it is saved

Flags:
  -config <path>      Config file (.yaml or .toml)
  -debug              Enable debug logging
  -index-width 16|32  Index buffer width
  -max-poly <n>       Max vertex groups per face
  -log-file <path>    Also log to a rotating file
  -no-warn-unknown    Do not log skipped keywords

Examples:
  objtool info model.obj
  objtool -index-width 16 info model.obj
  objtool bounds -wireframe -pad 0.1 model.obj`)
}

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: objtool info <file.obj>...")
	}

	for i, path := range args {
		report, err := inspect.Inspect(path, cfg.Loader)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		printInfo(os.Stdout, report)
	}
	return nil
}

func cmdMaterials(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: objtool materials <file.obj>")
	}

	report, err := inspect.Inspect(args[0], cfg.Loader)
	if err != nil {
		return err
	}
	printMaterials(os.Stdout, report)
	return nil
}

func cmdBounds(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("bounds", flag.ExitOnError)
	wireframe := fs.Bool("wireframe", false, "Print box edges as line-list vertices")
	padding := fs.Float64("pad", 0, "Expand the box by this amount on all sides")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: objtool bounds [-wireframe] [-pad n] <file.obj>")
	}

	report, err := inspect.Inspect(fs.Arg(0), cfg.Loader)
	if err != nil {
		return err
	}
	printBounds(os.Stdout, report)
	if *wireframe {
		printWireframe(os.Stdout, report, float32(*padding))
	}
	return nil
}

func cmdWatch(cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: objtool watch <file.obj>")
	}

	w, err := watch.New(args[0])
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := func(path string) {
		report, err := inspect.Inspect(path, cfg.Loader)
		if err != nil {
			logger.Error("reload failed", zap.String("path", path), zap.Error(err))
			return
		}
		printInfo(os.Stdout, report)
		fmt.Println()
	}

	reload(w.Path())
	logger.Info("watching for changes", zap.String("path", w.Path()))
	return w.Run(ctx, reload)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printInfo(w io.Writer, r *inspect.Report) {
	fmt.Fprintf(w, "File:       %s\n", r.Path)
	fmt.Fprintf(w, "Vertices:   %d\n", r.Vertices)
	fmt.Fprintf(w, "Indices:    %d (%d-bit)\n", r.Indices, r.IndexWidth)
	fmt.Fprintf(w, "Triangles:  %d\n", r.Triangles)
	fmt.Fprintf(w, "Normals:    %s\n", yesNo(r.HasNormals))
	fmt.Fprintf(w, "Texcoords:  %s\n", yesNo(r.HasTexcoords))
	fmt.Fprintf(w, "Materials:  %d\n", len(r.Materials))
	if r.MaterialLibrary != "" {
		fmt.Fprintf(w, "Library:    %s\n", r.MaterialLibrary)
	}
	fmt.Fprintf(w, "Load time:  %s\n", r.Duration)

	if len(r.Skipped) > 0 {
		var parts []string
		for _, s := range r.Skipped {
			parts = append(parts, fmt.Sprintf("%s(%d)", s.Keyword, s.Count))
		}
		fmt.Fprintf(w, "Skipped:    %s\n", strings.Join(parts, " "))
	}
}

func printMaterials(w io.Writer, r *inspect.Report) {
	if len(r.Materials) == 0 {
		fmt.Fprintln(w, "No triangles")
		return
	}
	for _, m := range r.Materials {
		name := m.Name
		if name == "" {
			name = "(none)"
		}
		fmt.Fprintf(w, "  %3d  %-24s %d triangles\n", m.ID, name, m.Triangles)
	}
}

func printBounds(w io.Writer, r *inspect.Report) {
	b := r.Bounds
	if b.IsEmpty() {
		fmt.Fprintln(w, "Bounds: empty")
		return
	}
	c, s := b.Center(), b.Size()
	fmt.Fprintf(w, "Min:    %g %g %g\n", b.Min.X, b.Min.Y, b.Min.Z)
	fmt.Fprintf(w, "Max:    %g %g %g\n", b.Max.X, b.Max.Y, b.Max.Z)
	fmt.Fprintf(w, "Center: %g %g %g\n", c.X, c.Y, c.Z)
	fmt.Fprintf(w, "Size:   %g %g %g\n", s.X, s.Y, s.Z)
}

func printWireframe(w io.Writer, r *inspect.Report, padding float32) {
	verts := r.Bounds.Wireframe(padding)
	for i := 0; i+2 < len(verts); i += 3 {
		fmt.Fprintf(w, "%g %g %g\n", verts[i], verts[i+1], verts[i+2])
	}
}
