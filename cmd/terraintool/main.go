// terraintool is a CLI utility for inspecting heightmaps and exporting
// terrain meshes.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Faultbox/terrainview/internal/engine/terrain"
	"github.com/Faultbox/terrainview/internal/export"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "sample":
		err = cmdSample(args)
	case "export":
		err = cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraintool - heightmap and terrain mesh utility

Usage:
  terraintool <command> [options]

Commands:
  info <heightmap>                 Show grid size and mesh statistics
  sample <heightmap> <x> <z>       Print the terrain height at (x, z)
  export <heightmap> <out.glb>     Write the terrain mesh as binary glTF

Options (all commands):
  -height-scale N                  World units per full-white sample (default 20)
  -tex-repeat N                    Texture tiles across the terrain (default 10)

Examples:
  terraintool info heightmap257.png
  terraintool sample heightmap257.png 128.5 64
  terraintool export -height-scale 40 heightmap257.png terrain.glb`)
}

// meshFlags registers the mesh options shared by every command.
func meshFlags(fs *flag.FlagSet) *terrain.MeshOptions {
	opts := terrain.DefaultMeshOptions()
	fs.Func("height-scale", "World units per full-white sample", floatSetter(&opts.HeightScale))
	fs.Func("tex-repeat", "Texture tiles across the terrain", floatSetter(&opts.TexRepeat))
	return &opts
}

func floatSetter(dst *float32) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return err
		}
		if v <= 0 {
			return fmt.Errorf("must be positive, got %g", v)
		}
		*dst = float32(v)
		return nil
	}
}

func loadMesh(path string, opts terrain.MeshOptions) (*terrain.Mesh, error) {
	grid, err := terrain.LoadHeightmap(path)
	if err != nil {
		return nil, err
	}
	return terrain.BuildMesh(grid, opts)
}

func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	opts := meshFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool info <heightmap>")
		os.Exit(1)
	}

	mesh, err := loadMesh(fs.Arg(0), *opts)
	if err != nil {
		return err
	}

	b := mesh.Bounds
	fmt.Printf("Heightmap: %s\n", fs.Arg(0))
	fmt.Printf("Grid:      %d x %d\n", mesh.Width, mesh.Height)
	fmt.Printf("Vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("Quads:     %d\n", mesh.QuadCount())
	fmt.Printf("Indices:   %d\n", len(mesh.Indices))
	fmt.Printf("Height:    %.3f .. %.3f\n", b.Min[1], b.Max[1])
	fmt.Printf("Bounds:    (%.1f, %.1f, %.1f) - (%.1f, %.1f, %.1f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	return nil
}

func cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	opts := meshFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool sample <heightmap> <x> <z>")
		os.Exit(1)
	}

	x, err := strconv.ParseFloat(fs.Arg(1), 32)
	if err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	z, err := strconv.ParseFloat(fs.Arg(2), 32)
	if err != nil {
		return fmt.Errorf("invalid z: %w", err)
	}

	mesh, err := loadMesh(fs.Arg(0), *opts)
	if err != nil {
		return err
	}

	s := terrain.NewSampler(mesh)
	cx, cz := s.Clamp(float32(x), float32(z))
	fmt.Printf("height(%.3f, %.3f) = %.4f\n", cx, cz, s.HeightAt(cx, cz))
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	opts := meshFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: terraintool export [-height-scale N] [-tex-repeat N] <heightmap> <out.glb>")
		os.Exit(1)
	}

	mesh, err := loadMesh(fs.Arg(0), *opts)
	if err != nil {
		return err
	}
	if err := export.WriteGLB(mesh, fs.Arg(1)); err != nil {
		return err
	}

	fmt.Printf("Exported %d vertices, %d triangles to %s\n",
		len(mesh.Vertices), len(mesh.Indices)/3, fs.Arg(1))
	return nil
}
