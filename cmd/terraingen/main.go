// terraingen builds Ironvale terrain without a window and reports on it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/ironvale/internal/config"
	"github.com/Faultbox/ironvale/internal/engine/terrain"
	"github.com/Faultbox/ironvale/internal/game/world"
	"github.com/Faultbox/ironvale/internal/logger"
	"github.com/Faultbox/ironvale/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "stats":
		cmdStats(args)
	case "dump":
		cmdDump(args)
	case "path":
		cmdPath(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraingen - Ironvale terrain utility

Usage:
  terraingen <command> [options]

Commands:
  stats                      Print terrain and navigation statistics
  dump [-o file] [-every n]  Write tree anchors and heights as YAML
  path -from x,z -to x,z     Plan a route across the map
  config [-o file]           Write a default config file

Common options:
  -config file   Load settings from a YAML file
  -seed n        Terrain seed
  -trees n       Target tree count
  -debug         Log generation details

Examples:
  terraingen stats -seed 7
  terraingen dump -o map.yaml -every 8
  terraingen path -from -40,-40 -to 40,40
  terraingen config -o config.yaml`)
}

// options are the flags shared by every terrain command.
type options struct {
	configPath string
	seed       int
	trees      int
	debug      bool
}

func addCommonFlags(fs *flag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "Path to config file")
	fs.IntVar(&o.seed, "seed", -1, "Terrain seed (negative keeps the configured seed)")
	fs.IntVar(&o.trees, "trees", -1, "Target tree count (negative keeps the configured count)")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	return o
}

// build loads settings and generates terrain.
func (o *options) build() (*config.Config, *terrain.Terrain, *terrain.Group) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		cfg, err = config.LoadFile(o.configPath)
		if err != nil {
			fail(err)
		}
	}
	if o.seed >= 0 {
		cfg.Terrain.Seed = o.seed
	}
	if o.trees >= 0 {
		cfg.Trees.Count = o.trees
	}

	level := "warn"
	if o.debug {
		level = "debug"
	}
	logger.Console = os.Stderr
	if err := logger.Init(level, ""); err != nil {
		fail(err)
	}

	t := terrain.New(cfg.Terrain, cfg.Trees.Model)
	return cfg, t, t.Generate(cfg.Trees.Count)
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	o := addCommonFlags(fs)
	fs.Parse(args)

	cfg, t, g := o.build()
	defer logger.Sync()

	s := t.Stats()
	b := g.Bounds()
	fmt.Printf("Terrain:   %.0f x %.0f\n", s.Width, s.Height)
	fmt.Printf("Seed:      %d (placement %d)\n", s.SurfaceSeed, s.PlacementSeed)
	fmt.Printf("Vertices:  %d\n", s.VertexCount)
	fmt.Printf("Triangles: %d\n", s.TriangleCount)
	fmt.Printf("Trees:     %d\n", s.TreeCount)
	fmt.Printf("Elevation: %.2f .. %.2f\n", g.Surface.Bounds().Min[1], g.Surface.Bounds().Max[1])
	fmt.Printf("Bounds:    (%.1f, %.1f, %.1f) .. (%.1f, %.1f, %.1f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])

	m := world.NewMap(cfg.Nav)
	m.Rebuild(g)
	grid := m.Grid()
	info := m.Info()
	fmt.Println()
	fmt.Printf("Navigation grid: %d x %d (cell %.1f)\n", grid.Width, grid.Height, grid.CellSize)
	if grid.HasWater {
		fmt.Printf("  water at %.2f\n", grid.WaterHeight)
	}
	for _, c := range world.CellTypes {
		fmt.Printf("  %-8s %d\n", c, info.Cells[c])
	}
	fmt.Println()
	fmt.Println("Resources:")
	for _, r := range world.Resources {
		fmt.Printf("  %-8s %d deposits, %d total\n", r, info.Deposits[r], info.Totals[r])
	}
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	o := addCommonFlags(fs)
	output := fs.String("o", "", "Output file (default stdout)")
	every := fs.Int("every", 4, "Sample every n-th vertex for heights (0 = skip heights)")
	fs.Parse(args)

	_, t, _ := o.build()
	defer logger.Sync()

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fail(err)
		}
		defer f.Close()
		out = f
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(buildDump(t, *every)); err != nil {
		fail(fmt.Errorf("encoding dump: %w", err))
	}
	if err := enc.Close(); err != nil {
		fail(err)
	}
	if *output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", *output)
	}
}

func cmdPath(args []string) {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	o := addCommonFlags(fs)
	from := fs.String("from", "", "Start position as x,z")
	to := fs.String("to", "", "Goal position as x,z")
	fs.Parse(args)

	if *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "Usage: terraingen path -from x,z -to x,z")
		os.Exit(1)
	}
	start, err := parseXZ(*from)
	if err != nil {
		fail(fmt.Errorf("-from: %w", err))
	}
	goal, err := parseXZ(*to)
	if err != nil {
		fail(fmt.Errorf("-to: %w", err))
	}

	cfg, _, g := o.build()
	defer logger.Sync()

	m := world.NewMap(cfg.Nav)
	m.Rebuild(g)
	route, err := m.Plan(start, goal)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Waypoints: %d\n", route.Len())
	fmt.Printf("Length:    %.2f\n", route.Length())
	fmt.Printf("Cost:      %.2f\n", route.Cost)
	for i, p := range route.Points {
		c := route.Cells[i]
		fmt.Printf("  %3d  cell (%d, %d)  (%.1f, %.2f, %.1f)  %s\n",
			i, c[0], c[1], p.X, p.Y, p.Z, m.Grid().Cell(c[0], c[1]))
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	output := fs.String("o", "", "Output file (default: user config dir)")
	fs.Parse(args)

	cfg := config.Default()
	var err error
	path := *output
	if path == "" {
		err = cfg.Save()
		path = config.ConfigDir()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		fail(err)
	}
	fmt.Printf("Wrote default config to %s\n", path)
}

// parseXZ parses "x,z" into a ground position.
func parseXZ(s string) (math.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return math.Vec3{}, fmt.Errorf("want x,z, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("x: %w", err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("z: %w", err)
	}
	return math.Vec3{X: float32(x), Z: float32(z)}, nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
