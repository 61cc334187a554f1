// cullview is a CLI utility for inspecting frustum culling on a scene.
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-cull/internal/config"
	"github.com/Faultbox/midgard-cull/internal/engine/culling"
	"github.com/Faultbox/midgard-cull/internal/engine/debug"
	"github.com/Faultbox/midgard-cull/internal/engine/picking"
	"github.com/Faultbox/midgard-cull/internal/engine/renderstate"
	"github.com/Faultbox/midgard-cull/internal/logger"
	"github.com/Faultbox/midgard-cull/internal/scene"
	"github.com/Faultbox/midgard-cull/pkg/bounds"
)

// out groups digits in the object counts.
var out = message.NewPrinter(language.English)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

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

	command := args[0]
	args = args[1:]

	switch command {
	case "cull":
		err = cmdCull(cfg, args)
	case "compare", "cmp":
		err = cmdCompare(cfg, args)
	case "wireframe", "wf":
		err = cmdWireframe(cfg, args)
	case "pick":
		err = cmdPick(cfg, args)
	case "states":
		err = cmdStates()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`cullview - frustum culling inspector

Usage:
  cullview [flags] <command> [options]

Commands:
  cull [scene.yaml]                       Count visible objects with the configured strategy
  compare [scene.yaml]                    Run every strategy, compare results and timings
  wireframe <shape> [scene.yaml]          Dump wireframe geometry as YAML
                                          (shape: box, sphere, frustum, visible)
  pick <x> <y> [scene.yaml]               Pick the visible object under a pixel
  states                                  Dump the render state descriptors as YAML

Flags:
  -config <path>    Config file
  -strategy <name>  world, local or view
  -workers <n>      Culling workers (0 = one per CPU)
  -slices <n>       Sphere wireframe slices
  -scene <path>     Default scene file
  -debug            Enable debug logging

Examples:
  cullview cull scenes/town.yaml
  cullview -strategy local compare
  cullview -slices 16 wireframe -o sphere.yaml sphere`)
}

// loadScene picks the scene from the command line, then the config, then
// falls back to the built-in grid.
func loadScene(cfg *config.Config, args []string) (*scene.Scene, string, error) {
	path := cfg.Scene.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return scene.Default(), "(default)", nil
	}
	s, err := scene.Load(path)
	if err != nil {
		return nil, path, err
	}
	return s, path, nil
}

func cmdCull(cfg *config.Config, args []string) error {
	s, name, err := loadScene(cfg, args)
	if err != nil {
		return err
	}
	opts, err := cfg.CullerOptions()
	if err != nil {
		return err
	}

	placements := s.Placements()
	c := culling.NewCuller(opts)
	visible := culling.Cull(c, placements, s.LocalBox, s.View(), s.Projection())
	stats := c.LastStats()

	out.Printf("Scene:    %s\n", name)
	out.Printf("Strategy: %s (%d workers)\n", stats.Strategy, opts.Workers)
	out.Printf("Visible:  %d / %d\n", len(visible), stats.Total)
	out.Printf("Elapsed:  %v\n", stats.Elapsed)
	return nil
}

func cmdCompare(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	rounds := fs.Int("n", 10, "Repeat each strategy N times for timing")
	fs.Parse(args)

	s, name, err := loadScene(cfg, fs.Args())
	if err != nil {
		return err
	}
	if *rounds < 1 {
		*rounds = 1
	}

	placements := s.Placements()
	view, proj := s.View(), s.Projection()

	out.Printf("Scene: %s (%d objects)\n\n", name, len(placements))
	out.Printf("  %-8s %8s %14s\n", "strategy", "visible", "avg time")

	var reference []scene.Transform
	mismatches := 0
	for i, st := range culling.Strategies() {
		var visible []scene.Transform
		start := time.Now()
		for r := 0; r < *rounds; r++ {
			visible = culling.Filter(st, placements, s.LocalBox, view, proj)
		}
		avg := time.Since(start) / time.Duration(*rounds)
		out.Printf("  %-8s %8d %14v\n", st, len(visible), avg)

		if i == 0 {
			reference = visible
		} else if !slices.Equal(visible, reference) {
			mismatches++
			logger.Warn("strategies disagree",
				zap.Stringer("strategy", st),
				zap.Stringer("reference", culling.Strategies()[0]),
				zap.Int("visible", len(visible)),
				zap.Int("reference_visible", len(reference)),
			)
		}
	}

	out.Println()
	if mismatches > 0 {
		out.Printf("%d strategies disagree with %s (boundary ties)\n", mismatches, culling.Strategies()[0])
	} else {
		out.Println("All strategies agree")
	}
	return nil
}

func cmdWireframe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("wireframe", flag.ExitOnError)
	output := fs.String("o", "", "Write YAML to file instead of stdout")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: cullview wireframe <box|sphere|frustum|visible> [scene.yaml]")
	}
	shape := fs.Arg(0)

	s, _, err := loadScene(cfg, fs.Args()[1:])
	if err != nil {
		return err
	}

	var w debug.WireFrameData
	switch shape {
	case "box":
		w = debug.FromBox(s.LocalBox, cfg.Debug.BoxColor)
	case "sphere":
		w = debug.FromSphere(bounds.SphereFromAABB(s.LocalBox), cfg.Debug.SphereColor, cfg.Debug.SphereSlices)
	case "frustum":
		f := bounds.FromProjection(s.Projection()).Transform(s.View().Inverse())
		w = debug.FromFrustum(f, cfg.Debug.FrustumColor)
	case "visible":
		opts, err := cfg.CullerOptions()
		if err != nil {
			return err
		}
		c := culling.NewCuller(opts)
		for _, p := range culling.Cull(c, s.Placements(), s.LocalBox, s.View(), s.Projection()) {
			w.Append(debug.PlacedBoxWireframe(s.LocalBox, p.LocalToWorld(), cfg.Debug.BoxPadding, cfg.Debug.BoxColor))
		}
	default:
		return fmt.Errorf("unknown shape %q", shape)
	}

	logger.Debug("wireframe built",
		zap.String("shape", shape),
		zap.Int("vertices", len(w.Vertices)),
		zap.Int("lines", w.LineCount()),
	)

	data, err := yaml.Marshal(w)
	if err != nil {
		return fmt.Errorf("encoding wireframe: %w", err)
	}
	if *output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*output, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *output, err)
	}
	fmt.Printf("Wrote %d vertices, %d lines to %s\n", len(w.Vertices), w.LineCount(), *output)
	return nil
}

func cmdPick(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("pick", flag.ExitOnError)
	width := fs.Int("width", 1280, "Viewport width in pixels")
	height := fs.Int("height", 720, "Viewport height in pixels")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: cullview pick [-width w] [-height h] <x> <y> [scene.yaml]")
	}
	x, err := strconv.ParseFloat(fs.Arg(0), 32)
	if err != nil {
		return fmt.Errorf("parsing x: %w", err)
	}
	y, err := strconv.ParseFloat(fs.Arg(1), 32)
	if err != nil {
		return fmt.Errorf("parsing y: %w", err)
	}

	s, _, err := loadScene(cfg, fs.Args()[2:])
	if err != nil {
		return err
	}
	opts, err := cfg.CullerOptions()
	if err != nil {
		return err
	}

	view, proj := s.View(), s.Projection()
	visible := culling.Cull(culling.NewCuller(opts), s.Placements(), s.LocalBox, view, proj)

	ray := picking.ScreenToRay(float32(x), float32(y), float32(*width), float32(*height), proj.Mul(view).Inverse())
	i, dist, ok := picking.Pick(ray, visible, s.LocalBox)
	if !ok {
		fmt.Printf("Nothing under (%v, %v)\n", x, y)
		return nil
	}

	p := visible[i]
	hit := ray.At(dist)
	fmt.Printf("Object at  (%.2f, %.2f, %.2f)\n", p.Position.X, p.Position.Y, p.Position.Z)
	fmt.Printf("Hit point  (%.2f, %.2f, %.2f)\n", hit.X, hit.Y, hit.Z)
	fmt.Printf("Distance   %.2f\n", dist)
	return nil
}

func cmdStates() error {
	dev := renderstate.NewMemoryDevice()
	states, err := renderstate.New(dev)
	if err != nil {
		return err
	}

	descs := make(map[string]any, states.Len())
	for _, name := range states.Names() {
		h, _ := states.Lookup(name)
		descs[name] = dev.Created[h]
	}

	data, err := yaml.Marshal(descs)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
