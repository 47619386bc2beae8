package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"arrowgeo/binding"
	"arrowgeo/core"
	"arrowgeo/hittest"
	"arrowgeo/viewer"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive viewer mode")
		outputFile  = flag.String("o", "", "Output file for resolved scene (default: stdout)")
		pretty      = flag.Bool("pretty", true, "Indent JSON output")
		help        = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [scene.json]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Resolves arrow bindings in a scene and prints the updated scene,\n")
		fmt.Fprintf(os.Stderr, "or explores it interactively in the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                  # Resolve the built-in demo scene to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s scene.json       # Resolve a scene file to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i scene.json    # Explore a scene interactively\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	scene, err := loadScene(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		v, err := viewer.New(scene)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting viewer: %v\n", err)
			os.Exit(1)
		}
		v.Run()
		os.Exit(0)
	}

	if err := resolveAndPrint(scene, *outputFile, *pretty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadScene reads a scene file, or synthesizes the demo scene when no
// filename is given.
func loadScene(filename string) (*core.Scene, error) {
	if filename == "" {
		return viewer.DemoScene(), nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	var scene core.Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if len(scene.Elements) == 0 {
		return nil, fmt.Errorf("scene has no elements")
	}
	return &scene, nil
}

// resolveAndPrint runs a full binding pass over the scene, reports the
// resolved geometry of every arrow on stderr, and writes the updated
// scene as JSON.
func resolveAndPrint(scene *core.Scene, outputFile string, pretty bool) error {
	resolver := binding.NewResolver()
	scene.Version++
	updates := resolver.Resolve(scene.Elements, nil, allIDs(scene), scene.Version)
	for i, el := range scene.Elements {
		if repl, ok := updates[el.ID]; ok {
			scene.Elements[i] = repl
		}
	}

	tester := hittest.NewTester()
	for _, el := range scene.Elements {
		if el.Linear() == nil {
			continue
		}
		pts := tester.ShaftPoints(el)
		fmt.Fprintf(os.Stderr, "%s: %d drawable points, bounds %.1f,%.1f-%.1f,%.1f\n",
			el.ID, len(pts), el.Rect.MinX, el.Rect.MinY, el.Rect.MaxX, el.Rect.MaxY)
	}

	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(scene, "", "  ")
	} else {
		out, err = json.Marshal(scene)
	}
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}
	out = append(out, '\n')

	if outputFile != "" {
		if err := os.WriteFile(outputFile, out, 0644); err != nil {
			return fmt.Errorf("writing to file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote resolved scene to %s\n", outputFile)
		return nil
	}
	_, err = os.Stdout.Write(out)
	return err
}

func allIDs(scene *core.Scene) []core.ID {
	ids := make([]core.ID, 0, len(scene.Elements))
	for _, el := range scene.Elements {
		ids = append(ids, el.ID)
	}
	return ids
}
