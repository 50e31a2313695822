package main

import (
	"edgeflow/config"
	"edgeflow/connections"
	"edgeflow/diagram"
	"edgeflow/editor"
	"edgeflow/export"
	"edgeflow/logging"
	"edgeflow/terminal"
	"edgeflow/validation"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// exitValidation is the exit code when validation finds problems.
const exitValidation = 2

func main() {
	var (
		interactive = flag.Bool("i", false, "Open the diagram in the interactive terminal viewer")
		format      = flag.String("format", "report", "Export format: svg, png, json, report")
		outputFile  = flag.String("o", "", "Output file (default: stdout)")
		configPath  = flag.String("config", config.DefaultPath(), "Config file")
		connect     = flag.String("connect", "", "Add an edge, e.g. a:right,b:left, and save the diagram")
		validate    = flag.Bool("validate", false, "Validate the diagram and exit")
		strict      = flag.Bool("strict", false, "Also flag values that are stored but have no effect")
		debug       = flag.Bool("debug", false, "Log routing decisions to stderr")
		help        = flag.Bool("help", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] diagram.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Routes the edges of a diagram and exports the result.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, f := range export.GetAvailableFormats() {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", f, export.GetFormatDescriptions()[f])
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s diagram.json                      # Print a routing report\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format svg -o out.svg diagram.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i diagram.json                   # Drag bends and anchors\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -connect a:right,b diagram.json   # Add an edge\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nViewer keys:\n")
		fmt.Fprintf(os.Stderr, "  tab/shift-tab select edge   m cycle routing   +/- corner radius\n")
		fmt.Fprintf(os.Stderr, "  u undo   r redo   s save   y copy path   esc cancel drag   q quit\n")
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := setupLogging(cfg, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	var filename string
	if len(args) > 0 {
		filename = args[0]
	}

	router := connections.NewRouter(cfg.PlannerOptions(), cfg.Cache.Size)

	if *interactive {
		if err := runInteractive(filename, cfg, router); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if filename == "" {
		fmt.Fprintf(os.Stderr, "Error: Please provide a diagram JSON file\n\n")
		flag.Usage()
		os.Exit(1)
	}

	d, err := diagram.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading diagram: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		os.Exit(runValidation(d, *strict))
	}

	if *connect != "" {
		if err := runConnect(d, filename, *connect, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	exporter, err := export.NewExporter(exportFormat, export.Options{
		Router:     router,
		Scale:      cfg.Export.Scale,
		Margin:     cfg.Export.Margin,
		Background: cfg.Export.Background,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating exporter: %v\n", err)
		os.Exit(1)
	}

	output, err := exporter.Export(d)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting diagram: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		path, err := cfg.SavePath(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, output, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		logging.Logger().Info("exported diagram", "format", exportFormat, "file", path, "bytes", len(output))
		fmt.Fprintf(os.Stderr, "Successfully exported to %s\n", path)
		return
	}
	os.Stdout.Write(output)
}

// setupLogging installs a stderr logger when debugging or when the config
// names a level. Otherwise logging stays silent.
func setupLogging(cfg *config.Config, debug bool) error {
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	if level == "" {
		return nil
	}
	l, err := logging.ParseLevel(level)
	if err != nil {
		return err
	}
	logging.SetLogger(logging.NewTextLogger(os.Stderr, l))
	return nil
}

func runValidation(d *diagram.Diagram, strict bool) int {
	v := validation.NewDiagramValidator()
	v.SetStrictMode(strict)
	errs := v.Validate(d)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "%v\n", e)
	}
	if len(errs) > 0 {
		return exitValidation
	}
	fmt.Fprintln(os.Stderr, "Diagram is valid")
	return 0
}

// runInteractive opens filename in the terminal viewer. A missing file
// starts an empty diagram that saves to filename.
func runInteractive(filename string, cfg *config.Config, router *connections.Router) error {
	var d *diagram.Diagram
	if filename != "" {
		loaded, err := diagram.Load(filename)
		switch {
		case err == nil:
			d = loaded
		case errors.Is(err, os.ErrNotExist):
		default:
			return err
		}
	}

	store := editor.NewStore(d, 0)
	store.SetEdgeRadius(cfg.Routing.CornerRadius)
	v := terminal.NewViewer(store, router, terminal.Options{
		Filename:      filename,
		CellWidth:     cfg.Terminal.CellWidth,
		CellHeight:    cfg.Terminal.CellHeight,
		Confirmations: cfg.Confirmations,
	})
	return terminal.RunTerminal(v)
}

// runConnect adds the edge described by arg ("src[:anchor],dst[:anchor]")
// and writes the diagram back.
func runConnect(d *diagram.Diagram, filename, arg string, cfg *config.Config) error {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return fmt.Errorf("connect expects source,target, got %q", arg)
	}
	source, err := parseEndpoint(parts[0])
	if err != nil {
		return err
	}
	target, err := parseEndpoint(parts[1])
	if err != nil {
		return err
	}

	store := editor.NewStore(d, 1)
	store.SetEdgeRadius(cfg.Routing.CornerRadius)
	id, err := store.AddEdge(source, target)
	if err != nil {
		return err
	}
	if err := diagram.Save(filename, store.Diagram()); err != nil {
		return err
	}
	logging.Logger().Info("edge added", "edge", id, "file", filename)
	fmt.Fprintf(os.Stderr, "Added %s to %s\n", id, filename)
	return nil
}

func parseEndpoint(s string) (diagram.ConnectionPoint, error) {
	id, anchor, _ := strings.Cut(strings.TrimSpace(s), ":")
	if id == "" {
		return diagram.ConnectionPoint{}, fmt.Errorf("missing element id in %q", s)
	}
	a, err := diagram.ParseAnchor(anchor)
	if err != nil {
		return diagram.ConnectionPoint{}, err
	}
	return diagram.ConnectionPoint{ElementID: id, Anchor: a}, nil
}
