// docgen builds a descriptor graph from Go source or a YAML/JSON manifest,
// resolves inherited method types and renders documentation from templates.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"docgen/internal/config"
	"docgen/internal/descriptor"
	"docgen/internal/diag"
	"docgen/internal/generator"
	"docgen/internal/linker"
	"docgen/internal/manifest"
	"docgen/internal/parser"
)

var (
	inputFile    string
	templateFile string
	configFile   string
	outputFile   string
	perClass     bool
	exportedOnly bool
	classes      string
	exclude      string
	noInherit    bool
	watch        bool
	verbose      bool
	showHelp     bool

	// explicit holds the flags given on the command line. Only those
	// override values from the config file.
	explicit = map[string]bool{}
)

func init() {
	flag.StringVar(&inputFile, "input", "", "Input Go source file or YAML/JSON manifest (required)")
	flag.StringVar(&inputFile, "i", "", "Input file (shorthand)")

	flag.StringVar(&templateFile, "template", "", "Template file (default: built-in Markdown)")
	flag.StringVar(&templateFile, "t", "", "Template file (shorthand)")

	flag.StringVar(&configFile, "config", "", "Config file (YAML/JSON)")
	flag.StringVar(&configFile, "c", "", "Config file (shorthand)")

	flag.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	flag.StringVar(&outputFile, "o", "", "Output file (shorthand)")

	flag.BoolVar(&perClass, "per-class", false, "Execute template once per class")
	flag.BoolVar(&exportedOnly, "exported", true, "Only document exported classes and functions")
	flag.StringVar(&classes, "classes", "", "Only document these classes (comma-separated)")
	flag.StringVar(&classes, "C", "", "Only document these classes (shorthand)")
	flag.StringVar(&exclude, "exclude", "", "Exclude these classes (comma-separated)")
	flag.StringVar(&exclude, "X", "", "Exclude these classes (shorthand)")
	flag.BoolVar(&noInherit, "no-inherit", false, "Do not link overriding methods to their ancestors")
	flag.BoolVar(&watch, "watch", false, "Regenerate when the input, template or config changes")
	flag.BoolVar(&verbose, "v", false, "Verbose output")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")

	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, `docgen - API documentation generator

Usage:
    docgen -i <input.go|manifest.yaml> [options]

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
    # Render Markdown for a Go file
    docgen -i shop.go -o SHOP.md

    # Render a manifest with a custom template
    docgen -i shop.yaml -t api.tmpl -o api.html

    # Document two classes only, one template run each
    docgen -i shop.yaml -C Users,Orders --per-class

    # Keep the output in sync while editing
    docgen -i shop.yaml -c docgen.yaml -o SHOP.md --watch

`)
}

func main() {
	if err := run(); err != nil {
		diag.Default().Error(err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	if showHelp {
		flag.Usage()
		return nil
	}

	if inputFile == "" {
		return fmt.Errorf("input file is required (-i or --input)")
	}

	reporter := diag.New(os.Stderr, verbose)

	if !watch {
		return generate(reporter)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generate(reporter); err != nil {
		reporter.Error(err)
	}
	return watchInputs(ctx, reporter, watchedFiles(), func(changed []string) {
		reporter.Info("changed: %s", strings.Join(changed, ", "))
		if err := generate(reporter); err != nil {
			reporter.Error(err)
		}
	})
}

// generate runs one full pass: configuration, graph loading, linking and
// rendering.
func generate(reporter *diag.Reporter) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reporter.SilenceDeprecations = cfg.Options.Deprecations == config.DeprecationsSilent

	graph, err := loadGraph(inputFile, descriptor.WithNotifier(reporter))
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	if verbose {
		reporter.Info("Loaded %d classes and %d functions from %s", len(graph.Classes()), len(graph.Functions()), inputFile)
		for _, c := range graph.Classes() {
			reporter.Info("  - %s (%s, %d methods)", c.Name, c.Kind, len(c.GetMethods()))
		}
	}

	if cfg.ShouldInherit() {
		stats := linker.New(graph, reporter).Link()
		reporter.Info("Linked %d methods, %d relations (%d unresolved, %d cycles)",
			stats.Methods, stats.Relations, stats.Unresolved, stats.Cycles)
	}

	gen := generator.New(cfg)
	if templateFile != "" {
		if err := gen.LoadTemplate(templateFile); err != nil {
			return err
		}
	}

	var output io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if err := gen.Generate(graph, output); err != nil {
		return err
	}

	if outputFile != "" {
		reporter.Info("Generated output to %s", outputFile)
	}
	if n := reporter.Deprecations(); n > 0 && reporter.SilenceDeprecations {
		reporter.Info("%d deprecation notices silenced", n)
	}
	return nil
}

// loadConfig builds the configuration from defaults, the config file and
// command line overrides, in that order. Boolean flags with a true default
// only override the file when given explicitly.
func loadConfig() (*config.Config, error) {
	cfg := config.New()
	if configFile != "" {
		if err := cfg.LoadFile(configFile); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if perClass {
		cfg.Options.PerClass = true
	}
	if explicit["exported"] {
		cfg.Options.ExportedOnly = exportedOnly
	}
	if classes != "" {
		cfg.Options.IncludeClasses = parseCommaSeparated(classes)
	}
	if exclude != "" {
		cfg.Options.ExcludeClasses = parseCommaSeparated(exclude)
	}
	if noInherit {
		cfg.SetInherit(false)
	}
	return cfg, nil
}

// loadGraph picks the front end by file extension.
func loadGraph(path string, opts ...descriptor.Option) (*descriptor.Graph, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return parser.New(opts...).ParseFile(path)
	case ".yaml", ".yml", ".json":
		return manifest.New(opts...).LoadFile(path)
	default:
		return nil, fmt.Errorf("unsupported input %s: expected .go, .yaml, .yml or .json", path)
	}
}

func watchedFiles() []string {
	var files []string
	for _, f := range []string{inputFile, templateFile, configFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
