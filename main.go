package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mcncl/jsonstruct/internal/analyzer"
	"github.com/mcncl/jsonstruct/internal/config"
	"github.com/mcncl/jsonstruct/internal/diff"
	"github.com/mcncl/jsonstruct/internal/errors"
	"github.com/mcncl/jsonstruct/internal/formatter"
	"github.com/mcncl/jsonstruct/internal/generator"
	"github.com/mcncl/jsonstruct/internal/models"
	"github.com/mcncl/jsonstruct/internal/parser"
	"github.com/mcncl/jsonstruct/internal/schema"
)

// CLI defines the command-line interface
var CLI struct {
	Name    string           `help:"Name of the root struct type." short:"n" required:""`
	Input   string           `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string           `help:"Path to output Go file. If not specified, writes to stdout." short:"o" type:"path"`
	Package string           `help:"Emit a package clause with this name above the struct." short:"p"`
	Path    string           `help:"Only type the value at this path, e.g. data.items.0." short:"P"`
	Schema  bool             `help:"Read the input as a JSON Schema document instead of an example." short:"s"`
	Format  bool             `help:"Format the output code according to Go standards." short:"f"`
	Int64   bool             `help:"Use int64 for integer fields." name:"int64"`
	Check   bool             `help:"Compare the generated code with --output instead of writing it." short:"c"`
	Config  string           `help:"Path to a config file. Discovered from the working directory if not specified." short:"C" type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Logger *slog.Logger
	Config *config.Config
	Out    io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("jsonstruct"),
		kong.Description("Infer a Go struct type from an example JSON document"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		app.FatalIfErrorf(err)
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, config.Overrides{
		Package:    CLI.Package,
		Format:     CLI.Format,
		ForceInt64: CLI.Int64,
		Debug:      CLI.Debug,
	})
	if err != nil {
		exitWithError(errors.NewInputError("failed to load config", err))
	}

	err = run(&Context{
		Logger: newLogger(os.Stderr, cfg.Dev.Debug),
		Config: cfg,
		Out:    os.Stdout,
	})
	if err != nil {
		exitWithError(err)
	}
}

// exitWithError prints a user-friendly message, in red when stderr is a
// terminal, and exits with status 1.
func exitWithError(err error) {
	red := color.New(color.FgRed)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		red.EnableColor()
	} else {
		red.DisableColor()
	}
	_, _ = red.Fprintln(os.Stderr, errors.UserFriendlyError(err))
	fmt.Fprintf(os.Stderr, "\nFor help, run: jsonstruct --help\n")
	os.Exit(1)
}

// run executes the main program logic
func run(ctx *Context) error {
	log := ctx.Logger

	// 1. Read input
	ir, err := readInput()
	if err != nil {
		return err
	}
	log.Debug("parsed input", "bytes", len(ir.Raw))

	// 2. Infer the field tree
	root, err := inferRoot(ctx, ir)
	if err != nil {
		return err
	}
	log.Debug("inferred field tree", "root", CLI.Name, "fields", len(root.Fields))

	// 3. Render
	code := generator.NewGeneratorWithConfig(ctx.Config).GenerateFile(CLI.Name, root, ctx.Config.Package)

	// 4. Format the code if requested
	if ctx.Config.Formatting.Enabled {
		code, err = formatter.NewFormatter().Format(code)
		if err != nil {
			return errors.NewFormatError("failed to format Go code", err)
		}
		log.Debug("formatted generated code")
	}

	// 5. Output the result
	if CLI.Check {
		return checkOutput(ctx, code)
	}
	return writeOutput(ctx, code)
}

// inferRoot builds the root object field from an example document, or from
// a JSON Schema document in schema mode.
func inferRoot(ctx *Context, ir models.IntermediateRepresentation) (models.ObjectField, error) {
	if CLI.Path != "" {
		var err error
		ir, err = parser.SelectPath(ir, CLI.Path)
		if err != nil {
			return models.ObjectField{}, err
		}
		ctx.Logger.Debug("selected sub-document", "path", CLI.Path)
	}

	if !CLI.Schema {
		return analyzer.NewAnalyzer().Analyze(ir, CLI.Name)
	}

	doc, err := schema.ParseBytes(ir.Raw)
	if err != nil {
		return models.ObjectField{}, err
	}
	field, err := schema.NewConverter(doc).Convert(CLI.Name)
	if err != nil {
		return models.ObjectField{}, err
	}
	return analyzer.AnalyzeField(field)
}

// readInput parses JSON from file or stdin
func readInput() (models.IntermediateRepresentation, error) {
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		return readInteractiveInput()
	}

	return parser.Parse(os.Stdin)
}

// readInteractiveInput lets users paste JSON into the terminal and signal
// completion with Ctrl+D (EOF)
func readInteractiveInput() (models.IntermediateRepresentation, error) {
	fmt.Fprintln(os.Stderr, "jsonstruct interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	ir, err := parser.Parse(os.Stdin)
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return ir, nil
}

// writeOutput writes code verbatim to the output file or ctx.Out
func writeOutput(ctx *Context, code string) error {
	if CLI.Output != "" {
		if err := os.WriteFile(CLI.Output, []byte(code), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		ctx.Logger.Info("generated Go code written", "path", CLI.Output)
		return nil
	}

	if _, err := io.WriteString(ctx.Out, code); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// checkOutput compares code with the current contents of the output file and
// prints a diff when they differ.
func checkOutput(ctx *Context, code string) error {
	if CLI.Output == "" {
		return errors.NewInputError("--check requires --output", nil)
	}

	existing, err := os.ReadFile(CLI.Output)
	if err != nil && !os.IsNotExist(err) {
		return errors.NewOutputError(fmt.Sprintf("failed to read '%s'", CLI.Output), err)
	}

	out, changed := diff.Compare(string(existing), code, isTerminal(ctx.Out))
	if !changed {
		ctx.Logger.Info("generated Go code is up to date", "path", CLI.Output)
		return nil
	}
	if _, err := io.WriteString(ctx.Out, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return errors.NewOutputError(fmt.Sprintf("'%s' is out of date", CLI.Output), errors.ErrOutOfDate)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
