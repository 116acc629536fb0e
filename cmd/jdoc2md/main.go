package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/jdoc2md"
	jdochttp "github.com/fwojciec/jdoc2md/http"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Artifacts resolves and downloads javadoc jars.
	Artifacts jdoc2md.ArtifactService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Artifacts: jdochttp.NewArtifactService(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jdoc2md"),
		kong.Description("Convert Javadoc HTML into a deduplicated Markdown tree"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if err := cli.Validate(); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    newLogger(stderr, cli.Verbose),
		Artifacts: m.Artifacts,
	}

	cmd := &ConvertCmd{CLI: cli}
	return cmd.Run(deps)
}

// newLogger returns a logger writing human-readable records to w.
// Each run is tagged with a unique id.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{Level: level})
	return slog.New(handler).With("run", uuid.NewString())
}
