// Command logix inspects Rockwell neutral rung text: it lists call units,
// tags and keywords, parses arguments, cross-references many rungs and lints
// them against the instruction registry.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opal-lang/logix/core/logic"
	"github.com/opal-lang/logix/runtime/config"
	"github.com/opal-lang/logix/runtime/logging"
)

// app holds the global flags and what PersistentPreRunE derives from them.
type app struct {
	configPath string
	debug      bool
	logFile    string
	noColor    bool
	file       string
	output     string

	useColor bool
	logger   *slog.Logger
	cfg      *config.Config
	registry *logic.Registry
	closeLog func() error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if closeErr := a.teardown(); err == nil {
		err = closeErr
	}
	if err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		FormatError(stderr, err, ShouldUseColor(a.noColor, stderr))
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "logix",
		Short:         "Inspect Rockwell neutral rung text",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Add flags
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to project config (default: discover "+config.FileName+")")
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug output (or set "+logging.DebugEnv+")")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Append JSON log records to this file")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.file, "file", "f", "", "Read rungs from file, one per line (- for stdin)")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "Output format: "+strings.Join(outputFormats, ", "))

	rootCmd.AddCommand(
		a.checkCmd(),
		a.instructionsCmd(),
		a.tagsCmd(),
		a.keywordsCmd(),
		a.parseCmd(),
		a.keysCmd(),
		a.lookupCmd(),
		a.xrefCmd(),
		a.lintCmd(),
	)
	return rootCmd
}

// setup builds the logger, loads the config and derives the registry.
func (a *app) setup(cmd *cobra.Command) error {
	if !validOutput(a.output) {
		return &CLIError{
			Type:    "usage",
			Message: fmt.Sprintf("unknown output format %q", a.output),
			Hint:    "use one of: " + strings.Join(outputFormats, ", "),
		}
	}
	a.useColor = ShouldUseColor(a.noColor, cmd.OutOrStdout())

	opts := logging.Options{
		Stderr: cmd.ErrOrStderr(),
		Debug:  a.debug || logging.DebugFromEnv(),
	}
	a.closeLog = func() error { return nil }
	if a.logFile != "" {
		f, err := logging.OpenFile(a.logFile)
		if err != nil {
			return &CLIError{Type: "config", Message: "cannot open log file", Details: err.Error()}
		}
		opts.File = f
		a.closeLog = f.Close
	}
	a.logger = logging.New(opts)

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	cfg, err := config.Resolve(a.configPath, dir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("config resolved", "path", cfg.Path, "instructions", len(cfg.Instructions))

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}
	a.registry = registry
	return nil
}

func (a *app) teardown() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

// rungs reads the command's input.
func (a *app) rungs(cmd *cobra.Command, args []string) ([]rung, error) {
	rs, err := readRungs(args, a.file, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("read rungs", "count", len(rs))
	return rs, nil
}
