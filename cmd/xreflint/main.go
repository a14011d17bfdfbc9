// Command xreflint is the CLI collaborator spec.md §1 calls out of scope
// for the engine itself: it owns file I/O and parser instantiation and
// hands a parsed document and a compiled Schema to package schema.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xreflint/xreflint/config"
	"github.com/xreflint/xreflint/diagnostic"
	"github.com/xreflint/xreflint/doc"
	"github.com/xreflint/xreflint/logging"
	"github.com/xreflint/xreflint/schema"
)

// exit codes per spec.md §6/§7: 0 clean, 1 diagnostics found, 2 engine fault.
const (
	exitClean = 0
	exitFound = 1
	exitFault = 2
)

var (
	inputPath      string
	schemaPath     string
	format         string
	maxDiagnostics int
	verbose        bool
)

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		return exitFault
	}
	return exitCode
}

// exitCode is set by runValidate since cobra's RunE only reports errors,
// not arbitrary exit codes.
var exitCode = exitClean

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "xreflint",
		Short:         "validate cross-reference integrity in an XML document against a link-rule schema",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runValidate,
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "path to the XML document to validate (required)")
	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "path to the YAML schema describing link rules (required)")
	cmd.Flags().StringVar(&format, "format", "text", "diagnostic rendering: text or json")
	cmd.Flags().IntVar(&maxDiagnostics, "max-diagnostics", 0, "cap the number of diagnostics reported (0 = unlimited)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug-level structured logging")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	logger := logging.NewLogger(logging.LoggerConfig{Level: level, Format: "text", Output: cmd.ErrOrStderr()})

	cfg := config.DefaultConfig()
	cfg.Engine.Format = format
	cfg.Engine.MaxDiagnostics = maxDiagnostics
	cfg.Engine.Verbose = verbose
	if err := cfg.Validate(); err != nil {
		exitCode = exitFault
		return err
	}

	schemaFile, err := os.Open(schemaPath)
	if err != nil {
		logger.ValidationError(inputPath, err)
		exitCode = exitFault
		return err
	}
	defer schemaFile.Close()

	logger.SchemaCompileStart(schemaPath)
	compileStart := time.Now()
	sch, err := schema.LoadFromYAML(schemaFile)
	if err != nil {
		logger.ValidationError(inputPath, err)
		exitCode = exitFault
		return err
	}
	logger.SchemaCompileComplete(sch.Title, time.Since(compileStart), len(sch.Patterns))

	documentFile, err := os.Open(inputPath)
	if err != nil {
		logger.ValidationError(inputPath, err)
		exitCode = exitFault
		return err
	}
	defer documentFile.Close()

	document, err := doc.Parse(documentFile)
	if err != nil {
		logger.ValidationError(inputPath, err)
		exitCode = exitFault
		return err
	}

	logger.ValidationStart(inputPath, sch.Title)
	start := time.Now()
	diagnostics, err := sch.Validate(document)
	duration := time.Since(start)
	if err != nil {
		logger.ValidationError(inputPath, err)
		exitCode = exitFault
		return err
	}

	if cfg.Engine.MaxDiagnostics > 0 && len(diagnostics) > cfg.Engine.MaxDiagnostics {
		diagnostics = diagnostics[:cfg.Engine.MaxDiagnostics]
	}

	logger.ValidationComplete(inputPath, duration, len(diagnostics), len(diagnostics) == 0)
	renderDiagnostics(cmd, diagnostics, format)

	if len(diagnostics) > 0 {
		exitCode = exitFound
	} else {
		exitCode = exitClean
	}
	return nil
}

func renderDiagnostics(cmd *cobra.Command, diagnostics []diagnostic.Diagnostic, format string) {
	out := cmd.ErrOrStderr()
	switch format {
	case "json":
		fmt.Fprintln(out, "[")
		for i, d := range diagnostics {
			sep := ","
			if i == len(diagnostics)-1 {
				sep = ""
			}
			fmt.Fprintf(out, "  {\"kind\": %q, \"xpath\": %q, \"childXPath\": %q, \"line\": %d, \"value\": %q}%s\n",
				d.Kind.String(), d.XPath, d.ChildXPath, d.Line, d.Value, sep)
		}
		fmt.Fprintln(out, "]")
	default:
		for _, d := range diagnostics {
			fmt.Fprintln(out, d.String())
		}
	}
}
