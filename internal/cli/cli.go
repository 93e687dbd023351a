package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/promptdeck/recipec/internal/app"
	"github.com/promptdeck/recipec/internal/emit"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("recipec", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
recipec - Compiles recipes into target workflow definitions.

Usage:
  recipec [options] [RECIPE_PATH]

Arguments:
  RECIPE_PATH
    Path to a single .hcl recipe file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	recipeFlag := flagSet.String("recipe", "", "Path to the recipe file or directory.")
	rFlag := flagSet.String("r", "", "Path to the recipe file or directory (shorthand).")
	idFlag := flagSet.String("id", "", "Id of the recipe to compile. Optional when the path declares exactly one recipe.")
	formatFlag := flagSet.String("format", string(emit.Generic), "Target workflow format. Options: 'generic', 'langchain', 'langgraph', or 'langflow'.")
	catalogFlag := flagSet.String("catalog", "", "Path to tool catalog manifest files (.hcl).")
	catalogURLFlag := flagSet.String("catalog-url", "", "URL of the catalog service bulk-lookup endpoint.")
	outFlag := flagSet.String("out", "", "File to write the compilation result to. Defaults to stdout.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *recipeFlag != "" {
		path = *recipeFlag
	} else if *rFlag != "" {
		path = *rFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Recipe path determined.", "path", path)

	if path == "" {
		slog.Debug("No recipe path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// The format string is validated again by the compiler, which reports
	// UnsupportedFormat as a compilation error. Checking here too turns an
	// obvious typo into a usage error before any files are read.
	if _, ok := emit.ParseFormat(*formatFlag); !ok {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid format %q: must be one of %v", *formatFlag, emit.Formats())}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		RecipePath:  path,
		RecipeID:    *idFlag,
		Format:      *formatFlag,
		CatalogPath: *catalogFlag,
		CatalogURL:  *catalogURLFlag,
		OutPath:     *outFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
