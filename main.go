package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/controlplane-com/log-index-templates/pkg/catalog"
	"github.com/controlplane-com/log-index-templates/pkg/generator"
	"github.com/controlplane-com/log-index-templates/pkg/template"
)

func main() {
	os.Exit(start(os.Stdout, os.Stderr))
}

// start configures logging from the environment, runs the requested action
// and returns the process exit code. Failures are always logged at error
// level so they reach stderr whatever LOG_LEVEL is set to.
func start(stdout, stderr io.Writer) int {
	// Configuration from environment
	action := getEnv("ACTION", "generate")
	outputDir := getEnv("OUTPUT_DIR", ".")
	catalogFile := getEnv("CATALOG_FILE", "")
	logLevel := getEnv("LOG_LEVEL", "info")

	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	})))

	cat, err := loadCatalog(catalogFile)
	if err != nil {
		slog.Error("failed to load catalog", "path", catalogFile, "error", err)
		return 1
	}

	slog.Info("index template generator starting",
		"action", action,
		"outputDir", outputDir,
		"categories", len(cat.Categories))

	if err := run(action, outputDir, cat, stdout); err != nil {
		slog.Error("action failed", "action", action, "error", err)
		return 1
	}

	return 0
}

// run executes one action against the catalog
func run(action, outputDir string, cat *catalog.Catalog, out io.Writer) error {
	gen := generator.New(outputDir, template.Variants())

	switch action {
	case "generate":
		result, err := gen.Run(cat.Categories)
		if err != nil {
			return err
		}
		slog.Info("generation completed", "categories", result.Categories, "files", len(result.Files))
	case "check":
		stale, err := gen.Check(cat.Categories)
		if err != nil {
			return err
		}
		for _, path := range stale {
			_, _ = fmt.Fprintln(out, path)
		}
		if len(stale) > 0 {
			return fmt.Errorf("%d template files are out of date", len(stale))
		}
		slog.Info("templates are up to date")
	case "list":
		for _, c := range cat.Categories {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", c.Name, strings.Join(c.Patterns, ","))
		}
	default:
		return fmt.Errorf("unknown action: %s", action)
	}

	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
