package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	schemafetcher "github.com/mfalaize/schema-fetcher"
	"github.com/mfalaize/schema-fetcher/fetcher"
	"github.com/mfalaize/schema-fetcher/internal/cliutil"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "version", "-v", "--version":
		fmt.Println(versionLine())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one mirroring pass. args[0] is the destination directory and
// every following argument is a schema URL to mirror.
func run(args []string, out io.Writer) error {
	if len(args) < 2 {
		printUsage()
		return fmt.Errorf("a destination directory and at least one schema URL are required")
	}

	destDir := args[0]
	urls := args[1:]

	if !filepath.IsAbs(destDir) {
		return fmt.Errorf("destination directory must be an absolute path, got %q", destDir)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	f := fetcher.New()
	f.Logger = fetcher.NewSlogAdapter(slog.New(handler))

	result, err := f.Fetch(destDir, urls...)
	if err != nil {
		return err
	}

	for _, file := range result.Files {
		cliutil.Writef(out, "  %s <- %s\n", file.LocalName, file.URL)
	}
	cliutil.Writef(out, "Done! Mirrored %d schemas (%d bytes) into %s in %v\n",
		result.Stats.SchemaCount, result.Stats.TotalBytes, result.DestDir,
		result.FetchTime.Round(time.Millisecond))
	return nil
}

// versionLine renders the output of the version command.
func versionLine() string {
	return fmt.Sprintf("schema-fetcher v%s", schemafetcher.Version())
}

const usageText = `schema-fetcher - XSD schema mirroring tool

Downloads an XSD schema and, recursively, every schema it references via
include/import declarations, rewriting the references so the local copies
form a self-contained mirror.

Usage:
  schema-fetcher <dest-dir> <schema-url> [<schema-url>...]

Arguments:
  dest-dir     absolute path of an existing directory to write the mirror into
  schema-url   absolute http://, https:// or file:// URL of a schema to mirror

Commands:
  version      Show version information
  help         Show this help message

Examples:
  schema-fetcher /srv/schemas/mirror https://example.com/schemas/order.xsd
  schema-fetcher /srv/schemas/mirror file:///srv/schemas/src/order.xsd
  schema-fetcher /tmp/mirror http://schemas.example.test/a.xsd http://schemas.example.test/b.xsd`

func printUsage() {
	cliutil.Writeln(os.Stdout, usageText)
}
