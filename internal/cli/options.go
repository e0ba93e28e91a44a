package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	goflags "github.com/jessevdk/go-flags"

	"github.com/mrlokans/ibooks-highlights/internal/applebooks"
	"github.com/mrlokans/ibooks-highlights/internal/config"
	"github.com/mrlokans/ibooks-highlights/internal/database"
	historyrepo "github.com/mrlokans/ibooks-highlights/internal/database/history"
	"github.com/mrlokans/ibooks-highlights/internal/history"
)

// SourceOptions selects the Apple Books stores to read from.
type SourceOptions struct {
	LibraryDB    string `long:"library-db" value-name:"PATH" description:"Path to the Apple Books library database (auto-detected if not specified)"`
	AnnotationDB string `long:"annotation-db" value-name:"PATH" description:"Path to the Apple Books annotation database (auto-detected if not specified)"`
}

// withDefaults fills unset paths from the configuration.
func (o SourceOptions) withDefaults(cfg *config.Config) SourceOptions {
	if o.LibraryDB == "" {
		o.LibraryDB = cfg.AppleBooks.LibraryDBPath
	}
	if o.AnnotationDB == "" {
		o.AnnotationDB = cfg.AppleBooks.AnnotationDBPath
	}
	return o
}

func (o SourceOptions) open(ctx context.Context) (*applebooks.Library, error) {
	library, err := applebooks.OpenLibrary(ctx, o.LibraryDB, o.AnnotationDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open Apple Books library: %w", err)
	}
	return library, nil
}

// parseArgs parses args into opts. Help output goes to out and is reported
// as an error the caller can check with IsHelp.
func parseArgs(name, usage string, opts any, args []string, out io.Writer) error {
	parser := goflags.NewParser(opts, goflags.HelpFlag|goflags.PassDoubleDash)
	parser.Name = name
	parser.Usage = usage

	rest, err := parser.ParseArgs(args)
	if err != nil {
		if goflags.WroteHelp(err) {
			fmt.Fprintln(out, err)
		}
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}
	return nil
}

// IsHelp reports whether err only means that help was requested and printed.
func IsHelp(err error) bool {
	var flagsErr *goflags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp
}

// openHistory opens the export history when a database path is configured.
// It returns a nil service when history is disabled.
func openHistory(path string) (*history.Service, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, func() {}, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := database.NewDatabase(path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open history database: %w", err)
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close history database: %v", err)
		}
	}
	return history.NewService(historyrepo.NewRepository(db.DB)), closeFn, nil
}
