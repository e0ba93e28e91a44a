package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/ibooks-highlights/internal/config"
	"github.com/mrlokans/ibooks-highlights/internal/entities"
	"github.com/mrlokans/ibooks-highlights/internal/exporters"
	"github.com/mrlokans/ibooks-highlights/internal/terminal"
)

type ExportOptions struct {
	SourceOptions
	OutputDir string `short:"o" long:"output" value-name:"DIR" description:"Directory the .txt and .json files are written to (default: ~/ibooks_highlights)"`
	BookID    string `long:"book-id" value-name:"ASSET_ID" description:"Export this book without showing the selection menu"`
	NoDisplay bool   `long:"no-display" description:"Do not print the highlights before exporting"`
	HistoryDB string `long:"history-db" value-name:"PATH" description:"Record the export in this history database"`
}

// ExportCommand lets the user pick a book and exports its highlights
type ExportCommand struct {
	Options ExportOptions

	cfg      *config.Config
	out      io.Writer
	selector terminal.Selector
}

// NewExportCommand creates an ExportCommand reading choices from stdin
func NewExportCommand(cfg *config.Config) *ExportCommand {
	return &ExportCommand{
		cfg:      cfg,
		out:      os.Stdout,
		selector: terminal.NewPromptSelector(os.Stdin, os.Stdout),
	}
}

// ParseFlags parses command line flags
func (cmd *ExportCommand) ParseFlags(args []string) error {
	if err := parseArgs("ibooks-highlights export", "[OPTIONS]", &cmd.Options, args, cmd.out); err != nil {
		return err
	}

	cmd.Options.SourceOptions = cmd.Options.SourceOptions.withDefaults(cmd.cfg)
	if cmd.Options.OutputDir == "" {
		cmd.Options.OutputDir = cmd.cfg.Export.OutputDir
	}
	if cmd.Options.HistoryDB == "" {
		cmd.Options.HistoryDB = cmd.cfg.History.DatabasePath
	}
	return nil
}

// Run executes the export command
func (cmd *ExportCommand) Run() error {
	return cmd.RunContext(context.Background())
}

func (cmd *ExportCommand) RunContext(ctx context.Context) error {
	terminal.ClearScreen(cmd.out)
	fmt.Fprintln(cmd.out, "📚 iBooks Highlights Exporter")
	fmt.Fprintln(cmd.out, "============================")
	fmt.Fprintln(cmd.out)

	library, err := cmd.Options.open(ctx)
	if err != nil {
		return err
	}
	defer library.Close()

	books, err := library.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to read books: %w", err)
	}

	if len(books) == 0 {
		fmt.Fprintln(cmd.out, "No books with highlights found in your iBooks library.")
		return nil
	}

	fmt.Fprintf(cmd.out, "Found %d books with highlights\n\n", len(books))

	book, err := cmd.chooseBook(books)
	if errors.Is(err, terminal.ErrCancelled) {
		fmt.Fprintln(cmd.out, "\nGoodbye! 👋")
		return nil
	}
	if err != nil {
		return err
	}

	terminal.ClearScreen(cmd.out)

	highlights, err := library.ListHighlights(ctx, book.ID)
	if err != nil {
		return fmt.Errorf("failed to read highlights: %w", err)
	}

	if len(highlights) == 0 {
		fmt.Fprintf(cmd.out, "No highlights found for '%s'\n", book.Title)
		return nil
	}

	if !cmd.Options.NoDisplay {
		terminal.DisplayHighlights(cmd.out, book.Title, highlights)
	}

	exporter := exporters.NewFileExporter(cmd.Options.OutputDir)
	result, exportErr := exporter.Export(book, highlights)
	cmd.recordHistory(book, len(highlights), result, exportErr)

	if exportErr != nil {
		return fmt.Errorf("failed to export highlights: %w", exportErr)
	}

	fmt.Fprintf(cmd.out, "✅ Exported %d highlights from '%s'\n", result.HighlightsProcessed, book.Title)
	fmt.Fprintf(cmd.out, "📄 Text: %s\n", result.TextPath)
	fmt.Fprintf(cmd.out, "📄 JSON: %s\n", result.JSONPath)
	return nil
}

func (cmd *ExportCommand) chooseBook(books []entities.Book) (entities.Book, error) {
	if cmd.Options.BookID == "" {
		return terminal.SelectBook(cmd.selector, books)
	}

	for _, book := range books {
		if book.ID == cmd.Options.BookID {
			return book, nil
		}
	}
	return entities.Book{}, fmt.Errorf("no book with highlights has id %s", cmd.Options.BookID)
}

// recordHistory never fails the export, a broken history database is only logged.
func (cmd *ExportCommand) recordHistory(book entities.Book, count int, result exporters.ExportResult, exportErr error) {
	service, closeHistory, err := openHistory(cmd.Options.HistoryDB)
	if err != nil {
		log.Printf("Export history disabled: %v", err)
		return
	}
	defer closeHistory()

	if service == nil {
		return
	}
	if err := service.RecordExport(book, count, result, exportErr); err != nil {
		log.Printf("Failed to record export history: %v", err)
	}
}
