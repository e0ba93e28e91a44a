package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/segmentio/encoding/json"

	"github.com/mrlokans/ibooks-highlights/internal/config"
	"github.com/mrlokans/ibooks-highlights/internal/entities"
	"github.com/mrlokans/ibooks-highlights/internal/history"
	"github.com/mrlokans/ibooks-highlights/internal/terminal"
)

type ListOptions struct {
	SourceOptions
	JSON      bool   `long:"json" description:"Print the books as a JSON array"`
	HistoryDB string `long:"history-db" value-name:"PATH" description:"Show how often each book was exported, from this history database"`
}

// ListCommand prints the books that have highlights
type ListCommand struct {
	Options ListOptions

	cfg *config.Config
	out io.Writer
}

func NewListCommand(cfg *config.Config) *ListCommand {
	return &ListCommand{cfg: cfg, out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *ListCommand) ParseFlags(args []string) error {
	if err := parseArgs("ibooks-highlights list", "[OPTIONS]", &cmd.Options, args, cmd.out); err != nil {
		return err
	}
	cmd.Options.SourceOptions = cmd.Options.SourceOptions.withDefaults(cmd.cfg)
	if cmd.Options.HistoryDB == "" {
		cmd.Options.HistoryDB = cmd.cfg.History.DatabasePath
	}
	return nil
}

type bookJSON struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	ContentType   *string `json:"content_type"`
	TimesExported *int64  `json:"times_exported,omitempty"`
}

// Run executes the list command
func (cmd *ListCommand) Run() error {
	ctx := context.Background()

	library, err := cmd.Options.open(ctx)
	if err != nil {
		return err
	}
	defer library.Close()

	books, err := library.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("failed to read books: %w", err)
	}

	service, closeHistory, err := openHistory(cmd.Options.HistoryDB)
	if err != nil {
		log.Printf("Export history disabled: %v", err)
	}
	defer closeHistory()

	if cmd.Options.JSON {
		return cmd.printJSON(books, service)
	}

	if len(books) == 0 {
		fmt.Fprintln(cmd.out, "ℹ️  No books with highlights found")
		return nil
	}

	fmt.Fprintf(cmd.out, "📚 %d books with highlights\n\n", len(books))
	for _, book := range books {
		fmt.Fprintf(cmd.out, "%s\n   id: %s\n", terminal.BookLabel(book), book.ID)
		if count, ok := timesExported(service, book.ID); ok {
			fmt.Fprintf(cmd.out, "   exported %d times\n", count)
		}
	}
	return nil
}

func (cmd *ListCommand) printJSON(books []entities.Book, service *history.Service) error {
	items := make([]bookJSON, 0, len(books))
	for _, book := range books {
		item := bookJSON{ID: book.ID, Title: book.Title, Author: book.Author}
		if book.ContentType != "" {
			contentType := string(book.ContentType)
			item.ContentType = &contentType
		}
		if count, ok := timesExported(service, book.ID); ok {
			item.TimesExported = &count
		}
		items = append(items, item)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode books: %w", err)
	}
	fmt.Fprintln(cmd.out, string(data))
	return nil
}

// timesExported reports false when history is disabled or unreadable.
func timesExported(service *history.Service, bookID string) (int64, bool) {
	if service == nil {
		return 0, false
	}
	count, err := service.TimesExported(bookID)
	if err != nil {
		log.Printf("Failed to count exports of %s: %v", bookID, err)
		return 0, false
	}
	return count, true
}
