package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/ibooks-highlights/internal/config"
	"github.com/mrlokans/ibooks-highlights/internal/entities"
)

const historyTimeLayout = "2006-01-02 15:04:05"

type HistoryOptions struct {
	HistoryDB string `long:"history-db" value-name:"PATH" description:"Path to the export history database (default: $HISTORY_DB_PATH)"`
	Limit     int    `short:"n" long:"limit" value-name:"N" description:"Number of records to show (default: $HISTORY_LIMIT or 20)"`
	PruneDays int    `long:"prune-days" value-name:"DAYS" description:"Delete records older than this many days before listing"`
	BookID    string `long:"book-id" value-name:"ASSET_ID" description:"Only show exports of this book"`
}

// HistoryCommand prints the most recent exports
type HistoryCommand struct {
	Options HistoryOptions

	cfg *config.Config
	out io.Writer
}

func NewHistoryCommand(cfg *config.Config) *HistoryCommand {
	return &HistoryCommand{cfg: cfg, out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *HistoryCommand) ParseFlags(args []string) error {
	if err := parseArgs("ibooks-highlights history", "[OPTIONS]", &cmd.Options, args, cmd.out); err != nil {
		return err
	}

	if cmd.Options.HistoryDB == "" {
		cmd.Options.HistoryDB = cmd.cfg.History.DatabasePath
	}
	if cmd.Options.Limit <= 0 {
		cmd.Options.Limit = cmd.cfg.History.Limit
	}
	if cmd.Options.PruneDays < 0 {
		return fmt.Errorf("--prune-days must not be negative")
	}
	return nil
}

// Run executes the history command
func (cmd *HistoryCommand) Run() error {
	if cmd.Options.HistoryDB == "" {
		return errors.New("export history is disabled, set HISTORY_DB_PATH or pass --history-db")
	}

	service, closeHistory, err := openHistory(cmd.Options.HistoryDB)
	if err != nil {
		return err
	}
	defer closeHistory()

	if cmd.Options.PruneDays > 0 {
		deleted, err := service.Prune(time.Duration(cmd.Options.PruneDays) * 24 * time.Hour)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		fmt.Fprintf(cmd.out, "🧹 Removed %d old records\n", deleted)
	}

	var records []entities.ExportRecord
	if cmd.Options.BookID != "" {
		records, err = service.ForBook(cmd.Options.BookID)
	} else {
		records, err = service.Recent(cmd.Options.Limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.out, "ℹ️  No exports recorded yet")
		return nil
	}

	fmt.Fprintln(cmd.out, "=== Recent Exports ===")
	for _, record := range records {
		cmd.printRecord(record)
	}
	return nil
}

func (cmd *HistoryCommand) printRecord(record entities.ExportRecord) {
	when := record.CreatedAt.Local().Format(historyTimeLayout)

	if record.Status == entities.ExportStatusFailed {
		fmt.Fprintf(cmd.out, "❌ %s  \"%s\" by %s\n", when, record.BookTitle, record.Author)
		fmt.Fprintf(cmd.out, "   error: %s\n", record.ErrorMsg)
		return
	}

	fmt.Fprintf(cmd.out, "✅ %s  \"%s\" by %s (%d highlights)\n", when, record.BookTitle, record.Author, record.HighlightsCount)
	fmt.Fprintf(cmd.out, "   %s\n", record.TextPath)
	fmt.Fprintf(cmd.out, "   %s\n", record.JSONPath)
}
