package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mrlokans/ibooks-highlights/internal/cli"
	"github.com/mrlokans/ibooks-highlights/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	cfg := config.NewConfig()

	// No command, or only flags, means the interactive export
	if len(os.Args) < 2 || (strings.HasPrefix(os.Args[1], "-") && !isHelpArg(os.Args[1])) {
		run(cli.NewExportCommand(cfg), os.Args[1:])
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	switch name {
	case "export":
		run(cli.NewExportCommand(cfg), args)

	case "list":
		run(cli.NewListCommand(cfg), args)

	case "history":
		run(cli.NewHistoryCommand(cfg), args)

	case "version":
		fmt.Printf("ibooks-highlights %s (%s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}
}

func run(cmd command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		if cli.IsHelp(err) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help"
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [command] [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  export    Pick a book and export its highlights to .txt and .json (default)\n")
	fmt.Fprintf(os.Stderr, "  list      List books that have highlights\n")
	fmt.Fprintf(os.Stderr, "  history   Show recent exports (requires HISTORY_DB_PATH)\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  APPLEBOOKS_LIBRARY_DB     Apple Books library database (auto-detected on macOS)\n")
	fmt.Fprintf(os.Stderr, "  APPLEBOOKS_ANNOTATION_DB  Apple Books annotation database (auto-detected on macOS)\n")
	fmt.Fprintf(os.Stderr, "  EXPORT_DIR                Output directory (default: ~/%s)\n", config.DefaultExportDirName)
	fmt.Fprintf(os.Stderr, "  HISTORY_DB_PATH           Export history database (disabled when empty)\n")
	fmt.Fprintf(os.Stderr, "  HISTORY_LIMIT             Records shown by 'history' (default: %d)\n", config.DefaultHistoryLimit)
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
