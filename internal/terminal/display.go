package terminal

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"

	"github.com/mrlokans/ibooks-highlights/internal/entities"
)

const clearSequence = "\x1B[2J\x1B[1;1H"

// ClearScreen wipes the terminal w is attached to. Nothing is written when w
// is not a terminal, including redirected files and in-memory buffers.
func ClearScreen(w io.Writer) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !isTerminal(f.Fd()) {
		return
	}
	fmt.Fprint(w, clearSequence)
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DisplayHighlights prints a book's highlights before they are exported.
func DisplayHighlights(w io.Writer, title string, highlights []entities.Highlight) {
	fmt.Fprintf(w, "\nHighlights for '%s':\n\n", title)

	for _, h := range highlights {
		fmt.Fprintf(w, "🔍 [%s] (%s)\n", h.DateCreated, entities.StyleLabel(h.Style))
		fmt.Fprintf(w, "   %s\n", h.Text)

		if h.HasNote() {
			fmt.Fprintf(w, "   📝 Note: %s\n", h.Note)
		}
		if h.WasModified() {
			fmt.Fprintf(w, "   ✏️  Modified: %s\n", h.DateModified)
		}
		fmt.Fprintln(w)
	}
}
