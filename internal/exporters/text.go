package exporters

import (
	"fmt"
	"strings"
)

func renderText(view exportView) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "Book: %s\n", view.Book.Title)
	fmt.Fprintf(&builder, "Author: %s\n", view.Book.Author)
	if view.Book.ContentType != nil {
		fmt.Fprintf(&builder, "Format: %s\n", *view.Book.ContentType)
	}
	fmt.Fprintf(&builder, "\n")
	fmt.Fprintf(&builder, "Highlights:\n")
	fmt.Fprintf(&builder, "===========\n")
	fmt.Fprintf(&builder, "\n")

	for _, h := range view.Highlights {
		fmt.Fprintf(&builder, "[%s] (%s)\n", h.DateCreated, h.styleLabel)
		fmt.Fprintf(&builder, "%s\n", h.Text)
		if h.Note != nil {
			fmt.Fprintf(&builder, "Note: %s\n", *h.Note)
		}
		if h.modified {
			fmt.Fprintf(&builder, "Modified: %s\n", h.DateModified)
		}
		fmt.Fprintf(&builder, "\n")
	}

	return builder.String()
}
