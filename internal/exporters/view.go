package exporters

import "github.com/mrlokans/ibooks-highlights/internal/entities"

// exportView is a book with all codes already resolved to display strings.
// Both the text and the JSON renderers read from it.
type exportView struct {
	Book       bookView        `json:"book"`
	Highlights []highlightView `json:"highlights"`
}

type bookView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	ContentType *string `json:"content_type"`
}

type highlightView struct {
	ID           int64   `json:"id"`
	Text         string  `json:"text"`
	DateCreated  string  `json:"date_created"`
	DateModified string  `json:"date_modified"`
	Style        *string `json:"style"`
	Note         *string `json:"note"`

	styleLabel string
	modified   bool
}

func newExportView(book entities.Book, highlights []entities.Highlight) exportView {
	view := exportView{
		Book: bookView{
			ID:     book.ID,
			Title:  book.Title,
			Author: book.Author,
		},
		Highlights: make([]highlightView, 0, len(highlights)),
	}
	if book.ContentType != "" {
		contentType := string(book.ContentType)
		view.Book.ContentType = &contentType
	}

	for _, h := range highlights {
		hv := highlightView{
			ID:           h.ID,
			Text:         h.Text,
			DateCreated:  h.DateCreated,
			DateModified: h.DateModified,
			styleLabel:   entities.StyleLabel(h.Style),
			modified:     h.WasModified(),
		}
		if h.Style != nil {
			style := entities.StyleName(*h.Style)
			hv.Style = &style
		}
		if h.HasNote() {
			note := h.Note
			hv.Note = &note
		}
		view.Highlights = append(view.Highlights, hv)
	}

	return view
}
