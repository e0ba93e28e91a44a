package exporters

import "github.com/mrlokans/ibooks-highlights/internal/entities"

type HighlightExporter interface {
	Export(book entities.Book, highlights []entities.Highlight) (ExportResult, error)
}

type ExportResult struct {
	TextPath            string `json:"text_path"`
	JSONPath            string `json:"json_path"`
	HighlightsProcessed int    `json:"highlights_processed"`
}
