// Package interfaces documents the abstractions the exporter is built on.
//
// # Interfaces
//
//   - QuerySource: anything that runs a read query against the attached
//     Apple Books stores (internal/applebooks/reader.go). The readers accept
//     *sql.DB, *sql.Conn and *sql.Tx alike; Library.Source returns the pinned
//     *sql.Conn that carries the ATTACH.
//   - HighlightExporter: writes one book's highlights somewhere
//     (internal/exporters/generic.go).
//   - Selector: asks the user to pick one option (internal/terminal/selector.go).
//
// # Adding a New Export Format
//
//  1. Add a renderer next to text.go and json.go in internal/exporters/ that
//     consumes the exportView:
//
//     func renderMarkdown(view exportView) string
//
//  2. Write it from FileExporter.Export alongside the other files, or give it
//     its own exporter:
//
//     type MarkdownExporter struct { OutputDir string }
//
//     func (e *MarkdownExporter) Export(book entities.Book, highlights []entities.Highlight) (ExportResult, error)
//
//     var _ HighlightExporter = (*MarkdownExporter)(nil)
//
// # Adding a New Selector
//
// Implement Select and hand the selector to the export command:
//
//	type FuzzySelector struct{}
//
//	func (s *FuzzySelector) Select(prompt string, options []string) (int, error)
//
// Return terminal.ErrCancelled when the user backs out.
//
// # Compile-Time Interface Checks
//
// Implementations are checked at compile time:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
