package exporters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrlokans/ibooks-highlights/internal/entities"
	"github.com/mrlokans/ibooks-highlights/internal/utils"
)

// FileExporter writes a book's highlights as a pair of sibling files,
// <title>.txt and <title>.json, under OutputDir.
type FileExporter struct {
	OutputDir string
}

func NewFileExporter(outputDir string) *FileExporter {
	return &FileExporter{OutputDir: outputDir}
}

// Paths returns where the text and JSON exports of a title end up.
func (exporter *FileExporter) Paths(title string) (textPath, jsonPath string) {
	stem := utils.SanitizeTitle(title)
	return filepath.Join(exporter.OutputDir, stem+".txt"), filepath.Join(exporter.OutputDir, stem+".json")
}

// Export renders both formats first, stages them as temp files next to the
// targets and only then renames them into place, so a failure while writing
// never leaves a truncated export behind.
func (exporter *FileExporter) Export(book entities.Book, highlights []entities.Highlight) (ExportResult, error) {
	textPath, jsonPath := exporter.Paths(book.Title)

	view := newExportView(book, highlights)
	textData := []byte(renderText(view))
	jsonData, err := renderJSON(view)
	if err != nil {
		return ExportResult{}, &IoError{File: FileJSON, Path: jsonPath, Err: fmt.Errorf("failed to encode JSON: %w", err)}
	}

	if err := os.MkdirAll(exporter.OutputDir, 0755); err != nil {
		return ExportResult{}, &IoError{File: FileDirectory, Path: exporter.OutputDir, Err: err}
	}

	textTmp, err := writeTemp(textPath, textData)
	if err != nil {
		return ExportResult{}, &IoError{File: FileText, Path: textPath, Err: err}
	}

	jsonTmp, err := writeTemp(jsonPath, jsonData)
	if err != nil {
		os.Remove(textTmp)
		return ExportResult{}, &IoError{File: FileJSON, Path: jsonPath, Err: err}
	}

	if err := os.Rename(textTmp, textPath); err != nil {
		os.Remove(textTmp)
		os.Remove(jsonTmp)
		return ExportResult{}, &IoError{File: FileText, Path: textPath, Err: err}
	}

	if err := os.Rename(jsonTmp, jsonPath); err != nil {
		os.Remove(jsonTmp)
		return ExportResult{}, &IoError{File: FileJSON, Path: jsonPath, Err: err}
	}

	return ExportResult{
		TextPath:            textPath,
		JSONPath:            jsonPath,
		HighlightsProcessed: len(highlights),
	}, nil
}

// writeTemp writes data to a hidden temp file in the target's directory and
// returns its path. The temp name is short so it fits wherever the target does.
func writeTemp(target string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), ".export-*.tmp")
	if err != nil {
		return "", err
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	return tmpPath, nil
}
