package exporters

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/ibooks-highlights/internal/entities"
)

func intPtr(v int) *int {
	return &v
}

func testBook() entities.Book {
	return entities.Book{
		ID:          "ASSET-1",
		Title:       "Test Book",
		Author:      "Test Author",
		ContentType: entities.ContentTypeEPUB,
	}
}

func testHighlights() []entities.Highlight {
	return []entities.Highlight{
		{
			ID:           1,
			Text:         "First highlight",
			DateCreated:  "2023-01-01T00:00:00",
			DateModified: "2023-01-01T00:00:00",
			Style:        intPtr(3),
		},
		{
			ID:           2,
			Text:         "Second highlight",
			DateCreated:  "2023-01-02T10:00:00",
			DateModified: "2023-01-03T11:30:00",
			Style:        intPtr(1),
			Note:         "My note",
		},
		{
			ID:           3,
			Text:         entities.NoTextSentinel,
			DateCreated:  "2023-01-04T00:00:00",
			DateModified: "2023-01-04T00:00:00",
		},
	}
}

// --- renderText Tests ---

func TestRenderText(t *testing.T) {
	t.Run("renders the full document", func(t *testing.T) {
		text := renderText(newExportView(testBook(), testHighlights()))

		expected := "Book: Test Book\n" +
			"Author: Test Author\n" +
			"Format: EPUB\n" +
			"\n" +
			"Highlights:\n" +
			"===========\n" +
			"\n" +
			"[2023-01-01T00:00:00] (Yellow)\n" +
			"First highlight\n" +
			"\n" +
			"[2023-01-02T10:00:00] (Green)\n" +
			"Second highlight\n" +
			"Note: My note\n" +
			"Modified: 2023-01-03T11:30:00\n" +
			"\n" +
			"[2023-01-04T00:00:00] (No Style)\n" +
			"[No Text Available]\n" +
			"\n"

		assert.Equal(t, expected, text)
	})

	t.Run("omits format when content type is absent", func(t *testing.T) {
		book := testBook()
		book.ContentType = ""

		text := renderText(newExportView(book, nil))

		assert.NotContains(t, text, "Format:")
		assert.Equal(t, "Book: Test Book\nAuthor: Test Author\n\nHighlights:\n===========\n\n", text)
	})

	t.Run("yellow highlight without note or modification", func(t *testing.T) {
		highlights := []entities.Highlight{{
			ID:           9,
			Text:         "Plain",
			DateCreated:  "2024-06-15T14:30:00",
			DateModified: "2024-06-15T14:30:00",
			Style:        intPtr(3),
		}}

		text := renderText(newExportView(testBook(), highlights))

		assert.Contains(t, text, "[2024-06-15T14:30:00] (Yellow)\nPlain\n\n")
		assert.NotContains(t, text, "Note:")
		assert.NotContains(t, text, "Modified:")
	})

	t.Run("unknown style code", func(t *testing.T) {
		highlights := []entities.Highlight{{Text: "x", Style: intPtr(17)}}

		text := renderText(newExportView(testBook(), highlights))

		assert.Contains(t, text, "] (Unknown)\n")
	})

	t.Run("keeps multiline text as is", func(t *testing.T) {
		highlights := []entities.Highlight{{Text: "Line 1\nLine 2"}}

		text := renderText(newExportView(testBook(), highlights))

		assert.Contains(t, text, "Line 1\nLine 2\n")
	})
}

// --- renderJSON Tests ---

func TestRenderJSON(t *testing.T) {
	t.Run("uses stable key order and resolved styles", func(t *testing.T) {
		data, err := renderJSON(newExportView(testBook(), testHighlights()[:1]))
		require.NoError(t, err)

		expected := `{
  "book": {
    "id": "ASSET-1",
    "title": "Test Book",
    "author": "Test Author",
    "content_type": "EPUB"
  },
  "highlights": [
    {
      "id": 1,
      "text": "First highlight",
      "date_created": "2023-01-01T00:00:00",
      "date_modified": "2023-01-01T00:00:00",
      "style": "Yellow",
      "note": null
    }
  ]
}
`
		assert.Equal(t, expected, string(data))
	})

	t.Run("absent style, note and content type are null", func(t *testing.T) {
		book := testBook()
		book.ContentType = ""

		data, err := renderJSON(newExportView(book, testHighlights()))
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))

		bookJSON := decoded["book"].(map[string]any)
		assert.Contains(t, bookJSON, "content_type")
		assert.Nil(t, bookJSON["content_type"])

		highlights := decoded["highlights"].([]any)
		require.Len(t, highlights, 3)

		second := highlights[1].(map[string]any)
		assert.Equal(t, "Green", second["style"])
		assert.Equal(t, "My note", second["note"])

		third := highlights[2].(map[string]any)
		assert.Contains(t, third, "style")
		assert.Nil(t, third["style"])
		assert.Nil(t, third["note"])
		assert.Equal(t, entities.NoTextSentinel, third["text"])
	})

	t.Run("empty highlight list is an empty array", func(t *testing.T) {
		data, err := renderJSON(newExportView(testBook(), nil))
		require.NoError(t, err)

		assert.Contains(t, string(data), `"highlights": []`)
	})
}

// --- FileExporter Tests ---

func TestFileExporter(t *testing.T) {
	t.Run("creates output directory and both files", func(t *testing.T) {
		outputDir := filepath.Join(t.TempDir(), "nested", "ibooks_highlights")
		exporter := NewFileExporter(outputDir)

		result, err := exporter.Export(testBook(), testHighlights())
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(outputDir, "Test Book.txt"), result.TextPath)
		assert.Equal(t, filepath.Join(outputDir, "Test Book.json"), result.JSONPath)
		assert.Equal(t, 3, result.HighlightsProcessed)
		assert.FileExists(t, result.TextPath)
		assert.FileExists(t, result.JSONPath)

		text, err := os.ReadFile(result.TextPath)
		require.NoError(t, err)
		assert.Contains(t, string(text), "Book: Test Book\n")

		data, err := os.ReadFile(result.JSONPath)
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "ASSET-1", decoded["book"].(map[string]any)["id"])
	})

	t.Run("sanitizes the title into a shared stem", func(t *testing.T) {
		outputDir := t.TempDir()
		exporter := NewFileExporter(outputDir)

		book := testBook()
		book.Title = `a/b\c:d*e?f"g<h>i|j`

		result, err := exporter.Export(book, testHighlights())
		require.NoError(t, err)

		assert.Equal(t, "a_b_c_d_e_f_g_h_i_j.txt", filepath.Base(result.TextPath))
		assert.Equal(t, "a_b_c_d_e_f_g_h_i_j.json", filepath.Base(result.JSONPath))
		assert.Equal(t, outputDir, filepath.Dir(result.TextPath))

		text, err := os.ReadFile(result.TextPath)
		require.NoError(t, err)
		assert.Contains(t, string(text), `Book: a/b\c:d*e?f"g<h>i|j`)
	})

	t.Run("is idempotent", func(t *testing.T) {
		exporter := NewFileExporter(t.TempDir())

		first, err := exporter.Export(testBook(), testHighlights())
		require.NoError(t, err)
		firstText, _ := os.ReadFile(first.TextPath)
		firstJSON, _ := os.ReadFile(first.JSONPath)

		second, err := exporter.Export(testBook(), testHighlights())
		require.NoError(t, err)
		secondText, _ := os.ReadFile(second.TextPath)
		secondJSON, _ := os.ReadFile(second.JSONPath)

		assert.Equal(t, first, second)
		assert.Equal(t, firstText, secondText)
		assert.Equal(t, firstJSON, secondJSON)
	})

	t.Run("overwrites a previous export", func(t *testing.T) {
		exporter := NewFileExporter(t.TempDir())

		_, err := exporter.Export(testBook(), testHighlights())
		require.NoError(t, err)

		result, err := exporter.Export(testBook(), testHighlights()[:1])
		require.NoError(t, err)

		text, err := os.ReadFile(result.TextPath)
		require.NoError(t, err)
		assert.NotContains(t, string(text), "Second highlight")
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		outputDir := t.TempDir()
		exporter := NewFileExporter(outputDir)

		_, err := exporter.Export(testBook(), testHighlights())
		require.NoError(t, err)

		entries, err := os.ReadDir(outputDir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("title near the file name limit", func(t *testing.T) {
		outputDir := t.TempDir()
		exporter := NewFileExporter(outputDir)

		book := testBook()
		book.Title = strings.Repeat("a", 250)

		result, err := exporter.Export(book, testHighlights())
		require.NoError(t, err)
		assert.FileExists(t, result.TextPath)
		assert.FileExists(t, result.JSONPath)

		entries, err := os.ReadDir(outputDir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("fails when output directory cannot be created", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		exporter := NewFileExporter(filepath.Join(blocker, "out"))
		_, err := exporter.Export(testBook(), testHighlights())

		var ioErr *IoError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, FileDirectory, ioErr.File)
	})

	t.Run("names the text file when it cannot be written", func(t *testing.T) {
		outputDir := t.TempDir()
		exporter := NewFileExporter(outputDir)
		textPath, jsonPath := exporter.Paths(testBook().Title)
		require.NoError(t, os.Mkdir(textPath, 0755))

		_, err := exporter.Export(testBook(), testHighlights())

		var ioErr *IoError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, FileText, ioErr.File)
		assert.Equal(t, textPath, ioErr.Path)
		assert.NoFileExists(t, jsonPath)

		entries, err := os.ReadDir(outputDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "only the blocking directory should remain")
	})

	t.Run("names the JSON file when it cannot be written", func(t *testing.T) {
		exporter := NewFileExporter(t.TempDir())
		_, jsonPath := exporter.Paths(testBook().Title)
		require.NoError(t, os.Mkdir(jsonPath, 0755))

		_, err := exporter.Export(testBook(), testHighlights())

		var ioErr *IoError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, FileJSON, ioErr.File)
		assert.Contains(t, err.Error(), "json file")
	})
}
