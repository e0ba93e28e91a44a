// Command generate_demo creates a pair of Apple Books style databases filled
// with highlights from public domain books, for trying the exporter on
// machines without Apple Books.
// Usage: go run ./cmd/generate_demo [--dir demo]
package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	goflags "github.com/jessevdk/go-flags"

	"github.com/mrlokans/ibooks-highlights/internal/applebooks/fixture"
	"github.com/mrlokans/ibooks-highlights/internal/entities"
)

var coreDataEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

type options struct {
	Dir string `long:"dir" value-name:"DIR" default:"./demo" description:"Directory the demo databases are written to"`
}

type demoHighlight struct {
	Text  string
	Note  string
	Style int
}

type demoBook struct {
	AssetID     string
	Title       string
	Author      string
	ContentType int
	Highlights  []demoHighlight
}

func main() {
	var opts options
	if _, err := goflags.Parse(&opts); err != nil {
		if goflags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	libraryPath := filepath.Join(opts.Dir, "BKLibrary", "BKLibrary-demo.sqlite")
	annotationPath := filepath.Join(opts.Dir, "AEAnnotation", "AEAnnotation-demo.sqlite")

	log.Printf("Generating demo Apple Books databases in %s...", opts.Dir)

	// Delete existing demo databases to start fresh
	for _, path := range []string{libraryPath, annotationPath} {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Fatalf("Failed to remove existing demo database: %v", err)
		}
	}

	stores, err := fixture.Create(libraryPath, annotationPath)
	if err != nil {
		log.Fatalf("Failed to create demo databases: %v", err)
	}
	defer stores.Close()

	// Older books get older highlights so the menu has a stable order
	created := time.Now().UTC().Add(-time.Duration(len(publicDomainBooks())) * 24 * time.Hour)

	var total int
	for _, book := range publicDomainBooks() {
		err := stores.AddBook(fixture.Book{
			AssetID:     book.AssetID,
			Title:       book.Title,
			Author:      book.Author,
			ContentType: book.ContentType,
		})
		if err != nil {
			log.Printf("Failed to save book %s: %v", book.Title, err)
			continue
		}

		for i, h := range book.Highlights {
			ts := coreDataSeconds(created.Add(time.Duration(i) * time.Minute))
			annotation := fixture.Annotation{
				AssetID:      book.AssetID,
				SelectedText: h.Text,
				Style:        h.Style,
				CreatedAt:    ts,
				ModifiedAt:   ts,
				Location:     (i + 1) * 100,
			}
			if h.Note != "" {
				annotation.Note = h.Note
				annotation.ModifiedAt = ts + 3600
			}
			if err := stores.AddAnnotation(annotation); err != nil {
				log.Printf("Failed to save highlight for %s: %v", book.Title, err)
				continue
			}
			total++
		}

		log.Printf("Saved: %s by %s (%d highlights)", book.Title, book.Author, len(book.Highlights))
		created = created.Add(24 * time.Hour)
	}

	log.Printf("Demo databases created with %d highlights", total)
	log.Printf("Try: APPLEBOOKS_LIBRARY_DB=%s APPLEBOOKS_ANNOTATION_DB=%s ibooks-highlights", libraryPath, annotationPath)
}

func coreDataSeconds(t time.Time) float64 {
	return t.Sub(coreDataEpoch).Seconds()
}

func publicDomainBooks() []demoBook {
	return []demoBook{
		// Marcus Aurelius - Meditations (Public Domain)
		{
			AssetID:     "DEMO-MEDITATIONS",
			Title:       "Meditations",
			Author:      "Marcus Aurelius",
			ContentType: entities.ContentTypeCodeEPUB,
			Highlights: []demoHighlight{
				{Text: "You have power over your mind - not outside events. Realize this, and you will find strength.", Style: int(entities.HighlightStyleYellow)},
				{Text: "The happiness of your life depends upon the quality of your thoughts.", Style: int(entities.HighlightStyleGreen)},
				{Text: "Waste no more time arguing about what a good man should be. Be one.", Note: "Pin above the desk", Style: int(entities.HighlightStylePink)},
				{Text: "The soul becomes dyed with the color of its thoughts.", Style: int(entities.HighlightStyleBlue)},
			},
		},

		// Seneca - Letters from a Stoic (Public Domain)
		{
			AssetID:     "DEMO-SENECA",
			Title:       "Letters from a Stoic",
			Author:      "Seneca",
			ContentType: entities.ContentTypeCodeEPUB,
			Highlights: []demoHighlight{
				{Text: "We suffer more often in imagination than in reality.", Style: int(entities.HighlightStyleYellow)},
				{Text: "It is not that we have a short time to live, but that we waste a lot of it.", Note: "On the shortness of life", Style: int(entities.HighlightStylePurple)},
				{Text: "Difficulties strengthen the mind, as labor does the body.", Style: int(entities.HighlightStyleGreen)},
			},
		},

		// Charles Darwin - On the Origin of Species (Public Domain)
		{
			AssetID:     "DEMO-ORIGIN",
			Title:       "On the Origin of Species",
			Author:      "Charles Darwin",
			ContentType: entities.ContentTypeCodeEPUBFixed,
			Highlights: []demoHighlight{
				{Text: "There is grandeur in this view of life, with its several powers, having been originally breathed into a few forms or into one.", Style: int(entities.HighlightStyleBlue)},
				{Text: "From so simple a beginning endless forms most beautiful and most wonderful have been, and are being, evolved.", Style: int(entities.HighlightStyleYellow)},
			},
		},

		// Jane Austen - Pride and Prejudice (Public Domain)
		{
			AssetID:     "DEMO-PRIDE",
			Title:       "Pride and Prejudice",
			Author:      "Jane Austen",
			ContentType: entities.ContentTypeCodeEPUB,
			Highlights: []demoHighlight{
				{Text: "It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.", Style: int(entities.HighlightStylePink)},
				{Text: "I declare after all there is no enjoyment like reading!", Note: "Caroline Bingley, not entirely sincere", Style: int(entities.HighlightStyleYellow)},
			},
		},

		// Plato - The Republic (Public Domain), stored as a PDF so it never shows up
		{
			AssetID:     "DEMO-REPUBLIC",
			Title:       "The Republic",
			Author:      "Plato",
			ContentType: entities.ContentTypeCodePDF,
			Highlights: []demoHighlight{
				{Text: "The beginning is the most important part of the work.", Style: int(entities.HighlightStyleYellow)},
			},
		},
	}
}
