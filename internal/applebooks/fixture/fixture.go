// Package fixture builds SQLite files shaped like the Apple Books catalog and
// annotation stores. Only the columns the exporter reads are created.
package fixture

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const librarySchema = `
	CREATE TABLE ZBKLIBRARYASSET (
		Z_PK INTEGER PRIMARY KEY,
		ZASSETID VARCHAR,
		ZTITLE VARCHAR,
		ZAUTHOR VARCHAR,
		ZCONTENTTYPE INTEGER
	)
`

// Column types follow the real store: the dates are TIMESTAMP columns
// holding Core Data seconds.
const annotationSchema = `
	CREATE TABLE ZAEANNOTATION (
		Z_PK INTEGER PRIMARY KEY,
		ZANNOTATIONASSETID VARCHAR,
		ZANNOTATIONSELECTEDTEXT VARCHAR,
		ZANNOTATIONREPRESENTATIVETEXT VARCHAR,
		ZANNOTATIONNOTE VARCHAR,
		ZANNOTATIONSTYLE INTEGER,
		ZANNOTATIONCREATIONDATE TIMESTAMP,
		ZANNOTATIONMODIFICATIONDATE TIMESTAMP,
		ZPLLOCATIONRANGESTART INTEGER,
		ZANNOTATIONDELETED INTEGER DEFAULT 0
	)
`

// Book is a ZBKLIBRARYASSET row. A nil field is stored as NULL.
type Book struct {
	AssetID     string
	Title       any
	Author      any
	ContentType any
}

// Annotation is a ZAEANNOTATION row. A nil field is stored as NULL.
type Annotation struct {
	ID                 int64 // Z_PK, assigned by SQLite when zero
	AssetID            string
	SelectedText       any
	RepresentativeText any
	Note               any
	Style              any
	CreatedAt          any
	ModifiedAt         any
	Location           any
	Deleted            bool
}

// TB is the part of testing.TB the helpers need, so the package can be
// linked into binaries without importing testing.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	TempDir() string
	Cleanup(func())
}

type Stores struct {
	LibraryPath    string
	AnnotationPath string
	library        *sql.DB
	annotation     *sql.DB
}

// Create makes both database files with empty tables.
func Create(libraryPath, annotationPath string) (*Stores, error) {
	library, err := createDB(libraryPath, librarySchema)
	if err != nil {
		return nil, fmt.Errorf("failed to create library database: %w", err)
	}

	annotation, err := createDB(annotationPath, annotationSchema)
	if err != nil {
		library.Close()
		return nil, fmt.Errorf("failed to create annotation database: %w", err)
	}

	return &Stores{
		LibraryPath:    libraryPath,
		AnnotationPath: annotationPath,
		library:        library,
		annotation:     annotation,
	}, nil
}

// New creates empty stores in a temp dir and closes them with the test.
func New(t TB) *Stores {
	t.Helper()

	dir := t.TempDir()
	stores, err := Create(filepath.Join(dir, "BKLibrary.sqlite"), filepath.Join(dir, "AEAnnotation.sqlite"))
	if err != nil {
		t.Fatalf("Failed to create Apple Books fixture: %v", err)
	}
	t.Cleanup(func() { stores.Close() })

	return stores
}

func createDB(path, schema string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *Stores) AddBook(b Book) error {
	_, err := s.library.Exec(`
		INSERT INTO ZBKLIBRARYASSET (ZASSETID, ZTITLE, ZAUTHOR, ZCONTENTTYPE)
		VALUES (?, ?, ?, ?)
	`, b.AssetID, b.Title, b.Author, b.ContentType)
	return err
}

func (s *Stores) AddAnnotation(a Annotation) error {
	var id any
	if a.ID != 0 {
		id = a.ID
	}

	deleted := 0
	if a.Deleted {
		deleted = 1
	}

	_, err := s.annotation.Exec(`
		INSERT INTO ZAEANNOTATION (
			Z_PK, ZANNOTATIONASSETID, ZANNOTATIONSELECTEDTEXT, ZANNOTATIONREPRESENTATIVETEXT,
			ZANNOTATIONNOTE, ZANNOTATIONSTYLE, ZANNOTATIONCREATIONDATE,
			ZANNOTATIONMODIFICATIONDATE, ZPLLOCATIONRANGESTART, ZANNOTATIONDELETED
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, a.AssetID, a.SelectedText, a.RepresentativeText, a.Note, a.Style,
		a.CreatedAt, a.ModifiedAt, a.Location, deleted)
	return err
}

// MustAddBook and MustAddAnnotation fail the test on insert errors.
func (s *Stores) MustAddBook(t TB, b Book) {
	t.Helper()
	if err := s.AddBook(b); err != nil {
		t.Fatalf("Failed to insert test book: %v", err)
	}
}

func (s *Stores) MustAddAnnotation(t TB, a Annotation) {
	t.Helper()
	if err := s.AddAnnotation(a); err != nil {
		t.Fatalf("Failed to insert test annotation: %v", err)
	}
}

// Close releases the write handles so the stores can be reopened read-only.
func (s *Stores) Close() error {
	libErr := s.library.Close()
	if err := s.annotation.Close(); err != nil {
		return err
	}
	return libErr
}
