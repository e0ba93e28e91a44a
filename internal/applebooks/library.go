package applebooks

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mrlokans/ibooks-highlights/internal/entities"
)

// annotationSchema is the name the annotation store is attached under.
const annotationSchema = "highlights"

// Library is a read-only view over the Apple Books catalog with the
// annotation store attached to it.
//
// ATTACH is per connection, so the library pins a single connection from the
// pool and every query goes through it.
type Library struct {
	db               *sql.DB
	conn             *sql.Conn
	libraryDBPath    string
	annotationDBPath string
}

// OpenLibrary opens both Apple Books stores. Empty paths are resolved to the
// default macOS locations.
func OpenLibrary(ctx context.Context, libraryDBPath, annotationDBPath string) (*Library, error) {
	var err error

	if libraryDBPath == "" {
		libraryDBPath, err = DefaultLibraryDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to find library database: %w", err)
		}
	}

	if annotationDBPath == "" {
		annotationDBPath, err = DefaultAnnotationDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to find annotation database: %w", err)
		}
	}

	// Verify files exist, SQLite would otherwise happily create empty ones
	if _, err := os.Stat(libraryDBPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("library database not found: %s", libraryDBPath)
	}
	if _, err := os.Stat(annotationDBPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("annotation database not found: %s", annotationDBPath)
	}

	db, err := sql.Open("sqlite3", readOnlyDSN(libraryDBPath))
	if err != nil {
		return nil, &DataAccessError{Op: "open library database", Err: err}
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, &DataAccessError{Op: "open library database", Err: err}
	}

	attach := fmt.Sprintf("ATTACH DATABASE ? AS %s", annotationSchema)
	if _, err := conn.ExecContext(ctx, attach, readOnlyDSN(annotationDBPath)); err != nil {
		conn.Close()
		db.Close()
		return nil, &DataAccessError{Op: "attach annotation database", Err: err}
	}

	return &Library{
		db:               db,
		conn:             conn,
		libraryDBPath:    libraryDBPath,
		annotationDBPath: annotationDBPath,
	}, nil
}

// Source returns the query source both readers run against.
func (l *Library) Source() QuerySource {
	return l.conn
}

func (l *Library) LibraryDBPath() string {
	return l.libraryDBPath
}

func (l *Library) AnnotationDBPath() string {
	return l.annotationDBPath
}

func (l *Library) ListBooks(ctx context.Context) ([]entities.Book, error) {
	return ListBooks(ctx, l.conn)
}

func (l *Library) ListHighlights(ctx context.Context, bookID string) ([]entities.Highlight, error) {
	return ListHighlights(ctx, l.conn, bookID)
}

func (l *Library) Close() error {
	connErr := l.conn.Close()
	if err := l.db.Close(); err != nil {
		return err
	}
	return connErr
}

// readOnlyDSN builds a read-only SQLite URI filename. The path is made
// absolute first, a relative one would be parsed as the URI authority.
func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: path, RawQuery: "mode=ro"}
	return u.String()
}
