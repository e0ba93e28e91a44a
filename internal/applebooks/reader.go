package applebooks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/mrlokans/ibooks-highlights/internal/entities"
)

// Apple Books uses Core Data timestamp format: seconds since 2001-01-01 00:00:00 UTC
var coreDataEpoch = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)

// TimestampLayout is the layout of every normalized highlight timestamp.
const TimestampLayout = "2006-01-02T15:04:05"

// QuerySource is anything that can run a read query: *sql.DB, *sql.Conn or *sql.Tx.
type QuerySource interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// numericSeconds selects a Core Data date column as REAL. The columns are
// declared TIMESTAMP, so whole-second values come back from the driver as
// time.Time unless cast. A plain CAST would turn text into 0.0, so only
// numeric values are cast and everything else becomes NULL.
func numericSeconds(column string) string {
	return fmt.Sprintf("CASE WHEN typeof(%[1]s) IN ('integer', 'real') THEN CAST(%[1]s AS REAL) END", column)
}

// The catalog is the main schema, annotations live in the attached one.
var booksQuery = fmt.Sprintf(`
	SELECT
		lib.ZASSETID,
		lib.ZTITLE,
		lib.ZAUTHOR,
		lib.ZCONTENTTYPE
	FROM ZBKLIBRARYASSET lib
	JOIN %[1]s.ZAEANNOTATION anno
		ON lib.ZASSETID = anno.ZANNOTATIONASSETID
	WHERE lib.ZTITLE IS NOT NULL
		AND (lib.ZCONTENTTYPE IS NULL OR lib.ZCONTENTTYPE != ?)
		AND anno.ZANNOTATIONDELETED = 0
	GROUP BY lib.ZASSETID, lib.ZTITLE
	ORDER BY MAX(%[2]s) DESC, lib.ZASSETID
`, annotationSchema, numericSeconds("anno.ZANNOTATIONCREATIONDATE"))

var highlightsQuery = fmt.Sprintf(`
	SELECT
		Z_PK,
		ZANNOTATIONSELECTEDTEXT,
		ZANNOTATIONREPRESENTATIVETEXT,
		%[2]s,
		%[3]s,
		typeof(ZANNOTATIONMODIFICATIONDATE),
		ZANNOTATIONSTYLE,
		ZANNOTATIONNOTE,
		ZPLLOCATIONRANGESTART
	FROM %[1]s.ZAEANNOTATION
	WHERE ZANNOTATIONASSETID = ?
		AND ZANNOTATIONDELETED = 0
	ORDER BY ZPLLOCATIONRANGESTART, Z_PK
`, annotationSchema, numericSeconds("ZANNOTATIONCREATIONDATE"), numericSeconds("ZANNOTATIONMODIFICATIONDATE"))

var (
	errMissingCreationDate = errors.New("annotation has no numeric creation date")
	errInvalidModification = errors.New("annotation modification date is not numeric")
)

// ListBooks returns the books that have at least one live annotation, PDFs
// excluded, most recently highlighted first.
func ListBooks(ctx context.Context, source QuerySource) ([]entities.Book, error) {
	rows, err := source.QueryContext(ctx, booksQuery, entities.ContentTypeCodePDF)
	if err != nil {
		return nil, &DataAccessError{Op: "query books", Err: err}
	}

	books, err := collectRows(rows, "book", scanBook)
	if err != nil {
		return nil, &DataAccessError{Op: "read books", Err: err}
	}
	return books, nil
}

// ListHighlights returns the live annotations of one book in reading order.
func ListHighlights(ctx context.Context, source QuerySource, bookID string) ([]entities.Highlight, error) {
	rows, err := source.QueryContext(ctx, highlightsQuery, bookID)
	if err != nil {
		return nil, &DataAccessError{Op: "query highlights", Err: err}
	}

	highlights, err := collectRows(rows, "highlight", scanHighlight)
	if err != nil {
		return nil, &DataAccessError{Op: "read highlights", Err: err}
	}
	return highlights, nil
}

// collectRows decodes every row, dropping the ones that fail to decode so a
// single corrupt annotation does not hide the rest of the library.
func collectRows[T any](rows *sql.Rows, entity string, decode func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := decode(rows)
		if err != nil {
			log.Printf("Skipping row: %v", &rowDecodeError{Entity: entity, Err: err})
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanBook(rows *sql.Rows) (entities.Book, error) {
	var book entities.Book
	var author sql.NullString
	var contentType sql.NullInt64

	if err := rows.Scan(&book.ID, &book.Title, &author, &contentType); err != nil {
		return entities.Book{}, err
	}

	book.Author = entities.UnknownAuthor
	if author.Valid && author.String != "" {
		book.Author = author.String
	}
	if contentType.Valid {
		book.ContentType = entities.ContentTypeFromCode(int(contentType.Int64))
	}

	return book, nil
}

func scanHighlight(rows *sql.Rows) (entities.Highlight, error) {
	var h entities.Highlight
	var selectedText, representText, note sql.NullString
	var createdAt, modifiedAt sql.NullFloat64
	var modifiedType string
	var style, location sql.NullInt64

	err := rows.Scan(
		&h.ID,
		&selectedText,
		&representText,
		&createdAt,
		&modifiedAt,
		&modifiedType,
		&style,
		&note,
		&location,
	)
	if err != nil {
		return entities.Highlight{}, err
	}

	if !createdAt.Valid {
		return entities.Highlight{}, errMissingCreationDate
	}
	// A missing modification date falls back to the creation date, a
	// corrupt one is a decode failure like any other.
	if !modifiedAt.Valid && modifiedType != "null" {
		return entities.Highlight{}, errInvalidModification
	}

	h.Text = highlightText(selectedText, representText)
	h.DateCreated = NormalizeTimestamp(createdAt.Float64)
	h.DateModified = h.DateCreated
	if modifiedAt.Valid {
		h.DateModified = NormalizeTimestamp(modifiedAt.Float64)
	}
	if style.Valid {
		code := int(style.Int64)
		h.Style = &code
	}
	h.Note = note.String
	h.Location = location.Int64

	return h, nil
}

// highlightText picks the first non-empty candidate, falling back to the
// sentinel instead of dropping the highlight.
func highlightText(candidates ...sql.NullString) string {
	for _, c := range candidates {
		if c.Valid && c.String != "" {
			return c.String
		}
	}
	return entities.NoTextSentinel
}

// CoreDataTime converts a Core Data timestamp to UTC, truncated to whole seconds.
func CoreDataTime(raw float64) time.Time {
	return coreDataEpoch.Add(time.Duration(math.Floor(raw)) * time.Second)
}

// NormalizeTimestamp formats a Core Data timestamp as a UTC date-time string.
func NormalizeTimestamp(raw float64) string {
	return CoreDataTime(raw).Format(TimestampLayout)
}
