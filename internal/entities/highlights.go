package entities

type ContentType string

const (
	ContentTypeEPUB    ContentType = "EPUB"
	ContentTypePDF     ContentType = "PDF"
	ContentTypeUnknown ContentType = "Unknown"
)

// Apple Books ZCONTENTTYPE codes. The vendor does not document them;
// 1 and 2 both show up for EPUB assets, 3 is always a PDF.
const (
	ContentTypeCodeEPUB      = 1
	ContentTypeCodeEPUBFixed = 2
	ContentTypeCodePDF       = 3
)

// NoTextSentinel replaces highlight text when the annotation carries neither
// selected nor representative text.
const NoTextSentinel = "[No Text Available]"

const UnknownAuthor = "Unknown Author"

type HighlightStyle int

const (
	HighlightStyleGreen  HighlightStyle = 1
	HighlightStyleBlue   HighlightStyle = 2
	HighlightStyleYellow HighlightStyle = 3
	HighlightStylePink   HighlightStyle = 4
	HighlightStylePurple HighlightStyle = 5
)

// Book is a library asset that has at least one highlight.
type Book struct {
	ID          string
	Title       string
	Author      string
	ContentType ContentType // empty when the library row has no content type
}

// Highlight is a single annotation of a book, with timestamps already
// normalized to UTC "2006-01-02T15:04:05" strings.
type Highlight struct {
	ID           int64
	Text         string
	DateCreated  string
	DateModified string
	Style        *int   // raw ZANNOTATIONSTYLE, nil when absent
	Note         string // empty when the user attached no note
	Location     int64  // ZPLLOCATIONRANGESTART
}

func ContentTypeFromCode(code int) ContentType {
	switch code {
	case ContentTypeCodeEPUB, ContentTypeCodeEPUBFixed:
		return ContentTypeEPUB
	case ContentTypeCodePDF:
		return ContentTypePDF
	default:
		return ContentTypeUnknown
	}
}

// StyleName maps an annotation style code to its color name.
func StyleName(code int) string {
	switch HighlightStyle(code) {
	case HighlightStyleGreen:
		return "Green"
	case HighlightStyleBlue:
		return "Blue"
	case HighlightStyleYellow:
		return "Yellow"
	case HighlightStylePink:
		return "Pink"
	case HighlightStylePurple:
		return "Purple"
	default:
		return "Unknown"
	}
}

// StyleLabel is StyleName for display, with "No Style" when the code is absent.
func StyleLabel(style *int) string {
	if style == nil {
		return "No Style"
	}
	return StyleName(*style)
}

func (h Highlight) HasNote() bool {
	return h.Note != ""
}

func (h Highlight) WasModified() bool {
	return h.DateModified != h.DateCreated
}
