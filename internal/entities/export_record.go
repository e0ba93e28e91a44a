package entities

import "time"

type ExportStatus string

const (
	ExportStatusSuccess ExportStatus = "success"
	ExportStatusFailed  ExportStatus = "failed"
)

// ExportRecord is one row of the local export history. It lives in the
// application's own database, never in the Apple Books stores.
type ExportRecord struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	BookID          string       `gorm:"index;size:256" json:"book_id"`
	BookTitle       string       `gorm:"size:512" json:"book_title"`
	Author          string       `gorm:"size:256" json:"author"`
	HighlightsCount int          `json:"highlights_count"`
	TextPath        string       `gorm:"size:1024" json:"text_path,omitempty"`
	JSONPath        string       `gorm:"size:1024" json:"json_path,omitempty"`
	Status          ExportStatus `gorm:"size:20" json:"status"`
	ErrorMsg        string       `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt       time.Time    `gorm:"index" json:"created_at"`
}

func (ExportRecord) TableName() string {
	return "export_records"
}
