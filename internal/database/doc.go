// Package database provides the exporter's local storage.
//
// Only the export history lives here:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	└── history/         # Export record persistence
//
// Usage:
//
//	db, err := database.NewDatabase("./history.db")
//	repo := history.NewRepository(db.DB)
//	records, err := repo.GetRecent(20)
package database
