package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type (
	Config struct {
		AppleBooks
		Export
		History
	}

	AppleBooks struct {
		LibraryDBPath    string // BKLibrary store, auto-detected when empty
		AnnotationDBPath string // AEAnnotation store, auto-detected when empty
	}
	Export struct {
		OutputDir string
	}
	History struct {
		DatabasePath string // Local export history database, disabled when empty
		Limit        int
	}
)

// DefaultExportDir returns ~/ibooks_highlights, or a relative directory if
// the home directory cannot be determined.
func DefaultExportDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultExportDirName
	}
	return filepath.Join(homeDir, DefaultExportDirName)
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("applebooks_library_db", "")
	v.SetDefault("applebooks_annotation_db", "")
	v.SetDefault("export_dir", DefaultExportDir())
	v.SetDefault("history_db_path", "")
	v.SetDefault("history_limit", DefaultHistoryLimit)

	return &Config{
		AppleBooks: AppleBooks{
			LibraryDBPath:    v.GetString("APPLEBOOKS_LIBRARY_DB"),
			AnnotationDBPath: v.GetString("APPLEBOOKS_ANNOTATION_DB"),
		},
		Export: Export{
			OutputDir: v.GetString("EXPORT_DIR"),
		},
		History: History{
			DatabasePath: v.GetString("HISTORY_DB_PATH"),
			Limit:        v.GetInt("HISTORY_LIMIT"),
		},
	}
}
