package config

const (
	// DefaultExportDirName is created under the user's home directory
	DefaultExportDirName = "ibooks_highlights"

	// DefaultHistoryLimit is how many export records the history command prints
	DefaultHistoryLimit = 20
)
