package applebooks

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

func containerDocumentsDir() (string, error) {
	if runtime.GOOS != "darwin" {
		return "", fmt.Errorf("Apple Books is only available on macOS")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, "Library", "Containers", "com.apple.iBooksX", "Data", "Documents"), nil
}

// findSQLiteFile returns the first *.sqlite file in dir. Apple Books names
// its stores with a version suffix that changes between releases.
func findSQLiteFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".sqlite" {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("no .sqlite file found in %s", dir)
}

func DefaultAnnotationDBPath() (string, error) {
	docs, err := containerDocumentsDir()
	if err != nil {
		return "", err
	}
	return findSQLiteFile(filepath.Join(docs, "AEAnnotation"))
}

func DefaultLibraryDBPath() (string, error) {
	docs, err := containerDocumentsDir()
	if err != nil {
		return "", err
	}
	return findSQLiteFile(filepath.Join(docs, "BKLibrary"))
}
