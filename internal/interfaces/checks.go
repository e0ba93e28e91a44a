package interfaces

// This file contains compile-time interface implementation checks.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"database/sql"

	"github.com/mrlokans/ibooks-highlights/internal/applebooks"
	"github.com/mrlokans/ibooks-highlights/internal/exporters"
	"github.com/mrlokans/ibooks-highlights/internal/terminal"
)

// =============================================================================
// Source Access
// =============================================================================

// QuerySource implementations
var _ applebooks.QuerySource = (*sql.DB)(nil)
var _ applebooks.QuerySource = (*sql.Conn)(nil)
var _ applebooks.QuerySource = (*sql.Tx)(nil)

// =============================================================================
// Export
// =============================================================================

// HighlightExporter implementations
var _ exporters.HighlightExporter = (*exporters.FileExporter)(nil)

// =============================================================================
// Terminal
// =============================================================================

// Selector implementations
var _ terminal.Selector = (*terminal.PromptSelector)(nil)
