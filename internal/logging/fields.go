// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldConfig   = "config"
	FieldWrapScan = "wrapscan"
	FieldJobs     = "jobs"

	// Engine fields.
	FieldCommand  = "command"
	FieldForced   = "forced"
	FieldRange    = "range"
	FieldResolved = "resolved"
	FieldKind     = "kind"
	FieldPos      = "pos"
	FieldLine     = "line"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldLinesChecked     = "lines_checked"
	FieldDiagnosticsTotal = "diagnostics_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Command table fields.
	FieldAlias = "alias"
)
