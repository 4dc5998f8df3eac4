package analysis

import "time"

// Report contains pre-computed views of check results.
// Computed once by Analyze, used by all renderers.
type Report struct {
	// Diagnostics is the flat list for detailed output, in file then line order.
	Diagnostics []DiagnosticEntry `json:"diagnostics"`

	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByKind groups diagnostics by error kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// FileErrors lists files that could not be checked, in path order.
	FileErrors []FileError `json:"fileErrors,omitempty"`

	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry represents a single diagnostic in the report.
type DiagnosticEntry struct {
	FilePath string `json:"filePath"`
	Kind     string `json:"kind"`
	Code     string `json:"code,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Source   string `json:"source"`

	// Offset is the byte offset of the failure within Source, or -1.
	Offset int `json:"offset"`
}

// FileError is a file that could not be read or checked.
type FileError struct {
	FilePath string `json:"filePath"`
	Message  string `json:"message"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Lines           int `json:"linesChecked"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Kinds    []string `json:"kinds,omitempty"`
}

// KindAnalysis contains aggregated data for a single error kind.
type KindAnalysis struct {
	Kind        string   `json:"kind"`
	Code        string   `json:"code,omitempty"`
	Description string   `json:"description"`
	Issues      int      `json:"issues"`
	Errors      int      `json:"errors"`
	Warnings    int      `json:"warnings"`
	Infos       int      `json:"infos"`
	Files       []string `json:"files,omitempty"`
}
