package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldFramework   = "framework"
	FieldAppRoot     = "app_root"
	FieldVirtualPath = "virtual_path"
	FieldFix         = "fix"
	FieldDryRun      = "dry_run"
	FieldJobs        = "jobs"

	// Parse fields.
	FieldTagPrefix = "tag_prefix"
	FieldTagName   = "tag_name"
	FieldTypeName  = "type_name"
	FieldControlID = "control_id"
	FieldSrc       = "src"
	FieldLine      = "line"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"
	FieldControls         = "controls"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Check fields.
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldEnabled     = "enabled"
	FieldFixable     = "fixable"
	FieldDescription = "description"

	// Catalog fields.
	FieldBase       = "base"
	FieldAssembly   = "assembly"
	FieldProperties = "properties"
)
