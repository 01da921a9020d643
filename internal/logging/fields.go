package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Extraction fields.
	FieldKey     = "key"
	FieldRenamed = "renamed"
	FieldText    = "text"
	FieldBlock   = "block"
	FieldDialect = "dialect"
	FieldPrefix  = "prefix"
	FieldOffset  = "offset"
	FieldReason  = "reason"

	// Run fields.
	FieldWrite  = "write"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"
	FieldBackup = "backup"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesModified   = "files_modified"
	FieldKeysExtracted   = "keys_extracted"
	FieldWarnings        = "warnings"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
