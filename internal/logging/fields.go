package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"

	// Configuration fields.
	FieldConfig = "config"
	FieldWrap   = "wrap"
	FieldWords  = "words"

	// Document fields.
	FieldURI        = "uri"
	FieldDocVersion = "doc_version"
	FieldEdits      = "edits"
	FieldLength     = "length"
	FieldPosition   = "position"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
