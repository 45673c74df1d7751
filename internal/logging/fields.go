package logging

// Standardized attribute keys. Keeping these as constants makes log output
// greppable and lets the console handler pull well-known fields into the
// record header.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldWord      = "word"
	FieldChapter   = "chapter"
	FieldSource    = "source"
	FieldEventType = "event_type"
	FieldImpact    = "impact"
	FieldErrorHint = "error_hint"
)
