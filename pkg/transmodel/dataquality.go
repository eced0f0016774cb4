package transmodel

// SchemaViolation is a row of data_quality_schemaviolation.
type SchemaViolation struct {
	BaseSQLModel

	ID         int64
	RevisionID int64
	Filename   string
	Line       int
	Details    string
}

// PostSchemaViolation is a row of data_quality_postschemaviolation.
type PostSchemaViolation struct {
	BaseSQLModel

	ID         int64
	RevisionID int64
	Filename   string
	Details    string
}

// PTIObservation is a row of data_quality_ptiobservation.
type PTIObservation struct {
	BaseSQLModel

	ID         int64
	RevisionID int64
	Filename   string
	Line       int
	Details    string
	Element    string
	Category   string
	Reference  string
}
