package transmodel

import "time"

// OrganisationDatasetRevision is a row of organisation_datasetrevision.
type OrganisationDatasetRevision struct {
	BaseSQLModel

	ID               int64
	DatasetID        int64
	Status           RevisionStatus
	Name             string
	Description      string
	Comment          string
	IsPublished      bool
	PublishedAt      *time.Time
	OriginalFileHash string
	ModifiedFileHash string
}

// OrganisationTXCFileAttributes is a row of organisation_txcfileattributes,
// one per TransXChange file of a revision.
type OrganisationTXCFileAttributes struct {
	BaseSQLModel

	ID                       int64
	RevisionID               int64
	SchemaVersion            string
	RevisionNumber           int
	CreationDatetime         time.Time
	ModificationDatetime     time.Time
	Filename                 string
	ServiceCode              string
	NationalOperatorCode     string
	LicenceNumber            string
	Origin                   string
	Destination              string
	OperatingPeriodStartDate *time.Time
	OperatingPeriodEndDate   *time.Time
	PublicUse                bool
	LineNames                []string
	Hash                     string
}
