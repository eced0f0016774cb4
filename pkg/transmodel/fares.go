package transmodel

import "time"

// FaresMetadata is a row of fares_faresmetadata.
type FaresMetadata struct {
	DatasetMetadataPtrID    int64
	NumOfFareZones          int
	NumOfLines              int
	NumOfSalesOfferPackages int
	NumOfFareProducts       int
	NumOfUserProfiles       int
	ValidFrom               *time.Time
	ValidTo                 *time.Time
}

// DataCatalogueMetadata is a row of fares_datacataloguemetadata.
type DataCatalogueMetadata struct {
	ID                   int64
	FaresMetadataID      int64
	XMLFileName          string
	ValidFrom            *time.Time
	ValidTo              *time.Time
	NationalOperatorCode []string
	LineID               []string
	LineName             []string
	AtcoArea             []string
	TariffBasis          []string
	ProductType          []string
	ProductName          []string
	UserType             []string
}

// FaresValidation is a row of fares_validator_faresvalidation, one persisted
// observation.
type FaresValidation struct {
	ID                int64
	RevisionID        int64
	FileName          string
	ErrorLineNo       int
	TypeOfObservation string
	Category          string
	Error             string
	Reference         string
	Importance        string
}

// FaresValidationResult is a row of fares_validator_faresvalidationresult,
// the per-revision report summary.
type FaresValidationResult struct {
	BaseSQLModel

	ID             int64
	RevisionID     int64
	Count          int
	ReportFileName string
}
