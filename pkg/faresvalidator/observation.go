// Package faresvalidator evaluates a fixed catalog of structural and semantic
// rules against a parsed NeTEx document, producing the observations persisted
// in fares validation reports.
package faresvalidator

// TypeSimpleFailure is the observation type recorded for every catalog rule.
const TypeSimpleFailure = "Simple fares validation failure"

const (
	ImportanceCritical = "Critical"
	ImportanceAdvisory = "Advisory"
)

const (
	CategoryCompositeFrames = "Composite Frames"
	CategoryOperators       = "Operators"
	CategoryTariffs         = "Tariffs"
	CategoryFareProducts    = "Fare Products"
	CategoryServiceFrames   = "Service Frames"
)

// Observation is a single finding, ready to persist as one row of a
// validation report.
type Observation struct {
	Code              int
	Filename          string
	Line              int
	TypeOfObservation string
	Category          string
	Importance        string
	Error             string
	Reference         string
	Note              string
}
