package transmodel

import "time"

// Service is a row of transmodel_service.
type Service struct {
	ID                  int64
	ServiceCode         string
	Name                string
	StartDate           time.Time
	EndDate             *time.Time
	ServiceType         string
	RevisionID          *int64
	TXCFileAttributesID *int64
}

// ServicePattern is a row of transmodel_servicepattern. Geom is WGS-84
// linestring WKT.
type ServicePattern struct {
	ID               int64
	ServicePatternID string
	Origin           string
	Destination      string
	Description      string
	Geom             *string
	RevisionID       *int64
	LineName         *string
}

// ServicePatternStop is a row of transmodel_servicepatternstop, ordered by
// SequenceNumber within its pattern.
type ServicePatternStop struct {
	ID                 int64
	SequenceNumber     int
	AtcoCode           string
	NaptanStopID       *int64
	ServicePatternID   int64
	DepartureTime      *string
	IsTimingPoint      bool
	TXCCommonName      *string
	VehicleJourneyID   *int64
	StopActivityID     *int64
	AutoSequenceNumber *int
}

// VehicleJourney is a row of transmodel_vehiclejourney. StartTime is the
// HH:MM:SS departure; DepartureDayShift marks journeys that leave on the day
// after their operating day.
type VehicleJourney struct {
	ID                int64
	StartTime         *string
	Direction         *string
	JourneyCode       *string
	LineRef           *string
	DepartureDayShift bool
	ServicePatternID  *int64
	BlockNumber       *string
}

// FlexibleServiceOperationPeriod is a row of
// transmodel_flexibleserviceoperationperiod. An all-day entry has both times
// nil; a service-period entry carries both.
type FlexibleServiceOperationPeriod struct {
	ID               int64
	VehicleJourneyID int64
	StartTime        *string
	EndTime          *string
}

// ServiceServicePattern is a row of the transmodel_service_service_patterns
// junction table.
type ServiceServicePattern struct {
	ServiceID        int64
	ServicePatternID int64
}

// ServicePatternLocality is a row of transmodel_servicepattern_localities.
type ServicePatternLocality struct {
	ServicePatternID int64
	LocalityID       string
}

// ServicePatternAdminArea is a row of transmodel_servicepattern_admin_areas.
type ServicePatternAdminArea struct {
	ServicePatternID int64
	AdminAreaID      int64
}

// StopActivity is a row of transmodel_stopactivity, the lookup for pickup and
// set-down behaviour at a pattern stop.
type StopActivity struct {
	ID              int64
	Name            string
	IsPickup        bool
	IsSetdown       bool
	IsDriverRequest bool
}
