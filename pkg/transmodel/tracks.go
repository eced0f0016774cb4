package transmodel

// Track is a row of transmodel_tracks. (FromAtcoCode, ToAtcoCode) is unique;
// Geometry is WGS-84 linestring WKT and Distance the polyline length in
// metres.
type Track struct {
	ID           int64
	FromAtcoCode string
	ToAtcoCode   string
	Geometry     *string
	Distance     *int
}

// StopPointPair identifies a track by its endpoints.
type StopPointPair struct {
	FromAtcoCode string
	ToAtcoCode   string
}

// TrackVehicleJourney is a row of transmodel_tracksvehiclejourney, binding a
// journey to its tracks in travel order.
type TrackVehicleJourney struct {
	ID               int64
	SequenceNumber   *int
	TrackID          int64
	VehicleJourneyID int64
}

// ServicePatternTrack is a row of transmodel_servicepattern_tracks.
type ServicePatternTrack struct {
	ID               int64
	SequenceNumber   int
	TrackID          int64
	ServicePatternID int64
}
