package transmodel

// NaptanStopPoint is a row of naptan_stoppoint. Location is WGS-84 WKT
// (SRID 4326).
type NaptanStopPoint struct {
	BaseSQLModel

	ID          int64
	AtcoCode    string
	NaptanCode  *string
	CommonName  string
	Street      *string
	Indicator   *string
	Location    *string
	AdminAreaID *int64
	LocalityID  *string
	StopAreas   []string
	BusStopType *string
	StopType    *string
}
