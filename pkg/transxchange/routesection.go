package transxchange

import "github.com/transitflow/transitflow/pkg/pipelineerror"

type RouteSection struct {
	ID string `xml:"id,attr"`

	RouteLinks []RouteLink `xml:"RouteLink"`
}

func (rs *RouteSection) GetRouteLink(id string) *RouteLink {
	for i := range rs.RouteLinks {
		if rs.RouteLinks[i].ID == id {
			return &rs.RouteLinks[i]
		}
	}

	return nil
}

type RouteLink struct {
	ID                   string `xml:"id,attr"`
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	FromStop string `xml:"From>StopPointRef"`
	ToStop   string `xml:"To>StopPointRef"`
	Distance int

	Track []Location `xml:"Track>Mapping>Location"`
}

func (rl *RouteLink) Validate() error {
	if rl.FromStop == "" || rl.ToStop == "" {
		return pipelineerror.Schemaf("RouteLink %s is missing a stop point ref", rl.ID)
	}

	return nil
}

// TrackCoordinates resolves the polyline to WGS-84 [longitude, latitude]
// pairs, dropping points that cannot be resolved.
func (rl *RouteLink) TrackCoordinates() [][2]float64 {
	var points [][2]float64

	for i := range rl.Track {
		latitude, longitude, ok := rl.Track[i].Coordinates()
		if !ok {
			continue
		}
		points = append(points, [2]float64{longitude, latitude})
	}

	return points
}

type Route struct {
	ID                   string `xml:"id,attr"`
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	PrivateCode      string
	Description      string
	RouteSectionRefs []string `xml:"RouteSectionRef"`

	// resolved against the document's route sections, longest resolvable
	// prefix when a ref dangles
	Sections []*RouteSection `xml:"-"`
}
