// Package transxchange lowers TransXChange 2.4 documents into typed records.
// The parse is a single streaming pass over the document's top-level
// sections; leaves with missing required fields are skipped with a warning
// while root-level problems fail the document.
package transxchange

import (
	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/pipelineerror"
)

type TransXChange struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	SchemaVersion        string `xml:",attr"`

	StopPoints              []*StopPoint
	AnnotatedStopPointRefs  []*AnnotatedStopPointRef
	RouteSections           []*RouteSection
	Routes                  []*Route
	JourneyPatternSections  []*JourneyPatternSection
	Operators               []*Operator
	Services                []*Service
	VehicleJourneys         []*VehicleJourney
	FlexibleVehicleJourneys []*FlexibleVehicleJourney
	ServicedOrganisations   []*ServicedOrganisation
}

// Validate checks the required root attributes; failures here are fatal for
// the whole document.
func (doc *TransXChange) Validate() error {
	if doc.CreationDateTime == "" {
		return pipelineerror.Schemaf("TransXChange root is missing CreationDateTime")
	}
	if doc.ModificationDateTime == "" {
		return pipelineerror.Schemaf("TransXChange root is missing ModificationDateTime")
	}
	if doc.SchemaVersion == "" {
		return pipelineerror.New(pipelineerror.CodeSchemaVersionMissing, nil)
	}
	if doc.SchemaVersion != "2.4" {
		return pipelineerror.New(pipelineerror.CodeSchemaVersionNotSupported,
			pipelineerror.Schemaf("SchemaVersion must be 2.4 but is %s", doc.SchemaVersion))
	}

	return nil
}

// resolve materialises the string references between sections into direct
// links so the in-memory model carries no dangling refs. Resolution is never
// transitive; each ref list resolves against this document only.
func (doc *TransXChange) resolve() {
	routeSections := map[string]*RouteSection{}
	for _, routeSection := range doc.RouteSections {
		routeSections[routeSection.ID] = routeSection
	}

	journeyPatternSections := map[string]*JourneyPatternSection{}
	for _, section := range doc.JourneyPatternSections {
		journeyPatternSections[section.ID] = section

		kept := section.JourneyPatternTimingLinks[:0]
		for _, link := range section.JourneyPatternTimingLinks {
			if link.RouteLinkRef != "" && doc.FindRouteLink(link.RouteLinkRef) == nil {
				log.Warn().Str("section", section.ID).Str("timingLink", link.ID).
					Str("ref", link.RouteLinkRef).
					Msg("RouteLinkRef does not resolve, skipping timing link")
				continue
			}
			kept = append(kept, link)
		}
		section.JourneyPatternTimingLinks = kept
	}

	for _, route := range doc.Routes {
		for _, ref := range route.RouteSectionRefs {
			section := routeSections[ref]
			if section == nil {
				log.Warn().Str("route", route.ID).Str("ref", ref).
					Msg("RouteSectionRef does not resolve, keeping longest prefix")
				break
			}
			route.Sections = append(route.Sections, section)
		}
	}

	for _, service := range doc.Services {
		var journeyPatterns []*JourneyPattern
		if service.StandardService != nil {
			journeyPatterns = service.StandardService.JourneyPatterns
		} else if service.FlexibleService != nil {
			journeyPatterns = service.FlexibleService.FlexibleJourneyPatterns
		}

		for _, journeyPattern := range journeyPatterns {
			for _, ref := range journeyPattern.JourneyPatternSectionRefs {
				section := journeyPatternSections[ref]
				if section == nil {
					log.Warn().Str("journeyPattern", journeyPattern.ID).Str("ref", ref).
						Msg("JourneyPatternSectionRef does not resolve, keeping longest prefix")
					break
				}
				journeyPattern.Sections = append(journeyPattern.Sections, section)
			}
		}
	}
}

// FindRouteLink searches every route section in the document for the given
// route link id.
func (doc *TransXChange) FindRouteLink(id string) *RouteLink {
	for _, routeSection := range doc.RouteSections {
		if link := routeSection.GetRouteLink(id); link != nil {
			return link
		}
	}

	return nil
}
