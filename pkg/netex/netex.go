// Package netex lowers NeTEx PublicationDelivery documents into typed frames.
// Every parsed node keeps the source line of its defining element so the
// fares validator can point back at the document.
package netex

import (
	"github.com/transitflow/transitflow/pkg/parse"
	"github.com/transitflow/transitflow/pkg/pipelineerror"
)

type PublicationDelivery struct {
	Version              string
	PublicationTimestamp string
	ParticipantRef       string
	Description          string

	CompositeFrames []*CompositeFrame

	Line int
}

// Validate enforces the root requirements; these are fatal for the document.
func (doc *PublicationDelivery) Validate() error {
	if doc.PublicationTimestamp == "" {
		return pipelineerror.Schemaf("PublicationDelivery is missing PublicationTimestamp")
	}
	if doc.ParticipantRef == "" {
		return pipelineerror.Schemaf("PublicationDelivery is missing ParticipantRef")
	}

	return nil
}

type ValidBetween struct {
	FromDate string
	ToDate   string

	Line int
}

type CompositeFrame struct {
	ID      string
	Version string
	Name    string

	ValidBetween   *ValidBetween
	TypeOfFrameRef *parse.VersionedRef

	ResourceFrames []*ResourceFrame
	ServiceFrames  []*ServiceFrame
	FareFrames     []*FareFrame

	Line int
}

// metadataMarker identifies the UK PI metadata frame, excluded from validity
// aggregation.
const metadataMarker = "METADATA"

type ResourceFrame struct {
	ID      string
	Version string

	Operators         []*Operator
	GroupsOfOperators []*GroupOfOperators

	Line int
}

type Operator struct {
	ID         string
	Version    string
	Name       string
	PublicCode string

	Line int
}

type GroupOfOperators struct {
	ID      string
	Name    string
	Members []*parse.VersionedRef

	Line int
}

type ServiceFrame struct {
	ID      string
	Version string

	TypeOfFrameRef *parse.VersionedRef

	Lines               []*ServiceLine
	ScheduledStopPoints []*ScheduledStopPoint

	Line int
}

type ServiceLine struct {
	ID          string
	Name        string
	PublicCode  string
	OperatorRef *parse.VersionedRef
	LineType    string

	Line int
}

type ScheduledStopPoint struct {
	ID   string
	Name string

	Line int
}
