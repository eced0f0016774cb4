package netex

import "github.com/transitflow/transitflow/pkg/parse"

// FareFrame is a tagged variant keyed on its TypeOfFrameRef. Exactly one of
// Product, Network, Common is non-nil, matching Kind; frames with an
// unrecognised ref carry none of them.
type FareFrame struct {
	ID      string
	Version string
	Name    string

	TypeOfFrameRef *parse.VersionedRef
	Kind           FareFrameKind

	Product *FareProductFrame
	Network *FareNetworkFrame
	Common  *FareCommonFrame

	Line int
}

// FareProductFrame holds the UK_PI_FARE_PRODUCT payload: tariffs, products,
// prices and sales offers.
type FareProductFrame struct {
	Tariffs                   []*Tariff
	PreassignedFareProducts   []*FareProduct
	AmountOfPriceUnitProducts []*FareProduct
	PriceGroups               []*PriceGroup
	FareTables                []*FareTable
	SalesOfferPackages        []*SalesOfferPackage
}

// FareNetworkFrame holds the UK_PI_FARE_NETWORK payload.
type FareNetworkFrame struct {
	FareZones []*FareZone
}

// FareCommonFrame holds the UK_PI_COMMON payload.
type FareCommonFrame struct {
	PricingParameterSet *PricingParameterSet
}

type PricingParameterSet struct {
	ID string

	Line int
}

type FareZone struct {
	ID      string
	Version string
	Name    string

	Members []*FareZoneMember

	Line int
}

// FareZoneMember is a ScheduledStopPointRef inside a fare zone's members
// list. AtcoCode and NaptanCode are derived from the ref scheme where the
// ref uses the atco: or naptan: form.
type FareZoneMember struct {
	Ref        string
	Name       string
	AtcoCode   string
	NaptanCode string

	Line int
}

type Tariff struct {
	ID      string
	Version string
	Name    string

	ValidFrom string
	ValidTo   string

	OperatorRef         *parse.VersionedRef
	GroupOfOperatorsRef *parse.VersionedRef
	LineRef             *parse.VersionedRef
	TypeOfTariffRef     *parse.VersionedRef
	TariffBasis         TariffBasis

	TimeIntervals         []*TimeInterval
	FareStructureElements []*FareStructureElement

	// TimeIntervalsLine is set when the timeIntervals container element is
	// present, even if empty. Zero means the container is absent.
	TimeIntervalsLine int

	Line int
}

type TimeInterval struct {
	ID          string
	Version     string
	Name        string
	Description string

	Line int
}

type FareStructureElement struct {
	ID      string
	Version string
	Name    string

	TypeOfFareStructureElementRef *parse.VersionedRef
	TimeIntervalRefs              []*parse.VersionedRef
	DistanceMatrixElements        []*DistanceMatrixElement
	GenericParameterAssignment    *GenericParameterAssignment

	Line int
}

type DistanceMatrixElement struct {
	ID           string
	Version      string
	StartZoneRef *parse.VersionedRef
	EndZoneRef   *parse.VersionedRef
	PriceGroups  []*parse.VersionedRef

	Line int
}

type GenericParameterAssignment struct {
	ID      string
	Version string
	Order   string

	TypeOfAccessRightAssignmentRef *parse.VersionedRef
	ValidityParameters             *ValidityParameters
	Limitations                    *Limitations

	Line int
}

type ValidityParameters struct {
	LineRef *parse.VersionedRef

	Line int
}

type Limitations struct {
	UserProfile         *UserProfile
	RoundTrip           *RoundTrip
	FrequencyOfUse      *FrequencyOfUse
	UsageValidityPeriod *UsageValidityPeriod

	Line int
}

type UserProfile struct {
	ID         string
	Name       string
	UserType   string
	MinimumAge string
	MaximumAge string

	Line int
}

type RoundTrip struct {
	ID       string
	TripType string

	Line int
}

type FrequencyOfUse struct {
	ID                 string
	FrequencyOfUseType string

	Line int
}

type UsageValidityPeriod struct {
	ID             string
	UsageTrigger   string
	UsageEnd       string
	ActivationMean string

	Line int
}

// FareProduct covers both PreassignedFareProduct and
// AmountOfPriceUnitProduct; ElementName records which one it came from.
type FareProduct struct {
	ElementName string

	ID      string
	Version string
	Name    string

	ChargingMomentRef    *parse.VersionedRef
	ChargingMomentType   ChargingMoment
	TypeOfFareProductRef *parse.VersionedRef
	OperatorRef          *parse.VersionedRef
	ProductType          ProductType

	ConditionSummary      *ConditionSummary
	ValidableElements     []*ValidableElement
	AccessRightsInProduct []*AccessRightInProduct

	Line int
}

type ConditionSummary struct {
	FareStructureType string
	TariffBasis       string
	IsPersonal        string

	Line int
}

type ValidableElement struct {
	ID                       string
	Name                     string
	FareStructureElementRefs []*parse.VersionedRef

	Line int
}

type AccessRightInProduct struct {
	ID    string
	Order string

	ValidableElementRef *parse.VersionedRef

	Line int
}

type PriceGroup struct {
	ID      string
	Version string
	Name    string

	GeographicalIntervalPrices []*GeographicalIntervalPrice

	Line int
}

type GeographicalIntervalPrice struct {
	ID     string
	Amount string

	Line int
}

type SalesOfferPackage struct {
	ID      string
	Version string
	Name    string

	DistributionAssignments          []*DistributionAssignment
	SalesOfferPackageElements        []*SalesOfferPackageElement

	Line int
}

type DistributionAssignment struct {
	ID                      string
	Order                   string
	DistributionChannelType string
	PaymentMethods          string

	Line int
}

type SalesOfferPackageElement struct {
	ID    string
	Order string

	TypeOfTravelDocumentRef *parse.VersionedRef
	FareProductRef          *parse.VersionedRef

	Line int
}

type FareTable struct {
	ID      string
	Version string
	Name    string

	PricesFor []*parse.VersionedRef
	UsedIn    []*parse.VersionedRef
	Specifics *FareTableSpecifics

	Columns  []*FareTableColumn
	Rows     []*FareTableRow
	Includes []*FareTable
	Cells    []*FareTableCell

	Line int
}

type FareTableSpecifics struct {
	TariffZoneRef *parse.VersionedRef

	Line int
}

type FareTableColumn struct {
	ID   string
	Name string

	Line int
}

type FareTableRow struct {
	ID   string
	Name string

	Line int
}

type FareTableCell struct {
	ID        string
	ColumnRef *parse.VersionedRef
	RowRef    *parse.VersionedRef

	DistanceMatrixElementPrice *DistanceMatrixElementPrice

	Line int
}

type DistanceMatrixElementPrice struct {
	ID     string
	Amount string

	GeographicalIntervalPriceRef *parse.VersionedRef
	DistanceMatrixElementRef     *parse.VersionedRef

	Line int
}
