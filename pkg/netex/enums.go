package netex

// TariffBasis is the NeTEx tariffBasis enumeration as used by the UK profile.
type TariffBasis string

const (
	TariffBasisFlat         TariffBasis = "flat"
	TariffBasisDistance     TariffBasis = "distance"
	TariffBasisUnitSection  TariffBasis = "unitSection"
	TariffBasisZone         TariffBasis = "zone"
	TariffBasisZoneToZone   TariffBasis = "zoneToZone"
	TariffBasisPointToPoint TariffBasis = "pointToPoint"
	TariffBasisRoute        TariffBasis = "route"
	TariffBasisTour         TariffBasis = "tour"
	TariffBasisGroup        TariffBasis = "group"
	TariffBasisDiscount     TariffBasis = "discount"
	TariffBasisPeriod       TariffBasis = "period"
	TariffBasisFree         TariffBasis = "free"
	TariffBasisOther        TariffBasis = "other"
)

var tariffBases = map[string]TariffBasis{
	string(TariffBasisFlat):         TariffBasisFlat,
	string(TariffBasisDistance):     TariffBasisDistance,
	string(TariffBasisUnitSection):  TariffBasisUnitSection,
	string(TariffBasisZone):         TariffBasisZone,
	string(TariffBasisZoneToZone):   TariffBasisZoneToZone,
	string(TariffBasisPointToPoint): TariffBasisPointToPoint,
	string(TariffBasisRoute):        TariffBasisRoute,
	string(TariffBasisTour):         TariffBasisTour,
	string(TariffBasisGroup):        TariffBasisGroup,
	string(TariffBasisDiscount):     TariffBasisDiscount,
	string(TariffBasisPeriod):       TariffBasisPeriod,
	string(TariffBasisFree):         TariffBasisFree,
	string(TariffBasisOther):        TariffBasisOther,
}

// ParseTariffBasis maps a raw value onto the closed enumeration. Unknown
// values are preserved as-is but reported as invalid.
func ParseTariffBasis(value string) (TariffBasis, bool) {
	basis, ok := tariffBases[value]
	if !ok {
		return TariffBasis(value), false
	}

	return basis, true
}

// ProductType is the fare product classification carried by PreassignedFareProduct
// and AmountOfPriceUnitProduct.
type ProductType string

const (
	ProductTypeSingleTrip       ProductType = "singleTrip"
	ProductTypeDayReturnTrip    ProductType = "dayReturnTrip"
	ProductTypePeriodReturnTrip ProductType = "periodReturnTrip"
	ProductTypeTripCarnet       ProductType = "tripCarnet"
	ProductTypePassCarnet       ProductType = "passCarnet"
	ProductTypeDayPass          ProductType = "dayPass"
	ProductTypePeriodPass       ProductType = "periodPass"
	ProductTypeOther            ProductType = "other"
)

var productTypes = map[string]ProductType{
	string(ProductTypeSingleTrip):       ProductTypeSingleTrip,
	string(ProductTypeDayReturnTrip):    ProductTypeDayReturnTrip,
	string(ProductTypePeriodReturnTrip): ProductTypePeriodReturnTrip,
	string(ProductTypeTripCarnet):       ProductTypeTripCarnet,
	string(ProductTypePassCarnet):       ProductTypePassCarnet,
	string(ProductTypeDayPass):          ProductTypeDayPass,
	string(ProductTypePeriodPass):       ProductTypePeriodPass,
	string(ProductTypeOther):            ProductTypeOther,
}

func ParseProductType(value string) (ProductType, bool) {
	productType, ok := productTypes[value]
	if !ok {
		return ProductType(value), false
	}

	return productType, true
}

// IsCarnet reports whether the product is one of the carnet types, the only
// ones AmountOfPriceUnitProduct may carry.
func (p ProductType) IsCarnet() bool {
	return p == ProductTypeTripCarnet || p == ProductTypePassCarnet
}

// ChargingMoment is the chargingMomentType enumeration.
type ChargingMoment string

const (
	ChargingMomentBeforeTravel           ChargingMoment = "beforeTravel"
	ChargingMomentOnStartOfTravel        ChargingMoment = "onStartOfTravel"
	ChargingMomentBeforeEndOfTravel      ChargingMoment = "beforeEndOfTravel"
	ChargingMomentOnStartThenAdjust      ChargingMoment = "onStartOfTravelThenAdjust"
	ChargingMomentAfterTravel            ChargingMoment = "afterTravel"
	ChargingMomentEndOfPeriodAfterTravel ChargingMoment = "endOfAccountingPeriod"
	ChargingMomentAnyTime                ChargingMoment = "anyTime"
	ChargingMomentFree                   ChargingMoment = "free"
)

var chargingMoments = map[string]ChargingMoment{
	string(ChargingMomentBeforeTravel):           ChargingMomentBeforeTravel,
	string(ChargingMomentOnStartOfTravel):        ChargingMomentOnStartOfTravel,
	string(ChargingMomentBeforeEndOfTravel):      ChargingMomentBeforeEndOfTravel,
	string(ChargingMomentOnStartThenAdjust):      ChargingMomentOnStartThenAdjust,
	string(ChargingMomentAfterTravel):            ChargingMomentAfterTravel,
	string(ChargingMomentEndOfPeriodAfterTravel): ChargingMomentEndOfPeriodAfterTravel,
	string(ChargingMomentAnyTime):                ChargingMomentAnyTime,
	string(ChargingMomentFree):                   ChargingMomentFree,
}

func ParseChargingMoment(value string) (ChargingMoment, bool) {
	moment, ok := chargingMoments[value]
	if !ok {
		return ChargingMoment(value), false
	}

	return moment, true
}

// userTypes is the UserProfile UserType enumeration.
var userTypes = map[string]bool{
	"adult":             true,
	"child":             true,
	"infant":            true,
	"senior":            true,
	"student":           true,
	"youngPerson":       true,
	"disabled":          true,
	"disabledCompanion": true,
	"employee":          true,
	"military":          true,
	"jobSeeker":         true,
	"guideDog":          true,
	"animal":            true,
	"anyone":            true,
}

func ValidUserType(value string) bool {
	return userTypes[value]
}
