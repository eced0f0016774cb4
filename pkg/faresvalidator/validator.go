package faresvalidator

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/netex"
	"github.com/transitflow/transitflow/pkg/parse"
)

// rule is one entry of the fixed catalog. Check yields zero or more findings
// through emit; it never mutates the document.
type rule struct {
	Code       int
	Category   string
	Importance string
	Reference  string
	Check      func(doc *netex.PublicationDelivery, emit func(line int, message string))
}

// Validate runs the full catalog against a parsed document in catalog order.
// Every rule runs regardless of earlier findings.
func Validate(filename string, doc *netex.PublicationDelivery) []Observation {
	var observations []Observation

	for _, r := range catalog {
		rule := r
		rule.Check(doc, func(line int, message string) {
			observations = append(observations, Observation{
				Code:              rule.Code,
				Filename:          filename,
				Line:              line,
				TypeOfObservation: TypeSimpleFailure,
				Category:          rule.Category,
				Importance:        rule.Importance,
				Error:             message,
				Reference:         rule.Reference,
			})
		})
	}

	log.Debug().
		Str("filename", filename).
		Int("observations", len(observations)).
		Msg("Fares validation finished")

	return observations
}

// catalog is evaluated in order; codes are stable identifiers persisted in
// reports and must never be renumbered.
var catalog = []rule{
	{1, CategoryCompositeFrames, ImportanceCritical, "CompositeFrame/ValidBetween", checkValidBetweenPresent},
	{2, CategoryCompositeFrames, ImportanceCritical, "CompositeFrame/ValidBetween/FromDate", checkFromDatePresent},
	{3, CategoryOperators, ImportanceCritical, "ResourceFrame/organisations/Operator", checkOperatorID},
	{4, CategoryOperators, ImportanceCritical, "ResourceFrame/organisations/Operator/Name", checkOperatorName},
	{5, CategoryOperators, ImportanceCritical, "ResourceFrame/organisations/Operator/PublicCode", checkOperatorPublicCode},
	{6, CategoryCompositeFrames, ImportanceCritical, "CompositeFrame/TypeOfFrameRef", checkCompositeFrameType},
	{7, CategoryTariffs, ImportanceCritical, "Tariff/TypeOfTariffRef", checkTypeOfTariffRef},
	{8, CategoryTariffs, ImportanceCritical, "Tariff/OperatorRef", checkTariffOperatorXorGroup},
	{9, CategoryTariffs, ImportanceCritical, "Tariff/TariffBasis", checkTariffBasisPresent},
	{10, CategoryTariffs, ImportanceCritical, "Tariff/validityConditions/ValidBetween/FromDate", checkTariffValidityFromDate},
	{11, CategoryFareProducts, ImportanceCritical, "fareProducts/Name", checkProductName},
	{12, CategoryFareProducts, ImportanceCritical, "fareProducts/TypeOfFareProductRef", checkProductTypeOfFareProductRef},
	{13, CategoryFareProducts, ImportanceCritical, "fareProducts/ChargingMomentType", checkProductChargingMoment},
	{14, CategoryFareProducts, ImportanceCritical, "fareProducts/ProductType", checkProductTypePresent},
	{15, CategoryFareProducts, ImportanceCritical, "fareProducts/validableElements", checkProductValidableElements},
	{16, CategoryFareProducts, ImportanceCritical, "fareProducts/accessRightsInProduct", checkProductAccessRights},
	{17, CategoryFareProducts, ImportanceCritical, "fareProducts/AmountOfPriceUnitProduct/ProductType", checkAmountProductIsCarnet},
	{18, CategoryTariffs, ImportanceCritical, "Tariff/timeIntervals", checkPassProductTimeIntervals},
	{19, CategoryTariffs, ImportanceCritical, "FareStructureElement/timeIntervals/TimeIntervalRef", checkPassProductDurationsElement},
	{20, CategoryTariffs, ImportanceCritical, "FareStructureElement/GenericParameterAssignment/limitations/RoundTrip", checkTripProductRoundTrip},
	{21, CategoryServiceFrames, ImportanceCritical, "ServiceFrame/TypeOfFrameRef", checkServiceFrameType},
	{22, CategoryServiceFrames, ImportanceCritical, "ServiceFrame/lines/Line", checkServiceLines},
	{23, CategoryServiceFrames, ImportanceCritical, "ServiceFrame/scheduledStopPoints/ScheduledStopPoint", checkScheduledStopPoints},
}

// eachFrame visits every composite frame except the metadata frame.
func eachFrame(doc *netex.PublicationDelivery, visit func(frame *netex.CompositeFrame)) {
	for _, frame := range doc.CompositeFrames {
		if frame.IsMetadata() {
			continue
		}
		visit(frame)
	}
}

func eachTariff(doc *netex.PublicationDelivery, visit func(tariff *netex.Tariff)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, fareFrame := range frame.FareFrames {
			if fareFrame.Product == nil {
				continue
			}
			for _, tariff := range fareFrame.Product.Tariffs {
				visit(tariff)
			}
		}
	})
}

func eachProduct(doc *netex.PublicationDelivery, visit func(product *netex.FareProduct)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, fareFrame := range frame.FareFrames {
			if fareFrame.Product == nil {
				continue
			}
			for _, product := range fareFrame.Product.PreassignedFareProducts {
				visit(product)
			}
			for _, product := range fareFrame.Product.AmountOfPriceUnitProducts {
				visit(product)
			}
		}
	})
}

func checkValidBetweenPresent(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		if frame.ValidBetween == nil {
			emit(frame.Line, "Element 'ValidBetween' is missing within 'CompositeFrame'")
		}
	})
}

func checkFromDatePresent(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		if frame.ValidBetween != nil && frame.ValidBetween.FromDate == "" {
			emit(frame.ValidBetween.Line, "Element 'FromDate' is missing within 'ValidBetween'")
		}
	})
}

func checkOperatorID(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, resourceFrame := range frame.ResourceFrames {
			for _, operator := range resourceFrame.Operators {
				scheme, code := parse.SplitScheme(operator.ID)
				if scheme != "noc" || len(code) != 4 {
					emit(operator.Line, "Attribute 'id' of 'Operator' does not follow the 'noc:' format with a four character code")
				}
			}
		}
	})
}

func checkOperatorName(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, resourceFrame := range frame.ResourceFrames {
			for _, operator := range resourceFrame.Operators {
				if strings.TrimSpace(operator.Name) == "" {
					emit(operator.Line, "Element 'Name' is missing or empty within 'Operator'")
				}
			}
		}
	})
}

func checkOperatorPublicCode(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, resourceFrame := range frame.ResourceFrames {
			for _, operator := range resourceFrame.Operators {
				if len(operator.PublicCode) != 4 {
					emit(operator.Line, "Element 'PublicCode' of 'Operator' must be four characters long")
				}
			}
		}
	})
}

func checkCompositeFrameType(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		ref := ""
		line := frame.Line
		if frame.TypeOfFrameRef != nil {
			ref = frame.TypeOfFrameRef.Ref
		}

		if !strings.Contains(ref, "UK_PI_LINE_FARE_OFFER") && !strings.Contains(ref, "UK_PI_NETWORK_FARE_OFFER") {
			emit(line, "Attribute 'ref' of 'TypeOfFrameRef' in 'CompositeFrame' does not contain 'UK_PI_LINE_FARE_OFFER' or 'UK_PI_NETWORK_FARE_OFFER'")
		}
	})
}

// typeOfTariffRefs is the closed set of tariff classifications the catalog
// accepts.
var typeOfTariffRefs = map[string]bool{
	"Distance_kilometers": true,
	"flat":                true,
	"zonal":               true,
	"zone_to_zone":        true,
	"point_to_point":      true,
	"promotional":         true,
	"short_trip":          true,
	"section":             true,
	"banded":              true,
	"stored_value":        true,
	"multitrip":           true,
	"discount":            true,
	"period":              true,
	"free":                true,
	"group":               true,
	"other":               true,
}

func checkTypeOfTariffRef(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachTariff(doc, func(tariff *netex.Tariff) {
		if tariff.TypeOfTariffRef == nil {
			emit(tariff.Line, "Element 'TypeOfTariffRef' is missing within 'Tariff'")
			return
		}

		_, code := parse.SplitScheme(tariff.TypeOfTariffRef.Ref)
		if !typeOfTariffRefs[code] {
			emit(tariff.Line, fmt.Sprintf("Attribute 'ref' of 'TypeOfTariffRef' in 'Tariff' has unexpected value '%s'", tariff.TypeOfTariffRef.Ref))
		}
	})
}

func checkTariffOperatorXorGroup(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachTariff(doc, func(tariff *netex.Tariff) {
		if (tariff.OperatorRef == nil) == (tariff.GroupOfOperatorsRef == nil) {
			emit(tariff.Line, "Exactly one of 'OperatorRef' and 'GroupOfOperatorsRef' must be present within 'Tariff'")
		}
	})
}

func checkTariffBasisPresent(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachTariff(doc, func(tariff *netex.Tariff) {
		if tariff.TariffBasis == "" {
			emit(tariff.Line, "Element 'TariffBasis' is missing within 'Tariff'")
		}
	})
}

func checkTariffValidityFromDate(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachTariff(doc, func(tariff *netex.Tariff) {
		if tariff.ValidFrom == "" {
			emit(tariff.Line, "Element 'FromDate' is missing within 'validityConditions' of 'Tariff'")
		}
	})
}

func checkProductName(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachProduct(doc, func(product *netex.FareProduct) {
		if strings.TrimSpace(product.Name) == "" {
			emit(product.Line, fmt.Sprintf("Element 'Name' is missing within '%s'", product.ElementName))
		}
	})
}

func checkProductTypeOfFareProductRef(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachProduct(doc, func(product *netex.FareProduct) {
		if product.TypeOfFareProductRef == nil {
			emit(product.Line, fmt.Sprintf("Element 'TypeOfFareProductRef' is missing within '%s'", product.ElementName))
		}
	})
}

func checkProductChargingMoment(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachProduct(doc, func(product *netex.FareProduct) {
		if product.ChargingMomentType == "" {
			emit(product.Line, fmt.Sprintf("Element 'ChargingMomentType' is missing within '%s'", product.ElementName))
		}
	})
}

func checkProductTypePresent(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachProduct(doc, func(product *netex.FareProduct) {
		if product.ProductType == "" {
			emit(product.Line, fmt.Sprintf("Element 'ProductType' is missing within '%s'", product.ElementName))
		}
	})
}

func checkProductValidableElements(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachProduct(doc, func(product *netex.FareProduct) {
		if len(product.ValidableElements) == 0 {
			emit(product.Line, fmt.Sprintf("Element 'ValidableElement' is missing within 'validableElements' of '%s'", product.ElementName))
			return
		}

		for _, element := range product.ValidableElements {
			if len(element.FareStructureElementRefs) == 0 {
				emit(element.Line, "Element 'FareStructureElementRef' is missing within 'fareStructureElements' of 'ValidableElement'")
			}
		}
	})
}

func checkProductAccessRights(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachProduct(doc, func(product *netex.FareProduct) {
		if len(product.AccessRightsInProduct) == 0 {
			emit(product.Line, fmt.Sprintf("Element 'AccessRightInProduct' is missing within 'accessRightsInProduct' of '%s'", product.ElementName))
			return
		}

		for _, access := range product.AccessRightsInProduct {
			if access.ValidableElementRef == nil {
				emit(access.Line, "Element 'ValidableElementRef' is missing within 'AccessRightInProduct'")
			}
		}
	})
}

func checkAmountProductIsCarnet(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachProduct(doc, func(product *netex.FareProduct) {
		if product.ElementName != "AmountOfPriceUnitProduct" {
			return
		}

		if !product.ProductType.IsCarnet() {
			emit(product.Line, "'ProductType' for 'AmountOfPriceUnitProduct' in 'fareProducts' must be tripCarnet or passCarnet")
		}
	})
}

func hasPassProduct(frame *netex.FareFrame) bool {
	if frame.Kind != netex.FareFrameProduct || frame.Product == nil {
		return false
	}

	for _, product := range frame.Product.PreassignedFareProducts {
		if product.ProductType == netex.ProductTypeDayPass || product.ProductType == netex.ProductTypePeriodPass {
			return true
		}
	}

	return false
}

func hasTripProduct(frame *netex.FareFrame) bool {
	if frame.Product == nil {
		return false
	}

	trips := func(products []*netex.FareProduct) bool {
		for _, product := range products {
			switch product.ProductType {
			case netex.ProductTypeSingleTrip, netex.ProductTypeDayReturnTrip, netex.ProductTypePeriodReturnTrip:
				return true
			}
		}
		return false
	}

	return trips(frame.Product.PreassignedFareProducts) || trips(frame.Product.AmountOfPriceUnitProducts)
}

func checkPassProductTimeIntervals(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, fareFrame := range frame.FareFrames {
			if !hasPassProduct(fareFrame) {
				continue
			}

			for _, tariff := range fareFrame.Product.Tariffs {
				if tariff.TimeIntervalsLine == 0 {
					emit(tariff.Line, "Element 'timeIntervals' is missing within 'Tariff'")
					continue
				}
				if len(tariff.TimeIntervals) == 0 {
					emit(tariff.TimeIntervalsLine, "Element 'TimeInterval' is missing within 'timeIntervals'")
					continue
				}
				for _, interval := range tariff.TimeIntervals {
					if strings.TrimSpace(interval.Name) == "" {
						emit(interval.Line, "Element 'Name' is missing or empty within 'TimeInterval'")
					}
				}
			}
		}
	})
}

// refKind extracts the classification carried by a fare structure element's
// type ref, e.g. "fxc:durations" yields "durations".
func refKind(element *netex.FareStructureElement) string {
	if element.TypeOfFareStructureElementRef == nil {
		return ""
	}

	_, code := parse.SplitScheme(element.TypeOfFareStructureElementRef.Ref)
	return code
}

func checkPassProductDurationsElement(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, fareFrame := range frame.FareFrames {
			if !hasPassProduct(fareFrame) {
				continue
			}

			for _, tariff := range fareFrame.Product.Tariffs {
				found := false
				for _, element := range tariff.FareStructureElements {
					if refKind(element) == "durations" && len(element.TimeIntervalRefs) > 0 {
						found = true
						break
					}
				}
				if !found {
					emit(tariff.Line, "Element 'FareStructureElement' with 'TypeOfFareStructureElementRef' of 'fxc:durations' and 'TimeIntervalRef' is missing within 'Tariff'")
				}
			}
		}
	})
}

func checkTripProductRoundTrip(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, fareFrame := range frame.FareFrames {
			if !hasTripProduct(fareFrame) {
				continue
			}

			for _, tariff := range fareFrame.Product.Tariffs {
				found := false
				for _, element := range tariff.FareStructureElements {
					if refKind(element) != "travel_conditions" {
						continue
					}
					assignment := element.GenericParameterAssignment
					if assignment != nil && assignment.Limitations != nil &&
						assignment.Limitations.RoundTrip != nil && assignment.Limitations.RoundTrip.TripType != "" {
						found = true
						break
					}
				}
				if !found {
					emit(tariff.Line, "Element 'FareStructureElement' with 'TypeOfFareStructureElementRef' of 'fxc:travel_conditions' and 'RoundTrip' 'TripType' is missing within 'Tariff'")
				}
			}
		}
	})
}

func checkServiceFrameType(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, serviceFrame := range frame.ServiceFrames {
			ref := ""
			if serviceFrame.TypeOfFrameRef != nil {
				ref = serviceFrame.TypeOfFrameRef.Ref
			}
			if !strings.Contains(ref, "UK_PI_NETWORK") {
				emit(serviceFrame.Line, "Attribute 'ref' of 'TypeOfFrameRef' in 'ServiceFrame' does not contain 'UK_PI_NETWORK'")
			}
		}
	})
}

func checkServiceLines(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, serviceFrame := range frame.ServiceFrames {
			for _, line := range serviceFrame.Lines {
				if strings.TrimSpace(line.Name) == "" {
					emit(line.Line, "Element 'Name' is missing or empty within 'Line'")
				}
				if line.PublicCode == "" {
					emit(line.Line, "Element 'PublicCode' is missing within 'Line'")
				}
				if line.OperatorRef == nil {
					emit(line.Line, "Element 'OperatorRef' is missing within 'Line'")
				}
			}
		}
	})
}

func checkScheduledStopPoints(doc *netex.PublicationDelivery, emit func(int, string)) {
	eachFrame(doc, func(frame *netex.CompositeFrame) {
		for _, serviceFrame := range frame.ServiceFrames {
			for _, stop := range serviceFrame.ScheduledStopPoints {
				scheme, code := parse.SplitScheme(stop.ID)
				if scheme != "atco" || code == "" {
					emit(stop.Line, "Attribute 'id' of 'ScheduledStopPoint' does not follow the 'atco:' format")
				}
				if strings.TrimSpace(stop.Name) == "" {
					emit(stop.Line, "Element 'Name' is missing or empty within 'ScheduledStopPoint'")
				}
			}
		}
	})
}
