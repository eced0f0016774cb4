package faresvalidator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitflow/transitflow/pkg/netex"
	"github.com/transitflow/transitflow/pkg/parse"
)

func compositeFrame(frameType string) *netex.CompositeFrame {
	return &netex.CompositeFrame{
		ID:             "epd:UK:TEST:CompositeFrame:op",
		ValidBetween:   &netex.ValidBetween{FromDate: "2021-12-22T00:00:00", Line: 3},
		TypeOfFrameRef: &parse.VersionedRef{Ref: frameType},
		Line:           2,
	}
}

func validDocument() *netex.PublicationDelivery {
	frame := compositeFrame("fxc:UK:DFT:TypeOfFrame_UK_PI_LINE_FARE_OFFER:FXCP")
	frame.ResourceFrames = []*netex.ResourceFrame{{
		Operators: []*netex.Operator{{
			ID:         "noc:FSYO",
			Name:       "First South Yorkshire",
			PublicCode: "FSYO",
			Line:       10,
		}},
	}}

	return &netex.PublicationDelivery{
		PublicationTimestamp: "2021-12-17T09:30:47Z",
		ParticipantRef:       "SYS001",
		CompositeFrames:      []*netex.CompositeFrame{frame},
	}
}

func observationErrors(observations []Observation) []string {
	var errors []string
	for _, observation := range observations {
		errors = append(errors, observation.Error)
	}

	return errors
}

func TestValidateCleanDocument(t *testing.T) {
	observations := Validate("fares.xml", validDocument())
	assert.Empty(t, observations)
}

func TestValidateCompositeFrameTypeOfFrameRef(t *testing.T) {
	doc := validDocument()
	doc.CompositeFrames[0].TypeOfFrameRef = &parse.VersionedRef{Ref: "fxc:UK:DFT:TypeOfFrame_UK_PI_NETWORK:FXCP"}

	observations := Validate("fares.xml", doc)
	require.Len(t, observations, 1)

	observation := observations[0]
	assert.Equal(t, 6, observation.Code)
	assert.Equal(t, "fares.xml", observation.Filename)
	assert.Equal(t, 2, observation.Line)
	assert.Equal(t, TypeSimpleFailure, observation.TypeOfObservation)
	assert.Equal(t, CategoryCompositeFrames, observation.Category)
	assert.Equal(t, ImportanceCritical, observation.Importance)
	assert.Equal(t,
		"Attribute 'ref' of 'TypeOfFrameRef' in 'CompositeFrame' does not contain 'UK_PI_LINE_FARE_OFFER' or 'UK_PI_NETWORK_FARE_OFFER'",
		observation.Error)
	assert.Equal(t, "CompositeFrame/TypeOfFrameRef", observation.Reference)
}

func TestValidateDayPassWithoutTimeIntervals(t *testing.T) {
	doc := validDocument()
	doc.CompositeFrames[0].FareFrames = []*netex.FareFrame{{
		Kind:           netex.FareFrameProduct,
		TypeOfFrameRef: &parse.VersionedRef{Ref: "fxc:UK:DFT:TypeOfFrame_UK_PI_FARE_PRODUCT:FXCP"},
		Product: &netex.FareProductFrame{
			Tariffs: []*netex.Tariff{{
				ID:              "Tariff@pass",
				TypeOfTariffRef: &parse.VersionedRef{Ref: "fxc:flat"},
				OperatorRef:     &parse.VersionedRef{Ref: "noc:FSYO"},
				TariffBasis:     netex.TariffBasisFlat,
				ValidFrom:       "2021-12-22T00:00:00",
				Line:            40,
			}},
			PreassignedFareProducts: []*netex.FareProduct{{
				ElementName:          "PreassignedFareProduct",
				Name:                 "Day ticket",
				TypeOfFareProductRef: &parse.VersionedRef{Ref: "fxc:standard_product@pass@day"},
				ChargingMomentType:   netex.ChargingMomentBeforeTravel,
				ProductType:          netex.ProductTypeDayPass,
				ValidableElements: []*netex.ValidableElement{{
					FareStructureElementRefs: []*parse.VersionedRef{{Ref: "Tariff@pass@access"}},
				}},
				AccessRightsInProduct: []*netex.AccessRightInProduct{{
					ValidableElementRef: &parse.VersionedRef{Ref: "Pass@day@travel"},
				}},
				Line: 60,
			}},
		},
	}}

	observations := Validate("fares.xml", doc)
	errors := observationErrors(observations)

	assert.Contains(t, errors, "Element 'timeIntervals' is missing within 'Tariff'")
	for _, observation := range observations {
		if observation.Error == "Element 'timeIntervals' is missing within 'Tariff'" {
			assert.Equal(t, 18, observation.Code)
			assert.Equal(t, 40, observation.Line)
		}
	}

	// The durations fare structure element is independently missing.
	assert.Contains(t, errors,
		"Element 'FareStructureElement' with 'TypeOfFareStructureElementRef' of 'fxc:durations' and 'TimeIntervalRef' is missing within 'Tariff'")
}

func TestValidateAmountOfPriceUnitProductType(t *testing.T) {
	doc := validDocument()
	doc.CompositeFrames[0].FareFrames = []*netex.FareFrame{{
		Kind:           netex.FareFrameProduct,
		TypeOfFrameRef: &parse.VersionedRef{Ref: "fxc:UK:DFT:TypeOfFrame_UK_PI_FARE_PRODUCT:FXCP"},
		Product: &netex.FareProductFrame{
			AmountOfPriceUnitProducts: []*netex.FareProduct{{
				ElementName:          "AmountOfPriceUnitProduct",
				Name:                 "Day ticket",
				TypeOfFareProductRef: &parse.VersionedRef{Ref: "fxc:standard_product@pass@day"},
				ChargingMomentType:   netex.ChargingMomentBeforeTravel,
				ProductType:          netex.ProductTypeDayPass,
				ValidableElements: []*netex.ValidableElement{{
					FareStructureElementRefs: []*parse.VersionedRef{{Ref: "Tariff@pass@access"}},
				}},
				AccessRightsInProduct: []*netex.AccessRightInProduct{{
					ValidableElementRef: &parse.VersionedRef{Ref: "Pass@day@travel"},
				}},
				Line: 70,
			}},
		},
	}}

	observations := Validate("fares.xml", doc)
	errors := observationErrors(observations)

	assert.Contains(t, errors,
		"'ProductType' for 'AmountOfPriceUnitProduct' in 'fareProducts' must be tripCarnet or passCarnet")
}

func TestValidateOperatorRules(t *testing.T) {
	doc := validDocument()
	operator := doc.CompositeFrames[0].ResourceFrames[0].Operators[0]
	operator.ID = "noc:TOOLONG"
	operator.Name = "  "
	operator.PublicCode = "XY"

	errors := observationErrors(Validate("fares.xml", doc))
	assert.Contains(t, errors, "Attribute 'id' of 'Operator' does not follow the 'noc:' format with a four character code")
	assert.Contains(t, errors, "Element 'Name' is missing or empty within 'Operator'")
	assert.Contains(t, errors, "Element 'PublicCode' of 'Operator' must be four characters long")
}

func TestValidateTariffRules(t *testing.T) {
	doc := validDocument()
	doc.CompositeFrames[0].FareFrames = []*netex.FareFrame{{
		Kind: netex.FareFrameProduct,
		Product: &netex.FareProductFrame{
			Tariffs: []*netex.Tariff{{
				ID:                  "Tariff@broken",
				TypeOfTariffRef:     &parse.VersionedRef{Ref: "fxc:made_up"},
				OperatorRef:         &parse.VersionedRef{Ref: "noc:FSYO"},
				GroupOfOperatorsRef: &parse.VersionedRef{Ref: "noc:FSYO_GROUP"},
				Line:                30,
			}},
		},
	}}

	errors := observationErrors(Validate("fares.xml", doc))
	assert.Contains(t, errors, "Attribute 'ref' of 'TypeOfTariffRef' in 'Tariff' has unexpected value 'fxc:made_up'")
	assert.Contains(t, errors, "Exactly one of 'OperatorRef' and 'GroupOfOperatorsRef' must be present within 'Tariff'")
	assert.Contains(t, errors, "Element 'TariffBasis' is missing within 'Tariff'")
	assert.Contains(t, errors, "Element 'FromDate' is missing within 'validityConditions' of 'Tariff'")
}

func TestValidateServiceFrameRules(t *testing.T) {
	doc := validDocument()
	doc.CompositeFrames[0].ServiceFrames = []*netex.ServiceFrame{{
		TypeOfFrameRef: &parse.VersionedRef{Ref: "fxc:UK:DFT:TypeOfFrame_UK_PI_FARE_PRODUCT:FXCP"},
		Lines: []*netex.ServiceLine{{
			ID:   "OP:Line_1",
			Line: 20,
		}},
		ScheduledStopPoints: []*netex.ScheduledStopPoint{{
			ID:   "naptan:37010135",
			Line: 25,
		}},
		Line: 18,
	}}

	errors := observationErrors(Validate("fares.xml", doc))
	assert.Contains(t, errors, "Attribute 'ref' of 'TypeOfFrameRef' in 'ServiceFrame' does not contain 'UK_PI_NETWORK'")
	assert.Contains(t, errors, "Element 'Name' is missing or empty within 'Line'")
	assert.Contains(t, errors, "Element 'PublicCode' is missing within 'Line'")
	assert.Contains(t, errors, "Element 'OperatorRef' is missing within 'Line'")
	assert.Contains(t, errors, "Attribute 'id' of 'ScheduledStopPoint' does not follow the 'atco:' format")
	assert.Contains(t, errors, "Element 'Name' is missing or empty within 'ScheduledStopPoint'")
}

// A metadata frame never triggers the composite frame rules.
func TestValidateSkipsMetadataFrame(t *testing.T) {
	doc := validDocument()
	doc.CompositeFrames = append(doc.CompositeFrames, &netex.CompositeFrame{
		ID:             "epd:UK:TEST:CompositeFrame_UK_PI_METADATA:op",
		TypeOfFrameRef: &parse.VersionedRef{Ref: "fxc:UK:DFT:TypeOfFrame_UK_PI_METADATA:FXCP"},
		Line:           90,
	})

	observations := Validate("fares.xml", doc)
	assert.Empty(t, observations)
}

// One violation never suppresses findings from unrelated rules.
func TestValidateDoesNotShortCircuit(t *testing.T) {
	doc := validDocument()
	doc.CompositeFrames[0].ValidBetween = nil
	doc.CompositeFrames[0].TypeOfFrameRef = nil
	doc.CompositeFrames[0].ResourceFrames[0].Operators[0].PublicCode = ""

	observations := Validate("fares.xml", doc)
	require.GreaterOrEqual(t, len(observations), 3)

	errors := strings.Join(observationErrors(observations), "\n")
	assert.Contains(t, errors, "'ValidBetween' is missing")
	assert.Contains(t, errors, "'TypeOfFrameRef' in 'CompositeFrame'")
	assert.Contains(t, errors, "'PublicCode' of 'Operator'")
}
