package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitflow/transitflow/pkg/netex"
	"github.com/transitflow/transitflow/pkg/parse"
)

func faresDocument() *netex.PublicationDelivery {
	productFrame := &netex.FareFrame{
		ID:   "epd:UK:FSYO:FareFrame_UK_PI_FARE_PRODUCT:42:op",
		Kind: netex.FareFrameProduct,
		Product: &netex.FareProductFrame{
			Tariffs: []*netex.Tariff{{
				ID:          "Tariff@single",
				TariffBasis: "zoneToZone",
				FareStructureElements: []*netex.FareStructureElement{
					{
						GenericParameterAssignment: &netex.GenericParameterAssignment{
							Limitations: &netex.Limitations{
								UserProfile: &netex.UserProfile{UserType: "adult"},
							},
						},
					},
					{
						GenericParameterAssignment: &netex.GenericParameterAssignment{
							Limitations: &netex.Limitations{
								UserProfile: &netex.UserProfile{UserType: "adult"},
							},
						},
					},
				},
			}},
			PreassignedFareProducts: []*netex.FareProduct{{
				ElementName: "PreassignedFareProduct",
				Name:        "Single ticket",
				ProductType: "singleTrip",
			}},
			AmountOfPriceUnitProducts: []*netex.FareProduct{{
				ElementName: "AmountOfPriceUnitProduct",
				Name:        "10 trip carnet",
				ProductType: "tripCarnet",
			}},
			SalesOfferPackages: []*netex.SalesOfferPackage{{ID: "SOP@single"}},
		},
	}

	networkFrame := &netex.FareFrame{
		ID:   "epd:UK:FSYO:FareFrame_UK_PI_FARE_NETWORK:42:op",
		Kind: netex.FareFrameNetwork,
		Network: &netex.FareNetworkFrame{
			FareZones: []*netex.FareZone{
				{
					ID: "fs@zone1",
					Members: []*netex.FareZoneMember{
						{Ref: "atco:370010134", AtcoCode: "370010134"},
						{Ref: "atco:370010135", AtcoCode: "370010135"},
					},
				},
				{
					ID: "fs@zone2",
					Members: []*netex.FareZoneMember{
						{Ref: "atco:450012345", AtcoCode: "450012345"},
					},
				},
			},
		},
	}

	return &netex.PublicationDelivery{
		Version:              "1.1",
		PublicationTimestamp: "2022-01-14T09:04:02",
		ParticipantRef:       "SYS001",
		CompositeFrames: []*netex.CompositeFrame{
			{
				TypeOfFrameRef: &parse.VersionedRef{Ref: "fxc:UK:DFT:TypeOfFrame_UK_PI_LINE_FARE_OFFER:FXCP"},
				ValidBetween:   &netex.ValidBetween{FromDate: "2022-01-01T00:00:00", ToDate: "2022-12-31T00:00:00"},
				ResourceFrames: []*netex.ResourceFrame{{
					Operators: []*netex.Operator{{ID: "noc:FSYO", Name: "First South Yorkshire", PublicCode: "FSYO"}},
				}},
				ServiceFrames: []*netex.ServiceFrame{{
					Lines: []*netex.ServiceLine{{ID: "42", Name: "Sheffield - Rotherham", PublicCode: "42"}},
				}},
				FareFrames: []*netex.FareFrame{productFrame, networkFrame},
			},
			{
				TypeOfFrameRef: &parse.VersionedRef{Ref: "fxc:UK:DFT:TypeOfFrame_UK_PI_METADATA:FXCP"},
				ValidBetween:   &netex.ValidBetween{FromDate: "1999-01-01T00:00:00", ToDate: "2099-01-01T00:00:00"},
			},
		},
	}
}

func TestFaresMetadataCounts(t *testing.T) {
	metadata, _ := FaresMetadata(faresDocument(), "fares.xml")

	assert.Equal(t, 2, metadata.NumOfFareZones)
	assert.Equal(t, 1, metadata.NumOfLines)
	assert.Equal(t, 1, metadata.NumOfSalesOfferPackages)
	assert.Equal(t, 2, metadata.NumOfFareProducts)
	assert.Equal(t, 2, metadata.NumOfUserProfiles)

	require.NotNil(t, metadata.ValidFrom)
	assert.Equal(t, "2022-01-01", metadata.ValidFrom.Format("2006-01-02"))
	require.NotNil(t, metadata.ValidTo)
	assert.Equal(t, "2022-12-31", metadata.ValidTo.Format("2006-01-02"))
}

func TestFaresDataCatalogue(t *testing.T) {
	_, catalogue := FaresMetadata(faresDocument(), "fares.xml")

	assert.Equal(t, "fares.xml", catalogue.XMLFileName)
	assert.Equal(t, []string{"FSYO"}, catalogue.NationalOperatorCode)
	assert.Equal(t, []string{"42"}, catalogue.LineID)
	assert.Equal(t, []string{"Sheffield - Rotherham"}, catalogue.LineName)

	// deduplicated area prefixes, one per ATCO admin area
	assert.Equal(t, []string{"370", "450"}, catalogue.AtcoArea)
	assert.Equal(t, []string{"zoneToZone"}, catalogue.TariffBasis)
	assert.Equal(t, []string{"singleTrip", "tripCarnet"}, catalogue.ProductType)
	assert.Equal(t, []string{"Single ticket", "10 trip carnet"}, catalogue.ProductName)
	assert.Equal(t, []string{"adult"}, catalogue.UserType)
}

func TestFaresDataCatalogueRefusesUnknownUserType(t *testing.T) {
	doc := faresDocument()
	tariff := doc.CompositeFrames[0].FareFrames[0].Product.Tariffs[0]
	tariff.FareStructureElements[1].GenericParameterAssignment.Limitations.UserProfile.UserType = "martian"

	metadata, catalogue := FaresMetadata(doc, "fares.xml")

	// the profile still counts but the unknown value is not catalogued
	assert.Equal(t, 2, metadata.NumOfUserProfiles)
	assert.Equal(t, []string{"adult"}, catalogue.UserType)
}
