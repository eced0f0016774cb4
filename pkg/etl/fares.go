package etl

import (
	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/netex"
	"github.com/transitflow/transitflow/pkg/transmodel"
	"github.com/transitflow/transitflow/pkg/util"
)

// FaresMetadata aggregates a parsed NeTEx document into the fares metadata
// and data catalogue rows.
func FaresMetadata(doc *netex.PublicationDelivery, filename string) (*transmodel.FaresMetadata, *transmodel.DataCatalogueMetadata) {
	metadata := &transmodel.FaresMetadata{}
	catalogue := &transmodel.DataCatalogueMetadata{XMLFileName: filename}

	if from, ok := doc.ValidFrom(); ok {
		metadata.ValidFrom = &from
		catalogue.ValidFrom = &from
	}
	if to, ok := doc.ValidTo(); ok {
		metadata.ValidTo = &to
		catalogue.ValidTo = &to
	}

	for _, frame := range doc.CompositeFrames {
		if frame.IsMetadata() {
			continue
		}

		for _, resourceFrame := range frame.ResourceFrames {
			for _, operator := range resourceFrame.Operators {
				catalogue.NationalOperatorCode = append(catalogue.NationalOperatorCode, operator.PublicCode)
			}
		}

		for _, serviceFrame := range frame.ServiceFrames {
			metadata.NumOfLines += len(serviceFrame.Lines)
			for _, line := range serviceFrame.Lines {
				catalogue.LineID = append(catalogue.LineID, line.ID)
				catalogue.LineName = append(catalogue.LineName, line.Name)
			}
		}

		for _, fareFrame := range frame.FareFrames {
			if fareFrame.Network != nil {
				metadata.NumOfFareZones += len(fareFrame.Network.FareZones)
				for _, zone := range fareFrame.Network.FareZones {
					for _, member := range zone.Members {
						if area := atcoArea(member.AtcoCode); area != "" {
							catalogue.AtcoArea = append(catalogue.AtcoArea, area)
						}
					}
				}
			}

			if fareFrame.Product == nil {
				continue
			}

			metadata.NumOfSalesOfferPackages += len(fareFrame.Product.SalesOfferPackages)
			metadata.NumOfFareProducts += len(fareFrame.Product.PreassignedFareProducts) +
				len(fareFrame.Product.AmountOfPriceUnitProducts)

			for _, tariff := range fareFrame.Product.Tariffs {
				if tariff.TariffBasis != "" {
					catalogue.TariffBasis = append(catalogue.TariffBasis, string(tariff.TariffBasis))
				}
				for _, element := range tariff.FareStructureElements {
					assignment := element.GenericParameterAssignment
					if assignment == nil || assignment.Limitations == nil || assignment.Limitations.UserProfile == nil {
						continue
					}
					metadata.NumOfUserProfiles++
					userType := assignment.Limitations.UserProfile.UserType
					if userType == "" {
						continue
					}
					if !netex.ValidUserType(userType) {
						log.Warn().Str("userType", userType).
							Msg("Ignoring unknown user profile type")
						continue
					}
					catalogue.UserType = append(catalogue.UserType, userType)
				}
			}

			products := append([]*netex.FareProduct{}, fareFrame.Product.PreassignedFareProducts...)
			products = append(products, fareFrame.Product.AmountOfPriceUnitProducts...)
			for _, product := range products {
				if product.ProductType != "" {
					catalogue.ProductType = append(catalogue.ProductType, string(product.ProductType))
				}
				if product.Name != "" {
					catalogue.ProductName = append(catalogue.ProductName, product.Name)
				}
			}
		}
	}

	catalogue.NationalOperatorCode = util.RemoveDuplicateStrings(catalogue.NationalOperatorCode, nil)
	catalogue.AtcoArea = util.RemoveDuplicateStrings(catalogue.AtcoArea, nil)
	catalogue.TariffBasis = util.RemoveDuplicateStrings(catalogue.TariffBasis, nil)
	catalogue.ProductType = util.RemoveDuplicateStrings(catalogue.ProductType, nil)
	catalogue.ProductName = util.RemoveDuplicateStrings(catalogue.ProductName, nil)
	catalogue.UserType = util.RemoveDuplicateStrings(catalogue.UserType, nil)

	return metadata, catalogue
}

// atcoArea is the administrative area prefix of an ATCO code.
func atcoArea(atcoCode string) string {
	if len(atcoCode) < 3 {
		return ""
	}

	return atcoCode[:3]
}
