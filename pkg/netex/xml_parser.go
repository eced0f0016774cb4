package netex

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/parse"
	"github.com/transitflow/transitflow/pkg/pipelineerror"
	"github.com/transitflow/transitflow/pkg/xmlcursor"
)

// ParseXMLFile reads a NeTEx PublicationDelivery document. Each composite
// frame is materialised as a subtree so every element keeps its source line,
// then released before the next frame streams in.
func ParseXMLFile(reader io.Reader) (*PublicationDelivery, error) {
	cursor := xmlcursor.NewCursor(reader)

	doc := &PublicationDelivery{}
	seenRoot := false

	for {
		token, err := cursor.Token()
		if token == nil || errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		switch ty := token.(type) {
		case xml.StartElement:
			switch ty.Name.Local {
			case "PublicationDelivery":
				doc.Version = attrValue(ty, "version")
				doc.Line = cursor.Line()
				seenRoot = true

				if ty.Name.Space != xmlcursor.NetexNamespace {
					log.Warn().Str("namespace", ty.Name.Space).Msg("PublicationDelivery is not in the NeTEx namespace")
				}
			case "PublicationTimestamp":
				doc.PublicationTimestamp = leafText(cursor, ty)
			case "ParticipantRef":
				doc.ParticipantRef = leafText(cursor, ty)
			case "Description":
				if !seenRoot || len(doc.CompositeFrames) > 0 {
					continue
				}
				doc.Description = leafText(cursor, ty)
			case "CompositeFrame":
				node, err := cursor.ReadTree(ty)
				if err != nil {
					return nil, err
				}

				doc.CompositeFrames = append(doc.CompositeFrames, buildCompositeFrame(node))
				node.Release()
			}
		}
	}

	if !seenRoot {
		return nil, pipelineerror.Schemaf("document has no PublicationDelivery root element")
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("compositeframes", len(doc.CompositeFrames)).
		Msg("Parsed NeTEx document")

	return doc, nil
}

func attrValue(start xml.StartElement, local string) string {
	for _, attr := range start.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}

	return ""
}

func leafText(cursor *xmlcursor.Cursor, start xml.StartElement) string {
	node, err := cursor.ReadTree(start)
	if err != nil {
		return ""
	}

	return node.Text
}

func refFrom(node *xmlcursor.Node) *parse.VersionedRef {
	if node == nil {
		return nil
	}

	return parse.NewVersionedRef(node.Attr("ref"), node.Attr("version"), node.Attr("versionRef"))
}

func childRef(node *xmlcursor.Node, local string) *parse.VersionedRef {
	return refFrom(node.Child(local))
}

func buildCompositeFrame(node *xmlcursor.Node) *CompositeFrame {
	frame := &CompositeFrame{
		ID:             node.Attr("id"),
		Version:        node.Attr("version"),
		Name:           node.ChildText("Name"),
		TypeOfFrameRef: childRef(node, "TypeOfFrameRef"),
		Line:           node.Line,
	}

	if validity := node.Child("ValidBetween"); validity != nil {
		frame.ValidBetween = &ValidBetween{
			FromDate: validity.ChildText("FromDate"),
			ToDate:   validity.ChildText("ToDate"),
			Line:     validity.Line,
		}
	}

	frames := node.Child("frames")
	if frames == nil {
		log.Warn().Str("frame", frame.ID).Msg("CompositeFrame has no frames container")
		return frame
	}

	for _, child := range frames.Children {
		switch child.Local {
		case "ResourceFrame":
			frame.ResourceFrames = append(frame.ResourceFrames, buildResourceFrame(child))
		case "ServiceFrame":
			frame.ServiceFrames = append(frame.ServiceFrames, buildServiceFrame(child))
		case "FareFrame":
			frame.FareFrames = append(frame.FareFrames, buildFareFrame(child))
		default:
			log.Debug().Str("element", child.Local).Msg("Skipping frame")
		}
	}

	return frame
}

func buildResourceFrame(node *xmlcursor.Node) *ResourceFrame {
	frame := &ResourceFrame{
		ID:      node.Attr("id"),
		Version: node.Attr("version"),
		Line:    node.Line,
	}

	for _, operator := range node.FindAll("organisations", "Operator") {
		frame.Operators = append(frame.Operators, &Operator{
			ID:         operator.Attr("id"),
			Version:    operator.Attr("version"),
			Name:       operator.ChildText("Name"),
			PublicCode: operator.ChildText("PublicCode"),
			Line:       operator.Line,
		})
	}

	for _, group := range node.FindAll("groupsOfOperators", "GroupOfOperators") {
		built := &GroupOfOperators{
			ID:   group.Attr("id"),
			Name: group.ChildText("Name"),
			Line: group.Line,
		}
		for _, member := range group.FindAll("members", "OperatorRef") {
			if ref := refFrom(member); ref != nil {
				built.Members = append(built.Members, ref)
			}
		}
		frame.GroupsOfOperators = append(frame.GroupsOfOperators, built)
	}

	return frame
}

func buildServiceFrame(node *xmlcursor.Node) *ServiceFrame {
	frame := &ServiceFrame{
		ID:             node.Attr("id"),
		Version:        node.Attr("version"),
		TypeOfFrameRef: childRef(node, "TypeOfFrameRef"),
		Line:           node.Line,
	}

	for _, line := range node.FindAll("lines", "Line") {
		frame.Lines = append(frame.Lines, &ServiceLine{
			ID:          line.Attr("id"),
			Name:        line.ChildText("Name"),
			PublicCode:  line.ChildText("PublicCode"),
			OperatorRef: childRef(line, "OperatorRef"),
			LineType:    line.ChildText("LineType"),
			Line:        line.Line,
		})
	}

	for _, stop := range node.FindAll("scheduledStopPoints", "ScheduledStopPoint") {
		frame.ScheduledStopPoints = append(frame.ScheduledStopPoints, &ScheduledStopPoint{
			ID:   stop.Attr("id"),
			Name: stop.ChildText("Name"),
			Line: stop.Line,
		})
	}

	return frame
}

func buildFareFrame(node *xmlcursor.Node) *FareFrame {
	frame := &FareFrame{
		ID:             node.Attr("id"),
		Version:        node.Attr("version"),
		Name:           node.ChildText("Name"),
		TypeOfFrameRef: childRef(node, "TypeOfFrameRef"),
		Line:           node.Line,
	}

	if frame.TypeOfFrameRef != nil {
		frame.Kind = classifyFareFrame(frame.TypeOfFrameRef.Ref)
	}

	switch frame.Kind {
	case FareFrameProduct:
		frame.Product = buildFareProductFrame(node)
	case FareFrameNetwork:
		frame.Network = &FareNetworkFrame{FareZones: buildFareZones(node)}
	case FareFrameCommon:
		frame.Common = buildFareCommonFrame(node)
	default:
		log.Warn().Str("frame", frame.ID).Msg("FareFrame has no recognised TypeOfFrameRef")
	}

	return frame
}

func buildFareCommonFrame(node *xmlcursor.Node) *FareCommonFrame {
	frame := &FareCommonFrame{}

	if set := node.Child("PricingParameterSet"); set != nil {
		frame.PricingParameterSet = &PricingParameterSet{
			ID:   set.Attr("id"),
			Line: set.Line,
		}
	}

	return frame
}

func buildFareZones(node *xmlcursor.Node) []*FareZone {
	var zones []*FareZone

	for _, zone := range node.FindAll("fareZones", "FareZone") {
		built := &FareZone{
			ID:      zone.Attr("id"),
			Version: zone.Attr("version"),
			Name:    zone.ChildText("Name"),
			Line:    zone.Line,
		}

		for _, member := range zone.FindAll("members", "ScheduledStopPointRef") {
			ref := member.Attr("ref")
			if ref == "" {
				log.Warn().Str("zone", built.ID).Int("line", member.Line).Msg("Fare zone member has no ref")
				continue
			}

			zoneMember := &FareZoneMember{
				Ref:  ref,
				Name: member.Text,
				Line: member.Line,
			}

			switch scheme, code := parse.SplitScheme(ref); scheme {
			case "atco":
				zoneMember.AtcoCode = code
			case "naptan":
				zoneMember.NaptanCode = code
			}

			built.Members = append(built.Members, zoneMember)
		}

		zones = append(zones, built)
	}

	return zones
}

func buildFareProductFrame(node *xmlcursor.Node) *FareProductFrame {
	frame := &FareProductFrame{}

	for _, tariff := range node.FindAll("tariffs", "Tariff") {
		frame.Tariffs = append(frame.Tariffs, buildTariff(tariff))
	}

	for _, product := range node.FindAll("fareProducts", "PreassignedFareProduct") {
		frame.PreassignedFareProducts = append(frame.PreassignedFareProducts, buildFareProduct(product))
	}
	for _, product := range node.FindAll("fareProducts", "AmountOfPriceUnitProduct") {
		frame.AmountOfPriceUnitProducts = append(frame.AmountOfPriceUnitProducts, buildFareProduct(product))
	}

	for _, group := range node.FindAll("priceGroups", "PriceGroup") {
		frame.PriceGroups = append(frame.PriceGroups, buildPriceGroup(group))
	}

	for _, table := range node.FindAll("fareTables", "FareTable") {
		frame.FareTables = append(frame.FareTables, buildFareTable(table))
	}

	for _, pack := range node.FindAll("salesOfferPackages", "SalesOfferPackage") {
		frame.SalesOfferPackages = append(frame.SalesOfferPackages, buildSalesOfferPackage(pack))
	}

	return frame
}

func buildTariff(node *xmlcursor.Node) *Tariff {
	tariff := &Tariff{
		ID:                  node.Attr("id"),
		Version:             node.Attr("version"),
		Name:                node.ChildText("Name"),
		OperatorRef:         childRef(node, "OperatorRef"),
		GroupOfOperatorsRef: childRef(node, "GroupOfOperatorsRef"),
		LineRef:             childRef(node, "LineRef"),
		TypeOfTariffRef:     childRef(node, "TypeOfTariffRef"),
		Line:                node.Line,
	}

	if validity := node.Find("validityConditions", "ValidBetween"); validity != nil {
		tariff.ValidFrom = validity.ChildText("FromDate")
		tariff.ValidTo = validity.ChildText("ToDate")
	}

	if basis := node.ChildText("TariffBasis"); basis != "" {
		parsed, known := ParseTariffBasis(basis)
		if !known {
			log.Warn().Str("tariff", tariff.ID).Str("tariffbasis", basis).Msg("Unknown tariff basis")
		}
		tariff.TariffBasis = parsed
	}

	if intervals := node.Child("timeIntervals"); intervals != nil {
		tariff.TimeIntervalsLine = intervals.Line

		for _, interval := range intervals.ChildrenNamed("TimeInterval") {
			tariff.TimeIntervals = append(tariff.TimeIntervals, &TimeInterval{
				ID:          interval.Attr("id"),
				Version:     interval.Attr("version"),
				Name:        interval.ChildText("Name"),
				Description: interval.ChildText("Description"),
				Line:        interval.Line,
			})
		}
	}

	for _, element := range node.FindAll("fareStructureElements", "FareStructureElement") {
		tariff.FareStructureElements = append(tariff.FareStructureElements, buildFareStructureElement(element))
	}

	return tariff
}

func buildFareStructureElement(node *xmlcursor.Node) *FareStructureElement {
	element := &FareStructureElement{
		ID:                            node.Attr("id"),
		Version:                       node.Attr("version"),
		Name:                          node.ChildText("Name"),
		TypeOfFareStructureElementRef: childRef(node, "TypeOfFareStructureElementRef"),
		Line:                          node.Line,
	}

	for _, ref := range node.FindAll("timeIntervals", "TimeIntervalRef") {
		if built := refFrom(ref); built != nil {
			element.TimeIntervalRefs = append(element.TimeIntervalRefs, built)
		}
	}

	for _, matrix := range node.FindAll("distanceMatrixElements", "DistanceMatrixElement") {
		built := &DistanceMatrixElement{
			ID:           matrix.Attr("id"),
			Version:      matrix.Attr("version"),
			StartZoneRef: childRef(matrix, "StartTariffZoneRef"),
			EndZoneRef:   childRef(matrix, "EndTariffZoneRef"),
			Line:         matrix.Line,
		}
		for _, group := range matrix.FindAll("priceGroups", "PriceGroupRef") {
			if ref := refFrom(group); ref != nil {
				built.PriceGroups = append(built.PriceGroups, ref)
			}
		}
		element.DistanceMatrixElements = append(element.DistanceMatrixElements, built)
	}

	if assignment := node.Child("GenericParameterAssignment"); assignment != nil {
		element.GenericParameterAssignment = buildGenericParameterAssignment(assignment)
	}

	return element
}

func buildGenericParameterAssignment(node *xmlcursor.Node) *GenericParameterAssignment {
	assignment := &GenericParameterAssignment{
		ID:                             node.Attr("id"),
		Version:                        node.Attr("version"),
		Order:                          node.Attr("order"),
		TypeOfAccessRightAssignmentRef: childRef(node, "TypeOfAccessRightAssignmentRef"),
		Line:                           node.Line,
	}

	if params := node.Child("validityParameters"); params != nil {
		assignment.ValidityParameters = &ValidityParameters{
			LineRef: childRef(params, "LineRef"),
			Line:    params.Line,
		}
	}

	if limitations := node.Child("limitations"); limitations != nil {
		assignment.Limitations = buildLimitations(limitations)
	}

	return assignment
}

func buildLimitations(node *xmlcursor.Node) *Limitations {
	limitations := &Limitations{Line: node.Line}

	if profile := node.Child("UserProfile"); profile != nil {
		limitations.UserProfile = &UserProfile{
			ID:         profile.Attr("id"),
			Name:       profile.ChildText("Name"),
			UserType:   profile.ChildText("UserType"),
			MinimumAge: profile.ChildText("MinimumAge"),
			MaximumAge: profile.ChildText("MaximumAge"),
			Line:       profile.Line,
		}
	}

	if trip := node.Child("RoundTrip"); trip != nil {
		limitations.RoundTrip = &RoundTrip{
			ID:       trip.Attr("id"),
			TripType: trip.ChildText("TripType"),
			Line:     trip.Line,
		}
	}

	if frequency := node.Child("FrequencyOfUse"); frequency != nil {
		limitations.FrequencyOfUse = &FrequencyOfUse{
			ID:                 frequency.Attr("id"),
			FrequencyOfUseType: frequency.ChildText("FrequencyOfUseType"),
			Line:               frequency.Line,
		}
	}

	if period := node.Child("UsageValidityPeriod"); period != nil {
		limitations.UsageValidityPeriod = &UsageValidityPeriod{
			ID:             period.Attr("id"),
			UsageTrigger:   period.ChildText("UsageTrigger"),
			UsageEnd:       period.ChildText("UsageEnd"),
			ActivationMean: period.ChildText("ActivationMeans"),
			Line:           period.Line,
		}
	}

	return limitations
}

func buildFareProduct(node *xmlcursor.Node) *FareProduct {
	product := &FareProduct{
		ElementName:          node.Local,
		ID:                   node.Attr("id"),
		Version:              node.Attr("version"),
		Name:                 node.ChildText("Name"),
		ChargingMomentRef:    childRef(node, "ChargingMomentRef"),
		TypeOfFareProductRef: childRef(node, "TypeOfFareProductRef"),
		OperatorRef:          childRef(node, "OperatorRef"),
		Line:                 node.Line,
	}

	if moment := node.ChildText("ChargingMomentType"); moment != "" {
		parsed, known := ParseChargingMoment(moment)
		if !known {
			log.Warn().Str("product", product.ID).Str("chargingmoment", moment).Msg("Unknown charging moment")
		}
		product.ChargingMomentType = parsed
	}

	if productType := node.ChildText("ProductType"); productType != "" {
		parsed, known := ParseProductType(productType)
		if !known {
			log.Warn().Str("product", product.ID).Str("producttype", productType).Msg("Unknown product type")
		}
		product.ProductType = parsed
	}

	if summary := node.Child("ConditionSummary"); summary != nil {
		product.ConditionSummary = &ConditionSummary{
			FareStructureType: summary.ChildText("FareStructureType"),
			TariffBasis:       summary.ChildText("TariffBasis"),
			IsPersonal:        summary.ChildText("IsPersonal"),
			Line:              summary.Line,
		}
	}

	for _, element := range node.FindAll("validableElements", "ValidableElement") {
		built := &ValidableElement{
			ID:   element.Attr("id"),
			Name: element.ChildText("Name"),
			Line: element.Line,
		}
		for _, ref := range element.FindAll("fareStructureElements", "FareStructureElementRef") {
			if built2 := refFrom(ref); built2 != nil {
				built.FareStructureElementRefs = append(built.FareStructureElementRefs, built2)
			}
		}
		product.ValidableElements = append(product.ValidableElements, built)
	}

	for _, access := range node.FindAll("accessRightsInProduct", "AccessRightInProduct") {
		product.AccessRightsInProduct = append(product.AccessRightsInProduct, &AccessRightInProduct{
			ID:                  access.Attr("id"),
			Order:               access.Attr("order"),
			ValidableElementRef: childRef(access, "ValidableElementRef"),
			Line:                access.Line,
		})
	}

	return product
}

func buildPriceGroup(node *xmlcursor.Node) *PriceGroup {
	group := &PriceGroup{
		ID:      node.Attr("id"),
		Version: node.Attr("version"),
		Name:    node.ChildText("Name"),
		Line:    node.Line,
	}

	for _, price := range node.FindAll("members", "GeographicalIntervalPrice") {
		group.GeographicalIntervalPrices = append(group.GeographicalIntervalPrices, &GeographicalIntervalPrice{
			ID:     price.Attr("id"),
			Amount: price.ChildText("Amount"),
			Line:   price.Line,
		})
	}

	return group
}

func buildSalesOfferPackage(node *xmlcursor.Node) *SalesOfferPackage {
	pack := &SalesOfferPackage{
		ID:      node.Attr("id"),
		Version: node.Attr("version"),
		Name:    node.ChildText("Name"),
		Line:    node.Line,
	}

	for _, assignment := range node.FindAll("distributionAssignments", "DistributionAssignment") {
		pack.DistributionAssignments = append(pack.DistributionAssignments, &DistributionAssignment{
			ID:                      assignment.Attr("id"),
			Order:                   assignment.Attr("order"),
			DistributionChannelType: assignment.ChildText("DistributionChannelType"),
			PaymentMethods:          assignment.ChildText("PaymentMethods"),
			Line:                    assignment.Line,
		})
	}

	for _, element := range node.FindAll("salesOfferPackageElements", "SalesOfferPackageElement") {
		pack.SalesOfferPackageElements = append(pack.SalesOfferPackageElements, &SalesOfferPackageElement{
			ID:                      element.Attr("id"),
			Order:                   element.Attr("order"),
			TypeOfTravelDocumentRef: childRef(element, "TypeOfTravelDocumentRef"),
			FareProductRef:          childRef(element, "PreassignedFareProductRef"),
			Line:                    element.Line,
		})
	}

	return pack
}

func buildFareTable(node *xmlcursor.Node) *FareTable {
	table := &FareTable{
		ID:      node.Attr("id"),
		Version: node.Attr("version"),
		Name:    node.ChildText("Name"),
		Line:    node.Line,
	}

	for _, ref := range node.FindAll("pricesFor", "PreassignedFareProductRef") {
		if built := refFrom(ref); built != nil {
			table.PricesFor = append(table.PricesFor, built)
		}
	}
	for _, ref := range node.FindAll("usedIn", "TariffRef") {
		if built := refFrom(ref); built != nil {
			table.UsedIn = append(table.UsedIn, built)
		}
	}

	if specifics := node.Child("specifics"); specifics != nil {
		table.Specifics = &FareTableSpecifics{
			TariffZoneRef: childRef(specifics, "TariffZoneRef"),
			Line:          specifics.Line,
		}
	}

	for _, column := range node.FindAll("columns", "FareTableColumn") {
		table.Columns = append(table.Columns, &FareTableColumn{
			ID:   column.Attr("id"),
			Name: column.ChildText("Name"),
			Line: column.Line,
		})
	}
	for _, row := range node.FindAll("rows", "FareTableRow") {
		table.Rows = append(table.Rows, &FareTableRow{
			ID:   row.Attr("id"),
			Name: row.ChildText("Name"),
			Line: row.Line,
		})
	}

	for _, include := range node.FindAll("includes", "FareTable") {
		table.Includes = append(table.Includes, buildFareTable(include))
	}

	for _, cell := range node.FindAll("cells", "Cell") {
		built := &FareTableCell{
			ID:        cell.Attr("id"),
			ColumnRef: childRef(cell, "ColumnRef"),
			RowRef:    childRef(cell, "RowRef"),
			Line:      cell.Line,
		}
		if price := cell.Child("DistanceMatrixElementPrice"); price != nil {
			built.DistanceMatrixElementPrice = &DistanceMatrixElementPrice{
				ID:                           price.Attr("id"),
				Amount:                       price.ChildText("Amount"),
				GeographicalIntervalPriceRef: childRef(price, "GeographicalIntervalPriceRef"),
				DistanceMatrixElementRef:     childRef(price, "DistanceMatrixElementRef"),
				Line:                         price.Line,
			}
		}
		table.Cells = append(table.Cells, built)
	}

	return table
}
