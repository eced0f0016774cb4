package transxchange

type ServicedOrganisation struct {
	ServicedOrganisationClassification string
	NatureOfOrganisation               string
	PhaseOfEducation                   string

	OrganisationCode string
	Name             string
	Note             string

	WorkingDays DatePattern
	Holidays    DatePattern

	ParentServicedOrganisationRef string
}

func FindServicedOrganisation(id string, servicedOrganisations []*ServicedOrganisation) *ServicedOrganisation {
	for _, org := range servicedOrganisations {
		if org.OrganisationCode == id {
			return org
		}
	}

	return nil
}

type DatePattern struct {
	DateRange   []DateRange
	Description string

	DateExclusion []string
}
