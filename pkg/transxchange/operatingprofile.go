package transxchange

import "github.com/transitflow/transitflow/pkg/pipelineerror"

type OperatingProfile struct {
	RegularDayType              RegularDayType
	PeriodicDayType             *PeriodicDayType
	ServicedOrganisationDayType *ServicedOrganisationDayType
	SpecialDaysOperation        *SpecialDaysOperation
	BankHolidayOperation        *BankHolidayOperation
}

// Validate enforces that a holidays-only profile carries no weekday flags.
// The reverse (all weekdays false without HolidaysOnly) appears in historical
// documents and is accepted.
func (op *OperatingProfile) Validate() error {
	if op.RegularDayType.HolidaysOnly != nil && op.RegularDayType.Week() != ([7]bool{}) {
		return pipelineerror.PostSchemaf("OperatingProfile has HolidaysOnly alongside weekday flags")
	}

	return nil
}

// IsEmpty reports an all-false week without HolidaysOnly. The TXC 2.1 schema
// reads that as Monday through Sunday; we keep the literal reading and leave
// the divergence to the caller to flag.
func (op *OperatingProfile) IsEmpty() bool {
	return op.RegularDayType.HolidaysOnly == nil && op.RegularDayType.Week() == ([7]bool{})
}

type RegularDayType struct {
	DaysOfWeek   *DaysOfWeek
	HolidaysOnly *struct{}
}

// Week flattens the day flags, including the aggregate shorthands, into
// Monday-first booleans.
func (r *RegularDayType) Week() [7]bool {
	var week [7]bool
	d := r.DaysOfWeek
	if d == nil {
		return week
	}

	set := func(days ...int) {
		for _, day := range days {
			week[day] = true
		}
	}

	if d.Monday != nil {
		set(0)
	}
	if d.Tuesday != nil {
		set(1)
	}
	if d.Wednesday != nil {
		set(2)
	}
	if d.Thursday != nil {
		set(3)
	}
	if d.Friday != nil {
		set(4)
	}
	if d.Saturday != nil {
		set(5)
	}
	if d.Sunday != nil {
		set(6)
	}

	if d.MondayToFriday != nil {
		set(0, 1, 2, 3, 4)
	}
	if d.MondayToSaturday != nil {
		set(0, 1, 2, 3, 4, 5)
	}
	if d.MondayToSunday != nil {
		set(0, 1, 2, 3, 4, 5, 6)
	}
	if d.Weekend != nil {
		set(5, 6)
	}
	if d.NotSaturday != nil {
		set(0, 1, 2, 3, 4, 6)
	}
	if d.NotSunday != nil {
		set(0, 1, 2, 3, 4, 5)
	}

	return week
}

type DaysOfWeek struct {
	Monday    *struct{}
	Tuesday   *struct{}
	Wednesday *struct{}
	Thursday  *struct{}
	Friday    *struct{}
	Saturday  *struct{}
	Sunday    *struct{}

	MondayToFriday   *struct{}
	MondayToSaturday *struct{}
	MondayToSunday   *struct{}
	Weekend          *struct{}
	NotSaturday      *struct{}
	NotSunday        *struct{}
}

type PeriodicDayType struct {
	WeekOfMonth []struct {
		WeekNumber string
	}
}

type ServicedOrganisationDayType struct {
	DaysOfOperation    *ServicedOrganisationDays
	DaysOfNonOperation *ServicedOrganisationDays
}

type ServicedOrganisationDays struct {
	WorkingDays []ServicedOrganisationRefList `xml:"WorkingDays"`
	Holidays    []ServicedOrganisationRefList `xml:"Holidays"`
}

type ServicedOrganisationRefList struct {
	ServicedOrganisationRefs []string `xml:"ServicedOrganisationRef"`
}

type SpecialDaysOperation struct {
	DaysOfOperation    []DateRange `xml:"DaysOfOperation>DateRange"`
	DaysOfNonOperation []DateRange `xml:"DaysOfNonOperation>DateRange"`
}

type DateRange struct {
	StartDate string
	EndDate   string
	Note      string
}

type BankHolidayOperation struct {
	DaysOfOperation    *BankHolidayDays
	DaysOfNonOperation *BankHolidayDays
}

type BankHolidayDays struct {
	AllBankHolidays                  *struct{}
	AllHolidaysExceptChristmas       *struct{}
	Christmas                        *struct{}
	ChristmasDay                     *struct{}
	BoxingDay                        *struct{}
	NewYearsDay                      *struct{}
	Jan2ndScotland                   *struct{}
	GoodFriday                       *struct{}
	EasterMonday                     *struct{}
	MayDay                           *struct{}
	SpringBank                       *struct{}
	LateSummerBankHolidayNotScotland *struct{}
	AugustBankHolidayScotland        *struct{}
	StAndrewsDay                     *struct{}
	ChristmasEve                     *struct{}
	NewYearsEve                      *struct{}

	OtherPublicHoliday []struct {
		Description string
		Date        string
	}
}

// Flags lists the named bank holidays that are set.
func (d *BankHolidayDays) Flags() []string {
	if d == nil {
		return nil
	}

	var flags []string
	add := func(name string, present *struct{}) {
		if present != nil {
			flags = append(flags, name)
		}
	}

	add("AllBankHolidays", d.AllBankHolidays)
	add("AllHolidaysExceptChristmas", d.AllHolidaysExceptChristmas)
	add("Christmas", d.Christmas)
	add("ChristmasDay", d.ChristmasDay)
	add("BoxingDay", d.BoxingDay)
	add("NewYearsDay", d.NewYearsDay)
	add("Jan2ndScotland", d.Jan2ndScotland)
	add("GoodFriday", d.GoodFriday)
	add("EasterMonday", d.EasterMonday)
	add("MayDay", d.MayDay)
	add("SpringBank", d.SpringBank)
	add("LateSummerBankHolidayNotScotland", d.LateSummerBankHolidayNotScotland)
	add("AugustBankHolidayScotland", d.AugustBankHolidayScotland)
	add("StAndrewsDay", d.StAndrewsDay)
	add("ChristmasEve", d.ChristmasEve)
	add("NewYearsEve", d.NewYearsEve)

	return flags
}
