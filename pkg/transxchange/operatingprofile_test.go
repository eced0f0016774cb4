package transxchange

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProfile(t *testing.T, payload string) *OperatingProfile {
	t.Helper()

	var profile OperatingProfile
	require.NoError(t, xml.Unmarshal([]byte(payload), &profile))
	return &profile
}

func TestOperatingProfileWeek(t *testing.T) {
	profile := decodeProfile(t, `<OperatingProfile>
		<RegularDayType>
			<DaysOfWeek><Monday/><Wednesday/><Saturday/></DaysOfWeek>
		</RegularDayType>
	</OperatingProfile>`)

	week := profile.RegularDayType.Week()
	assert.Equal(t, [7]bool{true, false, true, false, false, true, false}, week)
	assert.NoError(t, profile.Validate())
	assert.False(t, profile.IsEmpty())
}

func TestOperatingProfileAggregates(t *testing.T) {
	profile := decodeProfile(t, `<OperatingProfile>
		<RegularDayType><DaysOfWeek><MondayToFriday/></DaysOfWeek></RegularDayType>
	</OperatingProfile>`)

	week := profile.RegularDayType.Week()
	assert.Equal(t, [7]bool{true, true, true, true, true, false, false}, week)
}

func TestOperatingProfileHolidaysOnly(t *testing.T) {
	profile := decodeProfile(t, `<OperatingProfile>
		<RegularDayType><HolidaysOnly/></RegularDayType>
	</OperatingProfile>`)

	assert.NoError(t, profile.Validate())
	assert.False(t, profile.IsEmpty())
}

func TestOperatingProfileHolidaysOnlyForbidsWeekdays(t *testing.T) {
	profile := decodeProfile(t, `<OperatingProfile>
		<RegularDayType><DaysOfWeek><Monday/></DaysOfWeek><HolidaysOnly/></RegularDayType>
	</OperatingProfile>`)

	assert.Error(t, profile.Validate())
}

func TestOperatingProfileEmptyWeekAccepted(t *testing.T) {
	// Historical documents leave every day false; accepted but flagged.
	profile := decodeProfile(t, `<OperatingProfile>
		<RegularDayType><DaysOfWeek/></RegularDayType>
	</OperatingProfile>`)

	assert.NoError(t, profile.Validate())
	assert.True(t, profile.IsEmpty())
}

func TestOperatingProfileBankHolidays(t *testing.T) {
	profile := decodeProfile(t, `<OperatingProfile>
		<RegularDayType><DaysOfWeek><MondayToSunday/></DaysOfWeek></RegularDayType>
		<BankHolidayOperation>
			<DaysOfOperation><GoodFriday/><EasterMonday/></DaysOfOperation>
			<DaysOfNonOperation><ChristmasDay/></DaysOfNonOperation>
		</BankHolidayOperation>
	</OperatingProfile>`)

	require.NotNil(t, profile.BankHolidayOperation)
	assert.Equal(t, []string{"GoodFriday", "EasterMonday"}, profile.BankHolidayOperation.DaysOfOperation.Flags())
	assert.Equal(t, []string{"ChristmasDay"}, profile.BankHolidayOperation.DaysOfNonOperation.Flags())
}

func TestOperatingProfileSpecialDays(t *testing.T) {
	profile := decodeProfile(t, `<OperatingProfile>
		<RegularDayType><DaysOfWeek><Monday/></DaysOfWeek></RegularDayType>
		<SpecialDaysOperation>
			<DaysOfNonOperation>
				<DateRange><StartDate>2023-12-24</StartDate><EndDate>2023-12-26</EndDate></DateRange>
			</DaysOfNonOperation>
		</SpecialDaysOperation>
	</OperatingProfile>`)

	require.NotNil(t, profile.SpecialDaysOperation)
	require.Len(t, profile.SpecialDaysOperation.DaysOfNonOperation, 1)
	assert.Equal(t, "2023-12-24", profile.SpecialDaysOperation.DaysOfNonOperation[0].StartDate)
}
