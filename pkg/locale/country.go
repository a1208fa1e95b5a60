package locale

const DefaultTimezone = "UTC"

type Country struct {
	Code     string // ISO 3166-1 alpha-2, also the phonenumbers region
	Name     string
	DialCode string // E.164 country calling code with leading "+"
	Timezone string // IANA zone used for lead follow-up scheduling
}

// Supported lists the countries leads are expected from, in the order local
// numbers are tried against them.
var Supported = []Country{
	{
		Code:     "IL",
		Name:     "Israel",
		DialCode: "+972",
		Timezone: "Asia/Jerusalem",
	},
	{
		Code:     "US",
		Name:     "United States",
		DialCode: "+1",
		Timezone: "America/New_York",
	},
}

// Regions returns the region codes of Supported, in order.
func Regions() []string {
	regions := make([]string, 0, len(Supported))
	for _, c := range Supported {
		regions = append(regions, c.Code)
	}
	return regions
}
