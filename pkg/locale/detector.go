package locale

import "strings"

// CountryFromE164 returns the supported country whose dial code prefixes an
// E.164 number, or nil.
func CountryFromE164(e164 string) *Country {
	if !strings.HasPrefix(e164, "+") {
		return nil
	}

	for i := range Supported {
		if strings.HasPrefix(e164, Supported[i].DialCode) {
			return &Supported[i]
		}
	}
	return nil
}

func TimezoneFromE164(e164 string) string {
	if country := CountryFromE164(e164); country != nil {
		return country.Timezone
	}
	return DefaultTimezone
}
