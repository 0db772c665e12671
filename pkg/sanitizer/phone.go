package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Customers are Lithuanian; foreign numbers in full international form
// still parse under the first region attempt.
var supportedRegions = []string{
	"LT",
}

// NormalizePhone converts a phone number to E.164 format. Unparseable
// input is returned empty so validation downstream rejects it.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
