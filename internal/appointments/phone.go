package appointments

import "strings"

// NormalizePhone converts a user-entered phone number to E.164 for the
// given country code. Spaces and hyphens are stripped and the last 10
// digits are kept, so "+91 98765 43210" and "98765-43210" normalize the
// same.
func NormalizePhone(countryCode, raw string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	if len(cleaned) > 10 {
		cleaned = cleaned[len(cleaned)-10:]
	}
	return countryCode + cleaned
}
