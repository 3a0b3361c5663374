package utils

import "strings"

// universityDomains lists the email suffixes accepted at signup.
// Registration is restricted to university addresses; the suffix
// list covers the campuses the platform currently serves.
var universityDomains = []string{
	".edu", ".ac.uk", ".edu.au", ".ca", ".fr", ".de", ".jp", ".cn", ".in", ".ma",
}

// IsUniversityEmail reports whether the address ends in one of the
// accepted university suffixes.  The check is case-insensitive and
// requires a plausible local@domain shape; it is not a full RFC
// 5322 validation.
func IsUniversityEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	for _, d := range universityDomains {
		if strings.HasSuffix(email, d) {
			return true
		}
	}
	return false
}
