package validate

import "strings"

// AppointmentStatuses lists the accepted appointment status values
var AppointmentStatuses = []string{"scheduled", "completed", "cancelled"}

// BloodTypes lists the accepted blood type codes
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Email performs a minimal syntactic check: exactly one '@' with a
// non-empty local part and a non-empty domain part. Full RFC 5322
// validation is deliberately out of scope.
func Email(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	return at < len(s)-1
}

// AppointmentStatus reports whether s is an accepted status value
func AppointmentStatus(s string) bool {
	return oneOf(s, AppointmentStatuses)
}

// BloodType reports whether s is an accepted blood type code
func BloodType(s string) bool {
	return oneOf(s, BloodTypes)
}

func oneOf(s string, allowed []string) bool {
	for _, v := range allowed {
		if s == v {
			return true
		}
	}
	return false
}
