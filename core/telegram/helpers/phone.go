package helpers

import "strings"

// minPhoneLen is the minimal plausible length for a typed phone number.
// No format or country validation is attempted beyond this bound.
const minPhoneLen = 7

// NormalizePhone trims free-text phone input and reports whether it is
// plausible enough to forward to administrators.
func NormalizePhone(input string) (string, bool) {
	phone := strings.TrimSpace(input)
	if len(phone) < minPhoneLen {
		return "", false
	}
	return phone, true
}

// ContactPhone extracts the phone number from a shared contact.
// Contact-shared values are trusted as-is; an empty value means the
// share carried no number and the user must retype it.
func ContactPhone(phone string) (string, bool) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", false
	}
	return phone, true
}
