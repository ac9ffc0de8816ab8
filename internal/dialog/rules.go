package dialog

import "strings"

func trimmed(text string) string {
	return strings.TrimSpace(text)
}

// ValidPhone reports whether text is an acceptable phone number: digits
// only, 7 to 15 characters. Deliberately coarse; this is a plausibility
// check, not carrier-grade validation.
func ValidPhone(text string) bool {
	phone := strings.TrimSpace(text)
	if len(phone) < 7 || len(phone) > 15 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidName reports whether text is an acceptable customer name: non-empty
// after trimming and not a case-insensitive match of any category label,
// so a stray menu tap never becomes somebody's name.
func ValidName(text string, categories []string) bool {
	name := strings.TrimSpace(text)
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, category := range categories {
		if strings.ToLower(strings.TrimSpace(category)) == lower {
			return false
		}
	}
	return true
}

// ValidAddress reports whether text is an acceptable delivery address.
func ValidAddress(text string) bool {
	return strings.TrimSpace(text) != ""
}
