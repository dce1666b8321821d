package advocates

import (
	"strconv"
)

// FormatPhone renders an integer-encoded phone number for display.
// Up to 3 digits are returned as-is, up to 6 as "(ddd) ddd", anything
// longer as "(ddd) ddd-dddd"; digits past the tenth are dropped.
func FormatPhone(phone int64) string {
	digits := strconv.FormatInt(phone, 10)
	if phone < 0 {
		digits = digits[1:]
	}

	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return "(" + digits[:3] + ") " + digits[3:]
	}

	end := len(digits)
	if end > 10 {
		end = 10
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:end]
}
