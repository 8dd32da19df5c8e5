package model

// FirstPartNumber returns the first label of a numbering sequence.
func FirstPartNumber(withLetters bool) string {
	if withLetters {
		return "A"
	}
	return "1"
}

// NextPartNumber returns the successor of a part number.
// Digits and upper case letters carry like an odometer: "9" -> "10",
// "Z" -> "AA", "AZ" -> "BA".
func NextPartNumber(s string) string {
	if s == "" {
		return "1"
	}
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		switch {
		case b[i] == '9':
			b[i] = '0'
		case b[i] == 'Z':
			b[i] = 'A'
		case b[i] >= '0' && b[i] < '9', b[i] >= 'A' && b[i] < 'Z':
			b[i]++
			return string(b)
		default:
			return s + "1"
		}
	}
	// Every position carried: prepend the first symbol of the leading kind.
	if b[0] == 'A' {
		return "A" + string(b)
	}
	return "1" + string(b)
}
