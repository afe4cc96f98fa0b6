// Package cpf validates Brazilian CPF numbers: 11 digits where the last
// two are check digits computed from the first nine.
package cpf

// Digits strips every non-digit character from s.
func Digits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// Valid reports whether candidate is a well-formed CPF. Punctuation is
// stripped before checking; sequences of a single repeated digit are
// rejected even though their checksum holds.
func Valid(candidate string) bool {
	s := Digits(candidate)
	if len(s) != 11 {
		return false
	}

	allSame := true
	for i := 1; i < 11; i++ {
		if s[i] != s[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	if checkDigit(s[:9], 10) != int(s[9]-'0') {
		return false
	}
	if checkDigit(s[:10], 11) != int(s[10]-'0') {
		return false
	}
	return true
}

// checkDigit computes a verifier digit over the given digits with weights
// descending from firstWeight to 2. remainder < 2 maps to 0, otherwise
// 11 - remainder.
func checkDigit(digits string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (firstWeight - i)
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
