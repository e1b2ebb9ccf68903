package normalize

import (
	"strconv"
	"strings"
)

// TaxID formats a Chilean RUT as "12.345.678-5" when s carries a body and a
// matching modulo-11 check digit. Any other value, including a RUT whose
// check digit does not match, is returned trimmed and otherwise untouched.
func TaxID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteByte('K')
		case r == '.' || r == '-' || r == ' ':
		default:
			return s
		}
	}
	clean := b.String()
	if len(clean) < 2 {
		return s
	}
	body, dv := clean[:len(clean)-1], clean[len(clean)-1:]
	if strings.ContainsRune(body, 'K') {
		return s
	}
	if CheckDigit(body) != dv {
		return s
	}
	return groupThousands(strings.TrimLeft(body, "0")) + "-" + dv
}

// CheckDigit returns the modulo-11 RUT check digit for the digits in body:
// "0"-"9" or "K". It returns "" when body has no digits.
func CheckDigit(body string) string {
	sum, mul, n := 0, 2, 0
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			continue
		}
		sum += int(c-'0') * mul
		n++
		if mul == 7 {
			mul = 2
		} else {
			mul++
		}
	}
	if n == 0 {
		return ""
	}
	switch r := 11 - sum%11; r {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(r)
	}
}

func groupThousands(digits string) string {
	if digits == "" {
		return "0"
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
