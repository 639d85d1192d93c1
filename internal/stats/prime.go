package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// PrimeParseError is returned when a date does not reduce to an integer
type PrimeParseError struct {
	Date   string
	Reason string
}

func (e *PrimeParseError) Error() string {
	return fmt.Sprintf("cannot reduce date %q to an integer: %s", e.Date, e.Reason)
}

// PrimeDateValue reduces a YYYY-MM-DD date to the integer DDMMYYYY.
// Components are concatenated exactly as written, so "2019-01-01" becomes
// "01012019", whose value is 1012019.
func PrimeDateValue(date string) (uint64, error) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, &PrimeParseError{Date: date, Reason: fmt.Sprintf("expected 3 components, got %d", len(parts))}
	}

	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if part == "" || strings.IndexFunc(part, isNotDigit) >= 0 {
			return 0, &PrimeParseError{Date: date, Reason: fmt.Sprintf("component %q is not numeric", part)}
		}
		sb.WriteString(part)
	}

	value, err := strconv.ParseUint(sb.String(), 10, 64)
	if err != nil {
		return 0, &PrimeParseError{Date: date, Reason: err.Error()}
	}

	return value, nil
}

// IsPrimeDate reports whether the DDMMYYYY value of date is prime.
// Malformed dates are never prime.
func IsPrimeDate(date string) bool {
	value, err := PrimeDateValue(date)
	if err != nil {
		return false
	}
	return IsPrime(value)
}

// IsPrime tests n by 6k±1 trial division
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n < 4 {
		return true
	}
	if n%2 == 0 || n%3 == 0 {
		return false
	}

	for i := uint64(5); i <= n/i; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false
		}
	}
	return true
}

func isNotDigit(r rune) bool {
	return r < '0' || r > '9'
}
