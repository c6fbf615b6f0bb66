// Package siren provides validation for SIREN and SIRET identifiers.
//
// A SIREN is the 9-digit French business registration number; a SIRET is
// the 14-digit establishment number (SIREN + 5-digit NIC). Both are
// validated with a Luhn checksum in addition to length and digit checks.
package siren

import (
	"fmt"
	"strings"
)

const (
	sirenLength = 9
	siretLength = 14
)

// InvalidSirenError is returned when a SIREN fails validation.
type InvalidSirenError struct {
	Value  string
	Reason string
}

func (e *InvalidSirenError) Error() string {
	return fmt.Sprintf("invalid SIREN %q: %s", e.Value, e.Reason)
}

func (e *InvalidSirenError) validationError() {}

// InvalidSiretError is returned when a SIRET fails validation.
type InvalidSiretError struct {
	Value  string
	Reason string
}

func (e *InvalidSiretError) Error() string {
	return fmt.Sprintf("invalid SIRET %q: %s", e.Value, e.Reason)
}

func (e *InvalidSiretError) validationError() {}

type validationError interface {
	validationError()
}

// IsValidationError reports whether err is a SIREN/SIRET validation error,
// as opposed to a transport or API failure.
func IsValidationError(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// normalize strips spaces and common separators.
func normalize(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", ".", "")
	return r.Replace(s)
}

// luhnValid reports whether a string of ASCII digits passes the Luhn check.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// ValidateSiren normalizes and validates a SIREN.
// It returns the normalized 9-digit value, or an *InvalidSirenError naming
// the constraint that failed (length, digits or checksum).
func ValidateSiren(s string) (string, error) {
	v := normalize(s)

	if len(v) != sirenLength {
		return "", &InvalidSirenError{
			Value:  s,
			Reason: fmt.Sprintf("must have exactly %d digits, got %d", sirenLength, len(v)),
		}
	}
	if !allDigits(v) {
		return "", &InvalidSirenError{Value: s, Reason: "must contain only digits"}
	}
	if !luhnValid(v) {
		return "", &InvalidSirenError{Value: s, Reason: "checksum failed"}
	}

	return v, nil
}

// ValidateSiret normalizes and validates a SIRET.
// It returns the normalized 14-digit value, or an *InvalidSiretError naming
// the constraint that failed.
func ValidateSiret(s string) (string, error) {
	v := normalize(s)

	if len(v) != siretLength {
		return "", &InvalidSiretError{
			Value:  s,
			Reason: fmt.Sprintf("must have exactly %d digits, got %d", siretLength, len(v)),
		}
	}
	if !allDigits(v) {
		return "", &InvalidSiretError{Value: s, Reason: "must contain only digits"}
	}
	if !luhnValid(v) {
		return "", &InvalidSiretError{Value: s, Reason: "checksum failed"}
	}

	return v, nil
}

// SirenFromSiret extracts the SIREN (first 9 digits) from a SIRET.
//
// The input must be 14 digits and its embedded SIREN must pass the Luhn
// check. The full 14-digit checksum is deliberately not required here:
// registry data contains establishment numbers whose NIC is not
// Luhn-coherent, and the extraction only depends on the SIREN part.
func SirenFromSiret(siret string) (string, error) {
	v := normalize(siret)

	if len(v) != siretLength {
		return "", &InvalidSiretError{
			Value:  siret,
			Reason: fmt.Sprintf("must have exactly %d digits, got %d", siretLength, len(v)),
		}
	}
	if !allDigits(v) {
		return "", &InvalidSiretError{Value: siret, Reason: "must contain only digits"}
	}

	s, err := ValidateSiren(v[:sirenLength])
	if err != nil {
		return "", &InvalidSiretError{Value: siret, Reason: "embedded SIREN checksum failed"}
	}
	return s, nil
}

// IsValidSiren reports whether s is a valid SIREN.
func IsValidSiren(s string) bool {
	_, err := ValidateSiren(s)
	return err == nil
}

// IsValidSiret reports whether s is a valid SIRET.
func IsValidSiret(s string) bool {
	_, err := ValidateSiret(s)
	return err == nil
}
