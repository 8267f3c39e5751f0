package model

import (
	"math"
	"strconv"
	"strings"
)

// Num is a numeric input field. Whatever arrives on the wire (number, numeric
// string, empty string, null, garbage) decodes to a finite float64; anything
// that does not parse becomes 0.
type Num float64

// ParseOrZero parses s as a float64 and returns 0 when s is not a finite number.
func ParseOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Finite(f)
}

// Finite returns f, or 0 when f is NaN or infinite.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Float returns the value as a finite float64.
func (n Num) Float() float64 {
	return Finite(float64(n))
}

// UnmarshalJSON never fails: undecodable values become 0.
func (n *Num) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	*n = Num(ParseOrZero(s))
	return nil
}

// MarshalJSON writes the finite value.
func (n Num) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(n.Float(), 'f', -1, 64)), nil
}
