package decimal

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// CanonicalSeparator is the decimal separator used internally.
const CanonicalSeparator = '.'

// MaxPoints is the largest supported number of fractional digits.
const MaxPoints = 18

var (
	// ErrInvalidScale is returned when a scale outside 1..MaxPoints is requested.
	ErrInvalidScale = errors.New("scale must be between 1 and 18")
	// ErrNegative is returned when a negative amount is given to a Fixed.
	ErrNegative = errors.New("value cannot be negative")
	// ErrSyntax is returned when text is not a plain non-negative decimal number.
	ErrSyntax = errors.New("invalid decimal syntax")
)

var ten = big.NewInt(10)

// Fixed is a non-negative fixed-point amount with a constant number of
// fractional digits. It is stored as an integer count of smallest units,
// so 0.750 at three points is held as 750.
type Fixed struct {
	units  *big.Int
	points int
}

// NewFixed creates a Fixed from a decimal, rounding half-up to points digits
func NewFixed(value decimal.Decimal, points int) (Fixed, error) {
	if err := ValidPoints(points); err != nil {
		return Fixed{}, err
	}
	if value.IsNegative() {
		return Fixed{}, fmt.Errorf("%w: %s", ErrNegative, value.String())
	}
	return Fixed{units: toUnits(value, points), points: points}, nil
}

// ValidPoints checks that points is a usable scale.
func ValidPoints(points int) error {
	if points < 1 || points > MaxPoints {
		return fmt.Errorf("%w: got %d", ErrInvalidScale, points)
	}
	return nil
}

// Zero returns a zero amount with the given scale, clamped to 1..MaxPoints.
func Zero(points int) Fixed {
	if points < 1 {
		points = 1
	}
	if points > MaxPoints {
		points = MaxPoints
	}
	return Fixed{units: new(big.Int), points: points}
}

// ParseDecimal parses text using either the canonical '.' or sep as the
// decimal separator. Signs, exponents, grouping and strings mixing both
// separators are rejected.
func ParseDecimal(text string, sep rune) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty text", ErrSyntax)
	}

	seps := 0
	sawCanonical, sawDisplay := false, false
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == CanonicalSeparator:
			sawCanonical = true
			seps++
		case r == sep:
			sawDisplay = true
			seps++
		default:
			return decimal.Zero, fmt.Errorf("%w: unexpected %q in %q", ErrSyntax, r, text)
		}
	}
	if seps > 1 || (sawCanonical && sawDisplay) {
		return decimal.Zero, fmt.Errorf("%w: more than one separator in %q", ErrSyntax, text)
	}
	if digits == 0 {
		return decimal.Zero, fmt.Errorf("%w: no digits in %q", ErrSyntax, text)
	}

	if sawDisplay {
		s = strings.Replace(s, string(sep), string(CanonicalSeparator), 1)
	}
	if strings.HasSuffix(s, string(CanonicalSeparator)) {
		s = strings.TrimSuffix(s, string(CanonicalSeparator))
	}
	if strings.HasPrefix(s, string(CanonicalSeparator)) {
		s = "0" + s
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return d, nil
}

// Parse parses text into a Fixed with the given scale, rounding half-up.
func Parse(text string, sep rune, points int) (Fixed, error) {
	d, err := ParseDecimal(text, sep)
	if err != nil {
		return Fixed{}, err
	}
	return NewFixed(d, points)
}

// Units returns a copy of the smallest-unit count.
func (f Fixed) Units() *big.Int {
	if f.units == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(f.units)
}

// Points returns the number of fractional digits.
func (f Fixed) Points() int {
	return f.points
}

// Decimal returns the amount as a decimal.Decimal
func (f Fixed) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(f.Units(), -int32(f.points))
}

// PushDigit enters d on the right: every existing digit moves one place left.
// Digits outside 0-9 leave the amount unchanged.
func (f Fixed) PushDigit(d int) Fixed {
	if d < 0 || d > 9 {
		return f
	}
	u := f.Units()
	u.Mul(u, ten)
	u.Add(u, big.NewInt(int64(d)))
	return Fixed{units: u, points: f.points}
}

// ShiftRight divides the amount by ten, rounding half-up at the current scale.
func (f Fixed) ShiftRight() Fixed {
	return Fixed{units: toUnits(f.Decimal().Shift(-1), f.points), points: f.points}
}

// WithPoints returns the same magnitude expressed with n fractional digits.
// Narrowing rounds half-up.
func (f Fixed) WithPoints(n int) (Fixed, error) {
	return NewFixed(f.Decimal(), n)
}

// Format renders the amount with exactly Points fractional digits using sep.
func (f Fixed) Format(sep rune) string {
	s := f.Decimal().StringFixed(int32(f.points))
	if sep != CanonicalSeparator {
		s = strings.Replace(s, string(CanonicalSeparator), string(sep), 1)
	}
	return s
}

// String returns the canonical representation, e.g. "0.750"
func (f Fixed) String() string {
	return f.Format(CanonicalSeparator)
}

// toUnits rounds value half-up to points digits and returns the unit count.
func toUnits(value decimal.Decimal, points int) *big.Int {
	return value.Round(int32(points)).Shift(int32(points)).BigInt()
}
