package decimal

import (
	"fmt"
	"math"
	"testing"

	stddec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFixed(t *testing.T) {
	f, err := NewFixed(stddec.RequireFromString("12.3456"), 3)
	require.NoError(t, err)
	assert.Equal(t, "12.346", f.String())
	assert.Equal(t, int64(12346), f.Units().Int64())
	assert.Equal(t, 3, f.Points())

	_, err = NewFixed(stddec.NewFromInt(-1), 2)
	assert.ErrorIs(t, err, ErrNegative)
}

func TestRoundingHalfUp(t *testing.T) {
	cases := []struct {
		in     string
		points int
		out    string
	}{
		{"2.344", 2, "2.34"},
		{"2.345", 2, "2.35"},
		{"2.355", 2, "2.36"},
		{"2.365", 2, "2.37"},
		{"0.0005", 3, "0.001"},
		{"0.0004", 3, "0.000"},
		{"7", 3, "7.000"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			f, err := NewFixed(stddec.RequireFromString(c.in), c.points)
			require.NoError(t, err)
			assert.Equal(t, c.out, f.String())
		})
	}
}

func TestNewFixed_ScaleBounds(t *testing.T) {
	testCases := []struct {
		points int
		valid  bool
	}{
		{-1, false},
		{0, false},
		{1, true},
		{MaxPoints, true},
		{MaxPoints + 1, false},
		{math.MaxInt, false},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprint(tc.points), func(t *testing.T) {
			f, err := NewFixed(stddec.NewFromInt(1), tc.points)
			if !tc.valid {
				assert.ErrorIs(t, err, ErrInvalidScale)
				assert.ErrorIs(t, ValidPoints(tc.points), ErrInvalidScale)
				return
			}
			require.NoError(t, err)
			assert.Len(t, f.String(), 2+tc.points)
		})
	}
}

func TestZero(t *testing.T) {
	assert.Equal(t, "0.000", Zero(3).String())
	assert.Equal(t, "0.0", Zero(0).String())
	assert.Equal(t, MaxPoints, Zero(math.MaxInt).Points())
	assert.Equal(t, int64(0), Zero(2).Units().Int64())
}

func units(t *testing.T, text string, points int) Fixed {
	t.Helper()
	f, err := Parse(text, CanonicalSeparator, points)
	require.NoError(t, err)
	return f
}

func TestPushDigit(t *testing.T) {
	f := Zero(3)
	want := []string{"0.007", "0.075", "0.750", "7.500", "75.000"}
	for i, d := range []int{7, 5, 0, 0, 0} {
		f = f.PushDigit(d)
		assert.Equal(t, want[i], f.String())
	}

	assert.Equal(t, f.String(), f.PushDigit(10).String())
	assert.Equal(t, f.String(), f.PushDigit(-1).String())
}

func TestPushDigitDoesNotMutateReceiver(t *testing.T) {
	f := units(t, "0.12", 2)
	_ = f.PushDigit(3)
	assert.Equal(t, "0.12", f.String())
}

func TestShiftRight(t *testing.T) {
	assert.Equal(t, "0.123", units(t, "1.234", 3).ShiftRight().String())
	assert.Equal(t, "0.124", units(t, "1.235", 3).ShiftRight().String())
	assert.Equal(t, "0.120", units(t, "1.2", 3).ShiftRight().String())
}

func TestWithPoints(t *testing.T) {
	f := units(t, "0.750", 3)

	wider, err := f.WithPoints(4)
	require.NoError(t, err)
	assert.Equal(t, "0.7500", wider.String())

	narrower, err := units(t, "0.755", 3).WithPoints(2)
	require.NoError(t, err)
	assert.Equal(t, "0.76", narrower.String())

	_, err = f.WithPoints(0)
	assert.ErrorIs(t, err, ErrInvalidScale)

	_, err = f.WithPoints(MaxPoints + 1)
	assert.ErrorIs(t, err, ErrInvalidScale)
}

func TestParse(t *testing.T) {
	cases := []struct {
		text   string
		sep    rune
		points int
		out    string
	}{
		{"0.750", '.', 3, "0.750"},
		{"0,750", ',', 3, "0.750"},
		{"0.750", ',', 3, "0.750"},
		{" 12.5 ", '.', 2, "12.50"},
		{".5", '.', 1, "0.5"},
		{"5.", '.', 1, "5.0"},
		{"1234", '.', 3, "1234.000"},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			f, err := Parse(c.text, c.sep, c.points)
			require.NoError(t, err)
			assert.Equal(t, c.out, f.String())
		})
	}
}

func TestParseRejectsMalformedText(t *testing.T) {
	for _, text := range []string{"", "   ", "abc", "-1.0", "1.2.3", "1.234,5", "1e3", ".", "+1"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseDecimal(text, ',')
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestFormatWithDisplaySeparator(t *testing.T) {
	f := units(t, "15", 2)
	assert.Equal(t, "15,00", f.Format(','))
	assert.Equal(t, "15.00", f.Format('.'))
}

func TestDecimal(t *testing.T) {
	f := units(t, "0.75", 3)
	assert.Equal(t, int64(750), f.Units().Int64())
	assert.True(t, f.Decimal().Equal(stddec.RequireFromString("0.75")))
}
