package numeral

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		augend, addend string
		expected       string
	}{
		{"I", "I", "II"},
		{"III", "II", "V"},
		{"IV", "II", "VI"},
		{"VII", "VIII", "XV"},
		{"M", "CCCC", "MCD"},
		{"M", "CMXCIX", "MCMXCIX"},
		{"IX", "VL", "LIV"},
		{"D", "CM", "MCD"},
		{"XLIX", "I", "L"},
		{"MMMCMXCIX", "I", "MMMM"},
		{"CDXLIV", "CDXLIV", "DCCCLXXXVIII"},
	}

	for _, tt := range tests {
		t.Run(tt.augend+"+"+tt.addend, func(t *testing.T) {
			got, err := Add(tt.augend, tt.addend)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		minuend, subtrahend string
		expected            string
	}{
		{"II", "I", "I"},
		{"X", "I", "IX"},
		{"ID", "XLV", "CDLIV"},
		{"M", "D", "D"},
		{"L", "XI", "XXXIX"},
		{"CL", "VI", "CXLIV"},
		{"M", "I", "CMXCIX"},
		{"MMXXVI", "MCMXCIX", "XXVII"},
		{"X", "IX", "I"},
		{"XIV", "V", "IX"},
	}

	for _, tt := range tests {
		t.Run(tt.minuend+"-"+tt.subtrahend, func(t *testing.T) {
			got, err := Subtract(tt.minuend, tt.subtrahend)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAddMatchesOracle(t *testing.T) {
	calc := NewCalculator()

	for a := 1; a < 1200; a += 7 {
		for b := 1; b < 3000; b += 13 {
			got, err := calc.Add(toRoman(a), toRoman(b))
			require.NoError(t, err)
			require.Equal(t, toRoman(a+b), got, "%s + %s", toRoman(a), toRoman(b))
		}
	}
}

func TestSubtractMatchesOracle(t *testing.T) {
	calc := NewCalculator()

	for a := 2; a < 4000; a += 11 {
		for b := 1; b < a; b += 17 {
			got, err := calc.Subtract(toRoman(a), toRoman(b))
			require.NoError(t, err)
			require.Equal(t, toRoman(a-b), got, "%s - %s", toRoman(a), toRoman(b))
		}
	}
}

func TestAddCommutative(t *testing.T) {
	for a := 1; a < 400; a += 9 {
		for b := 1; b < 400; b += 5 {
			ab, err := Add(toRoman(a), toRoman(b))
			require.NoError(t, err)
			ba, err := Add(toRoman(b), toRoman(a))
			require.NoError(t, err)
			require.Equal(t, ab, ba)
		}
	}
}

func TestSubtractInvertsAdd(t *testing.T) {
	for a := 2; a < 2000; a += 23 {
		for b := 1; b < a; b += 29 {
			diff, err := Subtract(toRoman(a), toRoman(b))
			require.NoError(t, err)
			sum, err := Add(diff, toRoman(b))
			require.NoError(t, err)
			require.Equal(t, toRoman(a), sum)
		}
	}
}

func TestAddTooLarge(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		_, err := Add(strings.Repeat("M", 2500), strings.Repeat("M", 2501))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNumeralTooLarge))
		assert.True(t, IsKind(err, KindNumeralTooLarge))
	})

	t.Run("at the limit", func(t *testing.T) {
		got, err := Add(strings.Repeat("M", 2500), strings.Repeat("M", 2500))
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("M", 5000), got)
	})

	t.Run("limit counts additive length", func(t *testing.T) {
		calc := NewCalculator(WithMaxLength(5))
		// IV is four symbols once written additively.
		_, err := calc.Add("IV", "II")
		assert.True(t, errors.Is(err, ErrNumeralTooLarge))

		got, err := calc.Add("II", "III")
		require.NoError(t, err)
		assert.Equal(t, "V", got)
	})

	t.Run("non-positive limit ignored", func(t *testing.T) {
		calc := NewCalculator(WithMaxLength(0))
		assert.Equal(t, DefaultMaxLength, calc.MaxLength())
	})
}

func TestSubtractUnderflow(t *testing.T) {
	tests := []struct {
		minuend, subtrahend string
	}{
		{"I", "II"},
		{"X", "X"},
		{"IV", "IIII"},
		{"XC", "C"},
		{"MCM", "MM"},
	}

	for _, tt := range tests {
		t.Run(tt.minuend+"-"+tt.subtrahend, func(t *testing.T) {
			got, err := Subtract(tt.minuend, tt.subtrahend)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, ErrUnderflow))
			assert.Equal(t, KindUnderflow, KindOf(err))
		})
	}
}

func TestSubtractUnbundledOperands(t *testing.T) {
	tests := []struct {
		minuend, subtrahend, expected string
	}{
		{"IIIIIIIIII", "V", "V"},
		{"VV", "I", "IX"},
		{"XXXXXXXXXX", "IL", "LI"},
		{"CCCCCCCCCC", "IIIII", "CMXCV"},
		{"MCM", "IIIIIIIIII", "MDCCCXC"},
	}

	for _, tt := range tests {
		t.Run(tt.minuend+"-"+tt.subtrahend, func(t *testing.T) {
			got, err := Subtract(tt.minuend, tt.subtrahend)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := Subtract("IIIII", "V")
	assert.True(t, errors.Is(err, ErrUnderflow))
}

func TestInvalidOperands(t *testing.T) {
	tests := []struct {
		name string
		call func() (string, error)
		op   string
	}{
		{"add lowercase", func() (string, error) { return Add("iv", "I") }, "add"},
		{"add empty", func() (string, error) { return Add("", "I") }, "add"},
		{"subtract digit", func() (string, error) { return Subtract("X", "1") }, "subtract"},
		{"subtract arabic", func() (string, error) { return Subtract("42", "X") }, "subtract"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.call()
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, errors.Is(err, ErrInvalidSymbol))

			var oe *OpError
			require.ErrorAs(t, err, &oe)
			assert.Equal(t, tt.op, oe.Op)
		})
	}
}

func TestExpandAndNormalize(t *testing.T) {
	calc := NewCalculator()

	additive, err := calc.Expand("MCMXCIV")
	require.NoError(t, err)
	assert.Equal(t, "MDCCCCLXXXXIIII", additive)

	minimal, err := calc.Normalize("IM")
	require.NoError(t, err)
	assert.Equal(t, "CMXCIX", minimal)

	minimal, err = calc.Normalize("IIIIIIIIIIII")
	require.NoError(t, err)
	assert.Equal(t, "XII", minimal)

	_, err = calc.Expand("MCMQ")
	assert.True(t, IsKind(err, KindInvalidSymbol))
}

func TestCalculatorSharedTable(t *testing.T) {
	table := NewTable()
	calc := NewCalculator(WithTable(table), WithMaxLength(100))
	assert.Same(t, table, calc.Table())

	var wg sync.WaitGroup
	for i := 1; i <= 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := calc.Add(toRoman(n), toRoman(n))
			assert.NoError(t, err)
			assert.Equal(t, toRoman(2*n), got)
		}(i)
	}
	wg.Wait()
}
