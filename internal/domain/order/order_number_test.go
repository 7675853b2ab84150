package order

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayPrefix(t *testing.T) {
	t.Run("uses UTC date", func(t *testing.T) {
		loc := time.FixedZone("UTC+9", 9*60*60)
		// 2024-06-16 01:30 in UTC+9 is still 2024-06-15 in UTC
		local := time.Date(2024, 6, 16, 1, 30, 0, 0, loc)

		assert.Equal(t, "240615", DatePart(local))
		assert.Equal(t, "FLX-240615-", DayPrefix(local))
	})
}

func TestNewOrderNumber(t *testing.T) {
	day := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first number of the day", func(t *testing.T) {
		n, err := NewOrderNumber(day, 1)
		require.NoError(t, err)

		assert.Equal(t, "FLX-240101-0001", n.String())
		assert.Len(t, n.String(), 16)
		assert.Equal(t, "240101", n.DatePart())
		assert.Equal(t, 1, n.Sequence())
		assert.Equal(t, "FLX-240101-", n.Prefix())
	})

	t.Run("last number of the day", func(t *testing.T) {
		n, err := NewOrderNumber(day, MaxSequence)
		require.NoError(t, err)
		assert.Equal(t, "FLX-240101-9999", n.String())
	})

	t.Run("rejects zero sequence", func(t *testing.T) {
		_, err := NewOrderNumber(day, 0)
		assert.ErrorIs(t, err, ErrInvalidOrderNumber)
	})

	t.Run("rejects sequence past 9999", func(t *testing.T) {
		_, err := NewOrderNumber(day, MaxSequence+1)
		assert.ErrorIs(t, err, ErrSequenceOverflow)
	})
}

func TestParseOrderNumber(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		n, err := ParseOrderNumber("FLX-240615-0042")
		require.NoError(t, err)
		assert.Equal(t, "240615", n.DatePart())
		assert.Equal(t, 42, n.Sequence())
		assert.Equal(t, "FLX-240615-0042", n.String())
	})

	invalid := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong prefix", "ABC-240615-0001"},
		{"lowercase prefix", "flx-240615-0001"},
		{"too short", "FLX-240615-001"},
		{"too long", "FLX-240615-00001"},
		{"non numeric date", "FLX-24O615-0001"},
		{"impossible date", "FLX-240230-0001"},
		{"missing separator", "FLX-240615_0001"},
		{"non numeric sequence", "FLX-240615-00a1"},
		{"signed sequence", "FLX-240615-+001"},
		{"zero sequence", "FLX-240615-0000"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrderNumber(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOrderNumber))
		})
	}
}

func TestOrderNumber_Next(t *testing.T) {
	t.Run("increments within the day", func(t *testing.T) {
		n, err := ParseOrderNumber("FLX-240101-0001")
		require.NoError(t, err)

		next, err := n.Next()
		require.NoError(t, err)
		assert.Equal(t, "FLX-240101-0002", next.String())
	})

	t.Run("carries across digit boundaries", func(t *testing.T) {
		n, err := ParseOrderNumber("FLX-240101-0999")
		require.NoError(t, err)

		next, err := n.Next()
		require.NoError(t, err)
		assert.Equal(t, "FLX-240101-1000", next.String())
	})

	t.Run("overflows loudly at 9999", func(t *testing.T) {
		n, err := ParseOrderNumber("FLX-240101-9999")
		require.NoError(t, err)

		next, err := n.Next()
		assert.ErrorIs(t, err, ErrSequenceOverflow)
		assert.True(t, next.IsZero())
		assert.Equal(t, "", next.String())
	})
}

func TestOrderNumber_LexicographicOrderMatchesSequence(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	prev := ""
	for _, seq := range []int{1, 9, 10, 99, 100, 999, 1000, 9999} {
		n, err := NewOrderNumber(day, seq)
		require.NoError(t, err)
		assert.Greater(t, n.String(), prev)
		prev = n.String()
	}
}
