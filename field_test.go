package cron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_ExactBounds(t *testing.T) {
	tests := []struct {
		name string
		ctor func(interface{}) (Field, error)
		min  int
		max  int
	}{
		{"second", Second, 0, 59},
		{"minute", Minute, 0, 59},
		{"hour", Hour, 0, 23},
		{"day", DayOfMonth, 1, 31},
		{"month", Month, 1, 12},
		{"weekday", DayOfWeek, 0, 6},
		{"year", Year, 1970, 2099},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.ctor(tt.min)
			require.NoError(t, err)
			assert.True(t, f.Matches(tt.min))

			f, err = tt.ctor(tt.max)
			require.NoError(t, err)
			assert.True(t, f.Matches(tt.max))

			_, err = tt.ctor(tt.min - 1)
			assert.Error(t, err)

			_, err = tt.ctor(tt.max + 1)
			assert.Error(t, err)
		})
	}
}

func TestField_ExactMatchesOnlyItself(t *testing.T) {
	f, err := Minute(30)
	require.NoError(t, err)

	assert.True(t, f.Matches(30))
	assert.False(t, f.Matches(29))
	assert.False(t, f.Matches(31))
}

func TestField_Wildcard(t *testing.T) {
	f, err := Hour("*")
	require.NoError(t, err)

	for v := 0; v <= 23; v++ {
		assert.True(t, f.Matches(v), "hour %d", v)
	}
	assert.False(t, f.Matches(-1))
	assert.False(t, f.Matches(24))
}

func TestField_Range(t *testing.T) {
	f, err := Minute("10-20")
	require.NoError(t, err)

	assert.False(t, f.Matches(9))
	assert.True(t, f.Matches(10))
	assert.True(t, f.Matches(15))
	assert.True(t, f.Matches(20))
	assert.False(t, f.Matches(21))

	// A reversed range is normalized.
	f, err = Minute("20-10")
	require.NoError(t, err)
	assert.True(t, f.Matches(15))
	assert.False(t, f.Matches(21))
}

func TestField_List(t *testing.T) {
	f, err := Minute("1,4,10")
	require.NoError(t, err)

	assert.True(t, f.Matches(1))
	assert.True(t, f.Matches(4))
	assert.True(t, f.Matches(10))
	assert.False(t, f.Matches(2))
	assert.False(t, f.Matches(0))
}

func TestField_WildcardStep(t *testing.T) {
	f, err := Minute("*/15")
	require.NoError(t, err)

	for v := 0; v <= 59; v++ {
		assert.Equal(t, v%15 == 0, f.Matches(v), "minute %d", v)
	}
}

// The step test adds the range's lower bound before taking the modulus:
// "a-b/n" matches candidates where (candidate+a)%n == 0, not the conventional
// (candidate-a)%n == 0. This pins the preserved arithmetic; for "1-11/3" the
// two variants select disjoint candidates.
func TestField_StepArithmetic(t *testing.T) {
	f, err := Minute("1-11/3")
	require.NoError(t, err)

	for v := 1; v <= 11; v++ {
		assert.Equal(t, (v+1)%3 == 0, f.Matches(v), "minute %d", v)
	}

	// The conventional zero-based candidates must not match.
	for _, v := range []int{1, 4, 7, 10} {
		assert.False(t, f.Matches(v), "minute %d", v)
	}
	for _, v := range []int{2, 5, 8, 11} {
		assert.True(t, f.Matches(v), "minute %d", v)
	}
}

func TestField_StepOutsideRange(t *testing.T) {
	f, err := Minute("0-10/2")
	require.NoError(t, err)

	assert.True(t, f.Matches(0))
	assert.True(t, f.Matches(10))
	assert.False(t, f.Matches(12), "aligned but outside the range")
}

func TestField_PhraseSubstitution(t *testing.T) {
	for _, value := range []string{"mon", "Mon", "MON", "monday", "Monday"} {
		f, err := DayOfWeek(value)
		require.NoError(t, err, value)

		assert.True(t, f.Matches(0), value)
		for v := 1; v <= 6; v++ {
			assert.False(t, f.Matches(v), "%s vs %d", value, v)
		}
	}

	f, err := Month("jan")
	require.NoError(t, err)
	assert.True(t, f.Matches(1))
	assert.False(t, f.Matches(2))

	// Phrases participate in the grammar like any integer.
	f, err = DayOfWeek("mon-fri")
	require.NoError(t, err)
	for v := 0; v <= 4; v++ {
		assert.True(t, f.Matches(v), "weekday %d", v)
	}
	assert.False(t, f.Matches(5))
	assert.False(t, f.Matches(6))
}

func TestField_InvalidSpecials(t *testing.T) {
	// Day-of-week does not allow comma lists.
	_, err := DayOfWeek("0,4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ",")

	// Minutes allow none of ? L W #.
	_, err = Minute("?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "?")

	_, err = Minute("1-30/2")
	assert.NoError(t, err)
}

func TestField_Set(t *testing.T) {
	f, err := Hour([]int{4, 2, 2, 0})
	require.NoError(t, err)

	assert.True(t, f.Matches(0))
	assert.True(t, f.Matches(2))
	assert.True(t, f.Matches(4))
	assert.False(t, f.Matches(1))
	assert.False(t, f.Matches(3))
}

func TestField_EmptyClause(t *testing.T) {
	f, err := Minute("1,,2")
	require.NoError(t, err)

	assert.True(t, f.Matches(1))
	assert.True(t, f.Matches(2))
	assert.False(t, f.Matches(3))

	f, err = Minute("")
	require.NoError(t, err)
	assert.False(t, f.Matches(0))
}

func TestField_UnsupportedType(t *testing.T) {
	_, err := Hour(1.5)
	assert.Error(t, err)
}

func TestField_String(t *testing.T) {
	f, err := Minute(30)
	require.NoError(t, err)
	assert.Equal(t, "30", f.String())

	f, err = Minute("*/5")
	require.NoError(t, err)
	assert.Equal(t, "*/5", f.String())

	f, err = Minute([]int{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, "[1 2 3]", f.String())

	// Five or more elements render abbreviated.
	f, err = Minute([]int{0, 10, 20, 30, 40, 50})
	require.NoError(t, err)
	assert.Equal(t, "[0...50]", f.String())
}
