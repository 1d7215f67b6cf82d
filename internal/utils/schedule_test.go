package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"linguabook-backend/internal/utils"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		date, err := utils.ParseDate("2026-09-14")
		assert.NoError(t, err)
		assert.Equal(t, "2026-09-14", date)
	})

	t.Run("Invalid", func(t *testing.T) {
		cases := []string{"14-09-2026", "2026/09/14", "2026-13-01", "2026-09-32", "2026-9-14", ""}
		for _, c := range cases {
			_, err := utils.ParseDate(c)
			assert.Error(t, err, "expected %q to be rejected", c)
		}
	})
}

func TestMinutesOfDay(t *testing.T) {
	minutes, err := utils.MinutesOfDay("09:30")
	assert.NoError(t, err)
	assert.Equal(t, int32(570), minutes)

	minutes, err = utils.MinutesOfDay("00:00")
	assert.NoError(t, err)
	assert.Equal(t, int32(0), minutes)

	minutes, err = utils.MinutesOfDay("23:59")
	assert.NoError(t, err)
	assert.Equal(t, int32(1439), minutes)

	for _, c := range []string{"25:00", "09:60", "9am", "0930", ""} {
		_, err := utils.MinutesOfDay(c)
		assert.Error(t, err, "expected %q to be rejected", c)
	}
}

func TestExpectedEndTime(t *testing.T) {
	end, err := utils.ExpectedEndTime("09:30", 90)
	assert.NoError(t, err)
	assert.Equal(t, "11:00", end)

	// Crossing midnight wraps to the next day's clock time.
	end, err = utils.ExpectedEndTime("23:30", 90)
	assert.NoError(t, err)
	assert.Equal(t, "01:00", end)

	_, err = utils.ExpectedEndTime("24:00", 60)
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	// Half-open intervals: a shared endpoint is not a conflict.
	assert.True(t, utils.Overlaps(540, 600, 570, 630))
	assert.True(t, utils.Overlaps(540, 600, 550, 560))
	assert.False(t, utils.Overlaps(540, 600, 600, 660))
	assert.False(t, utils.Overlaps(600, 660, 540, 600))
	assert.False(t, utils.Overlaps(540, 600, 700, 760))
}

func TestLanguageMatches(t *testing.T) {
	languages := []string{"Mandarin Chinese", "Arabic (Levantine)"}

	assert.True(t, utils.LanguageMatches(languages, "mandarin"))
	assert.True(t, utils.LanguageMatches(languages, "Arabic"))
	assert.True(t, utils.LanguageMatches(languages, " arabic "))
	assert.False(t, utils.LanguageMatches(languages, "Polish"))
	assert.False(t, utils.LanguageMatches(languages, ""))
	assert.False(t, utils.LanguageMatches(nil, "arabic"))
}
