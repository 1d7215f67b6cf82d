package utils_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"linguabook-backend/internal/domain"
	"linguabook-backend/internal/utils"
)

func TestComputeUnits(t *testing.T) {
	rate := &domain.Rate{UnitMinutes: 60, MinimumUnits: 1}

	assert.Equal(t, int32(1), utils.ComputeUnits(60, rate))
	assert.Equal(t, int32(2), utils.ComputeUnits(61, rate))
	assert.Equal(t, int32(2), utils.ComputeUnits(90, rate))
	assert.Equal(t, int32(1), utils.ComputeUnits(1, rate))

	t.Run("Minimum Floor", func(t *testing.T) {
		floored := &domain.Rate{UnitMinutes: 60, MinimumUnits: 2}
		assert.Equal(t, int32(2), utils.ComputeUnits(20, floored))
		assert.Equal(t, int32(3), utils.ComputeUnits(150, floored))
	})

	t.Run("Zero Unit Minutes Defaults To Sixty", func(t *testing.T) {
		unset := &domain.Rate{MinimumUnits: 1}
		assert.Equal(t, int32(2), utils.ComputeUnits(90, unset))
	})

	t.Run("Thirty Minute Units", func(t *testing.T) {
		half := &domain.Rate{UnitMinutes: 30, MinimumUnits: 1}
		assert.Equal(t, int32(3), utils.ComputeUnits(90, half))
		assert.Equal(t, int32(4), utils.ComputeUnits(91, half))
	})
}

func TestComputeAmountPence(t *testing.T) {
	rate := &domain.Rate{PricePerUnitPence: 2000}
	assert.Equal(t, int32(4000), utils.ComputeAmountPence(2, rate))
	assert.Equal(t, int32(0), utils.ComputeAmountPence(0, rate))
}

func TestFormatPence(t *testing.T) {
	assert.Equal(t, "£40.00", utils.FormatPence(4000))
	assert.Equal(t, "£0.05", utils.FormatPence(5))
	assert.Equal(t, "£12.50", utils.FormatPence(1250))
	assert.Equal(t, "-£1.25", utils.FormatPence(-125))
}

func TestGenerateReference(t *testing.T) {
	ref := utils.GenerateReference("LB")
	assert.Regexp(t, regexp.MustCompile(`^LB-[0-9A-F]{6}$`), ref)

	// References come from random UUIDs, so consecutive calls differ.
	assert.NotEqual(t, ref, utils.GenerateReference("LB"))
}
