package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"linguabook-backend/internal/domain"
)

// ComputeUnits converts worked minutes into billable units for a rate,
// rounding partial units up and applying the rate's minimum-unit floor.
func ComputeUnits(workedMinutes int32, rate *domain.Rate) int32 {
	unitMinutes := rate.UnitMinutes
	if unitMinutes <= 0 {
		unitMinutes = 60
	}
	units := workedMinutes / unitMinutes
	if workedMinutes%unitMinutes > 0 {
		units++
	}
	if units < rate.MinimumUnits {
		units = rate.MinimumUnits
	}
	return units
}

// ComputeAmountPence returns the charge for a number of units at a rate.
func ComputeAmountPence(units int32, rate *domain.Rate) int32 {
	return units * rate.PricePerUnitPence
}

// FormatPence renders a pence amount as pounds, e.g. 4000 -> "£40.00".
func FormatPence(pence int32) string {
	sign := ""
	if pence < 0 {
		sign = "-"
		pence = -pence
	}
	return fmt.Sprintf("%s£%d.%02d", sign, pence/100, pence%100)
}

// GenerateReference produces a short human-readable reference code,
// e.g. "LB-3FA9K2", for guest bookings and invoices.
func GenerateReference(prefix string) string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, raw[:6])
}
