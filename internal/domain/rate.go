package domain

type RateType string

const (
	RateTypeClient      RateType = "CLIENT"
	RateTypeInterpreter RateType = "INTERPRETER"
)

// Rate is a per-unit price keyed by party type and service type. A unit is
// UnitMinutes of worked time; MinimumUnits is the floor applied to every
// billable period regardless of how short the job ran.
type Rate struct {
	ID                string   `json:"id"`
	RateType          RateType `json:"rate_type"`
	ServiceType       string   `json:"service_type"`
	UnitMinutes       int32    `json:"unit_minutes"`
	MinimumUnits      int32    `json:"minimum_units"`
	PricePerUnitPence int32    `json:"price_per_unit_pence"`
	Currency          string   `json:"currency"`
}
