package simulation

// Policy collects the numeric cutoffs of the simulation subsystem. The exact
// values are operational policy, not hard law, so they are configurable with
// defaults matching the reference deployment.
type Policy struct {
	// Metrics extraction.
	ServiceKmPerDay        float64 `json:"service_km_per_day" yaml:"service_km_per_day"`
	TariffPerKWh           float64 `json:"tariff_per_kwh" yaml:"tariff_per_kwh"`
	MaintenanceCostPerBay  float64 `json:"maintenance_cost_per_bay" yaml:"maintenance_cost_per_bay"`
	ShuntingCostPerMove    float64 `json:"shunting_cost_per_move" yaml:"shunting_cost_per_move"`
	FallbackEnergyKWhPerKm float64 `json:"fallback_energy_kwh_per_km" yaml:"fallback_energy_kwh_per_km"`

	// Differencing.
	NeutralEpsilon float64 `json:"neutral_epsilon" yaml:"neutral_epsilon"`

	// Confidence estimation.
	BaseConfidence       float64 `json:"base_confidence" yaml:"base_confidence"`
	ExtremeChangePenalty float64 `json:"extreme_change_penalty" yaml:"extreme_change_penalty"`
	ExtremeChangePct     float64 `json:"extreme_change_pct" yaml:"extreme_change_pct"`
	ParameterLimit       int     `json:"parameter_limit" yaml:"parameter_limit"`
	ParameterPenalty     float64 `json:"parameter_penalty" yaml:"parameter_penalty"`
	ConstraintLimit      int     `json:"constraint_limit" yaml:"constraint_limit"`
	ConstraintPenalty    float64 `json:"constraint_penalty" yaml:"constraint_penalty"`
	ConfidenceFloor      float64 `json:"confidence_floor" yaml:"confidence_floor"`
	ConfidenceCeil       float64 `json:"confidence_ceil" yaml:"confidence_ceil"`

	// Recommendation triggers.
	ServiceDropTrigger  float64 `json:"service_drop_trigger" yaml:"service_drop_trigger"`
	MaintenanceTrigger  float64 `json:"maintenance_trigger" yaml:"maintenance_trigger"`
	EnergyTriggerKWh    float64 `json:"energy_trigger_kwh" yaml:"energy_trigger_kwh"`
	CostTrigger         float64 `json:"cost_trigger" yaml:"cost_trigger"`
	BrandingDropTrigger float64 `json:"branding_drop_trigger" yaml:"branding_drop_trigger"`

	// Promotion gate.
	ApplyFloor float64 `json:"apply_floor" yaml:"apply_floor"`
}

// DefaultPolicy returns the reference policy values.
func DefaultPolicy() Policy {
	return Policy{
		ServiceKmPerDay:        450,
		TariffPerKWh:           6.5,
		MaintenanceCostPerBay:  25000,
		ShuntingCostPerMove:    1500,
		FallbackEnergyKWhPerKm: 3.2,
		NeutralEpsilon:         0.01,
		BaseConfidence:         0.9,
		ExtremeChangePenalty:   0.05,
		ExtremeChangePct:       50,
		ParameterLimit:         5,
		ParameterPenalty:       0.1,
		ConstraintLimit:        3,
		ConstraintPenalty:      0.1,
		ConfidenceFloor:        0.5,
		ConfidenceCeil:         1.0,
		ServiceDropTrigger:     3,
		MaintenanceTrigger:     5,
		EnergyTriggerKWh:       500,
		CostTrigger:            20000,
		BrandingDropTrigger:    10,
		ApplyFloor:             0.7,
	}
}

// SetDefaults fills zero values with the reference policy.
func (p *Policy) SetDefaults() {
	def := DefaultPolicy()
	if p.ServiceKmPerDay == 0 {
		p.ServiceKmPerDay = def.ServiceKmPerDay
	}
	if p.TariffPerKWh == 0 {
		p.TariffPerKWh = def.TariffPerKWh
	}
	if p.MaintenanceCostPerBay == 0 {
		p.MaintenanceCostPerBay = def.MaintenanceCostPerBay
	}
	if p.ShuntingCostPerMove == 0 {
		p.ShuntingCostPerMove = def.ShuntingCostPerMove
	}
	if p.FallbackEnergyKWhPerKm == 0 {
		p.FallbackEnergyKWhPerKm = def.FallbackEnergyKWhPerKm
	}
	if p.NeutralEpsilon == 0 {
		p.NeutralEpsilon = def.NeutralEpsilon
	}
	if p.BaseConfidence == 0 {
		p.BaseConfidence = def.BaseConfidence
	}
	if p.ExtremeChangePenalty == 0 {
		p.ExtremeChangePenalty = def.ExtremeChangePenalty
	}
	if p.ExtremeChangePct == 0 {
		p.ExtremeChangePct = def.ExtremeChangePct
	}
	if p.ParameterLimit == 0 {
		p.ParameterLimit = def.ParameterLimit
	}
	if p.ParameterPenalty == 0 {
		p.ParameterPenalty = def.ParameterPenalty
	}
	if p.ConstraintLimit == 0 {
		p.ConstraintLimit = def.ConstraintLimit
	}
	if p.ConstraintPenalty == 0 {
		p.ConstraintPenalty = def.ConstraintPenalty
	}
	if p.ConfidenceFloor == 0 {
		p.ConfidenceFloor = def.ConfidenceFloor
	}
	if p.ConfidenceCeil == 0 {
		p.ConfidenceCeil = def.ConfidenceCeil
	}
	if p.ServiceDropTrigger == 0 {
		p.ServiceDropTrigger = def.ServiceDropTrigger
	}
	if p.MaintenanceTrigger == 0 {
		p.MaintenanceTrigger = def.MaintenanceTrigger
	}
	if p.EnergyTriggerKWh == 0 {
		p.EnergyTriggerKWh = def.EnergyTriggerKWh
	}
	if p.CostTrigger == 0 {
		p.CostTrigger = def.CostTrigger
	}
	if p.BrandingDropTrigger == 0 {
		p.BrandingDropTrigger = def.BrandingDropTrigger
	}
	if p.ApplyFloor == 0 {
		p.ApplyFloor = def.ApplyFloor
	}
}
