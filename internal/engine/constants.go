// Package engine converts an AI power budget into compute capacity,
// capital expenditure, physical infrastructure and global resource fractions.
package engine

const (
	// H100Watts is the all-in power draw of one H100-equivalent in 2025,
	// including host, networking and cooling share.
	H100Watts = 1000.0

	// H100CostUSD is the purchase cost of one H100-equivalent in 2025.
	H100CostUSD = 24000.0

	// H100OpsPerSecond is the dense FP8 throughput of one H100 in 2024.
	H100OpsPerSecond = 2e15

	// DensityBaseYear is the year the compute-density curve is normalized to 1.0.
	DensityBaseYear = 2024

	// EfficiencyBaseYear is the year the power and cost curves start from
	// H100Watts and H100CostUSD.
	EfficiencyBaseYear = 2025

	// EarlyAnchorYear and LateAnchorYear bound the interpolation horizon of
	// every efficiency curve.
	EarlyAnchorYear = 2025
	LateAnchorYear  = 2040

	// HoursPerYear is the Julian year used to turn a continuous draw into
	// annual energy (365.25 × 24).
	HoursPerYear = 8766.0

	// SecondsPerYear is HoursPerYear in seconds.
	SecondsPerYear = HoursPerYear * 3600

	// WattsPerMegawatt converts watts to megawatts.
	WattsPerMegawatt = 1e6

	// MixTolerance is how far the shares of an energy mix may drift from 1.0.
	MixTolerance = 1e-9
)

// Global reference values, 2024 vintage.
const (
	// WorldElectricityWh is annual world electricity generation (35.2 PWh).
	WorldElectricityWh = 35.2e15

	// WorldFinalEnergyWh is annual world final energy consumption (180 PWh).
	WorldFinalEnergyWh = 180e15

	// WorldGDPUSD is annual world GDP (111 trillion USD).
	WorldGDPUSD = 111e12
)

const (
	// DefaultInfrastructureCapexPerWatt is non-compute capital (power plants,
	// buildings, grid tie-in) per watt of budget. Matches a 50% non-compute
	// share of 2025 compute capex (24 USD/W).
	DefaultInfrastructureCapexPerWatt = 12.0

	// DefaultNonComputeRatio and DefaultNonComputeGrowth parameterize the
	// compute_ratio capex mode: ratio × growth^(year − base).
	DefaultNonComputeRatio  = 0.5
	DefaultNonComputeGrowth = 1.1

	// DefaultWarnThreshold marks a resource as strained.
	DefaultWarnThreshold = 0.1

	// DefaultInfeasibleThreshold marks a resource as physically infeasible.
	DefaultInfeasibleThreshold = 1.0

	// DefaultUtilization is the average accelerator utilization assumed for
	// token output.
	DefaultUtilization = 0.5

	// DefaultTokensPerUnitSecond is inference throughput of one
	// H100-equivalent on a large model.
	DefaultTokensPerUnitSecond = 10000.0

	// DefaultMinYear and DefaultMaxYear bound the years the engine accepts.
	DefaultMinYear = 1970
	DefaultMaxYear = 2200
)

// Energy source names known to the default assumptions.
const (
	SourceSolar = "solar"
	SourceGas   = "gas"
)

// Equipment category names known to the default assumptions.
const (
	CategoryTransformers = "transformers"
	CategorySwitchgear   = "switchgear"
	CategoryPVModules    = "pv_modules"
	CategoryBatteries    = "batteries_mwh"
	CategoryGasTurbines  = "gas_turbines"
)

// Global resource names that are not equipment categories.
const (
	ResourceElectricity = "electricity"
	ResourceFinalEnergy = "final_energy"
	ResourceGDP         = "gdp"
)
