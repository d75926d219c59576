package engine

// EstimateTokens returns the inference output of a compute fleet.
//
// EffectiveUnits = UnitCount × utilization; TokensPerSecond =
// EffectiveUnits × tokens per unit-second; AnnualTokens = TokensPerSecond ×
// SecondsPerYear.
func EstimateTokens(compute ComputeCapacity, a TokenAssumptions) TokenOutput {
	effective := compute.UnitCount * a.Utilization
	perSecond := effective * a.TokensPerUnitSecond
	return TokenOutput{
		EffectiveUnits:  effective,
		TokensPerSecond: perSecond,
		AnnualTokens:    perSecond * SecondsPerYear,
	}
}
