package service

const (
	MaxAssetCost  = 1_000_000_000_000.0 // one trillion in the display currency
	MaxLifeYears  = 100
	MinLifeYears  = 1
	MaxTotalUnits = 1e15
	// MinTotalUnits keeps the production ratio finite for any accepted units
	// produced figure.
	MinTotalUnits    = 1e-6
	MaxUnitsProduced = MaxTotalUnits

	monthsPerYear = 12

	// cacheKeyPrefix is bumped whenever the cached schedule layout changes.
	cacheKeyPrefix = "depreciation:v1:"
)
