package service

import (
	"math"

	"depreciation-calculator/domain"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkAmount(field string, v float64) error {
	if !finite(v) {
		return domain.Invalid(field, "must be a finite number")
	}
	if v < 0 {
		return domain.Invalid(field, "must not be negative")
	}
	if v > MaxAssetCost {
		return domain.Invalid(field, "exceeds the maximum supported amount")
	}
	return nil
}

func checkLife(life int) error {
	if life < MinLifeYears {
		return domain.Invalid("life", "must be at least one year")
	}
	if life > MaxLifeYears {
		return domain.Invalid("life", "exceeds the maximum supported useful life")
	}
	return nil
}

// NewRequest validates raw input and resolves the method selector to its
// variant. Unit figures are only read for units of production.
func NewRequest(input domain.DepreciationInput) (domain.DepreciationRequest, error) {
	if !input.Method.Valid() {
		return domain.DepreciationRequest{}, domain.Invalid("method", "unrecognized method "+input.Method.String())
	}
	if err := checkAmount("cost", input.Cost); err != nil {
		return domain.DepreciationRequest{}, err
	}
	if err := checkAmount("salvage", input.Salvage); err != nil {
		return domain.DepreciationRequest{}, err
	}
	if err := checkLife(input.Life); err != nil {
		return domain.DepreciationRequest{}, err
	}

	var method domain.Method
	switch input.Method {
	case domain.StraightLine:
		method = domain.StraightLineMethod{}
	case domain.DecliningBalance:
		method = domain.DecliningBalanceMethod{}
	case domain.UnitsOfProduction:
		if input.UnitsProduced == nil || input.TotalUnits == nil {
			return domain.DepreciationRequest{}, domain.Invalid("units", "units produced and total units are both required")
		}
		units, total := *input.UnitsProduced, *input.TotalUnits
		if !finite(units) || units < 0 || units > MaxUnitsProduced {
			return domain.DepreciationRequest{}, domain.Invalid("units_produced", "must be a non-negative number")
		}
		if !finite(total) || total < MinTotalUnits || total > MaxTotalUnits {
			return domain.DepreciationRequest{}, domain.Invalid("total_units", "must be a positive number")
		}
		method = domain.UnitsOfProductionMethod{UnitsProduced: units, TotalUnits: total}
	case domain.SumOfYearsDigits:
		method = domain.SumOfYearsDigitsMethod{}
	case domain.DoubleDecliningBalance:
		method = domain.DoubleDecliningBalanceMethod{}
	}

	return domain.DepreciationRequest{
		Method:  method,
		Cost:    input.Cost,
		Salvage: input.Salvage,
		Life:    input.Life,
	}, nil
}

// Compute builds the year-by-year schedule for a request. It is pure: the
// same request always yields the same schedule.
func Compute(req domain.DepreciationRequest) (domain.Schedule, error) {
	if req.Method == nil {
		return domain.Schedule{}, domain.Invalid("method", "missing")
	}
	if req.Life < 1 {
		return domain.Schedule{}, domain.Invalid("life", "must be at least one year")
	}

	var rows []domain.ScheduleRow
	switch m := req.Method.(type) {
	case domain.StraightLineMethod:
		rows = constantSchedule(req.Cost, (req.Cost-req.Salvage)/float64(req.Life), req.Life)
	case domain.DecliningBalanceMethod, domain.DoubleDecliningBalanceMethod:
		rows = decliningBalanceSchedule(req.Cost, req.Salvage, req.Life)
	case domain.UnitsOfProductionMethod:
		if m.TotalUnits <= 0 {
			return domain.Schedule{}, domain.Invalid("total_units", "must be a positive number")
		}
		annual := (req.Cost - req.Salvage) * m.UnitsProduced / m.TotalUnits
		rows = constantSchedule(req.Cost, annual, req.Life)
	case domain.SumOfYearsDigitsMethod:
		rows = sumOfYearsDigitsSchedule(req.Cost, req.Salvage, req.Life)
	default:
		return domain.Schedule{}, domain.Invalid("method", "unsupported method")
	}
	for _, row := range rows {
		if !finite(row.BookValue) || !finite(row.Depreciation) {
			return domain.Schedule{}, domain.Invalid("schedule", "amounts out of range")
		}
	}

	return domain.Schedule{Method: req.Method.Code(), Rows: rows}, nil
}

func newRow(year int, bookValue, depreciation float64) domain.ScheduleRow {
	return domain.ScheduleRow{
		Year:                year,
		BookValue:           bookValue,
		Depreciation:        depreciation,
		MonthlyDepreciation: depreciation / monthsPerYear,
	}
}

// constantSchedule serves straight-line and units of production: the same
// charge every year, book value derived from years elapsed.
func constantSchedule(cost, annual float64, life int) []domain.ScheduleRow {
	rows := make([]domain.ScheduleRow, 0, life)
	for year := 1; year <= life; year++ {
		rows = append(rows, newRow(year, cost-annual*float64(year), annual))
	}
	return rows
}

// decliningBalanceSchedule applies a 2/life rate to the opening balance and
// caps each charge so the balance stops at salvage.
func decliningBalanceSchedule(cost, salvage float64, life int) []domain.ScheduleRow {
	rows := make([]domain.ScheduleRow, 0, life)
	bookValue := cost
	for year := 1; year <= life; year++ {
		depreciation := math.Min(bookValue*2/float64(life), bookValue-salvage)
		bookValue -= depreciation
		rows = append(rows, newRow(year, bookValue, depreciation))
	}
	return rows
}

func sumOfYearsDigitsSchedule(cost, salvage float64, life int) []domain.ScheduleRow {
	rows := make([]domain.ScheduleRow, 0, life)
	sumOfYears := float64(life * (life + 1) / 2)
	base := cost - salvage
	accumulated := 0.0
	for year := 1; year <= life; year++ {
		depreciation := base * float64(life-(year-1)) / sumOfYears
		accumulated += depreciation
		rows = append(rows, newRow(year, cost-accumulated, depreciation))
	}
	return rows
}

// roundTo2Decimals rounds summary figures; schedule rows keep full precision.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}
