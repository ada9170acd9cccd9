package service

import (
	"context"
	"fmt"

	"depreciation-calculator/domain"
)

type CompareInput struct {
	Cost          float64  `json:"cost"`
	Salvage       float64  `json:"salvage"`
	Life          int      `json:"life"`
	UnitsProduced *float64 `json:"units_produced,omitempty"`
	TotalUnits    *float64 `json:"total_units,omitempty"`
}

type CompareService struct {
	depreciation *DepreciationService
}

func NewCompareService(depreciation *DepreciationService) *CompareService {
	return &CompareService{depreciation: depreciation}
}

// Compare runs every applicable method against the same asset. Units of
// production is included only when both unit figures are supplied.
func (s *CompareService) Compare(
	ctx context.Context,
	input CompareInput,
) (domain.ComparisonResult, error) {

	result := domain.ComparisonResult{
		Cost:    input.Cost,
		Salvage: input.Salvage,
		Life:    input.Life,
	}

	for _, code := range domain.AllMethods {
		if code.RequiresUnits() && (input.UnitsProduced == nil || input.TotalUnits == nil) {
			continue
		}

		schedule, err := s.depreciation.Calculate(ctx, domain.DepreciationInput{
			Method:        code,
			Cost:          input.Cost,
			Salvage:       input.Salvage,
			Life:          input.Life,
			UnitsProduced: input.UnitsProduced,
			TotalUnits:    input.TotalUnits,
		})
		if err != nil {
			return domain.ComparisonResult{}, fmt.Errorf("compare %s: %w", code.Slug(), err)
		}

		result.Methods = append(result.Methods, summarize(schedule))
	}

	return result, nil
}

func summarize(schedule domain.Schedule) domain.MethodSummary {
	summary := domain.MethodSummary{
		Method:            schedule.Method,
		Name:              schedule.Method.String(),
		TotalDepreciation: roundTo2Decimals(schedule.TotalDepreciation()),
		FinalBookValue:    roundTo2Decimals(schedule.FinalBookValue()),
		Schedule:          schedule,
	}
	if len(schedule.Rows) > 0 {
		summary.FirstYearDepreciation = roundTo2Decimals(schedule.Rows[0].Depreciation)
	}
	return summary
}
