package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"depreciation-calculator/domain"
	"depreciation-calculator/presenter"
	"depreciation-calculator/service"
)

func addAssetFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("cost", 0, "Asset cost")
	cmd.Flags().Float64("salvage", 0, "Salvage value")
	cmd.Flags().Int("life", 1, "Useful life in years")
	cmd.Flags().Float64("units-produced", 0, "Units produced this year (units of production only)")
	cmd.Flags().Float64("total-units", 0, "Total estimated units (units of production only)")
}

// unitFlags returns nil pointers for flags the user did not set, so a
// missing value stays distinguishable from zero.
func unitFlags(cmd *cobra.Command) (produced, total *float64) {
	if cmd.Flags().Changed("units-produced") {
		v, _ := cmd.Flags().GetFloat64("units-produced")
		produced = &v
	}
	if cmd.Flags().Changed("total-units") {
		v, _ := cmd.Flags().GetFloat64("total-units")
		total = &v
	}
	return produced, total
}

func newCalcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Print a depreciation schedule",
		Example: `  depreciation calc --method straight-line --cost 10000 --salvage 1000 --life 5
  depreciation calc --method 3 --cost 10000 --salvage 1000 --life 3 --units-produced 200 --total-units 1000`,
		Args: cobra.NoArgs,
		RunE: runCalc,
	}
	cmd.Flags().StringP("method", "m", "straight-line", "Method code (1-5), slug or name")
	addAssetFlags(cmd)
	return cmd
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	methodFlag, _ := cmd.Flags().GetString("method")
	method, _ := domain.ParseMethod(methodFlag)
	cost, _ := cmd.Flags().GetFloat64("cost")
	salvage, _ := cmd.Flags().GetFloat64("salvage")
	life, _ := cmd.Flags().GetInt("life")
	produced, total := unitFlags(cmd)

	svc := service.NewDepreciationService(nil, 0)
	schedule, err := svc.Calculate(context.Background(), domain.DepreciationInput{
		Method:        method,
		Cost:          cost,
		Salvage:       salvage,
		Life:          life,
		UnitsProduced: produced,
		TotalUnits:    total,
	})
	if err != nil {
		if domain.IsInvalidRequest(err) {
			logger.Debug("invalid calculation request", "err", err)
			presenter.WriteInvalid(cmd.ErrOrStderr())
			return errReported
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Depreciation Schedule: %s\n\n", schedule.Method)
	return presenter.WriteTable(out, schedule, cfg.Display.Currency)
}

func newCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare every applicable method for one asset",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	addAssetFlags(cmd)
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	cost, _ := cmd.Flags().GetFloat64("cost")
	salvage, _ := cmd.Flags().GetFloat64("salvage")
	life, _ := cmd.Flags().GetInt("life")
	produced, total := unitFlags(cmd)

	svc := service.NewCompareService(service.NewDepreciationService(nil, 0))
	result, err := svc.Compare(context.Background(), service.CompareInput{
		Cost:          cost,
		Salvage:       salvage,
		Life:          life,
		UnitsProduced: produced,
		TotalUnits:    total,
	})
	if err != nil {
		if domain.IsInvalidRequest(err) {
			logger.Debug("invalid comparison request", "err", err)
			presenter.WriteInvalid(cmd.ErrOrStderr())
			return errReported
		}
		return err
	}
	return presenter.WriteComparison(cmd.OutOrStdout(), result, cfg.Display.Currency)
}

func newMethodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the supported depreciation methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range service.NewDepreciationService(nil, 0).Methods() {
				line := m.Name
				if m.RequiresUnits {
					line += " (requires --units-produced and --total-units)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %-26s %s\n", m.Code, m.Slug, line)
			}
			return nil
		},
	}
}
