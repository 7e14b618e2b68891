package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/generic"
	"github.com/clasc/site/liquidation"
)

// =============================================================================
// actuarial
// =============================================================================

type actuarialOptions struct {
	start  string
	end    string
	salary string
	now    string
	json   bool
}

func newActuarialCmd(g *globals) *cobra.Command {
	opts := &actuarialOptions{}

	cmd := &cobra.Command{
		Use:   "actuarial",
		Short: "Estimate the actuarial debt for an uncontributed period",
		Long: `Computes the weeks missing, the base amount and the indexed amount due at
the end of this month and of next month, using the configured reference data.`,
		Example: `  clasc actuarial --start 2020-01-01 --end 2020-03-01 --salary 1000000
  clasc actuarial --start 2020-01-01 --end 2020-03-01 --salary 1000000 --now 2021-02-10 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runActuarial(cmd, g, opts)
		},
	}
	cmd.Flags().StringVar(&opts.start, "start", "", "first day of the omission period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.end, "end", "", "last day of the omission period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.salary, "salary", "", "monthly salary in pesos")
	cmd.Flags().StringVar(&opts.now, "now", "", "evaluation date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output the result as JSON")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("salary")
	return cmd
}

func runActuarial(cmd *cobra.Command, g *globals, opts *actuarialOptions) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	defer logger.Sync()

	clock, err := evaluationClock(opts.now, cfg.Location, logger)
	if err != nil {
		return err
	}

	start, err := generic.ParseDate(opts.start)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	end, err := generic.ParseDate(opts.end)
	if err != nil {
		return fmt.Errorf("--end: %w", err)
	}

	src, err := openRates(cmd.Context(), cfg.Rates, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	calc := actuarial.NewCalculator(src.Table, clock)
	if msgs := calc.ValidateInputs(opts.start, opts.end, opts.salary); len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "; "))
	}
	salary, _ := generic.ParseAmount(opts.salary)

	result := calc.Calculate(start, end, salary)
	if opts.json {
		return printJSON(cmd, actuarialJSON(result))
	}

	cmd.Printf("Semanas faltantes:   %d\n", result.WeeksMissing)
	cmd.Printf("Base semanal:        %s\n", generic.FormatCOP(result.WeeklyBase))
	cmd.Printf("Monto base:          %s\n", generic.FormatCOP(result.BaseAmount))
	cmd.Printf("Pago hasta %s: %s (factor %s)\n",
		result.FirstPaymentDate.Format(generic.DateLayout),
		generic.FormatCOP(result.FirstPaymentAmount),
		result.FirstPaymentFactor.StringFixed(6))
	cmd.Printf("Pago hasta %s: %s (factor %s)\n",
		result.SecondPaymentDate.Format(generic.DateLayout),
		generic.FormatCOP(result.SecondPaymentAmount),
		result.SecondPaymentFactor.StringFixed(6))
	return nil
}

// evaluationClock pins "now" to --now when given, else the configured zone's
// wall clock. A bad zone falls back to UTC with a warning, as serve does.
func evaluationClock(now string, location func() (*time.Location, error), logger *zap.Logger) (generic.Clock, error) {
	if now != "" {
		t, err := generic.ParseDate(now)
		if err != nil {
			return nil, fmt.Errorf("--now: %w", err)
		}
		return generic.FixedClock(t), nil
	}
	loc, err := location()
	if err != nil {
		logger.Warn("falling back to UTC", zap.Error(err))
	}
	return generic.SystemClock(loc), nil
}

func actuarialJSON(r actuarial.Result) map[string]any {
	return map[string]any{
		"weeks_missing":         r.WeeksMissing,
		"weekly_base":           r.WeeklyBase.StringFixed(2),
		"base_amount":           r.BaseAmount.StringFixed(2),
		"first_payment_date":    r.FirstPaymentDate.Format(generic.DateLayout),
		"first_payment_factor":  r.FirstPaymentFactor.StringFixed(10),
		"first_payment_amount":  r.FirstPaymentAmount.StringFixed(2),
		"second_payment_date":   r.SecondPaymentDate.Format(generic.DateLayout),
		"second_payment_factor": r.SecondPaymentFactor.StringFixed(10),
		"second_payment_amount": r.SecondPaymentAmount.StringFixed(2),
	}
}

// =============================================================================
// liquidation
// =============================================================================

func newLiquidationCmd() *cobra.Command {
	var salary, aid, days string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "liquidation",
		Short:   "Estimate a labor settlement (cesantías, intereses, prima, vacaciones)",
		Example: `  clasc liquidation --salary 1.300.000 --aid 162.000 --days 360`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := liquidation.ParseSettlement(salary, aid, days)
			if err := s.Validate(); err != nil {
				return err
			}
			b := s.Breakdown()

			if asJSON {
				return printJSON(cmd, map[string]any{
					"base_salary":        b.BaseSalary.StringFixed(2),
					"transport_aid":      b.TransportAid.StringFixed(2),
					"days_worked":        b.DaysWorked,
					"severance":          b.Severance.StringFixed(2),
					"severance_interest": b.SeveranceInterest.StringFixed(2),
					"service_bonus":      b.ServiceBonus.StringFixed(2),
					"vacation":           b.Vacation.StringFixed(2),
					"total":              b.Total.StringFixed(2),
				})
			}

			cmd.Printf("Salario base:            %s\n", generic.FormatCOP(b.BaseSalary))
			cmd.Printf("Auxilio de transporte:   %s\n", generic.FormatCOP(b.TransportAid))
			cmd.Printf("Días trabajados:         %d\n", b.DaysWorked)
			cmd.Printf("Cesantías:               %s\n", generic.FormatCOP(b.Severance))
			cmd.Printf("Intereses de cesantías:  %s\n", generic.FormatCOP(b.SeveranceInterest))
			cmd.Printf("Prima de servicios:      %s\n", generic.FormatCOP(b.ServiceBonus))
			cmd.Printf("Vacaciones:              %s\n", generic.FormatCOP(b.Vacation))
			cmd.Printf("Total liquidación:       %s\n", generic.FormatCOP(b.Total))
			return nil
		},
	}
	cmd.Flags().StringVar(&salary, "salary", "", "monthly base salary (grouping dots allowed)")
	cmd.Flags().StringVar(&aid, "aid", "", "monthly transport aid")
	cmd.Flags().StringVar(&days, "days", "", "days worked")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the result as JSON")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
