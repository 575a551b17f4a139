package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/workload-planner/backend/internal/config"
	v1 "github.com/workload-planner/backend/internal/controllers/v1"
	"github.com/workload-planner/backend/internal/export"
	"github.com/workload-planner/backend/internal/ledger"
	"github.com/workload-planner/backend/internal/types"
	"gopkg.in/yaml.v3"
)

var ErrNoDefinition = errors.New("a ledger definition file must be specified with --file")

func newReportCommand() *cobra.Command {
	var file, xlsx string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the monthly summary of a ledger definition",
		Long: `Print the monthly summary of a ledger definition file.

The file is YAML or JSON with the same fields as the body for creating
a ledger through the API. Ledgers without targets use DEFAULT_TARGET.`,
		Example: "  planner report --file plan.yaml --xlsx plan.xlsx",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return ErrNoDefinition
			}

			cfg := config.Load()
			return report(cmd.OutOrStdout(), file, xlsx, cfg.DefaultTarget)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "ledger definition file, YAML or JSON")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "also write the ledger as XLSX workbook to this path")

	return cmd
}

func report(out io.Writer, file, xlsx string, defaultTarget decimal.Decimal) error {
	def, err := loadDefinition(file)
	if err != nil {
		return err
	}

	l, err := def.Ledger(ledger.Uniform(defaultTarget))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	fmt.Fprintf(out, "%s, %d\n", def.Resource, def.Year)
	fmt.Fprintln(out, summaryTable(l, def.Year))

	if xlsx == "" {
		return nil
	}

	f, err := export.Workbook(l, export.Meta{Resource: def.Resource, Year: def.Year})
	if err != nil {
		return err
	}
	defer f.Close()

	err = f.SaveAs(xlsx)
	if err != nil {
		return fmt.Errorf("could not write workbook: %w", err)
	}

	fmt.Fprintf(out, "Workbook written to %s\n", xlsx)
	return nil
}

// loadDefinition reads and validates a ledger definition.
// JSON is valid YAML, so both are read with the YAML decoder.
func loadDefinition(file string) (v1.LedgerCreate, error) {
	var def v1.LedgerCreate

	data, err := os.ReadFile(file)
	if err != nil {
		return def, err
	}

	err = yaml.Unmarshal(data, &def)
	if err != nil {
		return def, fmt.Errorf("%s is not a valid ledger definition: %w", file, err)
	}

	err = binding.Validator.ValidateStruct(&def)
	if err != nil {
		return def, fmt.Errorf("%s is not a valid ledger definition: %w", file, err)
	}

	return def, nil
}

func summaryTable(l *ledger.Ledger, year int) string {
	s := l.Summary()

	rows := make([][]string, 0, ledger.Months+1)
	for _, m := range s.Months {
		rows = append(rows, []string{
			types.Month(m.Month).In(year),
			m.Target.String(),
			m.Allocated.String(),
			m.Available.String(),
			m.Utilization.StringFixed(2),
			string(m.Status),
		})
	}

	rows = append(rows, []string{
		"Year",
		s.YearTarget.String(),
		s.YearTotal.String(),
		s.YearTarget.Sub(s.YearTotal).String(),
		s.AverageUtilization.StringFixed(2),
		"",
	})

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Month", "Target", "Allocated", "Available", "Utilization %", "Status").
		Rows(rows...).
		String()
}
