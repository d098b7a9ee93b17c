package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesreport/backend/internal/domain/report"
)

type columnsCmd struct {
	cli    *CLI
	input  string
	filter filterFlags
}

func newColumnsCmd(cli *CLI) *cobra.Command {
	cc := &columnsCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Print the month columns a report would have",
		RunE:  cc.run,
	}
	cmd.Flags().StringVarP(&cc.input, "input", "i", "", "Sales sheet (.xlsx or .csv)")
	cc.filter.register(cmd)
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (cc *columnsCmd) run(cmd *cobra.Command, _ []string) error {
	filter, err := cc.filter.build()
	if err != nil {
		return err
	}
	records, err := cc.cli.loadRecords(cc.input, filter)
	if err != nil {
		return err
	}

	names := report.DefaultMonthNames()
	axis := report.ColumnModelFromRecords(records, names)
	if filter.HasDateRange() {
		axis = axis.Extend(report.MonthKeyOf(*filter.FromDate), report.MonthKeyOf(*filter.ToDate), names)
	}
	labels := axis.Labels()
	for i, k := range axis.Keys() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", monthCell(k), labels[i])
	}
	return nil
}
