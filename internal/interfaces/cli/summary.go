package cli

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/salesreport/backend/internal/domain/report"
)

// SummaryRow is one line of the summary CSV: a group's total in one month
type SummaryRow struct {
	Distributor string `csv:"Distributor"`
	SalesRep    string `csv:"Sales Rep,omitempty"`
	Agency      string `csv:"Agency"`
	Product     string `csv:"Product,omitempty"`
	Month       string `csv:"Month"`
	Amount      string `csv:"Net Value"`
	Quantity    string `csv:"Qty Conv"`
}

type summaryCmd struct {
	cli      *CLI
	input    string
	products bool
	filter   filterFlags
}

func newSummaryCmd(cli *CLI) *cobra.Command {
	sc := &summaryCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Write the aggregated monthly figures as CSV",
		RunE:  sc.run,
	}
	cmd.Flags().StringVarP(&sc.input, "input", "i", "", "Sales sheet (.xlsx or .csv)")
	cmd.Flags().BoolVar(&sc.products, "products", false, "Break agencies down by product")
	sc.filter.register(cmd)
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (sc *summaryCmd) run(cmd *cobra.Command, _ []string) error {
	filter, err := sc.filter.build()
	if err != nil {
		return err
	}
	records, err := sc.cli.loadRecords(sc.input, filter)
	if err != nil {
		return err
	}

	names := report.DefaultMonthNames()
	axis := report.ColumnModelFromRecords(records, names)
	if filter.HasDateRange() {
		axis = axis.Extend(report.MonthKeyOf(*filter.FromDate), report.MonthKeyOf(*filter.ToDate), names)
	}
	tree, err := report.BuildTree(records, axis, filter.Dimensions())
	if err != nil {
		return err
	}

	return gocsv.Marshal(SummaryRows(tree, sc.products), cmd.OutOrStdout())
}

// SummaryRows flattens a tree into CSV rows, one per group and month
func SummaryRows(tree *report.AggregateTree, products bool) []*SummaryRow {
	var rows []*SummaryRow
	add := func(g *report.AggregateGroup) {
		for _, mk := range tree.Axis.Keys() {
			rows = append(rows, &SummaryRow{
				Distributor: g.Key.Distributor,
				SalesRep:    g.Key.SalesRep,
				Agency:      g.Key.Agency,
				Product:     g.Key.Product,
				Month:       monthCell(mk),
				Amount:      g.Amount(mk).StringFixed(2),
				Quantity:    g.Quantity(mk).String(),
			})
		}
	}
	for _, d := range tree.Distributors {
		for _, a := range d.Agencies {
			if !products {
				add(a.Group)
				continue
			}
			for _, p := range a.Products {
				add(p)
			}
		}
	}
	return rows
}

// monthCell renders a month as YYYY-MM
func monthCell(mk report.MonthKey) string {
	return fmt.Sprintf("%04d-%02d", mk.Year, mk.Month)
}
