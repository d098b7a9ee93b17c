package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/salesreport/backend/internal/domain/report"
)

const dateLayout = "2006-01-02"

// FilterFile is the YAML form of a report filter:
//
//	distributors: [North, South]
//	salesReps: [Jane]
//	from: 2024-01-01
//	to: 2024-06-30
type FilterFile struct {
	Distributors []string `yaml:"distributors"`
	Agencies     []string `yaml:"agencies"`
	Products     []string `yaml:"products"`
	SalesReps    []string `yaml:"salesReps"`
	Customers    []string `yaml:"customers"`
	Areas        []string `yaml:"areas"`
	From         string   `yaml:"from"`
	To           string   `yaml:"to"`
}

// filterFlags collects the filter options shared by render, columns and summary
type filterFlags struct {
	file         string
	from, to     string
	distributors []string
	agencies     []string
	products     []string
	salesReps    []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.file, "filter-file", "", "YAML file with report filters")
	cmd.Flags().StringVar(&f.from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last day to include (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.distributors, "distributor", nil, "Restrict to distributors (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&f.agencies, "agency", nil, "Restrict to agencies")
	cmd.Flags().StringSliceVar(&f.products, "product", nil, "Restrict to products")
	cmd.Flags().StringSliceVar(&f.salesReps, "sales-rep", nil, "Restrict to sales reps; groups the summary by sales rep")
}

// build reads --filter-file and lets explicit flags override it
func (f *filterFlags) build() (report.ReportFilter, error) {
	var ff FilterFile
	if f.file != "" {
		data, err := os.ReadFile(f.file)
		if err != nil {
			return report.ReportFilter{}, err
		}
		if err := yaml.Unmarshal(data, &ff); err != nil {
			return report.ReportFilter{}, fmt.Errorf("parse %s: %w", f.file, err)
		}
	}

	override := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	override(&ff.Distributors, f.distributors)
	override(&ff.Agencies, f.agencies)
	override(&ff.Products, f.products)
	override(&ff.SalesReps, f.salesReps)
	if f.from != "" {
		ff.From = f.from
	}
	if f.to != "" {
		ff.To = f.to
	}
	return ff.Filter()
}

// Filter converts the file into a report filter
func (ff FilterFile) Filter() (report.ReportFilter, error) {
	filter := report.ReportFilter{
		Distributors: ff.Distributors,
		Agencies:     ff.Agencies,
		Products:     ff.Products,
		SalesReps:    ff.SalesReps,
		Customers:    ff.Customers,
		Areas:        ff.Areas,
	}
	var err error
	if filter.FromDate, err = parseDate("from", ff.From); err != nil {
		return filter, err
	}
	if filter.ToDate, err = parseDate("to", ff.To); err != nil {
		return filter, err
	}
	if filter.HasDateRange() && filter.FromDate.After(*filter.ToDate) {
		return filter, fmt.Errorf("from %s is after to %s", ff.From, ff.To)
	}
	return filter, nil
}

func parseDate(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", name, s)
	}
	return &t, nil
}
