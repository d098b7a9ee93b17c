package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	reportapp "github.com/salesreport/backend/internal/application/report"
	"github.com/salesreport/backend/internal/domain/report"
)

type renderCmd struct {
	cli    *CLI
	input  string
	output string
	filter filterFlags
}

func newRenderCmd(cli *CLI) *cobra.Command {
	rc := &renderCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a PDF report from a .xlsx or .csv sales sheet",
		RunE:  rc.run,
	}
	cmd.Flags().StringVarP(&rc.input, "input", "i", "", "Sales sheet (.xlsx or .csv)")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "report.pdf", "PDF file to write, - for stdout")
	rc.filter.register(cmd)
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (rc *renderCmd) run(cmd *cobra.Command, _ []string) error {
	filter, err := rc.filter.build()
	if err != nil {
		return err
	}
	records, err := rc.cli.loadRecords(rc.input, filter)
	if err != nil {
		return err
	}
	layout, err := rc.cli.reportConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := reportapp.NewPDFPipeline(layout, rc.cli.log).Run(ctx, records, filter, report.DefaultMonthNames())
	if errors.Is(err, report.ErrNoData) {
		return fmt.Errorf("no records match the filters in %s", rc.input)
	}
	if err != nil {
		return err
	}

	if rc.output == "-" {
		_, err = cmd.OutOrStdout().Write(doc.Data)
		return err
	}
	if err := os.WriteFile(rc.output, doc.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s: %d pages, %d months, %d distributors\n",
		rc.output, doc.Pages, doc.Months, doc.Distributors)
	return nil
}
