package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/salesreport/backend/internal/infrastructure/sheetimport"
)

type templateCmd struct {
	cli    *CLI
	output string
}

func newTemplateCmd(cli *CLI) *cobra.Command {
	tc := &templateCmd{cli: cli}
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an empty upload workbook with the required header row",
		RunE:  tc.run,
	}
	cmd.Flags().StringVarP(&tc.output, "output", "o", "sales_template.xlsx", "Workbook to write")
	return cmd
}

func (tc *templateCmd) run(cmd *cobra.Command, _ []string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]any, len(sheetimport.RequiredColumns))
	for i, col := range sheetimport.RequiredColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	if err := f.SaveAs(tc.output); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s with %d columns\n", tc.output, len(header))
	return nil
}
