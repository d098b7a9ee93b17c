// Package cli implements reportctl, which renders reports from a local
// spreadsheet without a database or HTTP server.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/infrastructure/config"
	"github.com/salesreport/backend/internal/infrastructure/logger"
)

// CLI represents the command-line interface
type CLI struct {
	out     io.Writer
	rootCmd *cobra.Command

	logLevel   string
	configPath string
	maxErrors  int
	log        *zap.Logger
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	cli := &CLI{out: opts.Output, log: zap.NewNop()}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the root command with os.Args
func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// Root exposes the root command, mainly for tests
func (cli *CLI) Root() *cobra.Command {
	return cli.rootCmd
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reportctl",
		Short:         "Render distributor / agency / product reports from a sales sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(&logger.Config{
				Level:  cli.logLevel,
				Format: "console",
				Output: "stderr",
			})
			if err != nil {
				return err
			}
			cli.log = log
			return nil
		},
	}
	cmd.SetOut(cli.out)

	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&cli.configPath, "config", "", "config.toml to read [report] layout settings from")
	cmd.PersistentFlags().IntVar(&cli.maxErrors, "max-row-errors", 100, "Row errors to keep when parsing a sheet")

	cmd.AddCommand(newRenderCmd(cli))
	cmd.AddCommand(newColumnsCmd(cli))
	cmd.AddCommand(newSummaryCmd(cli))
	cmd.AddCommand(newTemplateCmd(cli))
	return cmd
}

// reportConfig returns the [report] section of --config, or the defaults
func (cli *CLI) reportConfig() (config.ReportConfig, error) {
	if cli.configPath == "" {
		return config.DefaultReportConfig(), nil
	}
	cfg, err := config.LoadFile(cli.configPath)
	if err != nil {
		return config.ReportConfig{}, err
	}
	return cfg.Report, nil
}
