package cmd

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hlsweep.dev/pkg/hlsweep/internal/controller"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the summary of a previous sweep",
		Long:  "Render the sweep summary saved in the results directory by a previous run.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			resultsDir := m.Path(viper.GetString(resultsDirConfigKey))
			summaryPath := m.Path(filepath.Join(string(resultsDir), SummaryFileName))

			result, err := summaryStore.Load(summaryPath)
			if err != nil {
				return err
			}

			controller.NewSimpleUI(cmd).DisplaySummary(context.Background(), result, resultsDir)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
