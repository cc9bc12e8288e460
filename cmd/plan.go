package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hlsweep.dev/pkg/hlsweep/internal/controller"
	"hlsweep.dev/pkg/hlsweep/internal/domain"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

// planCmd represents the plan command.
var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the workspaces and artifacts a sweep would produce",
		Long: `Enumerate the grid without running anything: for each point, print the
derived workspace name and the destination artifact path. Useful to check
naming and grid definitions before a long sweep.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, err := parseGridFlags()
			if err != nil {
				return err
			}

			manager := domain.NewWorkspaceManager(
				workspaceFS,
				m.Path(viper.GetString(buildDirConfigKey)),
				viper.GetString(toolProjectKey),
				viper.GetString(toolSolutionKey),
			)
			collector := domain.NewCollector(workspaceFS, m.Path(viper.GetString(resultsDirConfigKey)), reportConventionFromConfig())

			rows := make([]controller.PlanRow, 0, grid.Size())

			for _, point := range grid.Points() {
				ws := manager.Describe(point)
				record := collector.Record(ws, point)

				rows = append(rows, controller.PlanRow{
					Point:     point,
					Workspace: ws.Name,
					Artifact:  record.Dest,
				})
			}

			controller.NewSimpleUI(cmd).DisplayPlan(rows)

			return nil
		},
	}

	configureGridFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(planCmd)
}
