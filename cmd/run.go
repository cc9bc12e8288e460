package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hlsweep.dev/pkg/hlsweep/internal/adapter"
	"hlsweep.dev/pkg/hlsweep/internal/controller"
	"hlsweep.dev/pkg/hlsweep/internal/domain"
	m "hlsweep.dev/pkg/hlsweep/internal/model"
)

var gridParamFlag string
var gridValuesFlag string
var gridRangeFlag string

var runTopFlag string
var runSourcesFlag []string
var runTestbenchesFlag []string
var runMacroFlag string
var runPartFlag string
var runClockFlag string
var runTimeoutFlag int
var runParallelFlag int
var runFailFastFlag bool
var runCsimFlag bool
var runCosimFlag bool
var runExportFlag bool

const runLongDescription = `Run the synthesis sweep: for each grid point, reset the point's workspace,
generate the tool batch script with the point's macro value, run the tool,
and copy the synthesis report into the results directory.

The grid is given either as an explicit list (--values 1,2,4,8) or as an
inclusive range (--range 1:8:1). Exit code is 0 when every point succeeded,
2 when some points failed, and 1 on fatal errors (bad grid, unlaunchable
tool).`

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "run",
		Short:        "Run the synthesis parameter sweep",
		Long:         runLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			grid, err := parseGridFlags()
			if err != nil {
				return err
			}

			scripts, err := domain.NewScriptBuilder(hlsConfigFromFlags())
			if err != nil {
				return err
			}

			resultsDir := m.Path(viper.GetString(resultsDirConfigKey))

			manager := domain.NewWorkspaceManager(
				workspaceFS,
				m.Path(viper.GetString(buildDirConfigKey)),
				viper.GetString(toolProjectKey),
				viper.GetString(toolSolutionKey),
			)

			timeout := time.Duration(viper.GetInt64(runTimeoutKey)) * time.Second
			runner := adapter.NewLocalToolRunner(timeout)
			invoker := domain.NewInvoker(workspaceFS, runner, scripts, viper.GetString(toolBinaryKey), viper.GetStringSlice(toolMarkersKey))
			collector := domain.NewCollector(workspaceFS, resultsDir, reportConventionFromConfig())

			ui := chooseUI(cmd)

			sweep := domain.NewController(manager, invoker, collector, ui)

			if err := ui.Start(ctx, grid.Size()); err != nil {
				return err
			}

			result, runErr := sweep.Run(ctx, grid, domain.SweepOptions{
				Parallelism: viper.GetInt(runParallelKey),
				FailFast:    viper.GetBool(runFailFastKey),
			})

			ui.DisplaySummary(context.Background(), result, resultsDir)
			ui.Close(context.Background())

			// The summary is written even for aborted or cancelled sweeps:
			// partial results are preserved, never discarded.
			summaryPath := m.Path(filepath.Join(string(resultsDir), SummaryFileName))
			if err := summaryStore.Save(summaryPath, result); err != nil {
				return err
			}

			if runErr != nil {
				return runErr
			}

			if !result.AllDone() || len(result.Entries) < grid.Size() {
				return &exitCodeError{
					code: exitPartialFailure,
					msg:  fmt.Sprintf("sweep incomplete: %d of %d point(s) succeeded", result.Succeeded(), grid.Size()),
				}
			}

			return nil
		},
	}

	configureGridFlags(cmd)
	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureGridFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gridParamFlag, paramFlagName, "uf", "sweep parameter name, used in workspace and artifact names")
	cmd.Flags().StringVar(&gridValuesFlag, valuesFlagName, "", "explicit sweep values, e.g. 1,2,4,8")
	cmd.Flags().StringVar(&gridRangeFlag, rangeFlagName, "", "sweep range start:stop[:step], stop inclusive")
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runTopFlag, topFlagName, viper.GetString(toolTopKey), "top-level entity to synthesize")
	bindFlagToConfig(cmd.Flags().Lookup(topFlagName), toolTopKey)

	cmd.Flags().StringArrayVar(&runSourcesFlag, sourceFlagName, viper.GetStringSlice(toolSourcesKey), "source file to register (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(sourceFlagName), toolSourcesKey)

	cmd.Flags().StringArrayVar(&runTestbenchesFlag, tbFlagName, viper.GetStringSlice(toolTestbenchesKey), "testbench file to register (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(tbFlagName), toolTestbenchesKey)

	cmd.Flags().StringVar(&runMacroFlag, macroFlagName, viper.GetString(toolMacroKey), "preprocessor macro receiving the point value")
	bindFlagToConfig(cmd.Flags().Lookup(macroFlagName), toolMacroKey)

	cmd.Flags().StringVar(&runPartFlag, partFlagName, viper.GetString(toolPartKey), "target device part identifier")
	bindFlagToConfig(cmd.Flags().Lookup(partFlagName), toolPartKey)

	cmd.Flags().StringVar(&runClockFlag, clockFlagName, viper.GetString(toolClockKey), "clock period passed to the tool")
	bindFlagToConfig(cmd.Flags().Lookup(clockFlagName), toolClockKey)

	cmd.Flags().IntVar(&runTimeoutFlag, timeoutFlagName, int(viper.GetInt64(runTimeoutKey)), "per-point tool timeout in seconds")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), runTimeoutKey)

	cmd.Flags().IntVarP(&runParallelFlag, parallelFlagName, "p", viper.GetInt(runParallelKey), "number of parallel workers (each point still owns its workspace)")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelKey)

	cmd.Flags().BoolVar(&runFailFastFlag, failFastFlagName, viper.GetBool(runFailFastKey), "stop launching points after the first failure")
	bindFlagToConfig(cmd.Flags().Lookup(failFastFlagName), runFailFastKey)

	cmd.Flags().BoolVar(&runCsimFlag, csimFlagName, viper.GetBool(runCsimKey), "run C simulation before synthesis")
	bindFlagToConfig(cmd.Flags().Lookup(csimFlagName), runCsimKey)

	cmd.Flags().BoolVar(&runCosimFlag, cosimFlagName, viper.GetBool(runCosimKey), "run co-simulation after synthesis")
	bindFlagToConfig(cmd.Flags().Lookup(cosimFlagName), runCosimKey)

	cmd.Flags().BoolVar(&runExportFlag, exportFlagName, viper.GetBool(runExportKey), "export the design after synthesis")
	bindFlagToConfig(cmd.Flags().Lookup(exportFlagName), runExportKey)
}

// parseGridFlags builds the validated grid from --values or --range.
func parseGridFlags() (*domain.Grid, error) {
	if gridValuesFlag != "" && gridRangeFlag != "" {
		return nil, &m.InvalidConfigurationError{Reason: "--values and --range are mutually exclusive"}
	}

	var (
		spec m.GridSpec
		err  error
	)

	switch {
	case gridValuesFlag != "":
		spec, err = domain.ParseValues(gridParamFlag, gridValuesFlag)
	case gridRangeFlag != "":
		spec, err = domain.ParseRange(gridParamFlag, gridRangeFlag)
	default:
		return nil, &m.InvalidConfigurationError{Reason: "one of --values or --range is required"}
	}

	if err != nil {
		return nil, err
	}

	return domain.NewGrid(spec)
}

func hlsConfigFromFlags() domain.HLSConfig {
	return domain.HLSConfig{
		Top:         viper.GetString(toolTopKey),
		Sources:     viper.GetStringSlice(toolSourcesKey),
		Testbenches: viper.GetStringSlice(toolTestbenchesKey),
		Part:        viper.GetString(toolPartKey),
		Clock:       viper.GetString(toolClockKey),
		Macro:       viper.GetString(toolMacroKey),
		Stages: domain.Stages{
			Csim:   viper.GetBool(runCsimKey),
			Cosim:  viper.GetBool(runCosimKey),
			Export: viper.GetBool(runExportKey),
		},
	}
}

func reportConventionFromConfig() domain.ReportConvention {
	return domain.ReportConvention{
		PathTemplate: viper.GetString(reportTemplateKey),
		Top:          viper.GetString(toolTopKey),
		Qualifier:    viper.GetString(reportQualifierKey),
		Metric:       viper.GetString(reportMetricKey),
		Ext:          viper.GetString(reportExtKey),
	}
}

func chooseUI(cmd *cobra.Command) controller.UI {
	if plainFlag || !controller.IsTTY(os.Stdout) {
		return controller.NewSimpleUI(cmd)
	}

	return controller.NewTUI(cmd.OutOrStdout())
}
