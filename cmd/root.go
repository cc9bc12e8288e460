// Package cmd provides the root command and CLI setup for hlsweep.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"hlsweep.dev/pkg/hlsweep/internal/adapter"
)

var workspaceFS adapter.WorkspaceFS
var summaryStore adapter.SummaryStore

// resultsDirFlag is a root-level flag shared by commands that read/write the
// results directory.
var resultsDirFlag string

// buildDirFlag overrides where per-point workspaces are created.
var buildDirFlag string

// toolFlag overrides the HLS tool binary.
var toolFlag string

// plainFlag forces the line-oriented UI even on a TTY.
var plainFlag bool

// verboseFlag raises the log level to debug.
var verboseFlag bool

// exitPartialFailure is the exit code when some points failed but the sweep
// itself ran to completion. Fatal errors exit 1.
const exitPartialFailure = 2

// exitCodeError carries a specific process exit code out of a command.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string {
	return e.msg
}

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	workspaceFS = adapter.NewLocalWorkspaceFS()
	summaryStore = adapter.NewYAMLSummaryStore()
}

const rootLongDescription = `hlsweep drives design-space exploration for an HLS toolchain: it runs one
synthesis build per point of a parameter grid (for example loop-unroll
factors 1,2,4,8), each in its own reset workspace, and collects the
generated reports into a flat results directory for comparison.

A failing point never aborts the rest of the grid unless --fail-fast is set.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hlsweep",
		Short: "HLS parameter sweep driver",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger("", verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&resultsDirFlag, resultsDirFlagName, "o",
			viper.GetString(resultsDirConfigKey),
			"directory receiving collected report artifacts and the sweep summary",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(resultsDirFlagName), resultsDirConfigKey)

	cmd.PersistentFlags().StringVar(&buildDirFlag, buildDirFlagName, viper.GetString(buildDirConfigKey), "directory holding per-point build workspaces")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(buildDirFlagName), buildDirConfigKey)

	cmd.PersistentFlags().StringVar(&toolFlag, toolFlagName, viper.GetString(toolBinaryKey), "HLS tool binary")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(toolFlagName), toolBinaryKey)

	cmd.PersistentFlags().BoolVar(&plainFlag, plainFlagName, false, "plain line-oriented output (no progress display)")

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}

		os.Exit(1)
	}
}
