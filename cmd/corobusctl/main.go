// Command corobusctl drives the scenarios from the corobus specification
// end to end, so the library's behavior is observable outside of unit
// tests. The --verbose flag is read through Viper, so COROBUS_VERBOSE
// sets it too; the demo subcommands' own flags are bound into Viper but
// read from their Cobra flags, so no environment variable changes them.
// Subcommands are Cobra commands, grounded on the
// spf13/cobra + spf13/viper pair gravitational-teleport depends on
// directly.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("COROBUS")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "corobusctl",
		Short: "Drive corobus scenarios from the command line",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if v.GetBool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().Bool("verbose", false, "emit debug-level bus logging")
	_ = v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(newDemoCmd(v))
	return root
}
