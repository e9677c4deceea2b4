package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cayleygraph/idiom/internal/clog"
)

// Viper config keys, following cmd/cayley/command's "section.name" dotted
// naming.
const (
	KeyMaxDepth       = "eval.max_computation_depth"
	KeyFuturesEnabled = "eval.futures_enabled"
	KeyVerbosity      = "eval.verbosity"
)

// Defaults apply even when NewGetCmd/NewServeCmd run without the root
// command's persistent flags bound (e.g. invoked directly in tests), the
// same way cmd/cayley/command's key constants carry sane zero-flag
// behavior.
func init() {
	viper.SetDefault(KeyMaxDepth, 1<<20)
	viper.SetDefault(KeyFuturesEnabled, true)
	viper.SetDefault(KeyVerbosity, 0)
}

// NewRootCmd builds the idiomget root command and wires its subcommands.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "idiomget",
		Short: "Evaluate a path expression against a JSON value using the idiom get() evaluator.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile != "" {
				viper.SetConfigFile(cfgFile)
				if err := viper.ReadInConfig(); err != nil {
					return err
				}
			}
			clog.SetV(viper.GetInt(KeyVerbosity))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to an explicit configuration file")
	cmd.PersistentFlags().Int("max-depth", 1<<20, "MAX_COMPUTATION_DEPTH: the maximum path length get() will descend to")
	cmd.PersistentFlags().Bool("futures", true, "the FuturesEnabled value passed to collaborators in Options")
	cmd.PersistentFlags().Int("v", 0, "clog verbosity level")
	viper.BindPFlag(KeyMaxDepth, cmd.PersistentFlags().Lookup("max-depth"))
	viper.BindPFlag(KeyFuturesEnabled, cmd.PersistentFlags().Lookup("futures"))
	viper.BindPFlag(KeyVerbosity, cmd.PersistentFlags().Lookup("v"))

	cmd.AddCommand(NewGetCmd())
	cmd.AddCommand(NewServeCmd())
	return cmd
}
