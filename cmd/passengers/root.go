package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootOptions holds the configuration shared by all subcommands. It is
// filled in by the root command before any subcommand runs.
type rootOptions struct {
	configFile string
	v          *viper.Viper
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "passengers",
		Short:         "Manage passengers stored in a SQL database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(opts.configFile, cmd)
			if err != nil {
				return err
			}
			if f := v.GetString(cfgKeyOutput); !isValidOutput(f) {
				return fmt.Errorf("invalid output %q: must be one of %v", f, validOutputs)
			}
			opts.v = v
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default ./passengers.yaml)")
	pf.String(cfgKeyDriver, defaultDriver, "database driver (sqlite|postgres|pq|pgx|gopg)")
	pf.String(cfgKeyDSN, defaultDSN, "data source name")
	pf.StringP(cfgKeyOutput, "o", defaultOutput, "output format (json|yaml)")
	pf.BoolP(cfgKeyVerbose, "v", false, "log SQL statements")

	cmd.AddCommand(newSchemaCmd(opts))
	cmd.AddCommand(newInsertCmd(opts))
	cmd.AddCommand(newReadCmd(opts))
	cmd.AddCommand(newUpdateCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newScenarioCmd(opts))

	return cmd
}
