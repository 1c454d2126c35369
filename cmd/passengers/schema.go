package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	var create, drop bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or create the passenger table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := passengers.Validate(); err != nil {
				return err
			}
			ddl := passengers.CreateTableSQL(dialect(opts.v.GetString(cfgKeyDriver)))
			if !create && !drop {
				fmt.Fprint(cmd.OutOrStdout(), ddl)
				return nil
			}
			exe, err := openExecutor(opts.v)
			if err != nil {
				return err
			}
			defer exe.Close()
			if drop {
				if _, err := exe.Connection().Exec(passengers.DropTableSQL()); err != nil {
					return fmt.Errorf("drop table: %w", err)
				}
			}
			if create {
				if _, err := exe.Connection().Exec(ddl); err != nil {
					return fmt.Errorf("create table: %w", err)
				}
			}
			return opts.print(cmd, map[string]interface{}{
				"table":   passengers.TableName(),
				"dropped": drop,
				"created": create,
			})
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "create the table")
	cmd.Flags().BoolVar(&drop, "drop", false, "drop the table if it exists")

	return cmd
}
