package main

import (
	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a passenger by id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := openExecutor(opts.v)
			if err != nil {
				return err
			}
			defer exe.Close()

			ok, err := passengers.Delete(cmd.Context(), exe, &Passenger{Id: &id})
			if err != nil {
				return err
			}
			return opts.print(cmd, map[string]interface{}{"id": id, "deleted": ok})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "passenger id")
	cmd.MarkFlagRequired("id")

	return cmd
}
