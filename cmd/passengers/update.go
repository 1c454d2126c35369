package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var id, age int
	var name, sex string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the given columns of a passenger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &Passenger{Id: &id}
			var fields []string
			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = &name
				fields = append(fields, "Name")
			}
			if flags.Changed("age") {
				p.Age = &age
				fields = append(fields, "Age")
			}
			if flags.Changed("sex") {
				p.Sex = &sex
				fields = append(fields, "Sex")
			}
			if len(fields) == 0 {
				return errors.New("nothing to update: set --name, --age or --sex")
			}

			exe, err := openExecutor(opts.v)
			if err != nil {
				return err
			}
			defer exe.Close()

			ok, err := passengers.Update(cmd.Context(), exe, p, fields...)
			if err != nil {
				return err
			}
			return opts.print(cmd, map[string]interface{}{"id": id, "updated": ok})
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "passenger id")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().IntVar(&age, "age", 0, "new age")
	cmd.Flags().StringVar(&sex, "sex", "", "new sex")
	cmd.MarkFlagRequired("id")

	return cmd
}
