package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newInsertCmd(opts *rootOptions) *cobra.Command {
	var name, sex string
	var age int

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert a passenger and print it with its generated id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &Passenger{}
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("age") {
				p.Age = &age
			}
			if cmd.Flags().Changed("sex") {
				p.Sex = &sex
			}

			exe, err := openExecutor(opts.v)
			if err != nil {
				return err
			}
			defer exe.Close()

			ok, err := passengers.Insert(cmd.Context(), exe, p)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("passenger was not inserted")
			}
			out, err := records(p)
			if err != nil {
				return err
			}
			return opts.print(cmd, out[0])
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "passenger name")
	cmd.Flags().IntVar(&age, "age", 0, "passenger age")
	cmd.Flags().StringVar(&sex, "sex", "", "passenger sex")

	return cmd
}
