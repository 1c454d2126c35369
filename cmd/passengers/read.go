package main

import (
	"github.com/gopsql/entity"
	"github.com/spf13/cobra"
)

func newReadCmd(opts *rootOptions) *cobra.Command {
	var id, minAge, maxAge int
	var name, sex string

	cmd := &cobra.Command{
		Use:   "read",
		Short: "List passengers matching all given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var e entity.Expression
			flags := cmd.Flags()
			if flags.Changed("id") {
				e = entity.NewAnd(e, entity.Equal("id", id))
			}
			if flags.Changed("name") {
				e = entity.NewAnd(e, entity.Equal("name", name))
			}
			if flags.Changed("sex") {
				e = entity.NewAnd(e, entity.Equal("sex", sex))
			}
			if flags.Changed("min-age") {
				e = entity.NewAnd(e, entity.NewExpression(entity.NewProperty("age", minAge), entity.OperatorGreaterThanOrEqual))
			}
			if flags.Changed("max-age") {
				e = entity.NewAnd(e, entity.NewExpression(entity.NewProperty("age", maxAge), entity.OperatorLessThanOrEqual))
			}

			exe, err := openExecutor(opts.v)
			if err != nil {
				return err
			}
			defer exe.Close()

			var list []*Passenger
			if err := passengers.ReadWhere(cmd.Context(), exe, &list, e); err != nil {
				return err
			}
			out, err := records(list...)
			if err != nil {
				return err
			}
			return opts.print(cmd, out)
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "passenger id")
	cmd.Flags().StringVar(&name, "name", "", "passenger name")
	cmd.Flags().StringVar(&sex, "sex", "", "passenger sex")
	cmd.Flags().IntVar(&minAge, "min-age", 0, "minimum age")
	cmd.Flags().IntVar(&maxAge, "max-age", 0, "maximum age")

	return cmd
}
