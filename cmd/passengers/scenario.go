package main

import (
	"context"
	"fmt"

	"github.com/gopsql/entity"
	"github.com/spf13/cobra"
)

type step struct {
	Step      string                   `json:"step" yaml:"step"`
	OK        bool                     `json:"ok" yaml:"ok"`
	Passengers []map[string]interface{} `json:"passengers,omitempty" yaml:"passengers,omitempty"`
}

func newScenarioCmd(opts *rootOptions) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Insert, update, read and delete a passenger, then roll back an insert",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := openExecutor(opts.v)
			if err != nil {
				return err
			}
			defer exe.Close()

			if create {
				conn := exe.Connection()
				if _, err := conn.Exec(passengers.DropTableSQL()); err != nil {
					return fmt.Errorf("drop table: %w", err)
				}
				if _, err := conn.Exec(passengers.CreateTableSQL(dialect(opts.v.GetString(cfgKeyDriver)))); err != nil {
					return fmt.Errorf("create table: %w", err)
				}
			}

			steps, err := runScenario(cmd.Context(), exe)
			if err != nil {
				return err
			}
			return opts.print(cmd, steps)
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "drop and create the table first")

	return cmd
}

func runScenario(ctx context.Context, exe *entity.DBExecutor) ([]step, error) {
	var steps []step
	readBack := func(name string, id int) error {
		var list []*Passenger
		if err := passengers.Read(ctx, exe, &list, entity.NewProperty("id", id)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		out, err := records(list...)
		if err != nil {
			return err
		}
		steps = append(steps, step{Step: name, OK: true, Passengers: out})
		return nil
	}

	age, name, sex := 28, "Tanvir", "M"
	p := &Passenger{Age: &age, Name: &name, Sex: &sex}
	ok, err := passengers.Insert(ctx, exe, p)
	if err != nil {
		return nil, fmt.Errorf("insert: %w", err)
	}
	steps = append(steps, step{Step: "insert", OK: ok})
	if !ok || p.Id == nil {
		return steps, nil
	}
	id := *p.Id
	if err := readBack("read after insert", id); err != nil {
		return nil, err
	}

	newAge := 30
	p.Age = &newAge
	ok, err = passengers.Update(ctx, exe, p, "Age")
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	steps = append(steps, step{Step: "update", OK: ok})
	if err := readBack("read after update", id); err != nil {
		return nil, err
	}

	ok, err = passengers.Delete(ctx, exe, p)
	if err != nil {
		return nil, fmt.Errorf("delete: %w", err)
	}
	steps = append(steps, step{Step: "delete", OK: ok})
	if err := readBack("read after delete", id); err != nil {
		return nil, err
	}

	if err := exe.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	rolledBack := &Passenger{Age: &age, Name: &name, Sex: &sex}
	ok, err = passengers.Insert(ctx, exe, rolledBack)
	if err != nil {
		exe.Abort(ctx)
		return nil, fmt.Errorf("insert in transaction: %w", err)
	}
	if err := exe.Abort(ctx); err != nil {
		return nil, fmt.Errorf("abort: %w", err)
	}
	steps = append(steps, step{Step: "insert rolled back", OK: ok})
	if rolledBack.Id != nil {
		if err := readBack("read after rollback", *rolledBack.Id); err != nil {
			return nil, err
		}
	}
	return steps, nil
}
