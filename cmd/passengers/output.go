package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var validOutputs = []string{"json", "yaml"}

func isValidOutput(format string) bool {
	for _, f := range validOutputs {
		if f == format {
			return true
		}
	}
	return false
}

func (opts *rootOptions) print(cmd *cobra.Command, data interface{}) error {
	w := cmd.OutOrStdout()
	if opts.v.GetString(cfgKeyOutput) == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// records converts passengers to maps keyed by column name, with nil for
// NULL columns.
func records(list ...*Passenger) ([]map[string]interface{}, error) {
	out := []map[string]interface{}{}
	for _, p := range list {
		m, err := passengers.MarshalToMap(p, true)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
