package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "passengers"
	configFileType = "yaml"
	envPrefix      = "PASSENGERS"

	cfgKeyDriver  = "driver"
	cfgKeyDSN     = "dsn"
	cfgKeyOutput  = "output"
	cfgKeyVerbose = "verbose"

	defaultDriver = "sqlite"
	defaultDSN    = "passengers.db"
	defaultOutput = "json"
)

// loadConfig merges, from lowest to highest priority, the defaults,
// passengers.yaml (or the file given by --config), PASSENGERS_* environment
// variables and the flags set on the command line. A missing
// passengers.yaml in the working directory is not an error.
func loadConfig(configFile string, cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDriver, defaultDriver)
	v.SetDefault(cfgKeyDSN, defaultDSN)
	v.SetDefault(cfgKeyOutput, defaultOutput)
	v.SetDefault(cfgKeyVerbose, false)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for _, key := range []string{cfgKeyDriver, cfgKeyDSN, cfgKeyOutput, cfgKeyVerbose} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(key)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return v, nil
}
