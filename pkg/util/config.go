package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig load config.yaml from ./data/. environment variables override
// file values, so the server can run without a config file at all.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
