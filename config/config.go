// Package config defines the Conf struct used by the cmd package to bind
// cobra flags and viper configuration values into a single typed structure.
package config

// Conf holds the configuration values populated by viper from cobra flags,
// environment variables, or a config file.
//
// mapstructure tags are required wherever the lowercased Go field name does
// not match the cobra flag name that viper binds. Without them,
// viper.Unmarshal silently leaves those fields at their zero value.
type Conf struct {
	// Acsm is the path to the fulfillment ticket file (--acsm).
	Acsm string `mapstructure:"acsm"`
	// Account is the path to the persistent account record (--account).
	Account string `mapstructure:"account"`
	// Out is the output directory for de-DRM'd resources (--out).
	Out string `mapstructure:"out"`
}
