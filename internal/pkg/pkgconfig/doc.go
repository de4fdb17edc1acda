// Package pkgconfig reads configuration through the Config interface.
//
// The Viper implementation loads a YAML file and lets environment variables
// override any key (dots become underscores). Getters cover the shapes the
// service needs: durations for timeouts and TTLs, comma-separated arrays for
// origins and Redis addresses, and "k:v" maps for the model list.
package pkgconfig
