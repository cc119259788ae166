package engine

import "github.com/spaghettifunk/tilegl/engine/config"

type ApplicationConfig struct {
	// The application name used in logs.
	Name string
	// Session settings. Defaults are used when nil.
	Config *config.Config
}
