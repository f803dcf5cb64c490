package cmd

import (
	"github.com/achilleasa/objloader/log"
	"github.com/urfave/cli"
)

var logger = log.New("objloader")

// Load the configuration file and apply the requested log level. The -v and
// -vv flags take precedence over the configured level.
func setupLogging(ctx *cli.Context) (*Config, error) {
	cfg, err := LoadConfig(ctx.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	level, _ := cfg.LogLevel()
	log.SetLevel(level)

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return cfg, nil
}
