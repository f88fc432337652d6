package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/toxichemicals/GO/holy-render/config"
	"github.com/toxichemicals/GO/holy-render/log"
)

var logger = log.New("holy-render")

func setupLogging(ctx *cli.Context, cfg config.Log) (func(), error) {
	verbosity := 0
	if ctx.GlobalBool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") {
		verbosity = 2
	}
	return configureLogging(cfg, verbosity)
}

// configureLogging applies the log settings, then raises the global level
// for -v (info) and -vv (debug). The returned func closes the log file.
func configureLogging(cfg config.Log, verbosity int) (func(), error) {
	done := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "opening log file %q", cfg.File)
		}
		log.SetSink(f)
		done = func() {
			log.SetSink(os.Stdout)
			f.Close()
		}
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		done()
		return nil, err
	}
	log.SetLevel(level)
	for module, name := range cfg.Modules {
		if level, err = log.ParseLevel(name); err != nil {
			done()
			return nil, err
		}
		log.SetModuleLevel(level, module)
	}

	switch {
	case verbosity >= 2:
		log.SetLevel(log.Debug)
	case verbosity == 1:
		log.SetLevel(log.Info)
	}
	return done, nil
}
