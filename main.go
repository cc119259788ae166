/*
This is an example of application that will use the
engine package to draw a few frames through the client array front-end
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/tilegl/engine"
	"github.com/spaghettifunk/tilegl/engine/config"
	"github.com/spaghettifunk/tilegl/engine/core"
	"github.com/spaghettifunk/tilegl/testbed"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			core.LogFatal("%s", err)
		}
	}

	tb := testbed.NewTestGame(&engine.ApplicationConfig{
		Name:   "tilegl testbed",
		Config: cfg,
	})

	engine, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("%s", err)
	}

	if err := engine.Initialize(); err != nil {
		core.LogFatal("%s", err)
	}

	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath, cfg, engine.Reload)
		if err != nil {
			core.LogFatal("%s", err)
		}
		defer watcher.Close()
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = engine.Shutdown()
	}()

	// run engine
	if err := engine.Run(); err != nil {
		core.LogFatal("%s", err)
	}
}
