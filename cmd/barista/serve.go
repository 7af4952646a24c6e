// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"

	"github.com/mitchellh/cli"

	"barista.dev/barista/logx"
	"barista.dev/barista/serve"
)

// ServeCommand serves an app to browsers.
type ServeCommand struct {
	Ui cli.Ui
}

func (c *ServeCommand) Synopsis() string {
	return "Serve an app over WebSocket"
}

func (c *ServeCommand) Help() string {
	return strings.TrimSpace(`
Usage: barista serve [options]

  Serves an app at the configured address. Every browser tab gets its
  own render tree.

Options:

  -app=name      App to serve (` + appNames() + `). Defaults to todo.
  -config=file   TOML or YAML configuration file.
  -addr=addr     Address to listen on, overriding the configuration.
  -v, -vv, -q    Log verbosely, very verbosely, or only errors.
`)
}

func (c *ServeCommand) Run(args []string) int {
	var appName, configFile, addr string
	var v, vv, q bool
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.Usage = func() { c.Ui.Output(c.Help()) }
	fs.StringVar(&appName, "app", "todo", "")
	fs.StringVar(&configFile, "config", "", "")
	fs.StringVar(&addr, "addr", "", "")
	fs.BoolVar(&v, "v", false, "")
	fs.BoolVar(&vv, "vv", false, "")
	fs.BoolVar(&q, "q", false, "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logx.UserLevel = logx.LevelFromFlags(vv, v, q)
	logx.SetDefaultLogger(os.Stderr)

	app, err := lookupApp(appName)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	cfg := serve.DefaultConfig()
	if configFile != "" {
		cfg, err = serve.LoadConfig(configFile)
		if err != nil {
			c.Ui.Error(err.Error())
			return 1
		}
	}
	if addr != "" {
		cfg.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	c.Ui.Info("Serving " + appName + " at http://" + cfg.Addr + "/")
	if err := serve.NewServer(cfg, app).ListenAndServe(ctx); err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	return 0
}
